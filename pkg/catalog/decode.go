package catalog

import (
	"encoding/json"
	"strings"
)

// DecodeLenient parses a catalog payload with three decreasingly strict
// tiers. Tier 1 is a plain JSON parse. Tier 2 strips trailing commas and
// retries. Tier 3 extracts the longest balanced `{...}`/`[...]` substring
// and parses that. If all tiers fail the raw text is preserved inside an
// error-tagged structure. A malformed payload must never crash the
// pipeline, and operators need the original bytes for diagnosis.
func DecodeLenient(raw string) any {
	trimmed := strings.TrimSpace(raw)

	// Tier 1: strict parse
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}

	// Tier 2: trailing-comma-normalized parse
	normalized := stripTrailingCommas(trimmed)
	if err := json.Unmarshal([]byte(normalized), &v); err == nil {
		return v
	}

	// Tier 3: delimiter-balanced substring extraction
	if candidate := balancedSubstring(normalized); candidate != "" {
		if err := json.Unmarshal([]byte(candidate), &v); err == nil {
			return v
		}
	}

	return map[string]any{
		"error":    "response payload could not be parsed as JSON",
		"response": raw,
	}
}

// stripTrailingCommas removes commas that directly precede a closing brace
// or bracket, ignoring anything inside string literals.
func stripTrailingCommas(s string) string {
	inString := false
	escaped := false
	pendingComma := -1 // index into out of a comma awaiting a verdict

	flushPending := func() {
		pendingComma = -1
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			out = append(out, ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out = append(out, ch)
			flushPending()
		case ',':
			pendingComma = len(out)
			out = append(out, ch)
		case '}', ']':
			if pendingComma >= 0 {
				// drop the trailing comma, keep any whitespace after it
				out = append(out[:pendingComma], out[pendingComma+1:]...)
			}
			pendingComma = -1
			out = append(out, ch)
		case ' ', '\t', '\n', '\r':
			out = append(out, ch)
		default:
			out = append(out, ch)
			flushPending()
		}
	}

	return string(out)
}

// balancedSubstring returns the substring from the first opening delimiter
// through its matching closer, respecting string literals. Returns "" when
// no balanced region exists.
func balancedSubstring(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
