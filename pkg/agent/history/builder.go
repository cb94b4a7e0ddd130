package history

import (
	"fmt"
	"strings"

	"plans-assistant-be/pkg/agent/transcript"
)

const header = "Previous conversation:"

// Build renders a transcript into the bounded textual summary handed to
// the language backend. Turns are grouped into consecutive (user,
// assistant) pairs by index (turn 2i with turn 2i+1), and each pair
// becomes a two-line block. An unpaired trailing turn is skipped rather
// than errored. Returns "" when no complete pair exists.
func Build(t transcript.Transcript) string {
	var pairs []string
	for i := 0; i+1 < len(t); i += 2 {
		pairs = append(pairs, fmt.Sprintf("User: %s\nAssistant: %s", t[i].Content, t[i+1].Content))
	}

	if len(pairs) == 0 {
		return ""
	}

	return header + "\n" + strings.Join(pairs, "\n\n")
}

// PairCount reports how many complete exchanges the builder would render.
func PairCount(t transcript.Transcript) int {
	return len(t) / 2
}
