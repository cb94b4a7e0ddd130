package query

import (
	"context"
	"log"
	"strings"

	"plans-assistant-be/pkg/llm"
)

// Intent classifies a user request as seeking a category of plans vs. a
// specific plan or feature. It decides which row column becomes the
// lookup key and which catalog resource path is used.
type Intent string

const (
	IntentCategory Intent = "category"
	IntentItem     Intent = "item"
)

// KeyColumn returns the store column whose values become lookup keys.
func (i Intent) KeyColumn() string {
	if i == IntentCategory {
		return "Category"
	}
	return "Plans"
}

// ResourcePath builds the catalog path for one lookup key. The key is
// interpolated as-is, without percent-encoding, to keep request shapes
// identical to what the catalog service already receives; a key the
// service cannot route comes back through its own error path.
func (i Intent) ResourcePath(key string) string {
	if i == IntentCategory {
		return "plans/category/" + key
	}
	return "plans/" + key
}

// Noun is the plural used in user-facing empty-result messages.
func (i Intent) Noun() string {
	if i == IntentCategory {
		return "categories"
	}
	return "plans"
}

const systemInstruction = `You are an expert at converting natural language into SQL queries.
The database contains a table called 'plans' with the following columns:
- id
- Category (e.g., 'Business Internet', 'Business Mobile', 'Business TV')
- Plans (e.g., 'Business Internet 300 Mbps', '5G Infinite Premium')
- Price
- Description

First, analyze the user query to determine if they're asking about:
1. A CATEGORY of plans (e.g., mobile plans, internet plans, TV plans)
2. A SPECIFIC PLAN or feature (e.g., 5G plans, Gigabit plans)

If they're asking about a CATEGORY:
- Generate a SQL query that searches for categories matching their request
- Example: For "I need mobile plans", return:
  SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'

If they're asking about a SPECIFIC PLAN or feature:
- Generate a SQL query that searches for specific plans matching their request
- Example: For "I need 5G plans", return:
  SELECT Plans FROM plans WHERE Plans LIKE '%5G%'

Do not use 'SELECT *' in your query. Instead use 'SELECT Category, Plans, Description'

Pay attention to the conversation context when generating the query.
If the user query is a follow-up question or references something previously mentioned,
use that context to generate an appropriate SQL query.

DO NOT explain your reasoning. ONLY return the SQL query.`

// Synthesizer turns (context summary, utterance) into a structured query
// plus its intent label. One language-backend call per invocation; backend
// failures propagate to the caller with no retry and no default query.
type Synthesizer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewSynthesizer(llmProvider llm.LLMProvider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Synthesize produces the query text and intent for one utterance. The
// context summary, when present, precedes the utterance in the user
// content so follow-up questions resolve against earlier exchanges.
func (s *Synthesizer) Synthesize(ctx context.Context, utterance, contextSummary string) (string, Intent, error) {
	userContent := utterance
	if contextSummary != "" {
		userContent = contextSummary + "\n\nCurrent user query: " + utterance
	}

	raw, err := llm.Complete(ctx, s.llmProvider, systemInstruction, userContent, llm.WithTemperature(0.1))
	if err != nil {
		return "", "", err
	}

	structuredQuery := strings.TrimSpace(raw)
	intent := Classify(structuredQuery)

	s.logger.Printf("[QUERY] Generated SQL: %s", structuredQuery)
	s.logger.Printf("[QUERY] Intent: %s", intent)

	return structuredQuery, intent, nil
}

// Classify maps query text to an intent by matching two fixed query
// shapes. Only the two category shapes map to IntentCategory; any other
// text, including unparseable output, is treated as IntentItem.
func Classify(structuredQuery string) Intent {
	if strings.Contains(structuredQuery, "SELECT DISTINCT Category") ||
		strings.Contains(structuredQuery, "SELECT Category FROM") {
		return IntentCategory
	}
	return IntentItem
}
