package response

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"plans-assistant-be/pkg/agent/lookup"
	"plans-assistant-be/pkg/agent/query"
	"plans-assistant-be/pkg/llm"
	"plans-assistant-be/pkg/querystore"
)

const systemInstruction = `You are a helpful customer service assistant.
Your task is to provide information about plans based on the data provided.

Generate a natural, conversational response to the user's query using the
database and API results. Be helpful and informative.

If there were errors in retrieving the data, apologize and explain what went wrong
in user-friendly terms without technical details.

Maintain conversation context and refer to previous information when appropriate.
If the user is asking about something you've already discussed, acknowledge that.

Make your responses concise and focused on answering the user's question.`

// Generator turns the accumulated stage outputs into the final
// conversational answer. The completion text is used verbatim: no
// post-processing and no grounding validation happen here.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Synthesize performs the single answer-generation call. Both result
// structures are embedded as JSON so the model sees exactly what the
// lookups produced, including any recovered error payloads.
func (g *Generator) Synthesize(
	ctx context.Context,
	utterance string,
	intent query.Intent,
	storeResult *querystore.Result,
	catalogResult lookup.Result,
	contextSummary string,
) (string, error) {

	userContent := g.buildUserContent(utterance, intent, storeResult, catalogResult, contextSummary)

	answer, err := llm.Complete(ctx, g.llmProvider, systemInstruction, userContent)
	if err != nil {
		return "", err
	}

	g.logger.Printf("[RESPONSE] Answer generated (%d characters)", len(answer))
	return answer, nil
}

func (g *Generator) buildUserContent(
	utterance string,
	intent query.Intent,
	storeResult *querystore.Result,
	catalogResult lookup.Result,
	contextSummary string,
) string {

	dbJSON := marshalForPrompt(storeResult)
	apiJSON := marshalForPrompt(catalogResult)

	var content strings.Builder
	if contextSummary != "" {
		content.WriteString(contextSummary)
		content.WriteString("\n\n")
	}

	content.WriteString(fmt.Sprintf("User Query: %s\n\n", utterance))
	content.WriteString(fmt.Sprintf("Query Type: %s\n\n", intent))
	content.WriteString(fmt.Sprintf("Database Result: %s\n\n", dbJSON))
	content.WriteString(fmt.Sprintf("API Result: %s\n", apiJSON))
	content.WriteString("\nPlease provide a natural language response to the user's query.")

	return content.String()
}

// marshalForPrompt never fails the stage over a serialization problem; the
// error note still gives the model something truthful to apologize about.
func marshalForPrompt(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "result could not be serialized: %v"}`, err)
	}
	return string(data)
}
