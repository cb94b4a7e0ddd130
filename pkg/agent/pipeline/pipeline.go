package pipeline

import (
	"context"
	"fmt"
	"log"

	"plans-assistant-be/pkg/agent/history"
	"plans-assistant-be/pkg/agent/lookup"
	"plans-assistant-be/pkg/agent/query"
	"plans-assistant-be/pkg/agent/response"
	"plans-assistant-be/pkg/agent/transcript"
	"plans-assistant-be/pkg/catalog"
	"plans-assistant-be/pkg/llm"
	"plans-assistant-be/pkg/querystore"
)

// Diagnostics captures each stage's raw output. It exists for operators,
// like a UI details panel or the CLI -details flag, and never feeds back into
// control flow. It is fully populated even when a stage short-circuited.
type Diagnostics struct {
	StructuredQuery string             `json:"sql_query"`
	Intent          query.Intent       `json:"query_type"`
	StoreResult     *querystore.Result `json:"db_result"`
	CatalogResult   lookup.Result      `json:"api_result"`
}

// Resolution is the terminal output of one pipeline invocation.
type Resolution struct {
	Answer      string
	Transcript  transcript.Transcript // input transcript plus the new user/assistant pair
	Diagnostics Diagnostics
}

// Pipeline chains the four resolution stages in fixed linear order:
// context building, query synthesis, store execution plus catalog fan-out,
// and answer synthesis. Each stage consumes the previous stage's values
// and returns new ones; nothing is mutated across stages, and nothing
// persists across invocations; conversational continuity comes only from
// the caller re-supplying the transcript.
type Pipeline struct {
	synthesizer *query.Synthesizer
	lookups     *lookup.Executor
	generator   *response.Generator
	logger      *log.Logger
}

// New wires the pipeline from its injected collaborators. No ambient
// globals: substituting test doubles is just passing different arguments.
func New(
	llmProvider llm.LLMProvider,
	store querystore.Store,
	catalogClient catalog.Client,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		synthesizer: query.NewSynthesizer(llmProvider, logger),
		lookups:     lookup.NewExecutor(store, catalogClient, logger),
		generator:   response.NewGenerator(llmProvider, logger),
		logger:      logger,
	}
}

// Resolve answers one utterance. It either reaches the terminal state and
// returns a Resolution, or propagates the single stage failure that
// stopped it. The only unrecovered failures are language-backend errors
// from stages two and four. Store failures, empty lookups, and individual
// catalog call failures are all recovered into payloads the answer stage
// consumes.
func (p *Pipeline) Resolve(ctx context.Context, utterance string, t transcript.Transcript) (*Resolution, error) {
	p.logger.Printf("[PIPELINE] Resolving: %s", truncate(utterance, 80))

	// Stage 1: context summary from prior exchanges
	contextSummary := history.Build(t)
	if contextSummary != "" {
		p.logger.Printf("[PIPELINE] Using context from %d exchange(s)", history.PairCount(t))
	}

	// Stage 2: structured query + intent
	structuredQuery, intent, err := p.synthesizer.Synthesize(ctx, utterance, contextSummary)
	if err != nil {
		return nil, fmt.Errorf("synthesize query: %w", err)
	}

	// Stage 3: store execution
	storeResult := p.lookups.Execute(ctx, structuredQuery)

	// Stage 4: catalog fan-out (short-circuits internally on store failure
	// or zero keys, producing the ErrorResult the generator consumes)
	catalogResult := p.lookups.FanOut(ctx, storeResult, intent)

	// Stage 5: answer synthesis
	answer, err := p.generator.Synthesize(ctx, utterance, intent, storeResult, catalogResult, contextSummary)
	if err != nil {
		return nil, fmt.Errorf("synthesize response: %w", err)
	}

	return &Resolution{
		Answer: answer,
		Transcript: t.
			Append(transcript.Turn{Role: transcript.RoleUser, Content: utterance}).
			Append(transcript.Turn{Role: transcript.RoleAssistant, Content: answer}),
		Diagnostics: Diagnostics{
			StructuredQuery: structuredQuery,
			Intent:          intent,
			StoreResult:     storeResult,
			CatalogResult:   catalogResult,
		},
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
