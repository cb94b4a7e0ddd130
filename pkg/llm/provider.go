package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend.
//
// Implementations must return a *BackendError for transport failures,
// non-2xx statuses, and unparseable completions so callers can tell
// backend trouble apart from their own errors. They must never swallow
// a failure into an empty completion.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// Complete is a helper for the common "one system instruction, one user
// content" call shape used by the resolution pipeline.
func Complete(ctx context.Context, provider LLMProvider, system, user string, options ...Option) (string, error) {
	history := []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	return provider.Chat(ctx, history, options...)
}
