package query

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"plans-assistant-be/pkg/llm"
)

// fakeProvider returns a scripted completion and records what it was sent.
type fakeProvider struct {
	completion string
	err        error
	history    []llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.history = history
	return f.completion, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{
			name:  "distinct category shape",
			query: "SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'",
			want:  IntentCategory,
		},
		{
			name:  "plain category shape",
			query: "SELECT Category FROM plans WHERE Category LIKE '%TV%'",
			want:  IntentCategory,
		},
		{
			name:  "plan lookup",
			query: "SELECT Plans FROM plans WHERE Plans LIKE '%5G%'",
			want:  IntentItem,
		},
		{
			name:  "unrecognized text defaults to item",
			query: "this is not SQL at all",
			want:  IntentItem,
		},
		{
			name:  "wildcard projection defaults to item",
			query: "SELECT * FROM plans",
			want:  IntentItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSynthesizeTrimsAndClassifies(t *testing.T) {
	provider := &fakeProvider{
		completion: "\n  SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'  \n",
	}
	s := NewSynthesizer(provider, testLogger())

	structuredQuery, intent, err := s.Synthesize(context.Background(), "I need mobile plans", "")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if structuredQuery != "SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'" {
		t.Errorf("query not trimmed: %q", structuredQuery)
	}
	if intent != IntentCategory {
		t.Errorf("intent = %v, want category", intent)
	}
}

func TestSynthesizeUserContent(t *testing.T) {
	t.Run("without context the utterance goes alone", func(t *testing.T) {
		provider := &fakeProvider{completion: "SELECT Plans FROM plans WHERE Plans LIKE '%5G%'"}
		s := NewSynthesizer(provider, testLogger())

		if _, _, err := s.Synthesize(context.Background(), "I need 5G plans", ""); err != nil {
			t.Fatalf("Synthesize returned error: %v", err)
		}

		user := lastUserMessage(t, provider.history)
		if user != "I need 5G plans" {
			t.Errorf("user content = %q, want bare utterance", user)
		}
	})

	t.Run("context summary prefixes the utterance", func(t *testing.T) {
		provider := &fakeProvider{completion: "SELECT Plans FROM plans WHERE Plans LIKE '%5G%'"}
		s := NewSynthesizer(provider, testLogger())

		summary := "Previous conversation:\nUser: q\nAssistant: a"
		if _, _, err := s.Synthesize(context.Background(), "what about 5G?", summary); err != nil {
			t.Fatalf("Synthesize returned error: %v", err)
		}

		user := lastUserMessage(t, provider.history)
		if !strings.HasPrefix(user, summary) {
			t.Errorf("user content missing context prefix: %q", user)
		}
		if !strings.Contains(user, "Current user query: what about 5G?") {
			t.Errorf("user content missing current query marker: %q", user)
		}
	})

	t.Run("system instruction names the schema", func(t *testing.T) {
		provider := &fakeProvider{completion: "SELECT Plans FROM plans WHERE Plans LIKE '%5G%'"}
		s := NewSynthesizer(provider, testLogger())

		if _, _, err := s.Synthesize(context.Background(), "anything", ""); err != nil {
			t.Fatalf("Synthesize returned error: %v", err)
		}

		if len(provider.history) == 0 || provider.history[0].Role != "system" {
			t.Fatal("expected a system message first")
		}
		system := provider.history[0].Content
		for _, col := range []string{"Category", "Plans", "Price", "Description"} {
			if !strings.Contains(system, col) {
				t.Errorf("system instruction missing column %q", col)
			}
		}
		if !strings.Contains(system, "ONLY return the SQL query") {
			t.Error("system instruction missing output directive")
		}
	})
}

func TestSynthesizePropagatesBackendError(t *testing.T) {
	backendErr := &llm.BackendError{Provider: "fake", Err: errors.New("boom")}
	provider := &fakeProvider{err: backendErr}
	s := NewSynthesizer(provider, testLogger())

	_, _, err := s.Synthesize(context.Background(), "anything", "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var be *llm.BackendError
	if !errors.As(err, &be) {
		t.Errorf("error %v is not a BackendError", err)
	}
}

func lastUserMessage(t *testing.T, history []llm.Message) string {
	t.Helper()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Content
		}
	}
	t.Fatal("no user message sent")
	return ""
}
