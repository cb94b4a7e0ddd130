// FILE: test/integration/ollama_integration_test.go
// PURPOSE: Exercises the Ollama provider against a locally running server.

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"plans-assistant-be/pkg/llm"
	"plans-assistant-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProviderChat(t *testing.T) {
	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llama3"
	}

	provider := ollama.NewOllamaProvider(baseURL, model)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := llm.Complete(ctx, provider,
		"You answer with a single word.",
		"Say the word hello.",
		llm.WithTemperature(0),
	)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	t.Logf("Ollama replied: %q", out)
}
