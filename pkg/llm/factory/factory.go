package factory

import (
	"fmt"

	"plans-assistant-be/pkg/llm"
	"plans-assistant-be/pkg/llm/anthropic"
	"plans-assistant-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, apiKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "anthropic":
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return anthropic.NewAnthropicProvider(apiKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
