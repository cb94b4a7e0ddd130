package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"plans-assistant-be/pkg/llm"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1"
	defaultModel   = "claude-3-7-sonnet-20250219"
	apiVersion     = "2023-06-01"
)

type AnthropicProvider struct {
	BaseURL   string
	ModelName string
	APIKey    string
	Client    *http.Client
}

// Ensure AnthropicProvider implements LLMProvider
var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(apiKey, modelName string) *AnthropicProvider {
	if modelName == "" {
		modelName = defaultModel
	}
	return &AnthropicProvider{
		BaseURL:   defaultBaseURL,
		ModelName: modelName,
		APIKey:    apiKey,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// --- Interface Implementation ---

func (a *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.1, // Default
		MaxTokens:   2048,
	}
	for _, opt := range opts {
		opt(options)
	}

	// The Messages API takes the system instruction as a top-level field,
	// not as a message role.
	var system string
	messages := make([]anthropicMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role == "system" {
			system = msg.Content
			continue
		}
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages = append(messages, anthropicMessage{Role: role, Content: msg.Content})
	}

	model := a.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := anthropicRequest{
		Model:       model,
		System:      system,
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := a.BaseURL + "/messages"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := a.Client.Do(req)
	if err != nil {
		return "", &llm.BackendError{Provider: "anthropic", Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.BackendError{Provider: "anthropic", Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.BackendError{
			Provider: "anthropic",
			Err:      fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", &llm.BackendError{Provider: "anthropic", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(apiResp.Content) == 0 {
		return "", &llm.BackendError{Provider: "anthropic", Err: fmt.Errorf("empty completion")}
	}

	return apiResp.Content[0].Text, nil
}

func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return a.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
