package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"babysimple/internal/config"
	"babysimple/internal/model"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	xaiBaseURL                = "https://api.x.ai/v1"
	xaiChatCompletionPath     = "/chat/completions"
	groqBaseURL               = "https://api.groq.com/openai/v1"
	xaiModel                  = "grok-beta"
	groqModel                 = "llama-3.3-70b-versatile"
	xaiVendorLabel            = "Grok (xAI)"
	groqVendorLabel           = "Groq (Llama-3)"
	noGrokResponseFallback    = "No response from Grok."
	noGroqResponseFallback    = "No response from Groq."
	chatCompletionTemperature = 0.3
)

// ChatAdapter is the secondary provider: a single chat-completion call to
// whichever vendor the configuration selects. It performs no retries;
// cross-provider fallback is the orchestrator's responsibility.
type ChatAdapter struct {
	kind    config.ChatProviderKind
	client  *http.Client
	xaiURL  string
	groqURL string
	logger  zerolog.Logger
}

// NewChatAdapter creates a chat adapter targeting the given vendor.
func NewChatAdapter(kind config.ChatProviderKind, logger zerolog.Logger) *ChatAdapter {
	return &ChatAdapter{
		kind: kind,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		xaiURL:  xaiBaseURL,
		groqURL: groqBaseURL,
		logger:  logger.With().Str("adapter", "chat").Logger(),
	}
}

// Vendor returns the display label of the configured vendor.
func (a *ChatAdapter) Vendor() string {
	if a.kind == config.ChatProviderXAI {
		return xaiVendorLabel
	}
	return groqVendorLabel
}

// Simplify issues one chat-completion call for the request and returns the
// first non-empty message content. A vendor that answers with no content
// yields a placeholder string rather than an error.
func (a *ChatAdapter) Simplify(ctx context.Context, req model.SimplificationRequest, apiKey string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("chat credential cannot be empty")
	}
	if a.kind == config.ChatProviderXAI {
		return a.callXAI(ctx, req, apiKey)
	}
	return a.callGroq(ctx, req, apiKey)
}

// Complete answers a free-form prompt through the configured vendor. Used by
// the contextual-chat path, which supplies its own prompt.
func (a *ChatAdapter) Complete(ctx context.Context, prompt, apiKey string) (string, error) {
	req := model.SimplificationRequest{Text: prompt}
	if a.kind == config.ChatProviderXAI {
		return a.callXAI(ctx, req, apiKey)
	}
	return a.callGroq(ctx, req, apiKey)
}

func (a *ChatAdapter) callXAI(ctx context.Context, req model.SimplificationRequest, apiKey string) (string, error) {
	requestBody := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "system", "content": chatSystemPrompt(req)},
			{"role": "user", "content": chatUserPrompt(req)},
		},
		"model":       xaiModel,
		"stream":      false,
		"temperature": chatCompletionTemperature,
	}

	bodyJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshaling xAI request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.xaiURL+xaiChatCompletionPath, bytes.NewReader(bodyJSON))
	if err != nil {
		return "", fmt.Errorf("creating xAI request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling xAI: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading xAI response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Vendor: "xAI", Status: resp.StatusCode, Body: string(body)}
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("parsing xAI response: %w", err)
	}
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return noGrokResponseFallback, nil
	}
	return response.Choices[0].Message.Content, nil
}

func (a *ChatAdapter) callGroq(ctx context.Context, req model.SimplificationRequest, apiKey string) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = a.groqURL
	cfg.HTTPClient = a.client
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: groqModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: groqPrompt(req),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling Groq: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return noGroqResponseFallback, nil
	}
	return resp.Choices[0].Message.Content, nil
}
