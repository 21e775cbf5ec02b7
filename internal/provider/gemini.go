package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// API surfaces to try, outermost loop. Some keys are restricted to a
// specific version.
var geminiAPIVersions = []string{"v1", "v1beta"}

// Model identifiers in attempt order, fastest/cheapest first, legacy aliases
// last.
var geminiModelIDs = []string{
	"models/gemini-1.5-flash",
	"models/gemini-1.5-flash-8b",
	"models/gemini-1.5-pro",
	"models/gemini-pro",
	"models/gemini-1.0-pro",
	"gemini-1.5-flash",
	"gemini-2.0-flash-exp",
}

// GeminiResult is a successful generation and the model id that produced it.
type GeminiResult struct {
	Text  string
	Model string
}

// GeminiAdapter is the primary provider: a content-generation call that
// searches version x model pairs sequentially until one succeeds. An invalid
// credential aborts the whole search with AuthError.
type GeminiAdapter struct {
	client   *http.Client
	baseURL  string
	versions []string
	models   []string
	logger   zerolog.Logger
}

// NewGeminiAdapter creates an adapter with the default version/model lists.
func NewGeminiAdapter(logger zerolog.Logger) *GeminiAdapter {
	return &GeminiAdapter{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  geminiBaseURL,
		versions: geminiAPIVersions,
		models:   geminiModelIDs,
		logger:   logger.With().Str("adapter", "gemini").Logger(),
	}
}

// Generate attempts each (version, model) pair in order and returns on the
// first success. Attempts run strictly sequentially so the auth short-circuit
// can abort cleanly.
func (a *GeminiAdapter) Generate(ctx context.Context, apiKey, prompt string) (*GeminiResult, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini credential cannot be empty")
	}

	lastErr := ""
	for _, version := range a.versions {
		for _, modelID := range a.models {
			text, err := a.generateContent(ctx, version, modelID, apiKey, prompt)
			if err == nil {
				return &GeminiResult{Text: text, Model: modelID}, nil
			}

			msg := err.Error()
			if strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "permission") {
				return nil, &AuthError{Vendor: "Gemini", Msg: msg}
			}

			lastErr = msg
			a.logger.Warn().Str("model", modelID).Str("version", version).Msg("Gemini attempt failed")
		}
	}
	return nil, &ExhaustedError{LastErr: lastErr}
}

func (a *GeminiAdapter) generateContent(ctx context.Context, version, modelID, apiKey, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshaling gemini request: %w", err)
	}

	modelPath := modelID
	if !strings.HasPrefix(modelPath, "models/") {
		modelPath = "models/" + modelPath
	}
	url := fmt.Sprintf("%s/%s/%s:generateContent?key=%s", a.baseURL, version, modelPath, apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading gemini response: %w", err)
	}

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		Error *struct {
			Message string `json:"message"`
			Status  string `json:"status"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("parsing gemini response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("gemini API error %d: %s %s", response.Error.Code, response.Error.Status, response.Error.Message)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}
