package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"  abc123  ", "abc123"},
		{`"abc123"`, "abc123"},
		{`'abc123'`, "abc123"},
		{"undefined", ""},
		{"  undefined  ", ""},
		{`""`, ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeKey(tt.in), "in=%q", tt.in)
	}
}

func TestGeminiCredentialPrefersDedicatedVariable(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "primary", GeminiAPIKeyV2: "generic"}
	assert.Equal(t, "primary", cfg.GeminiCredential())

	cfg = &Config{GeminiAPIKeyV2: "generic"}
	assert.Equal(t, "generic", cfg.GeminiCredential())

	cfg = &Config{GeminiAPIKey: "undefined", GeminiAPIKeyV2: "generic"}
	assert.Equal(t, "generic", cfg.GeminiCredential())
}

func TestChatCredentialPrefersGroq(t *testing.T) {
	cfg := &Config{GroqAPIKey: "gsk_abc", XAIAPIKey: "xai-abc"}
	assert.Equal(t, "gsk_abc", cfg.ChatCredential())

	cfg = &Config{XAIAPIKey: "xai-abc"}
	assert.Equal(t, "xai-abc", cfg.ChatCredential())
}

func TestResolveChatProvider(t *testing.T) {
	// Explicit selection wins over the key prefix.
	cfg := &Config{ChatProvider: "groq", XAIAPIKey: "xai-abc"}
	assert.Equal(t, ChatProviderGroq, cfg.ResolveChatProvider())

	cfg = &Config{ChatProvider: "XAI", GroqAPIKey: "gsk_abc"}
	assert.Equal(t, ChatProviderXAI, cfg.ResolveChatProvider())

	// Prefix sniffing when nothing is configured explicitly.
	cfg = &Config{XAIAPIKey: "xai-abc"}
	assert.Equal(t, ChatProviderXAI, cfg.ResolveChatProvider())

	cfg = &Config{GroqAPIKey: "gsk_abc"}
	assert.Equal(t, ChatProviderGroq, cfg.ResolveChatProvider())

	// Default is Groq.
	cfg = &Config{}
	assert.Equal(t, ChatProviderGroq, cfg.ResolveChatProvider())
}
