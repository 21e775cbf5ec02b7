package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// ChatProviderKind identifies which vendor the chat adapter targets.
type ChatProviderKind string

const (
	ChatProviderXAI  ChatProviderKind = "xai"
	ChatProviderGroq ChatProviderKind = "groq"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DATABASE_URL"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET"`

	// Provider credentials. Sourced from the environment at process start and
	// never persisted anywhere by the application.
	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`
	GeminiAPIKeyV2 string `envconfig:"API_KEY"`
	GroqAPIKey     string `envconfig:"GROQ_API_KEY"`
	XAIAPIKey      string `envconfig:"XAI_API_KEY"`

	// Explicit chat vendor selection. When empty the vendor is inferred from
	// the credential prefix (see ResolveChatProvider).
	ChatProvider string `envconfig:"CHAT_PROVIDER"`

	// Document archive (Supabase-compatible S3). Optional; archiving is
	// skipped when the bucket is unset.
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SanitizeKey normalizes a credential sourced from the environment. Empty
// values, the literal "undefined" a misconfigured launcher may inject, and
// values that are only quote characters all count as absent.
func SanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "undefined" {
		return ""
	}
	key = strings.NewReplacer(`"`, "", `'`, "").Replace(key)
	return strings.TrimSpace(key)
}

// GeminiCredential returns the primary-provider key, preferring the dedicated
// variable over the generic one.
func (c *Config) GeminiCredential() string {
	if key := SanitizeKey(c.GeminiAPIKey); key != "" {
		return key
	}
	return SanitizeKey(c.GeminiAPIKeyV2)
}

// ChatCredential returns the secondary-provider key, checking the Groq
// variable first and falling back to the xAI one.
func (c *Config) ChatCredential() string {
	if key := SanitizeKey(c.GroqAPIKey); key != "" {
		return key
	}
	return SanitizeKey(c.XAIAPIKey)
}

// ResolveChatProvider returns the configured chat vendor. An explicit
// CHAT_PROVIDER wins; otherwise the vendor is sniffed from the credential
// prefix, kept as a compatibility shim for deployments that only set a key.
func (c *Config) ResolveChatProvider() ChatProviderKind {
	switch ChatProviderKind(strings.ToLower(c.ChatProvider)) {
	case ChatProviderXAI:
		return ChatProviderXAI
	case ChatProviderGroq:
		return ChatProviderGroq
	}
	if strings.HasPrefix(c.ChatCredential(), "xai-") {
		return ChatProviderXAI
	}
	return ChatProviderGroq
}
