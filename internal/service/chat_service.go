package service

import (
	"context"

	"babysimple/internal/model"
	"babysimple/internal/provider"

	"github.com/rs/zerolog"
)

// chatCompleter is the free-form completion surface of the chat adapter.
type chatCompleter interface {
	Complete(ctx context.Context, prompt, apiKey string) (string, error)
}

// ChatService answers follow-up questions against the source material and
// the current gist. Enterprise only. Unlike simplification, the primary
// provider goes first here and the chat vendor is the fallback.
type ChatService struct {
	gemini    geminiCaller
	chat      chatCompleter
	geminiKey string
	chatKey   string
	logger    zerolog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(gemini geminiCaller, chat chatCompleter, geminiKey, chatKey string, logger zerolog.Logger) *ChatService {
	return &ChatService{
		gemini:    gemini,
		chat:      chat,
		geminiKey: geminiKey,
		chatKey:   chatKey,
		logger:    logger.With().Str("service", "ChatService").Logger(),
	}
}

// Answer responds to one question with the context material, current gist,
// and transcript folded into the prompt.
func (s *ChatService) Answer(ctx context.Context, tier model.Tier, contextText, gist string, transcript []string, question string) (string, error) {
	if !tier.AllowsChat() {
		return "", ErrChatRequiresEnterprise
	}

	prompt := provider.ChatContextPrompt(contextText, gist, transcript, question)

	if s.geminiKey != "" {
		res, err := s.gemini.Generate(ctx, s.geminiKey, prompt)
		if err == nil {
			return res.Text, nil
		}
		s.logger.Warn().Err(err).Msg("Gemini chat failed, trying chat vendor fallback")
		if s.chatKey == "" {
			return "", err
		}
		return s.chat.Complete(ctx, prompt, s.chatKey)
	}

	if s.chatKey != "" {
		return s.chat.Complete(ctx, prompt, s.chatKey)
	}
	return "", ErrNoCredentials
}
