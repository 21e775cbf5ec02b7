package service

import (
	"context"
	"errors"

	"babysimple/internal/model"
	"babysimple/internal/provider"
	"babysimple/internal/repository"
	"babysimple/internal/usage"

	"github.com/rs/zerolog"
)

// chatCaller is the secondary-provider surface the orchestrator needs.
type chatCaller interface {
	Simplify(ctx context.Context, req model.SimplificationRequest, apiKey string) (string, error)
	Vendor() string
}

// geminiCaller is the primary-provider surface the orchestrator needs.
type geminiCaller interface {
	Generate(ctx context.Context, apiKey, prompt string) (*provider.GeminiResult, error)
}

// SimplifyService is the top-level orchestrator: it validates the request
// against tier limits and the daily cap, then calls the chat adapter first
// and falls back to the Gemini adapter, recording history and usage on
// success. All per-request state is explicit; the service itself is
// stateless between calls.
type SimplifyService struct {
	chat      chatCaller
	gemini    geminiCaller
	chatKey   string
	geminiKey string

	counter   *usage.Counter
	history   *HistoryService
	usageRepo repository.UsageRepository
	logger    zerolog.Logger
}

// NewSimplifyService wires the orchestrator. usageRepo may be nil when no
// database is configured; chatKey and geminiKey may be empty when the
// corresponding credential is absent.
func NewSimplifyService(
	chat chatCaller,
	gemini geminiCaller,
	chatKey, geminiKey string,
	counter *usage.Counter,
	history *HistoryService,
	usageRepo repository.UsageRepository,
	logger zerolog.Logger,
) *SimplifyService {
	return &SimplifyService{
		chat:      chat,
		gemini:    gemini,
		chatKey:   chatKey,
		geminiKey: geminiKey,
		counter:   counter,
		history:   history,
		usageRepo: usageRepo,
		logger:    logger.With().Str("service", "SimplifyService").Logger(),
	}
}

// Simplify runs one simplification request for the given tier. sessionKey
// scopes local usage and history; userID is empty for anonymous sessions.
func (s *SimplifyService) Simplify(ctx context.Context, req model.SimplificationRequest, tier model.Tier, sessionKey, userID string) (*model.SimplificationResult, error) {
	if req.Text == "" {
		return nil, ErrEmptyInput
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "English"
	}

	limits := model.LimitsFor(tier)
	if len(req.Text) > limits.CharLimit {
		return nil, &LimitExceededError{Kind: LimitCharacters, Tier: tier, Limit: limits.CharLimit}
	}

	if tier == model.TierStarter {
		count, err := s.counter.CurrentCount(ctx, sessionKey)
		if err != nil {
			return nil, err
		}
		if count >= limits.DailyCap {
			return nil, &LimitExceededError{Kind: LimitDailyCap, Tier: tier, Limit: limits.DailyCap}
		}
	}

	// Advisory only: tags the UI and history, does not pick the adapter.
	displayModel := RouteModel(req.Text, tier)
	s.logger.Info().Str("display_model", displayModel).Int("chars", len(req.Text)).Msg("Routing simplification")

	var attempts []model.Attempt

	// Chat provider goes first whenever its credential is present. Its
	// failure is logged into the attempt record and never surfaced directly.
	if s.chatKey != "" {
		text, err := s.chat.Simplify(ctx, req, s.chatKey)
		if err == nil {
			attempts = append(attempts, model.Attempt{Provider: s.chat.Vendor()})
			s.recordSuccess(ctx, req, text, s.chat.Vendor(), tier, sessionKey, userID)
			return &model.SimplificationResult{Text: text, ModelUsed: s.chat.Vendor(), Attempts: attempts}, nil
		}
		attempts = append(attempts, model.Attempt{Provider: s.chat.Vendor(), Err: err.Error()})
		s.logger.Warn().Err(err).Str("vendor", s.chat.Vendor()).Msg("Chat provider failed, falling back to Gemini")
	}

	if s.geminiKey == "" {
		if s.chatKey != "" {
			return nil, &AllProvidersFailedError{LastErr: attempts[len(attempts)-1].Err, Attempts: attempts}
		}
		return nil, ErrNoCredentials
	}

	res, err := s.gemini.Generate(ctx, s.geminiKey, provider.SimplifyPrompt(req))
	if err != nil {
		attempts = append(attempts, model.Attempt{Provider: "Gemini", Err: err.Error()})

		var authErr *provider.AuthError
		if errors.As(err, &authErr) {
			return nil, authErr
		}
		return nil, &AllProvidersFailedError{LastErr: err.Error(), Attempts: attempts}
	}

	attempts = append(attempts, model.Attempt{Provider: "Gemini", Model: res.Model})
	s.recordSuccess(ctx, req, res.Text, res.Model, tier, sessionKey, userID)
	return &model.SimplificationResult{Text: res.Text, ModelUsed: res.Model, Attempts: attempts}, nil
}

// recordSuccess appends history and counts usage for capped tiers. Database
// mirroring is best-effort.
func (s *SimplifyService) recordSuccess(ctx context.Context, req model.SimplificationRequest, output, modelUsed string, tier model.Tier, sessionKey, userID string) {
	s.history.Record(ctx, sessionKey, userID, req, output, modelUsed)

	if tier != model.TierStarter {
		return
	}
	if _, err := s.counter.RecordUse(ctx, sessionKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record usage")
	}
	if userID != "" && s.usageRepo != nil {
		if err := s.usageRepo.RecordSimplification(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to mirror usage event")
		}
	}
}
