package service

import (
	"context"
	"time"

	"babysimple/internal/model"
	"babysimple/internal/repository"
	"babysimple/internal/usage"

	"github.com/rs/zerolog"
)

// UserService exposes profile operations and the sign-out cleanup of
// session-local state.
type UserService struct {
	profiles  repository.ProfileRepository
	history   *HistoryService
	counter   *usage.Counter
	usageRepo repository.UsageRepository
	logger    zerolog.Logger
}

// NewUserService creates a UserService. usageRepo may be nil when no
// database is configured.
func NewUserService(profiles repository.ProfileRepository, history *HistoryService, counter *usage.Counter, usageRepo repository.UsageRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		profiles:  profiles,
		history:   history,
		counter:   counter,
		usageRepo: usageRepo,
		logger:    logger.With().Str("service", "UserService").Logger(),
	}
}

// GetProfile returns the user's profile with the tier normalized.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if s.profiles == nil {
		return nil, ErrStoreUnavailable
	}
	return s.profiles.GetProfile(ctx, userID)
}

// EnsureProfile seeds a Starter profile row on first sign-in. Accounts
// always start at Starter; upgrades happen elsewhere.
func (s *UserService) EnsureProfile(ctx context.Context, userID, email string) error {
	if s.profiles == nil {
		return ErrStoreUnavailable
	}
	if err := s.profiles.UpsertProfile(ctx, userID, email, model.TierStarter); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to seed profile")
		return err
	}
	return nil
}

// UsageToday returns the user's simplification count for the current day,
// preferring the durable event table over the session counter.
func (s *UserService) UsageToday(ctx context.Context, userID string) (int, error) {
	if s.usageRepo != nil && userID != "" {
		count, err := s.usageRepo.CountSimplificationsOnDay(ctx, userID, time.Now())
		if err == nil {
			return count, nil
		}
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to count usage events, using session counter")
	}
	return s.counter.CurrentCount(ctx, userID)
}

// SignOut clears the session's local history and usage record.
func (s *UserService) SignOut(ctx context.Context, sessionKey string) {
	s.history.ClearSession(sessionKey)
	if err := s.counter.Clear(ctx, sessionKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear usage record")
	}
}
