package service

import (
	"context"
	"time"

	"babysimple/internal/model"
	"babysimple/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HistoryService owns simplification history: a capped in-memory list per
// session, mirrored to the hosted database when the user is authenticated.
// Mirroring is best-effort and never fails the overall operation.
type HistoryService struct {
	local  *repository.MemoryHistory
	repo   repository.HistoryRepository
	logger zerolog.Logger
}

// NewHistoryService creates a HistoryService. repo may be nil when no
// database is configured.
func NewHistoryService(local *repository.MemoryHistory, repo repository.HistoryRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{
		local:  local,
		repo:   repo,
		logger: logger.With().Str("service", "HistoryService").Logger(),
	}
}

// Record appends a successful simplification, newest first, and mirrors it
// for authenticated users.
func (s *HistoryService) Record(ctx context.Context, sessionKey, userID string, req model.SimplificationRequest, output, modelUsed string) model.HistoryItem {
	item := model.HistoryItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		Niche:     req.Niche,
		Input:     req.Text,
		Output:    output,
		Model:     modelUsed,
		Tone:      req.Tone,
	}
	s.local.Append(sessionKey, item)

	if userID != "" && s.repo != nil {
		if err := s.repo.Insert(ctx, &item); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to mirror history item")
		}
	}
	return item
}

// List returns the most recent items: from the database for authenticated
// users, from the session store otherwise.
func (s *HistoryService) List(ctx context.Context, sessionKey, userID string) ([]model.HistoryItem, error) {
	if userID != "" && s.repo != nil {
		return s.repo.ListRecent(ctx, userID, model.MaxHistoryItems)
	}
	return s.local.List(sessionKey), nil
}

// ClearSession drops the session's local history on sign-out. Remote history
// is kept.
func (s *HistoryService) ClearSession(sessionKey string) {
	s.local.Clear(sessionKey)
}
