package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UsageRepository mirrors Starter-tier simplification events to the hosted
// database for authenticated users. The authoritative daily cap lives in the
// usage counter; this table is the durable record.
type UsageRepository interface {
	// RecordSimplification appends one simplification event for the user.
	RecordSimplification(ctx context.Context, userID string) error
	// CountSimplificationsOnDay counts the user's events within the local
	// calendar day containing t.
	CountSimplificationsOnDay(ctx context.Context, userID string, t time.Time) (int, error)
}

type usageRepo struct {
	pool *pgxpool.Pool
}

// NewUsageRepo creates a new UsageRepository.
func NewUsageRepo(pool *pgxpool.Pool) UsageRepository {
	return &usageRepo{pool: pool}
}

func (r *usageRepo) RecordSimplification(ctx context.Context, userID string) error {
	const q = `INSERT INTO usage_events (user_id, event_type) VALUES ($1, 'simplification')`
	if _, err := r.pool.Exec(ctx, q, userID); err != nil {
		return fmt.Errorf("recording simplification event for user %s: %w", userID, err)
	}
	return nil
}

func (r *usageRepo) CountSimplificationsOnDay(ctx context.Context, userID string, t time.Time) (int, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)

	const q = `
		SELECT COUNT(*)
		FROM usage_events
		WHERE user_id = $1
		  AND event_type = 'simplification'
		  AND created_at >= $2
		  AND created_at < $3
	`
	var count int
	if err := r.pool.QueryRow(ctx, q, userID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting simplification events for user %s: %w", userID, err)
	}
	return count, nil
}
