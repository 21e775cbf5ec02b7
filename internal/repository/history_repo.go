package repository

import (
	"context"
	"fmt"

	"babysimple/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository mirrors successful simplifications to the history table.
// Append-only with truncation on read; no update or merge semantics.
type HistoryRepository interface {
	Insert(ctx context.Context, item *model.HistoryItem) error
	ListRecent(ctx context.Context, userID string, limit int) ([]model.HistoryItem, error)
	DeleteForUser(ctx context.Context, userID string) error
}

type historyRepo struct {
	pool *pgxpool.Pool
}

// NewHistoryRepo creates a new HistoryRepository.
func NewHistoryRepo(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepo{pool: pool}
}

func (r *historyRepo) Insert(ctx context.Context, item *model.HistoryItem) error {
	const q = `
		INSERT INTO history (id, user_id, niche, input, output, model, tone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, q,
		item.ID, item.UserID, item.Niche, item.Input, item.Output, item.Model, item.Tone, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting history item: %w", err)
	}
	return nil
}

func (r *historyRepo) ListRecent(ctx context.Context, userID string, limit int) ([]model.HistoryItem, error) {
	const q = `
		SELECT id, user_id, niche, input, output, model, tone, created_at
		FROM history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var items []model.HistoryItem
	for rows.Next() {
		var it model.HistoryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Niche, &it.Input, &it.Output, &it.Model, &it.Tone, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return items, nil
}

func (r *historyRepo) DeleteForUser(ctx context.Context, userID string) error {
	const q = `DELETE FROM history WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, q, userID); err != nil {
		return fmt.Errorf("deleting history for user %s: %w", userID, err)
	}
	return nil
}
