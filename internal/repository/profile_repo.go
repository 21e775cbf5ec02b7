package repository

import (
	"context"
	"errors"
	"fmt"

	"babysimple/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrProfileNotFound is returned when no profile row exists for the user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository reads and writes the profiles table of the hosted
// database. Legacy tier names are normalized at this boundary.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertProfile(ctx context.Context, userID, email string, tier model.Tier) error
	UpdateTier(ctx context.Context, userID string, tier model.Tier) error
}

type profileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepo creates a new ProfileRepository.
func NewProfileRepo(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepo{pool: pool}
}

func (r *profileRepo) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	const q = `
		SELECT id, email, tier, created_at
		FROM profiles
		WHERE id = $1
	`
	var u model.User
	var rawTier string
	err := r.pool.QueryRow(ctx, q, userID).Scan(&u.UserID, &u.Email, &rawTier, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("getting profile %s: %w", userID, err)
	}
	u.Tier = model.NormalizeTier(rawTier)
	return &u, nil
}

func (r *profileRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, email, tier, created_at
		FROM profiles
		WHERE email = $1
	`
	var u model.User
	var rawTier string
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.UserID, &u.Email, &rawTier, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("finding profile by email: %w", err)
	}
	u.Tier = model.NormalizeTier(rawTier)
	return &u, nil
}

func (r *profileRepo) UpsertProfile(ctx context.Context, userID, email string, tier model.Tier) error {
	const q = `
		INSERT INTO profiles (id, email, tier)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
	`
	if _, err := r.pool.Exec(ctx, q, userID, email, string(tier)); err != nil {
		return fmt.Errorf("upserting profile %s: %w", userID, err)
	}
	return nil
}

func (r *profileRepo) UpdateTier(ctx context.Context, userID string, tier model.Tier) error {
	const q = `UPDATE profiles SET tier = $1 WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, string(tier), userID)
	if err != nil {
		return fmt.Errorf("updating tier for %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
