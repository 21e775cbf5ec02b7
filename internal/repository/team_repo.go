package repository

import (
	"context"
	"fmt"

	"babysimple/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamRepository manages the team_members table for Enterprise admins.
type TeamRepository interface {
	ListMembers(ctx context.Context, adminID string) ([]model.TeamMember, error)
	AddMember(ctx context.Context, member *model.TeamMember) error
	RemoveMember(ctx context.Context, adminID, memberEmail string) error
}

type teamRepo struct {
	pool *pgxpool.Pool
}

// NewTeamRepo creates a new TeamRepository.
func NewTeamRepo(pool *pgxpool.Pool) TeamRepository {
	return &teamRepo{pool: pool}
}

func (r *teamRepo) ListMembers(ctx context.Context, adminID string) ([]model.TeamMember, error) {
	const q = `
		SELECT admin_id, member_id, member_email, role
		FROM team_members
		WHERE admin_id = $1
		ORDER BY member_email
	`
	rows, err := r.pool.Query(ctx, q, adminID)
	if err != nil {
		return nil, fmt.Errorf("querying team members: %w", err)
	}
	defer rows.Close()

	var members []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.AdminID, &m.MemberID, &m.Email, &m.Role); err != nil {
			return nil, fmt.Errorf("scanning team member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team member rows: %w", err)
	}
	return members, nil
}

func (r *teamRepo) AddMember(ctx context.Context, member *model.TeamMember) error {
	const q = `
		INSERT INTO team_members (admin_id, member_id, member_email, role)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, q, member.AdminID, member.MemberID, member.Email, member.Role); err != nil {
		return fmt.Errorf("adding team member %s: %w", member.Email, err)
	}
	return nil
}

func (r *teamRepo) RemoveMember(ctx context.Context, adminID, memberEmail string) error {
	const q = `DELETE FROM team_members WHERE admin_id = $1 AND member_email = $2`
	if _, err := r.pool.Exec(ctx, q, adminID, memberEmail); err != nil {
		return fmt.Errorf("removing team member %s: %w", memberEmail, err)
	}
	return nil
}
