package service

import (
	"context"
	"errors"

	"babysimple/internal/model"
	"babysimple/internal/repository"

	"github.com/rs/zerolog"
)

var (
	ErrTeamRequiresEnterprise = errors.New("team management requires the Enterprise plan")
	ErrTeamFull               = errors.New("team limit reached")
	ErrAlreadyMember          = errors.New("user already in team")
	// ErrMemberNotFound means the invitee has no profile yet.
	ErrMemberNotFound = errors.New("user not found: ask them to sign up for a free account first")
)

// TeamService manages an Enterprise admin's team. Inviting a member
// upgrades their profile to Enterprise and records the membership.
type TeamService struct {
	team     repository.TeamRepository
	profiles repository.ProfileRepository
	logger   zerolog.Logger
}

// NewTeamService creates a TeamService.
func NewTeamService(team repository.TeamRepository, profiles repository.ProfileRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{
		team:     team,
		profiles: profiles,
		logger:   logger.With().Str("service", "TeamService").Logger(),
	}
}

// ListMembers returns the admin's current team.
func (s *TeamService) ListMembers(ctx context.Context, adminTier model.Tier, adminID string) ([]model.TeamMember, error) {
	if !adminTier.AllowsTeam() {
		return nil, ErrTeamRequiresEnterprise
	}
	if s.team == nil {
		return nil, ErrStoreUnavailable
	}
	return s.team.ListMembers(ctx, adminID)
}

// Invite adds a member by email: rejects a full team and duplicates,
// upgrades the member to Enterprise, then records the membership.
func (s *TeamService) Invite(ctx context.Context, adminTier model.Tier, adminID, email string) (*model.TeamMember, error) {
	if !adminTier.AllowsTeam() {
		return nil, ErrTeamRequiresEnterprise
	}
	if s.team == nil {
		return nil, ErrStoreUnavailable
	}

	members, err := s.team.ListMembers(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if len(members) >= model.MaxTeamMembers {
		return nil, ErrTeamFull
	}
	for _, m := range members {
		if m.Email == email {
			return nil, ErrAlreadyMember
		}
	}

	target, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if err := s.profiles.UpdateTier(ctx, target.UserID, model.TierEnterprise); err != nil {
		s.logger.Error().Err(err).Str("member_id", target.UserID).Msg("Failed to upgrade invited member")
		return nil, err
	}

	member := &model.TeamMember{
		AdminID:  adminID,
		MemberID: target.UserID,
		Email:    email,
		Role:     "Member",
	}
	if err := s.team.AddMember(ctx, member); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to add team member")
		return nil, err
	}
	return member, nil
}

// Remove drops a member from the admin's team.
func (s *TeamService) Remove(ctx context.Context, adminTier model.Tier, adminID, email string) error {
	if !adminTier.AllowsTeam() {
		return ErrTeamRequiresEnterprise
	}
	if s.team == nil {
		return ErrStoreUnavailable
	}
	return s.team.RemoveMember(ctx, adminID, email)
}
