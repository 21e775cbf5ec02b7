package service

import (
	"context"
	"fmt"
	"testing"

	"babysimple/internal/model"
	"babysimple/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	members []model.TeamMember
}

func (f *fakeTeamRepo) ListMembers(ctx context.Context, adminID string) ([]model.TeamMember, error) {
	var out []model.TeamMember
	for _, m := range f.members {
		if m.AdminID == adminID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, member *model.TeamMember) error {
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeTeamRepo) RemoveMember(ctx context.Context, adminID, memberEmail string) error {
	for i, m := range f.members {
		if m.AdminID == adminID && m.Email == memberEmail {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeProfileRepo struct {
	byEmail map[string]*model.User
	tiers   map[string]model.Tier
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byEmail: make(map[string]*model.User), tiers: make(map[string]model.Tier)}
}

func (f *fakeProfileRepo) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpsertProfile(ctx context.Context, userID, email string, tier model.Tier) error {
	f.byEmail[email] = &model.User{UserID: userID, Email: email, Tier: tier}
	return nil
}

func (f *fakeProfileRepo) UpdateTier(ctx context.Context, userID string, tier model.Tier) error {
	f.tiers[userID] = tier
	return nil
}

func newTeamFixture() (*TeamService, *fakeTeamRepo, *fakeProfileRepo) {
	team := &fakeTeamRepo{}
	profiles := newFakeProfileRepo()
	return NewTeamService(team, profiles, zerolog.Nop()), team, profiles
}

func TestInviteRequiresEnterprise(t *testing.T) {
	svc, _, _ := newTeamFixture()

	_, err := svc.Invite(context.Background(), model.TierPro, "admin", "new@example.com")
	assert.ErrorIs(t, err, ErrTeamRequiresEnterprise)
}

func TestInviteUpgradesMemberToEnterprise(t *testing.T) {
	svc, team, profiles := newTeamFixture()
	profiles.byEmail["new@example.com"] = &model.User{UserID: "u2", Email: "new@example.com", Tier: model.TierStarter}

	member, err := svc.Invite(context.Background(), model.TierEnterprise, "admin", "new@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u2", member.MemberID)
	assert.Equal(t, "Member", member.Role)
	assert.Equal(t, model.TierEnterprise, profiles.tiers["u2"])
	require.Len(t, team.members, 1)
}

func TestInviteUnknownEmail(t *testing.T) {
	svc, _, _ := newTeamFixture()

	_, err := svc.Invite(context.Background(), model.TierEnterprise, "admin", "nobody@example.com")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestInviteRejectsDuplicate(t *testing.T) {
	svc, team, profiles := newTeamFixture()
	profiles.byEmail["new@example.com"] = &model.User{UserID: "u2", Email: "new@example.com"}
	team.members = []model.TeamMember{{AdminID: "admin", MemberID: "u2", Email: "new@example.com"}}

	_, err := svc.Invite(context.Background(), model.TierEnterprise, "admin", "new@example.com")
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestInviteRejectsFullTeam(t *testing.T) {
	svc, team, profiles := newTeamFixture()
	profiles.byEmail["new@example.com"] = &model.User{UserID: "u-new", Email: "new@example.com"}
	for i := 0; i < model.MaxTeamMembers; i++ {
		team.members = append(team.members, model.TeamMember{
			AdminID: "admin",
			Email:   fmt.Sprintf("member%d@example.com", i),
		})
	}

	_, err := svc.Invite(context.Background(), model.TierEnterprise, "admin", "new@example.com")
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestRemoveMember(t *testing.T) {
	svc, team, _ := newTeamFixture()
	team.members = []model.TeamMember{{AdminID: "admin", Email: "old@example.com"}}

	require.NoError(t, svc.Remove(context.Background(), model.TierEnterprise, "admin", "old@example.com"))
	assert.Empty(t, team.members)
}

func TestListMembersRequiresEnterprise(t *testing.T) {
	svc, _, _ := newTeamFixture()

	_, err := svc.ListMembers(context.Background(), model.TierStarter, "admin")
	assert.ErrorIs(t, err, ErrTeamRequiresEnterprise)
}
