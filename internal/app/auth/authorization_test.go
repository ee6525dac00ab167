package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authz "github.com/yigit/clubsphere/internal/app/auth"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

type fixture struct {
	repos   *repositories.Repositories
	policy  *authz.AuthorizationService
	admin   *models.Profile
	lead    *models.Profile
	member  *models.Profile
	student *models.Profile
	club    *models.Club
	pending *models.Club
}

func setup(t *testing.T) *fixture {
	repos, _ := memstore.NewRepositories()
	f := &fixture{repos: repos, policy: authz.NewAuthorizationService(repos)}
	f.admin = testutil.CreateUser(t, repos, "admin@uni.edu", models.RoleAdmin)
	f.lead = testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)
	f.member = testutil.CreateUser(t, repos, "member@uni.edu", models.RoleStudent)
	f.student = testutil.CreateUser(t, repos, "student@uni.edu", models.RoleStudent)
	f.club = testutil.CreateClub(t, repos, "Robotics", f.lead, true)
	f.pending = testutil.CreateClub(t, repos, "Pending", f.lead, false)
	testutil.AddMember(t, repos, f.club, f.member, models.MemberRoleMember)
	return f
}

func TestGlobalRoles(t *testing.T) {
	f := setup(t)

	assert.ErrorIs(t, f.policy.RequireAuthenticated(nil), apperrors.ErrUnauthenticated)
	assert.NoError(t, f.policy.RequireAuthenticated(f.student))

	assert.ErrorIs(t, f.policy.RequireAdmin(nil), apperrors.ErrUnauthenticated)
	assert.ErrorIs(t, f.policy.RequireAdmin(f.lead), apperrors.ErrPermissionDenied)
	assert.NoError(t, f.policy.RequireAdmin(f.admin))

	assert.ErrorIs(t, f.policy.RequireClubCreator(f.student), apperrors.ErrPermissionDenied)
	assert.NoError(t, f.policy.RequireClubCreator(f.lead))
	assert.NoError(t, f.policy.RequireClubCreator(f.admin))
}

func TestRequireClubLead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	club, err := f.policy.RequireClubLead(ctx, f.lead, f.club.ID)
	require.NoError(t, err)
	assert.Equal(t, f.club.ID, club.ID)

	_, err = f.policy.RequireClubLead(ctx, f.admin, f.club.ID)
	assert.NoError(t, err)

	_, err = f.policy.RequireClubLead(ctx, f.member, f.club.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.policy.RequireClubLead(ctx, f.student, f.club.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// the global club_lead role alone grants nothing on someone else's club
	other := testutil.CreateUser(t, f.repos, "other-lead@uni.edu", models.RoleClubLead)
	_, err = f.policy.RequireClubLead(ctx, other, f.club.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRequireApprovedClubLead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.policy.RequireApprovedClubLead(ctx, f.lead, f.club.ID)
	assert.NoError(t, err)

	_, err = f.policy.RequireApprovedClubLead(ctx, f.lead, f.pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, err, apperrors.ErrClubNotApproved)
}

func TestRequireMemberOrLead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	assert.NoError(t, f.policy.RequireMemberOrLead(ctx, f.member, f.club.ID, f.member.ID))
	assert.NoError(t, f.policy.RequireMemberOrLead(ctx, f.lead, f.club.ID, f.member.ID))
	assert.ErrorIs(t, f.policy.RequireMemberOrLead(ctx, f.member, f.club.ID, f.lead.ID), apperrors.ErrPermissionDenied)
}

func TestVisibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor *models.Profile
		club  bool
		draft bool
	}{
		{"anonymous", nil, false, false},
		{"student", f.student, false, false},
		{"admin", f.admin, true, true},
		{"lead", f.lead, true, true},
	}

	draft := testutil.CreateEvent(t, f.repos, f.club, "Draft", models.EventStatusDraft, time.Hour)
	published := testutil.CreateEvent(t, f.repos, f.club, "Live", models.EventStatusPublished, time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.policy.CanViewClub(ctx, tt.actor, f.pending)
			require.NoError(t, err)
			assert.Equal(t, tt.club, ok)

			ok, err = f.policy.CanViewClub(ctx, tt.actor, f.club)
			require.NoError(t, err)
			assert.True(t, ok, "approved clubs are public")

			ok, err = f.policy.CanViewEvent(ctx, tt.actor, draft)
			require.NoError(t, err)
			assert.Equal(t, tt.draft, ok)

			ok, err = f.policy.CanViewEvent(ctx, tt.actor, published)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	// plain members do not see drafts
	ok, err := f.policy.CanViewEvent(ctx, f.member, draft)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequireEventManager(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	event := testutil.CreateEvent(t, f.repos, f.club, "Draft", models.EventStatusDraft, time.Hour)

	got, err := f.policy.RequireEventManager(ctx, f.lead, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	_, err = f.policy.RequireEventManager(ctx, f.member, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
