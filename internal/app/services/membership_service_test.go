package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
	"github.com/yigit/clubsphere/internal/testutil"
)

func TestAddMember(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)

	m, err := e.svc.Members.AddMember(ctx, e.lead, club.ID, &dto.AddMemberRequest{Email: " STUDENT@uni.edu"})
	require.NoError(t, err)
	assert.Equal(t, models.MemberRoleMember, m.Role)
	assert.Equal(t, e.student.ID, m.UserID)

	feed, err := e.svc.Notifications.Latest(ctx, e.student.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 1)
	assert.Equal(t, models.NotificationInfo, feed.Notifications[0].Type)

	events := e.published.all()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.ChangeInsert, events[0].Type)

	_, err = e.svc.Members.AddMember(ctx, e.lead, club.ID, &dto.AddMemberRequest{Email: "student@uni.edu"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	feed, err = e.svc.Notifications.Latest(ctx, e.student.ID, 0)
	require.NoError(t, err)
	assert.Len(t, feed.Notifications, 1, "a rejected add sends no notification")
}

func TestAddMember_UnknownEmail(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)

	_, err := e.svc.Members.AddMember(ctx, e.lead, club.ID, &dto.AddMemberRequest{Email: "ghost@uni.edu"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	members, err := e.repos.Members.ListByClub(ctx, club.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Empty(t, e.published.all())
}

func TestAddMember_RequiresLead(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	other := testutil.CreateUser(t, e.repos, "other@uni.edu", models.RoleStudent)

	_, err := e.svc.Members.AddMember(ctx, e.student, club.ID, &dto.AddMemberRequest{Email: other.Email})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = e.svc.Members.AddMember(ctx, e.admin, club.ID, &dto.AddMemberRequest{Email: other.Email, Role: "lead"})
	assert.NoError(t, err, "admins manage every club")
}

func TestChangeRoleAndRemove(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	testutil.AddMember(t, e.repos, club, e.student, models.MemberRoleMember)

	require.NoError(t, e.svc.Members.ChangeRole(ctx, e.lead, club.ID, e.student.ID, &dto.ChangeMemberRoleRequest{Role: "lead"}))
	m, err := e.repos.Members.Get(ctx, club.ID, e.student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberRoleLead, m.Role)

	err = e.svc.Members.ChangeRole(ctx, e.lead, club.ID, e.student.ID, &dto.ChangeMemberRoleRequest{Role: "owner"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	require.NoError(t, e.svc.Members.RemoveMember(ctx, e.lead, club.ID, e.student.ID))
	_, err = e.repos.Members.Get(ctx, club.ID, e.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestListMembers_PendingClubHidden(t *testing.T) {
	e := setup(t)
	club := testutil.CreateClub(t, e.repos, "Pending", e.lead, false)

	_, err := e.svc.Members.ListMembers(context.Background(), e.student, club.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	members, err := e.svc.Members.ListMembers(context.Background(), e.lead, club.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
