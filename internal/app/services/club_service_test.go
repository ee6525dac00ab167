package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/testutil"
)

func TestRegisterClub_CreatesPendingClubWithLead(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	club, err := e.svc.Clubs.RegisterClub(ctx, e.lead, &dto.CreateClubRequest{Name: "  Robotics ", Description: "Build things"})
	require.NoError(t, err)
	assert.Equal(t, "Robotics", club.Name)
	assert.False(t, club.IsApproved)

	m, err := e.repos.Members.Get(ctx, club.ID, e.lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberRoleLead, m.Role)

	list, err := e.svc.Clubs.ListClubs(ctx, &dto.ClubFilterRequest{Page: 1, PageSize: 12})
	require.NoError(t, err)
	assert.Empty(t, list.Clubs, "pending clubs are not listed")
}

func TestRegisterClub_Rejects(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Clubs.RegisterClub(ctx, e.student, &dto.CreateClubRequest{Name: "Robotics"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = e.svc.Clubs.RegisterClub(ctx, e.lead, &dto.CreateClubRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, total, err := e.repos.Clubs.List(ctx, models.ClubFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetClub_Visibility(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	pending := testutil.CreateClub(t, e.repos, "Pending", e.lead, false)
	approved := testutil.CreateClub(t, e.repos, "Approved", e.lead, true)
	testutil.CreateEvent(t, e.repos, approved, "Draft", models.EventStatusDraft, 0)
	testutil.CreateEvent(t, e.repos, approved, "Live", models.EventStatusPublished, 0)

	_, err := e.svc.Clubs.GetClub(ctx, e.student, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	detail, err := e.svc.Clubs.GetClub(ctx, e.lead, pending.ID)
	require.NoError(t, err)
	assert.True(t, detail.CanManage)
	assert.Equal(t, models.MemberRoleLead, detail.ViewerRole)

	detail, err = e.svc.Clubs.GetClub(ctx, e.student, approved.ID)
	require.NoError(t, err)
	assert.False(t, detail.CanManage)
	assert.Empty(t, detail.ViewerRole)
	require.Len(t, detail.Events, 1)
	assert.Equal(t, "Live", detail.Events[0].Title)

	detail, err = e.svc.Clubs.GetClub(ctx, e.admin, approved.ID)
	require.NoError(t, err)
	assert.True(t, detail.CanManage)
	assert.Len(t, detail.Events, 2)
}

func TestUpdateClub_OnlyLeads(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	testutil.AddMember(t, e.repos, club, e.student, models.MemberRoleMember)

	_, err := e.svc.Clubs.UpdateClub(ctx, e.student, club.ID, &dto.UpdateClubRequest{Name: "Hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := e.svc.Clubs.UpdateClub(ctx, e.lead, club.ID, &dto.UpdateClubRequest{Name: "Chess Society", Description: "New"})
	require.NoError(t, err)
	assert.Equal(t, "Chess Society", updated.Name)
	assert.True(t, updated.IsApproved, "editing never resets approval")
}

func TestUploadLogo(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)

	updated, err := e.svc.Clubs.UploadLogo(ctx, e.lead, club.ID, testutil.FileHeader(t, "logo", "logo.png", testutil.PNG))
	require.NoError(t, err)
	assert.Contains(t, updated.LogoURL, "http://localhost:8080/uploads/")

	_, err = e.svc.Clubs.UploadCover(ctx, e.lead, club.ID, testutil.FileHeader(t, "cover", "cover.txt", []byte("plain text")))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMyClubsAndLeave(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	testutil.AddMember(t, e.repos, club, e.student, models.MemberRoleMember)

	mine, err := e.svc.Clubs.MyClubs(ctx, e.student)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, e.svc.Clubs.LeaveClub(ctx, e.student, club.ID))
	mine, err = e.svc.Clubs.MyClubs(ctx, e.student)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
