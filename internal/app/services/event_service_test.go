package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/testutil"
)

func eventDetails(title string) dto.EventDetails {
	return dto.EventDetails{
		Title:     title,
		EventDate: time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		Location:  "Room 101",
	}
}

func TestSubmitEvent_PendingClubRejected(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Pending", e.lead, false)

	_, err := e.svc.Events.SubmitEvent(ctx, e.lead, club.ID, &dto.SubmitEventRequest{EventDetails: eventDetails("Kickoff")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, err, apperrors.ErrClubNotApproved)

	_, total, err := e.repos.Events.List(ctx, models.EventFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSubmitEvent(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)

	event, err := e.svc.Events.SubmitEvent(ctx, e.lead, club.ID, &dto.SubmitEventRequest{EventDetails: eventDetails("Kickoff")})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusDraft, event.Status)
	assert.False(t, event.IsAdminApproved)
	assert.Equal(t, "Chess", event.ClubName)

	_, err = e.svc.Events.SubmitEvent(ctx, e.student, club.ID, &dto.SubmitEventRequest{EventDetails: eventDetails("Nope")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	req := &dto.SubmitEventRequest{EventDetails: eventDetails("Bad date")}
	req.EventDate = "next tuesday"
	_, err = e.svc.Events.SubmitEvent(ctx, e.lead, club.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateLiveEvent_PublishesAndQueues(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)

	event, err := e.svc.Events.CreateLiveEvent(ctx, e.lead, &dto.LiveEventRequest{
		EventDetails: eventDetails("Simul"),
		ClubID:       club.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPublished, event.Status)

	queue, err := e.svc.Admin.EventQueue(ctx, e.admin)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, event.ID, queue[0].ID)

	list, err := e.svc.Events.ListPublished(ctx, &dto.EventFilterRequest{Upcoming: true, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, list.Events, 1)
}

func TestDraftsHiddenFromStudents(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	draft := testutil.CreateEvent(t, e.repos, club, "Draft", models.EventStatusDraft, time.Hour)
	testutil.CreateEvent(t, e.repos, club, "Live", models.EventStatusPublished, time.Hour)
	testutil.CreateEvent(t, e.repos, club, "Past", models.EventStatusPublished, -time.Hour)

	list, err := e.svc.Events.ListPublished(ctx, &dto.EventFilterRequest{Upcoming: true, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, list.Events, 1)
	assert.Equal(t, "Live", list.Events[0].Title)

	list, err = e.svc.Events.ListPublished(ctx, &dto.EventFilterRequest{ClubID: club.ID.String(), Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, list.Events, 2)

	_, err = e.svc.Events.GetEvent(ctx, e.student, draft.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	got, err := e.svc.Events.GetEvent(ctx, e.lead, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	_, err = e.svc.Events.ListPublished(ctx, &dto.EventFilterRequest{ClubID: "not-a-uuid"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEventManagement(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	event := testutil.CreateEvent(t, e.repos, club, "Draft", models.EventStatusDraft, time.Hour)

	_, err := e.svc.Events.SetStatus(ctx, e.student, event.ID, &dto.SetEventStatusRequest{Status: "published"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := e.svc.Events.SetStatus(ctx, e.lead, event.ID, &dto.SetEventStatusRequest{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPublished, updated.Status)

	updated, err = e.svc.Events.UpdateEvent(ctx, e.lead, event.ID, &dto.UpdateEventRequest{EventDetails: eventDetails("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Room 101", updated.Location)

	require.NoError(t, e.svc.Events.DeleteEvent(ctx, e.lead, event.ID))
	_, err = e.repos.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStudentDashboard(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	club := testutil.CreateClub(t, e.repos, "Chess", e.lead, true)
	testutil.CreateClub(t, e.repos, "Go Club", e.lead, true)
	testutil.AddMember(t, e.repos, club, e.student, models.MemberRoleMember)
	testutil.CreateEvent(t, e.repos, club, "Live", models.EventStatusPublished, time.Hour)

	dash, err := e.svc.Dashboards.Student(ctx, e.student)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.JoinedClubs)
	assert.Equal(t, 1, dash.UpcomingEvents)
	require.Len(t, dash.DiscoverClubs, 1)
	assert.Equal(t, "Go Club", dash.DiscoverClubs[0].Name)
}
