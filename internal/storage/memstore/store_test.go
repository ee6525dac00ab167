package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

func TestWithTransaction_RollbackRestoresState(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	lead := testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)

	var hookRan bool
	boom := errors.New("boom")
	err := repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		club := &models.Club{Name: "Chess"}
		require.NoError(t, repos.Clubs.Create(ctx, club))
		require.NoError(t, repos.Members.Add(ctx, &models.ClubMembership{ClubID: club.ID, UserID: lead.ID, Role: models.MemberRoleLead}))
		repositories.AfterCommit(ctx, func() { hookRan = true })
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, hookRan)

	n, err := repos.Clubs.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	mine, err := repos.Members.ListByUser(ctx, lead.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestWithTransaction_RollbackKeepsConcurrentWrites(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()

	started := make(chan struct{})
	proceed := make(chan struct{})
	txDone := make(chan error, 1)
	boom := errors.New("boom")
	go func() {
		txDone <- repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
			if err := repos.Clubs.Create(ctx, &models.Club{Name: "Rolled back"}); err != nil {
				return err
			}
			close(started)
			<-proceed
			return boom
		})
	}()
	<-started

	club := &models.Club{Name: "Outside"}
	writeDone := make(chan error, 1)
	go func() { writeDone <- repos.Clubs.Create(ctx, club) }()

	select {
	case err := <-writeDone:
		t.Fatalf("write finished while the transaction was open: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(proceed)
	require.ErrorIs(t, <-txDone, boom)
	require.NoError(t, <-writeDone)

	got, err := repos.Clubs.GetByID(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, "Outside", got.Name)
	n, err := repos.Clubs.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWithTransaction_CommitHooksMayWrite(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()

	err := repos.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		repositories.AfterCommit(txCtx, func() {
			assert.NoError(t, repos.Clubs.Create(ctx, &models.Club{Name: "From hook"}))
		})
		return nil
	})
	require.NoError(t, err)
	n, err := repos.Clubs.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWithTransaction_CommitRunsHooksInOrder(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()

	var order []int
	err := repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		repositories.AfterCommit(ctx, func() { order = append(order, 1) })
		// nested calls join the outer unit
		return repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
			repositories.AfterCommit(ctx, func() { order = append(order, 2) })
			assert.Empty(t, order)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, order)

	ran := false
	repositories.AfterCommit(ctx, func() { ran = true })
	assert.True(t, ran, "outside a transaction hooks run immediately")
}

func TestMembers_DuplicateIsConflict(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	lead := testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)
	club := testutil.CreateClub(t, repos, "Chess", lead, true)

	err := repos.Members.Add(context.Background(), &models.ClubMembership{ClubID: club.ID, UserID: lead.ID, Role: models.MemberRoleMember})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestClubs_CreateIsAlwaysPending(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	club := &models.Club{Name: "Sneaky", IsApproved: true}
	require.NoError(t, repos.Clubs.Create(context.Background(), club))

	got, err := repos.Clubs.GetByID(context.Background(), club.ID)
	require.NoError(t, err)
	assert.False(t, got.IsApproved)
}

func TestClubs_ListFilters(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	lead := testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)
	a := testutil.CreateClub(t, repos, "Astronomy", lead, true)
	testutil.CreateClub(t, repos, "Bridge", lead, true)
	testutil.CreateClub(t, repos, "Chess", lead, false)

	clubs, total, err := repos.Clubs.List(ctx, models.ClubFilter{Approved: models.BoolPtr(true), Limit: 1})
	require.NoError(t, err)
	assert.Len(t, clubs, 1)
	assert.Equal(t, 2, total, "total ignores the page size")

	clubs, _, err = repos.Clubs.List(ctx, models.ClubFilter{Search: "astro"})
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, a.ID, clubs[0].ID)
	assert.Equal(t, 1, clubs[0].MemberCount)

	clubs, _, err = repos.Clubs.List(ctx, models.ClubFilter{IDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, clubs, "an empty id set matches nothing")
}

func TestClubs_DeleteCascades(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	lead := testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)
	club := testutil.CreateClub(t, repos, "Chess", lead, true)
	event := testutil.CreateEvent(t, repos, club, "Open", models.EventStatusPublished, time.Hour)

	require.NoError(t, repos.Clubs.Delete(ctx, club.ID))

	_, err := repos.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = repos.Members.Get(ctx, club.ID, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAuthUsers_DeletePurgesEverything(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	lead := testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)
	club := testutil.CreateClub(t, repos, "Chess", lead, true)
	require.NoError(t, repos.Notifications.Create(ctx, &models.Notification{UserID: lead.ID, Title: "hi"}))

	require.NoError(t, repos.AuthUsers.Delete(ctx, lead.ID))

	_, err := repos.Profiles.GetByID(ctx, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	ids, err := repos.Members.LeadIDs(ctx, club.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	items, err := repos.Notifications.ListByUser(ctx, lead.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEvents_ApprovePublishes(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	lead := testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead)
	club := testutil.CreateClub(t, repos, "Chess", lead, true)
	event := testutil.CreateEvent(t, repos, club, "Draft night", models.EventStatusDraft, time.Hour)

	require.NoError(t, repos.Events.Approve(ctx, event.ID))

	got, err := repos.Events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdminApproved)
	assert.Equal(t, models.EventStatusPublished, got.Status)
	assert.Equal(t, "Chess", got.ClubName)
}

func TestNotifications_NewestFirstAndMarkRead(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "s@uni.edu", models.RoleStudent)
	other := testutil.CreateUser(t, repos, "o@uni.edu", models.RoleStudent)

	first := &models.Notification{UserID: user.ID, Title: "first"}
	second := &models.Notification{UserID: user.ID, Title: "second"}
	require.NoError(t, repos.Notifications.Create(ctx, first))
	require.NoError(t, repos.Notifications.Create(ctx, second))

	items, err := repos.Notifications.ListByUser(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Title)

	_, err = repos.Notifications.MarkRead(ctx, other.ID, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound, "owners only")

	changed, err := repos.Notifications.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, changed, 2)
	unread, err := repos.Notifications.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
