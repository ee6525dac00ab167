package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/seed"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

func TestCreateDefaultData(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()

	require.NoError(t, seed.CreateDefaultData(ctx, repos, "admin@uni.edu", "s3cret-pass", zerolog.Nop()))

	user, err := repos.AuthUsers.GetByEmail(ctx, "admin@uni.edu")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret-pass"))

	profile, err := repos.Profiles.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, profile.Role)

	require.NoError(t, seed.CreateDefaultData(ctx, repos, "admin@uni.edu", "s3cret-pass", zerolog.Nop()), "second run is a no-op")
	count, err := repos.Profiles.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateDefaultData_PromotesExistingAccount(t *testing.T) {
	repos, _ := memstore.NewRepositories()
	ctx := context.Background()
	existing := testutil.CreateUser(t, repos, "boss@uni.edu", models.RoleStudent)

	require.NoError(t, seed.CreateDefaultData(ctx, repos, "boss@uni.edu", "ignored", zerolog.Nop()))

	profile, err := repos.Profiles.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, profile.Role)
}

func TestCreateDefaultData_Skips(t *testing.T) {
	repos, _ := memstore.NewRepositories()

	assert.NoError(t, seed.CreateDefaultData(context.Background(), repos, "", "", zerolog.Nop()))
	assert.Error(t, seed.CreateDefaultData(context.Background(), repos, "admin@uni.edu", "", zerolog.Nop()))
}
