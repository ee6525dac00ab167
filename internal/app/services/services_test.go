package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/pkg/filestorage"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

// published records every change event handed to the broker
type published struct {
	mu     sync.Mutex
	events []realtime.ChangeEvent
}

func (p *published) add(ev realtime.ChangeEvent) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *published) all() []realtime.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]realtime.ChangeEvent{}, p.events...)
}

type env struct {
	repos     *repositories.Repositories
	store     *memstore.Store
	svc       *services.Services
	published *published

	admin   *models.Profile
	lead    *models.Profile
	student *models.Profile
}

func setup(t *testing.T, oauth ...map[string]services.OAuthProviderConfig) *env {
	t.Helper()
	repos, store := memstore.NewRepositories()

	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	broker := realtime.NewLocalBroker()
	rec := &published{}
	broker.Subscribe(rec.add)

	deps := services.Dependencies{
		Repos: repos,
		JWT: auth.NewJWTService(auth.JWTConfig{
			SecretKey:   "test-secret",
			SessionExp:  time.Hour,
			TokenIssuer: "clubsphere",
		}),
		Storage:    storage,
		Broker:     broker,
		FeedSize:   20,
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
	}
	if len(oauth) > 0 {
		deps.OAuth = oauth[0]
	}

	return &env{
		repos:     repos,
		store:     store,
		svc:       services.NewServices(deps),
		published: rec,
		admin:     testutil.CreateUser(t, repos, "admin@uni.edu", models.RoleAdmin),
		lead:      testutil.CreateUser(t, repos, "lead@uni.edu", models.RoleClubLead),
		student:   testutil.CreateUser(t, repos, "student@uni.edu", models.RoleStudent),
	}
}
