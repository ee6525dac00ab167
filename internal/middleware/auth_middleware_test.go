package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

const cookieName = "cs_session"

func init() {
	gin.SetMode(gin.TestMode)
}

// brokenSessions fails every lookup as an unreachable store would
type brokenSessions struct {
	repositories.ISessionRepository
}

func (brokenSessions) GetByID(context.Context, uuid.UUID) (*models.Session, error) {
	return nil, apperrors.NewUpstreamError("identity store unavailable", errors.New("connection refused"))
}

func breakSessions(repos *repositories.Repositories) {
	repos.Sessions = brokenSessions{repos.Sessions}
}

// readOnlyProfiles refuses profile writes as a row-level policy would
type readOnlyProfiles struct {
	repositories.IProfileRepository
}

func (readOnlyProfiles) Upsert(context.Context, *models.Profile) error {
	return apperrors.NewForbiddenError("profiles are read-only")
}

type fixture struct {
	repos  *repositories.Repositories
	svc    *services.Services
	mw     *middleware.AuthMiddleware
	router *gin.Engine
}

func newFixture(t *testing.T, wrap ...func(*repositories.Repositories)) *fixture {
	t.Helper()
	repos, _ := memstore.NewRepositories()
	for _, w := range wrap {
		w(repos)
	}
	svc := services.NewServices(services.Dependencies{
		Repos:      repos,
		JWT:        auth.NewJWTService(auth.JWTConfig{SecretKey: "test", SessionExp: time.Hour, TokenIssuer: "clubsphere"}),
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
	})
	mw := middleware.NewAuthMiddleware(svc.Auth, svc.Profiles, cookieName, zerolog.Nop())

	r := gin.New()
	r.Use(mw.SessionResolver())
	r.GET("/whoami", func(c *gin.Context) {
		req := appctx.FromGin(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": req.Authenticated(), "role": req.Role()})
	})
	api := r.Group("/api")
	api.GET("/me", mw.APIAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/admin", mw.APIRoleRequired(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	pages := r.Group("/", middleware.PageGate())
	pages.GET("/dashboard/admin", func(c *gin.Context) { c.String(http.StatusOK, "admin") })

	return &fixture{repos: repos, svc: svc, mw: mw, router: r}
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()
	session, err := f.svc.Auth.SignIn(context.Background(), &dto.LoginRequest{Email: email, Password: testutil.Password})
	require.NoError(t, err)
	return session.AccessToken
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSessionResolver_BearerAndCookie(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.repos, "lead@uni.edu", models.RoleClubLead)
	token := f.token(t, "lead@uni.edu")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := f.do(req)
	assert.JSONEq(t, `{"authenticated":true,"role":"club_lead"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w = f.do(req)
	assert.JSONEq(t, `{"authenticated":true,"role":"club_lead"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = f.do(req)
	assert.JSONEq(t, `{"authenticated":false,"role":""}`, w.Body.String())
}

func TestSessionResolver_FailsClosed(t *testing.T) {
	f := newFixture(t, breakSessions)
	testutil.CreateUser(t, f.repos, "admin@uni.edu", models.RoleAdmin)
	token := f.token(t, "admin@uni.edu")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w := f.do(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = f.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPageGate_RoleMismatchRedirects(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.repos, "student@uni.edu", models.RoleStudent)
	token := f.token(t, "student@uni.edu")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	w := f.do(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.DashboardPath, w.Header().Get("Location"))
}

func TestAPIGuards(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.repos, "student@uni.edu", models.RoleStudent)
	testutil.CreateUser(t, f.repos, "admin@uni.edu", models.RoleAdmin)

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "student@uni.edu"))
	assert.Equal(t, http.StatusForbidden, f.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "admin@uni.edu"))
	assert.Equal(t, http.StatusOK, f.do(req).Code)
}

func TestSessionResolver_ProfileRepairFailureKeepsSession(t *testing.T) {
	f := newFixture(t, func(repos *repositories.Repositories) {
		repos.Profiles = readOnlyProfiles{repos.Profiles}
	})
	hash, err := auth.HashPassword(testutil.Password)
	require.NoError(t, err)
	// identity without a profile row
	id := uuid.New()
	require.NoError(t, f.repos.AuthUsers.Create(context.Background(), &models.AuthUser{
		ID:           id,
		Email:        "orphan@uni.edu",
		PasswordHash: hash,
		Provider:     models.ProviderEmail,
		Metadata:     models.UserMetadata{FullName: "Orphan", Role: models.RoleClubLead},
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: f.token(t, "orphan@uni.edu")})
	w := f.do(req)
	assert.JSONEq(t, `{"authenticated":true,"role":"club_lead"}`, w.Body.String())

	_, err = f.repos.Profiles.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound, "repair was refused")
}
