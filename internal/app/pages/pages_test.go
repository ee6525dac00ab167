package pages_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/pages"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

const cookie = "session"

type site struct {
	repos  *repositories.Repositories
	svc    *services.Services
	router *gin.Engine
	// render errors recorded by gin during the last request
	errs []string
}

func newSite(t *testing.T) *site {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos, _ := memstore.NewRepositories()
	svc := services.NewServices(services.Dependencies{
		Repos:      repos,
		JWT:        auth.NewJWTService(auth.JWTConfig{SecretKey: "pages", SessionExp: time.Hour, TokenIssuer: "clubsphere"}),
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
	})
	mw := middleware.NewAuthMiddleware(svc.Auth, svc.Profiles, cookie, zerolog.Nop())

	tmpl, err := pages.Templates()
	require.NoError(t, err)

	s := &site{repos: repos, svc: svc}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(func(c *gin.Context) {
		c.Next()
		s.errs = c.Errors.Errors()
	}, mw.SessionResolver())
	g := r.Group("", middleware.PageGate())
	pages.NewHandler(svc, cookie, false, time.Hour, zerolog.Nop()).Register(g)
	s.router = r
	return s
}

func (s *site) session(t *testing.T, email string) string {
	t.Helper()
	resp, err := s.svc.Auth.SignIn(context.Background(), &dto.LoginRequest{Email: email, Password: testutil.Password})
	require.NoError(t, err)
	return resp.AccessToken
}

func (s *site) get(token, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *site) post(token, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := pages.Templates()
	require.NoError(t, err)
	for _, name := range []string{
		"login", "register", "error", "student_dashboard", "lead_dashboard", "admin_dashboard",
		"admin_users", "admin_clubs", "club_list", "club_new", "club_detail", "event_list",
		"event_detail", "event_form", "live_event_form", "profile", "notifications",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

// Every page renders for the roles allowed to see it.
func TestPagesRender(t *testing.T) {
	s := newSite(t)
	admin := testutil.CreateUser(t, s.repos, "admin@uni.edu", models.RoleAdmin)
	lead := testutil.CreateUser(t, s.repos, "lead@uni.edu", models.RoleClubLead)
	student := testutil.CreateUser(t, s.repos, "student@uni.edu", models.RoleStudent)
	club := testutil.CreateClub(t, s.repos, "Chess", lead, true)
	testutil.CreateClub(t, s.repos, "Pending", lead, false)
	testutil.AddMember(t, s.repos, club, student, models.MemberRoleMember)
	event := testutil.CreateEvent(t, s.repos, club, "Blitz", models.EventStatusPublished, time.Hour)
	require.NoError(t, s.svc.Notifications.Notify(context.Background(), &models.Notification{UserID: student.ID, Title: "Hello"}))

	common := []string{
		"/dashboard/clubs", "/dashboard/clubs/" + club.ID.String(), "/dashboard/events",
		"/dashboard/events/" + event.ID.String(), "/dashboard/profile", "/dashboard/notifications",
	}
	cases := map[*models.Profile][]string{
		student: append([]string{"/dashboard/student"}, common...),
		lead: append([]string{"/dashboard/lead", "/dashboard/lead/create-event", "/dashboard/clubs/new",
			"/dashboard/clubs/" + club.ID.String() + "/create-event"}, common...),
		admin: append([]string{"/dashboard/admin", "/dashboard/admin/users", "/dashboard/admin/clubs"}, common...),
	}

	for profile, paths := range cases {
		token := s.session(t, profile.Email)
		for _, p := range paths {
			w := s.get(token, p)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", profile.Role, p)
			assert.Empty(t, s.errs, "%s %s", profile.Role, p)
		}
	}

	for _, p := range []string{"/auth/login", "/auth/register"} {
		w := s.get("", p)
		assert.Equal(t, http.StatusOK, w.Code, p)
		assert.Empty(t, s.errs, p)
	}
}

func TestLandingByRole(t *testing.T) {
	s := newSite(t)
	testutil.CreateUser(t, s.repos, "lead@uni.edu", models.RoleClubLead)

	w := s.get(s.session(t, "lead@uni.edu"), "/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/lead", w.Header().Get("Location"))

	w = s.get("", "/dashboard/lead")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestClubRegistrationThroughForms(t *testing.T) {
	s := newSite(t)
	testutil.CreateUser(t, s.repos, "admin@uni.edu", models.RoleAdmin)
	lead := testutil.CreateUser(t, s.repos, "lead@uni.edu", models.RoleClubLead)
	leadToken := s.session(t, "lead@uni.edu")
	adminToken := s.session(t, "admin@uni.edu")

	w := s.post(leadToken, "/dashboard/clubs", url.Values{"name": {"Astronomy"}, "description": {"Stars"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "message=")

	mine, err := s.svc.Clubs.MyClubs(context.Background(), lead)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	clubID := mine[0].ClubID.String()

	w = s.post(leadToken, "/dashboard/clubs/"+clubID+"/create-event", url.Values{
		"title": {"Star party"}, "event_date": {"2030-01-01T20:00"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=", "pending clubs cannot host events")

	w = s.post(adminToken, "/dashboard/admin/clubs/"+clubID+"/approve", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "message=")

	w = s.post(leadToken, "/dashboard/clubs/"+clubID+"/create-event", url.Values{
		"title": {"Star party"}, "event_date": {"2030-01-01T20:00"}, "status": {"published"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, w.Header().Get("Location"), "error=")

	w = s.get(leadToken, "/dashboard/notifications")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Club approved")
}

func TestLoginForm(t *testing.T) {
	s := newSite(t)
	testutil.CreateUser(t, s.repos, "student@uni.edu", models.RoleStudent)

	w := s.post("", "/auth/login", url.Values{"email": {"student@uni.edu"}, "password": {"wrong-password"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")

	w = s.post("", "/auth/login", url.Values{"email": {"student@uni.edu"}, "password": {testutil.Password}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.DashboardPath, w.Header().Get("Location"))
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == cookie && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie set")
}
