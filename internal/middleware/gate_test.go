package middleware_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/middleware"
)

func caller(role models.Role) *appctx.Request {
	if role == "" {
		return &appctx.Request{}
	}
	return &appctx.Request{
		User:    &models.AuthUser{Email: "x@uni.edu"},
		Profile: &models.Profile{Role: role},
	}
}

func TestGateRedirect(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		query url.Values
		role  models.Role
		want  string
	}{
		{"anonymous dashboard", "/dashboard", nil, "", middleware.LoginPath},
		{"anonymous nested dashboard", "/dashboard/clubs/1", nil, "", middleware.LoginPath},
		{"anonymous login page", "/auth/login", nil, "", ""},
		{"anonymous public page", "/clubs", nil, "", ""},
		{"student on admin section", "/dashboard/admin", nil, models.RoleStudent, middleware.DashboardPath},
		{"student on admin subpage", "/dashboard/admin/clubs", nil, models.RoleStudent, middleware.DashboardPath},
		{"lead on student section", "/dashboard/student", nil, models.RoleClubLead, middleware.DashboardPath},
		{"admin on admin section", "/dashboard/admin", nil, models.RoleAdmin, ""},
		{"lead on own section", "/dashboard/lead", nil, models.RoleClubLead, ""},
		{"prefix lookalike", "/dashboard/administer", nil, models.RoleStudent, ""},
		{"signed in on login page", "/auth/login", nil, models.RoleStudent, middleware.DashboardPath},
		{"signed in with message", "/auth/login", url.Values{"message": {"bye"}}, models.RoleStudent, ""},
		{"signed in logout", "/auth/logout", nil, models.RoleStudent, ""},
		{"signed in oauth callback", "/auth/callback/github", nil, models.RoleStudent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := middleware.GateRedirect(tt.path, tt.query, caller(tt.role))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Following a redirect never produces another one.
func TestGateRedirect_Idempotent(t *testing.T) {
	paths := []string{
		"/", "/clubs", "/events", "/auth/login", "/auth/register", "/auth/logout",
		"/dashboard", "/dashboard/admin", "/dashboard/admin/users", "/dashboard/lead",
		"/dashboard/student", "/dashboard/clubs/abc", "/dashboard/profile",
	}
	for _, role := range []models.Role{"", models.RoleStudent, models.RoleClubLead, models.RoleAdmin} {
		req := caller(role)
		for _, p := range paths {
			target := middleware.GateRedirect(p, url.Values{}, req)
			if target == "" {
				continue
			}
			assert.Empty(t, middleware.GateRedirect(target, url.Values{}, req), "role %q path %s -> %s", role, p, target)
		}
	}
}

func TestLandingPath(t *testing.T) {
	for _, role := range []models.Role{models.RoleStudent, models.RoleClubLead, models.RoleAdmin} {
		landing := middleware.LandingPath(role)
		assert.Empty(t, middleware.GateRedirect(landing, nil, caller(role)), "landing of %s must be reachable", role)
	}
	assert.Equal(t, "/dashboard/student", middleware.LandingPath("unknown"))
}
