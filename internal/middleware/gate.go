package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models"
)

// Page paths the gate redirects to
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// role sections of the dashboard and the role each one requires
var roleSections = []struct {
	prefix string
	role   models.Role
}{
	{"/dashboard/admin", models.RoleAdmin},
	{"/dashboard/student", models.RoleStudent},
	{"/dashboard/lead", models.RoleClubLead},
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// GateRedirect decides where a page request must go instead, or "" to let it
// through. It depends only on the path, the query and the resolved caller.
func GateRedirect(path string, query url.Values, req *appctx.Request) string {
	signedIn := req.Authenticated()

	switch {
	case underPrefix(path, DashboardPath):
		if !signedIn {
			return LoginPath
		}
		for _, section := range roleSections {
			if underPrefix(path, section.prefix) && req.Role() != section.role {
				return DashboardPath
			}
		}
	case underPrefix(path, "/auth"):
		if !signedIn || query.Has("message") {
			return ""
		}
		if path == "/auth/logout" || underPrefix(path, "/auth/callback") {
			return ""
		}
		return DashboardPath
	}
	return ""
}

// PageGate applies GateRedirect to page requests. It must run after SessionResolver.
func PageGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if target := GateRedirect(c.Request.URL.Path, c.Request.URL.Query(), appctx.FromGin(c)); target != "" {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// LandingPath is the dashboard section of a role
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/dashboard/admin"
	case models.RoleClubLead:
		return "/dashboard/lead"
	default:
		return "/dashboard/student"
	}
}
