// Package pages serves the server-rendered dashboard. Every form posts back,
// and the handler redirects with a message or error banner in the query.
package pages

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// Handler renders the HTML pages
type Handler struct {
	svc          *services.Services
	cookieName   string
	secureCookie bool
	sessionTTL   time.Duration
	logger       zerolog.Logger
}

// NewHandler creates a new page Handler
func NewHandler(svc *services.Services, cookieName string, secureCookie bool, sessionTTL time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:          svc,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

// view is the data every page template receives
type view struct {
	Title           string
	Me              *models.Profile
	ProfileRepaired bool
	Message         string
	Error           string
	Path            string
	Data            interface{}
}

func (h *Handler) render(c *gin.Context, status int, name, title string, data interface{}) {
	req := appctx.FromGin(c)
	c.HTML(status, name, view{
		Title:           title,
		Me:              req.Profile,
		ProfileRepaired: req.ProfileRepaired,
		Message:         c.Query("message"),
		Error:           c.Query("error"),
		Path:            c.Request.URL.Path,
		Data:            data,
	})
}

// renderError shows a full-page error for failed page loads
func (h *Handler) renderError(c *gin.Context, err error) {
	status, _ := middleware.ErrorStatus(err)
	msg := errorText(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Page failed")
		if status == http.StatusInternalServerError {
			msg = "Something went wrong. Please try again."
		}
	}
	c.Abort()
	h.render(c, status, "error", "Error", msg)
}

// done redirects after a successful post with an info banner
func (h *Handler) done(c *gin.Context, target, message string) {
	c.Redirect(http.StatusSeeOther, withQuery(target, "message", message))
}

// fail redirects after a failed post with an error banner
func (h *Handler) fail(c *gin.Context, target string, err error) {
	status, _ := middleware.ErrorStatus(err)
	msg := errorText(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Page action failed")
		if status == http.StatusInternalServerError {
			msg = "Something went wrong. Please try again."
		}
	}
	c.Redirect(http.StatusSeeOther, withQuery(target, "error", msg))
}

func withQuery(target, key, value string) string {
	if value == "" {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + url.Values{key: {value}}.Encode()
}

// errorText is the banner text of err, with any field details appended
func errorText(err error) string {
	msg := apperrors.Message(err)
	var ce *apperrors.CustomError
	if !errors.As(err, &ce) || len(ce.Details) == 0 {
		return msg
	}
	fields := make([]string, 0, len(ce.Details))
	for field, detail := range ce.Details {
		fields = append(fields, fmt.Sprintf("%s: %v", field, detail))
	}
	sort.Strings(fields)
	return msg + " (" + strings.Join(fields, "; ") + ")"
}

// me is the signed-in caller. Routes using it sit behind the page gate.
func me(c *gin.Context) *models.Profile {
	return appctx.Profile(c)
}

// idParam parses a path id, rendering a 404 page when it is not one
func (h *Handler) idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.renderError(c, apperrors.NewResourceNotFoundError("page not found"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) setSession(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(time.Until(expiresAt).Seconds()), "/", "", h.secureCookie, true)
}

func (h *Handler) clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
}

// Register mounts every page route on r. SessionResolver and PageGate must
// already be in the chain.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Home)

	authPages := r.Group("/auth")
	{
		authPages.GET("/login", h.LoginPage)
		authPages.POST("/login", h.Login)
		authPages.GET("/register", h.RegisterPage)
		authPages.POST("/register", h.SignUp)
		authPages.GET("/logout", h.Logout)
		authPages.POST("/logout", h.Logout)
		authPages.GET("/oauth/:provider", h.OAuthStart)
		authPages.GET("/callback/:provider", h.OAuthCallback)
	}

	dash := r.Group("/dashboard")
	{
		dash.GET("", h.Landing)

		dash.GET("/student", h.StudentDashboard)
		dash.GET("/lead", h.LeadDashboard)
		dash.GET("/lead/create-event", h.LiveEventForm)
		dash.POST("/lead/create-event", h.CreateLiveEvent)
		dash.GET("/admin", h.AdminDashboard)
		dash.GET("/admin/users", h.AdminUsers)
		dash.POST("/admin/users/:id/role", h.AdminChangeRole)
		dash.POST("/admin/users/:id/delete", h.AdminPurgeUser)
		dash.GET("/admin/clubs", h.AdminClubs)
		dash.POST("/admin/clubs/:id/approve", h.AdminApproveClub)
		dash.POST("/admin/clubs/:id/reject", h.AdminRejectClub)
		dash.POST("/admin/clubs/:id/delete", h.AdminDeleteClub)
		dash.POST("/admin/events/:id/approve", h.AdminApproveEvent)
		dash.POST("/admin/events/:id/decline", h.AdminDeclineEvent)

		dash.GET("/clubs", h.ClubList)
		dash.GET("/clubs/new", h.NewClubForm)
		dash.POST("/clubs", h.CreateClub)
		dash.GET("/clubs/:id", h.ClubDetail)
		dash.POST("/clubs/:id", h.UpdateClub)
		dash.POST("/clubs/:id/logo", h.UploadLogo)
		dash.POST("/clubs/:id/cover", h.UploadCover)
		dash.POST("/clubs/:id/leave", h.LeaveClub)
		dash.POST("/clubs/:id/members", h.AddMember)
		dash.POST("/clubs/:id/members/:userId/role", h.ChangeMemberRole)
		dash.POST("/clubs/:id/members/:userId/remove", h.RemoveMember)
		dash.GET("/clubs/:id/create-event", h.SubmitEventForm)
		dash.POST("/clubs/:id/create-event", h.SubmitEvent)

		dash.GET("/events", h.EventList)
		dash.GET("/events/:id", h.EventDetail)
		dash.POST("/events/:id", h.UpdateEvent)
		dash.POST("/events/:id/status", h.SetEventStatus)
		dash.POST("/events/:id/delete", h.DeleteEvent)

		dash.GET("/profile", h.ProfilePage)
		dash.POST("/profile", h.UpdateProfile)
		dash.POST("/profile/avatar", h.UploadAvatar)

		dash.GET("/notifications", h.Notifications)
		dash.POST("/notifications/:id/read", h.MarkNotificationRead)
		dash.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	}
}

// Home sends visitors to the dashboard; the gate takes anonymous ones to the login page
func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.DashboardPath)
}

// Landing sends the caller to their role's dashboard
func (h *Handler) Landing(c *gin.Context) {
	c.Redirect(http.StatusFound, withQuery(middleware.LandingPath(me(c).Role), "message", c.Query("message")))
}
