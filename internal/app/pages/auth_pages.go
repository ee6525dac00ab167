package pages

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

const oauthStateCookie = "oauth_state"

type authPageData struct {
	Providers []string
	Email     string
}

// LoginPage renders the sign-in form
func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", "Sign in", authPageData{
		Providers: h.svc.OAuth.Providers(),
		Email:     c.Query("email"),
	})
}

// Login signs in with email and password
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, middleware.LoginPath, err)
		return
	}
	session, err := h.svc.Auth.SignIn(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, withQuery(middleware.LoginPath, "email", req.Email), err)
		return
	}
	h.setSession(c, session.AccessToken, session.ExpiresAt)
	c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}

// RegisterPage renders the sign-up form
func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register", "Create account", authPageData{Providers: h.svc.OAuth.Providers()})
}

// SignUp creates an account and signs it in
func (h *Handler) SignUp(c *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, "/auth/register", err)
		return
	}
	session, err := h.svc.Auth.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "/auth/register", err)
		return
	}
	h.setSession(c, session.AccessToken, session.ExpiresAt)
	h.done(c, middleware.DashboardPath, "Welcome to ClubSphere!")
}

// Logout ends the session and returns to the login page
func (h *Handler) Logout(c *gin.Context) {
	if err := h.svc.Auth.SignOut(c.Request.Context(), appctx.FromGin(c).Token); err != nil {
		h.logger.Warn().Err(err).Msg("Sign out failed")
	}
	h.clearSession(c)
	h.done(c, middleware.LoginPath, "You have been signed out")
}

// OAuthStart redirects to the provider's consent page
func (h *Handler) OAuthStart(c *gin.Context) {
	state := uuid.NewString()
	target, err := h.svc.OAuth.AuthCodeURL(c.Param("provider"), state)
	if err != nil {
		h.fail(c, middleware.LoginPath, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/auth/callback", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, target)
}

// OAuthCallback completes the provider sign-in
func (h *Handler) OAuthCallback(c *gin.Context) {
	expected, _ := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/auth/callback", "", h.secureCookie, true)

	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		h.fail(c, middleware.LoginPath, apperrors.NewUnauthenticatedError("sign-in expired, please try again"))
		return
	}
	if reason := c.Query("error"); reason != "" {
		h.fail(c, middleware.LoginPath, apperrors.NewUnauthenticatedError("sign-in was cancelled: "+reason))
		return
	}

	session, err := h.svc.OAuth.CompleteSignIn(c.Request.Context(), c.Param("provider"), c.Query("code"))
	if err != nil {
		h.fail(c, middleware.LoginPath, err)
		return
	}
	h.setSession(c, session.AccessToken, session.ExpiresAt)
	c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}
