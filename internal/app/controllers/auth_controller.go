// Package controllers handles the JSON API
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService  *services.AuthService
	oauthService *services.OAuthService
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, oauthService *services.OAuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		oauthService: oauthService,
		logger:       logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student or club lead account and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse} "Account created"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 409 {object} dto.APIResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.authService.SignUp(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(session, "Account created"))
}

// Login handles credential sign-in
// @Summary Sign in
// @Description Verifies email and password and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Signed in"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.authService.SignIn(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session, "Signed in"))
}

// Logout ends the current session
// @Summary Sign out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Signed out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.SignOut(ctx.Request.Context(), appctx.FromGin(ctx).Token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Signed out"))
}

// Me returns the resolved caller
// @Summary Current user
// @Description Returns the identity and profile of the session. profileRepaired is true when the profile was rebuilt from sign-up metadata.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CurrentUserResponse}
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	req := appctx.FromGin(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CurrentUserResponse{
		User:            req.User,
		Profile:         req.Profile,
		ProfileRepaired: req.ProfileRepaired,
	}, ""))
}

// OAuthProviders lists the configured OAuth providers
// @Summary OAuth providers
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /auth/oauth/providers [get]
func (c *AuthController) OAuthProviders(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.oauthService.Providers(), ""))
}
