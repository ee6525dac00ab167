package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/auth"
)

// AuthMiddleware resolves the caller once per request and guards the API
type AuthMiddleware struct {
	authService    *services.AuthService
	profileService services.ProfileService
	cookieName     string
	logger         zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService *services.AuthService, profileService services.ProfileService, cookieName string, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService:    authService,
		profileService: profileService,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// CookieName is the session cookie used by the HTML pages
func (m *AuthMiddleware) CookieName() string {
	return m.cookieName
}

// SessionToken returns the token presented by the request: the Authorization
// header first, then the session cookie.
func (m *AuthMiddleware) SessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, err := auth.ExtractBearerToken(header); err == nil && token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(m.cookieName); err == nil {
		return cookie
	}
	return ""
}

// SessionResolver stores the resolved appctx.Request for every later handler.
// Any failure, including an unreachable store, leaves the caller anonymous.
func (m *AuthMiddleware) SessionResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &appctx.Request{}
		appctx.Set(c, req)

		token := m.SessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		user, err := m.authService.CurrentUser(ctx, token)
		if err != nil {
			m.logResolveError(c, err)
			c.Next()
			return
		}

		profile, repaired, err := m.profileService.Resolve(ctx, user)
		if err != nil {
			m.logResolveError(c, err)
			c.Next()
			return
		}

		req.User = user
		req.Profile = profile
		req.ProfileRepaired = repaired
		req.Token = token
		c.Next()
	}
}

func (m *AuthMiddleware) logResolveError(c *gin.Context, err error) {
	event := m.logger.Debug()
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		event = m.logger.Warn()
	}
	event.Err(err).Str("path", c.Request.URL.Path).Str("requestID", requestIDFrom(c)).Msg("Session not resolved, treating caller as anonymous")
}

// APIAuth rejects anonymous API calls with 401
func (m *AuthMiddleware) APIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !appctx.FromGin(c).Authenticated() {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthenticated, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}

// APIRoleRequired rejects callers whose platform role is not one of roles with 403
func (m *AuthMiddleware) APIRoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := appctx.FromGin(c)
		if !req.Authenticated() {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthenticated, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}
		if !hasRole(req.Role(), roles) {
			detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails(map[string]interface{}{"requiredRoles": roles})
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
