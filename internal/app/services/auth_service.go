package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/auth"
)

var errInvalidCredentials = apperrors.NewCustomError(
	errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrInvalidCredentials), "invalid email or password")

// AuthService is the identity provider: accounts, sessions and session tokens
type AuthService struct {
	authUsers  repositories.IAuthUserRepository
	sessions   repositories.ISessionRepository
	profiles   repositories.IProfileRepository
	jwtService *auth.JWTService
	sessionTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		authUsers:  repos.AuthUsers,
		sessions:   repos.Sessions,
		profiles:   repos.Profiles,
		jwtService: jwtService,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// SignUp creates an email/password account and opens a session. The profile
// row is written best-effort; a missing profile is rebuilt on first use.
func (s *AuthService) SignUp(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.AuthUser{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Provider:     models.ProviderEmail,
		Metadata:     req.Metadata(),
	}
	if err := s.authUsers.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("an account with this email already exists")
		}
		return nil, err
	}

	s.createProfile(ctx, user)

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Metadata.Role)).Msg("User signed up")
	return s.openSession(ctx, user)
}

func (s *AuthService) createProfile(ctx context.Context, user *models.AuthUser) {
	if err := s.profiles.Insert(ctx, user.ProfileFromMetadata()); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID.String()).Msg("Profile insert failed at sign-up, it will be rebuilt on next visit")
	}
}

// SignIn verifies email and password and opens a session
func (s *AuthService) SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.authUsers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, storeError("identity store unavailable", err)
	}

	// OAuth-only accounts have no password
	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}

	s.logger.Debug().Str("userID", user.ID.String()).Msg("User signed in")
	return s.openSession(ctx, user)
}

// SignInExternal finds or creates the account for an address verified by an
// OAuth provider and opens a session. An existing account is only reused when
// it was created through the same provider.
func (s *AuthService) SignInExternal(ctx context.Context, provider, email string, metadata models.UserMetadata) (*dto.SessionResponse, error) {
	email = dto.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("the identity provider did not return an email address")
	}

	user, err := s.authUsers.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Provider != provider {
			s.logger.Warn().Str("userID", user.ID.String()).Str("provider", provider).Msg("OAuth sign-in for account of another provider refused")
			if user.Provider == models.ProviderEmail {
				return nil, apperrors.NewConflictError("an account with this email already exists; sign in with your password")
			}
			return nil, apperrors.NewConflictError("an account with this email already exists; sign in with " + user.Provider)
		}
	case errors.Is(err, apperrors.ErrResourceNotFound):
		if !metadata.Role.Valid() {
			metadata.Role = models.RoleStudent
		}
		user = &models.AuthUser{
			ID:       uuid.New(),
			Email:    email,
			Provider: provider,
			Metadata: metadata,
		}
		if err := s.authUsers.Create(ctx, user); err != nil {
			return nil, err
		}
		s.createProfile(ctx, user)
		s.logger.Info().Str("userID", user.ID.String()).Str("provider", provider).Msg("User signed up with OAuth")
	default:
		return nil, storeError("identity store unavailable", err)
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) openSession(ctx context.Context, user *models.AuthUser) (*dto.SessionResponse, error) {
	sessionID := uuid.New()
	token, expiresAt, err := s.jwtService.GenerateSessionToken(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, storeError("failed to open session", err)
	}

	return &dto.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// CurrentUser resolves a session token to its identity. A store failure is
// reported as ErrUpstreamUnavailable, never as an anonymous caller.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.AuthUser, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrTokenExpired), "session expired")
		}
		return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrTokenInvalid), "invalid session")
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrTokenInvalid), "invalid session")
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrSessionNotFound), "session ended")
		}
		return nil, storeError("identity store unavailable", err)
	}
	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return nil, apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrSessionNotFound), "session ended")
	}

	user, err := s.authUsers.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewUnauthenticatedError("account no longer exists")
		}
		return nil, storeError("identity store unavailable", err)
	}
	return user, nil
}

// SignOut ends the session behind token. Unknown or expired tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		return nil
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return storeError("failed to end session", err)
	}
	s.logger.Debug().Str("userID", claims.UserID.String()).Msg("User signed out")
	return nil
}

// PurgeExpiredSessions deletes session rows past their expiry
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("count", n).Msg("Expired sessions purged")
	}
	return n, nil
}
