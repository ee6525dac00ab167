package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"golang.org/x/oauth2"
)

// OAuthProviderConfig is one configured authorization-code provider
type OAuthProviderConfig struct {
	OAuth2      *oauth2.Config
	UserInfoURL string
}

// userInfo is the subset of the provider's userinfo document we read
type userInfo struct {
	Email string `json:"email"`
	// nil when the provider does not report verification
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// OAuthService signs users in through external OAuth2 providers
type OAuthService struct {
	auth      *AuthService
	providers map[string]OAuthProviderConfig
	logger    zerolog.Logger
}

// NewOAuthService creates a new OAuthService
func NewOAuthService(auth *AuthService, providers map[string]OAuthProviderConfig, logger zerolog.Logger) *OAuthService {
	if providers == nil {
		providers = map[string]OAuthProviderConfig{}
	}
	return &OAuthService{
		auth:      auth,
		providers: providers,
		logger:    logger,
	}
}

// Providers returns the configured provider names in stable order
func (s *OAuthService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *OAuthService) provider(name string) (OAuthProviderConfig, error) {
	p, ok := s.providers[name]
	if !ok {
		return OAuthProviderConfig{}, apperrors.NewCustomError(apperrors.ErrResourceNotFound, apperrors.ErrUnknownProvider.Error())
	}
	return p, nil
}

// AuthCodeURL returns the provider URL the browser is sent to. state must be
// echoed back to CompleteSignIn by the caller.
func (s *OAuthService) AuthCodeURL(name, state string) (string, error) {
	p, err := s.provider(name)
	if err != nil {
		return "", err
	}
	return p.OAuth2.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// CompleteSignIn exchanges the authorization code, reads the user's identity
// and opens a session for it.
func (s *OAuthService) CompleteSignIn(ctx context.Context, name, code string) (*dto.SessionResponse, error) {
	p, err := s.provider(name)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, apperrors.NewValidationError("missing authorization code")
	}

	token, err := p.OAuth2.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", name).Msg("OAuth code exchange failed")
		return nil, apperrors.NewUpstreamError("sign-in with "+name+" failed", err)
	}

	info, err := s.fetchUserInfo(ctx, p, token)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", name).Msg("OAuth userinfo request failed")
		return nil, apperrors.NewUpstreamError("sign-in with "+name+" failed", err)
	}
	if info.EmailVerified != nil && !*info.EmailVerified {
		s.logger.Warn().Str("provider", name).Msg("OAuth sign-in with unverified email refused")
		return nil, apperrors.NewForbiddenError("your " + name + " email address is not verified")
	}

	return s.auth.SignInExternal(ctx, name, info.Email, models.UserMetadata{
		FullName:  info.Name,
		Role:      models.RoleStudent,
		AvatarURL: info.Picture,
	})
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, p OAuthProviderConfig, token *oauth2.Token) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.OAuth2.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %s", resp.Status)
	}

	var info userInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &info, nil
}
