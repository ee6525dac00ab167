package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"golang.org/x/oauth2"
)

// fakeProvider serves the token and userinfo endpoints of an OAuth2 provider
func fakeProvider(t *testing.T, email string) *httptest.Server {
	t.Helper()
	return fakeProviderWithInfo(t, map[string]interface{}{
		"email":   email,
		"name":    "Grace Hopper",
		"picture": "https://example.com/grace.png",
	})
}

func fakeProviderWithInfo(t *testing.T, info map[string]interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "provider-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func providerConfig(srv *httptest.Server) map[string]services.OAuthProviderConfig {
	return map[string]services.OAuthProviderConfig{
		"github": {
			OAuth2: &oauth2.Config{
				ClientID:     "client",
				ClientSecret: "secret",
				RedirectURL:  "http://localhost:8080/auth/oauth/github/callback",
				Endpoint: oauth2.Endpoint{
					AuthURL:   srv.URL + "/authorize",
					TokenURL:  srv.URL + "/token",
					AuthStyle: oauth2.AuthStyleInParams,
				},
			},
			UserInfoURL: srv.URL + "/userinfo",
		},
	}
}

func TestOAuth_AuthCodeURL(t *testing.T) {
	srv := fakeProvider(t, "grace@uni.edu")
	e := setup(t, providerConfig(srv))

	assert.Equal(t, []string{"github"}, e.svc.OAuth.Providers())

	raw, err := e.svc.OAuth.AuthCodeURL("github", "state-123")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/authorize", u.Path)
	assert.Equal(t, "state-123", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))

	_, err = e.svc.OAuth.AuthCodeURL("gitlab", "state")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestOAuth_CompleteSignIn_CreatesAccount(t *testing.T) {
	srv := fakeProvider(t, "Grace@Uni.edu")
	e := setup(t, providerConfig(srv))
	ctx := context.Background()

	session, err := e.svc.OAuth.CompleteSignIn(ctx, "github", "good-code")
	require.NoError(t, err)
	assert.Equal(t, "grace@uni.edu", session.User.Email)
	assert.Equal(t, "github", session.User.Provider)

	profile, err := e.repos.Profiles.GetByID(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", profile.FullName)
	assert.Equal(t, models.RoleStudent, profile.Role)
	assert.Equal(t, "https://example.com/grace.png", profile.AvatarURL)

	again, err := e.svc.OAuth.CompleteSignIn(ctx, "github", "good-code")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID, "second sign-in reuses the account")
}

func TestOAuth_CompleteSignIn_ExistingEmailAccount(t *testing.T) {
	srv := fakeProvider(t, "lead@uni.edu")
	e := setup(t, providerConfig(srv))

	session, err := e.svc.OAuth.CompleteSignIn(context.Background(), "github", "good-code")
	require.Error(t, err)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, apperrors.Message(err), "sign in with your password")

	srv = fakeProviderWithInfo(t, map[string]interface{}{
		"email":          "admin@uni.edu",
		"email_verified": true,
	})
	e = setup(t, providerConfig(srv))
	_, err = e.svc.OAuth.CompleteSignIn(context.Background(), "github", "good-code")
	assert.ErrorIs(t, err, apperrors.ErrConflict, "a verified address still cannot take over a password account")
}

func TestOAuth_CompleteSignIn_UnverifiedEmail(t *testing.T) {
	srv := fakeProviderWithInfo(t, map[string]interface{}{
		"email":          "admin@uni.edu",
		"email_verified": false,
	})
	e := setup(t, providerConfig(srv))
	ctx := context.Background()

	session, err := e.svc.OAuth.CompleteSignIn(ctx, "github", "good-code")
	require.Error(t, err)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// no account exists for this one; nothing is created
	srv = fakeProviderWithInfo(t, map[string]interface{}{
		"email":          "new@uni.edu",
		"email_verified": false,
	})
	e = setup(t, providerConfig(srv))
	_, err = e.svc.OAuth.CompleteSignIn(ctx, "github", "good-code")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = e.repos.AuthUsers.GetByEmail(ctx, "new@uni.edu")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestOAuth_CompleteSignIn_VerifiedEmailCreatesAccount(t *testing.T) {
	srv := fakeProviderWithInfo(t, map[string]interface{}{
		"email":          "ada@uni.edu",
		"email_verified": true,
	})
	e := setup(t, providerConfig(srv))

	session, err := e.svc.OAuth.CompleteSignIn(context.Background(), "github", "good-code")
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", session.User.Email)
}

func TestOAuth_CompleteSignIn_Failures(t *testing.T) {
	srv := fakeProvider(t, "grace@uni.edu")
	e := setup(t, providerConfig(srv))
	ctx := context.Background()

	_, err := e.svc.OAuth.CompleteSignIn(ctx, "github", "bad-code")
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)

	_, err = e.svc.OAuth.CompleteSignIn(ctx, "github", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = e.svc.OAuth.CompleteSignIn(ctx, "gitlab", "good-code")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestOAuth_MissingEmail(t *testing.T) {
	srv := fakeProvider(t, "")
	e := setup(t, providerConfig(srv))

	_, err := e.svc.OAuth.CompleteSignIn(context.Background(), "github", "good-code")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
