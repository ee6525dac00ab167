package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
jwt:
  secret: s3cret
realtime:
  feed_size: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Realtime.FeedSize)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL())
	assert.Equal(t, "admin@clubsphere.local", cfg.Seed.AdminEmail)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
jwt:
  secret: from-file
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_COOKIE_SECURE", "true")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REALTIME_FEED_SIZE", "7")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.True(t, cfg.JWT.CookieSecure)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 7, cfg.Realtime.FeedSize)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "database:\n  driver: memory\n"},
		{"postgres without host", "database:\n  driver: postgres\njwt:\n  secret: x\n"},
		{"unknown driver", "database:\n  driver: sqlite\njwt:\n  secret: x\n"},
		{"bad session expiration", "database:\n  driver: memory\njwt:\n  secret: x\n  session_expiration: forever\n"},
		{"incomplete oauth provider", "database:\n  driver: memory\njwt:\n  secret: x\noauth:\n  providers:\n    google:\n      client_id: abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestOAuthSettings(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: https://clubs.example/
database:
  driver: memory
jwt:
  secret: x
oauth:
  providers:
    google:
      client_id: id
      auth_url: https://idp.example/auth
      token_url: https://idp.example/token
      userinfo_url: https://idp.example/userinfo
    github:
      client_id: id
      auth_url: https://gh.example/auth
      token_url: https://gh.example/token
      userinfo_url: https://gh.example/user
      redirect_url: https://elsewhere.example/cb
`)
	t.Setenv("OAUTH_GOOGLE_CLIENT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"github", "google"}, cfg.OAuthProviderNames())
	assert.Equal(t, "env-secret", cfg.OAuth.Providers["google"].ClientSecret)
	assert.Equal(t, "https://clubs.example/auth/callback/google", cfg.OAuthRedirectURL("google"))
	assert.Equal(t, "https://elsewhere.example/cb", cfg.OAuthRedirectURL("github"))
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "clubs"
	assert.Equal(t, "postgres://u:p@db:5432/clubs?sslmode=disable", cfg.GetPostgresConnectionString())

	cfg.Database.URL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.GetPostgresConnectionString())
}

func TestLoadConfig_BadEnvValue(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: memory\njwt:\n  secret: x\n")
	t.Setenv("REALTIME_FEED_SIZE", "lots")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REALTIME_FEED_SIZE")
}
