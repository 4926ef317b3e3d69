package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load("")

	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")

	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")

	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	require.Equal(t, 60, cfg.RateLimit.PublicPerMinute)
	require.Equal(t, 5, cfg.RateLimit.LoginPerMinute)
	require.False(t, cfg.Registration.EnforceCapacity)
	require.Equal(t, "development", cfg.Environment)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("REGISTRATION_ENFORCE_CAPACITY", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load("")

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 2*time.Hour, cfg.Auth.JWTExpiry)
	require.True(t, cfg.Registration.EnforceCapacity)
	require.Equal(t, "production", cfg.Environment)
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVER_PORT", "7001")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  host: 127.0.0.1
  port: 7000
database:
  url: postgres://localhost/gatherly
auth:
  jwt_secret: from-file
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	// Env wins over file.
	require.Equal(t, 7001, cfg.Server.Port)
	require.Equal(t, "from-file", cfg.Auth.JWTSecret)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.ErrorContains(t, err, "read config file")
}
