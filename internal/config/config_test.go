package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locali/internal/config"
)

func TestTriageConfig_Bypass(t *testing.T) {
	cases := map[string]bool{
		"bypass":   true,
		" Bypass ": true,
		"test":     true,
		"live":     false,
		"":         false,
	}
	for mode, want := range cases {
		cfg := config.TriageConfig{Mode: mode}
		assert.Equal(t, want, cfg.Bypass(), "mode %q", mode)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOCALI_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "v1", cfg.Lifecycle.RuleSet)
	assert.Equal(t, "file://db/migrations", cfg.DB.MigrationsPath)
	assert.Equal(t, "live", cfg.Triage.Mode)
	assert.Equal(t, 4, cfg.Queue.Concurrency)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOCALI_TRIAGE_MODE", "test")
	t.Setenv("LOCALI_TRIAGE_PROVIDER", "claude")
	t.Setenv("LOCALI_LIFECYCLE_RULE_SET", "v2")
	t.Setenv("LOCALI_CORS_ALLOWED_ORIGINS", " https://locali.app , ,https://admin.locali.app")
	t.Setenv("LOCALI_DB_PORT", "6543")
	t.Setenv("LOCALI_DB_MIGRATIONS_PATH", "file:///srv/locali/migrations")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Triage.Bypass())
	assert.Equal(t, "claude", cfg.Triage.Provider)
	assert.Equal(t, "v2", cfg.Lifecycle.RuleSet)
	assert.Equal(t, []string{"https://locali.app", "https://admin.locali.app"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "file:///srv/locali/migrations", cfg.DB.MigrationsPath)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("LOCALI_SERVER_PORT", "")
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)

	t.Setenv("LOCALI_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}
