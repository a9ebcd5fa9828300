package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Empty(t, cfg.Storage.SQLitePath)
	assert.Empty(t, cfg.Storage.DatabaseURL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@db.example.com/app")
	t.Setenv("DATABASE_FORCE_TLS", "true")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "postgres://u:p@db.example.com/app", cfg.Storage.DatabaseURL)
	assert.True(t, cfg.Storage.ForceTLS)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Equal(t, []string{"a"}, splitOrigins(" a "))
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a,,b"))
}
