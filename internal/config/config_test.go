package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("STATS_INTERVAL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "todo.db", cfg.DatabaseURL)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 5*time.Hour, cfg.StatsInterval)
	assert.False(t, cfg.Production())
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, "real-secret", cfg.JWTSecret)
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 0},
		{"2", 2 * time.Hour},
		{"0.5", 30 * time.Minute},
		{"0", 0},
		{"-3", 0},
		{"nope", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInterval(tt.raw))
		})
	}
}
