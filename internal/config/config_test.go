package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://club.example.com ,")
	t.Setenv("JWT_TTL_MINUTES", "60")
	t.Setenv("RATE_LIMIT_SUBMISSION", "5s")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://club.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.RateLimitSubmission)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("RATE_LIMIT_SUBMISSION", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_SUBMISSION")

	t.Setenv("RATE_LIMIT_SUBMISSION", "3s")
	t.Setenv("JWT_TTL_MINUTES", "zero")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_TTL_MINUTES")
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL_MINUTES", "60")
	t.Setenv("RATE_LIMIT_SUBMISSION", "3s")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
