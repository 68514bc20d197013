package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "https://apideliverylivre.com.br/api", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8085", cfg.FakeBackendAddr)
	assert.Equal(t, 5*time.Minute, cfg.PixTTL)
	assert.NotEmpty(t, cfg.SessionDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "http://localhost:8085")
	t.Setenv("HTTP_TIMEOUT", "30")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PIX_TTL", "90s")

	cfg := Load()

	assert.Equal(t, "http://localhost:8085", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 90*time.Second, cfg.PixTTL)
}

func TestGetDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	assert.Equal(t, 15*time.Second, getDuration("HTTP_TIMEOUT", 15*time.Second))
}
