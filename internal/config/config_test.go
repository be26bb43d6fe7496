package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ACCESS_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.Production())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("ACCESS_TTL", "5m")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	assert.True(t, cfg.Production())
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TTL", "soon")
	t.Setenv("RATE_LIMIT_PER_MIN", "many")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
}

func TestCloudinaryConfigured(t *testing.T) {
	cfg := App{CloudinaryCloudName: "c", CloudinaryAPIKey: "k"}
	assert.False(t, cfg.CloudinaryConfigured())
	cfg.CloudinaryAPISecret = "s"
	assert.True(t, cfg.CloudinaryConfigured())
}
