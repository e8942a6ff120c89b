package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOGIN_RATE_LIMIT", "")
	t.Setenv("TOKEN_CACHE_TTL", "")
	t.Setenv("GO_ENV", "development")

	cfg := Load()

	assert.Equal(t, 5, cfg.App.LoginRateLimit)
	assert.Equal(t, time.Minute, cfg.App.LoginRateWindow)
	assert.Equal(t, time.Duration(0), cfg.Auth.TokenCacheTTL)
	assert.False(t, cfg.IsTesting())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "testing")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("LOGIN_RATE_LIMIT", "10")
	t.Setenv("LOGIN_RATE_WINDOW", "30s")
	t.Setenv("TOKEN_CACHE_TTL", "45s")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()

	assert.True(t, cfg.IsTesting())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.App.LoginRateLimit)
	assert.Equal(t, 30*time.Second, cfg.App.LoginRateWindow)
	assert.Equal(t, 45*time.Second, cfg.Auth.TokenCacheTTL)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("LOGIN_RATE_LIMIT", "many")
	t.Setenv("TOKEN_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 5, cfg.App.LoginRateLimit)
	assert.Equal(t, time.Duration(0), cfg.Auth.TokenCacheTTL)
}
