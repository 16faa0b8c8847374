package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("PUBLIC_URL", "https://tutorzindia.org/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://tutorzindia.org", cfg.Server.PublicURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, "Asia/Kolkata", cfg.Server.Location.String())
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Len(t, cfg.Cookie.CSRFKey, 32)
}

func TestLoadTimezoneAndProxies(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SITE_TIMEZONE", "Europe/London")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", cfg.Server.Location.String())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)

	t.Setenv("SITE_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	require.Error(t, err)
}

func TestCSRFKeyFollowsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	a, err := Load()
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	b, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, a.Cookie.CSRFKey, b.Cookie.CSRFKey)

	t.Setenv("CSRF_KEY", "form-key")
	c, err := Load()
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "three")
	d, err := Load()
	require.NoError(t, err)
	assert.Equal(t, c.Cookie.CSRFKey, d.Cookie.CSRFKey)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
}

func TestOptionalSectionsDisabledByDefault(t *testing.T) {
	var email EmailConfig
	var storage StorageConfig
	var redis RedisConfig

	assert.False(t, email.Enabled())
	assert.False(t, storage.Enabled())
	assert.False(t, redis.Enabled())

	redis.Addr = "localhost:6379"
	assert.True(t, redis.Enabled())
}
