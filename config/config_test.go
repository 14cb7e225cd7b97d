package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOCK_TIMEOUT", "")
	t.Setenv("IMAGE_CLEANUP_WORKERS", "")

	cfg := Load()
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 2, cfg.ImageCleanupWorkers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOCK_TIMEOUT", "250ms")
	t.Setenv("IMAGE_CLEANUP_WORKERS", "7")
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout)
	assert.Equal(t, 7, cfg.ImageCleanupWorkers)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
}

func TestCloudinaryEnabled(t *testing.T) {
	cfg := &Config{CloudinaryCloudName: "demo", CloudinaryAPIKey: "key"}
	assert.False(t, cfg.CloudinaryEnabled())

	cfg.CloudinaryAPISecret = "secret"
	assert.True(t, cfg.CloudinaryEnabled())
}
