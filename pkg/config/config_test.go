package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ATTENDANCE_LOCK_TIMEOUT_SECONDS", "")
	t.Setenv("RATE_LIMIT_ENABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Attendance.LockTimeout)
	assert.Equal(t, 60*time.Second, cfg.Attendance.ConfigCacheTTL)
	assert.Equal(t, 90, cfg.Attendance.ActivityRetentionDays)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ATTENDANCE_LOCK_TIMEOUT_SECONDS", "2")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Attendance.LockTimeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.App.IsProduction())
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}
