package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ATTENDANCE_TIMEZONE", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.True(t, cfg.RunMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("RATE_LIMIT_BURST", "9")
	t.Setenv("OUTBOX_POLL_INTERVAL", "750ms")
	t.Setenv("ATTENDANCE_TIMEZONE", "Asia/Riyadh")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.False(t, cfg.RunMigrate)
	assert.Equal(t, 9, cfg.RateLimitBurst)
	assert.Equal(t, 750*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, "Asia/Riyadh", cfg.Location().String())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "many")
	t.Setenv("ATTENDANCE_TIMEZONE", "Mars/Olympus")

	cfg := Load()

	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, time.UTC, cfg.Location())
}
