package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/leadflow")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("STATUS_CACHE_TTL_SECONDS", "")
	t.Setenv("ASYNQ_CONCURRENCY", "")
	t.Setenv("MIGRATE_ON_START", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "default", cfg.AsynqQueue)
	assert.Equal(t, 10, cfg.AsynqConcurrency)
	assert.Equal(t, "@every 15m", cfg.ProcessCron)
	assert.Equal(t, "0 0 * * *", cfg.ResetQuotasCron)
	assert.Equal(t, 15*time.Second, cfg.StatusCacheTTL)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.False(t, cfg.MigrateOnStart)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/leadflow")
	t.Setenv("APP_ENV", "development")
	t.Setenv("STATUS_CACHE_TTL_SECONDS", "60")
	t.Setenv("ASYNQ_CONCURRENCY", "0")
	t.Setenv("MIGRATE_ON_START", "TRUE")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, time.Minute, cfg.StatusCacheTTL)
	assert.Equal(t, 10, cfg.AsynqConcurrency)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.NotNil(t, cfg.Logger())
}

func TestEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "unset", value: "", want: 5 * time.Second},
		{name: "seconds", value: "30", want: 30 * time.Second},
		{name: "invalid", value: "abc", want: 5 * time.Second},
		{name: "negative", value: "-1", want: 5 * time.Second},
		{name: "zero", value: "0", want: 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, envDuration("TEST_DURATION", 5*time.Second))
		})
	}
}
