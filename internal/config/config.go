package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	DBMaxConns  int32

	// RedisURL enables the shared status cache and the job scheduler.
	RedisURL         string
	AsynqQueue       string
	AsynqConcurrency int
	ProcessCron      string
	ResetQuotasCron  string

	StatusCacheTTL time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	MigrateOnStart bool

	// IdempotencyRetentionDays bounds how long stored work responses are kept.
	IdempotencyRetentionDays int
}

// Load reads configuration from the environment, after merging a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "production"),
		Port:                     getEnv("PORT", "8080"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		DBMaxConns:               int32(envInt("DB_MAX_CONNS", 0)),
		RedisURL:                 getEnv("REDIS_URL", ""),
		AsynqQueue:               getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:         envInt("ASYNQ_CONCURRENCY", 10),
		ProcessCron:              getEnv("PROCESS_CAMPAIGNS_CRON", "@every 15m"),
		ResetQuotasCron:          getEnv("RESET_QUOTAS_CRON", "0 0 * * *"),
		StatusCacheTTL:           envDuration("STATUS_CACHE_TTL_SECONDS", 15*time.Second),
		RateLimitRPS:             envFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:           envInt("RATE_LIMIT_BURST", 40),
		MigrateOnStart:           strings.EqualFold(getEnv("MIGRATE_ON_START", "false"), "true"),
		IdempotencyRetentionDays: envInt("IDEMPOTENCY_RETENTION_DAYS", 7),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AsynqConcurrency < 1 {
		cfg.AsynqConcurrency = 10
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Logger builds the process logger: text at debug level in development,
// JSON at info level otherwise.
func (c *Config) Logger() *slog.Logger {
	if c.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// envDuration reads an integer-seconds env var. Unset, invalid, or
// non-positive values fall back to defaultVal.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}
