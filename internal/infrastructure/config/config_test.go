package config_test

import (
	"testing"
	"time"

	"github.com/iho/gosplit/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RATE_LIMIT_RPS", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.MigrationsPath != "migrations" {
		t.Fatalf("expected default migrations path, got %s", cfg.MigrationsPath)
	}

	if cfg.UserCacheTTL != 10*time.Minute {
		t.Fatalf("expected default user cache TTL, got %s", cfg.UserCacheTTL)
	}

	if cfg.OutboxBatchSize != 100 || cfg.OutboxInterval != time.Second {
		t.Fatalf("unexpected outbox defaults: batch=%d interval=%s", cfg.OutboxBatchSize, cfg.OutboxInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("OUTBOX_INTERVAL", "250ms")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 5 {
		t.Fatalf("expected rate limit overrides, got rps=%v burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	if cfg.OutboxInterval != 250*time.Millisecond {
		t.Fatalf("expected outbox interval override, got %s", cfg.OutboxInterval)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
