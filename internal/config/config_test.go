package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Name != "maintenance-service" {
		t.Fatalf("app name default: %q", cfg.App.Name)
	}
	if got := cfg.App.Addr(); got != "0.0.0.0:8080" {
		t.Fatalf("bind address default: %q", got)
	}
	if got := cfg.App.RequestTimeout(); got != 30*time.Second {
		t.Fatalf("request timeout default: %v", got)
	}
	if cfg.Schedule.MaxOccurrences != 50 {
		t.Fatalf("max occurrences default: %d", cfg.Schedule.MaxOccurrences)
	}
	if cfg.Schedule.AssetCacheTTL != 5*time.Minute {
		t.Fatalf("asset cache ttl default: %v", cfg.Schedule.AssetCacheTTL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_HOST", "10.0.0.5")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCHEDULE_MAX_OCCURRENCES", "12")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.App.Addr(); got != "10.0.0.5:9090" {
		t.Fatalf("bind address: %q", got)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("log level: %q", cfg.Logger.Level)
	}
	if cfg.Schedule.MaxOccurrences != 12 {
		t.Fatalf("max occurrences: %d", cfg.Schedule.MaxOccurrences)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("redis db: %d", cfg.Redis.DB)
	}
}

func TestLoadRejectsMalformedRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed REDIS_DB")
	}
}

func TestBadIntegersFallBackToDefaults(t *testing.T) {
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.RequestTimeoutSeconds != 30 {
		t.Fatalf("expected fallback of 30, got %d", cfg.App.RequestTimeoutSeconds)
	}
}
