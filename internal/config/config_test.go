package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL() != time.Hour {
		t.Fatalf("expected default TTL 1h, got %s", cfg.TokenTTL())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.TokenTTL() != 15*time.Minute {
		t.Fatalf("expected TTL 15m, got %s", cfg.TokenTTL())
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Fatalf("unexpected database path %s", cfg.DatabasePath)
	}
}
