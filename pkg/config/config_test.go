package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/valor")
	t.Setenv("PORT", "")
	t.Setenv("VA_API_KEY", "")
	t.Setenv("VA_CLAIMS_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("Server.Port = %q, want 5000", cfg.Server.Port)
	}
	if cfg.Session.TTL != 168*time.Hour {
		t.Errorf("Session.TTL = %v, want 168h", cfg.Session.TTL)
	}
	if cfg.DocumentIntel.MaxAttempts != 30 {
		t.Errorf("DocumentIntel.MaxAttempts = %d, want 30", cfg.DocumentIntel.MaxAttempts)
	}
	if cfg.VA.ClaimsKey != "" {
		t.Errorf("VA.ClaimsKey = %q, want empty", cfg.VA.ClaimsKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestVAKeysFallBackToSharedKey(t *testing.T) {
	t.Setenv("VA_API_KEY", "shared")
	t.Setenv("VA_CLAIMS_API_KEY", "")
	t.Setenv("VA_HEALTH_API_KEY", "health-only")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VA.ClaimsKey != "shared" {
		t.Errorf("VA.ClaimsKey = %q, want shared", cfg.VA.ClaimsKey)
	}
	if cfg.VA.HealthKey != "health-only" {
		t.Errorf("VA.HealthKey = %q, want health-only", cfg.VA.HealthKey)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingDatabaseURL) {
		t.Errorf("Validate() error = %v, want ErrMissingDatabaseURL", err)
	}
}

func TestGetEnvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("AI_RATE_LIMIT_PER_MINUTE", "many")

	if got := getEnvInt("AI_RATE_LIMIT_PER_MINUTE", 30); got != 30 {
		t.Errorf("getEnvInt() = %d, want 30", got)
	}
}
