package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9000"
  read_timeout: 5s
postgres:
  url: postgres://file
auth:
  jwt_secret: from-file
  bcrypt_cost: 11
quiz:
  timezone: UTC
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Auth.BcryptCost != 11 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Postgres.URL != "postgres://env" {
		t.Fatalf("expected env override, got %q", cfg.Postgres.URL)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Fatalf("expected empty env to keep file value, got %q", cfg.Auth.JWTSecret)
	}
	if got := TTLDuration(cfg.Server.ReadTimeout, time.Minute); got != 5*time.Second {
		t.Fatalf("expected 5s, got %v", got)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v (%v)", loc, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "" || cfg.Postgres.URL != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Africa/Lagos" {
		t.Fatalf("expected default zone, got %v (%v)", loc, err)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Hour); got != time.Hour {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("soon", time.Hour); got != time.Hour {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
}
