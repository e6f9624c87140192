package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.SessionTTL() != 5*time.Minute {
		t.Errorf("SessionTTL = %v, want 5m", cfg.SessionTTL())
	}
	if cfg.Auth.PINCost != bcrypt.DefaultCost {
		t.Errorf("Auth.PINCost = %d, want %d", cfg.Auth.PINCost, bcrypt.DefaultCost)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if cfg.Ledger.SeedFile != "" {
		t.Errorf("Ledger.SeedFile = %q, want empty", cfg.Ledger.SeedFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bankist.toml")
	data := `
[server]
port = 9090

[auth]
session_ttl = "10m"
pin_cost = 4

[ledger]
seed_file = "seeds.toml"

[metrics]
enabled = false
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BANKIST_HOST", "0.0.0.0")
	t.Setenv("BANKIST_JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr = %q, want 0.0.0.0:9090", cfg.Addr())
	}
	if cfg.SessionTTL() != 10*time.Minute {
		t.Errorf("SessionTTL = %v, want 10m", cfg.SessionTTL())
	}
	if cfg.Auth.PINCost != 4 || cfg.Ledger.SeedFile != "seeds.toml" || cfg.Metrics.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Auth.JWTSecret != strings.Repeat("s", 32) {
		t.Errorf("JWTSecret not taken from env")
	}
}

func TestLoadGeneratesSecret(t *testing.T) {
	t.Setenv("BANKIST_JWT_SECRET", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Auth.JWTSecret) != 64 {
		t.Errorf("generated secret len = %d, want 64", len(cfg.Auth.JWTSecret))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"ttl syntax", func(c *Config) { c.Auth.SessionTTL = "soon" }},
		{"ttl negative", func(c *Config) { c.Auth.SessionTTL = "-1m" }},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"pin cost", func(c *Config) { c.Auth.PINCost = 99 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadBadPortEnv(t *testing.T) {
	t.Setenv("BANKIST_PORT", "eighty")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric BANKIST_PORT")
	}
}
