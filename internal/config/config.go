// Package config 載入服務設定：預設值 → TOML 設定檔 → 環境變數，後者覆蓋前者。
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

// Config 為 bankist 的完整設定。
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Auth    AuthConfig    `toml:"auth"`
	Ledger  LedgerConfig  `toml:"ledger"`
	Metrics MetricsConfig `toml:"metrics"`
}

type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	CORSOrigins string `toml:"cors_origins"`
}

type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret"`
	SessionTTL string `toml:"session_ttl"` // Go duration, e.g. "5m"
	PINCost    int    `toml:"pin_cost"`
}

type LedgerConfig struct {
	// SeedFile 為空時使用內建的四個示範帳戶。
	SeedFile string `toml:"seed_file"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig 回傳預設設定。
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			CORSOrigins: "http://localhost:5173",
		},
		Auth: AuthConfig{
			SessionTTL: "5m",
			PINCost:    bcrypt.DefaultCost,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load 讀取設定。path 為空時只使用預設值與環境變數。
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Auth.JWTSecret == "" {
		log.Println("[WARN] BANKIST_JWT_SECRET 未設定，使用隨機產生的密鑰；重新啟動後所有 token 失效。")
		cfg.Auth.JWTSecret = randomSecret()
	}
	if cfg.Ledger.SeedFile == "" {
		log.Println("[WARN] 未指定 seed_file，使用內建示範帳戶。")
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Host = getEnv("BANKIST_HOST", c.Server.Host)
	if v := os.Getenv("BANKIST_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BANKIST_PORT: %w", err)
		}
		c.Server.Port = p
	}
	c.Auth.JWTSecret = getEnv("BANKIST_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.SessionTTL = getEnv("BANKIST_SESSION_TTL", c.Auth.SessionTTL)
	c.Ledger.SeedFile = getEnv("BANKIST_SEED_FILE", c.Ledger.SeedFile)
	return nil
}

// Validate 檢查設定值範圍。
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if ttl, err := time.ParseDuration(c.Auth.SessionTTL); err != nil {
		errs = append(errs, fmt.Errorf("auth.session_ttl: %w", err))
	} else if ttl <= 0 {
		errs = append(errs, errors.New("auth.session_ttl must be positive"))
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 characters"))
	}
	if c.Auth.PINCost < bcrypt.MinCost || c.Auth.PINCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.pin_cost %d out of range", c.Auth.PINCost))
	}
	return errors.Join(errs...)
}

// SessionTTL 回傳解析後的 session 有效時間；Validate 通過後不會失敗。
func (c Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Auth.SessionTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// Addr 回傳 host:port。
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
