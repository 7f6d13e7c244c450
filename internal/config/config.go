// Package config loads server settings: built-in defaults, then an optional
// YAML file, then a .env file, then STUDIO_* environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"spinstudio/internal/domain/bike"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config errors
var (
	ErrInvalidCSRFKey = errors.New("csrf key must be 64 hex characters (32 bytes)")
	ErrMissingCSRFKey = errors.New("csrf key is required in production")
	ErrInvalidValue   = errors.New("invalid configuration value")
)

// Config holds every server setting.
type Config struct {
	Addr           string   `yaml:"addr"`
	Env            string   `yaml:"env"`
	LogLevel       string   `yaml:"log_level"`
	CSRFKey        string   `yaml:"csrf_key"` // hex
	AllowedOrigins []string `yaml:"allowed_origins"`

	ResendKey string `yaml:"resend_key"`
	EmailFrom string `yaml:"email_from"`
	ResetURL  string `yaml:"reset_url"`

	AdminPassword string        `yaml:"admin_password"`
	BikeCount     int           `yaml:"bike_count"`
	SplashDelay   time.Duration `yaml:"splash_delay"`
	FinalDelay    time.Duration `yaml:"final_delay"`
	AdminIdle     time.Duration `yaml:"admin_idle"`

	SessionTTL time.Duration `yaml:"session_ttl"`
	RateLimit  int           `yaml:"rate_limit"` // requests per second per IP
	SlowQuery  time.Duration `yaml:"slow_query"`
}

// Default returns the development settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		Env:           EnvDevelopment,
		LogLevel:      "info",
		EmailFrom:     "Spin Studio <noreply@spinstudio.example>",
		ResetURL:      "http://localhost:8080/reset",
		AdminPassword: "admin123",
		BikeCount:     20,
		SplashDelay:   2500 * time.Millisecond,
		FinalDelay:    4 * time.Second,
		AdminIdle:     30 * time.Minute,
		SessionTTL:    2 * time.Hour,
		RateLimit:     20,
		SlowQuery:     50 * time.Millisecond,
	}
}

// Load builds the configuration.
// PRE: none
// POST: the YAML file named by STUDIO_CONFIG (if set) overrides defaults;
// variables from .env never override the real environment; STUDIO_* wins
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("STUDIO_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("config_file_loaded")
	return nil
}

func (c *Config) applyEnv() error {
	c.Addr = envOrDefault("STUDIO_ADDR", c.Addr)
	c.Env = normalizeEnv(envOrDefault("STUDIO_ENV", c.Env))
	c.LogLevel = envOrDefault("STUDIO_LOG_LEVEL", c.LogLevel)
	c.CSRFKey = envOrDefault("STUDIO_CSRF_KEY", c.CSRFKey)
	if v := os.Getenv("STUDIO_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	c.ResendKey = envOrDefault("STUDIO_RESEND_KEY", c.ResendKey)
	c.EmailFrom = envOrDefault("STUDIO_RESEND_FROM", c.EmailFrom)
	c.ResetURL = envOrDefault("STUDIO_RESET_URL", c.ResetURL)
	c.AdminPassword = envOrDefault("STUDIO_ADMIN_PASSWORD", c.AdminPassword)

	var err error
	if c.BikeCount, err = envInt("STUDIO_BIKE_COUNT", c.BikeCount); err != nil {
		return err
	}
	if c.RateLimit, err = envInt("STUDIO_RATE_LIMIT", c.RateLimit); err != nil {
		return err
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"STUDIO_SPLASH_DELAY", &c.SplashDelay},
		{"STUDIO_FINAL_DELAY", &c.FinalDelay},
		{"STUDIO_ADMIN_IDLE", &c.AdminIdle},
		{"STUDIO_SESSION_TTL", &c.SessionTTL},
		{"STUDIO_SLOW_QUERY", &c.SlowQuery},
	}
	for _, d := range durations {
		if *d.dst, err = envDuration(d.key, *d.dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.BikeCount < 0 || c.BikeCount > bike.MaxCount {
		return fmt.Errorf("%w: bike_count %d", ErrInvalidValue, c.BikeCount)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate_limit %d", ErrInvalidValue, c.RateLimit)
	}
	for name, d := range map[string]time.Duration{
		"splash_delay": c.SplashDelay,
		"final_delay":  c.FinalDelay,
		"admin_idle":   c.AdminIdle,
		"session_ttl":  c.SessionTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, name)
		}
	}
	if c.CSRFKey != "" {
		if key, err := hex.DecodeString(c.CSRFKey); err != nil || len(key) != 32 {
			return ErrInvalidCSRFKey
		}
	} else if c.IsProduction() {
		return ErrMissingCSRFKey
	}
	return nil
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFSecret returns the 32-byte CSRF key. In development an unset key is
// replaced by a random one, so form tokens do not survive a restart.
// PRE: Validate passed
func (c Config) CSRFSecret() ([]byte, error) {
	if c.CSRFKey != "" {
		return hex.DecodeString(c.CSRFKey)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate csrf key: %w", err)
	}
	log.Warn().Msg("random_csrf_key")
	return key, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "prod", "production":
		return EnvProduction
	case "", "dev", "develop", "development", "local":
		return EnvDevelopment
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
