// internal/config/config.go
//
// Runtime configuration for the dice server.
// Values come from the process environment, optionally seeded from a .env
// file in the working directory (development convenience, ignored if absent).
//
// Environment variables:
//   PORT            listen port (5175)
//   LOG_LEVEL       zerolog level name (info)
//   APP_ENV         "production" enables secure cookies and JSON logs
//   SESSION_SECRET  HMAC key for the session cookie
//   COOKIE_NAME     session cookie name (dice_session)
//   CLIENT_ORIGIN   allowed CORS origin for /api (http://localhost:5173)
//   MAX_DICE        largest accepted dice count (100)
//   SESSION_STORE   "memory" or "sqlite" (memory)
//   DATABASE_PATH   SQLite file when SESSION_STORE=sqlite (./data/dice.db)
//   SESSION_TTL     idle time before a session is pruned (24h)

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	devSecret = "dev_secret_change_me"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port          string
	LogLevel      string
	Production    bool
	SessionSecret string
	CookieName    string
	ClientOrigin  string
	MaxDice       int
	SessionStore  string
	DatabasePath  string
	SessionTTL    time.Duration
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Production:    os.Getenv("APP_ENV") == "production",
		SessionSecret: getEnv("SESSION_SECRET", devSecret),
		CookieName:    getEnv("COOKIE_NAME", "dice_session"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionStore:  getEnv("SESSION_STORE", StoreMemory),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/dice.db"),
	}

	var err error
	if cfg.MaxDice, err = envInt("MAX_DICE", 100); err != nil {
		return nil, err
	}
	if cfg.MaxDice < 1 {
		return nil, fmt.Errorf("MAX_DICE must be at least 1, got %d", cfg.MaxDice)
	}
	if cfg.SessionTTL, err = envDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	switch cfg.SessionStore {
	case StoreMemory, StoreSQLite:
	default:
		return nil, fmt.Errorf("SESSION_STORE: unknown store %q", cfg.SessionStore)
	}

	if cfg.SessionSecret == devSecret {
		if cfg.Production {
			return nil, errors.New("SESSION_SECRET must be set in production")
		}
		log.Warn().Msg("SESSION_SECRET not set, using development secret")
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string { return ":" + c.Port }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}
