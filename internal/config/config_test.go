package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "APP_ENV", "SESSION_SECRET", "COOKIE_NAME",
		"CLIENT_ORIGIN", "MAX_DICE", "SESSION_STORE", "DATABASE_PATH", "SESSION_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":5175", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Production)
	assert.Equal(t, "dice_session", cfg.CookieName)
	assert.Equal(t, 100, cfg.MaxDice)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("MAX_DICE", "12")
	t.Setenv("SESSION_STORE", "sqlite")
	t.Setenv("DATABASE_PATH", "/tmp/x.db")
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.True(t, cfg.Production)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, 12, cfg.MaxDice)
	assert.Equal(t, StoreSQLite, cfg.SessionStore)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"non-numeric dice": {"MAX_DICE", "lots"},
		"zero dice":        {"MAX_DICE", "0"},
		"bad ttl":          {"SESSION_TTL", "soon"},
		"negative ttl":     {"SESSION_TTL", "-1h"},
		"unknown store":    {"SESSION_STORE", "redis"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnvRequiresSecretInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	_, err := FromEnv()
	assert.Error(t, err)
}
