package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("LIBRARIA_ADDR", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("SHUTDOWN_TIMEOUT", "")
		t.Setenv("SEED_DEMO_DATA", "")
		t.Setenv("LENDING_LOCK_TIMEOUT", "")

		cfg := FromEnv()
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.False(t, cfg.SeedDemoData)
		assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("LIBRARIA_ADDR", ":9090")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("SHUTDOWN_TIMEOUT", "3s")
		t.Setenv("SEED_DEMO_DATA", "true")
		t.Setenv("LENDING_LOCK_TIMEOUT", "250ms")

		cfg := FromEnv()
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.True(t, cfg.SeedDemoData)
		assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout)
	})

	t.Run("bad duration falls back", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		assert.Equal(t, 10*time.Second, FromEnv().ShutdownTimeout)

		t.Setenv("LENDING_LOCK_TIMEOUT", "-1s")
		assert.Equal(t, 5*time.Second, FromEnv().LockTimeout)
	})
}

func TestRacesFromEnv(t *testing.T) {
	t.Setenv("RACES_ADDR", "")
	assert.Equal(t, ":8000", RacesFromEnv().Addr)
}
