package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration for the lending service.
type Server struct {
	Addr            string
	LogLevel        slog.Level
	LogFormat       string
	ShutdownTimeout time.Duration
	SeedDemoData    bool
	// LockTimeout bounds how long a borrow or return waits for its locks.
	LockTimeout     time.Duration
}

// Races captures configuration for the race results service.
type Races struct {
	Addr      string
	LogLevel  slog.Level
	LogFormat string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            envOr("LIBRARIA_ADDR", ":8080"),
		LogLevel:        parseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:       envOr("LOG_FORMAT", "json"),
		ShutdownTimeout: parseDuration(os.Getenv("SHUTDOWN_TIMEOUT"), 10*time.Second),
		SeedDemoData:    os.Getenv("SEED_DEMO_DATA") == "true",
		LockTimeout:     parseDuration(os.Getenv("LENDING_LOCK_TIMEOUT"), 5*time.Second),
	}
}

// RacesFromEnv builds the race results service config.
func RacesFromEnv() Races {
	return Races{
		Addr:      envOr("RACES_ADDR", ":8000"),
		LogLevel:  parseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat: envOr("LOG_FORMAT", "json"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
