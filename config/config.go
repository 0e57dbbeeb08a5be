package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port            string
	LogLevel        slog.Level
	RedisAddr       string
	RateLimit       int
	RateWindow      time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultPort            = "8010"
	defaultRateLimit       = 30
	defaultRateWindow      = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

func Load() Config {
	return Config{
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        parseLevel(os.Getenv("LOG_LEVEL")),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RateLimit:       getInt("RATE_LIMIT", defaultRateLimit),
		RateWindow:      getDuration("RATE_WINDOW", defaultRateWindow),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
