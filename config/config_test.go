package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{
				Port:            "8010",
				LogLevel:        slog.LevelInfo,
				RateLimit:       30,
				RateWindow:      10 * time.Second,
				ShutdownTimeout: 10 * time.Second,
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"PORT":             "9000",
				"LOG_LEVEL":        "DEBUG",
				"REDIS_ADDR":       "localhost:6379",
				"RATE_LIMIT":       "5",
				"RATE_WINDOW":      "1m",
				"SHUTDOWN_TIMEOUT": "3s",
			},
			want: Config{
				Port:            "9000",
				LogLevel:        slog.LevelDebug,
				RedisAddr:       "localhost:6379",
				RateLimit:       5,
				RateWindow:      time.Minute,
				ShutdownTimeout: 3 * time.Second,
			},
		},
		{
			name: "invalid values fall back",
			env: map[string]string{
				"LOG_LEVEL":   "loud",
				"RATE_LIMIT":  "-1",
				"RATE_WINDOW": "soon",
			},
			want: Config{
				Port:            "8010",
				LogLevel:        slog.LevelInfo,
				RateLimit:       30,
				RateWindow:      10 * time.Second,
				ShutdownTimeout: 10 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "LOG_LEVEL", "REDIS_ADDR", "RATE_LIMIT", "RATE_WINDOW", "SHUTDOWN_TIMEOUT"} {
				t.Setenv(key, tt.env[key])
			}

			assert.Equal(t, tt.want, Load())
		})
	}
}
