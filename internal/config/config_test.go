package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("SESSION_DIR", t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, SessionStoreFile, cfg.Session.Store)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("API_BASE_URL", "https://hris.example.com")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://hris.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "bad port", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "APP_PORT": "eighty"}},
		{name: "bad base url", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "API_BASE_URL": "localhost:8080"}},
		{name: "unknown store", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "SESSION_STORE": "memcached"}},
		{name: "zero session ttl", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "SESSION_TTL": "0s"}},
		{name: "negative session ttl", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "SESSION_TTL": "-1h"}},
		{name: "postgres without password", env: map[string]string{"SESSION_SECRET": "0123456789abcdef", "SESSION_STORE": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("SESSION_SECRET", "")
			t.Setenv("DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{User: "app", Password: "p@ss", Host: "db", Port: 5432, Name: "hris", SSLMode: "disable"}}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/hris?sslmode=disable", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &Config{App: AppConfig{LogLevel: in}}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
