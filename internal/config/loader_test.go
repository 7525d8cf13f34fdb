package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Engine.PastBuffer)
	assert.Equal(t, 5*time.Minute, cfg.Engine.TimeBucket)
	assert.Equal(t, 5, cfg.Engine.Concurrency)
	assert.Equal(t, "gemini", cfg.Engine.RouteProvider)
	assert.Equal(t, "JP", cfg.ORS.Country)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 24*time.Hour, cfg.Redis.RouteTTL)
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
engine:
  route_provider: mock
  past_buffer: 15m
  concurrency: 3
redis:
  address: localhost:6379
  route_ttl: 2h
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Engine.RouteProvider)
	assert.Equal(t, 15*time.Minute, cfg.Engine.PastBuffer)
	assert.Equal(t, 3, cfg.Engine.Concurrency)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2*time.Hour, cfg.Redis.RouteTTL)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  url: postgres://file\n")

	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("ENGINE_CONCURRENCY", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Database.URL)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, 8, cfg.Engine.Concurrency)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"bad provider":    "engine:\n  route_provider: carrier-pigeon\n",
		"zero workers":    "engine:\n  concurrency: 0\n",
		"bad port":        "server:\n  port: 70000\n",
		"bad log format":  "logging:\n  format: xml\n",
		"negative buffer": "engine:\n  past_buffer: -1m\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	t.Setenv("TCO_TEST_KEY", "  value ")
	assert.Equal(t, "value", Get("TCO_TEST_KEY", "fallback"))

	t.Setenv("TCO_TEST_KEY", "   ")
	assert.Equal(t, "fallback", Get("TCO_TEST_KEY", "fallback"))
}
