package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fingerprint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultPath), false)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: badger
  dir: /var/lib/fingerprint
browser:
  headless: true
  timeout: 5s
metrics:
  textfile: /tmp/fingerprint.prom
log:
  level: debug
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/fingerprint", cfg.Storage.Dir)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 5*time.Second, cfg.Browser.Timeout)
	assert.Equal(t, "/tmp/fingerprint.prom", cfg.Metrics.Textfile)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())

	// Untouched sections keep their defaults.
	assert.Equal(t, 8, cfg.Validation.Concurrency)
	assert.False(t, cfg.Browser.NoSandbox)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown backend":  "storage:\n  backend: postgres\n",
		"zero concurrency": "validation:\n  concurrency: 0\n",
		"bad log level":    "log:\n  level: chatty\n",
		"not yaml":         "storage: [unterminated\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), true)
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: ""}.SlogLevel())
}
