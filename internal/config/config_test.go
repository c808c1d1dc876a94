package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/config"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oracle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit missing path fails")

	// Empty path tolerates absence and yields defaults.
	t.Chdir(t.TempDir())

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 1.5, cfg.Timing.ContemplationMin)
	assert.Equal(t, 4.0, cfg.Timing.ContemplationMax)
	assert.Equal(t, 30.0, cfg.Timing.ExternalCallTimeout)
	assert.Equal(t, 0.7, cfg.Groq.Temperature)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_FileOverridesLayered(t *testing.T) {
	path := write(t, `
server:
  addr: ":9999"
timing:
  contemplation_min: 0.5
  contemplation_max: 1.0
redis:
  enabled: true
  history_cap: 50
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, int64(50), cfg.Redis.HistoryCap)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30.0, cfg.Timing.ExternalCallTimeout)

	tc := cfg.TimingConfig()
	assert.Equal(t, 500*time.Millisecond, tc.ContemplationMin)
	assert.Equal(t, time.Second, tc.ContemplationMax)
}

func TestLoad_InvalidTimingRejected(t *testing.T) {
	path := write(t, `
timing:
  contemplation_min: 5.0
  contemplation_max: 1.0
`)
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := write(t, "timing: [nonsense")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestAPIKey(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "gsk-test")
	assert.Equal(t, "gsk-test", config.Default().APIKey())
}
