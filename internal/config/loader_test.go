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

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: riskly\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8501", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.Simulator.Delay)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, int64(200<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "audit_trail", cfg.Upload.FieldName)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile_Overrides(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
server:
  address: ":9000"
simulator:
  delay: 0s
upload:
  allowed_extensions: [".CSV", " xlsx ", ""]
logging:
  level: debug
  format: console
`))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, time.Duration(0), cfg.Simulator.Delay)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("RISKLY_SIMULATOR_DELAY", "250ms")
	t.Setenv("RISKLY_SERVER_ADDRESS", ":7000")

	cfg, err := LoadFromFile(writeConfig(t, "simulator:\n  delay: 5s\n"))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Delay)
	assert.Equal(t, ":7000", cfg.Server.Address)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative delay":       "simulator:\n  delay: -1s\n",
		"delay past deadline":  "simulator:\n  delay: 2m\nserver:\n  write_timeout: 1m\n",
		"zero upload limit":    "upload:\n  max_bytes: 0\n",
		"bad metrics path":     "metrics:\n  path: metrics\n",
		"no upload extensions": "upload:\n  allowed_extensions: [\"\"]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
