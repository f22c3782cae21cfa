package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "analytic", cfg.Ephemeris.Provider)
	assert.Equal(t, 4, cfg.Compute.Workers)
	assert.Equal(t, 0.5, cfg.Compute.LatStepDeg)
	assert.Equal(t, 100, cfg.Compute.FrameCap)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  log_level: debug
server:
  addr: ":9090"
ephemeris:
  provider: horizons
compute:
  workers: 8
  lat_step_deg: 1.0
store:
  backend: none
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "horizons", cfg.Ephemeris.Provider)
	assert.Equal(t, 8, cfg.Compute.Workers)
	assert.Equal(t, 1.0, cfg.Compute.LatStepDeg)
	assert.Equal(t, "none", cfg.Store.Backend)
	// Untouched sections keep their defaults.
	assert.Equal(t, 100, cfg.Compute.FrameCap)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	tests := []struct {
		name string
		body string
	}{
		{"bad log level", "app:\n  log_level: chatty\n"},
		{"bad provider", "ephemeris:\n  provider: oracle\n"},
		{"zero workers", "compute:\n  workers: 0\n"},
		{"lat step too large", "compute:\n  lat_step_deg: 45\n"},
		{"bad store backend", "store:\n  backend: postgres\n"},
		{"gorm without path", "store:\n  backend: gorm\n  path: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.body))
			assert.Error(t, err)
		})
	}
}
