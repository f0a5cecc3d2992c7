package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegrid/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
	assert.Equal(t, "life", cfg.Rule)
	assert.Equal(t, "wrap", cfg.Boundary)
	assert.Equal(t, "auto", cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 64
height: 48
rule: wireworld
boundary: fixed
backend: cpu
undo_depth: 25
plugin_dir: /opt/plugins
log_level: debug
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
	assert.Equal(t, "wireworld", cfg.Rule)
	assert.Equal(t, "fixed", cfg.Boundary)
	assert.Equal(t, "cpu", cfg.Backend)
	assert.Equal(t, 25, cfg.UndoDepth)
	assert.Equal(t, "/opt/plugins", cfg.PluginDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1000, cfg.MetricsCapacity)
	assert.Equal(t, 256, cfg.HashCapacity)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LIFEGRID_LOG_LEVEL", "debug")
	t.Setenv("LIFEGRID_PLUGIN_DIR", "/opt/plugins")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/plugins", cfg.PluginDir)
}

func TestEnvLogLevelBeatsFile(t *testing.T) {
	t.Setenv("LIFEGRID_LOG_LEVEL", "error")
	path := writeConfig(t, "log_level: debug\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "width: [not a number\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero width", func(c *config.Config) { c.Width = 0 }},
		{"negative height", func(c *config.Config) { c.Height = -5 }},
		{"bad boundary", func(c *config.Config) { c.Boundary = "torus" }},
		{"bad backend", func(c *config.Config) { c.Backend = "gpu" }},
		{"negative undo depth", func(c *config.Config) { c.UndoDepth = -1 }},
		{"negative metrics capacity", func(c *config.Config) { c.MetricsCapacity = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "boundary: torus\n")
	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifegrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
