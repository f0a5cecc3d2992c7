// Package config provides configuration loading for the lifegrid engine
// drivers. It supports YAML files with defaults and validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates configuration that fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config contains all engine driver settings.
type Config struct {
	// Width and Height are the grid dimensions.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Rule is the rule id passed to the simulator: a built-in family name,
	// a plugin name, or a B/S rulestring.
	Rule string `yaml:"rule"`

	// Boundary selects the edge policy: "wrap", "fixed" or "reflect".
	Boundary string `yaml:"boundary"`

	// Backend selects the compute backend: "auto", "cpu" or "arrow".
	Backend string `yaml:"backend"`

	// UndoDepth caps the undo/redo stacks.
	UndoDepth int `yaml:"undo_depth"`

	// MetricsCapacity caps the retained metrics log.
	MetricsCapacity int `yaml:"metrics_capacity"`

	// HashCapacity caps the grid-hash history used for cycle detection.
	HashCapacity int `yaml:"hash_capacity"`

	// PluginDir is scanned for plugin shared objects; empty disables loading.
	PluginDir string `yaml:"plugin_dir"`

	// LogLevel sets log verbosity: "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Width:           100,
		Height:          100,
		Rule:            "life",
		Boundary:        "wrap",
		Backend:         "auto",
		UndoDepth:       100,
		MetricsCapacity: 1000,
		HashCapacity:    256,
		LogLevel:        "info",
	}
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides (LIFEGRID_LOG_LEVEL, LIFEGRID_PLUGIN_DIR). A missing file leaves
// the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFEGRID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LIFEGRID_PLUGIN_DIR"); v != "" {
		cfg.PluginDir = v
	}
}

// Validate checks the configuration for values the engine would reject.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	}
	switch c.Boundary {
	case "wrap", "fixed", "reflect":
	default:
		return fmt.Errorf("%w: boundary %q (choose wrap, fixed or reflect)", ErrInvalid, c.Boundary)
	}
	switch c.Backend {
	case "auto", "cpu", "arrow":
	default:
		return fmt.Errorf("%w: backend %q (choose auto, cpu or arrow)", ErrInvalid, c.Backend)
	}
	if c.UndoDepth < 0 || c.MetricsCapacity < 0 || c.HashCapacity < 0 {
		return fmt.Errorf("%w: capacities must be non-negative", ErrInvalid)
	}
	return nil
}
