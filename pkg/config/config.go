// Package config handles loading and saving pw configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/pw/config.yaml
//   - State:   ~/.local/state/pw/ (run history database)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/primewatch/primewatch/pkg/metrics"
)

// Limits bounds the accepted search range. A request outside [Min, Max] is
// rejected before any background work starts.
type Limits struct {
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	// ResultPreview is how many primes to show from each end of the result.
	ResultPreview int `yaml:"result_preview,omitempty"`
}

// HistoryConfig controls the run-history store.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // defaults to StateDir()/history.db
	Keep    int    `yaml:"keep,omitempty"` // runs retained before pruning
}

// Config is the top-level configuration for pw.
type Config struct {
	Limits  Limits        `yaml:"limits,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Limits: Limits{
			Min: 1_000,
			Max: 10_000_000,
		},
		UI: UIConfig{
			ResultPreview: 5,
		},
		History: HistoryConfig{
			Keep: 100,
		},
	}
}

// HistoryEnabled reports whether run history should be recorded.
// Defaults to true when unset.
func (c Config) HistoryEnabled() bool {
	if c.History.Enabled == nil {
		return true
	}
	return *c.History.Enabled
}

// HistoryPath returns the run-history database path, resolving the default
// under the XDG state directory when unset.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return expandHome(c.History.Path)
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// ConfigDir returns the XDG config directory for pw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pw")
}

// StateDir returns the XDG state directory for pw.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "pw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "pw")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	defer metrics.Timer(metrics.ConfigLoad)()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// normalize repairs values a hand-edited file can get wrong. Inverted or
// non-positive bounds revert to the defaults rather than failing the load.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Limits.Min <= 0 {
		c.Limits.Min = def.Limits.Min
	}
	if c.Limits.Max <= 0 || c.Limits.Max < c.Limits.Min {
		c.Limits.Max = def.Limits.Max
		if c.Limits.Max < c.Limits.Min {
			c.Limits.Min = def.Limits.Min
		}
	}
	if c.UI.ResultPreview <= 0 {
		c.UI.ResultPreview = def.UI.ResultPreview
	}
	if c.History.Keep <= 0 {
		c.History.Keep = def.History.Keep
	}
	c.History.Path = expandHome(c.History.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
