package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Limits.Min != 1_000 || cfg.Limits.Max != 10_000_000 {
		t.Errorf("default limits = %+v, want [1000, 10000000]", cfg.Limits)
	}
	if cfg.UI.ResultPreview != 5 {
		t.Errorf("ResultPreview = %d, want 5", cfg.UI.ResultPreview)
	}
	if !cfg.HistoryEnabled() {
		t.Error("history should default to enabled")
	}
	if cfg.History.Keep != 100 {
		t.Errorf("History.Keep = %d, want 100", cfg.History.Keep)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom on missing file: %v", err)
	}
	if cfg.Limits.Min != DefaultConfig().Limits.Min {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	enabled := false
	cfg := DefaultConfig()
	cfg.Limits.Min = 2_000
	cfg.Limits.Max = 50_000
	cfg.UI.ResultPreview = 8
	cfg.History.Enabled = &enabled
	cfg.History.Keep = 25

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.Limits.Min != 2_000 || got.Limits.Max != 50_000 {
		t.Errorf("limits = %+v, want [2000, 50000]", got.Limits)
	}
	if got.UI.ResultPreview != 8 {
		t.Errorf("ResultPreview = %d, want 8", got.UI.ResultPreview)
	}
	if got.HistoryEnabled() {
		t.Error("history should load as disabled")
	}
	if got.History.Keep != 25 {
		t.Errorf("History.Keep = %d, want 25", got.History.Keep)
	}
}

func TestLoadFromNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "limits:\n  min: 500\n  max: 10\nui:\n  result_preview: -3\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Limits.Max < cfg.Limits.Min {
		t.Errorf("inverted limits survived normalize: %+v", cfg.Limits)
	}
	if cfg.UI.ResultPreview <= 0 {
		t.Errorf("ResultPreview = %d, want positive", cfg.UI.ResultPreview)
	}
}

func TestLoadFromMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("limits: [not a map"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted malformed yaml")
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdg-test", "pw") {
		t.Errorf("ConfigDir() = %q", got)
	}

	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	if got := StateDir(); got != filepath.Join("/tmp/xdg-state", "pw") {
		t.Errorf("StateDir() = %q", got)
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

	cfg := DefaultConfig()
	if got := cfg.HistoryPath(); got != filepath.Join("/tmp/xdg-state", "pw", "history.db") {
		t.Errorf("HistoryPath() = %q", got)
	}

	cfg.History.Path = "/somewhere/else.db"
	if got := cfg.HistoryPath(); got != "/somewhere/else.db" {
		t.Errorf("HistoryPath() = %q, want explicit path", got)
	}
}
