package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Format.Symbols != nil || cfg.Repair.Mode != nil || cfg.History.Enabled != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[format]
symbols = "NY_"

[repair]
mode = "ordered"
order = ["replace-with-long-press", "remove-incorrect-key"]

[history]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Format.Symbols == nil || *cfg.Format.Symbols != "NY_" {
		t.Fatalf("unexpected symbols: %v", cfg.Format.Symbols)
	}
	if cfg.Repair.Mode == nil || *cfg.Repair.Mode != "ordered" {
		t.Fatalf("unexpected mode: %v", cfg.Repair.Mode)
	}
	if strings.Join(cfg.Repair.Order, ",") != "replace-with-long-press,remove-incorrect-key" {
		t.Fatalf("unexpected order: %v", cfg.Repair.Order)
	}
	if cfg.History.Enabled == nil || *cfg.History.Enabled {
		t.Fatalf("expected history disabled")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[format]\nlong = \"-\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "dahdit", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "dahdit", "dahdit.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}
