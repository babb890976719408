package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Expected no error for missing config, got %v", err)
	}

	if cfg.Gestures.BadAppHoldMs != 7000 {
		t.Errorf("Expected default bad app hold 7000, got %d", cfg.Gestures.BadAppHoldMs)
	}
	if cfg.Search.MatchMode != "prefix" {
		t.Errorf("Expected default match mode prefix, got %s", cfg.Search.MatchMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoadConfigKeepsDefaultsForUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[search]
match_mode = "contains"

[gestures]
bad_app_hold_ms = 3000
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Search.MatchMode != "contains" {
		t.Errorf("Expected match mode contains, got %s", cfg.Search.MatchMode)
	}
	if cfg.Gestures.BadAppHoldMs != 3000 {
		t.Errorf("Expected bad app hold 3000, got %d", cfg.Gestures.BadAppHoldMs)
	}
	if cfg.Gestures.MenuHoldMs != 500 {
		t.Errorf("Expected default menu hold 500, got %d", cfg.Gestures.MenuHoldMs)
	}
	if cfg.Clock.Format != "15:04" {
		t.Errorf("Expected default clock format, got %s", cfg.Clock.Format)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[search\nmatch_mode ="), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected parse error for malformed config")
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.Clock.Packages[0] = "changed"

	if b.Clock.Packages[0] == "changed" {
		t.Error("Expected Default() to return independent clock package slices")
	}
	if DefaultConfig.Clock.Packages[0] == "changed" {
		t.Error("Expected DefaultConfig to be left untouched")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad match mode", func(c *Config) { c.Search.MatchMode = "regex" }, "match_mode"},
		{"hold too short", func(c *Config) { c.Gestures.BadAppHoldMs = 10 }, "bad_app_hold_ms"},
		{"menu hold longer than bad hold", func(c *Config) {
			c.Gestures.BadAppHoldMs = 400
			c.Gestures.MenuHoldMs = 450
		}, "menu_hold_ms"},
		{"empty clock format", func(c *Config) { c.Clock.Format = "" }, "clock format"},
		{"bad palette color", func(c *Config) { c.Styling.Dark.Accent = "blue" }, "dark.accent"},
		{"unknown backend", func(c *Config) { c.Preferences.Backend = "redis" }, "backend"},
		{"sqlite without path", func(c *Config) {
			c.Preferences.Backend = "sqlite"
			c.Preferences.Path = ""
		}, "path"},
		{"memory without path", func(c *Config) {
			c.Preferences.Backend = "memory"
			c.Preferences.Path = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Search.MatchMode = "fuzzy"
	cfg.Clock.Packages = []string{"org.example.Clock"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.Search.MatchMode != "fuzzy" {
		t.Errorf("Expected fuzzy match mode after reload, got %s", loaded.Search.MatchMode)
	}
	if len(loaded.Clock.Packages) != 1 || loaded.Clock.Packages[0] != "org.example.Clock" {
		t.Errorf("Expected clock packages to round-trip, got %v", loaded.Clock.Packages)
	}
}
