package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRulesCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	data := []byte("board:\n  width: 6\n  height: 8\nships:\n  - 2\n  - 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 8 {
		t.Errorf("board = %dx%d, want 6x8", cfg.Board.Width, cfg.Board.Height)
	}
	if len(cfg.Ships) != 2 {
		t.Errorf("ships = %v, want [2 3]", cfg.Ships)
	}

	rules := cfg.Rules()
	if rules.Width != 6 || rules.Height != 8 || len(rules.ShipSizes) != 2 {
		t.Errorf("unexpected rules %+v", rules)
	}
}

func TestLoadRulesCustomPathMissing(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadRulesRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	data := []byte("board:\n  width: 3\n  height: 3\nships:\n  - 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for ship longer than both board dimensions")
	}
}

func TestLoadRulesLocalDirInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatalf("mkdir configs: %v", err)
	}
	data := []byte("board:\n  width: 3\n  height: 3\nships:\n  - 5\n")
	if err := os.WriteFile(filepath.Join(dir, "configs", "rules.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Keep the user config tier out of the picture.
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	// A present but broken rules file must surface its error instead of
	// silently falling back to the embedded default.
	if _, err := LoadRules(""); err == nil {
		t.Error("expected error for invalid local rules file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RulesConfig
		wantErr bool
	}{
		{"default", DefaultRulesConfig(), false},
		{"zero board", RulesConfig{Ships: []int{2}}, true},
		{"no ships", RulesConfig{Board: BoardConfig{Width: 10, Height: 10}}, true},
		{"zero length ship", RulesConfig{Board: BoardConfig{Width: 10, Height: 10}, Ships: []int{0}}, true},
		{"tall ship on narrow board", RulesConfig{Board: BoardConfig{Width: 1, Height: 10}, Ships: []int{5}}, false},
		{"fleet larger than board", RulesConfig{Board: BoardConfig{Width: 2, Height: 2}, Ships: []int{2, 2, 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	if cfg.Address == "" || cfg.DBPath == "" {
		t.Errorf("incomplete defaults %+v", cfg)
	}
	if cfg.IdleTimeout() <= 0 {
		t.Errorf("idle timeout = %v, want positive", cfg.IdleTimeout())
	}
}
