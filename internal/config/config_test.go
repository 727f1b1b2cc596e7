package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "tetris.yaml"), []byte("queue:\n  generator: bag\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Queue.Generator != "bag" {
		t.Errorf("Generator = %q, expected bag", cfg.Queue.Generator)
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "timing:\n  lock_delay_ms: 750\nqueue:\n  size: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timing.LockDelayMs != 750 || cfg.Queue.Size != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Timing.MaxLockResets != 16 || cfg.Field.Width != 10 {
		t.Errorf("unset values lost their defaults: %+v", cfg)
	}
	if got := cfg.Machine().LockDelay; got != 750*time.Millisecond {
		t.Errorf("Machine().LockDelay = %v", got)
	}
	if got := cfg.Engine().QueueSize; got != 3 {
		t.Errorf("Engine().QueueSize = %d", got)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TetrisConfig)
	}{
		{"wide field", func(c *TetrisConfig) { c.Field.Width = 12 }},
		{"short field", func(c *TetrisConfig) { c.Field.Height = 10 }},
		{"empty queue", func(c *TetrisConfig) { c.Queue.Size = 0 }},
		{"unknown generator", func(c *TetrisConfig) { c.Queue.Generator = "tgm" }},
		{"zero lock delay", func(c *TetrisConfig) { c.Timing.LockDelayMs = 0 }},
		{"negative resets", func(c *TetrisConfig) { c.Timing.MaxLockResets = -1 }},
		{"zero divisor", func(c *TetrisConfig) { c.Timing.SoftDropDivisor = 0 }},
		{"zero lines per level", func(c *TetrisConfig) { c.Scoring.LinesPerLevel = 0 }},
		{"zero release", func(c *TetrisConfig) { c.Input.SoftDropReleaseMs = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		delay  int
		resets int
	}{
		{DifficultyEasy, 1000, 32},
		{DifficultyNormal, 500, 16},
		{DifficultyHard, 300, 8},
	}

	for _, tc := range tests {
		cfg := DefaultTetrisConfig()
		ApplyPreset(&cfg, tc.preset)
		if cfg.Timing.LockDelayMs != tc.delay || cfg.Timing.MaxLockResets != tc.resets {
			t.Errorf("%s: got %d/%d, expected %d/%d", tc.preset,
				cfg.Timing.LockDelayMs, cfg.Timing.MaxLockResets, tc.delay, tc.resets)
		}
	}

	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParsePreset(nightmare) = %v, expected ErrInvalid", err)
	}
}
