package config

import "fmt"

// DifficultyPreset represents a named set of lock-down rules.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists every preset, easiest first.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
}

// ApplyPreset adjusts the lock-down grace for a preset. Normal keeps the
// configured values.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.LockDelayMs = 1000
		cfg.Timing.MaxLockResets = 32
	case DifficultyHard:
		cfg.Timing.LockDelayMs = 300
		cfg.Timing.MaxLockResets = 8
	}
}
