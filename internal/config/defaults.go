package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Field: FieldConfig{
			Width:  10,
			Height: 20,
		},
		Queue: QueueConfig{
			Size:      5,
			Generator: "random",
		},
		Timing: TimingConfig{
			LockDelayMs:     500,
			MaxLockResets:   16,
			SoftDropDivisor: 20,
		},
		Scoring: ScoringConfig{
			LinesPerLevel: 10,
		},
		Input: InputConfig{
			SoftDropReleaseMs: 180,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
