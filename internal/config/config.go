// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris platform.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/tetris/field"
	"github.com/vovakirdan/tui-tetris/internal/tetris/machine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// TetrisConfig contains all configuration for a game.
type TetrisConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Queue   QueueConfig   `yaml:"queue"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Input   InputConfig   `yaml:"input"`
}

// FieldConfig defines the playfield size.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// QueueConfig defines how upcoming pieces are generated.
type QueueConfig struct {
	Size      int    `yaml:"size"`      // Upcoming kinds kept, "next" included
	Generator string `yaml:"generator"` // Registered generator ID
}

// TimingConfig defines the lock-down and gravity rules.
type TimingConfig struct {
	LockDelayMs     int `yaml:"lock_delay_ms"`
	MaxLockResets   int `yaml:"max_lock_resets"`
	SoftDropDivisor int `yaml:"soft_drop_divisor"`
}

// ScoringConfig defines level progression.
type ScoringConfig struct {
	LinesPerLevel int `yaml:"lines_per_level"`
}

// InputConfig defines platform input handling.
type InputConfig struct {
	SoftDropReleaseMs int `yaml:"soft_drop_release_ms"` // Key-up is assumed after this long without a repeat
}

// Validate checks the configuration. Only the standard 10×20 field is supported.
func (c TetrisConfig) Validate() error {
	if c.Field.Width != field.StandardWidth || c.Field.Height != field.StandardHeight {
		return fmt.Errorf("%w: field must be %dx%d, got %dx%d", ErrInvalid,
			field.StandardWidth, field.StandardHeight, c.Field.Width, c.Field.Height)
	}
	if c.Queue.Size < 1 {
		return fmt.Errorf("%w: queue size must be at least 1, got %d", ErrInvalid, c.Queue.Size)
	}
	if !registry.Exists(c.Queue.Generator) {
		return fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.Queue.Generator)
	}
	if c.Timing.LockDelayMs <= 0 {
		return fmt.Errorf("%w: lock_delay_ms must be positive", ErrInvalid)
	}
	if c.Timing.MaxLockResets < 0 {
		return fmt.Errorf("%w: max_lock_resets must not be negative", ErrInvalid)
	}
	if c.Timing.SoftDropDivisor < 1 {
		return fmt.Errorf("%w: soft_drop_divisor must be at least 1", ErrInvalid)
	}
	if c.Scoring.LinesPerLevel < 1 {
		return fmt.Errorf("%w: lines_per_level must be at least 1", ErrInvalid)
	}
	if c.Input.SoftDropReleaseMs <= 0 {
		return fmt.Errorf("%w: soft_drop_release_ms must be positive", ErrInvalid)
	}
	return nil
}

// Engine returns the rules part of the configuration.
func (c TetrisConfig) Engine() engine.Config {
	return engine.Config{
		Width:           c.Field.Width,
		Height:          c.Field.Height,
		QueueSize:       c.Queue.Size,
		LinesPerLevel:   c.Scoring.LinesPerLevel,
		SoftDropDivisor: c.Timing.SoftDropDivisor,
	}
}

// Machine returns the timing part of the configuration.
func (c TetrisConfig) Machine() machine.Config {
	return machine.Config{
		LockDelay:     time.Duration(c.Timing.LockDelayMs) * time.Millisecond,
		MaxLockResets: c.Timing.MaxLockResets,
	}
}

// SoftDropRelease returns how long the platform waits before assuming the
// soft drop key was released.
func (c TetrisConfig) SoftDropRelease() time.Duration {
	return time.Duration(c.Input.SoftDropReleaseMs) * time.Millisecond
}
