// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// GameConfig contains all configuration for a stacking session.
type GameConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Block      BlockConfig      `yaml:"block"`
	Cascade    CascadeConfig    `yaml:"cascade"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the visible playfield. The headroom rows the blocks
// drop in from are added on top and are not counted here.
type BoardConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// BlockConfig defines the falling blocks.
type BlockConfig struct {
	Height int `yaml:"height"` // Row count of every block, also the headroom size
}

// CascadeConfig defines same-color region removal after a block is placed.
type CascadeConfig struct {
	Enabled   bool `yaml:"enabled"`
	Threshold int  `yaml:"threshold"` // Minimum region size that gets removed
}

// TimingConfig defines the two movement cooldowns in milliseconds.
type TimingConfig struct {
	SideMoveMS            int `yaml:"side_move_ms"`
	DownMoveMS            int `yaml:"down_move_ms"`
	AcceleratedDownMoveMS int `yaml:"accelerated_down_move_ms"`
}

// SideMove returns the minimum interval between lateral moves.
func (t TimingConfig) SideMove() time.Duration {
	return time.Duration(t.SideMoveMS) * time.Millisecond
}

// DownMove returns the regular fall interval.
func (t TimingConfig) DownMove() time.Duration {
	return time.Duration(t.DownMoveMS) * time.Millisecond
}

// AcceleratedDownMove returns the fall interval while accelerating.
func (t TimingConfig) AcceleratedDownMove() time.Duration {
	return time.Duration(t.AcceleratedDownMoveMS) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "blocks", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Blocks placed or milliseconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra fall speed at max difficulty
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that sizes and timings are usable.
func (c GameConfig) Validate() error {
	switch {
	case c.Board.Columns <= 0 || c.Board.Rows <= 0:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Board.Columns, c.Board.Rows)
	case c.Block.Height <= 0:
		return fmt.Errorf("%w: block height must be positive, got %d", ErrInvalidConfig, c.Block.Height)
	case c.Timing.SideMoveMS <= 0 || c.Timing.DownMoveMS <= 0 || c.Timing.AcceleratedDownMoveMS <= 0:
		return fmt.Errorf("%w: move intervals must be positive", ErrInvalidConfig)
	case c.Cascade.Enabled && c.Cascade.Threshold <= 0:
		return fmt.Errorf("%w: cascade threshold must be positive, got %d", ErrInvalidConfig, c.Cascade.Threshold)
	case c.Difficulty.Scaling.SpeedMultiplier < 0:
		return fmt.Errorf("%w: speed multiplier must not be negative", ErrInvalidConfig)
	}
	return nil
}

// RemovalThreshold returns the cascade threshold, or 0 when region removal
// is disabled.
func (c GameConfig) RemovalThreshold() int {
	if !c.Cascade.Enabled {
		return 0
	}
	return c.Cascade.Threshold
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a difficulty preset name. An empty name is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
