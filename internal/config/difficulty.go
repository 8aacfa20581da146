package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the fall interval from session progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on the
// number of blocks placed and the elapsed play time.
func (d *DifficultyManager) Level(blocksPlaced int, elapsed time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "blocks":
		progress = float64(blocksPlaced) / maxAt
	case "time":
		progress = float64(elapsed.Milliseconds()) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallInterval returns the regular fall interval at the current level. The
// fall speed grows from base to base*(1+speed_multiplier); the interval never
// drops below floor.
func (d *DifficultyManager) FallInterval(base, floor time.Duration, blocksPlaced int, elapsed time.Duration) time.Duration {
	level := d.Level(blocksPlaced, elapsed)
	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))
	if interval < floor {
		return floor
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
