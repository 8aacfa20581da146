package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Columns: 36,
			Rows:    18,
		},
		Block: BlockConfig{
			Height: 5,
		},
		Cascade: CascadeConfig{
			Enabled:   true,
			Threshold: 50,
		},
		Timing: TimingConfig{
			SideMoveMS:            30,
			DownMoveMS:            200,
			AcceleratedDownMoveMS: 30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "blocks",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}
