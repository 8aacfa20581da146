package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultGameYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultGameConfig())
	}
}

func TestLoadCustomPathMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("board:\n  columns: 20\ncascade:\n  threshold: 12\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Columns != 20 || cfg.Cascade.Threshold != 12 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Board.Rows != 18 || cfg.Block.Height != 5 || cfg.Timing.DownMoveMS != 200 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("block:\n  height: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr bool
	}{
		{"defaults", func(*GameConfig) {}, false},
		{"zero columns", func(c *GameConfig) { c.Board.Columns = 0 }, true},
		{"negative rows", func(c *GameConfig) { c.Board.Rows = -1 }, true},
		{"zero block height", func(c *GameConfig) { c.Block.Height = 0 }, true},
		{"zero fall interval", func(c *GameConfig) { c.Timing.DownMoveMS = 0 }, true},
		{"zero threshold", func(c *GameConfig) { c.Cascade.Threshold = 0 }, true},
		{"zero threshold without cascade", func(c *GameConfig) {
			c.Cascade.Enabled = false
			c.Cascade.Threshold = 0
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultGameConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultGameConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}
	if cfg.Cascade.Threshold != 75 {
		t.Errorf("hard threshold = %d, expected 75", cfg.Cascade.Threshold)
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("empty preset = %q, expected normal", p)
	}
}

func TestDifficultyFallInterval(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	d := NewDifficultyManager(cfg)
	base := 200 * time.Millisecond
	floor := 30 * time.Millisecond

	if got := d.FallInterval(base, floor, 0, 0); got != base {
		t.Errorf("interval at start = %v, expected %v", got, base)
	}
	// Max level: 200ms / (1 + 1.5) = 80ms.
	if got := d.FallInterval(base, floor, 40, 0); got != 80*time.Millisecond {
		t.Errorf("interval at max = %v, expected 80ms", got)
	}
	mid := d.FallInterval(base, floor, 10, 0)
	if mid >= base || mid <= 80*time.Millisecond {
		t.Errorf("interval halfway = %v, expected between 80ms and 200ms", mid)
	}

	cfg.Scaling.SpeedMultiplier = 100
	if got := NewDifficultyManager(cfg).FallInterval(base, floor, 40, 0); got != floor {
		t.Errorf("interval should not drop below floor, got %v", got)
	}

	cfg.Enabled = false
	if got := NewDifficultyManager(cfg).Level(40, time.Hour); got != 0 {
		t.Errorf("disabled progression level = %v, expected initial level", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 1000},
	})
	if got := d.Level(0, 500*time.Millisecond); got != 0.5 {
		t.Errorf("Level at half time = %v, expected 0.5", got)
	}
}
