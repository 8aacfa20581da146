package autoplay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

func board(rows ...string) engine.Board {
	b := engine.MakeBoard(len(rows[0]), len(rows))
	for r, line := range rows {
		for c, ch := range line {
			if ch != '.' {
				b[r][c] = engine.Cell(ch - '0')
			}
		}
	}
	return b
}

func smallConfig(cols, rows int) config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Board = config.BoardConfig{Columns: cols, Rows: rows}
	cfg.Block.Height = 1
	cfg.Cascade.Enabled = false
	cfg.Difficulty.Enabled = false
	return cfg
}

func dots(n int) []engine.Block {
	out := make([]engine.Block, n)
	for i := range out {
		out[i] = engine.Block{{engine.Cell(1 + i%3)}}
	}
	return out
}

func TestPickColumnPrefersDeepestLanding(t *testing.T) {
	bot := New(7)
	bot.Noise = 0

	st := engine.State{
		Board: board(
			"1....",
			".....",
			"22.22",
			"22.22",
		),
		Block:    engine.Block{{1}},
		Position: engine.Position{X: 0, Y: 0},
		Status:   engine.StatusRunning,
	}

	assert.Equal(t, 2, bot.pickColumn(st))
}

func TestSurfaceIgnoresFallingBlock(t *testing.T) {
	st := engine.State{
		Board: board(
			".11",
			"..1",
			"3..",
		),
		Block:    engine.Block{{1, 1}},
		Position: engine.Position{X: 1, Y: 0},
	}

	assert.Equal(t, []int{2, 3, 1}, surface(st))
}

func TestProfileAndLanding(t *testing.T) {
	block := engine.Block{
		{1, 1, 0},
		{1, 0, 0},
	}
	assert.Equal(t, []int{1, 0, -1}, profile(block))

	// Column 0 is open to row 4, column 1 to row 2.
	assert.Equal(t, 1, landing([]int{5, 2, 0}, profile(block), 0))
}

func TestRunFillsBoardAndWins(t *testing.T) {
	s, err := session.New(smallConfig(4, 4), dots(8))
	require.NoError(t, err)

	bot := New(1)
	bot.Noise = 0
	out := Run(s, bot, 10*time.Millisecond, 10000)

	assert.Equal(t, engine.StatusYouWon, out.Status)
	assert.Equal(t, 8, out.Stats.BlocksPlaced)
	assert.Equal(t, 8, engine.FilledCount(s.Snapshot().Board))
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() Outcome {
		s, err := session.New(smallConfig(6, 6), dots(20))
		require.NoError(t, err)
		return Run(s, New(42), 10*time.Millisecond, 20000)
	}

	assert.Equal(t, run(), run())
}

func TestRunStopsAtTickLimit(t *testing.T) {
	s, err := session.New(smallConfig(6, 6), dots(20))
	require.NoError(t, err)

	out := Run(s, New(3), 10*time.Millisecond, 5)

	assert.Equal(t, 5, out.Ticks)
	assert.Equal(t, engine.StatusRunning, out.Status)
}

func TestNextIsNeutralWhenIdle(t *testing.T) {
	s, err := session.New(smallConfig(4, 4), dots(1))
	require.NoError(t, err)

	assert.Equal(t, session.Intent{}, New(1).Next(s))
}
