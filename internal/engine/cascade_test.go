package engine_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stack-the-letter/internal/engine"
)

// parseBoard builds a board from rows of digits, '.' meaning empty.
func parseBoard(t *testing.T, rows ...string) engine.Board {
	t.Helper()
	b := engine.MakeBoard(len(rows[0]), len(rows))
	for r, line := range rows {
		require.Len(t, line, len(rows[0]))
		for c, ch := range line {
			if ch != '.' {
				b[r][c] = engine.Cell(ch - '0')
			}
		}
	}
	return b
}

func randomBoard(rng *rand.Rand, w, h, colors int) engine.Board {
	b := engine.MakeBoard(w, h)
	for r := range b {
		for c := range b[r] {
			if rng.IntN(3) > 0 {
				b[r][c] = engine.Cell(1 + rng.IntN(colors))
			}
		}
	}
	return b
}

func TestCascadeRemovesExactlyLargeRegion(t *testing.T) {
	// Color 1 is an isolated blob of 18 cells; every other region is smaller.
	board := parseBoard(t,
		"3.........",
		"3.2222....",
		"1111113333",
		"1111112222",
		"1111114444",
	)

	out, rep := engine.ResolveCascadeReport(board, 18)

	assert.Equal(t, parseBoard(t,
		"..........",
		"..........",
		"......3333",
		"3.....2222",
		"3.22224444",
	), out)
	assert.Equal(t, 18, rep.Removed)
	assert.Equal(t, 1, rep.Regions)
	assert.Equal(t, 1, rep.Rounds)
	assert.Equal(t, engine.FilledCount(board)-18, engine.FilledCount(out))
}

func TestCascadeIsolatedBlobAtBottom(t *testing.T) {
	board := parseBoard(t,
		"......",
		"....22",
		"111.22",
		"111.33",
	)

	out, rep := engine.ResolveCascadeReport(board, 6)

	assert.Equal(t, parseBoard(t,
		"......",
		"....22",
		"....22",
		"....33",
	), out)
	assert.Equal(t, 6, rep.Removed)
	assert.Equal(t, 1, rep.Rounds)
}

func TestCascadeChainReaction(t *testing.T) {
	board := parseBoard(t,
		"...",
		"2..",
		"111",
		"22.",
	)

	out, rep := engine.ResolveCascadeReport(board, 3)

	assert.Equal(t, engine.MakeBoard(3, 4), out)
	assert.Equal(t, 6, rep.Removed)
	assert.Equal(t, 2, rep.Regions)
	assert.Equal(t, 2, rep.Rounds)
}

func TestCascadeGravityOnlyWhenDisabled(t *testing.T) {
	board := parseBoard(t,
		"12",
		"..",
		"3.",
		"..",
	)

	out := engine.ResolveCascade(board, 0)

	assert.Equal(t, parseBoard(t,
		"..",
		"..",
		"1.",
		"32",
	), out)
}

func TestCascadeLeavesStableBoardAlone(t *testing.T) {
	board := parseBoard(t,
		"....",
		"1...",
		"12.3",
		"2213",
	)

	out, rep := engine.ResolveCascadeReport(board, 50)

	assert.Equal(t, board, out)
	assert.Zero(t, rep.Rounds)
}

func TestCascadeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		board := randomBoard(rng, 9, 12, 3)
		threshold := 3 + rng.IntN(6)

		once := engine.ResolveCascade(board, threshold)
		twice := engine.ResolveCascade(once, threshold)

		require.Equal(t, once, twice, "board %d threshold %d", i, threshold)
	}
}

func TestCascadeLeavesNoFloatingCells(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 50; i++ {
		board := randomBoard(rng, 7, 10, 4)
		out := engine.ResolveCascade(board, 4)

		require.False(t, engine.HasFloating(out), "board %d", i)
		for r := 0; r+1 < len(out); r++ {
			for c, v := range out[r] {
				if v != engine.Empty {
					require.NotEqual(t, engine.Empty, out[r+1][c], "floating cell at %v", engine.C(r, c))
				}
			}
		}
		for _, reg := range engine.Regions(out) {
			require.Less(t, reg.Len(), 4)
		}
	}
}

func TestCascadeDoesNotMutateInput(t *testing.T) {
	board := parseBoard(t,
		"1.",
		"..",
		"11",
	)
	before := board.Clone()

	engine.ResolveCascade(board, 3)

	assert.Equal(t, before, board)
}
