package engine_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stack-the-letter/internal/engine"
)

func mustBlock(t *testing.T, rows [][]engine.Cell) engine.Block {
	t.Helper()
	b, err := engine.NewBlock(rows, len(rows))
	require.NoError(t, err)
	return b
}

// running places block on board at pos and returns a running state.
func running(board engine.Board, block engine.Block, pos engine.Position) engine.State {
	return engine.State{
		Board:    engine.Stamp(board, block, pos),
		Block:    block,
		Position: pos,
		Status:   engine.StatusRunning,
	}
}

func TestSimpleDrop(t *testing.T) {
	// 3 columns, 6 visible rows plus 1 headroom row.
	board := engine.MakeBoard(3, 7)
	block := mustBlock(t, [][]engine.Cell{{1}})
	st := engine.State{Board: board, Block: block, Position: engine.Position{X: 1}, Status: engine.StatusRunning}

	for y := 1; y <= 6; y++ {
		res := engine.ResolveMove(engine.DirDown, st)
		require.Equal(t, engine.StatusRunning, res.Status, "move %d", y)
		assert.Equal(t, engine.Position{X: 1, Y: y}, res.Position)
		assert.Equal(t, engine.Cell(1), res.Board[y][1])
		assert.Equal(t, 1, engine.FilledCount(res.Board))
		st = res.State
	}

	res := engine.ResolveMove(engine.DirDown, st)
	assert.Equal(t, engine.StatusNextBlockPlease, res.Status)
	assert.True(t, res.Board.Equal(st.Board))
	assert.Equal(t, st.Position, res.Position)
	assert.Equal(t, engine.Cell(1), res.Board[6][1])
	assert.Empty(t, res.Changed)
}

func TestDownReportsChangedCells(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{3}})
	st := running(engine.MakeBoard(2, 4), block, engine.Position{X: 0, Y: 1})

	res := engine.ResolveMove(engine.DirDown, st)

	require.Equal(t, engine.StatusRunning, res.Status)
	assert.Equal(t, []engine.CellChange{
		{Coord: engine.C(1, 0), Value: engine.Empty},
		{Coord: engine.C(2, 0), Value: 3},
	}, res.Changed)
}

func TestCollisionBlocksLateralMove(t *testing.T) {
	board := engine.MakeBoard(5, 7)
	for r := 0; r < 7; r++ {
		board[r][3] = 2
	}
	block := mustBlock(t, [][]engine.Cell{{1}})
	st := running(board, block, engine.Position{X: 2, Y: 3})

	res := engine.ResolveMove(engine.DirRight, st)

	assert.Equal(t, engine.StatusRunning, res.Status)
	assert.True(t, res.Board.Equal(st.Board))
	assert.Equal(t, st.Position, res.Position)
	assert.Empty(t, res.Changed)
}

func TestLateralMoveBlockedByEdges(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1, 1}})
	board := engine.MakeBoard(4, 5)

	left := engine.ResolveMove(engine.DirLeft, running(board, block, engine.Position{X: 0, Y: 2}))
	assert.Equal(t, engine.Position{X: 0, Y: 2}, left.Position)

	right := engine.ResolveMove(engine.DirRight, running(board, block, engine.Position{X: 2, Y: 2}))
	assert.Equal(t, engine.Position{X: 2, Y: 2}, right.Position)

	free := engine.ResolveMove(engine.DirRight, running(board, block, engine.Position{X: 1, Y: 2}))
	assert.Equal(t, engine.Position{X: 2, Y: 2}, free.Position)
	assert.Equal(t, engine.Empty, free.Board[2][1])
	assert.Equal(t, engine.Cell(1), free.Board[2][3])
}

func TestLateralMoveAllowedByOwnShape(t *testing.T) {
	// L shape: the lower-right cell's left neighbour is part of the block.
	block := mustBlock(t, [][]engine.Cell{
		{1, 0},
		{1, 1},
	})
	st := running(engine.MakeBoard(4, 6), block, engine.Position{X: 1, Y: 3})

	res := engine.ResolveMove(engine.DirLeft, st)

	require.Equal(t, engine.StatusRunning, res.Status)
	assert.Equal(t, engine.Position{X: 0, Y: 3}, res.Position)
	assert.Equal(t, engine.Cell(1), res.Board[3][0])
	assert.Equal(t, engine.Cell(1), res.Board[4][0])
	assert.Equal(t, engine.Cell(1), res.Board[4][1])
	assert.Equal(t, engine.Empty, res.Board[3][1])
	assert.Equal(t, engine.Empty, res.Board[4][2])
	assert.Equal(t, 3, engine.FilledCount(res.Board))
}

func TestLateralMoveBlockedBeneathOverhang(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{
		{1, 0},
		{1, 1},
	})
	board := engine.MakeBoard(4, 6)
	board[3][0] = 5
	st := running(board, block, engine.Position{X: 1, Y: 3})

	res := engine.ResolveMove(engine.DirLeft, st)

	assert.Equal(t, engine.StatusRunning, res.Status)
	assert.Equal(t, st.Position, res.Position)
	assert.True(t, res.Board.Equal(st.Board))
}

func TestDiagonalMoves(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1}})
	board := engine.MakeBoard(3, 6)

	t.Run("free diagonal", func(t *testing.T) {
		res := engine.ResolveMove(engine.DirDiagonalRight, running(board, block, engine.Position{X: 0, Y: 2}))
		assert.Equal(t, engine.Position{X: 1, Y: 3}, res.Position)
		assert.Equal(t, engine.Cell(1), res.Board[3][1])
	})

	t.Run("edge degrades to down", func(t *testing.T) {
		res := engine.ResolveMove(engine.DirDiagonalLeft, running(board, block, engine.Position{X: 0, Y: 2}))
		assert.Equal(t, engine.StatusRunning, res.Status)
		assert.Equal(t, engine.Position{X: 0, Y: 3}, res.Position)
	})

	t.Run("material degrades to down", func(t *testing.T) {
		b := board.Clone()
		b[3][1] = 4
		res := engine.ResolveMove(engine.DirDiagonalRight, running(b, block, engine.Position{X: 0, Y: 2}))
		assert.Equal(t, engine.Position{X: 0, Y: 3}, res.Position)
		assert.Equal(t, engine.Cell(4), res.Board[3][1])
	})
}

func TestGameOverInHeadroom(t *testing.T) {
	// Block height 2, so rows 0 and 1 are headroom.
	block := mustBlock(t, [][]engine.Cell{{1}, {1}})
	board := engine.MakeBoard(2, 6)
	for r := 2; r < 6; r++ {
		board[r][0] = 2
	}
	st := running(board, block, engine.Position{X: 0, Y: 0})

	res := engine.ResolveMove(engine.DirDown, st)

	assert.Equal(t, engine.StatusGameOver, res.Status)
	assert.True(t, res.Board.Equal(st.Board))
	assert.True(t, res.Block.Equal(st.Block))
	assert.Equal(t, st.Position, res.Position)
	assert.Empty(t, res.Changed)
}

func TestPartialLockIn(t *testing.T) {
	board := engine.MakeBoard(3, 6)
	board[5][0] = 7
	block := mustBlock(t, [][]engine.Cell{{1, 2}})
	st := running(board, block, engine.Position{X: 0, Y: 3})

	st = engine.ResolveMove(engine.DirDown, st).State
	require.Equal(t, engine.Position{X: 0, Y: 4}, st.Position)

	// Left cell rests on the 7 and locks; the right cell keeps falling.
	res := engine.ResolveMove(engine.DirDown, st)
	require.Equal(t, engine.StatusRunning, res.Status)
	assert.Equal(t, engine.Block{{0, 2}}, res.Block)
	assert.Equal(t, engine.Cell(1), res.Board[4][0])
	assert.Equal(t, engine.Cell(2), res.Board[5][1])
	assert.Equal(t, engine.Empty, res.Board[4][1])

	res = engine.ResolveMove(engine.DirDown, res.State)
	assert.Equal(t, engine.StatusNextBlockPlease, res.Status)
	assert.Equal(t, 3, engine.FilledCount(res.Board))
}

func TestColumnRunLocksUpToGap(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1}, {0}, {2}})
	st := running(engine.MakeBoard(1, 8), block, engine.Position{X: 0, Y: 4})

	st = engine.ResolveMove(engine.DirDown, st).State
	require.Equal(t, engine.Position{X: 0, Y: 5}, st.Position)

	// The lower cell reaches the bottom and locks; the cell above the gap falls on.
	res := engine.ResolveMove(engine.DirDown, st)
	require.Equal(t, engine.StatusRunning, res.Status)
	assert.Equal(t, engine.Block{{1}, {0}, {0}}, res.Block)
	assert.Equal(t, engine.Cell(1), res.Board[6][0])
	assert.Equal(t, engine.Cell(2), res.Board[7][0])

	res = engine.ResolveMove(engine.DirDown, res.State)
	assert.Equal(t, engine.StatusNextBlockPlease, res.Status)
}

func TestGapAboveLockedCellMayStayInHeadroom(t *testing.T) {
	// Block height 3, so rows 0 to 2 are headroom.
	block := mustBlock(t, [][]engine.Cell{{2}, {0}, {1}})
	board := engine.MakeBoard(1, 6)
	board[4][0] = 9
	st := running(board, block, engine.Position{X: 0, Y: 1})

	// The lower cell locks on row 3, below the headroom. The cell above the
	// gap sits in the headroom but still falls, so the game goes on.
	res := engine.ResolveMove(engine.DirDown, st)
	require.Equal(t, engine.StatusRunning, res.Status)
	assert.Equal(t, engine.Cell(1), res.Board[3][0])
	assert.Equal(t, engine.Cell(2), res.Board[2][0])
	assert.Equal(t, engine.Block{{2}, {0}, {0}}, res.Block)

	// Now it lands on row 2 and locks inside the headroom.
	res = engine.ResolveMove(engine.DirDown, res.State)
	assert.Equal(t, engine.StatusGameOver, res.Status)
}

func TestContiguousRunLocksInOneTick(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1}, {2}})
	st := running(engine.MakeBoard(1, 6), block, engine.Position{X: 0, Y: 4})

	res := engine.ResolveMove(engine.DirDown, st)

	assert.Equal(t, engine.StatusNextBlockPlease, res.Status)
	assert.True(t, res.Board.Equal(st.Board))
}

func TestBlockRowCountPreserved(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1, 1}, {0, 1}, {0, 1}})
	board := engine.MakeBoard(4, 9)
	board[8][1] = 2
	st := running(board, block, engine.Position{X: 0, Y: 4})

	for i := 0; i < 10 && st.Status == engine.StatusRunning; i++ {
		res := engine.ResolveMove(engine.DirDown, st)
		require.Equal(t, 3, res.Block.Height())
		require.Equal(t, 2, res.Block.Width())
		st = res.State
	}
}

func TestNonRunningStatusIsNoop(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1}})
	for _, status := range []engine.Status{
		engine.StatusIdle,
		engine.StatusNextBlockPlease,
		engine.StatusGameOver,
		engine.StatusYouWon,
	} {
		st := running(engine.MakeBoard(3, 4), block, engine.Position{X: 1, Y: 1})
		st.Status = status

		res := engine.ResolveMove(engine.DirDown, st)

		assert.Equal(t, st, res.State, status.String())
		assert.Empty(t, res.Changed, status.String())
	}
}

func TestUnknownDirectionIsNoop(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1}})
	st := running(engine.MakeBoard(3, 4), block, engine.Position{X: 1, Y: 1})

	res := engine.ResolveMove(engine.Direction(42), st)

	assert.Equal(t, st, res.State)
	assert.Empty(t, res.Changed)
}

func TestResolveMoveDoesNotMutateInput(t *testing.T) {
	block := mustBlock(t, [][]engine.Cell{{1, 2}, {0, 3}})
	board := engine.MakeBoard(4, 6)
	board[5][1] = 9
	st := running(board, block, engine.Position{X: 0, Y: 2})
	boardBefore := st.Board.Clone()
	blockBefore := st.Block.Clone()

	for _, dir := range []engine.Direction{engine.DirDown, engine.DirRight, engine.DirDiagonalRight, engine.DirLeft} {
		engine.ResolveMove(dir, st)
		assert.True(t, st.Board.Equal(boardBefore), dir.String())
		assert.True(t, st.Block.Equal(blockBefore), dir.String())
	}
}

func TestMovesConserveCells(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	dirs := []engine.Direction{
		engine.DirLeft, engine.DirRight, engine.DirDown,
		engine.DirDiagonalLeft, engine.DirDiagonalRight,
	}

	for game := 0; game < 20; game++ {
		board := engine.MakeBoard(8, 14)
		for c := 0; c < 8; c++ {
			for r := 14 - rng.IntN(5); r < 14; r++ {
				board[r][c] = engine.Cell(1 + rng.IntN(3))
			}
		}
		block := mustBlock(t, [][]engine.Cell{
			{1, 0, 2},
			{1, 1, 2},
			{0, 3, 0},
		})
		st := running(board, block, engine.Position{X: 2, Y: 0})
		want := engine.FilledCount(st.Board)

		for step := 0; step < 200 && st.Status == engine.StatusRunning; step++ {
			res := engine.ResolveMove(dirs[rng.IntN(len(dirs))], st)
			require.Equal(t, want, engine.FilledCount(res.Board), "game %d step %d", game, step)
			st = res.State
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want engine.Direction
	}{
		{"left", engine.DirLeft},
		{"right", engine.DirRight},
		{"down", engine.DirDown},
		{"diagonal-left", engine.DirDiagonalLeft},
		{" Diagonal-Right ", engine.DirDiagonalRight},
	}
	for _, tt := range tests {
		got, err := engine.ParseDirection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)

		back, err := engine.ParseDirection(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, back)
	}

	_, err := engine.ParseDirection("up")
	assert.Error(t, err)
}
