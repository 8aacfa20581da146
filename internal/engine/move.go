package engine

import (
	"github.com/charmbracelet/log"
)

// ResolveMove advances the falling block by one move in direction dir.
//
// Block cells that can no longer fall are locked into the board first, for
// every direction. Locking inside the headroom (the top rows, as many as the
// block is tall) ends the game and discards the move. A fully locked block
// yields StatusNextBlockPlease. Sideways moves that hit board material or an
// edge are dropped; diagonal moves fall back to a plain down move.
//
// Any status other than StatusRunning, and any unknown direction, returns the
// input unchanged.
func ResolveMove(dir Direction, st State) Result {
	if st.Status != StatusRunning {
		return Result{State: st}
	}
	if !dir.Valid() {
		log.Warn("engine: ignoring unknown direction", "direction", dir)
		return Result{State: st}
	}

	headroom := st.Block.Height()

	settled := st.Board.Clone()
	eraseFootprint(settled, st.Block, st.Position)

	block := st.Block.Clone()
	for _, c := range lockIn(settled, block, st.Position) {
		if LocksInHeadroom(c.Row, headroom) {
			return Result{State: State{
				Board:    st.Board,
				Block:    st.Block,
				Position: st.Position,
				Status:   StatusGameOver,
			}}
		}
	}

	if block.IsEmpty() {
		// Locked cells were stamped when the block last moved.
		return Result{State: State{
			Board:    st.Board,
			Block:    st.Block,
			Position: st.Position,
			Status:   StatusNextBlockPlease,
		}}
	}

	dx, dy := dir.Delta()
	if dx != 0 && !canShift(settled, block, st.Position, dx, dy) {
		if dy == 0 {
			return Result{State: State{
				Board:    st.Board,
				Block:    st.Block,
				Position: st.Position,
				Status:   StatusRunning,
			}}
		}
		dx = 0
	}

	if !block.sameShape(st.Block) {
		log.Error("engine: block shape changed during move, keeping previous block",
			"rows", block.Height(), "want", st.Block.Height())
		block = st.Block
	}

	pos := Position{X: st.Position.X + dx, Y: st.Position.Y + dy}
	board := settled
	stampInto(board, block, pos)

	return Result{
		State: State{
			Board:    board,
			Block:    block,
			Position: pos,
			Status:   StatusRunning,
		},
		Changed: Diff(st.Board, board),
	}
}
