package engine

// IsObstructed reports whether a falling cell may not enter board cell
// (row, col). Columns past either side and rows past the bottom are solid;
// rows above the top edge are open so blocks can drop in from outside.
func IsObstructed(board Board, row, col int) bool {
	if col < 0 || col >= board.Width() || row >= board.Height() {
		return true
	}
	if row < 0 {
		return false
	}
	return board[row][col] != Empty
}

// LocksInHeadroom reports whether a cell locking on boardRow ends the game.
func LocksInHeadroom(boardRow, headroom int) bool {
	return boardRow < headroom
}

// lockIn zeroes every block cell whose fall is obstructed and writes it into
// settled at its current position. Columns are walked bottom-up so a locked
// cell supports the cell above it within the same tick. It returns the board
// coordinates of the locked cells.
//
// settled must be the board without the block's own footprint.
func lockIn(settled Board, block Block, pos Position) []Coord {
	var locked []Coord
	h, w := Dimensions(block)
	for c := 0; c < w; c++ {
		for r := h - 1; r >= 0; r-- {
			v := block[r][c]
			if v == Empty || block.active(r+1, c) {
				continue
			}
			row, col := pos.Y+r, pos.X+c
			if !IsObstructed(settled, row+1, col) {
				continue
			}
			block[r][c] = Empty
			if settled.InBounds(row, col) {
				settled[row][col] = v
			}
			locked = append(locked, C(row, col))
		}
	}
	return locked
}

// canShift reports whether every active cell may move by (dx, dy). A cell
// whose destination is another active cell of the same block is never
// obstructed, since that cell moves out of the way.
func canShift(settled Board, block Block, pos Position, dx, dy int) bool {
	for r, row := range block {
		for c, v := range row {
			if v == Empty || block.active(r+dy, c+dx) {
				continue
			}
			if IsObstructed(settled, pos.Y+r+dy, pos.X+c+dx) {
				return false
			}
		}
	}
	return true
}
