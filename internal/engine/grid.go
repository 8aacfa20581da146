package engine

import (
	"errors"
	"fmt"
)

// ErrBlockShape is returned when block rows do not form a rectangle of the
// expected height.
var ErrBlockShape = errors.New("engine: malformed block shape")

// Board is the playfield including the hidden headroom rows at the top.
// It is rectangular and its dimensions never change.
type Board [][]Cell

// Block is the falling piece. Its row count is fixed; cells are zeroed
// individually as they lock into the board.
type Block [][]Cell

// MakeBoard returns an all-empty board.
func MakeBoard(width, height int) Board {
	b := make(Board, height)
	for r := range b {
		b[r] = make([]Cell, width)
	}
	return b
}

// NewBlock builds a block from rows, checking that there are exactly height
// rows of equal, non-zero width. The rows are copied.
func NewBlock(rows [][]Cell, height int) (Block, error) {
	if len(rows) != height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBlockShape, len(rows), height)
	}
	if height == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty block", ErrBlockShape)
	}
	width := len(rows[0])
	b := make(Block, height)
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrBlockShape, r, len(row), width)
		}
		b[r] = append([]Cell(nil), row...)
	}
	return b, nil
}

// At returns the cell at (row, col). Out-of-bounds lookups return (Empty, false).
func At[G ~[][]Cell](g G, row, col int) (Cell, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Empty, false
	}
	return g[row][col], true
}

// Dimensions returns the row and column count of a grid.
func Dimensions[G ~[][]Cell](g G) (rows, cols int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// FilledCount returns the number of non-empty cells.
func FilledCount[G ~[][]Cell](g G) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

func cloneGrid[G ~[][]Cell](g G) G {
	out := make(G, len(g))
	for r, row := range g {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

func equalGrid[G ~[][]Cell](a, b G) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

// Width returns the number of columns.
func (b Board) Width() int {
	_, w := Dimensions(b)
	return w
}

// Height returns the number of rows, headroom included.
func (b Board) Height() int {
	return len(b)
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	return cloneGrid(b)
}

// Equal reports whether both boards hold the same cells.
func (b Board) Equal(other Board) bool {
	return equalGrid(b, other)
}

// InBounds reports whether (row, col) lies on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(b) && col >= 0 && col < b.Width()
}

// Width returns the number of columns.
func (b Block) Width() int {
	_, w := Dimensions(b)
	return w
}

// Height returns the number of rows.
func (b Block) Height() int {
	return len(b)
}

// Clone returns a deep copy.
func (b Block) Clone() Block {
	return cloneGrid(b)
}

// Equal reports whether both blocks hold the same cells.
func (b Block) Equal(other Block) bool {
	return equalGrid(b, other)
}

// IsEmpty reports whether every cell has been consumed.
func (b Block) IsEmpty() bool {
	return FilledCount(b) == 0
}

// active reports whether the block cell at (r, c) exists and is non-empty.
func (b Block) active(r, c int) bool {
	v, ok := At(b, r, c)
	return ok && v != Empty
}

// sameShape reports whether b has the given row count and a uniform width.
func (b Block) sameShape(other Block) bool {
	if len(b) != len(other) {
		return false
	}
	for r := range b {
		if len(b[r]) != len(other[r]) {
			return false
		}
	}
	return true
}

// Stamp returns a copy of board with the active cells of block written at pos.
// Cells falling outside the board are skipped.
func Stamp(board Board, block Block, pos Position) Board {
	out := board.Clone()
	stampInto(out, block, pos)
	return out
}

func stampInto(board Board, block Block, pos Position) {
	for r, row := range block {
		for c, v := range row {
			if v == Empty {
				continue
			}
			if board.InBounds(pos.Y+r, pos.X+c) {
				board[pos.Y+r][pos.X+c] = v
			}
		}
	}
}

// eraseFootprint clears the board cells covered by the block's active cells.
func eraseFootprint(board Board, block Block, pos Position) {
	for r, row := range block {
		for c, v := range row {
			if v == Empty {
				continue
			}
			if board.InBounds(pos.Y+r, pos.X+c) {
				board[pos.Y+r][pos.X+c] = Empty
			}
		}
	}
}

// Diff lists the cells whose value differs between two boards of the same
// dimensions, in row-major order.
func Diff(before, after Board) []CellChange {
	var changes []CellChange
	for r := range after {
		for c, v := range after[r] {
			old, _ := At(before, r, c)
			if old != v {
				changes = append(changes, CellChange{Coord: C(r, c), Value: v})
			}
		}
	}
	return changes
}
