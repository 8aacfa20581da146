// Package engine implements the block-stacking simulation: the board and block
// grids, per-tick movement with per-cell lock-in, same-color region discovery
// and the removal/gravity cascade.
//
// The package is UI-agnostic and deterministic. Every operation takes values
// and returns new values; inputs are never mutated.
package engine

import (
	"fmt"
	"strings"
)

// Cell is one grid unit. Zero is empty, any positive value is a color identity.
type Cell uint8

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// Coord is a board coordinate. Row grows downward.
type Coord struct {
	Row int
	Col int
}

// C is a shorthand constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Position is the offset of a block's top-left corner on the board.
// Y is negative while a block is still above the board.
type Position struct {
	X int
	Y int
}

// Status is the game state threaded through every resolver call.
type Status uint8

const (
	StatusIdle Status = iota
	StatusRunning
	StatusNextBlockPlease
	StatusGameOver
	StatusYouWon
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusNextBlockPlease:
		return "nextBlockPlease"
	case StatusGameOver:
		return "gameOver"
	case StatusYouWon:
		return "youWon"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a session.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusYouWon
}

// Direction is a requested block movement.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirDown
	DirDiagonalLeft
	DirDiagonalRight
)

// String returns the direction name as used in replays and logs.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirDiagonalLeft:
		return "diagonal-left"
	case DirDiagonalRight:
		return "diagonal-right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d <= DirDiagonalRight
}

// Delta returns the (dx, dy) offset of one move in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirDiagonalLeft:
		return -1, 1
	case DirDiagonalRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// ParseDirection parses a direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "down":
		return DirDown, nil
	case "diagonal-left":
		return DirDiagonalLeft, nil
	case "diagonal-right":
		return DirDiagonalRight, nil
	}
	return 0, fmt.Errorf("engine: unknown direction %q", s)
}

// CellChange is one board cell whose value changed during a move.
type CellChange struct {
	Coord Coord
	Value Cell
}

// State is the value passed into and returned from ResolveMove.
type State struct {
	Board    Board
	Block    Block
	Position Position
	Status   Status
}

// Result is the outcome of a single move.
type Result struct {
	State
	// Changed lists board cells whose value changed, in row-major order.
	Changed []CellChange
}
