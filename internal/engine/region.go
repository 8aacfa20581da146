package engine

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// Region is a maximal set of same-colored, 4-connected board cells.
type Region struct {
	color Cell
	cells []Coord
}

// Color returns the region's color, or Empty for an empty region.
func (r Region) Color() Cell {
	return r.color
}

// Len returns the number of cells in the region.
func (r Region) Len() int {
	return len(r.cells)
}

// Coords returns the region's cells in row-major order.
func (r Region) Coords() []Coord {
	out := append([]Coord(nil), r.cells...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Contains reports whether c belongs to the region.
func (r Region) Contains(c Coord) bool {
	for _, rc := range r.cells {
		if rc == c {
			return true
		}
	}
	return false
}

var neighbours = [4]Coord{{Row: -1}, {Col: 1}, {Row: 1}, {Col: -1}}

// CollectSameColorRegion returns every cell reachable from start through
// 4-directional neighbours of start's color. Starting on an empty or
// off-board cell yields an empty region.
func CollectSameColorRegion(board Board, start Coord) Region {
	visited := intmap.NewSet[int](board.Width() * board.Height())
	return collectRegion(board, start, visited)
}

// collectRegion flood-fills from start with an explicit stack. Cells are added
// to visited as they are discovered, so a shared set lets callers partition a
// whole board while classifying each cell once.
func collectRegion(board Board, start Coord, visited *intmap.Set[int]) Region {
	color, ok := At(board, start.Row, start.Col)
	if !ok || color == Empty {
		return Region{}
	}
	w := board.Width()
	key := func(c Coord) int { return c.Row*w + c.Col }

	if visited.Has(key(start)) {
		return Region{}
	}
	visited.Add(key(start))

	region := Region{color: color}
	stack := []Coord{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region.cells = append(region.cells, cur)

		for _, d := range neighbours {
			next := Coord{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if v, ok := At(board, next.Row, next.Col); !ok || v != color {
				continue
			}
			if visited.Has(key(next)) {
				continue
			}
			visited.Add(key(next))
			stack = append(stack, next)
		}
	}
	return region
}

// Regions partitions all non-empty cells of the board into regions, in
// row-major order of each region's first cell.
func Regions(board Board) []Region {
	visited := intmap.NewSet[int](board.Width() * board.Height())
	var regions []Region
	for r, row := range board {
		for c, v := range row {
			if v == Empty {
				continue
			}
			if reg := collectRegion(board, C(r, c), visited); reg.Len() > 0 {
				regions = append(regions, reg)
			}
		}
	}
	return regions
}
