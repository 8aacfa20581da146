package engine

// DefaultRemovalThreshold is the region size at which a region is removed.
const DefaultRemovalThreshold = 50

// CascadeReport summarizes a cascade run.
type CascadeReport struct {
	Removed int // cells removed across all rounds
	Regions int // regions removed across all rounds
	Rounds  int // rounds in which cells were removed or fell
}

// ResolveCascade removes every region of at least threshold cells, lets the
// remaining cells fall, and repeats until the board is stable. A threshold
// of zero or less disables removal and only applies gravity.
func ResolveCascade(board Board, threshold int) Board {
	out, _ := ResolveCascadeReport(board, threshold)
	return out
}

// ResolveCascadeReport is ResolveCascade with statistics.
func ResolveCascadeReport(board Board, threshold int) (Board, CascadeReport) {
	var rep CascadeReport
	out := board.Clone()
	for {
		removed, regions := removeRegions(out, threshold)
		fell := applyGravity(out)
		if removed == 0 && !fell {
			return out, rep
		}
		rep.Removed += removed
		rep.Regions += regions
		rep.Rounds++
	}
}

// removeRegions clears every region of at least threshold cells in place.
func removeRegions(board Board, threshold int) (cells, regions int) {
	if threshold <= 0 {
		return 0, 0
	}
	for _, reg := range Regions(board) {
		if reg.Len() < threshold {
			continue
		}
		for _, c := range reg.cells {
			board[c.Row][c.Col] = Empty
		}
		cells += reg.Len()
		regions++
	}
	return cells, regions
}

// HasFloating reports whether any non-empty cell has an empty cell below it.
func HasFloating(board Board) bool {
	for r := 0; r+1 < len(board); r++ {
		for c, v := range board[r] {
			if v != Empty && board[r+1][c] == Empty {
				return true
			}
		}
	}
	return false
}

// applyGravity compacts each column toward the bottom in place, keeping the
// relative order of its cells. It reports whether any cell moved.
func applyGravity(board Board) bool {
	if !HasFloating(board) {
		return false
	}
	h, w := Dimensions(board)
	for c := 0; c < w; c++ {
		dst := h - 1
		for r := h - 1; r >= 0; r-- {
			v := board[r][c]
			if v == Empty {
				continue
			}
			board[r][c] = Empty
			board[dst][c] = v
			dst--
		}
	}
	return true
}
