// Package core provides platform-neutral types shared by the game layer and
// the terminal front end: the colored screen buffer, input actions and the
// runtime configuration. It has no Bubble Tea dependency.
package core

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CenteredRect returns a w×h rectangle centered inside an outer area.
// The result is clamped so that it never starts at a negative offset.
func CenteredRect(outerW, outerH, w, h int) Rect {
	return Rect{
		X: max((outerW-w)/2, 0),
		Y: max((outerH-h)/2, 0),
		W: w,
		H: h,
	}
}
