package core

// Color is the foreground color of a screen cell.
// The platform maps each value to a terminal color.
type Color uint8

// Letter palette followed by interface colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorGreen
	ColorBlue
	ColorIndigo
	ColorPurple
	ColorPink
	ColorGray
	ColorWhite

	ColorFrame  // board border
	ColorDim    // secondary text
	ColorAccent // titles, highlights
	ColorFlash  // cells changed by the last move
)

// PaletteSize is the number of block colors, excluding ColorDefault.
const PaletteSize = int(ColorWhite)
