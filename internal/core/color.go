package core

import "strconv"

// Color represents a foreground color for a screen cell.
// Each color maps onto an ANSI 256-color code.
type Color uint8

// Palette used by the arcade. The tile colors come first so that games can
// index them directly.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCyan
	ColorPink
	ColorWhite
	ColorGray
)

// ansiCodes holds the 256-color code for each Color. Zero means the
// terminal default.
var ansiCodes = [...]int{
	ColorDefault: 0,
	ColorRed:     196,
	ColorBlue:    33,
	ColorGreen:   46,
	ColorYellow:  226,
	ColorPurple:  129,
	ColorOrange:  208,
	ColorCyan:    51,
	ColorPink:    213,
	ColorWhite:   15,
	ColorGray:    245,
}

// ANSI returns the 256-color code as a string, or "" for ColorDefault and
// unknown values.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) || ansiCodes[c] == 0 {
		return ""
	}
	return strconv.Itoa(ansiCodes[c])
}
