// Package engine implements the Crush Match board automaton: match detection,
// cascade resolution, power-up spawning and activation, and deadlock detection.
// It performs no I/O and has no dependency on the terminal platform.
package engine

import "fmt"

// Coord addresses a board cell. X is the column, Y is the row (Y grows downward).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Adjacent reports whether two coordinates share an edge (no diagonals).
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Color is a palette index.
type Color uint8

// Palette colors. Boards use the first PaletteSize entries.
const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Orange
	Cyan
	Pink
)

// MaxPalette is the number of distinct tile colors available.
const MaxPalette = 8

var colorNames = [MaxPalette]string{"red", "blue", "green", "yellow", "purple", "orange", "cyan", "pink"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", c)
}

// ParseColor returns the color with the given name.
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return 0, false
}

// Kind discriminates the cell variants.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindColored
	KindBomb
	KindColorClear
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindColored:
		return "colored"
	case KindBomb:
		return "bomb"
	case KindColorClear:
		return "color_clear"
	default:
		return "unknown"
	}
}

// Cell is a tagged variant: Empty, Colored(color), Bomb, or ColorClear(color).
// Color is meaningful for KindColored and KindColorClear (the clear target).
type Cell struct {
	Kind  Kind
	Color Color
}

// EmptyCell returns the transient empty cell.
func EmptyCell() Cell { return Cell{Kind: KindEmpty} }

// Colored returns a plain tile of color c.
func Colored(c Color) Cell { return Cell{Kind: KindColored, Color: c} }

// Bomb returns a bomb power-up.
func Bomb() Cell { return Cell{Kind: KindBomb} }

// ColorClear returns a color-clear power-up bound to target color c.
func ColorClear(c Color) Cell { return Cell{Kind: KindColorClear, Color: c} }

// IsEmpty reports whether the cell is empty.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// IsColored reports whether the cell is a plain colored tile.
func (c Cell) IsColored() bool { return c.Kind == KindColored }

// IsPowerUp reports whether the cell holds a bomb or color-clear.
func (c Cell) IsPowerUp() bool { return c.Kind == KindBomb || c.Kind == KindColorClear }

func (c Cell) String() string {
	switch c.Kind {
	case KindColored:
		return c.Color.String()
	case KindBomb:
		return "bomb"
	case KindColorClear:
		return "clear:" + c.Color.String()
	default:
		return "empty"
	}
}
