package engine

import (
	"fmt"
	"strings"
	"unicode"
)

// Text format, one row per line:
//
//	R B G Y P O C K   colored tiles (red, blue, green, yellow, purple, orange, cyan, pink)
//	r b g y p o c k   color-clear bound to that color
//	*                 bomb
//	.                 empty
var colorLetters = [MaxPalette]rune{'R', 'B', 'G', 'Y', 'P', 'O', 'C', 'K'}

// Letter returns the display rune for a color.
func (c Color) Letter() rune {
	if int(c) < len(colorLetters) {
		return colorLetters[c]
	}
	return '?'
}

// Rune returns the text-format rune for a cell.
func (c Cell) Rune() rune {
	switch c.Kind {
	case KindColored:
		return c.Color.Letter()
	case KindColorClear:
		return unicode.ToLower(c.Color.Letter())
	case KindBomb:
		return '*'
	default:
		return '.'
	}
}

func colorForLetter(r rune) (Color, bool) {
	for i, l := range colorLetters {
		if l == unicode.ToUpper(r) {
			return Color(i), true
		}
	}
	return 0, false
}

// ParseBoard builds a square board from text rows.
func ParseBoard(rows ...string) (*Board, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("engine: empty board")
	}
	b := NewBoard(n)
	for y, row := range rows {
		runes := []rune(strings.ReplaceAll(row, " ", ""))
		if len(runes) != n {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", y, len(runes), n)
		}
		for x, r := range runes {
			switch {
			case r == '.':
				b.Set(C(x, y), EmptyCell())
			case r == '*':
				b.Set(C(x, y), Bomb())
			default:
				c, ok := colorForLetter(r)
				if !ok {
					return nil, fmt.Errorf("engine: unknown cell %q at %v", r, C(x, y))
				}
				if unicode.IsLower(r) {
					b.Set(C(x, y), ColorClear(c))
				} else {
					b.Set(C(x, y), Colored(c))
				}
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on error.
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// String renders the board in the text format.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.size {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range b.size {
			sb.WriteRune(b.Get(C(x, y)).Rune())
		}
	}
	return sb.String()
}
