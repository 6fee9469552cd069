package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crush-arcade/internal/core"
)

// colorStyles holds one lipgloss style per core.Color. It is filled once
// and only read afterwards, so SSH sessions can share it.
var colorStyles [core.ColorGray + 1]lipgloss.Style

func init() {
	for c := range colorStyles {
		st := lipgloss.NewStyle()
		if code := core.Color(c).ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		colorStyles[c] = st
	}
}

// styleFor returns the foreground style for c.
func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(colorStyles) {
		return colorStyles[core.ColorDefault]
	}
	return colorStyles[c]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells sharing a color are styled once.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
