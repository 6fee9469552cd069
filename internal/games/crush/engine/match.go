package engine

// Axis is the direction of a match run.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MinMatch is the shortest run that forms a match group.
const MinMatch = 3

// MatchGroup is a run of at least MinMatch same-colored tiles along one axis.
// Cells are ordered left-to-right or top-to-bottom.
type MatchGroup struct {
	Color Color
	Axis  Axis
	Cells []Coord
}

// Size returns the run length.
func (g MatchGroup) Size() int {
	return len(g.Cells)
}

// Middle returns the cell at index floor(len/2), where a power-up spawns.
func (g MatchGroup) Middle() Coord {
	return g.Cells[len(g.Cells)/2]
}

// FindMatches scans rows and then columns for runs of MinMatch or more
// identical colored tiles. Power-ups and empty cells break runs. A cell on
// both a horizontal and a vertical run appears in both groups.
func FindMatches(b *Board) []MatchGroup {
	var groups []MatchGroup
	n := b.Size()

	for y := range n {
		groups = appendRuns(groups, b, Horizontal, func(i int) Coord { return C(i, y) })
	}
	for x := range n {
		groups = appendRuns(groups, b, Vertical, func(i int) Coord { return C(x, i) })
	}
	return groups
}

// appendRuns scans one line (row or column) addressed by at(i).
func appendRuns(groups []MatchGroup, b *Board, axis Axis, at func(i int) Coord) []MatchGroup {
	n := b.Size()
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && sameColor(b.Get(at(start)), b.Get(at(i))) {
			continue
		}
		if i-start >= MinMatch && b.Get(at(start)).IsColored() {
			g := MatchGroup{Color: b.Get(at(start)).Color, Axis: axis}
			for j := start; j < i; j++ {
				g.Cells = append(g.Cells, at(j))
			}
			groups = append(groups, g)
		}
		start = i
	}
	return groups
}

func sameColor(a, b Cell) bool {
	return a.IsColored() && b.IsColored() && a.Color == b.Color
}

// hasMatch reports whether the board holds at least one match group.
func hasMatch(b *Board) bool {
	return len(FindMatches(b)) > 0
}

// matchedCells returns the deduplicated union of all group cells in scan order.
func matchedCells(groups []MatchGroup) []Coord {
	seen := make(map[Coord]bool)
	var out []Coord
	for _, g := range groups {
		for _, c := range g.Cells {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
