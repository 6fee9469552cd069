package engine

import (
	"testing"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []MatchGroup
	}{
		{
			name: "no matches",
			rows: []string{
				"RBG",
				"BGR",
				"GRB",
			},
			want: nil,
		},
		{
			name: "horizontal three",
			rows: []string{
				"RRR",
				"BGB",
				"GBG",
			},
			want: []MatchGroup{
				{Color: Red, Axis: Horizontal, Cells: []Coord{C(0, 0), C(1, 0), C(2, 0)}},
			},
		},
		{
			name: "vertical four",
			rows: []string{
				"YBGR",
				"YGBR",
				"YBGB",
				"YGBG",
			},
			want: []MatchGroup{
				{Color: Yellow, Axis: Vertical, Cells: []Coord{C(0, 0), C(0, 1), C(0, 2), C(0, 3)}},
			},
		},
		{
			name: "L shape keeps both groups",
			rows: []string{
				"RRR",
				"RBG",
				"RGB",
			},
			want: []MatchGroup{
				{Color: Red, Axis: Horizontal, Cells: []Coord{C(0, 0), C(1, 0), C(2, 0)}},
				{Color: Red, Axis: Vertical, Cells: []Coord{C(0, 0), C(0, 1), C(0, 2)}},
			},
		},
		{
			name: "power-up breaks run",
			rows: []string{
				"RR*RR",
				"BGBGB",
				"GBGBG",
				"BGBGB",
				"GBGBG",
			},
			want: nil,
		},
		{
			name: "color-clear never matches",
			rows: []string{
				"rrr",
				"BGB",
				"GBG",
			},
			want: nil,
		},
		{
			name: "run at end of row",
			rows: []string{
				"BGPPP",
				"GBGBG",
				"BGBGB",
				"GBGBG",
				"BGBGB",
			},
			want: []MatchGroup{
				{Color: Purple, Axis: Horizontal, Cells: []Coord{C(2, 0), C(3, 0), C(4, 0)}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindMatches(MustParseBoard(tc.rows...))
			if len(got) != len(tc.want) {
				t.Fatalf("FindMatches() returned %d groups, want %d: %+v", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i].Color != tc.want[i].Color || got[i].Axis != tc.want[i].Axis {
					t.Errorf("group %d = %v/%v, want %v/%v", i, got[i].Color, got[i].Axis, tc.want[i].Color, tc.want[i].Axis)
				}
				if len(got[i].Cells) != len(tc.want[i].Cells) {
					t.Errorf("group %d has %d cells, want %d", i, len(got[i].Cells), len(tc.want[i].Cells))
					continue
				}
				for j := range got[i].Cells {
					if got[i].Cells[j] != tc.want[i].Cells[j] {
						t.Errorf("group %d cell %d = %v, want %v", i, j, got[i].Cells[j], tc.want[i].Cells[j])
					}
				}
			}
		})
	}
}

func TestMatchedCellsDeduplicates(t *testing.T) {
	groups := FindMatches(MustParseBoard(
		"RRR",
		"RBG",
		"RGB",
	))
	if got := len(matchedCells(groups)); got != 5 {
		t.Errorf("matchedCells() = %d cells, want 5", got)
	}
}

func TestPatternBoardIsStable(t *testing.T) {
	for n := 3; n <= 10; n++ {
		b := patternBoard(n)
		if groups := FindMatches(b); len(groups) != 0 {
			t.Errorf("patternBoard(%d) has %d match groups", n, len(groups))
		}
		if !IsDeadlocked(b) {
			t.Errorf("patternBoard(%d) should have no legal swap", n)
		}
	}
}

func TestIsDeadlocked(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want bool
	}{
		{
			name: "no color appears three times",
			rows: []string{
				"RRBG",
				"YOKP",
				"BCYK",
				"GOPC",
			},
			want: true,
		},
		{
			name: "single legal swap",
			rows: []string{
				"RRBG",
				"YORP",
				"BCYK",
				"GOPC",
			},
			want: false,
		},
		{
			name: "power-up always playable",
			rows: []string{
				"RRBG",
				"YO*P",
				"BCYK",
				"GOPC",
			},
			want: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDeadlocked(MustParseBoard(tc.rows...)); got != tc.want {
				t.Errorf("IsDeadlocked() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindSwapLeavesBoardUnchanged(t *testing.T) {
	b := MustParseBoard(
		"RRBG",
		"YORP",
		"BCYK",
		"GOPC",
	)
	before := b.Clone()

	m, ok := findSwap(b)
	if !ok {
		t.Fatal("findSwap() found no move")
	}
	if m.A != C(2, 0) || m.B != C(2, 1) {
		t.Errorf("findSwap() = %v-%v, want (2,0)-(2,1)", m.A, m.B)
	}
	if !b.Equal(before) {
		t.Error("findSwap() mutated the board")
	}
}
