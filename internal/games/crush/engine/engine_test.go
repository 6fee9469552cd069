package engine

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
)

// oneMove has exactly one legal swap: (2,0)<->(2,1) completes the red row.
var oneMove = []string{
	"RRBG",
	"YORP",
	"BCYK",
	"GOPC",
}

// deadlocked has no color that appears three times.
var deadlocked = []string{
	"RRBG",
	"YOKP",
	"BCYK",
	"GOPC",
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestEngine loads rows into an eight-color engine whose refills come
// from refill in order.
func newTestEngine(t *testing.T, score, level int, refill []int, rows ...string) *Engine {
	t.Helper()
	b, err := ParseBoard(rows...)
	if err != nil {
		t.Fatalf("ParseBoard() error: %v", err)
	}
	return loadEngine(b, score, level, refill)
}

func loadEngine(b *Board, score, level int, refill []int) *Engine {
	e := New(Options{Palette: 8, Logger: quietLogger()}, rand.New(rand.NewSource(1)))
	e.Load(b, score, level)
	e.rng = &cycleSource{vals: refill}
	return e
}

func assertFull(t *testing.T, b *Board) {
	t.Helper()
	if b.HasEmpty() {
		t.Errorf("board has empty cells:\n%s", b)
	}
}

func TestResetProducesStablePlayableBoard(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		for _, palette := range []int{3, 4, 6, 8} {
			for _, size := range []int{3, 5, 8, 10} {
				e := New(Options{Size: size, Palette: palette, Logger: quietLogger()}, rand.New(rand.NewSource(seed)))
				b := e.Board()

				if b.Size() != size {
					t.Fatalf("seed %d: Size() = %d, want %d", seed, b.Size(), size)
				}
				if groups := FindMatches(b); len(groups) != 0 {
					t.Errorf("seed %d size %d palette %d: fresh board has %d groups:\n%s", seed, size, palette, len(groups), b)
				}
				assertFull(t, b)
				if IsDeadlocked(b) {
					t.Errorf("seed %d size %d palette %d: fresh board is deadlocked", seed, size, palette)
				}
				if e.State() != Idle {
					t.Errorf("State() = %v, want idle", e.State())
				}
			}
		}
	}
}

func TestResetClearsSession(t *testing.T) {
	e := newTestEngine(t, 700, 1, []int{1, 1, 3}, oneMove...)
	e.Select(C(0, 0))

	b := e.Reset(6, 3)
	if b.Size() != 6 {
		t.Errorf("Reset(6, 3) board size = %d, want 6", b.Size())
	}
	if e.Score() != 0 || e.Level() != 3 || e.Moves() != 0 {
		t.Errorf("after Reset score=%d level=%d moves=%d, want 0/3/0", e.Score(), e.Level(), e.Moves())
	}
	if _, ok := e.Selected(); ok {
		t.Error("Reset should clear the selection")
	}
	if got := e.Reset(0, 0).Size(); got != 8 {
		t.Errorf("Reset(0, 0) size = %d, want configured 8", got)
	}
	if e.Level() != 1 {
		t.Errorf("Reset(0, 0) level = %d, want 1", e.Level())
	}
}

func TestStartLevelIsClamped(t *testing.T) {
	e := New(Options{Size: 8, Palette: 6, Logger: quietLogger()}, rand.New(rand.NewSource(3)))

	tests := []struct {
		name  string
		level int
		want  int
	}{
		{"negative", -4, 1},
		{"in range", 7, 7},
		{"last level", len(DefaultThresholds), len(DefaultThresholds)},
		{"huge", math.MaxInt, len(DefaultThresholds)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.Reset(8, tt.level)
			if e.Level() != tt.want {
				t.Fatalf("Reset level %d: Level() = %d, want %d", tt.level, e.Level(), tt.want)
			}
			m, ok := e.Hint()
			if !ok {
				t.Fatal("fresh board has no move")
			}
			var res Result
			if m.IsActivation() {
				res = e.Activate(m.A)
			} else {
				res = e.Swap(m.A, m.B)
			}
			if res.ScoreDelta < 0 || e.Score() < 0 {
				t.Errorf("score went negative: delta=%d score=%d", res.ScoreDelta, e.Score())
			}
		})
	}

	b := MustParseBoard(oneMove...)
	e.Load(b, 0, math.MaxInt)
	if e.Level() != e.MaxLevel() {
		t.Errorf("Load level = %d, want %d", e.Level(), e.MaxLevel())
	}
}

func TestSwapRejections(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Coord
		reason RejectReason
	}{
		{"not adjacent", C(0, 0), C(2, 0), RejectNotAdjacent},
		{"diagonal", C(0, 0), C(1, 1), RejectNotAdjacent},
		{"same cell", C(1, 1), C(1, 1), RejectNotAdjacent},
		{"out of bounds", C(3, 0), C(4, 0), RejectOutOfBounds},
		{"power-up", C(2, 1), C(3, 1), RejectNotColored},
	}

	rows := []string{
		"RRBG",
		"YO*P",
		"BCYK",
		"GOPC",
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, 0, 1, []int{6, 7}, rows...)
			before := e.Board()

			res := e.Swap(tc.a, tc.b)
			if res.Accepted {
				t.Fatal("Swap() accepted an invalid intent")
			}
			if res.Reason != tc.reason {
				t.Errorf("Reason = %v, want %v", res.Reason, tc.reason)
			}
			if len(res.Frames) != 0 || res.ScoreDelta != 0 {
				t.Errorf("rejected swap produced %d frames, delta %d", len(res.Frames), res.ScoreDelta)
			}
			if !e.Board().Equal(before) {
				t.Error("rejected swap mutated the board")
			}
		})
	}
}

func TestActivateRejections(t *testing.T) {
	e := newTestEngine(t, 0, 1, []int{6, 7}, oneMove...)
	before := e.Board()

	if res := e.Activate(C(0, 0)); res.Accepted || res.Reason != RejectNotPowerUp {
		t.Errorf("Activate(plain tile) = %+v, want RejectNotPowerUp", res)
	}
	if res := e.Activate(C(9, 9)); res.Accepted || res.Reason != RejectOutOfBounds {
		t.Errorf("Activate(out of bounds) = %+v, want RejectOutOfBounds", res)
	}
	if !e.Board().Equal(before) {
		t.Error("rejected activation mutated the board")
	}
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	e := newTestEngine(t, 0, 1, []int{6, 7}, oneMove...)
	before := e.Board()
	e.Select(C(2, 0))

	res := e.Swap(C(2, 0), C(3, 0))
	if !res.Accepted {
		t.Fatalf("Swap() rejected: %v", res.Reason)
	}
	if res.Matched {
		t.Error("Matched = true for a swap that forms no group")
	}
	if res.ScoreDelta != 0 {
		t.Errorf("ScoreDelta = %d, want 0", res.ScoreDelta)
	}
	if len(res.Frames) != 2 || res.Frames[0].Kind != FrameSwapped || res.Frames[1].Kind != FrameReverted {
		t.Fatalf("frames = %v, want swapped then reverted", frameKinds(res))
	}
	if res.Frames[0].Board.Equal(before) {
		t.Error("swapped frame should show the exchanged tiles")
	}
	if !e.Board().Equal(before) || !res.Final().Equal(before) {
		t.Errorf("board after revert =\n%s\nwant\n%s", e.Board(), before)
	}
	if _, ok := e.Selected(); ok {
		t.Error("completed swap attempt should clear the selection")
	}
	if e.State() != Idle || e.Moves() != 0 {
		t.Errorf("State=%v Moves=%d, want idle/0", e.State(), e.Moves())
	}
}

func TestSwapMatchScoresAndStaysIdle(t *testing.T) {
	e := newTestEngine(t, 0, 1, []int{1, 1, 3}, oneMove...)

	res := e.Swap(C(2, 0), C(2, 1))
	if !res.Accepted || !res.Matched {
		t.Fatalf("Swap() accepted=%v matched=%v", res.Accepted, res.Matched)
	}
	if res.ScoreDelta != 30 {
		t.Errorf("ScoreDelta = %d, want 30", res.ScoreDelta)
	}

	want := MustParseBoard(
		"BBYG",
		"YOBP",
		"BCYK",
		"GOPC",
	)
	if !e.Board().Equal(want) {
		t.Errorf("board =\n%s\nwant\n%s", e.Board(), want)
	}

	kinds := frameKinds(res)
	wantKinds := []FrameKind{FrameSwapped, FrameCleared, FrameRefilled}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("frames = %v, want %v", kinds, wantKinds)
	}
	for i := range kinds {
		if kinds[i] != wantKinds[i] {
			t.Errorf("frame %d = %v, want %v", i, kinds[i], wantKinds[i])
		}
	}
	if got := res.Frames[1].Board.Count(KindEmpty); got != 3 {
		t.Errorf("cleared frame has %d empty cells, want 3", got)
	}

	if res.State != Idle || e.State() != Idle {
		t.Errorf("State = %v, want idle", res.State)
	}
	if e.Score() != 30 || e.Moves() != 1 || e.Matches() != 1 {
		t.Errorf("score=%d moves=%d matches=%d, want 30/1/1", e.Score(), e.Moves(), e.Matches())
	}
}

func TestSwapLeadingToDeadlockEndsGame(t *testing.T) {
	// Refill R K R leaves every color at most twice.
	e := newTestEngine(t, 0, 1, []int{0, 7, 0}, oneMove...)

	res := e.Swap(C(2, 0), C(2, 1))
	if res.State != GameOver || e.State() != GameOver {
		t.Fatalf("State = %v, want game_over\n%s", res.State, e.Board())
	}
	if !res.Has(EventGameOver) {
		t.Error("missing game over event")
	}

	if r := e.Swap(C(0, 0), C(1, 0)); r.Accepted || r.Reason != RejectNotIdle {
		t.Errorf("Swap() after game over = %+v, want RejectNotIdle", r)
	}
	if _, r := e.Select(C(0, 0)); r.Accepted {
		t.Error("Select() accepted after game over")
	}
	if _, ok := e.Hint(); ok {
		t.Error("Hint() should report no move after game over")
	}

	e.Reset(4, 1)
	if e.State() != Idle {
		t.Errorf("State after Reset = %v, want idle", e.State())
	}
}

func TestLoadDeadlockedBoardIsGameOver(t *testing.T) {
	e := newTestEngine(t, 0, 1, []int{6}, deadlocked...)
	if e.State() != GameOver {
		t.Errorf("State = %v, want game_over", e.State())
	}

	e = newTestEngine(t, 0, 1, []int{6}, oneMove...)
	if e.State() != Idle {
		t.Errorf("State = %v, want idle", e.State())
	}
	m, ok := e.Hint()
	if !ok || m.A != C(2, 0) || m.B != C(2, 1) {
		t.Errorf("Hint() = %v %v, want (2,0)-(2,1)", m, ok)
	}
}

func TestScoreUsesLevelMultiplier(t *testing.T) {
	e := newTestEngine(t, 0, 3, []int{1, 1, 3}, oneMove...)
	res := e.Swap(C(2, 0), C(2, 1))
	if res.ScoreDelta != 90 {
		t.Errorf("ScoreDelta at level 3 = %d, want 90", res.ScoreDelta)
	}
}

func TestLevelUpEvent(t *testing.T) {
	e := newTestEngine(t, 490, 1, []int{1, 1, 3}, oneMove...)
	if e.NextLevelAt() != 500 {
		t.Errorf("NextLevelAt() = %d, want 500", e.NextLevelAt())
	}

	res := e.Swap(C(2, 0), C(2, 1))
	if e.Score() != 520 || e.Level() != 2 {
		t.Errorf("score=%d level=%d, want 520/2", e.Score(), e.Level())
	}
	found := false
	for _, ev := range res.Events {
		if ev.Kind == EventLevelUp && ev.Level == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing level up event in %+v", res.Events)
	}
}

func TestCascadeSpawnsBombFromRefill(t *testing.T) {
	// Refilling G G G next to the G at (3,0) forms a second pass 4-run.
	e := newTestEngine(t, 0, 1, []int{2}, oneMove...)

	res := e.Swap(C(2, 0), C(2, 1))
	if res.ScoreDelta != 70 {
		t.Errorf("ScoreDelta = %d, want 30+40", res.ScoreDelta)
	}
	want := MustParseBoard(
		"GG*G",
		"YOBP",
		"BCYK",
		"GOPC",
	)
	if !e.Board().Equal(want) {
		t.Errorf("board =\n%s\nwant\n%s", e.Board(), want)
	}
	if got := len(res.Frames); got != 5 {
		t.Errorf("frames = %v, want 5", frameKinds(res))
	}
	if !res.Has(EventPowerUpCreated) {
		t.Error("missing power-up event")
	}
	if e.Matches() != 2 {
		t.Errorf("Matches() = %d, want 2", e.Matches())
	}
}

func TestCascadePassLimit(t *testing.T) {
	b := MustParseBoard(oneMove...)
	e := New(Options{Palette: 8, MaxCascadePasses: 1, Logger: quietLogger()}, rand.New(rand.NewSource(1)))
	e.Load(b, 0, 1)
	e.rng = &cycleSource{vals: []int{2}}

	res := e.Swap(C(2, 0), C(2, 1))
	if res.ScoreDelta != 30 {
		t.Errorf("ScoreDelta = %d, want 30 with one pass", res.ScoreDelta)
	}
	assertFull(t, e.Board())
	if len(FindMatches(e.Board())) == 0 {
		t.Error("expected the unresolved second pass to remain on the board")
	}
}

func TestClearGroupsRowOfThree(t *testing.T) {
	b := patternBoard(8)
	b.Set(C(1, 0), Colored(Red))
	b.Set(C(2, 0), Colored(Red))

	groups := FindMatches(b)
	if len(groups) != 1 {
		t.Fatalf("FindMatches() = %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Size() != 3 || g.Axis != Horizontal || g.Color != Red {
		t.Fatalf("group = %+v, want horizontal red of 3", g)
	}
	for i, c := range []Coord{C(0, 0), C(1, 0), C(2, 0)} {
		if g.Cells[i] != c {
			t.Errorf("cell %d = %v, want %v", i, g.Cells[i], c)
		}
	}

	e := New(Options{Palette: 6, Logger: quietLogger()}, rand.New(rand.NewSource(1)))
	e.Load(b, 0, 1)
	var res Result
	e.clearGroups(&res, groups)

	if res.ScoreDelta != 30 {
		t.Errorf("ScoreDelta = %d, want 30", res.ScoreDelta)
	}
	for _, c := range g.Cells {
		if !e.board.Get(c).IsEmpty() {
			t.Errorf("cell %v = %v, want empty", c, e.board.Get(c))
		}
	}
	if e.board.HasPowerUp() {
		t.Error("a 3-match must not leave a power-up")
	}
}

func TestClearGroupsSpawnsPowerUps(t *testing.T) {
	tests := []struct {
		name   string
		run    int
		spawn  Cell
		points int
	}{
		{"four makes bomb", 4, Bomb(), 40},
		{"five makes color clear", 5, ColorClear(Red), 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := patternBoard(8)
			for x := range tc.run {
				b.Set(C(x, 0), Colored(Red))
			}
			groups := FindMatches(b)
			if len(groups) != 1 || groups[0].Size() != tc.run {
				t.Fatalf("FindMatches() = %+v, want one run of %d", groups, tc.run)
			}

			e := New(Options{Palette: 6, Logger: quietLogger()}, rand.New(rand.NewSource(1)))
			e.Load(b, 0, 1)
			var res Result
			e.clearGroups(&res, groups)

			mid := C(2, 0)
			if got := e.board.Get(mid); got != tc.spawn {
				t.Errorf("middle cell = %v, want %v", got, tc.spawn)
			}
			for x := range tc.run {
				if x == mid.X {
					continue
				}
				if !e.board.Get(C(x, 0)).IsEmpty() {
					t.Errorf("cell (%d,0) survived the match", x)
				}
			}
			if res.ScoreDelta != tc.points {
				t.Errorf("ScoreDelta = %d, want %d", res.ScoreDelta, tc.points)
			}
			if e.board.Count(tc.spawn.Kind) != 1 {
				t.Errorf("%v count = %d, want 1", tc.spawn.Kind, e.board.Count(tc.spawn.Kind))
			}
		})
	}
}

func TestBombChain(t *testing.T) {
	b := patternBoard(8)
	b.Set(C(2, 2), Bomb())
	b.Set(C(3, 2), Bomb())

	// Checkerboard refill of the 4×3 hole keeps the board free of new matches.
	e := loadEngine(b, 0, 1, []int{6, 7, 6, 7, 7, 6, 7, 6})

	res := e.Activate(C(2, 2))
	if !res.Accepted {
		t.Fatalf("Activate() rejected: %v", res.Reason)
	}

	// The first blast covers x1..3, the chained one x2..4, both over rows 1..3.
	var blasts []Event
	for _, ev := range res.Events {
		if ev.Kind == EventBombExploded {
			blasts = append(blasts, ev)
		}
	}
	if len(blasts) != 2 {
		t.Fatalf("got %d bomb events, want 2", len(blasts))
	}
	wantBlasts := []struct {
		at    Coord
		cells int
	}{
		{C(2, 2), 9},
		{C(3, 2), 3},
	}
	for i, want := range wantBlasts {
		if blasts[i].At != want.at || blasts[i].Cells != want.cells || blasts[i].Points != want.cells*5 {
			t.Errorf("blast %d = %+v, want at %v clearing %d", i, blasts[i], want.at, want.cells)
		}
	}
	if res.ScoreDelta != 60 {
		t.Errorf("ScoreDelta = %d, want 60", res.ScoreDelta)
	}

	// One frame per detonation, each showing the hole so far
	for i, empties := range []int{9, 12} {
		f := res.Frames[i]
		if f.Kind != FrameExploded {
			t.Fatalf("frame %d = %v, want exploded", i, f.Kind)
		}
		if got := f.Board.Count(KindEmpty); got != empties {
			t.Errorf("frame %d has %d empties, want %d", i, got, empties)
		}
	}
	if res.Frames[2].Kind != FrameRefilled {
		t.Errorf("frame 2 = %v, want refilled", res.Frames[2].Kind)
	}
	if e.board.Count(KindBomb) != 0 {
		t.Error("both bombs should be consumed")
	}
	assertFull(t, e.Board())
	if (e.State() == GameOver) != IsDeadlocked(e.board) {
		t.Errorf("State = %v disagrees with IsDeadlocked", e.State())
	}
}

func TestBombCornerIsClamped(t *testing.T) {
	b := patternBoard(5)
	b.Set(C(0, 0), Bomb())
	e := loadEngine(b, 0, 1, []int{6, 7})

	res := e.Activate(C(0, 0))
	if res.ScoreDelta < 4*5 {
		t.Errorf("ScoreDelta = %d, want at least 20", res.ScoreDelta)
	}
	if res.Frames[0].Board.Count(KindEmpty) != 4 {
		t.Errorf("corner blast cleared %d cells, want 4", res.Frames[0].Board.Count(KindEmpty))
	}
}

func TestBombDestroysColorClearWithoutTriggering(t *testing.T) {
	b := patternBoard(6)
	b.Set(C(2, 2), Bomb())
	b.Set(C(3, 2), ColorClear(Red))
	e := loadEngine(b, 0, 1, []int{6, 7, 6})

	res := e.Activate(C(2, 2))
	if res.Has(EventColorCleared) {
		t.Error("color-clear caught in a blast should not trigger")
	}
	if got := res.Frames[0].Board.Count(KindEmpty); got != 9 {
		t.Errorf("blast cleared %d cells, want 9", got)
	}
}

func TestColorClear(t *testing.T) {
	b := patternBoard(8)
	b.Set(C(3, 3), ColorClear(Red))
	reds := 0
	for y := range 8 {
		for x := range 8 {
			if b.Get(C(x, y)) == Colored(Red) {
				reds++
			}
		}
	}

	e := New(Options{Palette: 6, Logger: quietLogger()}, rand.New(rand.NewSource(7)))
	e.Load(b, 0, 1)
	res := e.Activate(C(3, 3))
	if !res.Accepted {
		t.Fatalf("Activate() rejected: %v", res.Reason)
	}

	var ev Event
	for _, x := range res.Events {
		if x.Kind == EventColorCleared {
			ev = x
		}
	}
	if ev.Color != Red || ev.Cells != reds+1 {
		t.Errorf("cleared %d %v cells, want %d red", ev.Cells, ev.Color, reds+1)
	}
	if ev.Points != (reds+1)*15 {
		t.Errorf("Points = %d, want %d", ev.Points, (reds+1)*15)
	}
	if res.ScoreDelta < ev.Points {
		t.Errorf("ScoreDelta = %d, want at least %d", res.ScoreDelta, ev.Points)
	}
	first := res.Frames[0].Board
	for y := range 8 {
		for x := range 8 {
			if first.Get(C(x, y)) == Colored(Red) {
				t.Fatalf("red tile left at (%d,%d) after clear", x, y)
			}
		}
	}
	assertFull(t, e.Board())
}

func TestColorClearTargetIsPerInstance(t *testing.T) {
	b := patternBoard(6)
	b.Set(C(1, 1), ColorClear(Blue))
	b.Set(C(4, 4), ColorClear(Green))

	e := New(Options{Palette: 6, Logger: quietLogger()}, rand.New(rand.NewSource(3)))
	e.Load(b, 0, 1)
	res := e.Activate(C(1, 1))
	for _, ev := range res.Events {
		if ev.Kind == EventColorCleared && ev.Color != Blue {
			t.Errorf("activated blue clear removed %v", ev.Color)
		}
	}
}

func TestSelectFlow(t *testing.T) {
	e := newTestEngine(t, 0, 1, []int{1, 1, 3}, oneMove...)

	steps := []struct {
		at   Coord
		want SelectOutcome
	}{
		{C(0, 0), Selected},
		{C(0, 0), Deselected},
		{C(0, 0), Selected},
		{C(3, 3), Reselected},
		{C(2, 0), Reselected},
	}
	for i, s := range steps {
		got, res := e.Select(s.at)
		if got != s.want {
			t.Fatalf("step %d: Select(%v) = %v, want %v", i, s.at, got, s.want)
		}
		if len(res.Frames) != 0 {
			t.Errorf("step %d: selection produced frames", i)
		}
	}
	if sel, ok := e.Selected(); !ok || sel != C(2, 0) {
		t.Errorf("Selected() = %v %v, want (2,0)", sel, ok)
	}

	got, res := e.Select(C(2, 1))
	if got != Swapped || !res.Matched || res.ScoreDelta != 30 {
		t.Errorf("adjacent Select() = %v matched=%v delta=%d", got, res.Matched, res.ScoreDelta)
	}
	if _, ok := e.Selected(); ok {
		t.Error("selection should clear after swap")
	}
}

func TestSelectActivatesPowerUp(t *testing.T) {
	b := patternBoard(5)
	b.Set(C(4, 4), Bomb())
	e := loadEngine(b, 0, 1, []int{6, 7})

	got, res := e.Select(C(4, 4))
	if got != Activated || !res.Accepted || !res.Has(EventBombExploded) {
		t.Errorf("Select(bomb) = %v accepted=%v", got, res.Accepted)
	}
}

func TestHintPrefersSwapThenPowerUp(t *testing.T) {
	b := patternBoard(5)
	b.Set(C(0, 0), ColorClear(Red))
	e := New(Options{Palette: 6, Logger: quietLogger()}, rand.New(rand.NewSource(1)))
	e.Load(b, 0, 1)

	m, ok := e.Hint()
	if !ok || !m.IsActivation() || m.A != C(0, 0) {
		t.Errorf("Hint() = %+v %v, want activation at (0,0)", m, ok)
	}
}

// TestRandomPlayInvariants drives sessions with hinted moves and checks the
// no-empty, monotonic score and frame invariants after every intent.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := New(Options{Logger: quietLogger()}, rng)
		prev := 0

		for step := 0; step < 150; step++ {
			if e.State() == GameOver {
				e.Reset(0, 1)
				prev = 0
			}
			m, ok := e.Hint()
			if !ok {
				t.Fatalf("seed %d step %d: idle engine without a hint", seed, step)
			}

			var res Result
			if m.IsActivation() {
				res = e.Activate(m.A)
			} else {
				res = e.Swap(m.A, m.B)
			}

			if !res.Accepted || !res.Matched {
				t.Fatalf("seed %d step %d: hinted move not resolved: %+v", seed, step, res.Reason)
			}
			if res.ScoreDelta < 0 || e.Score() < prev {
				t.Fatalf("seed %d step %d: score went down", seed, step)
			}
			if e.Score()-prev != res.ScoreDelta {
				t.Errorf("seed %d step %d: delta %d != score change %d", seed, step, res.ScoreDelta, e.Score()-prev)
			}
			prev = e.Score()

			assertFull(t, e.Board())
			if len(FindMatches(e.Board())) != 0 {
				t.Fatalf("seed %d step %d: settled board still has matches", seed, step)
			}
			for _, f := range res.Frames {
				if f.Kind == FrameRefilled || f.Kind == FrameSwapped {
					assertFull(t, f.Board)
				}
			}
			if !res.Final().Equal(e.Board()) {
				t.Fatalf("seed %d step %d: last frame differs from board", seed, step)
			}
			if res.State == Resolving {
				t.Fatalf("seed %d step %d: result left in resolving", seed, step)
			}
		}
	}
}

func frameKinds(r Result) []FrameKind {
	out := make([]FrameKind, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Kind
	}
	return out
}
