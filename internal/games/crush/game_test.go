package crush

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
	"github.com/vovakirdan/crush-arcade/internal/registry"
)

// oneMove has exactly one legal swap: (2,0) with (2,1).
var oneMove = []string{
	"RRBG",
	"YORP",
	"BCYK",
	"GOPC",
}

var deadlocked = []string{
	"RRBG",
	"YOKP",
	"BCYK",
	"GOPC",
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crush.yaml")
	if err := os.WriteFile(path, config.GetDefaultYAML(GameID), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetStartLevel(0)
	})

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

// load replaces the session with a known board.
func (g *Game) load(score, level int, rows ...string) {
	g.engine.Load(engine.MustParseBoard(rows...), score, level)
	g.view = g.engine.Board()
	g.shown = frameInfo{score: g.engine.Score(), level: g.engine.Level()}
	g.cursor = engine.C(0, 0)
}

func press(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// settle steps until playback finishes and returns the number of ticks taken.
func settle(t *testing.T, g *Game) int {
	t.Helper()
	for i := 1; i <= 10000; i++ {
		g.Step(idle())
		if !g.Animating() {
			return i
		}
	}
	t.Fatal("playback never finished")
	return 0
}

func hasCue(cues []string, cue string) bool {
	for _, c := range cues {
		if c == cue {
			return true
		}
	}
	return false
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("crush is not registered")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "crush" || g.Title() != "Crush Match" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestResetProducesPlayableBoard(t *testing.T) {
	g := newTestGame(t)

	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
	if snap.Score != 0 || snap.Level != 1 || snap.Moves != 0 {
		t.Errorf("Snapshot = %+v, want fresh session", snap)
	}
	b := g.Engine().Board()
	if b.Size() != 8 {
		t.Errorf("board size = %d, want 8", b.Size())
	}
	if len(engine.FindMatches(b)) != 0 {
		t.Error("fresh board contains matches")
	}
	if engine.IsDeadlocked(b) {
		t.Error("fresh board is deadlocked")
	}
}

func TestResetIsDeterministic(t *testing.T) {
	a := newTestGame(t)
	b := New()
	b.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})

	if a.Snapshot().Board != b.Snapshot().Board {
		t.Errorf("same seed produced different boards:\n%s\n\n%s", a.Snapshot().Board, b.Snapshot().Board)
	}
}

func TestCursorMovementIsClamped(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)

	steps := []struct {
		action core.Action
		want   engine.Coord
	}{
		{core.ActionLeft, engine.C(0, 0)},
		{core.ActionUp, engine.C(0, 0)},
		{core.ActionRight, engine.C(1, 0)},
		{core.ActionDown, engine.C(1, 1)},
		{core.ActionDown, engine.C(1, 2)},
		{core.ActionDown, engine.C(1, 3)},
		{core.ActionDown, engine.C(1, 3)},
	}
	for i, s := range steps {
		g.Step(press(s.action))
		if g.cursor != s.want {
			t.Fatalf("step %d (%s): cursor = %v, want %v", i, s.action, g.cursor, s.want)
		}
	}
}

func TestSelectSwapPlaysBackFrames(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)
	before := g.view.String()

	g.cursor = engine.C(2, 0)
	if res := g.Step(press(core.ActionSelect)); len(res.Cues) != 0 {
		t.Errorf("selecting a tile produced cues %v", res.Cues)
	}
	if sel, ok := g.engine.Selected(); !ok || sel != engine.C(2, 0) {
		t.Fatalf("Selected() = %v %v, want (2,0)", sel, ok)
	}

	g.Step(press(core.ActionDown))
	res := g.Step(press(core.ActionSelect))
	if !hasCue(res.Cues, CueMatch) {
		t.Errorf("swap cues = %v, want %q", res.Cues, CueMatch)
	}
	if !g.Animating() {
		t.Fatal("swap should queue frames for playback")
	}
	if g.view.String() != before {
		t.Error("view changed before the first frame tick elapsed")
	}
	if g.Snapshot().State != StateResolving {
		t.Errorf("State = %s, want resolving", g.Snapshot().State)
	}

	// Input is ignored while frames play back
	g.Step(press(core.ActionRight))
	if g.cursor != engine.C(2, 1) {
		t.Errorf("cursor moved during playback: %v", g.cursor)
	}

	ticks := settle(t, g)
	if ticks < 2*g.cfg.Animation.FrameTicks {
		t.Errorf("playback took %d ticks, want at least %d", ticks, 2*g.cfg.Animation.FrameTicks)
	}
	if g.engine.Score() < 30 {
		t.Errorf("Score = %d, want at least 30", g.engine.Score())
	}
	if g.shown.score != g.engine.Score() {
		t.Errorf("shown score %d differs from engine score %d after playback", g.shown.score, g.engine.Score())
	}
	if g.view.String() != g.engine.Board().String() {
		t.Error("view does not match engine board after playback")
	}
	if g.lastDelta != g.engine.Score() {
		t.Errorf("lastDelta = %d, want %d", g.lastDelta, g.engine.Score())
	}
}

func TestSwapWithoutMatchCuesInvalid(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)

	g.Step(press(core.ActionSelect))
	g.Step(press(core.ActionRight))
	res := g.Step(press(core.ActionSelect))

	if !hasCue(res.Cues, CueInvalid) {
		t.Errorf("cues = %v, want %q", res.Cues, CueInvalid)
	}
	settle(t, g)
	if g.engine.Score() != 0 || g.engine.Moves() != 0 {
		t.Errorf("reverted swap changed score/moves: %d/%d", g.engine.Score(), g.engine.Moves())
	}
	if g.view.String() != strings.Join(oneMove, "\n") {
		t.Errorf("view after revert =\n%s", g.view)
	}
}

func TestMouseClickSelectsTile(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)

	ox, oy := g.boardOrigin()
	in := core.NewInputFrame()
	in.Click(ox+2*boardCellWidth+1, oy)
	g.Step(in)

	if g.cursor != engine.C(2, 0) {
		t.Errorf("cursor = %v, want (2,0)", g.cursor)
	}
	if sel, ok := g.engine.Selected(); !ok || sel != engine.C(2, 0) {
		t.Errorf("Selected() = %v %v, want (2,0)", sel, ok)
	}

	// Clicks outside the board are ignored
	in.Click(0, 0)
	g.Step(in)
	if g.cursor != engine.C(2, 0) {
		t.Errorf("click outside board moved cursor to %v", g.cursor)
	}
}

func TestCancelDropsSelection(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)

	g.Step(press(core.ActionSelect))
	g.Step(press(core.ActionCancel))
	if _, ok := g.engine.Selected(); ok {
		t.Error("selection survived cancel")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)

	g.Step(press(core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("game did not pause")
	}
	g.Step(press(core.ActionRight))
	if g.cursor != engine.C(0, 0) {
		t.Error("cursor moved while paused")
	}
	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionRight))
	if g.cursor != engine.C(1, 0) {
		t.Error("cursor did not move after unpause")
	}
}

func TestHint(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1, oneMove...)

	g.Step(press(core.ActionHint))
	if !g.hintVisible() {
		t.Fatal("hint not shown")
	}
	if g.hint.A != engine.C(2, 0) || g.hint.B != engine.C(2, 1) {
		t.Errorf("hint = %v-%v, want (2,0)-(2,1)", g.hint.A, g.hint.B)
	}

	for range g.cfg.Animation.HintTicks {
		g.Step(idle())
	}
	if g.hintVisible() {
		t.Error("hint still visible after HintTicks")
	}
}

func TestHintDisabledByHardPreset(t *testing.T) {
	g := newTestGame(t)
	SetDifficultyPreset("hard")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.load(0, 1, oneMove...)

	g.Step(press(core.ActionHint))
	if g.hintVisible() {
		t.Error("hint shown with hints disabled")
	}
	if g.engine.Options().Palette != 7 {
		t.Errorf("hard palette = %d, want 7", g.engine.Options().Palette)
	}
}

func TestDeadlockedBoardIsGameOver(t *testing.T) {
	g := newTestGame(t)
	g.load(120, 1, deadlocked...)

	st := g.State()
	if !st.GameOver || st.Score != 120 {
		t.Errorf("State() = %+v, want game over with score 120", st)
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("Snapshot state = %s", g.Snapshot().State)
	}

	// Input is ignored once the game is over
	res := g.Step(press(core.ActionSelect))
	if len(res.Cues) != 0 {
		t.Errorf("cues after game over = %v", res.Cues)
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "NO MOVES LEFT") {
		t.Error("game over overlay not rendered")
	}
}

func TestLevelUpShowsBanner(t *testing.T) {
	g := newTestGame(t)
	g.load(490, 1, oneMove...)

	g.cursor = engine.C(2, 0)
	g.Step(press(core.ActionSelect))
	g.Step(press(core.ActionDown))
	res := g.Step(press(core.ActionSelect))

	if !hasCue(res.Cues, CueLevelUp) {
		t.Fatalf("cues = %v, want %q", res.Cues, CueLevelUp)
	}
	if g.banner != "LEVEL 2!" || g.bannerTicks == 0 {
		t.Errorf("banner = %q (%d ticks)", g.banner, g.bannerTicks)
	}
	if g.State().Level < 2 {
		t.Errorf("Level = %d, want at least 2", g.State().Level)
	}
}

func TestStartLevelPersistsAcrossRestart(t *testing.T) {
	g := newTestGame(t)
	SetStartLevel(3)

	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	g.Reset(rc)
	if g.State().Level != 3 {
		t.Errorf("Level = %d, want 3", g.State().Level)
	}
	if GetStartLevel() != 0 {
		t.Error("start level selection was not consumed")
	}

	g.Reset(rc)
	if g.State().Level != 3 {
		t.Errorf("Level after restart = %d, want 3", g.State().Level)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newTestGame(t)
	g.Resize(20, 10)

	if g.Snapshot().State != StatePausedSmall || !g.State().Paused {
		t.Fatal("small window should pause the game")
	}
	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("too-small message not rendered")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("game still paused after growing the window")
	}
}

func TestRenderDrawsColoredTiles(t *testing.T) {
	g := newTestGame(t)
	g.load(0, 1,
		"RRBG",
		"YO*P",
		"BCYk",
		"GOPC",
	)

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	if !strings.Contains(scr.String(), "CRUSH MATCH") {
		t.Error("title not rendered")
	}

	ox, oy := g.boardOrigin()
	tests := []struct {
		at    engine.Coord
		rune  rune
		color core.Color
	}{
		{engine.C(0, 0), '●', core.ColorRed},
		{engine.C(2, 1), '✱', core.ColorWhite},
		{engine.C(3, 2), '◆', core.ColorPink},
	}

	for _, tc := range tests {
		cell := scr.GetCell(ox+tc.at.X*boardCellWidth+1, oy+tc.at.Y)
		if cell.Rune != tc.rune || cell.Color != tc.color {
			t.Errorf("tile %v = %q/%v, want %q/%v", tc.at, cell.Rune, cell.Color, tc.rune, tc.color)
		}
	}

	// Cursor brackets surround (0,0)
	if scr.Get(ox, oy) != '[' || scr.Get(ox+2, oy) != ']' {
		t.Errorf("cursor markers = %q %q", scr.Get(ox, oy), scr.Get(ox+2, oy))
	}
}
