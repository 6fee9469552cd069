package crush

import "fmt"

// advancePlayback steps through queued resolution frames, holding each for
// FrameTicks ticks. Returns true while frames remain to be shown.
func (g *Game) advancePlayback() bool {
	if len(g.pending) == 0 {
		return false
	}

	g.waited++
	if g.waited < g.frameTicks() {
		return true
	}
	g.waited = 0

	next := g.pending[0]
	g.pending = g.pending[1:]
	g.view = next.Board
	g.shown = frameInfo{score: next.Score, level: next.Level}

	return len(g.pending) > 0
}

func (g *Game) frameTicks() int {
	return max(g.cfg.Animation.FrameTicks, 1)
}

// Animating reports whether resolution frames are still being shown.
func (g *Game) Animating() bool {
	return len(g.pending) > 0
}

// SkipPlayback jumps to the final frame of the queued resolution.
func (g *Game) SkipPlayback() {
	if len(g.pending) == 0 {
		return
	}
	last := g.pending[len(g.pending)-1]
	g.view = last.Board
	g.shown = frameInfo{score: last.Score, level: last.Level}
	g.pending = nil
	g.waited = 0
}

func (g *Game) hintVisible() bool {
	return g.hintTicks > 0 && len(g.pending) == 0
}

func levelBanner(level int) string {
	return fmt.Sprintf("LEVEL %d!", level)
}
