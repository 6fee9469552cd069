package crush

import "github.com/vovakirdan/crush-arcade/internal/games/crush/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Moves    int
	Matches  int
	Board    string // Engine board in letter notation
	Cursor   engine.Coord
	Selected *engine.Coord
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case len(g.pending) > 0:
		state = StateResolving
	case g.engine.State() == engine.GameOver:
		state = StateGameOver
	}

	s := Snapshot{
		Tick:    g.tick,
		Score:   g.engine.Score(),
		Level:   g.engine.Level(),
		Moves:   g.engine.Moves(),
		Matches: g.engine.Matches(),
		Board:   g.engine.Board().String(),
		Cursor:  g.cursor,
		State:   state,
	}
	if sel, ok := g.engine.Selected(); ok {
		s.Selected = &sel
	}
	return s
}

// Engine exposes the underlying engine for tools and tests.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}
