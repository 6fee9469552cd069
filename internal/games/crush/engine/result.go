package engine

// State is the engine's machine state.
type State uint8

const (
	Idle State = iota
	Resolving
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// RejectReason explains why an intent was not accepted.
type RejectReason uint8

const (
	NotRejected RejectReason = iota
	RejectNotIdle
	RejectOutOfBounds
	RejectNotAdjacent
	RejectNotColored
	RejectNotPowerUp
)

func (r RejectReason) String() string {
	switch r {
	case NotRejected:
		return ""
	case RejectNotIdle:
		return "not idle"
	case RejectOutOfBounds:
		return "out of bounds"
	case RejectNotAdjacent:
		return "cells not adjacent"
	case RejectNotColored:
		return "cell is not a plain tile"
	case RejectNotPowerUp:
		return "cell is not a power-up"
	default:
		return "unknown"
	}
}

// FrameKind labels an intermediate board snapshot.
type FrameKind uint8

const (
	FrameSwapped FrameKind = iota
	FrameReverted
	FrameCleared
	FrameExploded
	FrameRefilled
)

func (k FrameKind) String() string {
	switch k {
	case FrameSwapped:
		return "swapped"
	case FrameReverted:
		return "reverted"
	case FrameCleared:
		return "cleared"
	case FrameExploded:
		return "exploded"
	case FrameRefilled:
		return "refilled"
	default:
		return "unknown"
	}
}

// Frame is one snapshot in the resolution sequence. Cleared and Exploded
// frames contain empty cells; every other frame is full.
type Frame struct {
	Kind  FrameKind
	Board *Board
	Score int
	Level int
}

// EventKind identifies a cue the UI may react to.
type EventKind uint8

const (
	EventMatch EventKind = iota
	EventPowerUpCreated
	EventBombExploded
	EventColorCleared
	EventLevelUp
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventMatch:
		return "match"
	case EventPowerUpCreated:
		return "powerup_created"
	case EventBombExploded:
		return "bomb_exploded"
	case EventColorCleared:
		return "color_cleared"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event describes something that happened during resolution.
//
//	EventMatch:          Groups and Cells (distinct cells removed), Points
//	EventPowerUpCreated: PowerUp kind, At, Color (color-clear target)
//	EventBombExploded:   At (this bomb), Cells first cleared by it, Points
//	EventColorCleared:   At, Color, Cells cleared, Points
//	EventLevelUp:        Level
type Event struct {
	Kind    EventKind
	At      Coord
	PowerUp Kind
	Color   Color
	Groups  int
	Cells   int
	Points  int
	Level   int
}

// Result is the outcome of an intent.
type Result struct {
	Accepted   bool
	Reason     RejectReason
	Matched    bool // false for a swap that was reverted
	Frames     []Frame
	ScoreDelta int
	State      State
	Events     []Event
}

// Final returns the last frame's board, or nil when there are no frames.
func (r Result) Final() *Board {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1].Board
}

// Has reports whether the result contains an event of the given kind.
func (r Result) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Move is a legal player action. A == B denotes activating a power-up.
type Move struct {
	A, B Coord
}

// IsActivation reports whether the move activates a power-up.
func (m Move) IsActivation() bool {
	return m.A == m.B
}
