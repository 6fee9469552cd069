package web

import (
	"strings"

	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
)

// Client message types accepted on the websocket.
const (
	MsgSwap     = "swap"
	MsgActivate = "activate"
	MsgSelect   = "select"
	MsgReset    = "reset"
	MsgHint     = "hint"
)

// Server message types.
const (
	MsgResult = "result"
	MsgView   = "view"
	MsgError  = "error"
)

// ClientMessage is one intent sent by a browser.
type ClientMessage struct {
	Type  string        `json:"type"`
	A     *engine.Coord `json:"a,omitempty"`
	B     *engine.Coord `json:"b,omitempty"`
	P     *engine.Coord `json:"p,omitempty"`
	Size  int           `json:"size,omitempty"`
	Level int           `json:"level,omitempty"`
}

// ServerMessage is one reply. Exactly one of the embedded payloads is set
// for result and view messages; error messages carry Message only.
type ServerMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	*ResultDTO
	View *ViewDTO `json:"view,omitempty"`
	Hint *HintDTO `json:"hint,omitempty"`
}

// ViewDTO is the externally visible state of a session.
type ViewDTO struct {
	ID          string        `json:"id"`
	Board       []string      `json:"board"`
	State       string        `json:"state"`
	Score       int           `json:"score"`
	Level       int           `json:"level"`
	NextLevelAt int           `json:"next_level_at"`
	Moves       int           `json:"moves"`
	Matches     int           `json:"matches"`
	Selected    *engine.Coord `json:"selected,omitempty"`
}

// ResultDTO mirrors engine.Result with string enums and text boards.
type ResultDTO struct {
	Accepted   bool       `json:"accepted"`
	Reason     string     `json:"reason,omitempty"`
	Matched    bool       `json:"matched"`
	ScoreDelta int        `json:"score_delta"`
	State      string     `json:"state"`
	Frames     []FrameDTO `json:"frames"`
	Events     []EventDTO `json:"events"`
}

// FrameDTO is one intermediate board snapshot.
type FrameDTO struct {
	Kind  string   `json:"kind"`
	Board []string `json:"board"`
	Score int      `json:"score"`
	Level int      `json:"level"`
}

// EventDTO is one resolution event.
type EventDTO struct {
	Kind    string       `json:"kind"`
	At      engine.Coord `json:"at"`
	PowerUp string       `json:"powerup,omitempty"`
	Color   string       `json:"color,omitempty"`
	Groups  int          `json:"groups,omitempty"`
	Cells   int          `json:"cells,omitempty"`
	Points  int          `json:"points,omitempty"`
	Level   int          `json:"level,omitempty"`
}

// HintDTO reports a suggested move.
type HintDTO struct {
	Found bool         `json:"found"`
	A     engine.Coord `json:"a"`
	B     engine.Coord `json:"b"`
}

// boardRows renders a board as one string per row using the tile letters.
func boardRows(b *engine.Board) []string {
	if b == nil {
		return nil
	}
	return strings.Split(b.String(), "\n")
}

func newResultDTO(res engine.Result) *ResultDTO {
	dto := &ResultDTO{
		Accepted:   res.Accepted,
		Reason:     res.Reason.String(),
		Matched:    res.Matched,
		ScoreDelta: res.ScoreDelta,
		State:      res.State.String(),
		Frames:     make([]FrameDTO, 0, len(res.Frames)),
		Events:     make([]EventDTO, 0, len(res.Events)),
	}
	for _, f := range res.Frames {
		dto.Frames = append(dto.Frames, FrameDTO{
			Kind:  f.Kind.String(),
			Board: boardRows(f.Board),
			Score: f.Score,
			Level: f.Level,
		})
	}
	for _, ev := range res.Events {
		dto.Events = append(dto.Events, newEventDTO(ev))
	}
	return dto
}

func newEventDTO(ev engine.Event) EventDTO {
	dto := EventDTO{
		Kind:   ev.Kind.String(),
		At:     ev.At,
		Groups: ev.Groups,
		Cells:  ev.Cells,
		Points: ev.Points,
		Level:  ev.Level,
	}
	switch ev.Kind {
	case engine.EventPowerUpCreated:
		dto.PowerUp = ev.PowerUp.String()
		if ev.PowerUp == engine.KindColorClear {
			dto.Color = ev.Color.String()
		}
	case engine.EventColorCleared:
		dto.Color = ev.Color.String()
	}
	return dto
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: msg}
}
