package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
)

// handleWS upgrades to a websocket and plays the session until either side
// closes. Only the writer goroutine touches the connection for writes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		s.logger.Warn("websocket upgrade", "id", sess.ID(), "error", err)
		return
	}
	s.logger.Info("websocket connected", "id", sess.ID(), "remote", r.RemoteAddr)
	sess.attach()
	defer sess.detach()

	out := newOutbox(s.config.OutboxSize)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(conn, out)
	}()

	view := sess.View()
	out.Send(ServerMessage{Type: MsgView, View: &view})
	s.readLoop(conn, sess, out)

	out.Close()
	<-writerDone
	s.logger.Info("websocket closed", "id", sess.ID())
}

// writeLoop drains the outbox until it is closed or a write fails.
func (s *Server) writeLoop(conn *websocket.Conn, out *outbox) {
	defer conn.Close()
	for {
		select {
		case msg := <-out.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				out.Close()
				return
			}
		case <-out.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// readLoop decodes intents and queues one reply per message.
func (s *Server) readLoop(conn *websocket.Conn, sess *Session, out *outbox) {
	conn.SetReadLimit(maxMessageBytes)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", "id", sess.ID(), "error", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			out.Send(errorMessage("bad_json"))
			continue
		}
		out.Send(s.dispatch(sess, msg))
	}
}

// dispatch applies one client intent to the session.
func (s *Server) dispatch(sess *Session, msg ClientMessage) ServerMessage {
	var res engine.Result
	switch msg.Type {
	case MsgSwap:
		if msg.A == nil || msg.B == nil {
			return errorMessage("swap needs a and b")
		}
		res = sess.Swap(*msg.A, *msg.B)
	case MsgActivate:
		if msg.P == nil {
			return errorMessage("activate needs p")
		}
		res = sess.Activate(*msg.P)
	case MsgSelect:
		if msg.P == nil {
			return errorMessage("select needs p")
		}
		res = sess.Select(*msg.P)
	case MsgReset:
		if msg.Size < 0 || msg.Size > maxBoardSize || (msg.Size > 0 && msg.Size < 3) {
			return errorMessage("size must be between 3 and 16")
		}
		if err := checkLevel(msg.Level); err != nil {
			return errorMessage(err.Error())
		}
		view := sess.Reset(msg.Size, msg.Level)
		return ServerMessage{Type: MsgView, View: &view}
	case MsgHint:
		m, ok := sess.Hint()
		return ServerMessage{Type: MsgHint, Hint: &HintDTO{Found: ok, A: m.A, B: m.B}}
	default:
		return errorMessage(fmt.Sprintf("unknown message type %q", msg.Type))
	}

	s.recordLevel(sess, res)
	s.recordFinished(sess)
	return ServerMessage{Type: MsgResult, ResultDTO: newResultDTO(res)}
}
