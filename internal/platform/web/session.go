package web

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
)

// Session is one browser-driven game. The engine is not safe for concurrent
// use, so every call goes through the session mutex.
type Session struct {
	id string

	mu       sync.Mutex
	eng      *engine.Engine
	saved    bool // score recorded for the current game over
	player   string
	lastSeen time.Time
	conns    int // open websockets; attached sessions are never idle
}

// NewSession creates a session with a fresh board. size and level of zero use
// the options' defaults.
func NewSession(opts engine.Options, seed int64, size, level int, player string) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(opts, rand.New(rand.NewSource(seed)))
	eng.Reset(size, level)
	return &Session{
		id:       uuid.NewString(),
		eng:      eng,
		player:   player,
		lastSeen: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// View returns the current externally visible state.
func (s *Session) View() ViewDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.view()
}

func (s *Session) view() ViewDTO {
	v := ViewDTO{
		ID:          s.id,
		Board:       boardRows(s.eng.Board()),
		State:       s.eng.State().String(),
		Score:       s.eng.Score(),
		Level:       s.eng.Level(),
		NextLevelAt: s.eng.NextLevelAt(),
		Moves:       s.eng.Moves(),
		Matches:     s.eng.Matches(),
	}
	if c, ok := s.eng.Selected(); ok {
		v.Selected = &c
	}
	return v
}

// Swap exchanges two adjacent tiles.
func (s *Session) Swap(a, b engine.Coord) engine.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.eng.Swap(a, b)
}

// Activate triggers the power-up at p.
func (s *Session) Activate(p engine.Coord) engine.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.eng.Activate(p)
}

// Select applies click-style input at c.
func (s *Session) Select(c engine.Coord) engine.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	_, res := s.eng.Select(c)
	return res
}

// Hint returns a suggested move.
func (s *Session) Hint() (engine.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.eng.Hint()
}

// Reset starts a new game in the same session.
func (s *Session) Reset(size, level int) ViewDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.eng.Reset(size, level)
	s.saved = false
	return s.view()
}

// attach marks a websocket as open on the session.
func (s *Session) attach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns++
	s.lastSeen = time.Now()
}

// detach marks a websocket as closed. The idle clock restarts from here.
func (s *Session) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns--
	s.lastSeen = time.Now()
}

// idleSince reports whether the session has no open websocket and has not
// been used since cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns == 0 && s.lastSeen.Before(cutoff)
}

// finished reports the final score and level the first time it is called
// after the game ends.
func (s *Session) finished() (score, level int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved || s.eng.State() != engine.GameOver {
		return 0, 0, false
	}
	s.saved = true
	return s.eng.Score(), s.eng.Level(), true
}

// Registry tracks live sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewRegistry creates a registry holding at most limit sessions.
// A limit of zero means unbounded.
func NewRegistry(limit int) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

// Add registers s. It returns false when the registry is full.
func (r *Registry) Add(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return false
	}
	r.sessions[s.ID()] = s
	return true
}

// Get retrieves a session by ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove deletes a session. It reports whether the session existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle since cutoff and returns their IDs.
func (r *Registry) Sweep(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []string
	for id, s := range r.sessions {
		if s.idleSince(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
