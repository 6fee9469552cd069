// Package web exposes Crush Match sessions over HTTP and websockets so that
// browser clients can drive the same engine the terminal UI uses.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/games/crush"
	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
	"github.com/vovakirdan/crush-arcade/internal/storage"
)

const (
	maxBoardSize    = 16
	maxMessageBytes = 4096
	writeWait       = 10 * time.Second
)

// ServerConfig holds configuration for the web bridge.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game is the Crush Match config new sessions start from.
	Game config.CrushConfig

	// Store records finished games. Nil disables persistence.
	Store *storage.Store

	// MaxSessions caps live sessions. Zero means unbounded.
	MaxSessions int

	// OutboxSize is the per-connection outbound buffer.
	OutboxSize int

	// SessionTTL evicts sessions with no open websocket that have been
	// unused this long. Zero keeps sessions until they are deleted.
	SessionTTL time.Duration

	// Logger overrides the default stderr logger.
	Logger *log.Logger
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:     ":8080",
		Game:        config.DefaultCrushConfig(),
		MaxSessions: 1024,
		OutboxSize:  defaultOutboxSize,
		SessionTTL:  30 * time.Minute,
	}
}

// Server bundles the router, live sessions and score store.
type Server struct {
	config   ServerConfig
	r        *chi.Mux
	sessions *Registry
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	stopReaper context.CancelFunc
	reaperDone chan struct{}
}

// NewServer constructs a Server, installs middleware and registers routes.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-web",
		})
	}

	s := &Server{
		config:   cfg,
		r:        chi.NewRouter(),
		sessions: NewRegistry(cfg.MaxSessions),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/health", s.handleHealth)

	s.r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Get("/scores", s.handleScores)
	})

	// No timeout here: the connection outlives the handler's deadline.
	s.r.Get("/ws/{id}", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Sessions exposes the live session registry.
func (s *Server) Sessions() *Registry { return s.sessions }

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting web server", "address", s.config.Address)
	s.startReaper(reapInterval(s.config.SessionTTL))

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errc:
		return err
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and the idle-session reaper.
func (s *Server) Shutdown() error {
	if s.stopReaper != nil {
		s.stopReaper()
		<-s.reaperDone
		s.stopReaper = nil
	}
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// reapInterval checks a quarter of the TTL, between one second and one minute.
func reapInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), time.Minute)
}

// startReaper evicts idle sessions every interval until Shutdown. It does
// nothing when SessionTTL is zero.
func (s *Server) startReaper(every time.Duration) {
	if s.config.SessionTTL <= 0 || s.stopReaper != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopReaper = cancel
	s.reaperDone = make(chan struct{})

	go func() {
		defer close(s.reaperDone)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.sweepIdle(now)
			}
		}
	}()
}

// sweepIdle drops sessions unused for longer than SessionTTL before now.
func (s *Server) sweepIdle(now time.Time) int {
	evicted := s.sessions.Sweep(now.Add(-s.config.SessionTTL))
	for _, id := range evicted {
		s.logger.Info("session expired", "id", id)
	}
	return len(evicted)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Count()})
}

// createSessionReq is the optional body of POST /api/sessions.
type createSessionReq struct {
	Size       int    `json:"size"`
	Level      int    `json:"level"`
	Seed       int64  `json:"seed"`
	Difficulty string `json:"difficulty"`
	Player     string `json:"player"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Size < 0 || req.Size > maxBoardSize || (req.Size > 0 && req.Size < 3) {
		writeError(w, http.StatusBadRequest, "size must be between 3 and 16")
		return
	}
	if err := checkLevel(req.Level); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := s.config.Game
	if req.Difficulty != "" {
		preset, err := config.ParsePreset(req.Difficulty)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		config.ApplyCrushPreset(&cfg, preset)
	}
	level := req.Level
	if level == 0 {
		level = cfg.Gameplay.StartLevel
	}

	opts := crush.EngineOptions(cfg)
	opts.Logger = s.logger
	sess := NewSession(opts, req.Seed, req.Size, level, req.Player)
	if !s.sessions.Add(sess) {
		writeError(w, http.StatusServiceUnavailable, "too_many_sessions")
		return
	}
	s.logger.Info("session created", "id", sess.ID(), "player", req.Player)
	writeJSON(w, http.StatusCreated, sess.View())
}

// checkLevel validates a requested start level. Zero means the configured one.
func checkLevel(level int) error {
	if level < 0 || level > crush.LevelCount() {
		return fmt.Errorf("level must be between 1 and %d", crush.LevelCount())
	}
	return nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.Remove(id) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	s.logger.Info("session deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// scoreDTO is one leaderboard row.
type scoreDTO struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Player    string    `json:"player,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.config.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store")
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	entries, err := s.config.Store.TopScores(crush.GameID, limit)
	if err != nil {
		s.logger.Error("load scores", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	best, err := s.config.Store.Best(crush.GameID)
	if err != nil {
		s.logger.Error("load best", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	rows := make([]scoreDTO, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, scoreDTO{
			Rank:      i + 1,
			Score:     e.Score,
			Level:     e.Level,
			Player:    e.Player,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scores":        rows,
		"best_score":    best.Score,
		"highest_level": best.Level,
	})
}

// recordLevel raises the stored highest level as soon as a level-up happens,
// so abandoned sessions keep it.
func (s *Server) recordLevel(sess *Session, res engine.Result) {
	level := 0
	for _, ev := range res.Events {
		if ev.Kind == engine.EventLevelUp {
			level = max(level, ev.Level)
		}
	}
	if s.config.Store == nil || level == 0 {
		return
	}
	if _, err := s.config.Store.RecordBest(crush.GameID, 0, level); err != nil {
		s.logger.Warn("record level", "id", sess.ID(), "error", err)
	}
}

// recordFinished saves the score once when a session reaches game over.
func (s *Server) recordFinished(sess *Session) {
	score, level, ok := sess.finished()
	if !ok {
		return
	}
	s.logger.Info("game over", "id", sess.ID(), "score", score, "level", level)
	if s.config.Store == nil || score <= 0 {
		return
	}
	if _, err := s.config.Store.SaveScore(crush.GameID, score, level, sess.player); err != nil {
		s.logger.Warn("save score", "id", sess.ID(), "error", err)
		return
	}
	if _, err := s.config.Store.RecordBest(crush.GameID, score, level); err != nil {
		s.logger.Warn("record best", "id", sess.ID(), "error", err)
	}
}
