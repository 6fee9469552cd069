// Package tui provides the Bubble Tea integration for the arcade platform.
// It runs the terminal UI loop, maps input and records finished games.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/registry"
	"github.com/vovakirdan/crush-arcade/internal/storage"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// ModelOptions tune a game model.
type ModelOptions struct {
	// Player is recorded with saved scores (SSH user name for remote play).
	Player string

	// Bell receives a terminal bell on level-up and game-over cues.
	// Nil disables sound.
	Bell io.Writer

	// Embedded models return to a menu on Back instead of quitting.
	Embedded bool
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       ModelOptions
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	best       storage.Best
	newBest    bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	cfg = cfg.Normalize()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if store != nil {
		if best, err := store.Best(game.ID()); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game when it is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		if m.opts.Embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.newBest = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// The highest level is kept even if the game is abandoned later
	if slices.Contains(result.Cues, "level_up") {
		m.recordLevel()
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Bell != nil && wantsBell(result.Cues) {
		cmds = append(cmds, ringBell(m.opts.Bell))
	}
	return m, tea.Batch(cmds...)
}

// saveScore records the finished game and raises the personal best.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	id := m.game.ID()
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(id, m.gameState.Score, m.gameState.Level, m.opts.Player)

	best, err := m.store.RecordBest(id, m.gameState.Score, m.gameState.Level)
	if err != nil {
		return
	}
	m.newBest = m.gameState.Score > m.best.Score
	m.best = best
}

// recordLevel raises the stored highest level to the current one.
func (m *Model) recordLevel() {
	if m.store == nil {
		return
	}
	best, err := m.store.RecordBest(m.game.ID(), 0, m.gameState.Level)
	if err != nil {
		return
	}
	m.best.Level = best.Level
}

// wantsBell reports whether any cue deserves an audible signal.
func wantsBell(cues []string) bool {
	for _, c := range cues {
		switch c {
		case "level_up", "game_over", "bomb", "color_clear":
			return true
		}
	}
	return false
}

// ringBell writes BEL to the terminal outside the render loop.
func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // Bell is cosmetic
		w.Write([]byte{'\a'})
		return nil
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	m.renderBest()

	// Convert screen to string
	return RenderScreen(m.screen)
}

// renderBest draws the personal best on the bottom line.
func (m Model) renderBest() {
	if m.store == nil || m.screen.Height() == 0 {
		return
	}
	y := m.screen.Height() - 1
	line := fmt.Sprintf("Best: %d  Highest level: %d", m.best.Score, m.best.Level)
	color := core.ColorGray
	if m.newBest {
		line = "NEW BEST! " + line
		color = core.ColorYellow
	}
	m.screen.DrawTextColor(1, y, line, color)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks select tiles
	)

	_, err := p.Run()
	return err
}
