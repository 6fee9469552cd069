// Package crush adapts the match-3 engine to the arcade platform: cursor and
// mouse input, frame-by-frame playback of cascades, and terminal rendering.
package crush

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/games/crush/engine"
	"github.com/vovakirdan/crush-arcade/internal/registry"
)

// GameID is the registry and score storage identifier.
const GameID = "crush"

// Cue names reported in core.StepResult.Cues.
const (
	CueMatch        = "match"
	CuePowerUp      = "powerup"
	CueBomb         = "bomb"
	CueColorClear   = "color_clear"
	CueLevelUp      = "level_up"
	CueGameOver     = "game_over"
	CueInvalid      = "invalid"
	CueHintNotFound = "no_hint"
)

// Package-level settings applied on the next Reset, set by the CLI and menus.
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
	logger             = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel sets the starting level. 0 means use the config value.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// LevelCount returns the number of levels in the default threshold table.
func LevelCount() int {
	return len(engine.DefaultThresholds)
}

// SetLogger routes engine warnings to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for Crush Match.
type Game struct {
	cfg        config.CrushConfig
	engine     *engine.Engine
	preset     config.DifficultyPreset // overrides the package preset when set
	startLevel int
	tick       uint64

	cursor  engine.Coord
	view    *engine.Board // board currently on screen
	shown   frameInfo     // score and level matching view
	pending []engine.Frame
	waited  int // ticks the current view has been shown

	hint      engine.Move
	hintTicks int

	banner      string
	bannerTicks int
	lastDelta   int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

type frameInfo struct {
	score int
	level int
}

// New creates a Crush Match game. Reset must be called before use.
func New() *Game {
	return &Game{}
}

// Configure sets a per-instance difficulty and start level, taking precedence
// over the package-level settings. Used where sessions run concurrently.
func (g *Game) Configure(preset config.DifficultyPreset, startLevel int) {
	g.preset = preset
	g.startLevel = max(startLevel, 0)
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Crush Match" }

// Reset loads config and starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadCrush(configPath)
	if err != nil {
		logger.Warn("using default crush config", "err", err)
		cfg = config.DefaultCrushConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyCrushPreset(&cfg, preset)
	}
	g.cfg = cfg

	if selectedStartLevel > 0 {
		g.startLevel = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	level := cfg.Gameplay.StartLevel
	if g.startLevel > 0 {
		level = g.startLevel
	}

	g.engine = engine.New(EngineOptions(cfg), rand.New(rand.NewSource(rc.Seed)))
	g.engine.Reset(cfg.Board.Size, level)

	g.tick = 0
	g.cursor = engine.C(0, 0)
	g.view = g.engine.Board()
	g.shown = frameInfo{score: g.engine.Score(), level: g.engine.Level()}
	g.pending = nil
	g.waited = 0
	g.hintTicks = 0
	g.banner = ""
	g.bannerTicks = 0
	g.lastDelta = 0
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// EngineOptions maps a loaded config onto engine options.
func EngineOptions(cfg config.CrushConfig) engine.Options {
	return engine.Options{
		Size:       cfg.Board.Size,
		Palette:    cfg.Board.Palette,
		Thresholds: cfg.Scoring.LevelThresholds,
		Points: engine.Points{
			Match:      cfg.Scoring.MatchPoints,
			Bomb:       cfg.Scoring.BombPoints,
			ColorClear: cfg.Scoring.ColorClearPoints,
		},
		MaxCascadePasses: cfg.Gameplay.MaxCascadePasses,
		Logger:           logger,
	}
}

// Resize updates the layout without restarting the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minScreen()
	g.tooSmall = w < minW || h < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
	if g.hintTicks > 0 {
		g.hintTicks--
	}

	// Input waits until the previous move has finished playing back.
	if g.advancePlayback() {
		return core.StepResult{State: g.State()}
	}

	if g.engine.State() == engine.GameOver {
		return core.StepResult{State: g.State()}
	}

	var cues []string
	switch {
	case in.Pointer != nil:
		if at, ok := g.boardAt(in.Pointer.X, in.Pointer.Y); ok {
			g.cursor = at
			cues = g.selectAt(at)
		}
	case in.Has(core.ActionSelect):
		cues = g.selectAt(g.cursor)
	case in.Has(core.ActionCancel):
		g.engine.ClearSelection()
	case in.Has(core.ActionHint):
		cues = g.showHint()
	default:
		g.moveCursor(in)
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

func (g *Game) moveCursor(in core.InputFrame) {
	n := g.engine.Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y = max(g.cursor.Y-1, 0)
	case in.Has(core.ActionDown):
		g.cursor.Y = min(g.cursor.Y+1, n-1)
	case in.Has(core.ActionLeft):
		g.cursor.X = max(g.cursor.X-1, 0)
	case in.Has(core.ActionRight):
		g.cursor.X = min(g.cursor.X+1, n-1)
	}
}

func (g *Game) selectAt(at engine.Coord) []string {
	g.hintTicks = 0
	_, res := g.engine.Select(at)
	return g.apply(res)
}

func (g *Game) showHint() []string {
	if !g.cfg.Gameplay.Hints {
		return nil
	}
	m, ok := g.engine.Hint()
	if !ok {
		return []string{CueHintNotFound}
	}
	g.hint = m
	g.hintTicks = max(g.cfg.Animation.HintTicks, 1)
	return nil
}

// apply queues a result's frames for playback and converts its events to cues.
func (g *Game) apply(res engine.Result) []string {
	if !res.Accepted {
		return []string{CueInvalid}
	}
	if len(res.Frames) == 0 {
		return nil
	}
	g.pending = append(g.pending, res.Frames...)
	g.waited = 0
	g.lastDelta = res.ScoreDelta

	if !res.Matched {
		return []string{CueInvalid}
	}

	var cues []string
	for _, ev := range res.Events {
		switch ev.Kind {
		case engine.EventMatch:
			cues = appendCue(cues, CueMatch)
		case engine.EventPowerUpCreated:
			cues = appendCue(cues, CuePowerUp)
		case engine.EventBombExploded:
			cues = appendCue(cues, CueBomb)
		case engine.EventColorCleared:
			cues = appendCue(cues, CueColorClear)
		case engine.EventLevelUp:
			cues = appendCue(cues, CueLevelUp)
			g.banner = levelBanner(ev.Level)
			g.bannerTicks = g.cfg.Animation.BannerTicks
		case engine.EventGameOver:
			cues = appendCue(cues, CueGameOver)
		}
	}
	return cues
}

func appendCue(cues []string, cue string) []string {
	for _, c := range cues {
		if c == cue {
			return cues
		}
	}
	return append(cues, cue)
}

// State returns the current game state. Game over is reported only once the
// final frames have been shown.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Level:    g.engine.Level(),
		GameOver: g.engine.State() == engine.GameOver && len(g.pending) == 0,
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Space: Select | X: Cancel | ?: Hint | P: Pause | Q: Quit"
}
