package engine

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// ColorSource supplies random tile colors. *rand.Rand satisfies it.
type ColorSource interface {
	Intn(n int) int
}

// Points are the per-cell rewards.
type Points struct {
	Match      int // multiplied by the current level
	Bomb       int
	ColorClear int
}

// Options configure an engine.
type Options struct {
	Size             int
	Palette          int
	Thresholds       []int
	Points           Points
	MaxCascadePasses int
	Logger           *log.Logger
}

// DefaultOptions returns the classic 8×8, six color game.
func DefaultOptions() Options {
	return Options{
		Size:             8,
		Palette:          6,
		Thresholds:       DefaultThresholds,
		Points:           Points{Match: 10, Bomb: 5, ColorClear: 15},
		MaxCascadePasses: 256,
	}
}

const (
	minSize           = 3
	maxResetAttempts  = 100
	defaultCascadeCap = 256
)

// Engine is one Crush Match session. It is not safe for concurrent use.
type Engine struct {
	opts Options
	rng  ColorSource
	log  *log.Logger

	board      *Board
	state      State
	score      int
	level      int
	startLevel int

	selected    Coord
	hasSelected bool

	moves   int
	matches int
}

// New creates an engine with a fresh board. A nil rng seeds one from the clock.
func New(opts Options, rng ColorSource) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	def := DefaultOptions()
	if opts.Size < minSize {
		opts.Size = def.Size
	}
	if opts.Palette < 3 || opts.Palette > MaxPalette {
		opts.Palette = def.Palette
	}
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = def.Thresholds
	}
	if opts.Points == (Points{}) {
		opts.Points = def.Points
	}
	if opts.MaxCascadePasses <= 0 {
		opts.MaxCascadePasses = defaultCascadeCap
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{opts: opts, rng: rng, log: logger.WithPrefix("crush")}
	e.Reset(opts.Size, 1)
	return e
}

// MaxLevel is the highest start level the engine accepts: the length of the
// threshold table, but never below the default table so that a fixed
// single-threshold setup can still start high.
func (e *Engine) MaxLevel() int {
	return max(len(e.opts.Thresholds), len(DefaultThresholds))
}

// clampLevel bounds a start level to [1, MaxLevel].
func (e *Engine) clampLevel(level int) int {
	return min(max(level, 1), e.MaxLevel())
}

// Reset starts a fresh session. size <= 0 keeps the configured size; level is
// the starting level, clamped to [1, MaxLevel]. The new board has no match groups and at
// least one legal move.
func (e *Engine) Reset(size, level int) *Board {
	if size <= 0 {
		size = e.opts.Size
	}
	if size < minSize {
		size = minSize
	}
	level = e.clampLevel(level)

	e.startLevel = level
	e.level = level
	e.score = 0
	e.moves = 0
	e.matches = 0
	e.hasSelected = false
	e.state = Idle

	for range maxResetAttempts {
		e.board = e.generate(size)
		if _, ok := findSwap(e.board); ok {
			return e.board.Clone()
		}
	}

	// No playable layout found; a bomb guarantees a legal move without
	// creating a match.
	e.log.Warn("no playable board generated, placing bomb", "size", size, "palette", e.opts.Palette)
	e.board.Set(C(size/2, size/2), Bomb())
	return e.board.Clone()
}

// generate fills a board left-to-right, top-to-bottom, drawing each color
// from those that do not complete a run with the two cells to the left or
// the two cells above.
func (e *Engine) generate(size int) *Board {
	b := NewBoard(size)
	allowed := make([]Color, 0, e.opts.Palette)
	for y := range size {
		for x := range size {
			allowed = allowed[:0]
			for c := range e.opts.Palette {
				if !completesRun(b, C(x, y), Color(c)) {
					allowed = append(allowed, Color(c))
				}
			}
			b.Set(C(x, y), Colored(allowed[e.rng.Intn(len(allowed))]))
		}
	}
	return b
}

func completesRun(b *Board, at Coord, c Color) bool {
	cell := Colored(c)
	if at.X >= 2 && b.Get(C(at.X-1, at.Y)) == cell && b.Get(C(at.X-2, at.Y)) == cell {
		return true
	}
	if at.Y >= 2 && b.Get(C(at.X, at.Y-1)) == cell && b.Get(C(at.X, at.Y-2)) == cell {
		return true
	}
	return false
}

// Load replaces the board with a copy of b and recomputes the machine state.
// Empty cells are refilled. Intended for tests, replays and saved sessions.
func (e *Engine) Load(b *Board, score, level int) {
	e.board = b.Clone()
	e.board.refill(e.rng, e.opts.Palette)
	e.score = max(score, 0)
	e.startLevel = e.clampLevel(level)
	e.level = max(e.startLevel, LevelFor(e.opts.Thresholds, e.score))
	e.hasSelected = false
	e.state = Idle
	if !e.hasLegalMove() {
		e.state = GameOver
	}
}

// Swap exchanges two adjacent plain tiles. A swap that forms no match is
// reverted and reported with Matched false.
func (e *Engine) Swap(a, b Coord) Result {
	if r, ok := e.checkIdle(); !ok {
		return r
	}
	if !e.board.InBounds(a) || !e.board.InBounds(b) {
		return e.reject(RejectOutOfBounds)
	}
	if !a.Adjacent(b) {
		return e.reject(RejectNotAdjacent)
	}
	if !e.board.Get(a).IsColored() || !e.board.Get(b).IsColored() {
		return e.reject(RejectNotColored)
	}

	e.hasSelected = false
	res := Result{Accepted: true}

	e.board.Swap(a, b)
	e.snapshot(&res, FrameSwapped)

	groups := FindMatches(e.board)
	if len(groups) == 0 {
		e.board.Swap(a, b)
		e.snapshot(&res, FrameReverted)
		res.State = e.state
		return res
	}

	res.Matched = true
	e.moves++
	e.state = Resolving
	e.cascade(&res, groups)
	e.settle(&res)
	return res
}

// Activate triggers the power-up at p.
func (e *Engine) Activate(p Coord) Result {
	if r, ok := e.checkIdle(); !ok {
		return r
	}
	if !e.board.InBounds(p) {
		return e.reject(RejectOutOfBounds)
	}
	cell := e.board.Get(p)
	if !cell.IsPowerUp() {
		return e.reject(RejectNotPowerUp)
	}

	e.hasSelected = false
	res := Result{Accepted: true, Matched: true}
	e.moves++
	e.state = Resolving

	switch cell.Kind {
	case KindBomb:
		e.detonate(&res, p)
	case KindColorClear:
		e.clearColor(&res, p, cell.Color)
	}
	e.collapse(&res)
	e.cascade(&res, nil)
	e.settle(&res)
	return res
}

// SelectOutcome describes how a Select call was interpreted.
type SelectOutcome uint8

const (
	SelectRejected SelectOutcome = iota
	Selected
	Deselected
	Reselected
	Swapped
	Activated
)

func (o SelectOutcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Reselected:
		return "reselected"
	case Swapped:
		return "swapped"
	case Activated:
		return "activated"
	default:
		return "rejected"
	}
}

// Select applies click-style input: a power-up activates, the first tile is
// selected, the same tile deselects, an adjacent tile swaps with the
// selection and any other tile becomes the new selection.
func (e *Engine) Select(c Coord) (SelectOutcome, Result) {
	if r, ok := e.checkIdle(); !ok {
		return SelectRejected, r
	}
	if !e.board.InBounds(c) {
		return SelectRejected, e.reject(RejectOutOfBounds)
	}

	if e.board.Get(c).IsPowerUp() {
		return Activated, e.Activate(c)
	}

	view := Result{Accepted: true, State: e.state}
	switch {
	case !e.hasSelected:
		e.selected, e.hasSelected = c, true
		return Selected, view
	case e.selected == c:
		e.hasSelected = false
		return Deselected, view
	case e.selected.Adjacent(c):
		return Swapped, e.Swap(e.selected, c)
	default:
		e.selected = c
		return Reselected, view
	}
}

// ClearSelection drops any pending selection.
func (e *Engine) ClearSelection() {
	e.hasSelected = false
}

// Hint returns a legal move, preferring swaps over power-up activation.
func (e *Engine) Hint() (Move, bool) {
	if e.state != Idle {
		return Move{}, false
	}
	if m, ok := findSwap(e.board); ok {
		return m, true
	}
	if p, ok := findPowerUp(e.board); ok {
		return Move{A: p, B: p}, true
	}
	return Move{}, false
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board { return e.board.Clone() }

// State returns the machine state.
func (e *Engine) State() State { return e.state }

// Score returns the session score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level.
func (e *Engine) Level() int { return e.level }

// NextLevelAt returns the score needed for the next level, or 0 at the top.
func (e *Engine) NextLevelAt() int { return NextThreshold(e.opts.Thresholds, e.level) }

// Moves returns the number of committed swaps and activations.
func (e *Engine) Moves() int { return e.moves }

// Matches returns the number of match groups resolved.
func (e *Engine) Matches() int { return e.matches }

// Size returns the current board edge length.
func (e *Engine) Size() int { return e.board.Size() }

// Selected returns the pending selection, if any.
func (e *Engine) Selected() (Coord, bool) { return e.selected, e.hasSelected }

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

func (e *Engine) checkIdle() (Result, bool) {
	if e.state != Idle {
		return e.reject(RejectNotIdle), false
	}
	return Result{}, true
}

func (e *Engine) reject(reason RejectReason) Result {
	return Result{Reason: reason, State: e.state}
}

func (e *Engine) snapshot(res *Result, kind FrameKind) {
	res.Frames = append(res.Frames, Frame{
		Kind:  kind,
		Board: e.board.Clone(),
		Score: e.score,
		Level: e.level,
	})
}

// addScore credits points and raises the level when a threshold is crossed.
func (e *Engine) addScore(res *Result, points int) {
	e.score += points
	res.ScoreDelta += points
	if lvl := max(e.startLevel, LevelFor(e.opts.Thresholds, e.score)); lvl > e.level {
		e.level = lvl
		res.Events = append(res.Events, Event{Kind: EventLevelUp, Level: lvl})
	}
}

// settle leaves Resolving for Idle or GameOver.
func (e *Engine) settle(res *Result) {
	if e.hasLegalMove() {
		e.state = Idle
	} else {
		e.state = GameOver
		res.Events = append(res.Events, Event{Kind: EventGameOver})
	}
	res.State = e.state
}
