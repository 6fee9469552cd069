package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/games/crush"
	"github.com/vovakirdan/crush-arcade/internal/storage"
)

// CrushSelection holds the user's choices from the Crush Match setup screen.
type CrushSelection struct {
	Preset config.DifficultyPreset
	Level  int // Starting level, 1-based
}

// Setup screen rows
const (
	crushRowDifficulty = iota
	crushRowLevel
	crushRowStart
	crushRowCount
)

// crushSetupKeys lists the bindings shown in the setup help bar.
type crushSetupKeys struct {
	Move   key.Binding
	Change key.Binding
	Start  key.Binding
	Back   key.Binding
}

func (k crushSetupKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Change, k.Start, k.Back}
}

func (k crushSetupKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultCrushSetupKeys() crushSetupKeys {
	return crushSetupKeys{
		Move:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "move")),
		Change: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("left/right", "change")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// CrushSetupModel lets users choose difficulty and starting level.
type CrushSetupModel struct {
	row       int
	preset    int // index into config.Presets
	level     int
	maxLevel  int
	best      *storage.Best
	width     int
	height    int
	keyMapper *KeyMapper
	keys      crushSetupKeys
	help      help.Model
	choosing  bool
	quitting  bool
	back      bool
}

// NewCrushSetupModel creates the setup screen. The store may be nil.
func NewCrushSetupModel(store *storage.Store, width, height int) CrushSetupModel {
	m := CrushSetupModel{
		preset:    presetIndex(config.DifficultyNormal),
		level:     1,
		maxLevel:  crush.LevelCount(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		keys:      defaultCrushSetupKeys(),
		help:      help.New(),
		choosing:  true,
	}
	if store != nil {
		if best, err := store.Best(crush.GameID); err == nil {
			m.best = &best
		}
	}
	return m
}

func presetIndex(p config.DifficultyPreset) int {
	for i, q := range config.Presets {
		if q == p {
			return i
		}
	}
	return 0
}

// Init initializes the model.
func (m CrushSetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CrushSetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m CrushSetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.row > 0 {
			m.row--
		}
	case MenuActionDown:
		if m.row < crushRowCount-1 {
			m.row++
		}
	case MenuActionLeft:
		m.change(-1)
	case MenuActionRight:
		m.change(+1)
	case MenuActionSelect:
		if m.row != crushRowStart {
			m.row = crushRowStart
			return m, nil
		}
		m.choosing = false
		return m, tea.Quit
	}
	return m, nil
}

func (m *CrushSetupModel) change(delta int) {
	switch m.row {
	case crushRowDifficulty:
		n := len(config.Presets)
		m.preset = (m.preset + delta + n) % n
	case crushRowLevel:
		m.level = min(max(m.level+delta, 1), m.maxLevel)
	}
}

// View renders the setup screen.
func (m CrushSetupModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C R U S H   M A T C H", m.width)))
	b.WriteString("\n\n")

	if m.best != nil && m.best.Score > 0 {
		line := fmt.Sprintf("Best %d  |  Highest level %d", m.best.Score, m.best.Level)
		b.WriteString(dimStyle.Render(centerText(line, m.width)))
		b.WriteString("\n\n")
	}

	preset := config.Presets[m.preset]
	rows := []string{
		fmt.Sprintf("Difficulty:  < %-6s >  %s", preset, presetBlurb(preset)),
		fmt.Sprintf("Start level: < %2d >", m.level),
		"Start game",
	}

	for i, row := range rows {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.row {
			cursor = "> "
			style = activeStyle
		}
		b.WriteString(style.Render(centerText(cursor+row, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func presetBlurb(p config.DifficultyPreset) string {
	switch p {
	case config.DifficultyEasy:
		return fmt.Sprintf("(%d colors, hints)", config.PaletteForPreset(p))
	case config.DifficultyHard:
		return fmt.Sprintf("(%d colors, no hints)", config.PaletteForPreset(p))
	case config.DifficultyFixed:
		return "(level never changes)"
	default:
		return fmt.Sprintf("(%d colors)", config.PaletteForPreset(p))
	}
}

// Selected returns the selection, or nil if still choosing.
func (m CrushSetupModel) Selected() *CrushSelection {
	if m.choosing {
		return nil
	}
	return &CrushSelection{Preset: config.Presets[m.preset], Level: m.level}
}

// IsQuitting returns true if user wants to quit.
func (m CrushSetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m CrushSetupModel) WantsBack() bool {
	return m.back
}

// RunCrushSetup runs the setup screen and returns the selection.
// A nil selection means the user backed out or quit.
func RunCrushSetup(store *storage.Store, cfg core.RuntimeConfig) (*CrushSelection, core.RuntimeConfig, error) {
	model := NewCrushSetupModel(store, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(CrushSetupModel)
	if !ok {
		return nil, cfg, nil
	}

	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
