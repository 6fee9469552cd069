package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/registry"
	"github.com/vovakirdan/crush-arcade/internal/storage"
)

// MenuEntryKind says what a menu entry does when chosen.
type MenuEntryKind int

const (
	EntryPlay MenuEntryKind = iota
	EntryScores
	EntryQuit
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	Kind   MenuEntryKind
	GameID string // Set for EntryPlay
	Label  string
	Best   storage.Best
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorPink.ANSI()))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorYellow.ANSI()))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorGray.ANSI()))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	chosen    *MenuItem
	quitting  bool
}

// NewMenuModel builds the menu: one play entry per registered game, then
// the scoreboard and quit. The store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		item := MenuItem{Kind: EntryPlay, GameID: g.ID, Label: "Play " + g.Title}
		if store != nil {
			if best, err := store.Best(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	items = append(items,
		MenuItem{Kind: EntryScores, Label: "High scores"},
		MenuItem{Kind: EntryQuit, Label: "Quit"},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.items)

	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.Kind == EntryQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.chosen = &item
		return m, tea.Quit

	case MenuActionScoreboard:
		m.chosen = &MenuItem{Kind: EntryScores}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C R U S H   A R C A D E"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := "  " + item.Label
		if i == m.cursor {
			label = menuCursorStyle.Render("> " + item.Label)
		}
		if item.Kind == EntryPlay && item.Best.Score > 0 {
			label += menuDimStyle.Render(fmt.Sprintf("  best %d, level %d", item.Best.Score, item.Best.Level))
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: Move  |  Enter: Choose  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Result reports what the user picked. done is false while the menu is
// still open.
func (m MenuModel) Result() (res MenuResult, done bool) {
	res.Config = m.config
	switch {
	case m.quitting:
		res.Quit = true
	case m.chosen == nil:
		return res, false
	case m.chosen.Kind == EntryScores:
		res.WantsScoreboard = true
	default:
		res.GameID = m.chosen.GameID
	}
	return res, true
}

// centerText centers text within the given width. Width is measured without
// ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	res, done := m.Result()
	if !done {
		res.Quit = true
	}
	return res, nil
}
