package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stack-the-letter/internal/core"
	"github.com/vovakirdan/stack-the-letter/internal/letters"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
	"github.com/vovakirdan/stack-the-letter/internal/storage"
)

// MenuItem is one playable letter.
type MenuItem struct {
	LetterID string
	Title    string
	Blocks   int
	Cells    int
}

// MenuModel is the Bubble Tea model for the mode and letter picker.
type MenuModel struct {
	modes          []registry.GameInfo
	modeCursor     int
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu over the given letters.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, catalog []letters.Letter) MenuModel {
	items := make([]MenuItem, 0, len(catalog))
	for _, l := range catalog {
		items = append(items, MenuItem{
			LetterID: l.ID,
			Title:    l.Title,
			Blocks:   len(l.Blocks),
			Cells:    l.CellCount(),
		})
	}

	return MenuModel{
		modes:     registry.List(),
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if len(m.modes) > 0 {
			m.modeCursor = (m.modeCursor - 1 + len(m.modes)) % len(m.modes)
		}

	case MenuActionRight:
		if len(m.modes) > 0 {
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
		}

	case MenuActionSelect:
		if len(m.items) > 0 && len(m.modes) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionResults:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// Mode returns the highlighted mode ID.
func (m MenuModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.modeCursor].ID
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	accent := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(accent.Render("S T A C K   T H E   L E T T E R"), m.width))
	b.WriteString("\n\n")

	if len(m.modes) > 0 {
		b.WriteString(centerText(fmt.Sprintf("Mode:  < %s >", m.modes[m.modeCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString(centerText("No letters found.", m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-10s %-22s %2d blocks", cursor, item.LetterID, item.Title, item.Blocks)
		if best := m.bestMoves(item.LetterID); best != "" {
			line += "  " + best
		}
		if i == m.cursor {
			b.WriteString(centerStyled(accent.Render(line), m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Letter  |  Left/Right: Mode  |  Enter: Play  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerStyled(dim.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// bestMoves describes the best win on a letter in the current mode.
func (m MenuModel) bestMoves(letterID string) string {
	if m.store == nil {
		return ""
	}
	best, err := m.store.BestWin(m.Mode(), letterID)
	if err != nil || best == nil {
		return ""
	}
	return fmt.Sprintf("best %d moves", best.Moves)
}

// Selected returns the selected letter, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the results board.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// centerStyled centers text that carries ANSI styling.
func centerStyled(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	LetterID        string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, catalog []letters.Letter) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, catalog),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Mode()
		result.LetterID = m.Selected().LetterID
	}
	return result, nil
}
