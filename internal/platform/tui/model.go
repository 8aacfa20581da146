package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stack-the-letter/internal/core"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
	"github.com/vovakirdan/stack-the-letter/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	hold        *HoldTracker
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	embedded    bool // runs inside the SSH session flow
	backToMenu  bool
	resultSaved bool // result stored for the current ending
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		hold:       NewHoldTracker(DefaultHoldWindow),
		inputFrame: core.NewInputFrame(),
	}
}

// NewEmbeddedModel creates a game model for the SSH session flow, where
// "b" on an idle or finished game returns to the menu instead of quitting.
func NewEmbeddedModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	m := NewModel(game, store, cfg)
	m.embedded = true
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if msg.String() == "b" && (m.gameState.Paused || m.gameState.GameOver) {
		m.saveResult()
		m.resultSaved = true
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.saveResult()
		m.quitting = true
		return m, tea.Quit
	case Held(action):
		m.hold.Press(action, now)
	case action == core.ActionStop:
		m.hold.Release()
		m.inputFrame.Set(action)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.hold.Apply(&m.inputFrame, now)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		if !m.resultSaved {
			m.saveResult()
			m.resultSaved = true
		}
	} else {
		m.resultSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the session outcome once it has been started. Storage
// failures are logged and never interrupt play.
func (m *Model) saveResult() {
	if m.store == nil || m.resultSaved {
		return
	}
	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	if !sum.Started {
		return
	}

	outcome := storage.OutcomeQuit
	switch {
	case sum.Won:
		outcome = storage.OutcomeWon
	case sum.Lost:
		outcome = storage.OutcomeLost
	}
	_, err := m.store.SaveResult(storage.Result{
		LetterID:     sum.LetterID,
		Mode:         sum.Mode,
		Outcome:      outcome,
		BlocksPlaced: sum.BlocksPlaced,
		CellsRemoved: sum.CellsRemoved,
		Moves:        sum.Moves,
		Duration:     sum.Elapsed,
		Score:        sum.Score,
	})
	if err != nil {
		log.Warn("could not save result", "mode", sum.Mode, "letter", sum.LetterID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".stackletter", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("could not create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("could not save screenshot", "path", path, "err", err)
	}
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
