package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stack-the-letter/internal/letters"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
)

// lastFake is the most recent game built by the fake modes.
var lastFake *fakeGame

func init() {
	for _, id := range []string{"fake", "fake2"} {
		registry.Register(id, func() registry.Game {
			lastFake = &fakeGame{}
			return lastFake
		})
	}
}

func testCatalog(t *testing.T) []letters.Letter {
	t.Helper()
	catalog, err := letters.Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}
	if len(catalog) < 2 {
		t.Fatalf("Expected at least 2 built-in letters, got %d", len(catalog))
	}
	return catalog
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuNavigation(t *testing.T) {
	catalog := testCatalog(t)
	m := NewMenuModel(nil, testConfig(), catalog)

	if m.Mode() != "fake" {
		t.Fatalf("Expected first mode fake, got %q", m.Mode())
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Mode() != "fake2" {
		t.Errorf("Expected fake2 after right, got %q", m.Mode())
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Mode() != "fake" {
		t.Errorf("Mode should wrap around, got %q", m.Mode())
	}

	// Up at the top stays put.
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Expected a selection")
	}
	if sel.LetterID != catalog[1].ID {
		t.Errorf("Expected %q selected, got %q", catalog[1].ID, sel.LetterID)
	}
}

func TestMenuViewListsLetters(t *testing.T) {
	catalog := testCatalog(t)
	m := NewMenuModel(nil, testConfig(), catalog)
	m = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	for _, l := range catalog {
		if !strings.Contains(view, l.ID) {
			t.Errorf("Menu is missing letter %q", l.ID)
		}
	}
	if m.Config().ScreenW != 120 {
		t.Errorf("Resize not kept in config, width %d", m.Config().ScreenW)
	}
}

func TestMenuResultsAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), testCatalog(t))
	if r := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab}); !r.WantsScoreboard() {
		t.Error("Tab should open the results board")
	}
	if q := updateMenu(t, m, runeKey("q")); !q.IsQuitting() {
		t.Error("q should quit the menu")
	}
}

func TestSessionModelPlaysSelectedLetter(t *testing.T) {
	catalog := testCatalog(t)
	sm := NewSessionModel(nil, testConfig(), catalog, "tester")

	next, _ := sm.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(SessionModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm = next.(SessionModel)

	if sm.gameModel == nil {
		t.Fatal("Expected the session to enter the game")
	}
	if lastFake.letter != catalog[1].ID {
		t.Errorf("Game got letter %q, want %q", lastFake.letter, catalog[1].ID)
	}
	if !strings.Contains(sm.View(), "fake board") {
		t.Error("Session should render the game")
	}

	// Stopped game: b returns to the menu.
	next, _ = sm.Update(TickMsg{})
	next, _ = next.(SessionModel).Update(runeKey("b"))
	sm = next.(SessionModel)
	if sm.gameModel != nil {
		t.Fatal("Expected the session back on the menu")
	}
	if !strings.Contains(sm.View(), catalog[0].ID) {
		t.Error("Menu not shown after leaving the game")
	}
}
