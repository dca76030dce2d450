package picker

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/workspace"
)

func testItems() []workspace.DecoratedItem {
	return workspace.Decorate([]search.DirectoryItem{
		{FullPath: "/p/api", Label: "api", Description: "/p"},
		{FullPath: "/p/web", Label: "web", Description: "/p"},
		{FullPath: "/p/worker", Label: "worker", Description: "/p"},
	}, func(path string) bool { return path == "/p/api" }, nil)
}

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

func update(t *testing.T, m pickerModel, keys ...string) pickerModel {
	t.Helper()
	for _, key := range keys {
		updated, _ := m.Update(keyPress(key))
		m = updated.(pickerModel)
	}
	return m
}

func TestPicker_EnterSelectsFirst(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick a directory", testItems()), "enter")

	if !m.done {
		t.Error("done = false, want true")
	}
	if m.cancelled {
		t.Error("cancelled = true, want false")
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
}

func TestPicker_Navigation(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "down", "down", "enter")
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}

	m = update(t, newModel("Pick", testItems()), "down", "up", "enter")
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
}

func TestPicker_CursorStopsAtBounds(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "up", "enter")
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}

	m = update(t, newModel("Pick", testItems()), "down", "down", "down", "down", "enter")
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}
}

func TestPicker_FilterNarrows(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "w", "e", "b")

	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %d items, want 1", len(m.filtered))
	}

	m = update(t, m, "enter")
	if got := m.items[m.selected].Label; got != "web" {
		t.Errorf("selected label = %q, want %q", got, "web")
	}
}

func TestPicker_BackspaceWidens(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "a", "p", "i")
	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %d items, want 1", len(m.filtered))
	}

	m = update(t, m, "backspace", "backspace", "backspace")
	if len(m.filtered) != 3 {
		t.Errorf("filtered = %d items after clearing filter, want 3", len(m.filtered))
	}
}

func TestPicker_EscCancels(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "esc")
	if !m.cancelled {
		t.Error("cancelled = false, want true")
	}

	m = update(t, newModel("Pick", testItems()), "ctrl+c")
	if !m.cancelled {
		t.Error("ctrl+c: cancelled = false, want true")
	}
}

func TestPicker_NoMatchEnterIsNoop(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "z", "z", "z", "enter")
	if m.done {
		t.Error("done = true, want false when nothing matches")
	}
}

func TestPicker_ViewShowsBadges(t *testing.T) {
	t.Parallel()

	m := newModel("Pick a directory", testItems())
	content := m.render()

	if !strings.Contains(content, "[git]") {
		t.Errorf("view missing git badge:\n%s", content)
	}
	if !strings.Contains(content, "api") {
		t.Errorf("view missing item label:\n%s", content)
	}
}

func TestPicker_RenderEmptyAfterSelection(t *testing.T) {
	t.Parallel()

	m := update(t, newModel("Pick", testItems()), "enter")
	if got := m.render(); got != "" {
		t.Errorf("render after selection = %q, want empty", got)
	}
}
