package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tubemap/pkg/pipeline"
)

func newTestModel(t *testing.T, initial ...string) (ExploreModel, *pipeline.Explorer) {
	t.Helper()
	c, _ := testCLI(t)
	ctx := testContext(c)
	n, err := c.loadNetwork(ctx, dataFlags{})
	if err != nil {
		t.Fatal(err)
	}
	ex := pipeline.NewExplorer(n, pipeline.Options{}, initial...)
	m := NewExploreModel(context.Background(), ex, filepath.Join(t.TempDir(), "map.svg"))
	m.apply(ex.Refresh(ctx))
	return m, ex
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ExploreModel, msgs ...tea.Msg) ExploreModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ExploreModel)
	}
	return m
}

func TestExploreToggle(t *testing.T) {
	m, ex := newTestModel(t, "Central")

	// Cursor starts on Central; toggling it off leaves an empty map.
	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if ex.Selected("Central") {
		t.Error("Central still selected after toggle")
	}
	if ex.Refreshes() != 2 {
		t.Errorf("Refreshes() = %d, want 2", ex.Refreshes())
	}
	if !strings.Contains(m.status, "0 stations") {
		t.Errorf("status = %q", m.status)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if !ex.Selected("Northern") || ex.Refreshes() != 3 {
		t.Errorf("selection = %v after toggling the second line", ex.Selection())
	}

	data, err := os.ReadFile(m.Output)
	if err != nil {
		t.Fatalf("map not written: %v", err)
	}
	if !strings.Contains(string(data), "Northern") {
		t.Error("written map does not show the toggled line")
	}
}

func TestExploreSelectAllAndNone(t *testing.T) {
	m, ex := newTestModel(t)

	press(m, runes("a"))
	want := []string{"Central", "Northern", "Victoria", "Waterloo & City"}
	if got := ex.Selection(); !slices.Equal(got, want) {
		t.Errorf("after select all: %q, want %q", got, want)
	}
	if ex.Graph().NodeCount() != 7 {
		t.Errorf("graph has %d nodes, want 7", ex.Graph().NodeCount())
	}

	press(m, runes("n"))
	if len(ex.Selection()) != 0 || ex.Graph().NodeCount() != 0 {
		t.Errorf("after remove all: selection %q, %d nodes", ex.Selection(), ex.Graph().NodeCount())
	}
	if ex.Refreshes() != 3 {
		t.Errorf("Refreshes() = %d, want 3", ex.Refreshes())
	}
}

func TestExploreRefresh(t *testing.T) {
	m, ex := newTestModel(t, "Victoria")
	ex.SetSelection("Central", "Northern")

	m = press(m, runes("r"))
	if ex.Refreshes() != 2 || ex.Graph().NodeCount() != 4 {
		t.Errorf("refreshes=%d nodes=%d, want 2 and 4", ex.Refreshes(), ex.Graph().NodeCount())
	}
	if !strings.Contains(m.status, "2 lines") {
		t.Errorf("status = %q", m.status)
	}
}

func TestExploreCursorGrid(t *testing.T) {
	m, _ := newTestModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, 3},
		{tea.KeyMsg{Type: tea.KeyDown}, 3}, // no fourth row
		{tea.KeyMsg{Type: tea.KeyRight}, 3},
		{tea.KeyMsg{Type: tea.KeyLeft}, 2},
		{tea.KeyMsg{Type: tea.KeyUp}, 2},
		{runes("h"), 1},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
	}
	for i, tt := range tests {
		m = press(m, tt.key)
		if m.Cursor != tt.want {
			t.Fatalf("step %d (%s): cursor = %d, want %d", i, tt.key, m.Cursor, tt.want)
		}
	}
}

func TestExploreResize(t *testing.T) {
	m, ex := newTestModel(t, "Central")
	w0, h0 := ex.Size()
	passes := ex.Canvas().Passes()

	press(m, runes("]"))
	w1, h1 := ex.Size()
	if w1 <= w0 || h1 <= h0 {
		t.Errorf("grow: %vx%v -> %vx%v", w0, h0, w1, h1)
	}
	if ex.Canvas().Passes() <= passes {
		t.Error("resize did not lay the canvas out again")
	}
	if ex.Refreshes() != 1 {
		t.Errorf("resize rebuilt the graph: %d refreshes", ex.Refreshes())
	}

	press(m, runes("["))
	w2, _ := ex.Size()
	if w2 >= w1 {
		t.Errorf("shrink: %v -> %v", w1, w2)
	}
}

func TestExploreQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestExploreView(t *testing.T) {
	m, _ := newTestModel(t, "Central", "Victoria")
	view := m.View()

	for _, want := range []string{"Select Lines", "[x] Central", "[ ] Northern", "[x] Victoria", "toggle", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	// Three lines per row: Central, Northern and Waterloo & City share the
	// first row, Victoria starts the second.
	rows := strings.Split(view, "\n")
	var first string
	for _, r := range rows {
		if strings.Contains(r, "Central") {
			first = r
			break
		}
	}
	if !strings.Contains(first, "Waterloo & City") || strings.Contains(first, "Victoria") {
		t.Errorf("first grid row = %q", first)
	}
}
