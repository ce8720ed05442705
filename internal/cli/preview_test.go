package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

func testChart(t *testing.T, tooltip string) *bar.Chart {
	t.Helper()
	opts := pipeline.Options{
		Key:     dataset.Key{Dimension: "month", Metrics: dataset.Metrics{"a", "b"}},
		Tooltip: tooltip,
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	records := []dataset.Record{
		{"month": "Jan", "a": 2, "b": 3},
		{"month": "Feb", "a": 1, "b": 4},
		{"month": "Mar", "a": 0, "b": 1},
	}
	chart, err := pipeline.NewChart(records, opts)
	if err != nil {
		t.Fatal(err)
	}
	return chart
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPreviewModelShowsFirstStack(t *testing.T) {
	chart := testChart(t, "{{.Key}} total {{.Total}}")
	m := newPreviewModel(chart)

	tip, ok := chart.Tooltip().Visible()
	if !ok || tip.Key != "Jan" {
		t.Fatalf("visible tip = %+v, %v; want Jan", tip, ok)
	}
	view := m.View()
	for _, want := range []string{"Jan", "Feb", "Mar", "Jan total 5", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPreviewModelNavigation(t *testing.T) {
	chart := testChart(t, "")
	var model tea.Model = newPreviewModel(chart)

	steps := []struct {
		key  string
		want string
	}{
		{"right", "Feb"},
		{"l", "Mar"},
		{"right", "Mar"}, // stays on the last stack
		{"left", "Feb"},
		{"k", "Jan"},
		{"h", "Jan"},
	}
	for _, s := range steps {
		model, _ = model.Update(keyMsg(s.key))
		tip, ok := chart.Tooltip().Visible()
		if !ok || tip.Key != s.want {
			t.Errorf("after %q: tip = %q, %v; want %q", s.key, tip.Key, ok, s.want)
		}
		if tip.Content != bar.TooltipMissing {
			t.Errorf("after %q: content = %q, want placeholder", s.key, tip.Content)
		}
	}
}

func TestPreviewModelQuit(t *testing.T) {
	chart := testChart(t, "")
	m := newPreviewModel(chart)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if _, ok := chart.Tooltip().Visible(); ok {
		t.Error("tooltip should be hidden after quitting")
	}
}

func TestPreviewModelBarWidth(t *testing.T) {
	chart := testChart(t, "")
	m := newPreviewModel(chart)

	// Largest stack is 5 of a 5.5 domain at 48 cells.
	jan := m.bar(chart.Layout().Stacks[0])
	if n := strings.Count(jan, "█"); n < 42 || n > 45 {
		t.Errorf("Jan bar has %d cells, want about 44", n)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 20})
	narrow := updated.(previewModel)
	if narrow.width != previewMinWidth {
		t.Errorf("width = %d, want %d", narrow.width, previewMinWidth)
	}
}
