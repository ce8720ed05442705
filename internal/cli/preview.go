package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/render/bar"
)

const (
	previewBarWidth = 48 // cells for the largest stack
	previewMinWidth = 10
)

var (
	previewCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewLabelStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	previewTipStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags   chartFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Browse the stacks and their tooltips in the terminal",
		Long: `Preview draws every stack as a horizontal bar. Move between stacks with
the arrow keys (or h/j/k/l) to show their tooltip; q quits.`,
		Example: `  stackbar preview sales.csv -d month -m a,b --tooltip '{{.Key}}: {{.Total}}'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := c.loadChart(cmd, args, &flags, noCache)
			if err != nil {
				return err
			}
			if len(chart.Layout().Stacks) == 0 {
				c.printInfo("No stacks to preview")
				return nil
			}
			_, err = tea.NewProgram(newPreviewModel(chart), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the dataset cache")

	return cmd
}

// previewModel is the bubbletea model of the preview command. The cursor
// selects a stack and keeps the chart tooltip showing it.
type previewModel struct {
	chart  *bar.Chart
	layout bar.Layout
	cursor int
	width  int
}

func newPreviewModel(chart *bar.Chart) previewModel {
	m := previewModel{chart: chart, layout: chart.Layout(), width: previewBarWidth}
	m.show()
	return m
}

func (m previewModel) show() {
	if len(m.layout.Stacks) == 0 {
		return
	}
	m.chart.Tooltip().Show(m.layout.Stacks[m.cursor].Key)
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chart.Tooltip().Hide()
			return m, tea.Quit
		case "up", "k", "left", "h":
			if m.cursor > 0 {
				m.cursor--
				m.show()
			}
		case "down", "j", "right", "l":
			if m.cursor < len(m.layout.Stacks)-1 {
				m.cursor++
				m.show()
			}
		}
	case tea.WindowSizeMsg:
		m.width = min(previewBarWidth, max(previewMinWidth, msg.Width-m.labelWidth()-16))
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.layout.Key.String()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	labelWidth := m.labelWidth()
	for i, s := range m.layout.Stacks {
		cursor := "  "
		label := previewLabelStyle
		if i == m.cursor {
			cursor, label = "▸ ", previewCursorStyle
		}
		b.WriteString(cursor)
		b.WriteString(label.Width(labelWidth).Render(s.Key))
		b.WriteString(" ")
		b.WriteString(m.bar(s))
		b.WriteString(" ")
		b.WriteString(StyleNumber.Render(formatNumber(s.Total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, e := range m.layout.Legend {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("■"))
		b.WriteString(" " + StyleDim.Render(e.Label) + "  ")
	}
	b.WriteString("\n")

	if tip, ok := m.chart.Tooltip().Visible(); ok {
		b.WriteString(previewTipStyle.Render(tip.Content))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.layout.Stacks))))
	return b.String()
}

// bar draws the segments of s with their fill colors, scaled so the top of
// the y domain spans the model width.
func (m previewModel) bar(s bar.StackLayout) string {
	top := m.layout.YDomain[1]
	var b strings.Builder
	for _, r := range s.Rects {
		n := 0
		if top > 0 {
			v := math.Round(r.Value() / top * float64(m.width))
			if !math.IsNaN(v) && v > 0 {
				n = int(v)
			}
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(r.Fill)).Render(strings.Repeat("█", n)))
	}
	return b.String()
}

func (m previewModel) labelWidth() int {
	w := 0
	for _, s := range m.layout.Stacks {
		w = max(w, lipgloss.Width(s.Key))
	}
	return w
}
