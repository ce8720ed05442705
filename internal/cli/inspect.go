package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   chartFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the stacks of a chart as a table",
		Long: `Inspect loads the records, builds the chart and prints one row per
category with the stacked segments of every metric and the stack total.`,
		Example: `  stackbar inspect sales.csv -d month -m a,b`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, records, err := c.loadChart(cmd, args, &flags, noCache)
			if err != nil {
				return err
			}
			c.printChart(chart, records)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the dataset cache")

	return cmd
}

// loadChart loads the records named by the flags and builds their chart.
func (c *CLI) loadChart(cmd *cobra.Command, args []string, flags *chartFlags, noCache bool) (*bar.Chart, int, error) {
	opts, err := flags.options(cmd, args)
	if err != nil {
		return nil, 0, err
	}
	opts.Logger = c.Logger
	if err := opts.ValidateForLoad(); err != nil {
		return nil, 0, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, 0, err
	}

	runner, err := c.newRunner(noCache, "")
	if err != nil {
		return nil, 0, err
	}
	defer runner.Close()

	records, hit, err := runner.LoadWithCacheInfo(cmd.Context(), opts)
	if err != nil {
		return nil, 0, err
	}
	c.Logger.Debug("loaded records", "source", opts.Source(), "records", len(records), "cached", hit)

	chart, err := pipeline.NewChart(records, opts)
	if err != nil {
		return nil, 0, err
	}
	return chart, len(records), nil
}

// printChart writes the stack table and a short summary of the layout.
func (c *CLI) printChart(chart *bar.Chart, records int) {
	l := chart.Layout()
	metrics := l.Key.Metrics

	headers := append([]string{l.Key.Dimension}, metrics...)
	headers = append(headers, "total")

	rows := make([][]string, 0, len(l.Stacks))
	for _, s := range l.Stacks {
		row := []string{s.Key}
		for _, r := range s.Rects {
			row = append(row, formatSegment(r.Segment))
		}
		for len(row) < len(metrics)+1 {
			row = append(row, "")
		}
		rows = append(rows, append(row, formatNumber(s.Total)))
	}

	colors := make([]lipgloss.Style, len(metrics))
	for i, m := range metrics {
		colors[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Color(m)))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorWhite)
			case col <= len(metrics):
				return colors[col-1].Padding(0, 1)
			default:
				return base.Foreground(colorCyan).Bold(true)
			}
		})

	fmt.Fprintln(c.out, t.Render())
	fmt.Fprintln(c.out)

	c.printKeyValue("Key", l.Key.String())
	c.printKeyValue("Records", strconv.Itoa(records))
	c.printKeyValue("Stacks", strconv.Itoa(len(l.Stacks)))
	c.printKeyValue("Y domain", "["+formatNumber(l.YDomain[0])+", "+formatNumber(l.YDomain[1])+"]")
	c.printKeyValue("Bandwidth", formatNumber(l.Bandwidth))

	var truncated []string
	for _, tk := range l.XAxis.Ticks {
		if tk.Truncated() {
			truncated = append(truncated, tk.Full)
		}
	}
	if l.XAxis.Rotated {
		c.printKeyValue("Labels", fmt.Sprintf("rotated %g°, %d truncated", bar.LabelRotation, len(truncated)))
	}
	if len(truncated) > 0 {
		c.printDetail("truncated: %s", strings.Join(truncated, ", "))
	}
}

// formatSegment renders a segment as "value [y0, y1]".
func formatSegment(s bar.Segment) string {
	return formatNumber(s.Value()) + " [" + formatNumber(s.Y0) + ", " + formatNumber(s.Y1) + "]"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
