package pipeline

import (
	"github.com/matzehuels/stackbar/pkg/dataset"
	apperrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// NewChart builds the chart for records with the layout options of opts.
// opts must have passed ValidateForLayout.
func NewChart(records []dataset.Record, opts Options) (*bar.Chart, error) {
	margin := bar.DefaultMargin
	if opts.Margin != nil {
		margin = *opts.Margin
	}
	canvas := bar.NewCanvas(opts.Selector, opts.Width, opts.Height, margin)

	chartOpts := []bar.Option{bar.WithLogger(opts.Logger)}
	if len(opts.Colors) > 0 {
		chartOpts = append(chartOpts, bar.WithColor(bar.ColorFromPalette(opts.Colors...)))
	}
	if opts.Tooltip != "" {
		fn, err := bar.TemplateTooltip(opts.Tooltip, opts.Key)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid tooltip template")
		}
		chartOpts = append(chartOpts, bar.WithTooltip(fn))
	}
	return bar.New(canvas, records, opts.Key, chartOpts...), nil
}

// GenerateLayout builds the chart for records and returns its layout.
func GenerateLayout(records []dataset.Record, opts Options) (bar.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return bar.Layout{}, err
	}
	chart, err := NewChart(records, opts)
	if err != nil {
		return bar.Layout{}, err
	}
	return chart.Layout(), nil
}
