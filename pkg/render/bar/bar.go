package bar

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/fonts"
	"github.com/matzehuels/stackbar/pkg/scale"
)

const (
	// BandPadding is the fraction of each step left empty between bars.
	BandPadding = 0.08
	// Headroom scales the largest stack total to the top of the y domain.
	Headroom = 1.1

	tickCount = scale.DefaultTickCount
)

// XScale positions categories along the x axis.
type XScale interface {
	Domain() []string
	Scale(category string) float64
	Bandwidth() float64
	RangeExtent() (float64, float64)
}

// YScale maps values to vertical pixel positions.
type YScale interface {
	Domain() (float64, float64)
	Range() (float64, float64)
	Scale(v float64) float64
	Ticks(count int) []float64
	TickFormat(count int) func(float64) string
}

// XScaleFunc builds the x scale for the categories and plot width.
type XScaleFunc func(domain []string, width float64) XScale

// YScaleFunc builds the y scale for the domain [0, top] and plot height.
type YScaleFunc func(top, height float64) YScale

// BandX is the default x scale: rounded bands with BandPadding.
func BandX(domain []string, width float64) XScale {
	return scale.NewBand(domain, 0, width, BandPadding)
}

// LinearY is the default y scale, growing upwards.
func LinearY(top, height float64) YScale {
	return scale.NewLinear(0, top, height, 0)
}

// Option configures a chart.
type Option func(*options)

type options struct {
	x        XScaleFunc
	y        YScaleFunc
	color    ColorSpec
	tooltip  TooltipFunc
	measurer fonts.Measurer
	logger   *log.Logger
}

// WithScale overrides the scale constructors. A nil func keeps the default.
func WithScale(x XScaleFunc, y YScaleFunc) Option {
	return func(o *options) {
		if x != nil {
			o.x = x
		}
		if y != nil {
			o.y = y
		}
	}
}

// WithColor sets how metrics are colored.
func WithColor(c ColorSpec) Option { return func(o *options) { o.color = c } }

// WithTooltip sets the tooltip content function.
func WithTooltip(fn TooltipFunc) Option { return func(o *options) { o.tooltip = fn } }

// WithMeasurer sets the text measurer used to fit axis labels.
func WithMeasurer(m fonts.Measurer) Option { return func(o *options) { o.measurer = m } }

// WithLogger sets the logger for layout decisions. Defaults to discarding.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// Chart is a stacked bar chart laid out on a canvas.
type Chart struct {
	canvas  *Canvas
	data    *dataset.DataSet
	key     dataset.Key
	x       XScale
	y       YScale
	color   ColorFunc
	tooltip *Tooltip
	layout  Layout
}

// New lays out records as stacked bars on canvas, one stack per distinct
// value of key.Dimension and one segment per metric. The canvas is Loading
// while the chart is built and Ready when New returns.
//
// New never fails: empty input gives empty axes and no bars, and values that
// are not numbers give NaN geometry.
func New(canvas *Canvas, records []dataset.Record, key dataset.Key, opts ...Option) *Chart {
	o := options{x: BandX, y: LinearY}
	for _, opt := range opts {
		opt(&o)
	}
	if o.measurer == nil {
		o.measurer = fonts.Default()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if canvas == nil {
		canvas = NewCanvas("", DefaultWidth, DefaultHeight, DefaultMargin)
	}

	c := &Chart{canvas: canvas, key: key}
	canvas.SetState(Loading)
	c.data = dataset.New(records, key)

	width, height := canvas.Width(), canvas.Height()

	c.x = o.x(c.data.Categories(), width)
	xAxis := bottomAxis(c.x, height)
	if needsRotation(xAxis.Ticks, c.x.Bandwidth(), o.measurer) {
		xAxis.Rotated = true
		o.logger.Debug("rotating category labels", "band", c.x.Bandwidth(), "angle", LabelRotation)
		if n := fitRotated(xAxis.Ticks, canvas.Margin.Bottom, o.measurer); n > 0 {
			o.logger.Debug("truncated category labels", "count", n, "margin_bottom", canvas.Margin.Bottom)
		}
	}

	_, top, ok := c.data.Extent(dataset.Stack.Total)
	if !ok {
		top = 0
	}
	c.y = o.y(top*Headroom, height)
	yAxis := leftAxis(c.y)

	c.color = o.color.Resolve(key.Metrics)

	c.layout = Layout{
		ID:         canvas.ID(),
		Width:      canvas.OuterWidth,
		Height:     canvas.OuterHeight,
		Margin:     canvas.Margin,
		PlotWidth:  width,
		PlotHeight: height,
		Key:        key,
		Bandwidth:  c.x.Bandwidth(),
		XAxis:      xAxis,
		YAxis:      yAxis,
		Legend:     make([]LegendEntry, 0, len(key.Metrics)),
		Stacks:     make([]StackLayout, 0, c.data.Len()),
		Animation: Animation{
			DelayMS:    AnimationDelay.Milliseconds(),
			DurationMS: AnimationDuration.Milliseconds(),
			Ease:       AnimationEase,
			KeySplines: AnimationKeySplines,
			StartY:     height,
		},
	}
	c.layout.YDomain[0], c.layout.YDomain[1] = c.y.Domain()
	for _, m := range key.Metrics {
		c.layout.Legend = append(c.layout.Legend, LegendEntry{Label: m, Color: c.color(m)})
	}
	for _, s := range c.data.Stacks() {
		c.layout.Stacks = append(c.layout.Stacks, c.stackLayout(s, o.tooltip))
	}
	o.logger.Debug("laid out chart", "stacks", len(c.layout.Stacks), "metrics", len(key.Metrics), "y_max", c.layout.YDomain[1])

	c.tooltip = NewTooltip(func(key string) (Tip, bool) {
		s, ok := c.layout.Stack(key)
		return s.Tip, ok
	})

	canvas.SetState(Ready)
	c.layout.State = canvas.State()
	return c
}

func (c *Chart) stackLayout(s dataset.Stack, tooltip TooltipFunc) StackLayout {
	band := c.x.Bandwidth()
	sl := StackLayout{Key: s.Key, X: c.x.Scale(s.Key), Total: s.Total()}
	for _, seg := range Segments(s, c.key) {
		top := c.y.Scale(seg.Y1)
		sl.Rects = append(sl.Rects, Rect{
			Segment: seg,
			Fill:    c.color(seg.Label),
			Y:       top,
			Width:   band,
			Height:  c.y.Scale(seg.Y0) - top,
		})
	}
	sl.Tip = Tip{
		Key:     s.Key,
		Content: TooltipMissing,
		Anchor:  Anchor{X: sl.X + band/2, Y: c.y.Scale(sl.Total)},
	}
	if tooltip != nil {
		sl.Tip.Content = tooltip(s)
	}
	return sl
}

// Canvas returns the canvas the chart was drawn on.
func (c *Chart) Canvas() *Canvas { return c.canvas }

// DataSet returns the grouped input records.
func (c *Chart) DataSet() *dataset.DataSet { return c.data }

// Key returns the dimension and metrics of the chart.
func (c *Chart) Key() dataset.Key { return c.key }

// X returns the category scale.
func (c *Chart) X() XScale { return c.x }

// Y returns the value scale.
func (c *Chart) Y() YScale { return c.y }

// Color returns the fill of a metric label. Labels outside the key's
// metrics get a palette color picked by a hash of the label and are not
// added to the domain, so repeated calls agree regardless of order. A d3 ordinal scale would append them and hand out
// the next color instead.
func (c *Chart) Color(label string) string { return c.color(label) }

// Tooltip returns the chart's tooltip, hidden initially.
func (c *Chart) Tooltip() *Tooltip { return c.tooltip }

// Segments returns the stacked segments of a category.
func (c *Chart) Segments(category string) ([]Segment, bool) {
	s, ok := c.data.Find(category)
	if !ok {
		return nil, false
	}
	return Segments(s, c.key), true
}

// Layout returns the computed geometry. Callers must not modify it.
func (c *Chart) Layout() Layout { return c.layout }
