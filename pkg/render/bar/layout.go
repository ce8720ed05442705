package bar

import (
	"math"
	"strconv"
	"time"

	"github.com/matzehuels/stackbar/pkg/dataset"
)

// Entry animation of the bars.
const (
	AnimationDelay    = 350 * time.Millisecond
	AnimationDuration = 250 * time.Millisecond
	// AnimationEase names the easing curve: quadratic ease-in, t².
	AnimationEase = "quad-in"
	// AnimationKeySplines approximates t² as a cubic Bézier for SMIL.
	AnimationKeySplines = "0.55 0.085 0.68 0.53"
)

// Animation describes the entry transition of every rect: from zero height
// at StartY to its final geometry.
type Animation struct {
	DelayMS    int64   `json:"delay_ms"`
	DurationMS int64   `json:"duration_ms"`
	Ease       string  `json:"ease"`
	KeySplines string  `json:"key_splines"`
	StartY     float64 `json:"start_y"`
}

// Rect is one drawn segment, positioned inside its stack group.
type Rect struct {
	Segment
	Fill   string  `json:"fill"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StackLayout is the group of rects drawn for one category.
type StackLayout struct {
	Key   string  `json:"key"`
	X     float64 `json:"x"`
	Total float64 `json:"total"`
	Rects []Rect  `json:"rects"`
	Tip   Tip     `json:"tooltip"`
}

// LegendEntry is the color assigned to one metric.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Layout is the complete geometry of a rendered chart. Plot coordinates
// have their origin at the top-left corner inside the margins.
//
// A Layout is not modified after New returns and is safe for concurrent reads.
type Layout struct {
	ID         string        `json:"id,omitempty"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Margin     Margin        `json:"margin"`
	PlotWidth  float64       `json:"plot_width"`
	PlotHeight float64       `json:"plot_height"`
	State      State         `json:"state"`
	Key        dataset.Key   `json:"key"`
	Bandwidth  float64       `json:"bandwidth"`
	YDomain    [2]float64    `json:"y_domain"`
	XAxis      Axis          `json:"x_axis"`
	YAxis      Axis          `json:"y_axis"`
	Legend     []LegendEntry `json:"legend"`
	Stacks     []StackLayout `json:"stacks"`
	Animation  Animation     `json:"animation"`
}

// Stack returns the layout of the stack with the given key.
func (l Layout) Stack(key string) (StackLayout, bool) {
	for _, s := range l.Stacks {
		if s.Key == key {
			return s, true
		}
	}
	return StackLayout{}, false
}

// Finite reports whether every coordinate of the layout is a finite number.
// Metrics that are not numeric produce NaN geometry.
func (l Layout) Finite() bool {
	ok := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
	if !ok(l.YDomain[0], l.YDomain[1], l.Bandwidth) {
		return false
	}
	for _, s := range l.Stacks {
		if !ok(s.X, s.Total, s.Tip.Anchor.X, s.Tip.Anchor.Y) {
			return false
		}
		for _, r := range s.Rects {
			if !ok(r.Y0, r.Y1, r.Y, r.Height, r.Width) {
				return false
			}
		}
	}
	for _, ax := range []Axis{l.XAxis, l.YAxis} {
		for _, t := range ax.Ticks {
			if !ok(t.Pos) {
				return false
			}
		}
	}
	return true
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
