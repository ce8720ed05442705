package bar

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/stackbar/pkg/fonts"
)

// Axis geometry, in pixels.
const (
	TickSize    = 6.0
	TickPadding = 3.0

	// LabelRotation is the angle applied to category labels that do not
	// fit their band.
	LabelRotation = 65.0

	// Ellipsis marks a truncated label.
	Ellipsis = "..."

	// slantCos is the cosine the truncation target is divided by. The
	// argument is 25 radians, not degrees.
	slantCos = 0.9912028118634736
)

// Orient is the side of the plot an axis is drawn on.
type Orient string

const (
	Bottom Orient = "bottom"
	Left   Orient = "left"
)

// Tick is one labelled position on an axis.
type Tick struct {
	// Pos is the tick offset along the axis.
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
	// Full is the untruncated label when Label was shortened.
	Full string `json:"full,omitempty"`
}

// Truncated reports whether the label was shortened to fit.
func (t Tick) Truncated() bool { return t.Full != "" }

// Axis is a rendered axis: its ticks, extent and label orientation.
type Axis struct {
	Orient Orient `json:"orient"`
	// OffsetY moves the axis group down; the x axis sits at the plot bottom.
	OffsetY float64    `json:"offset_y,omitempty"`
	Extent  [2]float64 `json:"extent"`
	Ticks   []Tick     `json:"ticks"`
	Rotated bool       `json:"rotated,omitempty"`
}

// DomainPath returns the SVG path of the axis line with its outer ticks.
func (a Axis) DomainPath() string {
	if a.Orient == Left {
		return "M" + ftoa(-TickSize) + "," + ftoa(a.Extent[0]) + "H0V" + ftoa(a.Extent[1]) + "H" + ftoa(-TickSize)
	}
	return "M" + ftoa(a.Extent[0]) + "," + ftoa(TickSize) + "V0H" + ftoa(a.Extent[1]) + "V" + ftoa(TickSize)
}

// bottomAxis places one tick at the center of every band.
func bottomAxis(x XScale, height float64) Axis {
	r0, r1 := x.RangeExtent()
	ax := Axis{Orient: Bottom, OffsetY: height, Extent: [2]float64{r0, r1}}
	band := x.Bandwidth()
	for _, d := range x.Domain() {
		ax.Ticks = append(ax.Ticks, Tick{Pos: x.Scale(d) + band/2, Label: d})
	}
	return ax
}

// leftAxis labels the value scale with nicely rounded ticks.
func leftAxis(y YScale) Axis {
	r0, r1 := y.Range()
	ax := Axis{Orient: Left, Extent: [2]float64{r0, r1}}
	format := y.TickFormat(tickCount)
	for _, v := range y.Ticks(tickCount) {
		ax.Ticks = append(ax.Ticks, Tick{Pos: y.Scale(v), Label: format(v)})
	}
	return ax
}

// needsRotation reports whether any label is wider than the band.
func needsRotation(labels []Tick, band float64, m fonts.Measurer) bool {
	for _, t := range labels {
		if m.Measure(t.Label).Width > band {
			return true
		}
	}
	return false
}

// rotatedHeight is the vertical extent of a label after rotation.
func rotatedHeight(sz fonts.Size) float64 {
	rad := LabelRotation * math.Pi / 180
	return sz.Width*math.Sin(rad) + sz.Height*math.Cos(rad)
}

// fitRotated truncates every rotated label that would extend below the
// bottom margin. It returns the number of labels truncated.
func fitRotated(ticks []Tick, marginBottom float64, m fonts.Measurer) int {
	n := 0
	for i, t := range ticks {
		if rotatedHeight(m.Measure(t.Label)) <= marginBottom {
			continue
		}
		ticks[i].Full = t.Label
		ticks[i].Label = truncateLabel(t.Label, marginBottom, m)
		n++
	}
	return n
}

// truncateLabel probes prefixes of label until one is at least as long as
// the slanted room below the plot, then backs off four characters and
// appends an ellipsis.
func truncateLabel(label string, marginBottom float64, m fonts.Measurer) string {
	limit := marginBottom / slantCos
	runes := utf8.RuneCountInString(label)
	i := 0
	for ; i < runes && m.SubstringLength(label, i) < limit; i++ {
	}
	return prefix(label, max(0, i-4)) + Ellipsis
}

func prefix(s string, n int) string {
	for pos := range s {
		if n == 0 {
			return s[:pos]
		}
		n--
	}
	return s
}
