package scale

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTickCount is the approximate number of ticks Ticks aims for.
const DefaultTickCount = 10

// Linear maps a continuous domain [d0, d1] onto a pixel range [r0, r1].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale.
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the input interval.
func (l *Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the output interval.
func (l *Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Scale maps v to the output range. A zero-width domain maps every value to
// the start of the range.
func (l *Linear) Scale(v float64) float64 {
	span := l.d1 - l.d0
	t := 0.0
	if span != 0 {
		t = (v - l.d0) / span
	}
	return l.r0 + t*(l.r1-l.r0)
}

// Invert maps an output value back to the domain.
func (l *Linear) Invert(px float64) float64 {
	span := l.r1 - l.r0
	t := 0.0
	if span != 0 {
		t = (px - l.r0) / span
	}
	return l.d0 + t*(l.d1-l.d0)
}

// Ticks returns roughly count round values inside the domain.
// The step is a power of ten times 1, 2 or 5.
func (l *Linear) Ticks(count int) []float64 {
	lo, hi, step := l.tickRange(count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}
	var ticks []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v >= hi {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// TickFormat returns a formatter matching the precision of the tick step,
// with thousands grouping ("1,500", "0.25").
func (l *Linear) TickFormat(count int) func(float64) string {
	_, _, step := l.tickRange(count)
	precision := 0
	if step > 0 && !math.IsInf(step, 0) {
		precision = max(0, -int(math.Floor(math.Log10(step)+0.01)))
	}
	p := message.NewPrinter(language.English)
	format := fmt.Sprintf("%%.%df", precision)
	return func(v float64) string {
		return p.Sprintf(format, v)
	}
}

func (l *Linear) tickRange(count int) (lo, hi, step float64) {
	if count <= 0 {
		count = DefaultTickCount
	}
	lo, hi = math.Min(l.d0, l.d1), math.Max(l.d0, l.d1)
	span := hi - lo
	if span <= 0 || math.IsNaN(span) {
		return lo, hi, 0
	}
	m := float64(count)
	step = math.Pow(10, math.Floor(math.Log10(span/m)))
	switch err := m / span * step; {
	case err <= 0.15:
		step *= 10
	case err <= 0.35:
		step *= 5
	case err <= 0.75:
		step *= 2
	}
	lo = math.Ceil(lo/step) * step
	hi = math.Floor(hi/step)*step + step*0.5
	return lo, hi, step
}
