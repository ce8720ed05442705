package scale

import "math"

// Band is an ordinal scale that assigns each category a rounded band of a
// pixel range.
type Band struct {
	domain []string
	index  map[string]int
	r0, r1 float64
	start  float64
	step   float64
	band   float64
}

// NewBand builds a band scale over domain spanning [r0, r1].
//
// padding is the fraction of each step left empty between bands; the same
// fraction is used as outer padding at both ends. Step and band widths are
// rounded to whole pixels and the rounding remainder is split evenly between
// both ends.
func NewBand(domain []string, r0, r1, padding float64) *Band {
	b := &Band{index: make(map[string]int, len(domain)), r0: r0, r1: r1}
	for _, d := range domain {
		if _, dup := b.index[d]; dup {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}

	n := float64(len(b.domain))
	if n == 0 {
		b.start = r0
		return b
	}

	lo, hi := math.Min(r0, r1), math.Max(r0, r1)
	b.step = math.Floor((hi - lo) / (n - padding + 2*padding))
	rem := hi - lo - (n-padding)*b.step
	b.start = lo + math.Round(rem/2)
	b.band = math.Round(b.step * (1 - padding))
	if r1 < r0 {
		// reversed range: first category at the high end
		b.start += (n - 1) * b.step
		b.step = -b.step
	}
	return b
}

// Domain returns the distinct categories in insertion order.
func (b *Band) Domain() []string { return b.domain }

// Bandwidth returns the width of every band.
func (b *Band) Bandwidth() float64 { return b.band }

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return math.Abs(b.step) }

// Scale returns the start of the band for category d.
// Unknown categories yield NaN.
func (b *Band) Scale(d string) float64 {
	i, ok := b.index[d]
	if !ok {
		return math.NaN()
	}
	return b.start + float64(i)*b.step
}

// Center returns the middle of the band for category d.
func (b *Band) Center(d string) float64 {
	return b.Scale(d) + b.band/2
}

// Range returns the first and last pixel covered by the bands.
func (b *Band) Range() (float64, float64) {
	if len(b.domain) == 0 {
		return b.start, b.start
	}
	first := b.Scale(b.domain[0])
	last := b.Scale(b.domain[len(b.domain)-1])
	return math.Min(first, last), math.Max(first, last) + b.band
}

// RangeExtent returns the full output range the scale was built with,
// including the outer padding.
func (b *Band) RangeExtent() (float64, float64) { return b.r0, b.r1 }
