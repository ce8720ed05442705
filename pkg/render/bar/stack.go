package bar

import "github.com/matzehuels/stackbar/pkg/dataset"

// Segment is one metric's slice of a stack, spanning [Y0, Y1] in data units.
type Segment struct {
	Label string  `json:"label"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
}

// Value returns the metric value the segment represents.
func (s Segment) Value() float64 { return s.Y1 - s.Y0 }

// Segments stacks the metric values of s in key order. Each segment starts
// where the previous one ended; the first starts at zero.
func Segments(s dataset.Stack, key dataset.Key) []Segment {
	segs := make([]Segment, 0, len(key.Metrics))
	var sum float64
	for i, m := range key.Metrics {
		var v float64
		if i < len(s.Values) {
			v = s.Values[i]
		}
		y0 := sum
		sum += v
		segs = append(segs, Segment{Label: m, Y0: y0, Y1: sum})
	}
	return segs
}
