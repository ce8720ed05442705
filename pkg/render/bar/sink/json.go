package sink

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// ErrNonFinite is returned when a layout holds NaN or infinite coordinates,
// which JSON cannot represent. Metrics that are not numbers cause it.
var ErrNonFinite = errors.New("layout has non-finite coordinates")

// RenderJSON exports the layout as a pretty-printed JSON document.
//
// The document carries everything needed to redraw the chart: canvas size
// and margins, axes with their (possibly truncated) labels, every rect with
// its fill, tooltip anchors and the animation parameters. [ParseJSON] reads
// it back, so a chart can be laid out once and re-rendered in other formats.
func RenderJSON(l bar.Layout) ([]byte, error) {
	if !l.Finite() {
		return nil, ErrNonFinite
	}
	return json.MarshalIndent(l, "", "  ")
}

// ParseJSON reads a layout written by [RenderJSON].
func ParseJSON(data []byte) (bar.Layout, error) {
	var l bar.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return bar.Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	return l, nil
}
