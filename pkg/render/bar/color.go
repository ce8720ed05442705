package bar

import (
	"slices"

	"github.com/matzehuels/stackbar/pkg/scale"
)

// defaultPalette is cycled over metric labels when no colors are given.
var defaultPalette = [...]string{
	"#98abc5", "#8a89a6", "#7b6888", "#6b486b",
	"#a05d56", "#d0743c", "#ff8c00",
}

// DefaultPalette returns a copy of the default colors.
func DefaultPalette() []string {
	return slices.Clone(defaultPalette[:])
}

// ColorFunc maps a metric label to a CSS color.
type ColorFunc func(label string) string

type colorKind int

const (
	colorDefault colorKind = iota
	colorFunc
	colorPalette
)

// ColorSpec selects how metric labels are colored. The zero value uses the
// default palette.
type ColorSpec struct {
	kind    colorKind
	fn      ColorFunc
	palette []string
}

// ColorFromFunc colors labels with fn.
func ColorFromFunc(fn ColorFunc) ColorSpec {
	if fn == nil {
		return ColorSpec{}
	}
	return ColorSpec{kind: colorFunc, fn: fn}
}

// ColorFromPalette assigns colors to metric labels by position, cycling
// when there are more labels than colors.
func ColorFromPalette(colors ...string) ColorSpec {
	if len(colors) == 0 {
		return ColorSpec{}
	}
	return ColorSpec{kind: colorPalette, palette: slices.Clone(colors)}
}

// Palette returns the explicit palette, or nil for other kinds.
func (c ColorSpec) Palette() []string {
	if c.kind != colorPalette {
		return nil
	}
	return slices.Clone(c.palette)
}

func (c ColorSpec) String() string {
	switch c.kind {
	case colorFunc:
		return "func"
	case colorPalette:
		return "palette"
	}
	return "default"
}

// Resolve returns the label to color mapping for the given metrics.
func (c ColorSpec) Resolve(metrics []string) ColorFunc {
	switch c.kind {
	case colorFunc:
		return c.fn
	case colorPalette:
		return scale.NewOrdinal(metrics, c.palette).Scale
	}
	return scale.NewOrdinal(metrics, defaultPalette[:]).Scale
}
