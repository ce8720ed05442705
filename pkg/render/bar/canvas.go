package bar

import (
	"fmt"
	"strings"
	"sync"
)

// State is the lifecycle state of a canvas.
type State int

const (
	// Loading is set while a chart is being built on the canvas.
	Loading State = iota
	// Ready is set once every mark has been placed.
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "LOADING"
	case Ready:
		return "READY"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "LOADING":
		*s = Loading
	case "READY":
		*s = Ready
	default:
		return fmt.Errorf("unknown canvas state %q", b)
	}
	return nil
}

// Margin is the space between the canvas edge and the plot area.
// Axis labels are drawn inside the margins.
type Margin struct {
	Top    float64 `json:"top" yaml:"top" toml:"top"`
	Right  float64 `json:"right" yaml:"right" toml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom" toml:"bottom"`
	Left   float64 `json:"left" yaml:"left" toml:"left"`
}

// Default canvas geometry.
const (
	DefaultWidth  = 960.0
	DefaultHeight = 500.0
)

// DefaultMargin leaves room for rotated category labels below the plot.
var DefaultMargin = Margin{Top: 20, Right: 20, Bottom: 70, Left: 50}

// Canvas is the drawing surface of one chart: an SVG root with an outer size,
// margins and a LOADING/READY state.
type Canvas struct {
	// Selector locates the container; "#sales" renders as id="sales".
	Selector string
	// OuterWidth and OuterHeight are the full SVG size in pixels.
	OuterWidth  float64
	OuterHeight float64
	Margin      Margin

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// NewCanvas returns a canvas in the Loading state.
// Non-positive sizes fall back to DefaultWidth and DefaultHeight.
func NewCanvas(selector string, width, height float64, margin Margin) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Canvas{Selector: selector, OuterWidth: width, OuterHeight: height, Margin: margin}
}

// ID returns the SVG id derived from the selector.
func (c *Canvas) ID() string {
	id := strings.TrimPrefix(strings.TrimSpace(c.Selector), "#")
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '"' || r == '<' || r == '>' || r == '&' {
			return '-'
		}
		return r
	}, id)
}

// Width is the plot width inside the margins.
func (c *Canvas) Width() float64 {
	return max(0, c.OuterWidth-c.Margin.Left-c.Margin.Right)
}

// Height is the plot height inside the margins.
func (c *Canvas) Height() float64 {
	return max(0, c.OuterHeight-c.Margin.Top-c.Margin.Bottom)
}

// State returns the current lifecycle state.
func (c *Canvas) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState moves the canvas to s and notifies listeners.
func (c *Canvas) SetState(s State) {
	c.mu.Lock()
	c.state = s
	ls := append([]func(State){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range ls {
		fn(s)
	}
}

// OnStateChange registers fn to be called on every SetState.
func (c *Canvas) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}
