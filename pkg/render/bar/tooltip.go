package bar

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"github.com/matzehuels/stackbar/pkg/dataset"
)

// TooltipMissing is shown for every stack when no tooltip function is set.
const TooltipMissing = "Tooltip missing!"

// TooltipFunc returns the tooltip text for a stack.
type TooltipFunc func(s dataset.Stack) string

// Anchor is the point a tooltip points at, in plot coordinates.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tip is the resolved tooltip of one stack.
type Tip struct {
	Key     string `json:"key"`
	Content string `json:"content"`
	Anchor  Anchor `json:"anchor"`
}

// Tooltip shows and hides the annotation of a single stack at a time.
// Show and Hide are idempotent and safe for concurrent use.
type Tooltip struct {
	resolve func(key string) (Tip, bool)

	mu      sync.Mutex
	visible bool
	current Tip
}

// NewTooltip returns a hidden tooltip that resolves tips with resolve.
func NewTooltip(resolve func(key string) (Tip, bool)) *Tooltip {
	return &Tooltip{resolve: resolve}
}

// Show displays the tip for key and returns it. Unknown keys hide the
// tooltip and return false.
func (t *Tooltip) Show(key string) (Tip, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible && t.current.Key == key {
		return t.current, true
	}
	tip, ok := t.resolve(key)
	if !ok {
		t.visible, t.current = false, Tip{}
		return Tip{}, false
	}
	t.visible, t.current = true, tip
	return tip, true
}

// Hide hides the tooltip.
func (t *Tooltip) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible, t.current = false, Tip{}
}

// Visible returns the shown tip, if any.
func (t *Tooltip) Visible() (Tip, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.visible
}

// TooltipData is the value a tooltip template is executed with.
type TooltipData struct {
	Key      string
	Total    float64
	Values   map[string]float64
	Segments []Segment
	Records  []dataset.Record
}

// TemplateTooltip compiles text as a text/template and returns a TooltipFunc
// executing it for the stacks of a chart keyed by key. Execution errors are
// rendered in place of the content.
func TemplateTooltip(text string, key dataset.Key) (TooltipFunc, error) {
	tmpl, err := template.New("tooltip").Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse tooltip template: %w", err)
	}
	return func(s dataset.Stack) string {
		data := TooltipData{
			Key:      s.Key,
			Total:    s.Total(),
			Values:   make(map[string]float64, len(key.Metrics)),
			Segments: Segments(s, key),
			Records:  s.Records,
		}
		for i, m := range key.Metrics {
			if i < len(s.Values) {
				data.Values[m] = s.Values[i]
			}
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Sprintf("tooltip: %v", err)
		}
		return buf.String()
	}, nil
}
