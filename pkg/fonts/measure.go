package fonts

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Size is the extent of a rendered string in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Measurer reports the rendered size of text.
type Measurer interface {
	// Measure returns the bounding size of s.
	Measure(s string) Size
	// SubstringLength returns the advance width of the first n runes of s.
	SubstringLength(s string, n int) float64
}

// FaceMeasurer measures text with a font.Face.
// It is safe for concurrent use.
type FaceMeasurer struct {
	mu     sync.Mutex
	face   font.Face
	height float64
}

// NewFace parses ttf and returns a face at size pixels.
func NewFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingNone,
	})
}

// NewMeasurer parses ttf and returns a measurer at size pixels.
func NewMeasurer(ttf []byte, size float64) (*FaceMeasurer, error) {
	face, err := NewFace(ttf, size)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &FaceMeasurer{
		face:   face,
		height: toFloat(m.Ascent + m.Descent),
	}, nil
}

var (
	defaultMeasurer     *FaceMeasurer
	defaultMeasurerOnce sync.Once
)

// Default returns a Go Regular measurer at DefaultSize.
// The embedded font is known to parse, so Default panics only on a broken build.
func Default() *FaceMeasurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewMeasurer(GoRegularTTF(), DefaultSize)
		if err != nil {
			panic("fonts: parse Go Regular: " + err.Error())
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// Measure returns the advance width and line height of s.
func (m *FaceMeasurer) Measure(s string) Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Size{Width: toFloat(font.MeasureString(m.face, s)), Height: m.height}
}

// SubstringLength returns the advance width of the first n runes of s.
// n is clamped to [0, rune count].
func (m *FaceMeasurer) SubstringLength(s string, n int) float64 {
	return m.Measure(prefix(s, n)).Width
}

// Monospace measures every rune with the same advance.
// It stands in for a real face where exact glyph metrics do not matter.
type Monospace struct {
	CharWidth  float64
	LineHeight float64
}

// Measure returns the size of s.
func (m Monospace) Measure(s string) Size {
	return Size{Width: float64(utf8.RuneCountInString(s)) * m.CharWidth, Height: m.LineHeight}
}

// SubstringLength returns the width of the first n runes of s.
func (m Monospace) SubstringLength(s string, n int) float64 {
	return m.Measure(prefix(s, n)).Width
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
