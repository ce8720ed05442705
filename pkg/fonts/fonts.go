// Package fonts provides the chart typeface and text measurement.
//
// Axis labels are laid out without a browser, so their rendered size comes
// from a real TrueType face: Go Regular from golang.org/x/image, the same
// face the SVG references (and can embed) when drawing the labels.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name of the chart typeface.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the embedded font.
const FallbackFontFamily = `Go, 'Helvetica Neue', Helvetica, Arial, sans-serif`

// DefaultSize is the axis label font size in pixels.
const DefaultSize = 10.0

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularBase64 returns the TTF font data as a base64 string, for use in
// an @font-face data URL. The result is cached after first computation.
func GoRegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
