// Package sink provides output format renderers for bar chart layouts.
//
// # Overview
//
// A "sink" transforms a computed [bar.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics with entry animation and tooltips
//   - JSON: Layout data export for caching and re-rendering
//   - PNG: Raster image output (pure Go, no external tools)
//   - PDF: Print-ready output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] produces a standalone document with the same structure a
// browser-side chart would build: "x axis" and "y axis" groups, one "stack"
// group per category and one "bar" rect per segment. Bars grow from the plot
// bottom after a short delay using SMIL animations, and every stack has a
// hidden tooltip popup toggled by a small script on mousemove/mouseout.
//
//	svg := sink.RenderSVG(chart.Layout(), sink.WithLegend())
//
// # SVG Options
//
//   - [WithStatic]: Final geometry only; no animation, popups or script
//   - [WithoutPopups]: Omit tooltip popups
//   - [WithLegend]: Draw a metric color key
//   - [WithEmbeddedFont]: Embed the Go Regular face used for label fitting
//
// # JSON Output
//
// [RenderJSON] writes the layout itself; [ParseJSON] reads it back so the
// chart can be redrawn in any format without the source data.
//
// # Raster and PDF Output
//
// [RenderPNG] rasterizes the static SVG with oksvg and draws the labels
// with the Go Regular face. [RenderPDF] converts the static SVG with
// rsvg-convert: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
//
// [bar.Layout]: github.com/matzehuels/stackbar/pkg/render/bar.Layout
package sink
