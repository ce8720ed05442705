// Package render provides format conversion shared by the chart sinks.
//
// # Overview
//
// Charts are drawn as SVG first. This package turns SVG documents into other
// formats:
//
//   - [Rasterize] draws the shapes of an SVG into an image using
//     github.com/srwiley/oksvg and github.com/srwiley/rasterx, with no
//     external tools. [EncodePNG] writes the image as PNG.
//   - [ToPDF] converts an SVG using the external rsvg-convert tool (from
//     librsvg), which renders text and fonts faithfully.
//
//	img, err := render.Rasterize(svg, 1920, 1000, color.White)
//	png, err := render.EncodePNG(img)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Bar Charts
//
// The [bar] subpackage lays out stacked bar charts; [bar/sink] exports a
// layout as SVG, PNG, PDF or JSON.
//
// [bar]: github.com/matzehuels/stackbar/pkg/render/bar
// [bar/sink]: github.com/matzehuels/stackbar/pkg/render/bar/sink
package render
