// Package bar lays out stacked bar charts.
//
// # Overview
//
// A chart has one stack per category (the distinct values of the key's
// dimension field, in the order they first appear) and one segment per
// metric field. [New] computes everything needed to draw it:
//
//  1. X scale: rounded bands across the plot width with [BandPadding].
//  2. X axis: category labels centered under each band. When any label is
//     wider than a band all labels are rotated by [LabelRotation] degrees,
//     and rotated labels reaching below the bottom margin are truncated.
//  3. Y scale: linear over [0, Headroom × largest stack total].
//  4. Y axis with rounded ticks.
//  5. Colors: a [ColorSpec] resolved once into a label to color mapping.
//  6. Segments: cumulative sums of the metric values, see [Segments].
//  7. Rects: one per segment, as wide as a band.
//  8. Entry animation parameters ([AnimationDelay], [AnimationDuration]).
//  9. Tooltips anchored at the top center of every stack.
//
// The canvas is [Loading] while this happens and [Ready] afterwards.
//
// # Output
//
// The result is a [Layout], a plain value that the [sink] package turns into
// SVG, PNG, PDF or JSON:
//
//	canvas := bar.NewCanvas("#sales", 960, 500, bar.DefaultMargin)
//	chart := bar.New(canvas, records, key, bar.WithColor(bar.ColorFromPalette("#1b9e77", "#d95f02")))
//	svg := sink.RenderSVG(chart.Layout())
//
// Label widths come from a [fonts.Measurer]; the default measures with the
// Go Regular face the SVG output is drawn with.
//
// [sink]: github.com/matzehuels/stackbar/pkg/render/bar/sink
package bar
