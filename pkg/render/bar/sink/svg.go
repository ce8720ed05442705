package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stackbar/pkg/fonts"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

const chartCSS = `
    .axis path, .axis line { fill: none; stroke: #000; shape-rendering: crispEdges; }
    .bar { transition: fill 0.15s ease; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static    bool
	popups    bool
	legend    bool
	embedFont bool
	measurer  fonts.Measurer
}

// WithStatic draws every bar at its final geometry, without animation,
// tooltips or scripts. Used for raster and PDF export.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithoutPopups omits the tooltip groups and their script.
func WithoutPopups() SVGOption { return func(r *svgRenderer) { r.popups = false } }

// WithLegend draws a color key for the metrics in the top-right corner.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithEmbeddedFont embeds the Go Regular face as an @font-face data URL so
// labels render with the metrics they were fitted with.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithPopupMeasurer sets the measurer used to size tooltip boxes.
func WithPopupMeasurer(m fonts.Measurer) SVGOption {
	return func(r *svgRenderer) { r.measurer = m }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{popups: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.static {
		r.popups = false
	}
	if r.measurer == nil {
		r.measurer = fonts.Default()
	}
	return r
}

// RenderSVG renders the layout as a standalone SVG document.
//
// The plot is a group translated by the margins holding, in order, the
// "x axis" and "y axis" groups, one "stack" group per category with a
// "bar" rect per segment, and the tooltip popups. Unless [WithStatic] is
// given, each rect starts collapsed at the bottom of the plot and grows to
// its final size with SMIL animations.
func RenderSVG(l bar.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg"%s class="bar" data-state="%s" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		idAttr(l.ID), l.State, num(l.Width), num(l.Height), num(l.Width), num(l.Height))

	renderStyle(&buf, r)

	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)" font-family="%s" font-size="%s">`+"\n",
		num(l.Margin.Left), num(l.Margin.Top), EscapeXML(fonts.FallbackFontFamily), num(fonts.DefaultSize))
	renderXAxis(&buf, l.XAxis)
	renderYAxis(&buf, l.YAxis)
	for i, s := range l.Stacks {
		renderStack(&buf, r, l, i, s)
	}
	if r.legend {
		renderLegend(&buf, l)
	}
	if r.popups {
		for i, s := range l.Stacks {
			renderPopup(&buf, r.measurer, i, s.Tip)
		}
	}
	buf.WriteString("  </g>\n")

	if r.popups {
		renderPopupScript(&buf, l.ID)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStyle(buf *bytes.Buffer, r svgRenderer) {
	buf.WriteString("  <style>")
	if r.embedFont {
		fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.GoRegularBase64())
	}
	buf.WriteString(chartCSS)
	if r.popups {
		buf.WriteString(popupCSS)
	}
	buf.WriteString("\n  </style>\n")
}

func renderXAxis(buf *bytes.Buffer, ax bar.Axis) {
	fmt.Fprintf(buf, `    <g class="x axis" transform="translate(0,%s)">`+"\n", num(ax.OffsetY))
	for _, t := range ax.Ticks {
		fmt.Fprintf(buf, `      <g class="tick" transform="translate(%s,0)">`, num(t.Pos))
		fmt.Fprintf(buf, `<line y2="%s" x2="0" stroke="#000"/>`, num(bar.TickSize))
		if ax.Rotated {
			fmt.Fprintf(buf, `<text y="%s" x="0" dy=".71em" transform="rotate(%s, 0, %s)" style="text-anchor: start">`,
				num(labelOffset), num(bar.LabelRotation), num(labelOffset))
		} else {
			fmt.Fprintf(buf, `<text y="%s" x="0" dy=".71em" style="text-anchor: middle">`, num(labelOffset))
		}
		if t.Truncated() {
			fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(t.Full))
		}
		fmt.Fprintf(buf, "%s</text></g>\n", EscapeXML(t.Label))
	}
	fmt.Fprintf(buf, `      <path class="domain" d="%s" fill="none" stroke="#000"/>`+"\n", ax.DomainPath())
	buf.WriteString("    </g>\n")
}

func renderYAxis(buf *bytes.Buffer, ax bar.Axis) {
	buf.WriteString(`    <g class="y axis">` + "\n")
	for _, t := range ax.Ticks {
		fmt.Fprintf(buf, `      <g class="tick" transform="translate(0,%s)">`, num(t.Pos))
		fmt.Fprintf(buf, `<line x2="%s" y2="0" stroke="#000"/>`, num(-bar.TickSize))
		fmt.Fprintf(buf, `<text x="%s" y="0" dy=".32em" style="text-anchor: end">%s</text></g>`+"\n",
			num(-labelOffset), EscapeXML(t.Label))
	}
	fmt.Fprintf(buf, `      <path class="domain" d="%s" fill="none" stroke="#000"/>`+"\n", ax.DomainPath())
	buf.WriteString("    </g>\n")
}

// labelOffset is the distance between an axis line and its labels.
const labelOffset = bar.TickSize + bar.TickPadding

func renderStack(buf *bytes.Buffer, r svgRenderer, l bar.Layout, i int, s bar.StackLayout) {
	fmt.Fprintf(buf, `    <g class="stack" data-index="%d" data-key="%s" transform="translate(%s,0)">`+"\n",
		i, EscapeXML(s.Key), num(s.X))
	for _, rect := range s.Rects {
		fmt.Fprintf(buf, `      <rect class="bar" data-label="%s" x="0" width="%s" fill="%s"`,
			EscapeXML(rect.Label), num(rect.Width), EscapeXML(rect.Fill))
		if hover, ok := HoverShade(rect.Fill); ok && !r.static {
			fmt.Fprintf(buf, ` data-hover="%s"`, hover)
		}
		if r.static {
			fmt.Fprintf(buf, ` y="%s" height="%s"/>`+"\n", num(rect.Y), num(rect.Height))
			continue
		}
		fmt.Fprintf(buf, ` y="%s" height="0">`+"\n", num(l.Animation.StartY))
		renderAnimate(buf, l.Animation, "y", l.Animation.StartY, rect.Y)
		renderAnimate(buf, l.Animation, "height", 0, rect.Height)
		buf.WriteString("      </rect>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderAnimate(buf *bytes.Buffer, a bar.Animation, attr string, from, to float64) {
	fmt.Fprintf(buf, `        <animate attributeName="%s" from="%s" to="%s" begin="%dms" dur="%dms" calcMode="spline" keyTimes="0;1" keySplines="%s" fill="freeze"/>`+"\n",
		attr, num(from), num(to), a.DelayMS, a.DurationMS, a.KeySplines)
}

// Legend geometry.
const (
	legendSwatch = 18.0
	legendRow    = 20.0
)

func renderLegend(buf *bytes.Buffer, l bar.Layout) {
	buf.WriteString(`    <g class="legend">` + "\n")
	for i := len(l.Legend) - 1; i >= 0; i-- {
		e := l.Legend[i]
		row := float64(len(l.Legend)-1-i) * legendRow
		fmt.Fprintf(buf, `      <g transform="translate(0,%s)"><rect x="%s" width="%s" height="%s" fill="%s"/>`,
			num(row), num(l.PlotWidth-legendSwatch), num(legendSwatch), num(legendSwatch), EscapeXML(e.Color))
		fmt.Fprintf(buf, `<text x="%s" y="9" dy=".35em" style="text-anchor: end">%s</text></g>`+"\n",
			num(l.PlotWidth-legendSwatch-6), EscapeXML(e.Label))
	}
	buf.WriteString("    </g>\n")
}

// HoverShade returns fill darkened in Lab space, for highlighting a bar
// under the pointer. ok is false when fill is not a hex color.
func HoverShade(fill string) (string, bool) {
	c, err := colorful.Hex(fill)
	if err != nil {
		return "", false
	}
	return c.BlendLab(colorful.Color{}, 0.2).Clamped().Hex(), true
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return ` id="` + EscapeXML(id) + `"`
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// lines splits tooltip content into display lines.
func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
