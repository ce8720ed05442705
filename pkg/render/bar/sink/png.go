package sink

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/stackbar/pkg/fonts"
	"github.com/matzehuels/stackbar/pkg/render"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts    []SVGOption
	scale      float64
	background color.Color
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground sets the background color (default white).
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the layout at its final geometry. Shapes are drawn
// from the static SVG; axis and legend labels are drawn with the Go Regular
// face, the same face label widths were fitted with.
func RenderPNG(l bar.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}
	svgOpts := append(r.svgOpts, WithStatic())
	svg := RenderSVG(l, svgOpts...)

	w := int(math.Ceil(l.Width * r.scale))
	h := int(math.Ceil(l.Height * r.scale))
	img, err := render.Rasterize(svg, w, h, r.background)
	if err != nil {
		return nil, err
	}

	face, err := fonts.NewFace(fonts.GoRegularTTF(), fonts.DefaultSize*r.scale)
	if err != nil {
		return nil, fmt.Errorf("load label face: %w", err)
	}
	defer face.Close()

	t := textDrawer{dst: img, face: face, scale: r.scale}
	t.xAxis(l)
	t.yAxis(l)
	if newSVGRenderer(svgOpts...).legend {
		t.legend(l)
	}
	return render.EncodePNG(img)
}

// textDrawer draws axis labels onto a raster with the same placement the
// SVG text elements get.
type textDrawer struct {
	dst   *image.RGBA
	face  font.Face
	scale float64
}

// em converts a length in ems of the label font to scaled pixels.
func (t textDrawer) em(v float64) float64 { return v * fonts.DefaultSize * t.scale }

func (t textDrawer) xAxis(l bar.Layout) {
	s := t.scale
	originY := (l.Margin.Top + l.XAxis.OffsetY) * s
	baseline := labelOffset*s + t.em(0.71)
	for _, tick := range l.XAxis.Ticks {
		originX := (l.Margin.Left + tick.Pos) * s
		if l.XAxis.Rotated {
			t.rotated(tick.Label, originX, originY, labelOffset*s, baseline)
			continue
		}
		w := t.width(tick.Label)
		t.draw(tick.Label, originX-w/2, originY+baseline)
	}
}

func (t textDrawer) yAxis(l bar.Layout) {
	s := t.scale
	for _, tick := range l.YAxis.Ticks {
		x := (l.Margin.Left-labelOffset)*s - t.width(tick.Label)
		y := (l.Margin.Top+tick.Pos)*s + t.em(0.32)
		t.draw(tick.Label, x, y)
	}
}

func (t textDrawer) legend(l bar.Layout) {
	s := t.scale
	for i := len(l.Legend) - 1; i >= 0; i-- {
		e := l.Legend[i]
		row := float64(len(l.Legend)-1-i) * legendRow
		right := (l.Margin.Left + l.PlotWidth - legendSwatch - 6) * s
		t.draw(e.Label, right-t.width(e.Label), (l.Margin.Top+row+9)*s+t.em(0.35))
	}
}

func (t textDrawer) width(s string) float64 {
	return float64(font.MeasureString(t.face, s)) / 64
}

func (t textDrawer) draw(s string, x, baseline float64) {
	d := font.Drawer{
		Dst:  t.dst,
		Src:  image.Black,
		Face: t.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(s)
}

// rotated draws s starting at (0, baseline) in a tick's coordinates,
// rotated by bar.LabelRotation around (0, pivot), with the tick origin at
// (ox, oy) in the image.
func (t textDrawer) rotated(s string, ox, oy, pivot, baseline float64) {
	m := t.face.Metrics()
	ascent := float64(m.Ascent) / 64
	w := int(math.Ceil(t.width(s))) + 2
	h := int(math.Ceil(float64(m.Ascent+m.Descent)/64)) + 2
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  src,
		Src:  image.Black,
		Face: t.face,
		Dot:  fixed.Point26_6{X: 64, Y: fixed.Int26_6((1 + ascent) * 64)},
	}
	d.DrawString(s)

	// src pixel (sx, sy) sits at (sx-1, sy-1-ascent+baseline) before rotation.
	rad := bar.LabelRotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	k := baseline - pivot - 1 - ascent
	s2d := f64.Aff3{
		cos, -sin, ox - cos - sin*k,
		sin, cos, oy + pivot - sin + cos*k,
	}
	draw.BiLinear.Transform(t.dst, s2d, src, src.Bounds(), draw.Over, nil)
}
