package pipeline

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/render"
	"github.com/matzehuels/stackbar/pkg/render/bar"
	"github.com/matzehuels/stackbar/pkg/render/bar/sink"
)

// RenderFormat renders one output format from a layout.
func RenderFormat(ctx context.Context, l bar.Layout, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		if !render.HasRSVG() {
			return nil, apperrors.New(apperrors.ErrCodeUnsupported, "pdf output requires rsvg-convert (librsvg) on PATH")
		}
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		data, err := sink.RenderJSON(l)
		if errors.Is(err, sink.ErrNonFinite) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "json output needs numeric metric values")
		}
		return data, err
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// Render generates every format in opts.Formats sequentially.
func Render(ctx context.Context, l bar.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, l, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout JSON, as
// produced by the json format.
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := sink.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, l, opts)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Static {
		svgOpts = append(svgOpts, sink.WithStatic())
	}
	if opts.NoPopups {
		svgOpts = append(svgOpts, sink.WithoutPopups())
	}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	return svgOpts
}
