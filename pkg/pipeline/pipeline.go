// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP render service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read records from inline data, a file or a MongoDB collection
//  2. Layout: build the chart with [bar.New] and keep its [bar.Layout]
//  3. Render: produce the requested formats (SVG, PNG, PDF, JSON) concurrently
//
// Every stage is cached through a [cache.Cache] keyed by a content hash of its
// inputs, so repeated renders of the same data and options are served from
// the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "sales.csv",
//	    Key:     dataset.Key{Dimension: "month", Metrics: dataset.Metrics{"a", "b"}},
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/dataset"
	apperrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// DefaultScale is the PNG pixel density used when Options.Scale is zero.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
// It doubles as the JSON body of the render service.
type Options struct {
	// Load options. Exactly one of Records, Input and Mongo is used, in
	// that order of precedence.
	Records     []dataset.Record     `json:"records,omitempty"`
	Input       string               `json:"-"`
	InputFormat string               `json:"input_format,omitempty"`
	Sheet       string               `json:"sheet,omitempty"`
	Mongo       *dataset.MongoSource `json:"-"`
	Refresh     bool                 `json:"refresh,omitempty"`

	// Layout options
	Key      dataset.Key `json:"key"`
	Selector string      `json:"selector,omitempty"`
	Width    float64     `json:"width,omitempty"`
	Height   float64     `json:"height,omitempty"`
	Margin   *bar.Margin `json:"margin,omitempty"`
	Colors   []string    `json:"colors,omitempty"`
	Tooltip  string      `json:"tooltip,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Static    bool     `json:"static,omitempty"`
	Legend    bool     `json:"legend,omitempty"`
	NoPopups  bool     `json:"no_popups,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Scale     float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and service responses.
	ID string

	// DataHash is the content hash of the loaded records.
	DataHash string

	// Layout is the computed chart geometry.
	Layout bar.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Stacks     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // records came from cache
	LayoutHit bool // layout came from cache
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a record source is given.
func (o *Options) ValidateForLoad() error {
	switch {
	case len(o.Records) > 0:
	case o.Input != "":
		if err := apperrors.ValidatePath(o.Input); err != nil {
			return err
		}
	case o.Mongo != nil:
		if o.Mongo.URI == "" {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "mongo source needs a uri")
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "records, an input file or a mongo source is required")
	}
	o.setLogger()
	return nil
}

// ValidateForLayout checks the key and colors and applies size defaults.
func (o *Options) ValidateForLayout() error {
	if err := o.Key.Validate(); err != nil {
		return err
	}
	if err := apperrors.ValidateColors(o.Colors); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "width and height must not be negative")
	}
	if o.Width == 0 {
		o.Width = bar.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = bar.DefaultHeight
	}
	if o.Margin == nil {
		m := bar.DefaultMargin
		o.Margin = &m
	}
	o.setLogger()
	return nil
}

// ValidateForRender checks the formats and applies render defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Source describes where records come from, for logs and cache keys.
func (o *Options) Source() string {
	switch {
	case len(o.Records) > 0:
		return "inline"
	case o.Input != "":
		return o.Input
	case o.Mongo != nil:
		return o.Mongo.URI + "/" + o.Mongo.Database + "." + o.Mongo.Collection
	}
	return ""
}

// DatasetKeyOpts returns cache key options for loading.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	return cache.DatasetKeyOpts{Format: o.InputFormat, Sheet: o.Sheet}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Dimension: o.Key.Dimension,
		Metrics:   o.Key.Metrics,
		Width:     o.Width,
		Height:    o.Height,
		Colors:    o.Colors,
		Tooltip:   o.Tooltip,
		Selector:  o.Selector,
	}
	if o.Margin != nil {
		k.Margin = [4]float64{o.Margin.Top, o.Margin.Right, o.Margin.Bottom, o.Margin.Left}
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Options a format ignores are left out so they do not split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Static = o.Static
		k.Legend = o.Legend
		k.Popups = !o.NoPopups && !o.Static
		k.EmbedFont = o.EmbedFont
	case FormatPDF:
		k.Legend = o.Legend
	case FormatPNG:
		k.Legend = o.Legend
		k.Scale = o.Scale
	}
	return k
}
