package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/stackbar/pkg/dataset"
	apperrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// chartFlags are the data source and layout flags shared by render,
// inspect and preview.
type chartFlags struct {
	config      string
	inputFormat string
	sheet       string
	mongoURI    string
	mongoDB     string
	mongoColl   string
	dimension   string
	metrics     string
	selector    string
	width       float64
	height      float64
	margin      string
	colors      string
	tooltip     string
	refresh     bool
}

func (f *chartFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "chart config file (.toml or .yaml)")
	fs.StringVar(&f.inputFormat, "input-format", "", "input format: json, csv, tsv, yaml, toml, xlsx (default: from extension)")
	fs.StringVar(&f.sheet, "sheet", "", "xlsx worksheet (default: first sheet)")
	fs.StringVar(&f.mongoURI, "mongo-uri", "", "read records from MongoDB (mongodb://...)")
	fs.StringVar(&f.mongoDB, "mongo-db", "", "MongoDB database")
	fs.StringVar(&f.mongoColl, "mongo-collection", "", "MongoDB collection")
	fs.StringVarP(&f.dimension, "dimension", "d", "", "category field")
	fs.StringVarP(&f.metrics, "metric", "m", "", "metric field(s) to stack (comma-separated)")
	fs.StringVar(&f.selector, "id", "", "id of the root svg element")
	fs.Float64Var(&f.width, "width", bar.DefaultWidth, "canvas width")
	fs.Float64Var(&f.height, "height", bar.DefaultHeight, "canvas height")
	fs.StringVar(&f.margin, "margin", "", "margins as top,right,bottom,left (default 20,20,70,50)")
	fs.StringVar(&f.colors, "colors", "", "palette of hex colors assigned to metrics in order (comma-separated)")
	fs.StringVar(&f.tooltip, "tooltip", "", "tooltip template, e.g. '{{.Key}}: {{.Total}}'")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options builds pipeline options from the config file, the input argument
// and the flags, in increasing order of precedence.
func (f *chartFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		cfg, err := loadConfig(f.config)
		if err != nil {
			return opts, err
		}
		cfg.apply(&opts)
	}

	switch {
	case len(args) > 0:
		opts.Input = args[0]
		opts.InputFormat = f.inputFormat
		opts.Sheet = f.sheet
	case f.mongoURI != "":
		opts.Mongo = &dataset.MongoSource{URI: f.mongoURI, Database: f.mongoDB, Collection: f.mongoColl}
	default:
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "an input file or --mongo-uri is required")
	}

	changed := cmd.Flags().Changed
	if changed("dimension") {
		opts.Key.Dimension = f.dimension
	}
	if changed("metric") {
		opts.Key.Metrics = splitList(f.metrics)
	}
	if changed("id") {
		opts.Selector = f.selector
	}
	if changed("width") || opts.Width == 0 {
		opts.Width = f.width
	}
	if changed("height") || opts.Height == 0 {
		opts.Height = f.height
	}
	if changed("margin") {
		m, err := parseMargin(f.margin)
		if err != nil {
			return opts, err
		}
		opts.Margin = &m
	}
	if changed("colors") {
		opts.Colors = splitList(f.colors)
	}
	if changed("tooltip") {
		opts.Tooltip = f.tooltip
	}
	opts.Refresh = f.refresh
	return opts, nil
}
