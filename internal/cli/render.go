package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/pipeline"
)

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	chart     chartFlags
	output    string // output file (single format), base path (several), or "-" for stdout
	formats   string
	legend    bool
	static    bool
	noPopups  bool
	embedFont bool
	scale     float64
	noCache   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a stacked bar chart to SVG, PNG, PDF or JSON",
		Long: `Render a stacked bar chart from a data file or a MongoDB collection.

The input format is detected from the file extension (.json, .csv, .tsv,
.yaml, .toml, .xlsx) unless --input-format is given. Each record needs the
dimension field and the metric fields named by --dimension and --metric.`,
		Example: `  stackbar render sales.csv -d month -m a,b
  stackbar render sales.xlsx -d month -m a,b -f svg,png -o out/sales
  stackbar render --mongo-uri mongodb://localhost --mongo-db shop --mongo-collection sales -d month -m total
  stackbar render sales.json -c chart.toml -f json -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.chart.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw a legend of metric colors")
	cmd.Flags().BoolVar(&opts.static, "static", false, "omit the entry animation and hover script")
	cmd.Flags().BoolVar(&opts.noPopups, "no-popups", false, "omit tooltip popups")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in the SVG")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	po, err := opts.chart.options(cmd, args)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	if changed("format") || len(po.Formats) == 0 {
		po.Formats = parseFormats(opts.formats)
	}
	if changed("legend") {
		po.Legend = opts.legend
	}
	if changed("static") {
		po.Static = opts.static
	}
	if changed("no-popups") {
		po.NoPopups = opts.noPopups
	}
	if changed("embed-font") {
		po.EmbedFont = opts.embedFont
	}
	if changed("scale") || po.Scale == 0 {
		po.Scale = opts.scale
	}
	if opts.output == "-" && len(po.Formats) != 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(po.Formats))
	}
	po.Logger = c.Logger

	runner, err := c.newRunner(opts.noCache, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if isTerminal(os.Stderr) && opts.output != "-" {
		spinner = newSpinner(ctx, "Rendering "+po.Source())
		spinner.Start()
	}
	p := newProgress(c.Logger)
	result, err := runner.Execute(ctx, po)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := c.out.Write(result.Artifacts[po.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, po.Formats, opts.output, outputName(po))
	if err != nil {
		return err
	}

	p.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	c.printSuccess("Rendered %s", po.Key)
	for _, p := range paths {
		c.printFile(p)
	}
	c.printStats(result.Stats.Records, result.Stats.Stacks, result.CacheInfo.RenderHit)
	if len(args) > 0 {
		c.printNextStep("Browse the stacks", "stackbar preview "+args[0]+" -d "+po.Key.Dimension+" -m "+strings.Join(po.Key.Metrics, ","))
	}
	return nil
}

// writeArtifacts writes each rendered format and returns the paths written.
// A single format goes to output as given; several formats share the base
// path derived from output or the input name.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	if len(formats) == 1 && output != "" {
		paths = append(paths, output)
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths = append(paths, base+"."+f)
		}
	}

	for i, p := range paths {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(p, artifacts[formats[i]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
	}
	return paths, nil
}

// outputName is the name outputs are derived from when no --output is given.
func outputName(opts pipeline.Options) string {
	switch {
	case opts.Input != "":
		return filepath.Base(opts.Input)
	case opts.Mongo != nil && opts.Mongo.Collection != "":
		return opts.Mongo.Collection
	default:
		return "chart"
	}
}

// basePath derives the base output path from the output and input names.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .pdf, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
