package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackbar/pkg/dataset"
	apperrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/render/bar"
)

// chartConfig is a chart description read from --config. Command-line flags
// override its values.
//
//	[key]
//	dimension = "month"
//	metric = ["a", "b"]
//
//	width = 960
//	colors = ["#98abc5", "#8a89a6"]
//	tooltip = "{{.Key}}: {{.Total}}"
//	formats = ["svg", "png"]
type chartConfig struct {
	Key       dataset.Key `toml:"key" yaml:"key"`
	Selector  string      `toml:"selector" yaml:"selector"`
	Width     float64     `toml:"width" yaml:"width"`
	Height    float64     `toml:"height" yaml:"height"`
	Margin    *bar.Margin `toml:"margin" yaml:"margin"`
	Colors    []string    `toml:"colors" yaml:"colors"`
	Tooltip   string      `toml:"tooltip" yaml:"tooltip"`
	Formats   []string    `toml:"formats" yaml:"formats"`
	Legend    bool        `toml:"legend" yaml:"legend"`
	Static    bool        `toml:"static" yaml:"static"`
	Popups    *bool       `toml:"popups" yaml:"popups"`
	EmbedFont bool        `toml:"embed_font" yaml:"embed_font"`
	Scale     float64     `toml:"scale" yaml:"scale"`
}

// loadConfig reads a TOML or YAML chart config, chosen by file extension.
func loadConfig(path string) (chartConfig, error) {
	var cfg chartConfig
	if err := apperrors.ValidatePath(path); err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, apperrors.New(apperrors.ErrCodeInvalidConfig, "unsupported config file %q (want .toml, .yaml or .yml)", filepath.Base(path))
	}
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	return cfg, nil
}

// apply copies the config into pipeline options.
func (cfg chartConfig) apply(opts *pipeline.Options) {
	opts.Key = cfg.Key
	opts.Selector = cfg.Selector
	opts.Width = cfg.Width
	opts.Height = cfg.Height
	opts.Margin = cfg.Margin
	opts.Colors = cfg.Colors
	opts.Tooltip = cfg.Tooltip
	opts.Formats = cfg.Formats
	opts.Legend = cfg.Legend
	opts.Static = cfg.Static
	opts.NoPopups = cfg.Popups != nil && !*cfg.Popups
	opts.EmbedFont = cfg.EmbedFont
	opts.Scale = cfg.Scale
}

// parseMargin parses "top,right,bottom,left".
func parseMargin(s string) (bar.Margin, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return bar.Margin{}, apperrors.New(apperrors.ErrCodeInvalidInput, "margin must be top,right,bottom,left, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f < 0 {
			return bar.Margin{}, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid margin value %q", p)
		}
		v[i] = f
	}
	return bar.Margin{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
