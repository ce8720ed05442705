package cache

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// DatasetKey identifies records loaded from a source.
	DatasetKey(source string, opts DatasetKeyOpts) string
	// LayoutKey identifies a layout of a dataset.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DatasetKeyOpts are the loading options that change the loaded records.
type DatasetKeyOpts struct {
	Format string `json:"format,omitempty"`
	Sheet  string `json:"sheet,omitempty"`
}

// LayoutKeyOpts are the chart options that change the layout.
type LayoutKeyOpts struct {
	Dimension string     `json:"dimension"`
	Metrics   []string   `json:"metrics"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Margin    [4]float64 `json:"margin"`
	Colors    []string   `json:"colors,omitempty"`
	Tooltip   string     `json:"tooltip,omitempty"`
	Selector  string     `json:"selector,omitempty"`
}

// ArtifactKeyOpts are the render options that change an output.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Static    bool    `json:"static,omitempty"`
	Legend    bool    `json:"legend,omitempty"`
	Popups    bool    `json:"popups,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer builds keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey hashes the source together with the loading options.
func (DefaultKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return hashKey("dataset", source, opts)
}

// LayoutKey hashes the data hash together with the chart options.
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
