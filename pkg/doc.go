// Package pkg provides the core libraries for stackbar stacked bar charts.
//
// # Overview
//
// stackbar turns tabular records into stacked bar charts: one bar per
// category, one segment per metric, with axes, colors, tooltips and an entry
// animation. The pkg directory is organized into four areas:
//
//  1. [dataset] - Records, keys and stacks; loaders for files and MongoDB
//  2. [scale], [fonts] - Band, linear and ordinal scales; text measurement
//  3. [render/bar] - Chart layout and its sinks (SVG, PNG, PDF, JSON)
//  4. [pipeline], [cache], [server] - Load → layout → render with caching,
//     served over HTTP
//
// # Architecture
//
//	CSV / JSON / YAML / TOML / XLSX / MongoDB
//	         ↓
//	    [dataset] package (records grouped into stacks)
//	         ↓
//	    [render/bar] package (scales, axes, segments, tooltips)
//	         ↓
//	    [render/bar/sink] package
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	records := []dataset.Record{
//	    {"month": "Jan", "a": 2, "b": 3},
//	    {"month": "Feb", "a": 1, "b": 4},
//	}
//	key := dataset.Key{Dimension: "month", Metrics: dataset.Metrics{"a", "b"}}
//
//	chart := bar.New(bar.NewCanvas("sales", 960, 500, bar.DefaultMargin), records, key)
//	svg := sink.RenderSVG(chart.Layout())
//
// # Main Packages
//
// [dataset] - [dataset.Record] is one input row; [dataset.DataSet] groups
// rows into stacks by their dimension value and sums metric values per
// stack. [dataset.Load] reads JSON, CSV, TSV, YAML, TOML and XLSX files;
// [dataset.ReadMongo] reads a MongoDB collection.
//
// [scale] - d3-style band scale with rounded bands, linear scale with nice
// ticks and tick formatting, and an ordinal color scale.
//
// [fonts] - Text measurement with the Go Regular face, used to decide label
// rotation and truncation without a browser.
//
// [render/bar] - [bar.New] builds a [bar.Chart] and its immutable
// [bar.Layout]. The Layout carries every coordinate, fill, tooltip and the
// animation parameters.
//
// [render/bar/sink] - Exports a Layout as animated SVG, PNG, PDF or JSON.
//
// [pipeline] - Load → layout → render with per-stage caching, shared by
// the CLI and the HTTP service.
//
// [cache] - File, Redis and null caches with content-hash keys.
//
// [server] - The HTTP render service.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured error codes and input validation.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/render/bar/... # Specific package
//	go test -run Example ./...   # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/dataset
// [scale]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/scale
// [fonts]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/fonts
// [render/bar]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/render/bar
// [render/bar/sink]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/render/bar/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackbar/pkg/errors
package pkg
