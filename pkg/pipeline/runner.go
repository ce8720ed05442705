package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/observability"
	"github.com/matzehuels/stackbar/pkg/render/bar"
	"github.com/matzehuels/stackbar/pkg/render/bar/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString()}
	logger := opts.Logger.With("run", result.ID[:8])

	// Stage 1: Load
	start := time.Now()
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(start)
	result.Stats.Records = len(records)
	result.CacheInfo.LoadHit = loadHit

	logger.Info("loaded records",
		"source", opts.Source(),
		"records", len(records),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	start = time.Now()
	layout, layoutKey, layoutHit, err := r.layout(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.DataHash = layoutKey.dataHash
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.Stacks = len(layout.Stacks)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"stacks", len(layout.Stacks),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, renderHit, err := r.render(ctx, layout, layoutKey.key, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads records and reports whether they came from cache.
// Only MongoDB sources are cached; files and inline records are cheap to
// read again and would go stale in the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (records []dataset.Record, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	source := opts.Source()
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnLoadComplete(ctx, source, len(records), time.Since(start), err)
	}()

	if len(opts.Records) > 0 || opts.Mongo == nil {
		records, err = Load(ctx, opts)
		return records, false, err
	}

	key := r.Keyer.DatasetKey(source, opts.DatasetKeyOpts())
	if !opts.Refresh {
		if data, ok := r.get(ctx, "dataset", key); ok {
			if cached, err := unmarshalRecords(data); err == nil {
				return cached, true, nil
			}
		}
	}

	records, err = Load(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := marshalRecords(records); err == nil {
		r.set(ctx, "dataset", key, data, cache.TTLDataset)
	}
	return records, false, nil
}

// Layout computes the layout of records with caching.
func (r *Runner) Layout(ctx context.Context, records []dataset.Record, opts Options) (bar.Layout, error) {
	r.applyLogger(&opts)
	l, _, _, err := r.layout(ctx, records, opts)
	return l, err
}

type layoutKey struct {
	dataHash string
	key      string
}

func (r *Runner) layout(ctx context.Context, records []dataset.Record, opts Options) (l bar.Layout, k layoutKey, hit bool, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return bar.Layout{}, k, false, err
	}

	data, err := marshalRecords(records)
	if err != nil {
		return bar.Layout{}, k, false, fmt.Errorf("hash records: %w", err)
	}
	k.dataHash = cache.Hash(data)
	k.key = r.Keyer.LayoutKey(k.dataHash, opts.LayoutKeyOpts())

	observability.Pipeline().OnLayoutStart(ctx, len(records))
	start := time.Now()
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, len(l.Stacks), time.Since(start), err)
	}()

	if !opts.Refresh {
		if cached, ok := r.get(ctx, "layout", k.key); ok {
			if parsed, err := sink.ParseJSON(cached); err == nil {
				return parsed, k, true, nil
			}
		}
	}

	l, err = GenerateLayout(records, opts)
	if err != nil {
		return bar.Layout{}, k, false, err
	}

	encoded, err := sink.RenderJSON(l)
	switch {
	case errors.Is(err, sink.ErrNonFinite):
		opts.Logger.Warn("layout has non-numeric values, not caching", "key", opts.Key.String())
	case err == nil:
		r.set(ctx, "layout", k.key, encoded, cache.TTLLayout)
	}
	return l, k, false, nil
}

// Render renders every requested format of a layout with caching.
// The layout is identified by the layout key it was computed under.
func (r *Runner) Render(ctx context.Context, l bar.Layout, layoutKey string, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	artifacts, _, err := r.render(ctx, l, layoutKey, opts)
	return artifacts, err
}

// render produces the formats concurrently. It reports a hit only when every
// artifact came from the cache.
func (r *Runner) render(ctx context.Context, l bar.Layout, layoutKey string, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	var (
		mu     sync.Mutex
		hits   int
		result = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		format := format
		g.Go(func() error {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			if !opts.Refresh {
				if data, ok := r.get(gctx, "artifact", key); ok {
					mu.Lock()
					result[format] = data
					hits++
					mu.Unlock()
					return nil
				}
			}

			data, err := RenderFormat(gctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			r.set(gctx, "artifact", key, data, cache.TTLArtifact)

			mu.Lock()
			result[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return result, hits == len(opts.Formats), nil
}

// get reads a cache entry, treating cache errors as misses.
func (r *Runner) get(ctx context.Context, kind, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "kind", kind, "err", err)
		ok = false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, kind)
	} else {
		observability.Cache().OnCacheMiss(ctx, kind)
	}
	return data, ok
}

// set writes a cache entry. Failures are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
