package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhartig/photogrid/pkg/cache"
	"github.com/mhartig/photogrid/pkg/photogrid"
)

// PhotoSource supplies the photos to lay out.
type PhotoSource interface {
	ListPhotos(ctx context.Context) ([]photogrid.PhotoLayoutData, error)
}

// PhotoSourceFunc adapts a function to the PhotoSource interface.
type PhotoSourceFunc func(ctx context.Context) ([]photogrid.PhotoLayoutData, error)

// ListPhotos calls f.
func (f PhotoSourceFunc) ListPhotos(ctx context.Context) ([]photogrid.PhotoLayoutData, error) {
	return f(ctx)
}

// StaticSource is a PhotoSource over an in-memory photo slice.
func StaticSource(photos []photogrid.PhotoLayoutData) PhotoSource {
	return PhotoSourceFunc(func(context.Context) ([]photogrid.PhotoLayoutData, error) {
		return photos, nil
	})
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
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

// Execute runs the complete list → filter → layout pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, source PhotoSource, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: List
	listStart := time.Now()
	photos, err := source.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	result.Stats.ListTime = time.Since(listStart)
	result.Stats.PhotoCount = len(photos)

	r.Logger.Info("listed photos",
		"count", len(photos),
		"duration", result.Stats.ListTime)

	// Stage 2: Filter
	photos = opts.Filter.Apply(photos)
	result.Stats.FilteredCount = len(photos)
	if !opts.Filter.IsZero() {
		r.Logger.Info("filtered photos",
			"kept", result.Stats.FilteredCount,
			"dropped", result.Stats.PhotoCount-result.Stats.FilteredCount)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	grid, layoutHit, err := r.LayoutWithCacheInfo(ctx, photos, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Grid = grid
	result.PhotosHash = photosHash(photos)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Breakpoints = len(opts.Breakpoints)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"breakpoints", result.Stats.Breakpoints,
		"photos", result.Stats.FilteredCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// LayoutWithCacheInfo computes a responsive layout with caching and
// returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, photos []photogrid.PhotoLayoutData, opts Options) (*photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData], bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(photosHash(photos), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData]
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	// Compute layout
	grid := photogrid.NewResponsive(photos, opts.Breakpoints, opts.Sizer())
	if !opts.NoGrow {
		grid.GrowToWidth()
	}

	// Cache the result
	if data, err := json.Marshal(grid); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return grid, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, photos []photogrid.PhotoLayoutData, opts Options) (*photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData], error) {
	grid, _, err := r.LayoutWithCacheInfo(ctx, photos, opts)
	return grid, err
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

// photosHash content-hashes a photo set for cache keys.
func photosHash(photos []photogrid.PhotoLayoutData) string {
	data, _ := json.Marshal(photos)
	return cache.Hash(data)
}
