// Package pipeline provides the core layout pipeline for Photogrid.
//
// This package implements the complete list → filter → layout pipeline
// that can be used by CLI, API, and worker components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. List: Fetch photo descriptors from a source (bucket, store, file)
//  2. Filter: Narrow the photo set by capture time and rating
//  3. Layout: Pack one grid per breakpoint into a responsive layout
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Breakpoints: []int{3, 4, 5, 8, 12},
//	    ShortEdge:   2,
//	}
//	result, err := runner.Execute(ctx, source, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grid := result.Grid
//
// Run the layout stage with photos you already have:
//
//	grid, err := runner.Layout(ctx, photos, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhartig/photogrid/pkg/cache"
	"github.com/mhartig/photogrid/pkg/errors"
	"github.com/mhartig/photogrid/pkg/geom"
	"github.com/mhartig/photogrid/pkg/photogrid"
)

// DefaultRounding is the default long-edge rounding policy.
const DefaultRounding = "up"

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Breakpoints []int  `json:"breakpoints,omitempty"`
	ShortEdge   int    `json:"short_edge,omitempty"`
	Rounding    string `json:"rounding,omitempty"`
	NoGrow      bool   `json:"no_grow,omitempty"` // Skip the gap-closing grow pass

	// Filter options
	Filter photogrid.SearchFilter `json:"-"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	// policy is the parsed rounding policy, set during validation.
	policy geom.RoundingPolicy `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the computed responsive layout.
	Grid *photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData]

	// PhotosHash is the content hash of the filtered photo set.
	PhotosHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PhotoCount    int // Photos returned by the source
	FilteredCount int // Photos remaining after the filter
	Breakpoints   int
	ListTime      time.Duration
	LayoutTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Breakpoints) == 0 {
		o.Breakpoints = photogrid.DefaultBreakpoints
	}
	if err := errors.ValidateBreakpoints(o.Breakpoints); err != nil {
		return err
	}

	if o.ShortEdge == 0 {
		o.ShortEdge = photogrid.DefaultShortEdge
	}
	if err := errors.ValidateShortEdge(o.ShortEdge); err != nil {
		return err
	}

	if o.Rounding == "" {
		o.Rounding = DefaultRounding
	}
	policy, err := geom.ParseRoundingPolicy(o.Rounding)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid rounding policy")
	}
	o.policy = policy

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Sizer returns the per-breakpoint sizing rule the options describe.
func (o *Options) Sizer() photogrid.Sizer[photogrid.PhotoLayoutData] {
	return photogrid.DefaultSizer(o.ShortEdge, o.policy)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Breakpoints: o.Breakpoints,
		ShortEdge:   o.ShortEdge,
		Rounding:    o.Rounding,
		Grow:        !o.NoGrow,
	}
}
