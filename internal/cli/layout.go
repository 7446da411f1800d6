package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhartig/photogrid/pkg/photogrid"
	"github.com/mhartig/photogrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing responsive
// grid layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		source  sourceFlags
		filter  filterFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [photos.json]",
		Short: "Compute a responsive grid layout from a photo set",
		Long: `Compute a responsive grid layout from a photo set.

The layout command packs each photo's rounded aspect-ratio footprint
into one grid per breakpoint column count and writes the combined
responsive layout as JSON. Photos come from a JSON file (or stdin with
"-"), a stored library (--library), or the configured bucket (--bucket).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				source.file = args[0]
			}
			opts.Filter = filter.toSearchFilter()
			return c.runLayout(cmd.Context(), opts, source, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even on a cache hit")

	cmd.Flags().StringVar(&source.library, "library", "", "lay out a stored library by name")
	cmd.Flags().BoolVar(&source.bucket, "bucket", false, "lay out the configured bucket's photos")

	cmd.Flags().IntSliceVar(&opts.Breakpoints, "breakpoints", nil, "breakpoint column counts (default: 3,4,5,8,12)")
	cmd.Flags().IntVar(&opts.ShortEdge, "short-edge", 0, "short-edge unit count for footprint rounding (default: 2)")
	cmd.Flags().StringVar(&opts.Rounding, "rounding", "", "long-edge rounding policy: up (default), half")
	cmd.Flags().BoolVar(&opts.NoGrow, "no-grow", false, "skip the gap-closing grow pass")

	filter.register(cmd)

	return cmd
}

// runLayout loads the photos, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, source sourceFlags, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	mergeLayoutConfig(&opts, cfg)

	src, err := c.newSource(cfg, source, noCache)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeGrid(result.Grid, output); err != nil {
		return err
	}

	printSuccess("Layout complete")
	if output != "" {
		printFile(output)
	}
	printStats(result.Stats.FilteredCount, result.Stats.Breakpoints, result.CacheInfo.LayoutHit)
	if output != "" {
		printNewline()
		printNextStep("Preview", "photogrid preview "+output)
	}

	return nil
}

// mergeLayoutConfig fills unset layout options from the config file.
func mergeLayoutConfig(opts *pipeline.Options, cfg Config) {
	fromCfg := cfg.pipelineOptions()
	if len(opts.Breakpoints) == 0 {
		opts.Breakpoints = fromCfg.Breakpoints
	}
	if opts.ShortEdge == 0 {
		opts.ShortEdge = fromCfg.ShortEdge
	}
	if opts.Rounding == "" {
		opts.Rounding = fromCfg.Rounding
	}
	if !opts.NoGrow {
		opts.NoGrow = fromCfg.NoGrow
	}
}

// writeGrid writes the layout JSON to the output file, or stdout when
// output is empty.
func writeGrid(grid *photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData], output string) error {
	if output == "" {
		return photogrid.WriteJSON(grid, os.Stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output %s: %w", output, err)
	}
	defer f.Close()
	if err := photogrid.WriteJSON(grid, f); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	return nil
}

// filterFlags are the photo-filter flags shared by layout and serve.
type filterFlags struct {
	before    string
	after     string
	minRating int
}

// register adds the filter flags to cmd.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.before, "before", "", "keep photos captured at or before this time (RFC 3339 or 2006-01-02)")
	cmd.Flags().StringVar(&f.after, "after", "", "keep photos captured at or after this time (RFC 3339 or 2006-01-02)")
	cmd.Flags().IntVar(&f.minRating, "min-rating", 0, "keep photos rated at least this value")
}

// toSearchFilter parses the flags into a filter. Unparseable times are
// treated as unset; bad filter input narrows nothing rather than
// failing the layout.
func (f filterFlags) toSearchFilter() photogrid.SearchFilter {
	return photogrid.SearchFilter{
		Before:    parseFilterTime(f.before),
		After:     parseFilterTime(f.after),
		MinRating: f.minRating,
	}
}

// parseFilterTime accepts RFC 3339 or a bare date.
func parseFilterTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
