package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mhartig/photogrid/pkg/cache"
	"github.com/mhartig/photogrid/pkg/photogrid"
	"github.com/mhartig/photogrid/pkg/pipeline"
)

// serveCommand creates the serve command for exposing layouts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		source  sourceFlags
		filter  filterFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve [photos.json]",
		Short: "Serve computed layouts over HTTP",
		Long: `Serve computed layouts over HTTP.

The serve command computes the responsive layout once at startup and
exposes it read-only:

  GET /grid       the layout JSON (?refresh=1 recomputes and swaps it in)
  GET /healthz    liveness check

A recompute builds a whole new layout and publishes it atomically;
in-flight readers keep the snapshot they started with.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				source.file = args[0]
			}
			opts.Filter = filter.toSearchFilter()
			return c.runServe(cmd.Context(), addr, opts, source, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&source.library, "library", "", "serve a stored library by name")
	cmd.Flags().BoolVar(&source.bucket, "bucket", false, "serve the configured bucket's photos")
	filter.register(cmd)

	return cmd
}

// gridServer holds the atomically published layout snapshot.
type gridServer struct {
	runner *pipeline.Runner
	source pipeline.PhotoSource
	opts   pipeline.Options
	logger *log.Logger

	grid atomic.Pointer[photogrid.ResponsivePhotoGrid[photogrid.PhotoLayoutData]]
}

// runServe computes the initial layout and blocks serving it until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, opts pipeline.Options, source sourceFlags, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	mergeLayoutConfig(&opts, cfg)

	src, err := c.newSource(cfg, source, noCache)
	if err != nil {
		return err
	}

	runner, err := c.newServeRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	srv := &gridServer{runner: runner, source: src, opts: opts, logger: c.Logger}

	if err := srv.rebuild(ctx, false); err != nil {
		return fmt.Errorf("initial layout: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving layouts", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeRunner prefers the configured Redis cache for server
// deployments and falls back to the CLI file cache.
func (c *CLI) newServeRunner(ctx context.Context, cfg Config, noCache bool) (*pipeline.Runner, error) {
	if !noCache && cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(rc, nil, c.Logger), nil
	}
	return c.newRunner(noCache)
}

// rebuild recomputes the layout and publishes the replacement.
func (s *gridServer) rebuild(ctx context.Context, refresh bool) error {
	opts := s.opts
	opts.Refresh = refresh
	result, err := s.runner.Execute(ctx, s.source, opts)
	if err != nil {
		return err
	}
	s.grid.Store(result.Grid)
	return nil
}

// routes builds the chi router.
func (s *gridServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/grid", s.handleGrid)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// handleGrid serves the current layout snapshot, recomputing first when
// ?refresh=1 is passed.
func (s *gridServer) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		if err := s.rebuild(r.Context(), true); err != nil {
			s.logger.Error("refresh failed", "error", err)
			http.Error(w, "refresh failed", http.StatusBadGateway)
			return
		}
	}

	grid := s.grid.Load()
	if grid == nil {
		http.Error(w, "layout not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := photogrid.WriteJSON(grid, w); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

// handleHealthz reports liveness and whether a layout is published.
func (s *gridServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"ready":  s.grid.Load() != nil,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

// requestIDHeader carries the per-request correlation ID.
const requestIDHeader = "X-Request-Id"

// requestID assigns each request a correlation ID, honoring one already
// set by an upstream proxy.
func (s *gridServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// logRequests logs each request with its correlation ID and duration.
func (s *gridServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"id", requestIDFrom(r.Context()),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
