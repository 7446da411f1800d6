package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mhartig/photogrid/pkg/bucket"
	"github.com/mhartig/photogrid/pkg/httputil"
	"github.com/mhartig/photogrid/pkg/photogrid"
	"github.com/mhartig/photogrid/pkg/pipeline"
	"github.com/mhartig/photogrid/pkg/store"
)

// sourceFlags selects where the photos to lay out come from. Exactly
// one of the fields is used: an explicit file argument wins, then a
// stored library, then the configured bucket.
type sourceFlags struct {
	file    string // photos JSON file, "-" for stdin
	library string // stored library name
	bucket  bool   // list the configured bucket
}

// newSource resolves the flags to a photo source.
func (c *CLI) newSource(cfg Config, flags sourceFlags, noCache bool) (pipeline.PhotoSource, error) {
	switch {
	case flags.file != "":
		return pipeline.PhotoSourceFunc(func(context.Context) ([]photogrid.PhotoLayoutData, error) {
			return readPhotosFile(flags.file)
		}), nil

	case flags.library != "":
		return pipeline.PhotoSourceFunc(func(ctx context.Context) ([]photogrid.PhotoLayoutData, error) {
			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return nil, err
			}
			defer st.Close(ctx)
			lib, err := st.GetByName(ctx, flags.library)
			if err != nil {
				return nil, fmt.Errorf("library %q: %w", flags.library, err)
			}
			return lib.Photos, nil
		}), nil

	case flags.bucket:
		if cfg.Bucket.Endpoint == "" {
			return nil, fmt.Errorf("no bucket endpoint configured (set [bucket] endpoint in the config file)")
		}
		client, err := c.newBucketClient(cfg, noCache)
		if err != nil {
			return nil, err
		}
		return pipeline.PhotoSourceFunc(client.ListResized), nil
	}

	return nil, fmt.Errorf("no photo source: pass a photos file, --library, or --bucket")
}

// newBucketClient creates the bucket client with listing caching under
// the app cache directory.
func (c *CLI) newBucketClient(cfg Config, noCache bool) (*bucket.Client, error) {
	var listingCache *httputil.Cache
	if !noCache {
		if dir, err := cacheDir(); err == nil {
			if hc, err := httputil.NewCache(dir, 0); err == nil {
				listingCache = hc.Namespace("listing")
			}
		}
	}
	return bucket.NewClient(cfg.Bucket.ToClientConfig(), listingCache), nil
}

// newStore creates the configured library store.
func (c *CLI) newStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Store.Path)
	case "mongo":
		if cfg.Store.MongoURI == "" {
			return nil, fmt.Errorf("mongo store requires mongo_uri (or PHOTOGRID_MONGO_URI)")
		}
		db := cfg.Store.MongoDatabase
		if db == "" {
			db = appName
		}
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, db)
	}
	return nil, fmt.Errorf("unknown store backend %q (must be \"file\" or \"mongo\")", cfg.Store.Backend)
}

// readPhotosFile reads a photo array from a JSON file, or stdin when
// path is "-".
func readPhotosFile(path string) ([]photogrid.PhotoLayoutData, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open photos %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return readPhotos(r)
}

// readPhotos decodes a photo array.
func readPhotos(r io.Reader) ([]photogrid.PhotoLayoutData, error) {
	var photos []photogrid.PhotoLayoutData
	if err := json.NewDecoder(r).Decode(&photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	return photos, nil
}
