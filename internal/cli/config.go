package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mhartig/photogrid/pkg/bucket"
	"github.com/mhartig/photogrid/pkg/pipeline"
)

// Config is the photogrid config file, loaded from
// ~/.config/photogrid/config.toml (or --config). Every section is
// optional; flags override config values, which override defaults.
//
// Example:
//
//	[layout]
//	breakpoints = [3, 4, 5, 8, 12]
//	short_edge = 2
//	rounding = "up"
//
//	[bucket]
//	endpoint = "https://photos.example.com"
//	prefix = "resized/"
//
//	[store]
//	backend = "file"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Bucket BucketConfig `toml:"bucket"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig configures the packing pipeline.
type LayoutConfig struct {
	Breakpoints []int  `toml:"breakpoints"`
	ShortEdge   int    `toml:"short_edge"`
	Rounding    string `toml:"rounding"`
	NoGrow      bool   `toml:"no_grow"`
}

// BucketConfig configures the object-storage photo source.
type BucketConfig struct {
	Endpoint   string `toml:"endpoint"`
	PublicHost string `toml:"public_host"`
	Prefix     string `toml:"prefix"`
}

// ToClientConfig converts to the bucket package's config type.
func (b BucketConfig) ToClientConfig() bucket.Config {
	return bucket.Config{
		Endpoint:   b.Endpoint,
		PublicHost: b.PublicHost,
		Prefix:     b.Prefix,
	}
}

// StoreConfig configures library persistence.
type StoreConfig struct {
	// Backend selects the store implementation: "file" (default) or
	// "mongo".
	Backend string `toml:"backend"`

	// Path is the library directory for the file backend.
	Path string `toml:"path"`

	// MongoURI and MongoDatabase configure the mongo backend. The URI
	// can also come from PHOTOGRID_MONGO_URI so credentials stay out of
	// the config file.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig configures the layout cache backend.
type CacheConfig struct {
	// RedisURL switches the layout cache from the file backend to
	// Redis. Can also come from PHOTOGRID_REDIS_URL.
	RedisURL string `toml:"redis_url"`
}

// loadConfig reads the config file. A missing file yields the zero
// Config; only a malformed file is an error. Environment variables
// override secrets after decoding.
func (c *CLI) loadConfig() (Config, error) {
	var cfg Config

	path := c.ConfigPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays secret-bearing settings from the environment.
func (cfg *Config) applyEnv() {
	if uri := os.Getenv("PHOTOGRID_MONGO_URI"); uri != "" {
		cfg.Store.MongoURI = uri
	}
	if url := os.Getenv("PHOTOGRID_REDIS_URL"); url != "" {
		cfg.Cache.RedisURL = url
	}
}

// pipelineOptions builds pipeline options from the config's layout
// section. Unset fields stay zero so the pipeline applies its own
// defaults.
func (cfg Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Breakpoints: cfg.Layout.Breakpoints,
		ShortEdge:   cfg.Layout.ShortEdge,
		Rounding:    cfg.Layout.Rounding,
		NoGrow:      cfg.Layout.NoGrow,
	}
}
