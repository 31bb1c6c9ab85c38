// Package cli implements the tubemap command-line interface.
package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/config"
	"github.com/matzehuels/tubemap/pkg/dataset"
	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tubemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands. Config is replaced by the loaded
// settings file before any command runs.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Dataset Loading
// =============================================================================

// dataFlags are the dataset flags shared by every command that reads the CSVs.
type dataFlags struct {
	stations string
	segments string
	raw      bool
}

func (d *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.stations, "stations", "", "station coordinates CSV (default from config)")
	cmd.Flags().StringVar(&d.segments, "segments", "", "line segments CSV (default from config)")
	cmd.Flags().BoolVar(&d.raw, "raw", false, "skip station name normalization")
}

// loadNetwork reads both CSVs, normalizes names unless disabled, and builds
// the network with the configured line colours.
func (c *CLI) loadNetwork(ctx context.Context, d dataFlags) (*transit.Network, error) {
	logger := loggerFromContext(ctx)

	stations := cmp.Or(d.stations, c.Config.Data.Stations)
	segments := cmp.Or(d.segments, c.Config.Data.Segments)
	for _, path := range []string{stations, segments} {
		if err := errors.ValidateDatasetPath(path); err != nil {
			return nil, err
		}
	}

	prog := newProgress(logger)
	ds, err := dataset.Load(stations, segments)
	if err != nil {
		return nil, err
	}
	if c.Config.Data.Normalize && !d.raw {
		dataset.Normalize(ds)
	}
	if ds.DroppedStations > 0 || ds.DroppedSegments > 0 {
		logger.Warn("dropped malformed rows", "stations", ds.DroppedStations, "segments", ds.DroppedSegments)
	}

	n := ds.Network(c.Config.Palette())
	s := n.Summary()
	if s.Unpositioned > 0 {
		logger.Debug("stations without coordinates", "count", s.Unpositioned)
	}
	prog.done(fmt.Sprintf("Loaded %d stations, %d segments on %d lines", s.Stations, s.Segments, s.Lines))
	return n, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for one-shot renders over n.
func (c *CLI) newRunner(ctx context.Context, n *transit.Network, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(n, ch, c.Config.Keyer(), loggerFromContext(ctx)), nil
}

// newCache opens the configured artifact cache. Without a usable cache
// directory the file backend degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	cfg := c.Config.CacheConfig(dir)
	if cfg.Backend == cache.BackendFile && cfg.Dir == "" {
		loggerFromContext(ctx).Debug("no cache directory, caching disabled")
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	return ch, nil
}

// pipelineOptions returns refresh options carrying the configured render
// settings. Callers set Lines and may override the rest.
func (c *CLI) pipelineOptions(ctx context.Context) pipeline.Options {
	r := c.Config.Render
	return pipeline.Options{
		Formats:  r.Formats,
		Width:    r.Width,
		Height:   r.Height,
		PNGScale: r.PNGScale,
		Map:      c.Config.MapOptions(),
		TTL:      c.Config.Cache.TTL,
		Logger:   loggerFromContext(ctx),
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tubemap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseList splits a comma-separated flag value, trimming blanks. Line names
// contain spaces, so only commas separate.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseFormats parses the --format flag. An empty value means the configured
// formats.
func parseFormats(s string) []string {
	formats := parseList(s)
	for i, f := range formats {
		formats[i] = strings.ToLower(f)
	}
	return formats
}
