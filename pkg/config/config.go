// Package config loads tubemap settings from a TOML file.
//
// Settings are layered: [Default] values first, then the file, then command
// line flags (applied by the CLI). A missing default file is not an error; a
// missing file named with --config is.
//
//	[data]
//	stations  = "london_stations.csv"
//	segments  = "london_lines.csv"
//	normalize = true
//
//	[render]
//	width   = 1500
//	height  = 900
//	formats = ["svg"]
//
//	[lines]
//	initial = ["Central", "Jubilee"]
//	colors  = { "Central" = "#DC241F" }
//
//	[labels]
//	offset  = [0.0, 0.002]
//	offsets = { "Bank" = [-0.002, 0.001] }
//
//	[cache]
//	backend   = "file"   # none, file or redis
//	ttl       = "24h"
//	namespace = "staging"
//
//	[serve]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/render/netmap"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Formats lists every output format the render command can write.
var Formats = []string{"svg", "png", "pdf", "json", "dot"}

// DefaultInitialLines are selected when the explorer starts.
var DefaultInitialLines = []string{"Central", "Waterloo & City", "Piccadilly", "Jubilee"}

// Config is the full settings file.
type Config struct {
	Data   Data   `toml:"data"`
	Render Render `toml:"render"`
	Lines  Lines  `toml:"lines"`
	Labels Labels `toml:"labels"`
	Cache  Cache  `toml:"cache"`
	Serve  Serve  `toml:"serve"`
}

// Data locates the two CSV files.
type Data struct {
	Stations  string `toml:"stations"`
	Segments  string `toml:"segments"`
	Normalize bool   `toml:"normalize"`
}

// Render controls the drawn map.
type Render struct {
	Width         float64  `toml:"width"`
	Height        float64  `toml:"height"`
	Title         string   `toml:"title"`
	Caption       string   `toml:"caption"`
	Formats       []string `toml:"formats"`
	HideDistances bool     `toml:"hide_distances"`
	PNGScale      float64  `toml:"png_scale"`
}

// Lines holds the initial selection and colour overrides.
type Lines struct {
	Initial []string          `toml:"initial"`
	Colors  map[string]string `toml:"colors"`
}

// Labels holds station label offsets in degrees as [dx, dy] pairs.
type Labels struct {
	Offset  []float64            `toml:"offset"`
	Offsets map[string][]float64 `toml:"offsets"`
}

// Cache selects the artifact cache for the render and serve commands.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`

	// Namespace is prepended to every cache key. Changing it starts from
	// an empty cache without deleting the old entries.
	Namespace string `toml:"namespace"`
}

// Serve configures the HTTP server.
type Serve struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Data: Data{
			Stations:  "london_stations.csv",
			Segments:  "london_lines.csv",
			Normalize: true,
		},
		Render: Render{
			Width:    1500,
			Height:   900,
			Title:    netmap.DefaultTitle,
			Caption:  netmap.DefaultCaption,
			Formats:  []string{"svg"},
			PNGScale: 2,
		},
		Lines: Lines{
			Initial: slices.Clone(DefaultInitialLines),
		},
		Labels: Labels{
			Offset: []float64{netmap.DefaultLabelOffset.DX, netmap.DefaultLabelOffset.DY},
		},
		Cache: Cache{
			Backend:   cache.BackendFile,
			RedisAddr: "localhost:6379",
			Prefix:    cache.DefaultRedisPrefix,
			TTL:       24 * time.Hour,
		},
		Serve: Serve{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tubemap/config.toml, falling back to
// the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "tubemap", "config.toml")
}

// Load reads path on top of the defaults and validates the result. An empty
// path loads DefaultPath if it exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := cfg.decode(string(data)); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "parse %s: %s", path, errors.UserMessage(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults and validates the result.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "parse config: %s", errors.UserMessage(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks every section. Errors carry the INVALID_CONFIG code.
func (c *Config) Validate() error {
	invalid := func(err error) error {
		return errors.New(errors.ErrCodeInvalidConfig, "%s", errors.UserMessage(err))
	}

	if err := errors.ValidateDatasetPath(c.Data.Stations); err != nil {
		return invalid(err)
	}
	if err := errors.ValidateDatasetPath(c.Data.Segments); err != nil {
		return invalid(err)
	}
	if err := errors.ValidateDimensions(c.Render.Width, c.Render.Height); err != nil {
		return invalid(err)
	}
	if err := errors.ValidateFormats(c.Render.Formats, Formats); err != nil {
		return invalid(err)
	}
	if c.Render.PNGScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.png_scale must be positive")
	}
	for _, name := range c.Lines.Initial {
		if err := errors.ValidateLineName(name); err != nil {
			return invalid(err)
		}
	}
	for name, color := range c.Lines.Colors {
		if !hexColor.MatchString(color) {
			return errors.New(errors.ErrCodeInvalidConfig, "lines.colors.%q: %q is not a #RRGGBB colour", name, color)
		}
	}
	if len(c.Labels.Offset) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "labels.offset must be [dx, dy]")
	}
	for name, off := range c.Labels.Offsets {
		if len(off) != 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "labels.offsets.%q must be [dx, dy]", name)
		}
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be none, file or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if strings.ContainsAny(c.Cache.Namespace, " \t\r\n") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.namespace cannot contain whitespace, got %q", c.Cache.Namespace)
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.addr cannot be empty")
	}
	return nil
}

// Palette returns the default line colours with the configured overrides.
func (c *Config) Palette() transit.Palette {
	overrides := make(map[string]transit.Color, len(c.Lines.Colors))
	for name, color := range c.Lines.Colors {
		overrides[name] = transit.Color(strings.ToUpper(color))
	}
	return transit.DefaultPalette().With(overrides)
}

// MapOptions converts the render and labels sections to map styling.
func (c *Config) MapOptions() netmap.Options {
	opts := netmap.Options{
		Title:          c.Render.Title,
		Caption:        c.Render.Caption,
		HideEdgeLabels: c.Render.HideDistances,
	}
	if len(c.Labels.Offset) == 2 {
		opts.LabelOffset = &netmap.Offset{DX: c.Labels.Offset[0], DY: c.Labels.Offset[1]}
	}
	if len(c.Labels.Offsets) > 0 {
		opts.LabelOffsets = make(map[string]netmap.Offset, len(c.Labels.Offsets))
		for name, off := range c.Labels.Offsets {
			if len(off) == 2 {
				opts.LabelOffsets[name] = netmap.Offset{DX: off[0], DY: off[1]}
			}
		}
	}
	return opts
}

// CacheConfig converts the cache section. dir is used when the section does
// not name a directory.
func (c *Config) CacheConfig(dir string) cache.Config {
	if c.Cache.Dir != "" {
		dir = c.Cache.Dir
	}
	return cache.Config{
		Backend:   c.Cache.Backend,
		Dir:       dir,
		RedisAddr: c.Cache.RedisAddr,
		RedisDB:   c.Cache.RedisDB,
		Prefix:    c.Cache.Prefix,
	}
}

// Keyer returns the cache keyer, scoped to the namespace when one is set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Namespace+":")
}
