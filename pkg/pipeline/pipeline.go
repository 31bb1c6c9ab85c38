// Package pipeline runs the filter → build → render pass that turns a line
// selection into a map.
//
// # Architecture
//
// A refresh has three stages:
//
//  1. Filter: restrict the network to the selected lines ([transit.Network.ApplyFilter])
//  2. Build: repopulate the graph from the filtered tables ([graph.Build])
//  3. Render: draw the graph onto a canvas ([netmap.Render]) and encode the
//     requested formats
//
// [Runner] executes one-shot passes for the render command and the HTTP server,
// reading and writing rendered artifacts through a [cache.Cache]. [Explorer]
// is the interactive session: it owns a selection, a graph and a canvas and
// refreshes them in place after every action, with no I/O.
//
// # Usage
//
//	runner := pipeline.NewRunner(network, c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Lines:   []string{"Central", "Jubilee"},
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Interactive use:
//
//	ex := pipeline.NewExplorer(network, pipeline.Options{}, pipeline.DefaultLines...)
//	ex.Refresh(ctx)
//	ex.Toggle(ctx, "Victoria")
//	ex.Resize(1000, 600)
//	svg := ex.SVG()
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/canvas"
	"github.com/matzehuels/tubemap/pkg/render/netmap"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = canvas.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = canvas.DefaultHeight

	// DefaultPNGScale renders PNGs at twice the canvas size.
	DefaultPNGScale = 2.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// DefaultLines is the selection an explorer starts with.
var DefaultLines = []string{"Central", "Waterloo & City", "Piccadilly", "Jubilee"}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one refresh.
type Options struct {
	// Lines is the selection. Names outside the catalog are ignored.
	Lines []string `json:"lines"`

	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	Map   netmap.Options     `json:"-"`
	Build graph.BuildOptions `json:"-"`

	// Refresh skips cache reads; results are still written.
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and checks formats and size.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errors.ValidateFormats(o.Formats, ValidFormats); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	for _, name := range o.Lines {
		if err := errors.ValidateLineName(name); err != nil {
			return err
		}
	}
	return nil
}

// ArtifactKeyOpts returns the cache key inputs for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Lines:  o.Lines,
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Style:  o.styleHash(format),
	}
}

// styleHash condenses the styling options into one key component.
func (o *Options) styleHash(format string) string {
	style := struct {
		Map   netmap.Options
		Build graph.BuildOptions
		Scale float64 `json:",omitempty"`
	}{Map: o.Map, Build: o.Build}
	if format == FormatPNG {
		style.Scale = o.PNGScale
	}
	data, _ := json.Marshal(style)
	return cache.Hash(data)
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a refresh.
type Result struct {
	// RunID identifies the refresh in logs and API responses.
	RunID string

	Filtered transit.Filtered
	Graph    *graph.Graph
	Map      netmap.Result

	// Artifacts contains encoded outputs keyed by format. The explorer
	// leaves it empty; call Explorer.SVG instead.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains refresh statistics.
type Stats struct {
	Lines        int
	Stations     int
	Segments     int
	Nodes        int
	Edges        int
	SkippedEdges int
	Unpositioned []string
	Unknown      []string // selected names that are not catalog lines

	FilterTime time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks whether outputs came from the cache.
type CacheInfo struct {
	RenderHit bool
	GraphHit  bool
}

// knownLines returns the catalog lines named in lines, without duplicates
// and in catalog order. Selections that draw the same map share cache keys.
func knownLines(c *transit.Catalog, lines []string) []string {
	sel := transit.NewSelection(lines...)
	var out []string
	for _, name := range c.Names() {
		if sel.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// unknownLines returns the names in lines that the catalog does not know, in
// input order.
func unknownLines(c *transit.Catalog, lines []string) []string {
	var out []string
	for _, name := range lines {
		if !c.Has(name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
