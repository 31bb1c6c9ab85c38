package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/observability"
	"github.com/matzehuels/tubemap/pkg/render/canvas"
	"github.com/matzehuels/tubemap/pkg/render/netmap"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Runner executes refreshes over one network.
//
// The network is immutable, so a Runner may be shared by goroutines as long
// as each call gets its own graph and canvas. Execute allocates both.
type Runner struct {
	Network *transit.Network
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger

	// DatasetHash is mixed into every cache key.
	DatasetHash string
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer and a nil logger uses the default logger.
func NewRunner(n *transit.Network, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Network:     n,
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		DatasetHash: NetworkHash(n),
	}
}

// NetworkHash returns a content hash of the network's base tables.
func NetworkHash(n *transit.Network) string {
	data, _ := json.Marshal(struct {
		Stations []transit.Station
		Segments []transit.Segment
		Lines    []transit.Line
	}{n.Stations(), n.Segments(), n.Catalog().Lines()})
	return cache.Hash(data)
}

// Execute runs a one-shot refresh for opts.Lines on a fresh graph and canvas
// and encodes every requested format. Artifacts are read from and written to
// the cache; when all formats hit, drawing is skipped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()
	observability.Pipeline().OnRefreshStart(ctx, opts.Lines)

	res := r.newResult()
	g := graph.New(graph.Metadata{"run_id": res.RunID})
	r.filterAndBuild(ctx, transit.NewSelection(opts.Lines...), g, opts, res)

	keyOpts := opts
	keyOpts.Lines = knownLines(r.Network.Catalog(), opts.Lines)

	artifacts, hit := r.cachedArtifacts(ctx, keyOpts)
	if hit {
		res.Artifacts = artifacts
		res.CacheInfo.RenderHit = true
		r.Logger.Debug("artifacts from cache", "formats", opts.Formats)
		observability.Pipeline().OnRefreshComplete(ctx, time.Since(start), nil)
		return res, nil
	}

	c := canvas.New(opts.Width, opts.Height)
	renderStart := time.Now()
	res.Map = netmap.Render(c, g, res.Filtered.Lines, opts.Map)
	artifacts, err := Encode(ctx, c, g, res.Filtered.Lines, opts)
	res.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, res.Stats.RenderTime, err)
	if err != nil {
		observability.Pipeline().OnRefreshComplete(ctx, time.Since(start), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	r.storeArtifacts(ctx, artifacts, keyOpts)

	r.Logger.Info("rendered map",
		"run", res.RunID,
		"lines", res.Stats.Lines,
		"nodes", res.Stats.Nodes,
		"edges", res.Stats.Edges,
		"formats", opts.Formats,
		"duration", time.Since(start))
	observability.Pipeline().OnRefreshComplete(ctx, time.Since(start), nil)
	return res, nil
}

// Refresh runs filter → build → render for sel onto g and c, replacing their
// previous contents. Nothing is encoded or cached. opts must already have
// defaults applied.
func (r *Runner) Refresh(ctx context.Context, sel transit.Selection, g *graph.Graph, c canvas.Backend, opts Options) *Result {
	start := time.Now()
	observability.Pipeline().OnRefreshStart(ctx, sel.Names())

	res := r.newResult()
	r.filterAndBuild(ctx, sel, g, opts, res)

	renderStart := time.Now()
	res.Map = netmap.Render(c, g, res.Filtered.Lines, opts.Map)
	res.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, nil, res.Stats.RenderTime, nil)

	r.Logger.Debug("refreshed",
		"run", res.RunID,
		"lines", res.Stats.Lines,
		"nodes", res.Stats.Nodes,
		"edges", res.Stats.Edges,
		"duration", time.Since(start))
	observability.Pipeline().OnRefreshComplete(ctx, time.Since(start), nil)
	return res
}

// Graph filters and builds without drawing. The HTTP graph endpoint uses it.
func (r *Runner) Graph(ctx context.Context, lines []string, opts Options) *Result {
	res := r.newResult()
	g := graph.New(graph.Metadata{"run_id": res.RunID})
	r.filterAndBuild(ctx, transit.NewSelection(lines...), g, opts, res)
	return res
}

// GraphDocument returns the JSON graph document for lines. Documents are
// cached under the graph key of the known lines; on a hit the Result is
// decoded from the cached document instead of being built.
func (r *Runner) GraphDocument(ctx context.Context, lines []string, opts Options) ([]byte, *Result, error) {
	key := r.Keyer.GraphKey(r.DatasetHash, knownLines(r.Network.Catalog(), lines))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "key_type", "graph", "err", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, "graph")
			res, err := r.decodeGraph(data, lines)
			if err == nil {
				return data, res, nil
			}
			r.Logger.Warn("discarding unreadable cached graph", "err", err)
		default:
			observability.Cache().OnCacheMiss(ctx, "graph")
		}
	}

	res := r.Graph(ctx, lines, opts)
	var buf bytes.Buffer
	if err := graph.WriteGraph(res.Graph, res.Filtered.Lines, &buf); err != nil {
		return nil, nil, fmt.Errorf("encode graph: %w", err)
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), opts.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key_type", "graph", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "graph", buf.Len())
	}
	return buf.Bytes(), res, nil
}

func (r *Runner) decodeGraph(data []byte, lines []string) (*Result, error) {
	g, filtered, err := graph.ReadGraph(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	res := r.newResult()
	res.Graph = g
	res.Filtered.Lines = filtered
	res.Stats.Lines = len(filtered)
	res.Stats.Nodes = g.NodeCount()
	res.Stats.Edges = g.EdgeCount()
	res.Stats.Unknown = unknownLines(r.Network.Catalog(), lines)
	res.CacheInfo.GraphHit = true
	return res, nil
}

func (r *Runner) newResult() *Result {
	return &Result{RunID: uuid.NewString()}
}

func (r *Runner) filterAndBuild(ctx context.Context, sel transit.Selection, g *graph.Graph, opts Options, res *Result) {
	filterStart := time.Now()
	f := r.Network.ApplyFilter(sel)
	res.Filtered = f
	res.Stats.FilterTime = time.Since(filterStart)
	res.Stats.Lines = len(f.Lines)
	res.Stats.Stations = len(f.Stations)
	res.Stats.Segments = len(f.Segments)
	res.Stats.Unknown = unknownLines(r.Network.Catalog(), sel.Names())
	observability.Pipeline().OnFilterComplete(ctx, len(f.Stations), len(f.Segments), res.Stats.FilterTime)

	if len(res.Stats.Unknown) > 0 {
		r.Logger.Warn("ignoring unknown lines", "lines", res.Stats.Unknown)
	}

	buildStart := time.Now()
	bs := graph.Build(g, f, opts.Build)
	res.Graph = g
	res.Stats.BuildTime = time.Since(buildStart)
	res.Stats.Nodes = bs.Nodes
	res.Stats.Edges = bs.Edges
	res.Stats.SkippedEdges = bs.SkippedEdges
	res.Stats.Unpositioned = bs.Unpositioned
	observability.Pipeline().OnBuildComplete(ctx, bs.Nodes, bs.Edges, bs.SkippedEdges, res.Stats.BuildTime)

	if err := g.Validate(); err != nil {
		r.Logger.Error("built graph is inconsistent", "run", res.RunID, "err", err)
	}

	if bs.SkippedEdges > 0 {
		r.Logger.Debug("skipped segments without coordinates",
			"count", bs.SkippedEdges,
			"stations", bs.Unpositioned)
	}
}

// cachedArtifacts returns every requested format from the cache, or false if
// any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, opts Options) (map[string][]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(r.DatasetHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
			return nil, false
		}
		if !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) storeArtifacts(ctx context.Context, artifacts map[string][]byte, opts Options) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(r.DatasetHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
