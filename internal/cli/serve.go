package cli

import (
	"cmp"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/buildinfo"
	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/observability"
	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/render/nodelink"
)

const shutdownTimeout = 5 * time.Second

// server answers map requests over one network. Each request runs its own
// refresh through the shared runner.
type server struct {
	runner   *pipeline.Runner
	opts     pipeline.Options
	initial  []string
	lines    []lineInfo
	registry *prometheus.Registry
	logger   *log.Logger
}

func newServer(runner *pipeline.Runner, opts pipeline.Options, initial []string, registry *prometheus.Registry, logger *log.Logger) *server {
	return &server{
		runner:   runner,
		opts:     opts,
		initial:  initial,
		lines:    catalogInfo(runner.Network, initial),
		registry: registry,
		logger:   logger,
	}
}

// routes builds the router.
//
//	GET /healthz                          liveness
//	GET /api/lines                        line catalog
//	GET /api/graph?lines=a,b              built graph as JSON
//	GET /api/stations/{name}?lines=a,b    one station and its neighbours
//	GET /graph.svg?lines=a,b              Graphviz node-link diagram
//	GET /map.svg?lines=a,b&width=&height= rendered map
//	GET /metrics                          Prometheus metrics
//
// Without a lines parameter the configured initial lines are used; an empty
// value selects nothing.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/lines", s.handleLines)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/stations/{name}", s.handleStation)
	r.Get("/graph.svg", s.handleGraphSVG)
	r.Get("/map.svg", s.handleMap)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// instrument reports every request to the HTTP hooks under its route pattern.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := cmp.Or(ww.Status(), http.StatusOK)
		d := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"lines":    len(s.lines),
		"stations": len(s.runner.Network.Stations()),
		"version":  buildinfo.Short(),
	})
}

func (s *server) handleLines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lines)
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	lines, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	data, res, err := s.runner.GraphDocument(r.Context(), lines, s.opts)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode graph"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", hitOrMiss(res.CacheInfo.GraphHit))
	w.Header().Set("X-Run-ID", res.RunID)
	w.Write(data)
}

// stationInfo describes one station of the built graph.
type stationInfo struct {
	Name      string   `json:"name"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Fill      string   `json:"fill"`
	Line      string   `json:"line,omitempty"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors"`
}

// handleStation reports a station's position and connections among the
// selected lines. Stations that no selected line serves are not found.
func (s *server) handleStation(w http.ResponseWriter, r *http.Request) {
	lines, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	name := chi.URLParam(r, "name")
	res := s.runner.Graph(r.Context(), lines, s.opts)
	n, ok := res.Graph.Node(name)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeStationNotFound, "station %q is not on the selected lines", name))
		return
	}
	neighbors := res.Graph.Neighbors(name)
	if neighbors == nil {
		neighbors = []string{}
	}
	w.Header().Set("X-Run-ID", res.RunID)
	writeJSON(w, http.StatusOK, stationInfo{
		Name:      n.ID,
		X:         n.X,
		Y:         n.Y,
		Fill:      n.Fill.String(),
		Line:      n.Line,
		Degree:    res.Graph.Degree(name),
		Neighbors: neighbors,
	})
}

// handleGraphSVG lays the selected lines out with Graphviz instead of the
// map renderer.
func (s *server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	lines, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res := s.runner.Graph(r.Context(), lines, s.opts)
	dot := nodelink.ToDOT(res.Graph, res.Filtered.Lines, nodelink.Options{
		Distances: !s.opts.Map.HideEdgeLabels,
		Title:     s.opts.Map.Title,
	})
	data, err := nodelink.RenderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render graphviz diagram"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Run-ID", res.RunID)
	w.Write(data)
}

func (s *server) handleMap(w http.ResponseWriter, r *http.Request) {
	lines, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.opts
	opts.Lines = lines
	opts.Formats = []string{pipeline.FormatSVG}
	if opts.Width, err = dimension(r, "width", s.opts.Width); err != nil {
		writeError(w, err)
		return
	}
	if opts.Height, err = dimension(r, "height", s.opts.Height); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache", hitOrMiss(res.CacheInfo.RenderHit))
	w.Header().Set("X-Run-ID", res.RunID)
	w.Write(res.Artifacts[pipeline.FormatSVG])
}

// selection reads the lines query parameter.
func (s *server) selection(r *http.Request) ([]string, error) {
	q := r.URL.Query()
	if !q.Has("lines") {
		return s.initial, nil
	}
	lines := parseList(q.Get("lines"))
	for _, name := range lines {
		if err := errors.ValidateLineName(name); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// dimension parses a positive size parameter, returning def when absent.
func dimension(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
	}
	if err := errors.ValidateDimensions(f, 1); err != nil {
		return 0, err
	}
	return f, nil
}

func hitOrMiss(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	body := map[string]string{"error": errors.UserMessage(err)}
	if code := errors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, errors.HTTPStatus(err), body)
}

// =============================================================================
// Command
// =============================================================================

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var data dataFlags
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve maps and the line catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmp.Or(addr, c.Config.Serve.Addr), data, noCache)
		},
	}

	data.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, data dataFlags, noCache bool) error {
	logger := loggerFromContext(ctx)

	n, err := c.loadNetwork(ctx, data)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, n, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.pipelineOptions(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hooks := observability.NewPrometheusHooks(registry)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s := newServer(runner, opts, c.Config.Lines.Initial, registry, logger)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
