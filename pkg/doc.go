// Package pkg provides the core libraries for Tubemap transit map rendering.
//
// # Overview
//
// Tubemap reads a table of station coordinates and a table of line segments,
// keeps only the lines a user selects and draws what remains as a geographic
// map with one colour per line. The pkg directory is organized into three
// areas:
//
//  1. Domain: [transit], [dataset] and [graph] model the network
//  2. Rendering: [render/canvas], [render/netmap] and [render/nodelink] draw it
//  3. Orchestration: [pipeline], [cache], [config] and [observability]
//
// # Architecture
//
// The typical data flow through Tubemap:
//
//	stations.csv + segments.csv
//	         ↓
//	    [dataset] package (load, normalize station names)
//	         ↓
//	    [transit] package (line catalog, station enrichment, selection)
//	         ↓
//	    [graph] package (filter segments, build the network graph)
//	         ↓
//	    [render/netmap] package (draw onto a canvas, position the Key)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Load the datasets and render a map of two lines:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tubemap/pkg/dataset"
//	    "github.com/matzehuels/tubemap/pkg/pipeline"
//	    "github.com/matzehuels/tubemap/pkg/transit"
//	)
//
//	ds, _ := dataset.Load("london_stations.csv", "london_lines.csv")
//	n := dataset.Normalize(ds).Network(transit.DefaultPalette())
//
//	runner := pipeline.NewRunner(n, nil, nil, nil)
//	opts := pipeline.Options{Lines: []string{"Central", "Jubilee"}}
//	_ = opts.ValidateAndSetDefaults()
//	result, _ := runner.Execute(context.Background(), opts)
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// [transit] - Stations, segments, the line catalog with its colour palette,
// and [transit.Selection] for the set of visible lines.
//
// [dataset] - CSV loading for the two input tables, with optional name
// normalization so segment endpoints match station rows.
//
// [graph] - The filtered network graph: nodes are stations, edges are
// segments of selected lines. Serializes to JSON.
//
// [render/canvas] - A 2D plotting surface in data coordinates. Lays out
// text so labels stay inside the plot area, and writes SVG.
//
// [render/netmap] - Draws a network graph as a map with a title, a
// caption and a Key that places itself in the emptiest corner.
//
// [render/nodelink] - Exports the graph as a Graphviz DOT diagram.
//
// [pipeline] - Select → build → render, used by every command. The
// [pipeline.Explorer] keeps a selection and redraws on demand.
//
// [cache] - File and Redis caches for rendered artifacts.
//
// [config] - TOML settings with defaults and validation.
//
// [observability] - Hooks for pipeline, cache and HTTP events, with a
// Prometheus implementation.
//
// [errors] - Coded errors with user-facing messages and input validators.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/render/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [transit]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/transit
// [dataset]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/dataset
// [graph]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/graph
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/render/canvas
// [render/netmap]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/render/netmap
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tubemap/pkg/errors
package pkg
