package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tubemap/pkg/cache"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/canvas"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Explorer is an interactive session over one network. It owns the selection,
// the graph and the canvas; every action that changes the selection runs one
// full refresh before returning.
//
// An Explorer is not safe for concurrent use.
type Explorer struct {
	runner *Runner
	opts   Options
	sel    transit.Selection
	graph  *graph.Graph
	canvas *canvas.Canvas

	last      *Result
	refreshes int
}

// NewExplorer creates a session with the given initial selection. Nothing is
// drawn until the first Refresh. Invalid opts fall back to defaults.
func NewExplorer(n *transit.Network, opts Options, initial ...string) *Explorer {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		opts = Options{Map: opts.Map, Build: opts.Build, Logger: opts.Logger}
		_ = opts.ValidateAndSetDefaults()
	}
	r := NewRunner(n, cache.NewNullCache(), nil, opts.Logger)
	return &Explorer{
		runner: r,
		opts:   opts,
		sel:    transit.NewSelection(initial...),
		graph:  graph.New(nil),
		canvas: canvas.New(opts.Width, opts.Height),
	}
}

// Logger returns the session logger.
func (e *Explorer) Logger() *log.Logger { return e.opts.Logger }

// Lines returns the catalog in display order.
func (e *Explorer) Lines() []transit.Line { return e.runner.Network.Catalog().Lines() }

// Selected reports whether name is in the selection.
func (e *Explorer) Selected(name string) bool { return e.sel.Has(name) }

// Selection returns the selected names, sorted.
func (e *Explorer) Selection() []string { return e.sel.Names() }

// SetSelection replaces the selection without refreshing.
func (e *Explorer) SetSelection(names ...string) { e.sel.Set(names...) }

// Refresh filters, builds and draws the current selection.
func (e *Explorer) Refresh(ctx context.Context) *Result {
	e.last = e.runner.Refresh(ctx, e.sel, e.graph, e.canvas, e.opts)
	e.refreshes++
	return e.last
}

// Toggle flips one line and refreshes.
func (e *Explorer) Toggle(ctx context.Context, name string) *Result {
	e.sel.Toggle(name)
	return e.Refresh(ctx)
}

// SelectAll selects every catalog line and refreshes.
func (e *Explorer) SelectAll(ctx context.Context) *Result {
	e.sel.Set(e.runner.Network.Catalog().Names()...)
	return e.Refresh(ctx)
}

// SelectNone clears the selection and refreshes.
func (e *Explorer) SelectNone(ctx context.Context) *Result {
	e.sel.Clear()
	return e.Refresh(ctx)
}

// Resize changes the canvas size and lays it out again. The graph is not
// rebuilt; layout subscribers such as the caption placement run again.
func (e *Explorer) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.opts.Width, e.opts.Height = width, height
	e.canvas.Resize(width, height)
}

// Size returns the canvas size.
func (e *Explorer) Size() (width, height float64) { return e.canvas.Size() }

// SVG returns the current drawing.
func (e *Explorer) SVG() []byte { return e.canvas.SVG() }

// Canvas returns the canvas the session draws on.
func (e *Explorer) Canvas() *canvas.Canvas { return e.canvas }

// Graph returns the session graph.
func (e *Explorer) Graph() *graph.Graph { return e.graph }

// Last returns the result of the most recent refresh, or nil.
func (e *Explorer) Last() *Result { return e.last }

// Refreshes counts completed refreshes.
func (e *Explorer) Refreshes() int { return e.refreshes }
