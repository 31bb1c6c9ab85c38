package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/netmap"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// DefaultScale converts degrees to Graphviz inches.
const DefaultScale = 40.0

// Options configures node-link diagram rendering.
type Options struct {
	// Scale is the number of inches per degree of longitude or latitude.
	// Zero means DefaultScale.
	Scale float64

	// Distances adds the segment length as an edge label.
	Distances bool

	// Title is drawn above the diagram when non-empty.
	Title string
}

// ToDOT converts a network graph to an undirected Graphviz graph for the neato
// engine. Every station is pinned at its geographic position, shifted so the
// south-west corner of the network sits at the origin. Edges carry their line
// colour and, when requested, their length.
//
// The lines slice is written as a comment header so the output documents which
// lines it shows; it does not affect the drawing.
func ToDOT(g *graph.Graph, lines []transit.Line, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	minX, minY, _, _, _ := g.Bounds()

	var buf bytes.Buffer
	for _, l := range lines {
		fmt.Fprintf(&buf, "// %s %s\n", l.Color, l.Name)
	}
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=30;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, width=0.15, fixedsize=true, fontsize=8];\n")
	buf.WriteString("  edge [penwidth=3, fontsize=6];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtNodeAttrs(*n, (n.X-minX)*scale, (n.Y-minY)*scale)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(e, opts.Distances)
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(n graph.Node, x, y float64) []string {
	return []string{
		`label=""`,
		fmt.Sprintf("xlabel=%q", netmap.WrapLabel(n.ID)),
		fmt.Sprintf(`pos="%s,%s!"`, fmtCoord(x), fmtCoord(y)),
		fmt.Sprintf("fillcolor=%q", string(n.Fill)),
		fmt.Sprintf("color=%q", string(n.Border)),
	}
}

func fmtEdgeAttrs(e graph.Edge, distances bool) []string {
	attrs := []string{fmt.Sprintf("color=%q", string(e.Color))}
	if e.Width > 0 {
		attrs = append(attrs, "penwidth="+fmtCoord(e.Width))
	}
	if distances {
		attrs = append(attrs, fmt.Sprintf("label=%q", netmap.FormatDistance(e.Weight)))
	}
	return attrs
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// keeps pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
