package graph

import (
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Styling defaults for built graphs.
const (
	DefaultFill      transit.Color = "#D3D3D3"
	DefaultBorder    transit.Color = "#000000"
	DefaultEdgeWidth               = 3.0
)

// BuildOptions controls node and edge styling.
type BuildOptions struct {
	// DefaultFill colours a station whose LastLine is not among the filtered
	// lines. Defaults to DefaultFill.
	DefaultFill transit.Color
	// Border outlines every marker. Defaults to DefaultBorder.
	Border transit.Color
	// EdgeWidth is the stroke width of every edge. Defaults to DefaultEdgeWidth.
	EdgeWidth float64
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.DefaultFill == "" {
		o.DefaultFill = DefaultFill
	}
	if o.Border == "" {
		o.Border = DefaultBorder
	}
	if o.EdgeWidth <= 0 {
		o.EdgeWidth = DefaultEdgeWidth
	}
	return o
}

// BuildStats reports what Build did.
type BuildStats struct {
	Nodes int
	Edges int

	// SkippedEdges counts filtered segments left out because an endpoint has
	// no coordinates or is not a filtered station.
	SkippedEdges int
	// Unpositioned lists the stations behind SkippedEdges, each once.
	Unpositioned []string
}

// Build clears g and fills it from f.
//
// An edge is added for every filtered segment whose two endpoints are
// positioned filtered stations. A node is added for every endpoint of an added
// edge, in station table order, so the graph never holds a node without edges.
// Nodes are filled with the colour of their LastLine when that line is among
// f.Lines and with opts.DefaultFill otherwise. Edges take their line's colour.
//
// The previous contents of g are discarded even when f is empty.
func Build(g *Graph, f transit.Filtered, opts BuildOptions) BuildStats {
	opts = opts.withDefaults()
	g.Clear()

	colors := make(map[string]transit.Color, len(f.Lines))
	for _, l := range f.Lines {
		colors[l.Name] = l.Color
	}
	stations := make(map[string]transit.Station, len(f.Stations))
	for _, st := range f.Stations {
		stations[st.Name] = st
	}

	var stats BuildStats
	unpositioned := make(map[string]bool)
	usable := func(name string) bool {
		st, ok := stations[name]
		if ok && st.Positioned {
			return true
		}
		if !unpositioned[name] {
			unpositioned[name] = true
			stats.Unpositioned = append(stats.Unpositioned, name)
		}
		return false
	}

	included := make([]transit.Segment, 0, len(f.Segments))
	endpoints := make(map[string]struct{})
	for _, s := range f.Segments {
		okFrom, okTo := usable(s.From), usable(s.To)
		if !okFrom || !okTo {
			stats.SkippedEdges++
			continue
		}
		included = append(included, s)
		endpoints[s.From] = struct{}{}
		endpoints[s.To] = struct{}{}
	}

	for _, st := range f.Stations {
		if _, ok := endpoints[st.Name]; !ok {
			continue
		}
		node := Node{
			ID:     st.Name,
			X:      st.Longitude,
			Y:      st.Latitude,
			Fill:   opts.DefaultFill,
			Border: opts.Border,
		}
		if c, ok := colors[st.LastLine]; ok {
			node.Fill, node.Line = c, st.LastLine
		}
		// Station names are unique in f.Stations.
		_ = g.AddNode(node)
	}

	for _, s := range included {
		color, ok := colors[s.Line]
		if !ok {
			color = transit.FallbackColor
		}
		err := g.AddEdge(Edge{
			From:   s.From,
			To:     s.To,
			Line:   s.Line,
			Weight: s.Distance,
			Color:  color,
			Width:  opts.EdgeWidth,
		})
		if err != nil {
			// A repeated row of the segment table draws once.
			stats.SkippedEdges++
		}
	}

	stats.Nodes = g.NodeCount()
	stats.Edges = g.EdgeCount()
	return stats
}
