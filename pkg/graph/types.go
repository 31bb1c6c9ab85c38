package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tubemap/pkg/transit"
)

// =============================================================================
// Document - Network Graph Serialization
// =============================================================================

// Document is the JSON form of a built network graph. It is what
// `tubemap render -f json` writes and what GET /api/graph returns.
//
// The format round-trips: export, re-import and export again produce identical
// bytes.
type Document struct {
	Lines []LineDoc `json:"lines"`
	Nodes []NodeDoc `json:"nodes"`
	Edges []EdgeDoc `json:"edges"`
}

// LineDoc is a legend entry.
type LineDoc struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NodeDoc is a positioned station.
type NodeDoc struct {
	ID     string         `json:"id"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Fill   string         `json:"fill"`
	Border string         `json:"border"`
	Line   string         `json:"line,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// EdgeDoc is a segment between two stations.
type EdgeDoc struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Line     string         `json:"line"`
	Distance float64        `json:"distance_km"`
	Color    string         `json:"color"`
	Width    float64        `json:"width"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// =============================================================================
// Graph ↔ Document Conversion
// =============================================================================

// FromGraph converts g and its legend lines to a Document. Nodes and edges
// keep insertion order, which Build makes deterministic.
func FromGraph(g *Graph, lines []transit.Line) Document {
	doc := Document{
		Lines: make([]LineDoc, len(lines)),
		Nodes: make([]NodeDoc, 0, g.NodeCount()),
		Edges: make([]EdgeDoc, 0, g.EdgeCount()),
	}
	for i, l := range lines {
		doc.Lines[i] = LineDoc{Name: l.Name, Color: l.Color.String()}
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:     n.ID,
			X:      n.X,
			Y:      n.Y,
			Fill:   n.Fill.String(),
			Border: n.Border.String(),
			Line:   n.Line,
			Meta:   copyMeta(n.Meta),
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{
			From:     e.From,
			To:       e.To,
			Line:     e.Line,
			Distance: e.Weight,
			Color:    e.Color.String(),
			Width:    e.Width,
			Meta:     copyMeta(e.Meta),
		})
	}
	return doc
}

// ToGraph converts a Document back to a graph and its legend lines.
// Returns an error if an edge references a missing node or a node repeats.
func ToGraph(doc Document) (*Graph, []transit.Line, error) {
	g := New(nil)
	for _, nd := range doc.Nodes {
		n := Node{
			ID:     nd.ID,
			X:      nd.X,
			Y:      nd.Y,
			Fill:   transit.Color(nd.Fill),
			Border: transit.Color(nd.Border),
			Line:   nd.Line,
			Meta:   copyMeta(nd.Meta),
		}
		if err := g.AddNode(n); err != nil {
			return nil, nil, fmt.Errorf("add node %s: %w", nd.ID, err)
		}
	}
	for _, ed := range doc.Edges {
		e := Edge{
			From:   ed.From,
			To:     ed.To,
			Line:   ed.Line,
			Weight: ed.Distance,
			Color:  transit.Color(ed.Color),
			Width:  ed.Width,
			Meta:   copyMeta(ed.Meta),
		}
		if err := g.AddEdge(e); err != nil {
			return nil, nil, fmt.Errorf("add edge %s→%s (%s): %w", ed.From, ed.To, ed.Line, err)
		}
	}
	lines := make([]transit.Line, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = transit.Line{Name: l.Name, Color: transit.Color(l.Color)}
	}
	return g, lines, nil
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// copyMeta creates a shallow copy of metadata, or nil when m is empty.
func copyMeta(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
