package graph

import (
	"errors"
	"slices"

	"github.com/matzehuels/tubemap/pkg/transit"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Station names are unique, so this indicates a
	// builder bug.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge with the
	// same endpoints and line is already present.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrDanglingNode is returned by [Graph.Validate] when a node has no
	// incident edge. Every node of a built network is an edge endpoint.
	ErrDanglingNode = errors.New("node has no edges")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Metadata maps are never nil once added to a graph.
type Metadata map[string]any

// Node is a station drawn as a marker at its geographic position.
type Node struct {
	ID     string        // Station name, also the label
	X      float64       // Longitude
	Y      float64       // Latitude
	Fill   transit.Color // Marker colour
	Border transit.Color // Marker outline colour
	Line   string        // Line the fill colour was taken from, empty for the default fill
	Meta   Metadata
}

// Edge is a segment drawn as a straight line between two stations. Edges are
// identified by From, To and Line, so parallel segments of different lines
// are kept apart.
type Edge struct {
	From   string
	To     string
	Line   string
	Weight float64 // Distance in kilometres
	Color  transit.Color
	Width  float64
	Meta   Metadata
}

// Key returns the identity of the edge.
func (e Edge) Key() transit.Key { return transit.Key{From: e.From, To: e.To, Line: e.Line} }

// Graph is an undirected multigraph of positioned stations. Nodes and edges
// are kept in insertion order so rendering is deterministic.
//
// The zero value is not usable - use New. Graph is not safe for concurrent use
// without external synchronization.
type Graph struct {
	nodes     map[string]*Node
	order     []string
	edges     []Edge
	edgeIndex map[transit.Key]struct{}
	adjacent  map[string][]string // nodeID -> neighbour IDs, one entry per edge
	meta      Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:     make(map[string]*Node),
		edgeIndex: make(map[transit.Key]struct{}),
		adjacent:  make(map[string][]string),
		meta:      meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// Clear removes every node and edge. Graph metadata is kept.
func (g *Graph) Clear() {
	clear(g.nodes)
	g.order = g.order[:0]
	g.edges = g.edges[:0]
	clear(g.edgeIndex)
	clear(g.adjacent)
}

// AddNode adds a station. Returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID if the ID is taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a segment between two existing stations. Returns
// ErrUnknownSourceNode or ErrUnknownTargetNode for a missing endpoint and
// ErrDuplicateEdge when the same (From, To, Line) was added before.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if g.HasEdge(e.From, e.To, e.Line) {
		return ErrDuplicateEdge
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.edgeIndex[e.Key()] = struct{}{}
	g.adjacent[e.From] = append(g.adjacent[e.From], e.To)
	if e.To != e.From {
		g.adjacent[e.To] = append(g.adjacent[e.To], e.From)
	}
	return nil
}

// Nodes returns all nodes in insertion order. The pointers refer to the nodes
// in the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasEdge reports whether the segment (from, to, line) is in the graph.
func (g *Graph) HasEdge(from, to, line string) bool {
	_, ok := g.edgeIndex[transit.Key{From: from, To: to, Line: line}]
	return ok
}

// Neighbors returns the distinct stations connected to id by any line, in the
// order their first edge was added.
func (g *Graph) Neighbors(id string) []string {
	var out []string
	for _, n := range g.adjacent[id] {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Degree returns the number of edges incident to id. Parallel edges of
// different lines are counted separately.
func (g *Graph) Degree(id string) int { return len(g.adjacent[id]) }

// Bounds returns the bounding box of all node positions. ok is false for an
// empty graph.
func (g *Graph) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	for i, id := range g.order {
		n := g.nodes[id]
		if i == 0 {
			minX, maxX, minY, maxY = n.X, n.X, n.Y, n.Y
			continue
		}
		minX, maxX = min(minX, n.X), max(maxX, n.X)
		minY, maxY = min(minY, n.Y), max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY, len(g.order) > 0
}

// Validate checks that every edge connects existing nodes and that every node
// has at least one edge.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		_, okS := g.nodes[e.From]
		_, okD := g.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	for _, id := range g.order {
		if len(g.adjacent[id]) == 0 {
			return ErrDanglingNode
		}
	}
	return nil
}
