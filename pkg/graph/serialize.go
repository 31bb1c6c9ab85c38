package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/tubemap/pkg/transit"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts g and its legend lines to indented JSON bytes.
func MarshalGraph(g *Graph, lines []transit.Line) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, lines, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes g as JSON to w.
func WriteGraph(g *Graph, lines []transit.Line, w io.Writer) error {
	return writeGraphTo(g, lines, w)
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, []transit.Line, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, lines []transit.Line, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g, lines)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, []transit.Line, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(doc)
}
