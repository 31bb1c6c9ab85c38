// Package nodelink exports a network graph as a Graphviz node-link diagram.
//
// # Overview
//
// This is an alternative to the geographic map drawn by netmap for users who
// want to post-process the drawing with Graphviz tools. Stations become small
// filled circles pinned at their coordinates and segments become undirected
// edges in their line colour.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, filtered.Lines, nodelink.Options{Distances: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The serve command exposes the rendered diagram at /graph.svg.
//
// # DOT Format
//
// The output is an undirected "graph" using layout=neato. Every node carries
// pos="x,y!" so neato keeps it in place; x and y are the longitude and
// latitude relative to the network's south-west corner, multiplied by
// [Options.Scale]. Station names are external labels (xlabel), one word per
// line.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
