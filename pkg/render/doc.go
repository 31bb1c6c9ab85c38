// Package render converts rendered maps between output formats.
//
// # Overview
//
// The drawing itself lives in subpackages:
//
//   - [canvas]: the 2D plotting surface with layout passes and SVG output
//   - [netmap]: draws a network graph onto a canvas as a geographic map
//   - [nodelink]: exports a network graph as a Graphviz diagram
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). [Available] reports whether the tool is
// installed.
//
//	svg := c.SVG()
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [canvas]: github.com/matzehuels/tubemap/pkg/render/canvas
// [netmap]: github.com/matzehuels/tubemap/pkg/render/netmap
// [nodelink]: github.com/matzehuels/tubemap/pkg/render/nodelink
package render
