package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render"
	"github.com/matzehuels/tubemap/pkg/render/canvas"
	"github.com/matzehuels/tubemap/pkg/render/nodelink"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Encode produces every format in opts.Formats from a drawn canvas and the
// graph it was drawn from.
func Encode(ctx context.Context, c *canvas.Canvas, g *graph.Graph, lines []transit.Line, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = c.SVG()
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), opts.PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			data, err = graph.MarshalGraph(g, lines)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, lines, nodelink.Options{
				Distances: !opts.Map.HideEdgeLabels,
				Title:     opts.Map.Title,
			}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
