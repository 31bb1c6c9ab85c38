package netmap

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/canvas"
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Defaults for Options.
const (
	DefaultTitle        = "Public Transport Network of London"
	DefaultCaption      = "Key"
	DefaultTitleSize    = 30.0
	DefaultCaptionSize  = 11.0
	DefaultCaptionGap   = 12.0
	DefaultLabelSize    = 8.0
	DefaultEdgeLabel    = 6.0
	DefaultLegendSize   = 10.0
	DefaultMarkerRadius = 6.0
)

// DefaultLabelOffset shifts station names slightly above their marker, in
// data units.
var DefaultLabelOffset = Offset{DX: 0, DY: 0.002}

// Offset is a displacement in data units (degrees).
type Offset struct {
	DX, DY float64
}

// Options controls map styling. The zero value renders with the defaults.
type Options struct {
	Title   string
	Caption string

	TitleSize     float64
	CaptionSize   float64
	CaptionGap    float64 // pixels between the legend's top edge and the caption's centre
	LabelSize     float64
	EdgeLabelSize float64
	LegendSize    float64
	MarkerRadius  float64

	// LabelOffset is applied to every station name without an entry in
	// LabelOffsets. A nil pointer means DefaultLabelOffset.
	LabelOffset  *Offset
	LabelOffsets map[string]Offset

	// HideEdgeLabels omits the distance labels.
	HideEdgeLabels bool
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Caption == "" {
		o.Caption = DefaultCaption
	}
	if o.TitleSize <= 0 {
		o.TitleSize = DefaultTitleSize
	}
	if o.CaptionSize <= 0 {
		o.CaptionSize = DefaultCaptionSize
	}
	if o.CaptionGap <= 0 {
		o.CaptionGap = DefaultCaptionGap
	}
	if o.LabelSize <= 0 {
		o.LabelSize = DefaultLabelSize
	}
	if o.EdgeLabelSize <= 0 {
		o.EdgeLabelSize = DefaultEdgeLabel
	}
	if o.LegendSize <= 0 {
		o.LegendSize = DefaultLegendSize
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = DefaultMarkerRadius
	}
	if o.LabelOffset == nil {
		off := DefaultLabelOffset
		o.LabelOffset = &off
	}
	return o
}

// Result holds the IDs of the artifacts Render placed that callers may want to
// inspect after layout.
type Result struct {
	Legend  canvas.ID
	Caption canvas.ID
	Labels  map[string]canvas.ID
}

// Render clears b and draws g onto it: edges in their line colour with a
// distance label at their midpoint, station markers with their names, a
// legend of lines in the lower-right corner, a caption above the legend, and
// the title. The canvas is set to equal aspect.
//
// The caption is placed by a layout subscriber, so it follows the legend on
// every later layout pass. An empty graph still yields the title, an empty
// legend frame and the caption.
func Render(b canvas.Backend, g *graph.Graph, lines []transit.Line, opts Options) Result {
	opts = opts.withDefaults()
	b.Clear()
	b.SetTitle(opts.Title, opts.TitleSize)
	b.SetEqualAspect(true)

	res := Result{Labels: make(map[string]canvas.ID, g.NodeCount())}

	edges := g.Edges()
	for _, e := range edges {
		from, okF := g.Node(e.From)
		to, okT := g.Node(e.To)
		if !okF || !okT {
			continue
		}
		b.DrawLine(from.X, from.Y, to.X, to.Y, e.Color, e.Width)
	}

	for _, n := range g.Nodes() {
		b.DrawPoint(n.X, n.Y, n.Fill, n.Border, opts.MarkerRadius)
	}

	if !opts.HideEdgeLabels {
		for _, e := range edges {
			from, okF := g.Node(e.From)
			to, okT := g.Node(e.To)
			if !okF || !okT {
				continue
			}
			b.DrawText((from.X+to.X)/2, (from.Y+to.Y)/2, FormatDistance(e.Weight), canvas.TextStyle{
				Size:  opts.EdgeLabelSize,
				Color: "#000000",
				Align: canvas.AlignMiddle,
			})
		}
	}

	for _, n := range g.Nodes() {
		off := LabelOffset(n.ID, opts)
		res.Labels[n.ID] = b.DrawText(n.X+off.DX, n.Y+off.DY, WrapLabel(n.ID), canvas.TextStyle{
			Size:  opts.LabelSize,
			Bold:  true,
			Color: "#000000",
			Align: canvas.AlignMiddle,
		})
	}

	entries := make([]canvas.LegendEntry, len(lines))
	for i, l := range lines {
		entries[i] = canvas.LegendEntry{Label: l.Name, Color: l.Color}
	}
	res.Legend = b.DrawLegend(entries, canvas.LegendStyle{FontSize: opts.LegendSize})

	res.Caption = b.DrawText(0, 0, opts.Caption, canvas.TextStyle{
		Size:  opts.CaptionSize,
		Bold:  true,
		Color: "#000000",
		Align: canvas.AlignMiddle,
		Space: canvas.Screen,
	})
	b.OnLayout(func() { placeCaption(b, res.Legend, res.Caption, opts.CaptionGap) })

	return res
}

// placeCaption centres the caption horizontally on the legend, gap pixels
// above its top edge. It only moves the caption and may run any number of
// times.
func placeCaption(b canvas.Backend, legend, caption canvas.ID, gap float64) {
	box, ok := b.Extent(legend)
	if !ok {
		return
	}
	b.MoveText(caption, box.CenterX(), box.Y0-gap)
}

// FormatDistance formats a segment length for an edge label: two decimals and
// a km suffix.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f km", km)
}

// WrapLabel puts each word of a station name on its own line.
func WrapLabel(name string) string {
	return strings.Join(strings.Fields(name), "\n")
}

// LabelOffset returns the label displacement for a station: its entry in
// opts.LabelOffsets, or the default offset.
func LabelOffset(name string, opts Options) Offset {
	if off, ok := opts.LabelOffsets[name]; ok {
		return off
	}
	if opts.LabelOffset != nil {
		return *opts.LabelOffset
	}
	return DefaultLabelOffset
}
