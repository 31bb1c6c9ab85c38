package canvas

import "github.com/matzehuels/tubemap/pkg/transit"

// ID identifies an artifact drawn on a backend. IDs are never reused by the
// same backend, so an ID from before a Clear no longer resolves.
type ID int

// Space is the coordinate system an artifact is positioned in.
type Space int

const (
	// Data positions are longitude/latitude and go through the equal-aspect
	// transform. Y grows upwards.
	Data Space = iota
	// Screen positions are pixels from the top-left corner. Y grows downwards.
	Screen
)

// Align is the horizontal anchor of a text artifact. Text is always
// vertically centred on its position.
type Align string

const (
	AlignStart  Align = "start"
	AlignMiddle Align = "middle"
	AlignEnd    Align = "end"
)

// Box is a screen-space rectangle. (X0, Y0) is the top-left corner.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// CenterX returns the horizontal centre.
func (b Box) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// TextStyle describes a text artifact.
type TextStyle struct {
	Size  float64 // pixels
	Bold  bool
	Color transit.Color
	Align Align
	Space Space
}

// LegendEntry is one row of a legend: a swatch and its label.
type LegendEntry struct {
	Label string
	Color transit.Color
}

// LegendStyle describes a legend box.
type LegendStyle struct {
	FontSize    float64
	BorderWidth float64
	// Margin is the gap between the legend and the lower-right corner of the
	// plot area.
	Margin float64
}

// Backend is a plotting surface. Artifacts are recorded by the Draw methods
// and positioned when the backend lays itself out. Extent reports the laid-out
// screen box of a text or legend artifact, so callers that need to place one
// artifact relative to another subscribe with OnLayout and read extents there.
type Backend interface {
	// Clear removes every artifact and every layout subscription.
	Clear()
	SetTitle(title string, size float64)
	SetEqualAspect(equal bool)

	DrawLine(x1, y1, x2, y2 float64, color transit.Color, width float64) ID
	DrawPoint(x, y float64, fill, border transit.Color, radius float64) ID
	DrawText(x, y float64, text string, style TextStyle) ID
	DrawLegend(entries []LegendEntry, style LegendStyle) ID

	// MoveText repositions a text artifact in its own coordinate space.
	MoveText(id ID, x, y float64)
	// Extent returns the screen box of a text or legend artifact as of the
	// last layout pass. ok is false before the first pass or for an unknown ID.
	Extent(id ID) (box Box, ok bool)
	// OnLayout registers fn to run, in registration order, at the end of every
	// layout pass.
	OnLayout(fn func())
}
