package canvas

import (
	"github.com/matzehuels/tubemap/pkg/transit"
)

// Default sizes in pixels.
const (
	DefaultWidth  = 1500.0
	DefaultHeight = 900.0

	frameMargin      = 20.0
	titleBandRatio   = 1.6
	dataPaddingRatio = 0.05
)

type lineArt struct {
	id             ID
	x1, y1, x2, y2 float64
	color          transit.Color
	width          float64
}

type pointArt struct {
	id           ID
	x, y         float64
	fill, border transit.Color
	radius       float64
}

type textArt struct {
	id    ID
	x, y  float64
	text  string
	style TextStyle
}

type legendArt struct {
	id      ID
	entries []LegendEntry
	style   LegendStyle
}

// Canvas is an in-memory Backend that lays artifacts out on a fixed-size
// surface and serialises them as SVG.
//
// Layout runs when Layout or Resize is called, and lazily from SVG when
// anything was drawn since the last pass. Subscribers registered with OnLayout
// run at the end of every pass and may move text without triggering another.
//
// The zero value is not usable - use New. Canvas is not safe for concurrent use.
type Canvas struct {
	width, height float64
	title         string
	titleSize     float64
	equalAspect   bool

	lines  []lineArt
	points []pointArt
	texts  []*textArt
	legend *legendArt
	byID   map[ID]*textArt
	nextID ID

	subscribers []func()

	xf      transform
	legendB Box
	laidOut bool
	dirty   bool
	passes  int
}

// New creates an empty canvas of the given pixel size. Non-positive sizes fall
// back to DefaultWidth and DefaultHeight.
func New(width, height float64) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Canvas{
		width:  width,
		height: height,
		byID:   make(map[ID]*textArt),
		dirty:  true,
	}
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

// Passes returns the number of layout passes run so far.
func (c *Canvas) Passes() int { return c.passes }

// Subscribers returns the number of registered layout subscribers.
func (c *Canvas) Subscribers() int { return len(c.subscribers) }

// Clear removes every artifact, the title and all layout subscribers. The
// canvas size and aspect setting are kept.
func (c *Canvas) Clear() {
	c.title, c.titleSize = "", 0
	c.lines = c.lines[:0]
	c.points = c.points[:0]
	c.texts = c.texts[:0]
	c.legend = nil
	clear(c.byID)
	c.subscribers = nil
	c.laidOut = false
	c.dirty = true
}

// SetTitle sets the title drawn centred above the plot area.
func (c *Canvas) SetTitle(title string, size float64) {
	c.title, c.titleSize = title, size
	c.dirty = true
}

// SetEqualAspect makes one data unit span the same number of pixels on both
// axes.
func (c *Canvas) SetEqualAspect(equal bool) {
	c.equalAspect = equal
	c.dirty = true
}

func (c *Canvas) newID() ID {
	c.nextID++
	c.dirty = true
	return c.nextID
}

// DrawLine draws a straight line between two data points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, color transit.Color, width float64) ID {
	id := c.newID()
	c.lines = append(c.lines, lineArt{id: id, x1: x1, y1: y1, x2: x2, y2: y2, color: color, width: width})
	return id
}

// DrawPoint draws a circular marker centred on a data point.
func (c *Canvas) DrawPoint(x, y float64, fill, border transit.Color, radius float64) ID {
	id := c.newID()
	c.points = append(c.points, pointArt{id: id, x: x, y: y, fill: fill, border: border, radius: radius})
	return id
}

// DrawText draws text at (x, y) in style.Space.
func (c *Canvas) DrawText(x, y float64, text string, style TextStyle) ID {
	if style.Align == "" {
		style.Align = AlignMiddle
	}
	if style.Color == "" {
		style.Color = "#000000"
	}
	id := c.newID()
	t := &textArt{id: id, x: x, y: y, text: text, style: style}
	c.texts = append(c.texts, t)
	c.byID[id] = t
	return id
}

// DrawLegend draws the legend anchored to the lower-right corner of the plot
// area. A canvas has at most one legend; drawing another replaces it.
func (c *Canvas) DrawLegend(entries []LegendEntry, style LegendStyle) ID {
	if style.FontSize <= 0 {
		style.FontSize = 10
	}
	if style.BorderWidth <= 0 {
		style.BorderWidth = 2
	}
	if style.Margin <= 0 {
		style.Margin = 10
	}
	id := c.newID()
	c.legend = &legendArt{id: id, entries: append([]LegendEntry(nil), entries...), style: style}
	return id
}

// MoveText repositions a text artifact. Unknown IDs are ignored. Moving text
// does not trigger a layout pass.
func (c *Canvas) MoveText(id ID, x, y float64) {
	if t, ok := c.byID[id]; ok {
		t.x, t.y = x, y
	}
}

// OnLayout registers fn to run at the end of every layout pass.
func (c *Canvas) OnLayout(fn func()) {
	c.subscribers = append(c.subscribers, fn)
}

// Resize changes the canvas size and lays it out again.
func (c *Canvas) Resize(width, height float64) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
	c.Layout()
}

// Layout computes the data-to-screen transform and the legend box, then runs
// every layout subscriber in registration order.
func (c *Canvas) Layout() {
	c.xf = c.computeTransform()
	c.legendB = c.computeLegendBox()
	c.laidOut = true
	c.dirty = false
	c.passes++

	// Subscribers registered during a pass run from the next pass on.
	subs := c.subscribers
	for _, fn := range subs {
		fn()
	}
}

// Extent returns the screen box of a text or legend artifact as of the last
// layout pass, taking later MoveText calls into account.
func (c *Canvas) Extent(id ID) (Box, bool) {
	if !c.laidOut {
		return Box{}, false
	}
	if c.legend != nil && c.legend.id == id {
		return c.legendB, true
	}
	t, ok := c.byID[id]
	if !ok {
		return Box{}, false
	}
	return c.textBox(t), true
}

// DataToScreen maps a data point through the transform of the last layout pass.
func (c *Canvas) DataToScreen(x, y float64) (sx, sy float64) {
	return c.xf.apply(x, y)
}

// PlotArea returns the screen box available to data artifacts.
func (c *Canvas) PlotArea() Box {
	top := frameMargin
	if c.title != "" {
		top += c.titleSize * titleBandRatio
	}
	return Box{
		X0: frameMargin,
		Y0: top,
		X1: c.width - frameMargin,
		Y1: c.height - frameMargin,
	}
}

func (c *Canvas) textBox(t *textArt) Box {
	x, y := t.x, t.y
	if t.style.Space == Data {
		x, y = c.xf.apply(x, y)
	}
	w, h := measureText(t.text, t.style.Size, t.style.Bold)

	var x0 float64
	switch t.style.Align {
	case AlignStart:
		x0 = x
	case AlignEnd:
		x0 = x - w
	default:
		x0 = x - w/2
	}
	return Box{X0: x0, Y0: y - h/2, X1: x0 + w, Y1: y + h/2}
}

var _ Backend = (*Canvas)(nil)
