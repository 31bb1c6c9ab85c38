package canvas

import (
	"math"
	"strings"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestExtentBeforeLayout(t *testing.T) {
	c := New(800, 600)
	id := c.DrawText(0, 0, "Bank", TextStyle{Size: 8})
	if _, ok := c.Extent(id); ok {
		t.Error("Extent reported a box before the first layout pass")
	}
	c.Layout()
	if _, ok := c.Extent(id); !ok {
		t.Error("Extent missing after layout")
	}
}

func TestLegendAnchoredLowerRight(t *testing.T) {
	c := New(800, 600)
	id := c.DrawLegend([]LegendEntry{{Label: "Central", Color: "#FF0000"}}, LegendStyle{FontSize: 10, Margin: 10})
	c.Layout()

	box, ok := c.Extent(id)
	if !ok {
		t.Fatal("legend extent missing")
	}
	plot := c.PlotArea()
	if !approx(box.X1, plot.X1-10) || !approx(box.Y1, plot.Y1-10) {
		t.Errorf("legend box %+v not anchored to plot %+v", box, plot)
	}
	if box.Width() <= 0 || box.Height() <= 0 {
		t.Errorf("legend box %+v is empty", box)
	}
}

func TestEmptyLegendKeepsFrame(t *testing.T) {
	c := New(800, 600)
	id := c.DrawLegend(nil, LegendStyle{})
	c.Layout()

	box, ok := c.Extent(id)
	if !ok || box.Width() <= 0 || box.Height() <= 0 {
		t.Errorf("empty legend box = %+v, %v; want a visible frame", box, ok)
	}
}

func TestLegendGrowsWithEntries(t *testing.T) {
	c := New(800, 600)
	one := c.DrawLegend([]LegendEntry{{Label: "Central"}}, LegendStyle{FontSize: 10})
	c.Layout()
	small, _ := c.Extent(one)

	two := c.DrawLegend([]LegendEntry{{Label: "Central"}, {Label: "Waterloo & City"}}, LegendStyle{FontSize: 10})
	c.Layout()
	large, _ := c.Extent(two)

	if large.Height() <= small.Height() || large.Width() <= small.Width() {
		t.Errorf("legend did not grow: %+v -> %+v", small, large)
	}
	if _, ok := c.Extent(one); ok {
		t.Error("replaced legend still resolves")
	}
}

func TestEqualAspect(t *testing.T) {
	c := New(1000, 500)
	c.SetEqualAspect(true)
	c.DrawPoint(0, 0, "#000000", "#000000", 3)
	c.DrawPoint(1, 1, "#000000", "#000000", 3)
	c.Layout()

	x0, y0 := c.DataToScreen(0, 0)
	x1, y1 := c.DataToScreen(1, 1)
	if !approx(x1-x0, y0-y1) {
		t.Errorf("unequal scales: dx=%v dy=%v", x1-x0, y0-y1)
	}
	if y1 >= y0 {
		t.Error("larger latitude should be higher on screen")
	}

	plot := c.PlotArea()
	for _, x := range []float64{x0, x1} {
		if x < plot.X0 || x > plot.X1 {
			t.Errorf("x=%v outside plot area %+v", x, plot)
		}
	}
}

func TestDegenerateBounds(t *testing.T) {
	c := New(800, 600)
	c.SetEqualAspect(true)
	c.DrawPoint(-0.1, 51.5, "#000000", "#000000", 3)
	c.Layout()

	x, y := c.DataToScreen(-0.1, 51.5)
	plot := c.PlotArea()
	if math.IsNaN(x) || math.IsInf(x, 0) || !approx(x, (plot.X0+plot.X1)/2) || !approx(y, (plot.Y0+plot.Y1)/2) {
		t.Errorf("single point at (%v, %v), want plot centre", x, y)
	}
}

func TestLayoutSubscribers(t *testing.T) {
	c := New(800, 600)
	var order []int
	c.OnLayout(func() { order = append(order, 1) })
	c.OnLayout(func() { order = append(order, 2) })

	c.Layout()
	c.Resize(400, 300)

	if got := len(order); got != 4 || order[0] != 1 || order[1] != 2 {
		t.Errorf("subscriber calls = %v, want [1 2 1 2]", order)
	}
	if c.Passes() != 2 {
		t.Errorf("Passes() = %d, want 2", c.Passes())
	}
	if w, h := c.Size(); w != 400 || h != 300 {
		t.Errorf("Size() = %vx%v, want 400x300", w, h)
	}
}

func TestMoveTextDoesNotRelayout(t *testing.T) {
	c := New(800, 600)
	id := c.DrawText(0, 0, "Key", TextStyle{Size: 11, Space: Screen})
	c.OnLayout(func() { c.MoveText(id, 100, 50) })
	c.Layout()

	box, _ := c.Extent(id)
	if !approx(box.CenterX(), 100) || !approx((box.Y0+box.Y1)/2, 50) {
		t.Errorf("moved text box = %+v, want centred on (100, 50)", box)
	}

	c.SVG()
	if c.Passes() != 1 {
		t.Errorf("Passes() = %d after SVG with nothing new drawn, want 1", c.Passes())
	}
}

func TestClear(t *testing.T) {
	c := New(800, 600)
	id := c.DrawText(0, 0, "Bank", TextStyle{Size: 8})
	c.OnLayout(func() {})
	c.SetTitle("Title", 30)
	c.Layout()

	c.Clear()
	if c.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after Clear, want 0", c.Subscribers())
	}
	c.Layout()
	if _, ok := c.Extent(id); ok {
		t.Error("text from before Clear still resolves")
	}
	if next := c.DrawText(0, 0, "Oval", TextStyle{Size: 8}); next == id {
		t.Error("ID reused after Clear")
	}
	if strings.Contains(string(c.SVG()), "Title") {
		t.Error("title survived Clear")
	}
}

func TestTextAlignment(t *testing.T) {
	c := New(800, 600)
	start := c.DrawText(100, 100, "abc", TextStyle{Size: 13, Align: AlignStart, Space: Screen})
	end := c.DrawText(100, 100, "abc", TextStyle{Size: 13, Align: AlignEnd, Space: Screen})
	mid := c.DrawText(100, 100, "abc", TextStyle{Size: 13, Space: Screen})
	c.Layout()

	bs, _ := c.Extent(start)
	be, _ := c.Extent(end)
	bm, _ := c.Extent(mid)
	if !approx(bs.X0, 100) || !approx(be.X1, 100) || !approx(bm.CenterX(), 100) {
		t.Errorf("start=%+v end=%+v middle=%+v", bs, be, bm)
	}
	// basicfont advances 7px per glyph at 13px.
	if !approx(bs.Width(), 21) {
		t.Errorf("width = %v, want 21", bs.Width())
	}
}

func TestMultilineTextHeight(t *testing.T) {
	one, h1 := measureText("Covent", 10, false)
	two, h2 := measureText("Covent\nGarden", 10, false)
	if !approx(h2, 2*h1) {
		t.Errorf("two-line height = %v, want %v", h2, 2*h1)
	}
	if !approx(one, two) {
		t.Errorf("width of equal-length lines changed: %v vs %v", one, two)
	}
}

func TestSVG(t *testing.T) {
	c := New(640, 480)
	c.SetTitle("Public Transport Network of London", 30)
	c.SetEqualAspect(true)
	c.DrawLine(0, 0, 1, 1, "#FF0000", 3)
	c.DrawPoint(0, 0, "#FF0000", "#000000", 6)
	c.DrawText(0, 0, "Elephant\n&\nCastle", TextStyle{Size: 8, Bold: true})
	c.DrawLegend([]LegendEntry{{Label: "Waterloo & City", Color: "#9CDBA6"}}, LegendStyle{})

	svg := string(c.SVG())
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 640.0 480.0"`,
		`Public Transport Network of London`,
		`stroke="#FF0000" stroke-width="3.0"`,
		`<circle`,
		`Elephant<tspan`,
		`&amp;`,
		`Waterloo &amp; City`,
		`class="legend"`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}
