// Package canvas is the plotting surface the network map is drawn on.
//
// [Backend] is the small set of primitives the map renderer needs: lines,
// markers, text, one legend, artifact extents and a layout-completion hook.
// [Canvas] implements it in memory and serialises to SVG.
//
// # Layout
//
// Drawing only records artifacts. A layout pass computes the equal-aspect
// transform from the data bounds of markers and lines, places the legend in
// the lower-right corner of the plot area, and then runs every function
// registered with [Backend.OnLayout]. A subscriber can read [Backend.Extent]
// and move a text artifact relative to what was just laid out:
//
//	legend := c.DrawLegend(entries, canvas.LegendStyle{FontSize: 10})
//	key := c.DrawText(0, 0, "Key", canvas.TextStyle{Size: 11, Bold: true, Space: canvas.Screen})
//	c.OnLayout(func() {
//	    box, _ := c.Extent(legend)
//	    c.MoveText(key, box.CenterX(), box.Y0-12)
//	})
//
// [Canvas.Resize] runs another pass, so the subscriber keeps the text in place
// at any size. Text extents are estimated from golang.org/x/image basic font
// metrics scaled to the font size.
package canvas
