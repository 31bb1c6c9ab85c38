// Package netmap draws a built network graph as a geographic map.
//
// Stations are markers at their longitude and latitude, segments are straight
// lines in their line colour, and every segment carries its length as a small
// label at its midpoint. Station names are set in bold, one word per line,
// offset slightly from the marker. A legend of the visible lines sits in the
// lower-right corner with a caption centred above it.
//
// The legend's final position is only known after the backend lays itself
// out, so [Render] registers a layout subscriber that moves the caption on
// every pass:
//
//	c := canvas.New(1500, 900)
//	netmap.Render(c, g, filtered.Lines, netmap.Options{})
//	svg := c.SVG()
//	c.Resize(1000, 600) // the caption follows the legend
//
// Station label positions can be adjusted per name with
// [Options.LabelOffsets]; names without an entry use [DefaultLabelOffset].
package netmap
