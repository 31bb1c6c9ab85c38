package canvas

// transform maps data coordinates to screen pixels:
// sx = offX + x*scaleX, sy = offY - y*scaleY.
type transform struct {
	scaleX, scaleY float64
	offX, offY     float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.offX + x*t.scaleX, t.offY - y*t.scaleY
}

// dataBounds returns the bounding box of markers and lines. An empty canvas
// spans the unit square.
func (c *Canvas) dataBounds() (minX, minY, maxX, maxY float64) {
	first := true
	grow := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	for _, p := range c.points {
		grow(p.x, p.y)
	}
	for _, l := range c.lines {
		grow(l.x1, l.y1)
		grow(l.x2, l.y2)
	}
	if first {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}

func (c *Canvas) computeTransform() transform {
	minX, minY, maxX, maxY := c.dataBounds()
	dw, dh := maxX-minX, maxY-minY

	// A single station or a straight horizontal or vertical run still needs a
	// non-zero span on both axes.
	switch {
	case dw == 0 && dh == 0:
		dw, dh = 0.01, 0.01
	case dw == 0:
		dw = dh
	case dh == 0:
		dh = dw
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	dw *= 1 + 2*dataPaddingRatio
	dh *= 1 + 2*dataPaddingRatio
	minX, maxX = cx-dw/2, cx+dw/2
	minY, maxY = cy-dh/2, cy+dh/2

	plot := c.PlotArea()
	pw, ph := max(plot.Width(), 1), max(plot.Height(), 1)
	sx, sy := pw/dw, ph/dh
	if c.equalAspect {
		s := min(sx, sy)
		sx, sy = s, s
	}

	return transform{
		scaleX: sx,
		scaleY: sy,
		offX:   plot.X0 + (pw-dw*sx)/2 - minX*sx,
		offY:   plot.Y0 + (ph-dh*sy)/2 + maxY*sy,
	}
}

// legendMetrics derives the legend geometry from its font size, following the
// proportions of a matplotlib legend with borderpad=1.
type legendMetrics struct {
	pad, rowHeight, swatchWidth, gap float64
}

func metricsFor(style LegendStyle) legendMetrics {
	fs := style.FontSize
	return legendMetrics{
		pad:         fs,
		rowHeight:   fs * 1.8,
		swatchWidth: fs * 2.5,
		gap:         fs * 0.6,
	}
}

func (c *Canvas) computeLegendBox() Box {
	if c.legend == nil {
		return Box{}
	}
	m := metricsFor(c.legend.style)

	labelW := 0.0
	for _, e := range c.legend.entries {
		w, _ := measureText(e.Label, c.legend.style.FontSize, false)
		labelW = max(labelW, w)
	}
	w := 2*m.pad + m.swatchWidth
	if labelW > 0 {
		w += m.gap + labelW
	}
	h := 2*m.pad + float64(len(c.legend.entries))*m.rowHeight

	plot := c.PlotArea()
	x1 := plot.X1 - c.legend.style.Margin
	y1 := plot.Y1 - c.legend.style.Margin
	return Box{X0: x1 - w, Y0: y1 - h, X1: x1, Y1: y1}
}
