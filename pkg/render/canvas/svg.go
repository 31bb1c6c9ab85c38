package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const fontFamily = "Helvetica, Arial, sans-serif"

// SVG lays the canvas out if anything changed since the last pass and returns
// it as a standalone SVG document.
func (c *Canvas) SVG() []byte {
	if c.dirty || !c.laidOut {
		c.Layout()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width, c.height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="#FFFFFF"/>` + "\n")

	if c.title != "" {
		plot := c.PlotArea()
		renderText(&buf, "title", c.width/2, (frameMargin+plot.Y0)/2, c.title,
			TextStyle{Size: c.titleSize, Bold: true, Color: "#000000", Align: AlignMiddle})
	}

	buf.WriteString(`  <g class="edges">` + "\n")
	for _, l := range c.lines {
		x1, y1 := c.xf.apply(l.x1, l.y1)
		x2, y2 := c.xf.apply(l.x2, l.y2)
		fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
			x1, y1, x2, y2, l.color, l.width)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="stations">` + "\n")
	for _, p := range c.points {
		x, y := c.xf.apply(p.x, p.y)
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			x, y, p.radius, p.fill, p.border)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="labels">` + "\n")
	for _, t := range c.texts {
		if t.style.Space != Data {
			continue
		}
		x, y := c.xf.apply(t.x, t.y)
		renderText(&buf, "label", x, y, t.text, t.style)
	}
	buf.WriteString("  </g>\n")

	if c.legend != nil {
		c.renderLegend(&buf)
	}

	for _, t := range c.texts {
		if t.style.Space != Screen {
			continue
		}
		renderText(&buf, "overlay", t.x, t.y, t.text, t.style)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (c *Canvas) renderLegend(buf *bytes.Buffer) {
	b := c.legendB
	st := c.legend.style
	m := metricsFor(st)

	buf.WriteString(`  <g class="legend">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#FFFFFF" stroke="#000000" stroke-width="%.1f"/>`+"\n",
		b.X0, b.Y0, b.Width(), b.Height(), st.BorderWidth)

	for i, e := range c.legend.entries {
		cy := b.Y0 + m.pad + (float64(i)+0.5)*m.rowHeight
		sx0 := b.X0 + m.pad
		sx1 := sx0 + m.swatchWidth
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`+"\n",
			sx0, cy, sx1, cy, e.Color)
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="#000000" stroke-width="1"/>`+"\n",
			(sx0+sx1)/2, cy, st.FontSize*0.5, e.Color)
		renderText(buf, "legend-label", sx1+m.gap, cy, e.Label,
			TextStyle{Size: st.FontSize, Color: "#000000", Align: AlignStart})
	}
	buf.WriteString("  </g>\n")
}

// renderText writes a text element vertically centred on y. Lines after the
// first are emitted as tspans.
func renderText(buf *bytes.Buffer, class string, x, y float64, text string, st TextStyle) {
	lines := strings.Split(text, "\n")
	lineH := st.Size * lineSpacing
	y0 := y - float64(len(lines)-1)*lineH/2

	weight := "normal"
	if st.Bold {
		weight = "bold"
	}
	fmt.Fprintf(buf, `    <text class="%s" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s" text-anchor="%s" dominant-baseline="central">`,
		class, x, y0, fontFamily, st.Size, weight, st.Color, st.Align)
	for i, line := range lines {
		if i == 0 {
			buf.WriteString(EscapeXML(line))
			continue
		}
		fmt.Fprintf(buf, `<tspan x="%.2f" dy="%.2f">%s</tspan>`, x, lineH, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
