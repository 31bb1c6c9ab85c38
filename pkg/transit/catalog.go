package transit

// FallbackColor is used for any line the palette does not know.
const FallbackColor Color = "#A0A0A0"

// Palette maps known line names to fixed colours. Names it does not contain
// resolve to Fallback.
type Palette struct {
	Colors   map[string]Color
	Fallback Color
}

// DefaultPalette returns the colours of the London lines found in the source data.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[string]Color{
			"Bakerloo":        "#A52A2A",
			"Central":         "#FF0000",
			"Victoria":        "#6EACDA",
			"Waterloo & City": "#9CDBA6",
			"Jubilee":         "#808080",
			"Northern":        "#000000",
			"Piccadilly":      "#0000FF",
			"Metropolitan":    "#800080",
			"H & C":           "#FFC0CB",
			"Circle":          "#FFFF00",
			"District":        "#008000",
			"East London":     "#FFA500",
		},
		Fallback: FallbackColor,
	}
}

// With returns a copy of p with the given colours added or replaced.
// p is not modified.
func (p Palette) With(overrides map[string]Color) Palette {
	colors := make(map[string]Color, len(p.Colors)+len(overrides))
	for k, v := range p.Colors {
		colors[k] = v
	}
	for k, v := range overrides {
		colors[k] = v
	}
	fallback := p.Fallback
	if fallback == "" {
		fallback = FallbackColor
	}
	return Palette{Colors: colors, Fallback: fallback}
}

// Resolve returns the colour for name, or the fallback colour.
func (p Palette) Resolve(name string) Color {
	if c, ok := p.Colors[name]; ok {
		return c
	}
	if p.Fallback == "" {
		return FallbackColor
	}
	return p.Fallback
}

// Catalog is the ordered set of lines present in a segment table.
// It is immutable after BuildCatalog returns.
type Catalog struct {
	lines []Line
	index map[string]int
}

// BuildCatalog collects the distinct line names of segments in order of first
// occurrence and assigns each a colour from palette.
func BuildCatalog(segments []Segment, palette Palette) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, s := range segments {
		if _, seen := c.index[s.Line]; seen {
			continue
		}
		c.index[s.Line] = len(c.lines)
		c.lines = append(c.lines, Line{Name: s.Line, Color: palette.Resolve(s.Line)})
	}
	return c
}

// Lines returns a copy of the catalog entries in catalog order.
func (c *Catalog) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Names returns the line names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.lines))
	for i, l := range c.lines {
		names[i] = l.Name
	}
	return names
}

// Has reports whether name is a catalog line.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Color returns the colour assigned to name.
func (c *Catalog) Color(name string) (Color, bool) {
	i, ok := c.index[name]
	if !ok {
		return "", false
	}
	return c.lines[i].Color, true
}

// Len returns the number of lines.
func (c *Catalog) Len() int { return len(c.lines) }
