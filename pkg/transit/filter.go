package transit

import "slices"

// Network holds the base tables. It is immutable after NewNetwork returns and
// safe for concurrent readers.
type Network struct {
	stations []Station
	segments []Segment
	catalog  *Catalog
	byName   map[string]int
}

// NewNetwork builds the station table and line catalog.
//
// The station table contains every segment endpoint once, origins first and then
// destinations, each in table order. Coordinates are left-joined from records by
// name; a station without a record keeps Positioned == false. When records
// contain the same name twice, the first one wins.
func NewNetwork(records []StationRecord, segments []Segment, palette Palette) *Network {
	coords := make(map[string]StationRecord, len(records))
	for _, r := range records {
		if _, dup := coords[r.Name]; !dup {
			coords[r.Name] = r
		}
	}

	n := &Network{
		segments: slices.Clone(segments),
		catalog:  BuildCatalog(segments, palette),
		byName:   make(map[string]int),
	}

	add := func(name string) {
		if _, seen := n.byName[name]; seen {
			return
		}
		st := Station{Name: name}
		if r, ok := coords[name]; ok {
			st.Longitude, st.Latitude, st.Positioned = r.Longitude, r.Latitude, true
		}
		n.byName[name] = len(n.stations)
		n.stations = append(n.stations, st)
	}
	for _, s := range segments {
		add(s.From)
	}
	for _, s := range segments {
		add(s.To)
	}
	return n
}

// Catalog returns the line catalog.
func (n *Network) Catalog() *Catalog { return n.catalog }

// Stations returns a copy of the station table.
func (n *Network) Stations() []Station { return slices.Clone(n.stations) }

// Segments returns a copy of the segment table.
func (n *Network) Segments() []Segment { return slices.Clone(n.segments) }

// Station returns the station called name.
func (n *Network) Station(name string) (Station, bool) {
	i, ok := n.byName[name]
	if !ok {
		return Station{}, false
	}
	return n.stations[i], true
}

// Summary holds table sizes for logging.
type Summary struct {
	Stations     int
	Unpositioned int
	Segments     int
	Lines        int
}

// Summary counts the base tables.
func (n *Network) Summary() Summary {
	s := Summary{Stations: len(n.stations), Segments: len(n.segments), Lines: n.catalog.Len()}
	for _, st := range n.stations {
		if !st.Positioned {
			s.Unpositioned++
		}
	}
	return s
}

// Filtered is the network restricted to a selection. The three tables are
// always consistent with each other: Stations are exactly the endpoints of
// Segments, and Lines are the selected catalog lines.
type Filtered struct {
	Segments []Segment
	Lines    []Line
	Stations []Station
}

// Empty reports whether nothing is selected or nothing matched.
func (f Filtered) Empty() bool { return len(f.Segments) == 0 }

// ApplyFilter restricts the network to the lines in sel.
//
// Names in sel that are not catalog lines contribute nothing. An empty
// selection yields three empty, non-nil tables. The base tables are never
// modified, so calling ApplyFilter twice with the same selection returns equal
// results.
func (n *Network) ApplyFilter(sel Selection) Filtered {
	f := Filtered{
		Segments: []Segment{},
		Lines:    []Line{},
		Stations: []Station{},
	}

	for _, l := range n.catalog.lines {
		if sel.Has(l.Name) {
			f.Lines = append(f.Lines, l)
		}
	}

	endpoints := make(map[string]struct{})
	for _, s := range n.segments {
		if !sel.Has(s.Line) {
			continue
		}
		f.Segments = append(f.Segments, s)
		endpoints[s.From] = struct{}{}
		endpoints[s.To] = struct{}{}
	}

	visible := make([]Station, 0, len(endpoints))
	for _, st := range n.stations {
		if _, ok := endpoints[st.Name]; ok {
			visible = append(visible, st)
		}
	}
	f.Stations = AssignLastLines(visible, f.Segments)
	return f
}
