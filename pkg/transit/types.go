package transit

// UnknownLastLine is assigned to a station that no segment in the current table
// references, in either role.
const UnknownLastLine = "Unknown"

// Color is a display colour in CSS hex notation (e.g. "#FF0000").
type Color string

// String returns the colour as a CSS value.
func (c Color) String() string { return string(c) }

// StationRecord is one row of the coordinate dataset.
type StationRecord struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Station is a segment endpoint with its coordinates and derived attributes.
//
// Positioned is false when the coordinate dataset had no row for the station;
// such stations never appear in a rendered graph.
type Station struct {
	Name       string
	Longitude  float64
	Latitude   float64
	Positioned bool

	// LastLine is the representative line for default colouring. It is only
	// meaningful on stations returned by AssignLastLines or ApplyFilter.
	LastLine string
}

// Segment is a directed connection between two stations on one line.
// Two segments between the same stations on different lines are distinct.
type Segment struct {
	From     string
	To       string
	Line     string
	Distance float64 // kilometres
}

// Key identifies a segment by its endpoints and line.
type Key struct {
	From, To, Line string
}

// Key returns the identity of the segment.
func (s Segment) Key() Key { return Key{From: s.From, To: s.To, Line: s.Line} }

// Line is a named route with its display colour.
type Line struct {
	Name  string
	Color Color
}
