package transit

// AssignLastLines returns a copy of stations with LastLine set from segments.
//
// The rule is an ordered precedence over two lookups built from segments, where
// later rows overwrite earlier ones:
//
//  1. the line of the last segment whose To is the station
//  2. the line of the last segment whose From is the station
//  3. UnknownLastLine
//
// Every input station appears in the result, in input order.
func AssignLastLines(stations []Station, segments []Segment) []Station {
	asDestination := make(map[string]string, len(segments))
	asOrigin := make(map[string]string, len(segments))
	for _, s := range segments {
		asDestination[s.To] = s.Line
		asOrigin[s.From] = s.Line
	}

	out := make([]Station, len(stations))
	for i, st := range stations {
		st.LastLine = lastLine(st.Name, asDestination, asOrigin)
		out[i] = st
	}
	return out
}

func lastLine(name string, asDestination, asOrigin map[string]string) string {
	if line, ok := asDestination[name]; ok {
		return line
	}
	if line, ok := asOrigin[name]; ok {
		return line
	}
	return UnknownLastLine
}
