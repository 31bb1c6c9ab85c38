// Package graph holds the renderable network graph and its JSON form.
//
// # Overview
//
// A [Graph] is rebuilt from scratch on every refresh by [Build], which turns a
// [transit.Filtered] view into positioned, coloured station nodes and line
// coloured segment edges. Nothing survives from one build to the next: Build
// clears the graph first, so a selection that shares no line with the previous
// one leaves no trace of it.
//
//	g := graph.New(nil)
//	stats := graph.Build(g, network.ApplyFilter(sel), graph.BuildOptions{})
//	if stats.SkippedEdges > 0 {
//	    logger.Debug("stations without coordinates", "stations", stats.Unpositioned)
//	}
//
// # Styling
//
// A node's fill is the colour of its station's last line when that line is
// visible, and [DefaultFill] otherwise. Every marker is outlined in
// [DefaultBorder]. Every edge takes its line's colour and [DefaultEdgeWidth].
//
// # Serialization
//
// [Document] is the JSON wire format used by `tubemap render -f json` and the
// HTTP API. Use [MarshalGraph], [WriteGraph] and [ReadGraph] to convert.
package graph
