// Package transit models a transit network as tables of stations, segments and
// lines, and derives the filtered views that drive rendering.
//
// # Overview
//
// A [Network] is built once from the two loaded datasets: coordinate records for
// stations and directed segment records carrying a line name and a distance. From
// those it derives:
//
//   - the station table: every segment endpoint, left-joined with coordinates
//   - the line [Catalog]: every distinct line name with a fixed display colour
//
// Both are immutable after construction.
//
// # Filtering
//
// [Network.ApplyFilter] restricts the network to a [Selection] of line names and
// returns three consistent tables:
//
//	f := network.ApplyFilter(transit.NewSelection("Central", "Jubilee"))
//	f.Segments // segments whose line is selected
//	f.Lines    // selected lines that exist in the catalog, catalog order
//	f.Stations // endpoints of f.Segments, each with its LastLine assigned
//
// Selecting nothing is legal and yields three empty tables. Names outside the
// catalog are ignored.
//
// # Last line
//
// Each filtered station carries a representative line used for default node
// colouring. [AssignLastLines] prefers the line of the last segment that ends at
// the station over the line of the last segment that starts there, and falls back
// to [UnknownLastLine]. It is always computed from the segment table it is given,
// so the value reflects only the currently visible lines.
package transit
