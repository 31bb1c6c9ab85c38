package transit_test

import (
	"fmt"

	"github.com/matzehuels/tubemap/pkg/transit"
)

func ExampleNetwork_ApplyFilter() {
	records := []transit.StationRecord{
		{Name: "A", Latitude: 51.50, Longitude: -0.10},
		{Name: "B", Latitude: 51.51, Longitude: -0.12},
		{Name: "C", Latitude: 51.52, Longitude: -0.14},
	}
	segments := []transit.Segment{
		{From: "A", To: "B", Line: "Central", Distance: 1.20},
		{From: "B", To: "C", Line: "Jubilee", Distance: 2.00},
	}
	n := transit.NewNetwork(records, segments, transit.DefaultPalette())

	f := n.ApplyFilter(transit.NewSelection("Central"))
	for _, st := range f.Stations {
		fmt.Println(st.Name, st.LastLine)
	}
	fmt.Println("segments:", len(f.Segments))
	// Output:
	// A Central
	// B Central
	// segments: 1
}

func ExampleAssignLastLines() {
	stations := []transit.Station{{Name: "Bank"}, {Name: "Oval"}}
	segments := []transit.Segment{
		{From: "Bank", To: "Moorgate", Line: "Northern"},
		{From: "St Pauls", To: "Bank", Line: "Central"},
	}
	for _, st := range transit.AssignLastLines(stations, segments) {
		fmt.Println(st.Name, st.LastLine)
	}
	// Output:
	// Bank Central
	// Oval Unknown
}
