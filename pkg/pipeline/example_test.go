package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/transit"
)

func ExampleExplorer() {
	network := transit.NewNetwork(
		[]transit.StationRecord{
			{Name: "Bond Street", Latitude: 51.5142, Longitude: -0.1494},
			{Name: "Oxford Circus", Latitude: 51.5152, Longitude: -0.1415},
			{Name: "Green Park", Latitude: 51.5067, Longitude: -0.1428},
		},
		[]transit.Segment{
			{From: "Bond Street", To: "Oxford Circus", Line: "Central", Distance: 0.6},
			{From: "Bond Street", To: "Green Park", Line: "Jubilee", Distance: 1.1},
		},
		transit.DefaultPalette(),
	)

	ctx := context.Background()
	ex := pipeline.NewExplorer(network, pipeline.Options{}, "Central")

	res := ex.Refresh(ctx)
	fmt.Println(ex.Selection(), res.Stats.Nodes, res.Stats.Edges)

	res = ex.Toggle(ctx, "Jubilee")
	fmt.Println(ex.Selection(), res.Stats.Nodes, res.Stats.Edges)

	res = ex.SelectNone(ctx)
	fmt.Println(ex.Selection(), res.Stats.Nodes, res.Stats.Edges)
	// Output:
	// [Central] 2 1
	// [Central Jubilee] 3 2
	// [] 0 0
}
