package graph_test

import (
	"fmt"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/transit"
)

func ExampleBuild() {
	records := []transit.StationRecord{
		{Name: "A", Latitude: 51.50, Longitude: -0.10},
		{Name: "B", Latitude: 51.51, Longitude: -0.12},
		{Name: "C", Latitude: 51.52, Longitude: -0.14},
	}
	segments := []transit.Segment{
		{From: "A", To: "B", Line: "Central", Distance: 1.20},
		{From: "B", To: "C", Line: "Jubilee", Distance: 2.00},
	}
	network := transit.NewNetwork(records, segments, transit.DefaultPalette())

	g := graph.New(nil)
	stats := graph.Build(g, network.ApplyFilter(transit.NewSelection("Central")), graph.BuildOptions{})

	fmt.Println("nodes:", stats.Nodes, "edges:", stats.Edges)
	for _, n := range g.Nodes() {
		fmt.Println(n.ID, n.Fill)
	}
	// Output:
	// nodes: 2 edges: 1
	// A #FF0000
	// B #FF0000
}

func ExampleGraph_Neighbors() {
	g := graph.New(nil)
	_ = g.AddNode(graph.Node{ID: "Bank"})
	_ = g.AddNode(graph.Node{ID: "Moorgate"})
	_ = g.AddNode(graph.Node{ID: "St Pauls"})
	_ = g.AddEdge(graph.Edge{From: "St Pauls", To: "Bank", Line: "Central"})
	_ = g.AddEdge(graph.Edge{From: "Bank", To: "Moorgate", Line: "Northern"})
	_ = g.AddEdge(graph.Edge{From: "Bank", To: "Moorgate", Line: "Circle"})

	fmt.Println(g.Neighbors("Bank"))
	fmt.Println(g.Degree("Bank"))
	// Output:
	// [St Pauls Moorgate]
	// 3
}
