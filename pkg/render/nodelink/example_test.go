package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.New(nil)
	_ = g.AddNode(graph.Node{ID: "Oval", X: -0.1125, Y: 51.4819, Fill: "#000000", Border: "#000000"})
	_ = g.AddNode(graph.Node{ID: "Stockwell", X: -0.1228, Y: 51.4723, Fill: "#000000", Border: "#000000"})
	_ = g.AddEdge(graph.Edge{From: "Oval", To: "Stockwell", Line: "Northern", Weight: 1.1, Color: "#000000"})

	dot := nodelink.ToDOT(g, nil, nodelink.Options{Distances: true})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "--") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "Oval" -- "Stockwell" [color="#000000", label="1.10 km"];
}
