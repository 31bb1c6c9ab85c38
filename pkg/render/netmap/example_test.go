package netmap_test

import (
	"fmt"

	"github.com/matzehuels/tubemap/pkg/render/netmap"
)

func ExampleFormatDistance() {
	fmt.Println(netmap.FormatDistance(4.7))
	fmt.Println(netmap.FormatDistance(0.684))
	// Output:
	// 4.70 km
	// 0.68 km
}

func ExampleWrapLabel() {
	fmt.Println(netmap.WrapLabel("Shoreditch High Street"))
	// Output:
	// Shoreditch
	// High
	// Street
}
