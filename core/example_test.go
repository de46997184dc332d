package core_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/almanac/core"
)

// ExampleGraph builds a short category chain and shows first-writer-wins.
func ExampleGraph() {
	g := core.NewGraph(core.WithSingleSuccessor())

	_, _ = g.AddEdge("seed", "soil")
	_, _ = g.AddEdge("soil", "location")
	_, err := g.AddEdge("seed", "water")

	next, _ := g.Successor("seed")
	fmt.Println("seed ->", next)
	fmt.Println("rejected:", errors.Is(err, core.ErrSuccessorExists))
	fmt.Println("vertices:", g.Vertices())

	// Output:
	// seed -> soil
	// rejected: true
	// vertices: [location seed soil water]
}
