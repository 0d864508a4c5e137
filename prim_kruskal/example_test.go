package prim_kruskal_test

import (
	"fmt"

	"github.com/katalvlaran/pointskel/prim_kruskal"
)

// ExampleKruskal reduces a pentagon 0-1 (1), 1-2 (2), 2-3 (3), 3-4 (5),
// 0-4 (12) to its four lightest edges.
func ExampleKruskal() {
	adj, m := weighted(5, [][3]float64{{0, 1, 1}, {0, 4, 12}, {1, 2, 2}, {2, 3, 3}, {3, 4, 5}})

	edges, total, err := prim_kruskal.Kruskal(adj, m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Total: %.0f, Edges:", total)
	for _, e := range edges {
		fmt.Printf(" %d-%d", e.From, e.To)
	}
	fmt.Println()
	// Output: Total: 11, Edges: 0-1 1-2 2-3 3-4
}

// ExamplePrim grows the same pentagon from node 0 into a parent array.
func ExamplePrim() {
	adj, m := weighted(5, [][3]float64{{0, 1, 1}, {0, 4, 12}, {1, 2, 2}, {2, 3, 3}, {3, 4, 5}})

	parents, total, err := prim_kruskal.Prim(adj, 0, m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(parents, total)
	// Output: [0 0 1 2 3] 11
}
