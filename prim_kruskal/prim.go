package prim_kruskal

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/metric"
)

// Prim computes the minimum spanning tree of the undirected graph adj
// (symmetrized internally) by growing it from root with a min-heap of
// candidate edges. The tree is returned as a parent array in the same
// shape as a shortest-path tree: parents[root] == root.
//
// Error Conditions:
//   - core.ErrEmptyInput / core.ErrIndexOutOfRange / other core preconditions.
//   - ErrBadWeight    : the metric returned NaN for some edge.
//   - ErrDisconnected : some node is not reachable from root.
//
// Steps:
//  1. Validate adj and root; symmetrize.
//  2. Mark root visited and push its incident edges.
//  3. Pop the lightest edge (ties by push order); skip it if its far end is
//     visited, otherwise attach the far end and push its edges.
//  4. Fewer than |V| visited nodes means disconnected.
//
// Complexity: O(E log E) time, O(V + E) memory.
func Prim(adj core.Adjacency, root int, m metric.Metric) ([]int, float64, error) {
	// 1. Validate
	n := len(adj)
	if n == 0 {
		return nil, 0, fmt.Errorf("prim_kruskal: %w", core.ErrEmptyInput)
	}
	if err := adj.Validate(n); err != nil {
		return nil, 0, fmt.Errorf("prim_kruskal: %w", err)
	}
	if err := core.CheckIndex("root", root, n); err != nil {
		return nil, 0, fmt.Errorf("prim_kruskal: %w", err)
	}
	sym := adj.Symmetrize()

	g := &grower{
		adj:     sym,
		m:       m,
		visited: make([]bool, n),
		parents: make([]int, n),
	}
	for i := range g.parents {
		g.parents[i] = core.NoParent
	}

	// 2. Seed with the root
	g.parents[root] = root
	if err := g.visit(root); err != nil {
		return nil, 0, err
	}
	count := 1

	// 3. Main loop
	for g.pq.Len() > 0 && count < n {
		e := heap.Pop(&g.pq).(*edgeItem)
		if g.visited[e.to] {
			continue
		}
		g.parents[e.to] = e.from
		g.total += e.weight
		count++
		if err := g.visit(e.to); err != nil {
			return nil, 0, err
		}
	}

	// 4. Spanning check
	if count < n {
		return nil, 0, fmt.Errorf("%w: %d of %d nodes reached from %d", ErrDisconnected, count, n, root)
	}

	return g.parents, g.total, nil
}

// TreeEdges lists the edges of a parent-array tree in node order, weighted
// by m. Roots and unreached nodes contribute no edge.
func TreeEdges(parents []int, m metric.Metric) []Edge {
	edges := make([]Edge, 0, len(parents))
	for v, p := range parents {
		if p == v || p == core.NoParent {
			continue
		}
		edges = append(edges, Edge{From: p, To: v, Weight: m.Cost(p, v)})
	}

	return edges
}

// grower holds the mutable state of one Prim run.
type grower struct {
	adj     core.Adjacency
	m       metric.Metric
	visited []bool
	parents []int
	total   float64
	pq      edgePQ
	seq     int
}

// visit marks u and pushes every edge from u to an unvisited node.
func (g *grower) visit(u int) error {
	g.visited[u] = true
	for _, v := range g.adj[u] {
		if g.visited[v] {
			continue
		}
		w := g.m.Cost(u, v)
		if math.IsNaN(w) {
			return fmt.Errorf("%w: edge %d-%d", ErrBadWeight, u, v)
		}
		heap.Push(&g.pq, &edgeItem{from: u, to: v, weight: w, seq: g.seq})
		g.seq++
	}

	return nil
}

// edgeItem is a candidate edge on the heap.
type edgeItem struct {
	from, to int
	weight   float64
	seq      int
}

// edgePQ implements heap.Interface as a min-heap of candidate edges ordered
// by (weight, seq).
type edgePQ []*edgeItem

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool {
	if pq[i].weight != pq[j].weight {
		return pq[i].weight < pq[j].weight
	}
	return pq[i].seq < pq[j].seq
}

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(*edgeItem)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
