package prim_kruskal

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/metric"
)

// Compute runs the algorithm selected by opts and returns the tree edges
// with their total weight.
func Compute(adj core.Adjacency, m metric.Metric, opts ...Option) ([]Edge, float64, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.Method {
	case MethodKruskal:
		return Kruskal(adj, m)
	case MethodPrim:
		parents, total, err := Prim(adj, cfg.Root, m)
		if err != nil {
			return nil, 0, err
		}
		return TreeEdges(parents, m), total, nil
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownMethod, cfg.Method)
	}
}

// Kruskal computes the minimum spanning tree of the undirected graph adj
// (symmetrized internally) with edge costs from m. It uses a disjoint-set
// forest with path compression and union by rank.
//
// Error Conditions:
//   - core.ErrEmptyInput / other core preconditions for a malformed adj.
//   - ErrBadWeight    : the metric returned NaN for some edge.
//   - ErrDisconnected : |V| > 1 and no spanning tree exists.
//
// Steps:
//  1. Validate adj and symmetrize it.
//  2. Collect each undirected edge once (i < j) in index order.
//  3. Stable-sort edges by weight, so ties keep index order.
//  4. Scan edges, keeping those that join two different sets.
//  5. Stop at |V|-1 edges; fewer means disconnected.
//
// Complexity: O(E log E + α(V)·E). Memory: O(V + E).
func Kruskal(adj core.Adjacency, m metric.Metric) ([]Edge, float64, error) {
	// 1. Validate
	n := len(adj)
	if n == 0 {
		return nil, 0, fmt.Errorf("prim_kruskal: %w", core.ErrEmptyInput)
	}
	if err := adj.Validate(n); err != nil {
		return nil, 0, fmt.Errorf("prim_kruskal: %w", err)
	}
	if n == 1 {
		return []Edge{}, 0, nil
	}
	sym := adj.Symmetrize()

	// 2. Collect edges once, skipping self-loops
	edges := make([]Edge, 0, sym.EdgeCount()/2)
	for i, list := range sym {
		for _, j := range list {
			if j <= i {
				continue
			}
			w := m.Cost(i, j)
			if math.IsNaN(w) {
				return nil, 0, fmt.Errorf("%w: edge %d-%d", ErrBadWeight, i, j)
			}
			edges = append(edges, Edge{From: i, To: j, Weight: w})
		}
	}

	// 3. Sort by weight
	sort.SliceStable(edges, func(a, b int) bool {
		return edges[a].Weight < edges[b].Weight
	})

	// 4. Union-find over node indices
	ds := newDisjointSet(n)
	var (
		mst   = make([]Edge, 0, n-1)
		total float64
	)
	for _, e := range edges {
		if !ds.union(e.From, e.To) {
			continue
		}
		mst = append(mst, e)
		total += e.Weight
		if len(mst) == n-1 {
			break
		}
	}

	// 5. Spanning check
	if len(mst) < n-1 {
		return nil, 0, fmt.Errorf("%w: %d of %d nodes joined", ErrDisconnected, len(mst)+1, n)
	}

	return mst, total, nil
}

// disjointSet is a union-find forest over [0, n).
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

// find walks to the set root, halving the path on the way.
func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union merges the sets of u and v and reports whether they were disjoint.
func (ds *disjointSet) union(u, v int) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}

	return true
}
