package neighbors

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
)

// KNearest connects every point to its k nearest other points using the
// index produced by b. With symmetric set, the result is symmetrized.
//
// A nil b (no index backend) yields a nil adjacency and a nil error.
//
// Complexity: O(n log n) build plus n queries of O(log n + k).
func KNearest(points []geom.Vec, k int, b Builder, symmetric bool) (core.Adjacency, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}
	if b == nil {
		return nil, nil
	}
	idx := b(points)
	if idx == nil {
		return nil, nil
	}

	adj := core.NewAdjacency(len(points))
	for i, p := range points {
		// ask for one extra hit: the query point itself is indexed
		hits := idx.Nearest(p, k+1)
		nbrs := make([]int, 0, k)
		for _, h := range hits {
			if h.ID == i {
				continue
			}
			if len(nbrs) == k {
				break
			}
			nbrs = append(nbrs, h.ID)
		}
		adj[i] = nbrs
	}
	if symmetric {
		adj = adj.Symmetrize()
	}

	return adj, nil
}

// FromTriangulation builds the undirected adjacency of the finite Delaunay
// edges reported by tri. A nil tri yields a nil adjacency and a nil error.
// Repeated or self edges reported by tri are dropped.
func FromTriangulation(points []geom.Vec, tri Triangulator) (core.Adjacency, error) {
	if tri == nil {
		return nil, nil
	}
	edges, err := tri.DelaunayEdges(points)
	if err != nil {
		return nil, fmt.Errorf("neighbors: triangulation: %w", err)
	}

	n := len(points)
	adj := core.NewAdjacency(n)
	for _, e := range edges {
		if err := core.CheckIndex("edge source", e[0], n); err != nil {
			return nil, err
		}
		if err := core.CheckIndex("edge target", e[1], n); err != nil {
			return nil, err
		}
		adj.AddEdge(e[0], e[1])
	}

	return adj, nil
}

// KClosestFromTriangulation approximates a k-nearest graph from Delaunay
// edges: each point keeps at most its k closest Delaunay neighbors. The
// result may be asymmetric; over-connectivity relative to a true k-NN graph
// is expected. A nil tri yields a nil adjacency and a nil error.
func KClosestFromTriangulation(points []geom.Vec, k int, tri Triangulator) (core.Adjacency, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}
	adj, err := FromTriangulation(points, tri)
	if err != nil || adj == nil {
		return adj, err
	}
	for i := range adj {
		adj[i] = ClosestK(adj[i], k, i, points)
	}

	return adj, nil
}

// ClosestK returns the k candidates closest to points[pid] in a new slice.
// When there are at most k candidates they are all returned in their
// original order. Ties keep candidate order. The candidates slice is never
// modified.
func ClosestK(candidates []int, k int, pid int, points []geom.Vec) []int {
	sorted := append([]int(nil), candidates...)
	if len(sorted) <= k {
		return sorted
	}
	ref := points[pid]
	sort.SliceStable(sorted, func(i, j int) bool {
		return geom.Distance(ref, points[sorted[i]]) < geom.Distance(ref, points[sorted[j]])
	})

	return sorted[:k]
}
