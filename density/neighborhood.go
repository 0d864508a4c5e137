// Package density estimates per-point neighborhoods and densities over a
// point cloud and its neighborhood graph, and derives the density-adaptive
// radii and contraction used to thin a cloud towards its medial axis.
//
// Neighborhoods are graph-geodesic: a point's r-neighborhood is the set of
// points within shortest-path distance r along the graph, found with a
// bounded dijkstra.Range search. Every neighborhood contains its own point.
//
// Densities are area-density proxies (count / radius²), not volumetric
// densities. Degenerate denominators give a density of 0.
//
// Batch operations (the plural forms) accept a context and fan the
// per-point work out with errgroup; results do not depend on the number of
// workers.
package density

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/dijkstra"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/metric"
	"github.com/katalvlaran/pointskel/neighbors"
)

// checkGraph validates that adj describes points.
func checkGraph(points []geom.Vec, adj core.Adjacency) error {
	if err := adj.Validate(len(points)); err != nil {
		return fmt.Errorf("density: %w", err)
	}

	return nil
}

func checkRadius(r float64) error {
	if r < 0 || math.IsNaN(r) {
		return fmt.Errorf("%w: r=%g", ErrBadRadius, r)
	}

	return nil
}

// rangeIDs runs a bounded search from pid and returns the finalized ids.
func rangeIDs(adj core.Adjacency, pid int, m metric.Metric, opts ...dijkstra.Option) ([]int, error) {
	nodes, err := dijkstra.Range(adj, pid, m, opts...)
	if err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}

	return dijkstra.IDs(nodes), nil
}

// RNeighborhood returns the points within graph distance r of pid, pid
// first, ordered by increasing distance.
func RNeighborhood(pid int, points []geom.Vec, adj core.Adjacency, r float64) ([]int, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if err := checkRadius(r); err != nil {
		return nil, err
	}

	return rangeIDs(adj, pid, metric.Euclidean{Points: points}, dijkstra.WithMaxRadius(r))
}

// RNeighborhoods returns the r-neighborhood of every point using its own
// radius radii[i]. len(radii) must equal len(points).
func RNeighborhoods(ctx context.Context, points []geom.Vec, adj core.Adjacency, radii []float64, opts ...Option) ([][]int, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if err := core.CheckLength("radii", len(radii), len(points)); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	for _, r := range radii {
		if err := checkRadius(r); err != nil {
			return nil, err
		}
	}

	m := metric.Euclidean{Points: points}
	out := make([][]int, len(points))
	err := forEach(ctx, len(points), buildOptions(opts), StageRNeighborhoods, func(i int) error {
		ids, err := rangeIDs(adj, i, m, dijkstra.WithMaxRadius(radii[i]))
		out[i] = ids
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// RNeighborhoodsUniform returns the r-neighborhood of every point for a
// single radius r.
func RNeighborhoodsUniform(ctx context.Context, points []geom.Vec, adj core.Adjacency, r float64, opts ...Option) ([][]int, error) {
	if err := checkRadius(r); err != nil {
		return nil, err
	}
	radii := make([]float64, len(points))
	for i := range radii {
		radii[i] = r
	}

	return RNeighborhoods(ctx, points, adj, radii, opts...)
}

// AnisotropicNeighborhood returns the points within anisotropic graph
// distance r of pid, where each edge is measured with the radial
// anisotropic norm around dir (alpha along dir, beta across it).
func AnisotropicNeighborhood(pid int, points []geom.Vec, adj core.Adjacency, r float64, dir geom.Vec, alpha, beta float64) ([]int, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if err := checkRadius(r); err != nil {
		return nil, err
	}
	m := metric.Anisotropic{Points: points, Direction: dir, Alpha: alpha, Beta: beta}

	return rangeIDs(adj, pid, m, dijkstra.WithMaxRadius(r))
}

// AnisotropicNeighborhoods returns the anisotropic neighborhood of every
// point i with radius radii[i] around direction dirs[i].
func AnisotropicNeighborhoods(ctx context.Context, points []geom.Vec, adj core.Adjacency, radii []float64, dirs []geom.Vec, alpha, beta float64, opts ...Option) ([][]int, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if err := core.CheckLength("radii", len(radii), len(points)); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	if err := core.CheckLength("directions", len(dirs), len(points)); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	for _, r := range radii {
		if err := checkRadius(r); err != nil {
			return nil, err
		}
	}

	out := make([][]int, len(points))
	err := forEach(ctx, len(points), buildOptions(opts), StageAnisotropicNeighborhoods, func(i int) error {
		m := metric.Anisotropic{Points: points, Direction: dirs[i], Alpha: alpha, Beta: beta}
		ids, err := rangeIDs(adj, i, m, dijkstra.WithMaxRadius(radii[i]))
		out[i] = ids
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// KNeighborhood returns about k points near pid.
//
// When pid already has at least k graph neighbors, the k closest of them
// (Euclidean) are returned and pid itself is not included. Otherwise a
// range search collects the k graph-closest points, pid first.
func KNeighborhood(pid int, points []geom.Vec, adj core.Adjacency, k int) ([]int, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if err := core.CheckIndex("pid", pid, len(points)); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}
	if k == 0 {
		return []int{}, nil
	}

	return kNeighborhood(pid, points, adj, k)
}

func kNeighborhood(pid int, points []geom.Vec, adj core.Adjacency, k int) ([]int, error) {
	if k <= len(adj[pid]) {
		return neighbors.ClosestK(adj[pid], k, pid, points), nil
	}

	return rangeIDs(adj, pid, metric.Euclidean{Points: points}, dijkstra.WithMaxVisited(k))
}

// KNeighborhoods returns, for every point, the k graph-closest points
// (itself included) found by range search.
func KNeighborhoods(ctx context.Context, points []geom.Vec, adj core.Adjacency, k int, opts ...Option) ([][]int, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}

	m := metric.Euclidean{Points: points}
	out := make([][]int, len(points))
	err := forEach(ctx, len(points), buildOptions(opts), StageKNeighborhoods, func(i int) error {
		if k == 0 {
			out[i] = []int{}
			return nil
		}
		ids, err := rangeIDs(adj, i, m, dijkstra.WithMaxVisited(k))
		out[i] = ids
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
