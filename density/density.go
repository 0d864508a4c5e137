package density

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
)

// MaxNeighborhoodDistance returns the largest Euclidean distance from
// points[pid] to points[ids]; 0 for empty ids.
func MaxNeighborhoodDistance(pid int, points []geom.Vec, ids []int) float64 {
	maxDist := 0.0
	for _, id := range ids {
		if d := geom.Distance(points[pid], points[id]); d > maxDist {
			maxDist = d
		}
	}

	return maxDist
}

// areaDensity returns count/r², or 0 when r is 0.
func areaDensity(count int, r float64) float64 {
	if r == 0 {
		return 0
	}

	return float64(count) / (r * r)
}

// DensityFromR returns |RNeighborhood(pid, r)| / r². A zero radius gives 0.
func DensityFromR(pid int, points []geom.Vec, adj core.Adjacency, r float64) (float64, error) {
	ids, err := RNeighborhood(pid, points, adj, r)
	if err != nil {
		return 0, err
	}

	return areaDensity(len(ids), r), nil
}

// DensityFromK returns |N| / d² where N is KNeighborhood(pid, k) and d the
// largest distance from pid into N. k == 0 uses the raw adjacency list of
// pid as N. A zero d (isolated or coincident points) gives 0.
func DensityFromK(pid int, points []geom.Vec, adj core.Adjacency, k int) (float64, error) {
	if err := checkGraph(points, adj); err != nil {
		return 0, err
	}
	if err := core.CheckIndex("pid", pid, len(points)); err != nil {
		return 0, fmt.Errorf("density: %w", err)
	}
	if k < 0 {
		return 0, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}

	return densityFromK(pid, points, adj, k)
}

func densityFromK(pid int, points []geom.Vec, adj core.Adjacency, k int) (float64, error) {
	ids := adj[pid]
	if k > 0 {
		var err error
		if ids, err = kNeighborhood(pid, points, adj, k); err != nil {
			return 0, err
		}
	}

	return areaDensity(len(ids), MaxNeighborhoodDistance(pid, points, ids)), nil
}

// DensitiesFromR returns DensityFromR for every point with a common radius.
func DensitiesFromR(ctx context.Context, points []geom.Vec, adj core.Adjacency, r float64, opts ...Option) ([]float64, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if err := checkRadius(r); err != nil {
		return nil, err
	}

	out := make([]float64, len(points))
	err := forEach(ctx, len(points), buildOptions(opts), StageDensities, func(i int) error {
		d, err := DensityFromR(i, points, adj, r)
		out[i] = d
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DensitiesFromK returns DensityFromK for every point.
func DensitiesFromK(ctx context.Context, points []geom.Vec, adj core.Adjacency, k int, opts ...Option) ([]float64, error) {
	if err := checkGraph(points, adj); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}

	out := make([]float64, len(points))
	err := forEach(ctx, len(points), buildOptions(opts), StageDensities, func(i int) error {
		d, err := densityFromK(i, points, adj, k)
		out[i] = d
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
