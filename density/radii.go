package density

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
)

// AdaptiveRadii maps densities into [minRadius, maxRadius]:
//
//	t = (d - min(density)) / (max(density) - min(density))
//	r = minRadius + (maxRadius - minRadius)·remap(t)
//
// A nil remap is linear. When every density is equal the span is zero and
// every radius is minRadius. An empty density gives an empty result.
func AdaptiveRadii(density []float64, minRadius, maxRadius float64, remap Remap) ([]float64, error) {
	if maxRadius < minRadius {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrBadRange, minRadius, maxRadius)
	}
	radii := make([]float64, len(density))
	if len(density) == 0 {
		return radii, nil
	}

	lo, hi := floats.Min(density), floats.Max(density)
	span := hi - lo
	delta := maxRadius - minRadius
	for i, d := range density {
		if span == 0 || math.IsNaN(span) {
			radii[i] = minRadius
			continue
		}
		t := (d - lo) / span
		if remap != nil {
			t = remap(t)
		}
		radii[i] = minRadius + delta*t
	}

	return radii, nil
}

// AdaptiveContraction moves every point to the centroid of its anisotropic
// neighborhood, with the neighborhood radius adapted to the local density
// and the anisotropy oriented along orientations[i].
func AdaptiveContraction(ctx context.Context, points, orientations []geom.Vec, adj core.Adjacency, density []float64,
	minRadius, maxRadius float64, remap Remap, alpha, beta float64, opts ...Option) ([]geom.Vec, error) {
	if err := core.CheckLength("density", len(density), len(points)); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	radii, err := AdaptiveRadii(density, minRadius, maxRadius, remap)
	if err != nil {
		return nil, err
	}
	groups, err := AnisotropicNeighborhoods(ctx, points, adj, radii, orientations, alpha, beta, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]geom.Vec, len(groups))
	for i, g := range groups {
		out[i] = geom.Centroid(points, g)
	}

	return out, nil
}
