package density

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
)

// Axis is one principal direction of a point set: the eigenvalue of the
// covariance matrix and its unit eigenvector.
type Axis struct {
	Value  float64
	Vector geom.Vec
}

// principalAxes returns the covariance eigen-pairs of points[ids], largest
// eigenvalue first. Fewer than two points give nil.
func principalAxes(points []geom.Vec, ids []int) []Axis {
	if len(ids) < 2 {
		return nil
	}
	data := mat.NewDense(len(ids), 3, nil)
	for r, id := range ids {
		p := points[id]
		data.SetRow(r, []float64{p.X, p.Y, p.Z})
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var eig mat.EigenSym
	if ok := eig.Factorize(&cov, true); !ok {
		return nil
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// gonum returns ascending eigenvalues; flip to descending
	axes := make([]Axis, 3)
	for i := 0; i < 3; i++ {
		col := 2 - i
		v := geom.Vec{X: vecs.At(0, col), Y: vecs.At(1, col), Z: vecs.At(2, col)}
		axes[i] = Axis{Value: values[col], Vector: canonicalSign(geom.Direction(v))}
	}

	return axes
}

// canonicalSign flips v so that its largest-magnitude component is positive.
// Eigenvectors are defined up to sign; this makes results reproducible.
func canonicalSign(v geom.Vec) geom.Vec {
	c := v.X
	if math.Abs(v.Y) > math.Abs(c) {
		c = v.Y
	}
	if math.Abs(v.Z) > math.Abs(c) {
		c = v.Z
	}
	if c < 0 {
		return geom.Vec{X: -v.X, Y: -v.Y, Z: -v.Z}
	}

	return v
}

// PointsetOrientation returns the direction of the least-squares line
// through points[group], the principal axis of the group. Groups with fewer
// than two points, or with all points coincident, give the zero vector.
func PointsetOrientation(points []geom.Vec, group []int) geom.Vec {
	axes := principalAxes(points, group)
	if axes == nil || axes[0].Value == 0 {
		return geom.Vec{}
	}

	return axes[0].Vector
}

// PointsetsOrientations returns PointsetOrientation for each group.
func PointsetsOrientations(points []geom.Vec, groups [][]int) []geom.Vec {
	out := make([]geom.Vec, len(groups))
	for i, g := range groups {
		out[i] = PointsetOrientation(points, g)
	}

	return out
}

// PrincipalAxes returns the three principal axes, largest variance first,
// of the neighborhood of pid: pid itself plus group (pid is not counted
// twice). A neighborhood of fewer than two points gives nil.
func PrincipalAxes(points []geom.Vec, pid int, group []int) ([]Axis, error) {
	if err := core.CheckIndex("pid", pid, len(points)); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	ids := make([]int, 0, len(group)+1)
	ids = append(ids, pid)
	for _, id := range group {
		if err := core.CheckIndex("group member", id, len(points)); err != nil {
			return nil, fmt.Errorf("density: %w", err)
		}
		if id != pid {
			ids = append(ids, id)
		}
	}

	return principalAxes(points, ids), nil
}

// PrincipalAxesInRadius returns, for every point, the principal axes of its
// r-neighborhood.
func PrincipalAxesInRadius(ctx context.Context, points []geom.Vec, adj core.Adjacency, r float64, opts ...Option) ([][]Axis, error) {
	groups, err := RNeighborhoodsUniform(ctx, points, adj, r, opts...)
	if err != nil {
		return nil, err
	}
	out := make([][]Axis, len(points))
	for i, g := range groups {
		if out[i], err = PrincipalAxes(points, i, g); err != nil {
			return nil, err
		}
	}

	return out, nil
}
