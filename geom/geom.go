// Package geom holds the small set of 3-D vector helpers shared by the
// skeleton pipeline. Vectors are gonum's r3.Vec so callers can use the full
// r3 function set (Add, Sub, Scale, Dot, Cross, Norm) directly.
//
// Degenerate inputs never produce garbage silently:
//
//   - Direction of the zero vector is the zero vector.
//   - DistanceToSegment on a zero-length segment is the point distance.
//   - Centroid of an empty group is the NaN vector.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a point or direction in 3-D space.
type Vec = r3.Vec

// NaNVec is returned wherever a geometric mean is undefined.
var NaNVec = Vec{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

// IsNaN reports whether any component of v is NaN.
func IsNaN(v Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Direction returns v scaled to unit length, or the zero vector when v is zero.
func Direction(v Vec) Vec {
	n := r3.Norm(v)
	if n == 0 {
		return Vec{}
	}

	return r3.Scale(1/n, v)
}

// RadialAnisotropicNorm measures v with separate weights along and across dir:
//
//	a = v·d, b = v - a·d, result = sqrt(alpha·a² + beta·|b|²)
//
// where d is dir normalized. A zero dir degrades to sqrt(beta)·|v|.
func RadialAnisotropicNorm(v, dir Vec, alpha, beta float64) float64 {
	d := Direction(dir)
	a := r3.Dot(v, d)
	b := r3.Sub(v, r3.Scale(a, d))

	return math.Sqrt(alpha*a*a + beta*r3.Norm2(b))
}

// DistanceToSegment returns the distance from p to the closest point of the
// segment [a, b].
func DistanceToSegment(p, a, b Vec) float64 {
	ab := r3.Sub(b, a)
	l2 := r3.Norm2(ab)
	if l2 == 0 {
		return Distance(p, a)
	}
	t := r3.Dot(r3.Sub(p, a), ab) / l2
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}

	return Distance(p, r3.Add(a, r3.Scale(t, ab)))
}

// Centroid returns the arithmetic mean of points[ids]. Empty ids yield NaNVec.
// Indices are not range-checked; callers validate them upstream.
func Centroid(points []Vec, ids []int) Vec {
	if len(ids) == 0 {
		return NaNVec
	}
	var sum Vec
	for _, id := range ids {
		sum = r3.Add(sum, points[id])
	}

	return r3.Scale(1/float64(len(ids)), sum)
}
