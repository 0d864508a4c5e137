// Package neighbors builds proximity ("Riemannian") graphs over a point set.
//
// Two optional capabilities back it:
//
//   - Index: a spatial index answering k-nearest and within-radius queries.
//     NewKDTree provides one on top of gonum's kd-tree.
//   - Triangulator: a Delaunay edge source, used as an alternative graph source.
//
// Absence of a capability is a valid configuration, not a failure: builders
// given a nil Builder or nil Triangulator return a nil Adjacency and a nil
// error. Callers must check for the nil result.
//
// Builders:
//
//   - KNearest(points, k, b, symmetric)           k nearest other points per point.
//   - FromTriangulation(points, tri)              finite Delaunay edges, undirected.
//   - KClosestFromTriangulation(points, k, tri)   Delaunay edges filtered to the k closest.
//   - ClosestK(candidates, k, pid, points)        the per-point closest-k filter.
package neighbors

import (
	"errors"

	"github.com/katalvlaran/pointskel/geom"
)

// ErrBadK indicates a non-positive neighbor count.
var ErrBadK = errors.New("neighbors: k must be positive")

// Neighbor is a query hit: a point index and its Euclidean distance to the query.
type Neighbor struct {
	ID   int
	Dist float64
}

// Index answers proximity queries over a fixed point set. Results are sorted
// by increasing distance, ties by increasing ID.
type Index interface {
	// Nearest returns up to k points closest to p.
	Nearest(p geom.Vec, k int) []Neighbor
	// WithinRadius returns every point at distance <= r from p.
	WithinRadius(p geom.Vec, r float64) []Neighbor
	// Len returns the number of indexed points.
	Len() int
}

// Builder constructs an Index over points. A nil Builder means no spatial
// index backend is configured.
type Builder func(points []geom.Vec) Index

// KDTreeBuilder is the Builder for the gonum-backed kd-tree.
var KDTreeBuilder Builder = func(points []geom.Vec) Index { return NewKDTree(points) }

// Triangulator yields the finite edges of a Delaunay triangulation of points
// as index pairs.
type Triangulator interface {
	DelaunayEdges(points []geom.Vec) ([][2]int, error)
}

// TriangulatorFunc adapts a plain function into a Triangulator.
type TriangulatorFunc func(points []geom.Vec) ([][2]int, error)

// DelaunayEdges calls f(points).
func (f TriangulatorFunc) DelaunayEdges(points []geom.Vec) ([][2]int, error) { return f(points) }
