// Package metric defines the edge-cost capability the shortest-path engine
// evaluates on demand, and its concrete strategies.
//
// A Metric maps a pair of point indices to a non-negative real. Costs are
// never precomputed: the engine asks for Cost(u, v) while relaxing u→v.
//
// Strategies:
//
//   - Unit:        every edge costs 1 (hop count).
//   - Euclidean:   straight-line distance between the two points.
//   - Anisotropic: radial anisotropic norm of the edge vector around a fixed
//     direction, with axial weight Alpha and radial weight Beta.
//   - Func:        adapts a plain function.
package metric

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pointskel/geom"
)

// Metric computes the cost of traversing the edge a→b.
type Metric interface {
	Cost(a, b int) float64
}

// Func adapts a plain function into a Metric.
type Func func(a, b int) float64

// Cost calls f(a, b).
func (f Func) Cost(a, b int) float64 { return f(a, b) }

// Unit charges 1 per edge.
type Unit struct{}

// Cost returns 1.
func (Unit) Cost(_, _ int) float64 { return 1 }

// Euclidean charges the distance between Points[a] and Points[b].
type Euclidean struct {
	Points []geom.Vec
}

// Cost returns |Points[a] - Points[b]|.
func (e Euclidean) Cost(a, b int) float64 {
	return geom.Distance(e.Points[a], e.Points[b])
}

// Anisotropic charges the radial anisotropic norm of Points[a] - Points[b]
// around Direction. Alpha weighs the component along Direction, Beta the
// component across it.
type Anisotropic struct {
	Points    []geom.Vec
	Direction geom.Vec
	Alpha     float64
	Beta      float64
}

// Cost returns geom.RadialAnisotropicNorm(Points[a]-Points[b], Direction, Alpha, Beta).
func (m Anisotropic) Cost(a, b int) float64 {
	return geom.RadialAnisotropicNorm(r3.Sub(m.Points[a], m.Points[b]), m.Direction, m.Alpha, m.Beta)
}
