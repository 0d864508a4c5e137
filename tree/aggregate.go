package tree

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/neighbors"
)

// CarriedLength returns, for every node, the total edge length of the
// subtree below it: Σ over children c of (carried[c] + |x_c - x|).
// Leaves carry 0.
func CarriedLength(points []geom.Vec, parents []int) ([]float64, error) {
	t, err := build(parents, len(points))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(points))
	for _, u := range t.post {
		sum := 0.0
		for _, c := range t.children[u] {
			sum += out[c] + geom.Distance(points[u], points[c])
		}
		out[u] = sum
	}

	return out, nil
}

// OptimizeOrientations returns a smoothed orientation per node.
//
// The root gets the weighted mean of the unit directions to its children
// (zero when the children's weights sum to 0). Every other node, in
// pre-order, blends its parent's orientation with its own edge direction d:
//
//	w̄ = (w_parent + w) / 2
//	o = dir((w̄·o_parent + w·d) / (w̄ + w))
//
// When w̄ + w is 0 the node keeps d.
func OptimizeOrientations(points []geom.Vec, parents []int, weights []float64) ([]geom.Vec, error) {
	t, err := build(parents, len(points))
	if err != nil {
		return nil, err
	}
	if err := checkWeights(weights, len(points)); err != nil {
		return nil, err
	}

	out := make([]geom.Vec, len(points))
	var first geom.Vec
	sumw := 0.0
	for _, c := range t.children[t.root] {
		first = r3.Add(first, r3.Scale(weights[c], geom.Direction(r3.Sub(points[c], points[t.root]))))
		sumw += weights[c]
	}
	if sumw != 0 {
		out[t.root] = r3.Scale(1/sumw, first)
	}

	for _, u := range t.pre[1:] {
		p := t.parents[u]
		w := weights[u]
		wbar := (weights[p] + w) / 2
		d := geom.Direction(r3.Sub(points[u], points[p]))
		if wbar+w == 0 {
			out[u] = d
			continue
		}
		blend := r3.Scale(1/(wbar+w), r3.Add(r3.Scale(wbar, out[p]), r3.Scale(w, d)))
		out[u] = geom.Direction(blend)
	}

	return out, nil
}

// OptimizePositions moves every non-root node, in pre-order, to a blend of
//
//	ideal = x'_parent + dir(o + o_parent)·|x - x_parent|   (orientation-coherent edge)
//	mid   = x + x_parent - x'_parent                       (edge midpoint preserved)
//	x'    = (mid·w + ideal·w̄) / (w + w̄),  w̄ = (w_parent + w) / 2
//
// where x'_parent is the parent's already-moved position. The root stays
// put. When w + w̄ is 0 the node takes mid.
func OptimizePositions(points, orientations []geom.Vec, parents []int, weights []float64) ([]geom.Vec, error) {
	n := len(points)
	t, err := build(parents, n)
	if err != nil {
		return nil, err
	}
	if err := checkWeights(weights, n); err != nil {
		return nil, err
	}
	if err := core.CheckLength("orientations", len(orientations), n); err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}

	out := make([]geom.Vec, n)
	out[t.root] = points[t.root]
	for _, u := range t.pre[1:] {
		p := t.parents[u]
		w := weights[u]
		wbar := (weights[p] + w) / 2
		length := geom.Distance(points[u], points[p])

		ideal := r3.Add(out[p], r3.Scale(length, geom.Direction(r3.Add(orientations[u], orientations[p]))))
		mid := r3.Sub(r3.Add(points[u], points[p]), out[p])
		if w+wbar == 0 {
			out[u] = mid
			continue
		}
		out[u] = r3.Scale(1/(w+wbar), r3.Add(r3.Scale(w, mid), r3.Scale(wbar, ideal)))
	}

	return out, nil
}

// AverageRadius estimates the mean distance from points to the skeleton.
// For every point, the k skeleton nodes nearest to it are located with the
// index produced by b; the point's sample is its distance to the closest
// segment incident to any of them (to its parent or to one of its
// children). The result is the mean sample.
//
// A nil b, a nil index or no sample at all gives 0.
func AverageRadius(points, nodes []geom.Vec, parents []int, k int, b neighbors.Builder) (float64, error) {
	if k <= 0 {
		return 0, fmt.Errorf("%w: k=%d", ErrBadClosestNodes, k)
	}
	t, err := build(parents, len(nodes))
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, nil
	}
	idx := b(nodes)
	if idx == nil {
		return 0, nil
	}

	sum, samples := 0.0, 0
	for _, p := range points {
		best := math.Inf(1)
		for _, nb := range idx.Nearest(p, k) {
			u := nb.ID
			if d := geom.DistanceToSegment(p, nodes[u], nodes[t.parents[u]]); d < best {
				best = d
			}
			for _, c := range t.children[u] {
				if d := geom.DistanceToSegment(p, nodes[u], nodes[c]); d < best {
					best = d
				}
			}
		}
		if !math.IsInf(best, 1) {
			sum += best
			samples++
		}
	}
	if samples == 0 {
		return 0, nil
	}

	return sum / float64(samples), nil
}

// EstimateRadii distributes avg over the tree by the pipe model:
//
//	r_i = R·(w_i / w_root)^p,   R = avg·Σw / Σ w_i·(w_i / w_root)^p
//
// so that the weight-averaged radius Σ w_i·r_i / Σ w_i equals avg. A zero
// root weight or a zero normalizer gives all zeros.
func EstimateRadii(nodes []geom.Vec, parents []int, weights []float64, avg, pipeExponent float64) ([]float64, error) {
	n := len(nodes)
	t, err := build(parents, n)
	if err != nil {
		return nil, err
	}
	if err := checkWeights(weights, n); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	wr := weights[t.root]
	if wr == 0 {
		return out, nil
	}
	scaled := make([]float64, n)
	total, norm := 0.0, 0.0
	for i, w := range weights {
		scaled[i] = math.Pow(w/wr, pipeExponent)
		total += w
		norm += w * scaled[i]
	}
	if norm == 0 || math.IsNaN(norm) {
		return out, nil
	}
	R := avg * total / norm
	for i := range out {
		out[i] = R * scaled[i]
	}

	return out, nil
}
