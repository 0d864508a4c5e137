// Package prune simplifies a skeleton tree: it selects nodes that carry no
// shape information (very short edges, straight-through nodes, siblings
// swallowed by a thicker sibling) and removes them with an index remap.
//
// Filtering and removal are separate so callers can inspect or edit the
// selection before applying it:
//
//	drop, err := prune.FilterShortNodes(nodes, parents, radii, 0.5, 0.5)
//	if err != nil {
//	    return err
//	}
//	res, err := prune.RemoveNodes(drop, nodes, parents, radii)
package prune

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/dfs"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/tree"
)

// ColinearTolerance bounds |dir(x - x_parent) - dir(x_child - x)| below
// which a node with a single child is treated as a straight-through node.
const ColinearTolerance = 0.1

// FilterShortNodes walks the tree in post-order and returns the sorted,
// duplicate-free indices of nodes to remove:
//
//  1. a child whose edge is shorter than edgeLen is removed;
//  2. when exactly one child survives step 1 and the node is not the root,
//     the node itself is removed if parent→node and node→child are colinear
//     within ColinearTolerance;
//  3. when two or more children survive, each pair (a, b) is tested both
//     ways: a is removed if Overlaps places a's midpoint inside b's
//     cylinder, otherwise b is removed if the reverse holds.
//
// The root is never selected.
//
// Complexity: O(n + Σ deg²).
func FilterShortNodes(nodes []geom.Vec, parents []int, radii []float64, edgeLen, overlap float64) ([]int, error) {
	n := len(nodes)
	if err := core.CheckLength("parents", len(parents), n); err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	if err := core.CheckLength("radii", len(radii), n); err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	children, root, err := tree.Children(parents)
	if err != nil {
		return nil, err
	}
	post, err := dfs.PostOrder(children, root)
	if err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}

	marked := make([]bool, n)
	kept := make([]int, 0, 8)
	for _, u := range post {
		x := nodes[u]

		// 1) short edges
		kept = kept[:0]
		for _, c := range children[u] {
			if geom.Distance(x, nodes[c]) < edgeLen {
				marked[c] = true
				continue
			}
			kept = append(kept, c)
		}

		switch len(kept) {
		case 0:
		case 1:
			// 2) straight-through node
			if u == root {
				break
			}
			in := geom.Direction(r3.Sub(x, nodes[parents[u]]))
			out := geom.Direction(r3.Sub(nodes[kept[0]], x))
			if r3.Norm(r3.Sub(in, out)) < ColinearTolerance {
				marked[u] = true
			}
		default:
			// 3) sibling overlap, asymmetric
			for i, a := range kept {
				for _, b := range kept[i+1:] {
					switch {
					case Overlaps(x, radii[u], nodes[a], radii[a], nodes[b], radii[b], overlap):
						marked[a] = true
					case Overlaps(x, radii[u], nodes[b], radii[b], nodes[a], radii[a], overlap):
						marked[b] = true
					}
				}
			}
		}
	}

	out := make([]int, 0)
	for i, m := range marked {
		if m {
			out = append(out, i)
		}
	}

	return out, nil
}

// Overlaps reports whether the point at factor along root→p1 lies inside
// the cone-interpolated cylinder root→p2, whose radius grows linearly from
// rootRadius at root to r2 at p2:
//
//	m = (p1 - root)·factor
//	d = dir(p2 - root), u = m·d, t = u / |p2 - root|
//	|m - u·d| < rootRadius + (r2 - rootRadius)·t
//
// The radius of segment 1 does not enter the test. A zero-length root→p2
// segment never contains anything.
func Overlaps(root geom.Vec, rootRadius float64, p1 geom.Vec, _ float64, p2 geom.Vec, r2 float64, factor float64) bool {
	mid := r3.Scale(factor, r3.Sub(p1, root))
	axis := r3.Sub(p2, root)
	length := r3.Norm(axis)
	if length == 0 {
		return false
	}
	d := r3.Scale(1/length, axis)
	u := r3.Dot(mid, d)
	t := u / length
	radius := rootRadius + (r2-rootRadius)*t

	return r3.Norm(r3.Sub(mid, r3.Scale(u, d))) < radius
}

// dedupe returns ids sorted with repeats dropped.
func dedupe(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	j := 0
	for i, v := range out {
		if i > 0 && v == out[j-1] {
			continue
		}
		out[j] = v
		j++
	}

	return out[:j]
}
