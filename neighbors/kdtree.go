package neighbors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pointskel/geom"
)

// KDTree is an Index over a 3-D point set backed by gonum's kd-tree.
// It is immutable after construction and safe for concurrent queries.
type KDTree struct {
	tree *kdtree.Tree
	n    int
}

// NewKDTree indexes points. The input slice is not retained.
//
// Complexity: O(n log n) build, O(log n + k) expected per query.
func NewKDTree(points []geom.Vec) *KDTree {
	ps := make(places, len(points))
	for i, p := range points {
		ps[i] = place{id: i, Vec: p}
	}
	t := &KDTree{n: len(points)}
	if len(ps) > 0 {
		t.tree = kdtree.New(ps, false)
	}

	return t
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int { return t.n }

// Nearest returns up to k indexed points closest to p.
func (t *KDTree) Nearest(p geom.Vec, k int) []Neighbor {
	if t.tree == nil || k <= 0 {
		return nil
	}
	keep := kdtree.NewNKeeper(k)
	t.tree.NearestSet(keep, place{id: -1, Vec: p})

	return collect(keep.Heap)
}

// WithinRadius returns every indexed point at distance <= r from p.
func (t *KDTree) WithinRadius(p geom.Vec, r float64) []Neighbor {
	if t.tree == nil || r < 0 {
		return nil
	}
	// place distances are squared, so is the keeper bound
	keep := kdtree.NewDistKeeper(r * r)
	t.tree.NearestSet(keep, place{id: -1, Vec: p})

	return collect(keep.Heap)
}

// collect turns a keeper heap into sorted neighbors, dropping the keeper's
// sentinel entries (nil Comparable).
func collect(h kdtree.Heap) []Neighbor {
	out := make([]Neighbor, 0, len(h))
	for _, cd := range h {
		pl, ok := cd.Comparable.(place)
		if !ok {
			continue
		}
		out = append(out, Neighbor{ID: pl.id, Dist: math.Sqrt(cd.Dist)})
	}
	sortNeighbors(out)

	return out
}

func sortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Dist != ns[j].Dist {
			return ns[i].Dist < ns[j].Dist
		}
		return ns[i].ID < ns[j].ID
	})
}

// place is an indexed point satisfying kdtree.Comparable.
type place struct {
	id int
	r3.Vec
}

// Compare returns the signed distance of p from the plane through c
// perpendicular to dimension d.
func (p place) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(place)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		return p.Z - q.Z
	}
}

// Dims returns 3.
func (p place) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, as the kd-tree expects.
func (p place) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(p.Vec, c.(place).Vec))
}

// places is a kdtree.Interface over a slice of place.
type places []place

func (p places) Index(i int) kdtree.Comparable         { return p[i] }
func (p places) Len() int                              { return len(p) }
func (p places) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p places) Pivot(d kdtree.Dim) int                { return plane{Dim: d, places: p}.Pivot() }

// plane sorts places along one dimension for median partitioning.
type plane struct {
	kdtree.Dim
	places
}

func (p plane) Less(i, j int) bool {
	return p.places[i].Compare(p.places[j], p.Dim) < 0
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.places = p.places[start:end]
	return p
}
func (p plane) Swap(i, j int) { p.places[i], p.places[j] = p.places[j], p.places[i] }
