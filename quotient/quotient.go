// Package quotient clusters a point cloud by graph distance to a root and
// derives the quotient (macro) graph of the clusters.
//
// Points are walked in increasing distance bins [j·binSize, (j+1)·binSize).
// Within a bin, points are split into groups by flood fill over the original
// adjacency restricted to the bin's distance window. A bin that holds no
// point widens the next window: its lower bound stays where it was. Points
// at +Inf distance (unreached by the distance search) stop the walk and
// belong to no group.
//
// Each group becomes a node of the macro graph; two groups are adjacent iff
// some member of one has a graph neighbor in the other.
package quotient

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
)

// Sentinel errors for clustering.
var (
	// ErrBadBinSize indicates a non-positive or non-finite bin width.
	ErrBadBinSize = errors.New("quotient: bin size must be positive and finite")

	// ErrBadDistance indicates a negative or NaN distance to the root.
	ErrBadDistance = errors.New("quotient: distances must be non-negative")
)

// SortedOrder returns the indices of dist sorted by ascending value. Equal
// values keep index order.
func SortedOrder(dist []float64) []int {
	order := make([]int, len(dist))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] < dist[order[b]]
	})

	return order
}

// Points groups the points of adj by distance bin and graph connectivity.
// dist[i] is the distance of point i to the root, +Inf if unreached.
//
// Every reached point lands in exactly one group. Groups are emitted bin by
// bin; within a bin, seeds are taken in increasing distance.
//
// Complexity: O(V log V + E).
func Points(binSize float64, adj core.Adjacency, dist []float64) ([][]int, error) {
	if binSize <= 0 || math.IsNaN(binSize) || math.IsInf(binSize, 0) {
		return nil, fmt.Errorf("%w: %g", ErrBadBinSize, binSize)
	}
	n := len(adj)
	if err := adj.Validate(n); err != nil {
		return nil, fmt.Errorf("quotient: %w", err)
	}
	if err := core.CheckLength("distances", len(dist), n); err != nil {
		return nil, fmt.Errorf("quotient: %w", err)
	}
	for i, d := range dist {
		if d < 0 || math.IsNaN(d) {
			return nil, fmt.Errorf("%w: dist[%d]=%g", ErrBadDistance, i, d)
		}
	}

	c := &clusterer{
		adj:   adj,
		dist:  dist,
		order: SortedOrder(dist),
		seen:  make([]bool, n),
	}

	return c.run(binSize), nil
}

// clusterer holds the state of one Points call.
type clusterer struct {
	adj    core.Adjacency
	dist   []float64
	order  []int
	seen   []bool
	groups [][]int
}

func (c *clusterer) run(binSize float64) [][]int {
	n := len(c.order)
	low, high := 0.0, binSize // current window [low, high)
	next, cur := 0, 0
	for next < n {
		for next < n && c.dist[c.order[next]] < high {
			next++
		}
		if next == cur {
			d := c.dist[c.order[next]]
			if math.IsInf(d, 1) {
				break
			}
			// empty bin: jump the upper bound past the next distance, keep low
			high = boundAbove(d, binSize)
			continue
		}

		for _, seed := range c.order[cur:next] {
			if !c.seen[seed] {
				c.groups = append(c.groups, c.flood(seed, low, high))
			}
		}
		cur = next
		low = high
		high = boundAbove(high, binSize)
	}

	return c.groups
}

// boundAbove returns the first bin boundary k·binSize strictly above x.
// Where float64 can no longer tell consecutive boundaries apart, the next
// representable value above x stands in for it.
func boundAbove(x, binSize float64) float64 {
	k := math.Floor(x / binSize)
	for _, step := range []float64{1, 2} {
		if b := (k + step) * binSize; b > x {
			return b
		}
	}

	return math.Nextafter(x, math.Inf(1))
}

// flood collects the points connected to seed whose distance is in [low, high).
func (c *clusterer) flood(seed int, low, high float64) []int {
	c.seen[seed] = true
	group := []int{seed}
	stack := []int{seed}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range c.adj[u] {
			d := c.dist[v]
			if c.seen[v] || d < low || d >= high {
				continue
			}
			c.seen[v] = true
			group = append(group, v)
			stack = append(stack, v)
		}
	}

	return group
}

// Adjacency returns the macro graph over groups: group a lists group b iff
// some point of a has a neighbor in b, a != b. Each macro edge appears once
// per list. Neighbors that belong to no group are ignored. A point listed
// in two groups is a precondition error.
func Adjacency(adj core.Adjacency, groups [][]int) (core.Adjacency, error) {
	n := len(adj)
	if err := adj.Validate(n); err != nil {
		return nil, fmt.Errorf("quotient: %w", err)
	}
	owner, err := owners(n, groups)
	if err != nil {
		return nil, err
	}

	macro := core.NewAdjacency(len(groups))
	for u, nbrs := range adj {
		gu := owner[u]
		if gu == core.NoParent {
			continue
		}
		for _, v := range nbrs {
			gv := owner[v]
			if gv == core.NoParent || gv == gu || macro.Has(gu, gv) {
				continue
			}
			macro[gu] = append(macro[gu], gv)
		}
	}

	return macro, nil
}

// owners maps every point to the index of its group, core.NoParent if none.
func owners(n int, groups [][]int) ([]int, error) {
	owner := make([]int, n)
	for i := range owner {
		owner[i] = core.NoParent
	}
	for g, members := range groups {
		for _, p := range members {
			if err := core.CheckIndex("group member", p, n); err != nil {
				return nil, fmt.Errorf("quotient: group %d: %w", g, err)
			}
			if owner[p] != core.NoParent {
				return nil, fmt.Errorf("quotient: %w: point %d in groups %d and %d",
					core.ErrDuplicateIndex, p, owner[p], g)
			}
			owner[p] = g
		}
	}

	return owner, nil
}

// Centroid returns the mean position of points[group]; geom.NaNVec for an
// empty group.
func Centroid(points []geom.Vec, group []int) geom.Vec {
	return geom.Centroid(points, group)
}

// Centroids returns the centroid of every group. Groups may overlap; their
// members must index points.
func Centroids(points []geom.Vec, groups [][]int) ([]geom.Vec, error) {
	out := make([]geom.Vec, len(groups))
	for i, g := range groups {
		for _, p := range g {
			if err := core.CheckIndex("group member", p, len(points)); err != nil {
				return nil, fmt.Errorf("quotient: group %d: %w", i, err)
			}
		}
		out[i] = geom.Centroid(points, g)
	}

	return out, nil
}
