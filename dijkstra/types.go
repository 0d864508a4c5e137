// Package dijkstra defines the options, result types and sentinel errors
// for the generalized shortest-path engine.
//
// Options:
//
//	– MaxRadius:  finalize only nodes whose distance is <= MaxRadius.
//	– MaxVisited: stop once MaxVisited nodes have been finalized.
//
// Both bounds are inclusive and compose: whichever triggers first ends the
// search. By default neither is set (full traversal).
//
// Errors (sentinel):
//
//	– ErrNegativeWeight  if the metric returns a negative or NaN cost.
//	– ErrBadMaxRadius    if MaxRadius < 0 (option constructor panics).
//	– ErrBadMaxVisited   if MaxVisited < 1 (option constructor panics).
//
// Malformed graphs and sources surface as core precondition errors.
package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the shortest-path engine.
var (
	// ErrNegativeWeight indicates that the metric produced a negative or NaN edge cost.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxRadius indicates that MaxRadius was set to a negative value.
	ErrBadMaxRadius = errors.New("dijkstra: MaxRadius must be non-negative")

	// ErrBadMaxVisited indicates that MaxVisited was set below one.
	ErrBadMaxVisited = errors.New("dijkstra: MaxVisited must be positive")
)

// Options configures the termination policy of a search.
//
// MaxRadius  – largest distance a finalized node may have. Default +Inf.
// MaxVisited – largest number of finalized nodes. Default 0 (no limit).
type Options struct {
	MaxRadius  float64 // inclusive distance bound
	MaxVisited int     // inclusive count bound, 0 = unbounded
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithMaxRadius stops expanding once the frontier distance exceeds r.
// Nodes at exactly r are still finalized. Panics if r < 0.
func WithMaxRadius(r float64) Option {
	if r < 0 || math.IsNaN(r) {
		panic(ErrBadMaxRadius.Error())
	}
	return func(o *Options) {
		o.MaxRadius = r
	}
}

// WithMaxVisited stops once k nodes (the source included) have been
// finalized in order of increasing distance. Panics if k < 1.
func WithMaxVisited(k int) Option {
	if k < 1 {
		panic(ErrBadMaxVisited.Error())
	}
	return func(o *Options) {
		o.MaxVisited = k
	}
}

// DefaultOptions returns an unbounded (full traversal) configuration.
func DefaultOptions() Options {
	return Options{
		MaxRadius:  math.Inf(1),
		MaxVisited: 0,
	}
}

// Result holds the shortest-path tree of a search.
//
// Parents[v] is v's predecessor on one shortest path, Parents[source] ==
// source, and core.NoParent for nodes never finalized. Dist[v] is the
// accumulated cost, +Inf for nodes never finalized. Order lists finalized
// nodes by increasing distance (ties in discovery order).
type Result struct {
	Parents []int
	Dist    []float64
	Order   []int
}

// Node is a finalized node of a range search with its distance from the source.
type Node struct {
	ID   int
	Dist float64
}
