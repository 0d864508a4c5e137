// Package dfs defines the result and errors of a depth-first walk over a
// rooted tree given as children lists.
package dfs

import "errors"

// Node visitation states.
const (
	white = iota // not visited yet
	gray         // on the traversal stack
	black        // node and all its descendants finished
)

// ErrCycleDetected indicates that a node was reached twice, so the
// children lists do not describe a tree.
var ErrCycleDetected = errors.New("dfs: cycle detected")

// Result captures the outcome of a walk.
type Result struct {
	// Pre lists nodes in discovery order (root first).
	Pre []int

	// Post lists nodes in finishing order (every node after its descendants).
	Post []int

	// Depth is the number of edges from the root, -1 for unvisited nodes.
	Depth []int
}
