// Package tree derives and aggregates over rooted trees stored as parent
// arrays: parents[i] is the parent of node i and the root is its own parent.
//
// Children lists are derived once per call with Children; aggregation that
// needs child results runs in post-order, relaxation that needs the
// parent's updated value runs in pre-order (both via package dfs).
//
// Operations:
//
//   - Children:             invert a parent array, validating it is one tree.
//   - CarriedLength:        total skeleton length carried below each node.
//   - OptimizeOrientations: smooth node orientations from the root outwards.
//   - OptimizePositions:    move nodes towards orientation-coherent edges.
//   - AverageRadius:        mean distance from the cloud to the skeleton.
//   - EstimateRadii:        distribute an average radius by the pipe model.
package tree

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/dfs"
)

var (
	// ErrBadClosestNodes indicates a non-positive number of closest nodes.
	ErrBadClosestNodes = errors.New("tree: closest node count must be positive")

	// ErrNegativeWeight indicates a negative or NaN node weight.
	ErrNegativeWeight = errors.New("tree: node weights must be non-negative")
)

// Children inverts parents into children lists and returns them with the
// root. Children appear in increasing index order.
//
// Errors (all core.ErrPrecondition):
//   - core.ErrEmptyInput if parents is empty.
//   - core.ErrIndexOutOfRange if a parent index is outside [0, n).
//   - core.ErrNoRoot / core.ErrMultipleRoots unless exactly one i has parents[i] == i.
//   - core.ErrNotATree if some node does not lead to the root (a cycle).
//
// Complexity: O(n).
func Children(parents []int) ([][]int, int, error) {
	n := len(parents)
	if n == 0 {
		return nil, 0, fmt.Errorf("tree: %w: parent array", core.ErrEmptyInput)
	}

	children := make([][]int, n)
	root := core.NoParent
	for i, p := range parents {
		if err := core.CheckIndex("parent", p, n); err != nil {
			return nil, 0, fmt.Errorf("tree: node %d: %w", i, err)
		}
		if p == i {
			if root != core.NoParent {
				return nil, 0, fmt.Errorf("tree: %w: %d and %d", core.ErrMultipleRoots, root, i)
			}
			root = i
			continue
		}
		children[p] = append(children[p], i)
	}
	if root == core.NoParent {
		return nil, 0, fmt.Errorf("tree: %w", core.ErrNoRoot)
	}

	// every node must hang below the root; nodes on a detached cycle do not
	pre, err := dfs.PreOrder(children, root)
	if err != nil {
		return nil, 0, fmt.Errorf("tree: %w: %v", core.ErrNotATree, err)
	}
	if len(pre) != n {
		return nil, 0, fmt.Errorf("tree: %w: %d of %d nodes reachable from root %d",
			core.ErrNotATree, len(pre), n, root)
	}

	return children, root, nil
}

// rooted is a validated tree with both traversal orders precomputed.
type rooted struct {
	parents  []int
	children [][]int
	root     int
	pre      []int
	post     []int
}

// build validates parents against n nodes and prepares traversal orders.
func build(parents []int, n int) (*rooted, error) {
	if err := core.CheckLength("parents", len(parents), n); err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}
	children, root, err := Children(parents)
	if err != nil {
		return nil, err
	}
	res, err := dfs.Walk(children, root)
	if err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}

	return &rooted{parents: parents, children: children, root: root, pre: res.Pre, post: res.Post}, nil
}

func checkWeights(weights []float64, n int) error {
	if err := core.CheckLength("weights", len(weights), n); err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weights[%d]=%g", ErrNegativeWeight, i, w)
		}
	}

	return nil
}
