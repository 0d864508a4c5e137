// Package dfs implements iterative depth-first traversal of a rooted tree
// stored as children lists (children[i] lists the children of node i).
//
// Key features:
//   - Walk(children, root): one pass producing pre- and post-order
//   - PreOrder / PostOrder shortcuts for the tree stages
//   - A node reached twice aborts with ErrCycleDetected
//
// The walk is iterative, so arbitrarily deep trees (long skeleton chains)
// never exhaust the goroutine stack. Children are visited in list order.
//
// Complexity:
//
//   - Time:   O(V + E).
//   - Memory: O(V) for the explicit stack and the state array.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/pointskel/core"
)

// frame is one entry of the explicit traversal stack: a node and the index
// of the next child to descend into.
type frame struct {
	id   int
	next int
}

// walker encapsulates state during a walk.
type walker struct {
	children [][]int
	state    []int
	stack    []frame
	res      *Result
}

// Walk traverses the tree below root. Every child index must lie in
// [0, len(children)).
//
// Errors:
//   - core.ErrIndexOutOfRange for a bad root or child index.
//   - ErrCycleDetected if a node is reached twice.
func Walk(children [][]int, root int) (*Result, error) {
	n := len(children)
	if err := core.CheckIndex("root", root, n); err != nil {
		return nil, fmt.Errorf("dfs: %w", err)
	}

	w := &walker{
		children: children,
		state:    make([]int, n),
		res: &Result{
			Pre:   make([]int, 0, n),
			Post:  make([]int, 0, n),
			Depth: make([]int, n),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
	}
	w.discover(root, 0)
	if err := w.loop(); err != nil {
		return nil, err
	}

	return w.res, nil
}

// discover marks id gray, records it in pre-order and pushes its frame.
func (w *walker) discover(id, depth int) {
	w.state[id] = gray
	w.res.Depth[id] = depth
	w.res.Pre = append(w.res.Pre, id)
	w.stack = append(w.stack, frame{id: id})
}

// loop advances the top frame until the stack is empty.
func (w *walker) loop() error {
	n := len(w.children)
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		depth := w.res.Depth[top.id]

		if top.next < len(w.children[top.id]) {
			c := w.children[top.id][top.next]
			top.next++
			if err := core.CheckIndex("child", c, n); err != nil {
				return fmt.Errorf("dfs: children[%d]: %w", top.id, err)
			}
			if w.state[c] != white {
				return fmt.Errorf("%w: node %d reached again from %d", ErrCycleDetected, c, top.id)
			}
			w.discover(c, depth+1)
			continue
		}

		// all children done: finish the node
		id := top.id
		w.stack = w.stack[:len(w.stack)-1]
		w.state[id] = black
		w.res.Post = append(w.res.Post, id)
	}

	return nil
}

// PreOrder returns the nodes below root, root first, each before its descendants.
func PreOrder(children [][]int, root int) ([]int, error) {
	res, err := Walk(children, root)
	if err != nil {
		return nil, err
	}

	return res.Pre, nil
}

// PostOrder returns the nodes below root, each after all its descendants.
func PostOrder(children [][]int, root int) ([]int, error) {
	res, err := Walk(children, root)
	if err != nil {
		return nil, err
	}

	return res.Post, nil
}
