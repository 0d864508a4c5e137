// Package bfs provides breadth-first search over a core.Adjacency,
// returning hop-count distances, parent links, and visit order.
//
// BFS explores nodes in increasing hop count from a start node. The
// skeleton pipeline uses it to orient spanning tree edges away from the
// root bin; ConnectedComponents and IsConnected decide whether a proximity
// graph needs bridging.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pointskel/core"
)

// BFS runs breadth-first search on adj from start. Lists are followed as
// given; callers wanting undirected reachability pass a symmetrized adj.
//
// Returns a core precondition error for a malformed adjacency or start,
// or the context error on cancellation.
//
// Complexity: O(V + E).
func BFS(adj core.Adjacency, start int, opts ...Option) (*Result, error) {
	// 1) Build options
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 2) Validate
	n := len(adj)
	if err := adj.Validate(n); err != nil {
		return nil, fmt.Errorf("bfs: %w", err)
	}
	if err := core.CheckIndex("start", start, n); err != nil {
		return nil, fmt.Errorf("bfs: %w", err)
	}

	// 3) Every node starts unvisited
	w := &walker{
		adj:   adj,
		ctx:   o.Ctx,
		queue: make([]int, 0, n),
		res: &Result{
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = -1
		w.res.Parent[i] = core.NoParent
	}

	// 4) Start is its own parent at depth 0
	w.enqueue(start, 0, start)
	if err := w.loop(); err != nil {
		return nil, err
	}

	return w.res, nil
}

// walker holds the mutable state of one search.
type walker struct {
	adj   core.Adjacency
	ctx   context.Context
	queue []int
	res   *Result
}

// enqueue marks id visited at depth d and records its parent.
func (w *walker) enqueue(id, d, parent int) {
	w.res.Depth[id] = d
	w.res.Parent[id] = parent
	w.queue = append(w.queue, id)
}

// loop drains the queue, checking the context before each node.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		id := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, id)

		next := w.res.Depth[id] + 1
		for _, nbr := range w.adj[id] {
			if w.res.Depth[nbr] < 0 {
				w.enqueue(nbr, next, id)
			}
		}
	}

	return nil
}

// ConnectedComponents partitions the nodes of adj into components, each
// listed in BFS order from its smallest index; components are ordered by
// their smallest index. adj is read as given, so callers pass a
// symmetrized adjacency for undirected components.
//
// Complexity: O(V + E).
func ConnectedComponents(adj core.Adjacency) ([][]int, error) {
	n := len(adj)
	if err := adj.Validate(n); err != nil {
		return nil, fmt.Errorf("bfs: %w", err)
	}
	comp := make([]bool, n)
	var out [][]int
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		if comp[s] {
			continue
		}
		comp[s] = true
		queue = append(queue[:0], s)
		var members []int
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			members = append(members, u)
			for _, v := range adj[u] {
				if !comp[v] {
					comp[v] = true
					queue = append(queue, v)
				}
			}
		}
		out = append(out, members)
	}

	return out, nil
}

// IsConnected reports whether adj forms a single component. An empty
// adjacency counts as connected; a malformed one does not.
func IsConnected(adj core.Adjacency) bool {
	comps, err := ConnectedComponents(adj)

	return err == nil && len(comps) <= 1
}
