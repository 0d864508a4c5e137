// Package dijkstra implements Dijkstra's shortest-path algorithm over an
// index-addressed adjacency graph with a pluggable edge metric.
//
// Edge costs come from a metric.Metric evaluated on demand while relaxing an
// edge; nothing is precomputed. The graph is followed exactly as given: the
// engine never symmetrizes, so callers wanting undirected semantics pass a
// symmetrized adjacency.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E) under the lazy decrease-key strategy.
//
// Notes on implementation choices:
//
//   - Heap entries carry a push sequence number. Entries with equal distance
//     pop in push order, so ties resolve by discovery order.
//   - A node is only re-pushed on a strictly shorter distance, so the first
//     discoverer of a tied distance keeps the parent slot.
//   - Finalized nodes (popped for the first time) are final; stale entries
//     are skipped.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/metric"
)

// ShortestPaths computes the shortest-path tree from source over adj using
// m as edge cost, honoring the MaxRadius/MaxVisited bounds from opts.
//
// Preconditions and validation (in order):
//  1. adj must be a valid adjacency for len(adj) nodes (core.ErrIndexOutOfRange, ...).
//  2. source must lie in [0, len(adj)) (core.ErrIndexOutOfRange).
//  3. Every evaluated cost must be >= 0 (ErrNegativeWeight).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func ShortestPaths(adj core.Adjacency, source int, m metric.Metric, opts ...Option) (*Result, error) {
	r, err := newRunner(adj, source, m, opts)
	if err != nil {
		return nil, err
	}
	if err = r.process(); err != nil {
		return nil, err
	}

	return &Result{Parents: r.parents, Dist: r.dist, Order: r.order}, nil
}

// Range runs the same search as ShortestPaths and returns only the
// finalized nodes, in increasing distance, with their distances. The source
// itself is always first at distance 0.
func Range(adj core.Adjacency, source int, m metric.Metric, opts ...Option) ([]Node, error) {
	res, err := ShortestPaths(adj, source, m, opts...)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(res.Order))
	for i, v := range res.Order {
		nodes[i] = Node{ID: v, Dist: res.Dist[v]}
	}

	return nodes, nil
}

// IDs returns the node ids of a range result in the same order.
func IDs(nodes []Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	return ids
}

// runner holds the mutable state for a single search. No state survives
// across calls.
type runner struct {
	adj     core.Adjacency
	m       metric.Metric
	options Options
	source  int
	parents []int
	dist    []float64
	done    []bool
	order   []int
	pq      nodePQ
	seq     int
}

func newRunner(adj core.Adjacency, source int, m metric.Metric, opts []Option) (*runner, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	n := len(adj)
	if err := adj.Validate(n); err != nil {
		return nil, fmt.Errorf("dijkstra: %w", err)
	}
	if err := core.CheckIndex("source", source, n); err != nil {
		return nil, fmt.Errorf("dijkstra: %w", err)
	}

	// 3) Initialize dist = +Inf, parents = NoParent for every node
	r := &runner{
		adj:     adj,
		m:       m,
		options: cfg,
		source:  source,
		parents: make([]int, n),
		dist:    make([]float64, n),
		done:    make([]bool, n),
		order:   make([]int, 0, n),
		pq:      make(nodePQ, 0, n),
	}
	for v := range r.dist {
		r.dist[v] = math.Inf(1)
		r.parents[v] = core.NoParent
	}

	// 4) Source sits at distance 0 and is its own parent
	r.dist[source] = 0
	r.parents[source] = source
	heap.Init(&r.pq)
	r.push(source, 0)

	return r, nil
}

// push enqueues v at distance d with the next discovery sequence number.
func (r *runner) push(v int, d float64) {
	heap.Push(&r.pq, &nodeItem{id: v, dist: d, seq: r.seq})
	r.seq++
}

// process is the core loop: pop the closest unfinalized node, finalize it,
// relax its edges. It ends when the heap is empty, the frontier exceeds
// MaxRadius, or MaxVisited nodes are finalized.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Skip stale entries.
		if r.done[u] {
			continue
		}

		// Frontier beyond the radius: nothing further can be finalized.
		if item.dist > r.options.MaxRadius {
			break
		}

		r.done[u] = true
		r.order = append(r.order, u)
		if r.options.MaxVisited > 0 && len(r.order) >= r.options.MaxVisited {
			break
		}

		if err := r.relax(u); err != nil {
			return err
		}
	}
	r.clearUnfinalized()

	return nil
}

// relax tries to improve every neighbor of the finalized node u.
func (r *runner) relax(u int) error {
	for _, v := range r.adj[u] {
		if r.done[v] {
			continue
		}
		w := r.m.Cost(u, v)
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: edge %d→%d cost=%g", ErrNegativeWeight, u, v, w)
		}
		nd := r.dist[u] + w
		// strictly better only: an equal later path never steals the parent
		if nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.parents[v] = u
		r.push(v, nd)
	}

	return nil
}

// clearUnfinalized resets tentative labels of nodes the search discovered
// but never finalized, so only finalized nodes carry a distance and parent.
func (r *runner) clearUnfinalized() {
	for v, ok := range r.done {
		if !ok {
			r.dist[v] = math.Inf(1)
			r.parents[v] = core.NoParent
		}
	}
}

// nodeItem is a heap entry: a node, its tentative distance and its push order.
type nodeItem struct {
	id   int
	dist float64
	seq  int
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
