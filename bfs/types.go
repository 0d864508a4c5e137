// Package bfs defines the options and result of a breadth-first search
// over a core.Adjacency.
package bfs

import "context"

// Options configures a search.
//
// Ctx – checked once per dequeued node; cancellation ends the search with
// the context error. Default context.Background().
type Options struct {
	Ctx context.Context
}

// Option represents a functional option for BFS.
type Option func(*Options)

// DefaultOptions returns an uncancellable search.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the context checked during the search; nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// Result holds the BFS tree of one search.
//
// Order lists visited nodes by increasing hop count. Depth[v] is the hop
// count from the start, -1 when unvisited. Parent[v] is v's predecessor,
// Parent[start] == start, core.NoParent when unvisited.
type Result struct {
	Order  []int
	Depth  []int
	Parent []int
}
