// Package prim_kruskal defines configuration options, the edge type and
// sentinel errors for minimum spanning tree computation over an
// index-addressed adjacency.
package prim_kruskal

import (
	"errors"
	"fmt"
)

// ErrDisconnected indicates that the graph is not fully connected, so no
// spanning tree covers every node.
var ErrDisconnected = errors.New("prim_kruskal: graph is disconnected")

// ErrBadWeight indicates that the metric returned a NaN edge cost.
var ErrBadWeight = errors.New("prim_kruskal: NaN edge weight")

// ErrUnknownMethod indicates an MSTOptions.Method outside MethodPrim and MethodKruskal.
var ErrUnknownMethod = errors.New("prim_kruskal: unknown method")

// MethodPrim selects Prim's algorithm (grow from a root using a min-heap).
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm (sort all edges and union-find).
const MethodKruskal = "kruskal"

// Edge is an undirected tree edge between two node indices. Prim reports
// From as the node already in the tree.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// MSTOptions configures which MST algorithm Compute runs and, for Prim,
// which node the tree grows from.
//
// Fields:
//
//	Method string - one of MethodPrim or MethodKruskal.
//	Root   int    - start node for Prim; ignored by Kruskal.
type MSTOptions struct {
	Method string
	Root   int
}

// Option configures MSTOptions.
type Option func(*MSTOptions)

// WithMethod sets the algorithm. Unknown names surface as ErrUnknownMethod
// from Compute.
func WithMethod(m string) Option {
	return func(opts *MSTOptions) {
		opts.Method = m
	}
}

// WithRoot sets the starting node for Prim. Panics if root < 0.
func WithRoot(root int) Option {
	if root < 0 {
		panic(fmt.Sprintf("prim_kruskal: WithRoot(%d): root must be non-negative", root))
	}
	return func(opts *MSTOptions) {
		opts.Root = root
	}
}

// DefaultOptions returns MSTOptions for Kruskal rooted at node 0.
func DefaultOptions() MSTOptions {
	return MSTOptions{
		Method: MethodKruskal,
		Root:   0,
	}
}
