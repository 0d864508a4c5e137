// Package prim_kruskal computes minimum spanning trees over an index-addressed
// core.Adjacency with edge costs from a metric.Metric.
//
// In the skeleton pipeline the macro graph over distance bins is normally
// reduced to a tree of shortest paths from the root bin. A minimum spanning
// tree is the alternative: it keeps the globally shortest set of macro edges
// and tends to follow thin structures more closely when bins are unevenly
// spaced.
//
// Algorithms
//
//   - Kruskal(adj, m) ([]Edge, float64, error)
//     Sort all edges by weight, then join components with a disjoint-set
//     forest. Stable sorting keeps equal weights in index order.
//     Time O(E log E + α(V)·E), space O(V + E).
//
//   - Prim(adj, root, m) ([]int, float64, error)
//     Grow one tree from root with a min-heap of candidate edges. The result
//     is a parent array with parents[root] == root, directly usable by the
//     tree package. Time O(E log E), space O(V + E).
//
// Both algorithms treat adj as undirected and symmetrize it first. Negative
// weights are allowed; NaN weights are rejected with ErrBadWeight.
//
// Errors
//
//   - ErrDisconnected  : no spanning tree covers every node.
//   - ErrBadWeight     : the metric produced NaN.
//   - ErrUnknownMethod : Compute was given an unknown method name.
//   - core preconditions for malformed adjacency or root.
package prim_kruskal
