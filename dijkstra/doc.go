// Package dijkstra provides the shortest-path and range-search engine used by
// every distance-driven stage of the skeleton pipeline.
//
// Overview:
//
//	The graph is an index-addressed core.Adjacency and edge costs come from a
//	metric.Metric evaluated lazily during relaxation. The same engine covers
//	three needs:
//
//	  - distance-to-root labelling with a Euclidean metric,
//	  - hop-count reachability with metric.Unit,
//	  - bounded neighborhood queries (radius and/or k-visited) with any metric.
//
// Usage:
//
//	res, err := dijkstra.ShortestPaths(adj, 0, metric.Euclidean{Points: pts})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Dist[3], res.Parents[3])
//
//	near, _ := dijkstra.Range(adj, 7, metric.Unit{},
//	    dijkstra.WithMaxRadius(2.5),
//	    dijkstra.WithMaxVisited(10),
//	)
//
// Termination:
//
//	A node is finalized when it is popped from the heap for the first time.
//	WithMaxRadius(r) stops before finalizing a node with distance > r.
//	WithMaxVisited(k) stops right after the k-th finalization. Nodes left on
//	the frontier when the search stops are reported as unreached.
//
// Determinism:
//
//	Equal distances are resolved in discovery order, so repeated runs over the
//	same inputs produce identical parent arrays.
package dijkstra
