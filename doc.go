// Package pointskel reduces 3D point clouds to rooted skeleton trees.
//
// What is pointskel?
//
//	A pure-Go toolkit that turns an unordered cloud of samples (a scanned
//	plant, a vessel, a synthetic tube) into a tree of nodes with radii:
//		• Geometry: vectors, segment distances, centroids, anisotropic norms
//		• Proximity graphs: k-nearest neighbors (kd-tree) or Delaunay edges
//		• Traversals: BFS, DFS pre/post order, Dijkstra with range bounds
//		• Spanning trees: Prim, Kruskal
//		• Point statistics: densities, PCA orientations, adaptive contraction
//		• Quotient graphs: distance-to-root bins and their centroids
//		• Tree geometry: carried lengths, orientations, positions, pipe-model radii
//		• Pruning: short edges and overlapping siblings
//
// The pipeline:
//
//	skeleton.Build(ctx, points, skeleton.DefaultConfig()) runs every stage:
//	proximity graph, optional contraction, bridging of components,
//	distance-to-root labelling, binning, spanning tree over bins, geometry,
//	radii and pruning.
//
// Subpackages:
//
//	core/         adjacency lists, NoParent, precondition errors
//	geom/         r3 vector helpers
//	metric/       edge cost functions over point indices
//	neighbors/    kd-tree index and proximity graph builders
//	bfs/, dfs/    traversals over adjacency lists and children lists
//	dijkstra/     shortest paths with radius and count bounds
//	prim_kruskal/ minimum spanning trees
//	components/   component detection and bridging
//	density/      per-point densities, orientations and contraction
//	quotient/     binned quotient graphs
//	tree/         per-node tree computations
//	prune/        node filtering and removal
//	builder/      synthetic point clouds for tests and demos
//	skeleton/     the end-to-end pipeline
//	progress/     stage and progress reporting
//
// Command line:
//
//	go install github.com/katalvlaran/pointskel/cmd/pointskel@latest
//	pointskel synth fork -o fork.xyz --noise 0.01
//	pointskel skeleton fork.xyz -o fork.skel -v
package pointskel
