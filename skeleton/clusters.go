// Package skeleton reduces a point cloud to a rooted tree of skeleton nodes.
//
// The pipeline runs in two halves:
//
//	FromDistanceToRootClusters
//	  1. proximity graph (k nearest neighbors, or Delaunay when no index)
//	  2. bridge disconnected components (Config.ConnectAll)
//	  3. optional density-adaptive contraction (Config.Contraction)
//	  4. geodesic distance of every point to Config.Root
//	  5. bins of width Config.BinSize split into connected groups
//	  6. macro graph over groups, group centroids
//	  7. spanning tree of the macro graph from the root's group
//
//	Build
//	  8. carried length per node, orientations, smoothed positions
//	  9. average radius of the cloud, pipe-model radius per node
//	 10. optional pruning with index remap
//
// Backends are injected through Options. With no neighbor index and no
// triangulator there is no proximity graph; both entry points then return
// nil with a nil error.
package skeleton

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pointskel/bfs"
	"github.com/katalvlaran/pointskel/components"
	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/density"
	"github.com/katalvlaran/pointskel/dijkstra"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/metric"
	"github.com/katalvlaran/pointskel/neighbors"
	"github.com/katalvlaran/pointskel/prim_kruskal"
	"github.com/katalvlaran/pointskel/progress"
	"github.com/katalvlaran/pointskel/quotient"
)

// Clusters is the macro structure of a cloud: distance bins split into
// connected groups, and a tree over the groups.
type Clusters struct {
	// Graph is the symmetric proximity graph after bridging.
	Graph core.Adjacency
	// Bridges lists the edges ConnectAll added, in insertion order.
	Bridges []components.Bridge
	// Points are the positions the distances were measured on: the input,
	// or its contraction.
	Points []geom.Vec
	// Dist is the geodesic distance to the root, +Inf for unreached points.
	Dist []float64
	// PointParents is the shortest-path tree over points.
	PointParents []int
	// Groups lists point indices per macro node.
	Groups [][]int
	// GroupGraph is the macro adjacency over Groups.
	GroupGraph core.Adjacency
	// Centroids holds one position per group.
	Centroids []geom.Vec
	// Parents is the spanning tree over groups.
	Parents []int
	// Root is the index of the group holding Config.Root.
	Root int
}

// DistanceToRoot returns the geodesic distance of every point to root along
// adj, with the shortest-path parents. Unreached points get +Inf and
// core.NoParent.
func DistanceToRoot(points []geom.Vec, adj core.Adjacency, root int) ([]float64, []int, error) {
	if err := core.CheckLength("adjacency", len(adj), len(points)); err != nil {
		return nil, nil, fmt.Errorf("skeleton: %w", err)
	}
	res, err := dijkstra.ShortestPaths(adj, root, metric.Euclidean{Points: points})
	if err != nil {
		return nil, nil, err
	}

	return res.Dist, res.Parents, nil
}

// FromDistanceToRootClusters runs steps 1 to 7 of the pipeline.
//
// Errors:
//   - ErrInvalidConfig from cfg.Validate.
//   - core.ErrEmptyInput for no points, core.ErrIndexOutOfRange for a root
//     outside the cloud.
//   - ctx.Err() when ctx is done between stages.
//   - errors of the underlying stages, unchanged.
func FromDistanceToRootClusters(ctx context.Context, points []geom.Vec, cfg Config, opts ...Option) (*Clusters, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("skeleton: %w: points", core.ErrEmptyInput)
	}
	if err := core.CheckIndex("root", cfg.Root, len(points)); err != nil {
		return nil, fmt.Errorf("skeleton: %w", err)
	}
	o := buildOptions(opts)
	r := o.Reporter
	cl := &Clusters{Points: points}

	// 1) Proximity graph
	r.Stage(StageGraph)
	graph, err := proximityGraph(points, cfg.K, o)
	if err != nil || graph == nil {
		return nil, err
	}

	// 2) Bridges
	if cfg.ConnectAll && !bfs.IsConnected(graph) {
		graph, cl.Bridges, err = components.ConnectWithBridges(points, graph,
			components.WithBuilder(o.Builder),
			components.WithReporter(r),
			components.WithRoot(cfg.Root))
		if err != nil {
			return nil, err
		}
	}
	cl.Graph = graph
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3) Contraction
	if cfg.Contraction.Enabled {
		r.Stage(StageContract)
		if cl.Points, err = contract(ctx, points, graph, cfg, r); err != nil {
			return nil, err
		}
	}

	// 4) Distance to root
	r.Stage(StageDistance)
	if cl.Dist, cl.PointParents, err = DistanceToRoot(cl.Points, graph, cfg.Root); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 5) + 6) Quotient
	r.Stage(StageQuotient)
	if cl.Groups, err = quotient.Points(cfg.BinSize, graph, cl.Dist); err != nil {
		return nil, err
	}
	if cl.GroupGraph, err = quotient.Adjacency(graph, cl.Groups); err != nil {
		return nil, err
	}
	if cl.Centroids, err = quotient.Centroids(cl.Points, cl.Groups); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 7) Spanning tree over groups
	r.Stage(StageSpanning)
	cl.Root = groupOf(cl.Groups, cfg.Root)
	if cl.Parents, err = spanningTree(ctx, cl.GroupGraph, cl.Root, cl.Centroids, cfg); err != nil {
		return nil, err
	}

	return cl, nil
}

// proximityGraph builds the symmetric k-nearest graph from the index
// backend, or from the triangulator when no index is configured.
func proximityGraph(points []geom.Vec, k int, o Options) (core.Adjacency, error) {
	if o.Builder != nil {
		return neighbors.KNearest(points, k, o.Builder, true)
	}
	adj, err := neighbors.KClosestFromTriangulation(points, k, o.Triangulator)
	if err != nil || adj == nil {
		return nil, err
	}

	return adj.Symmetrize(), nil
}

// contract pulls every point to the centroid of its density-adaptive
// anisotropic neighborhood, oriented along the principal axis of its k
// nearest geodesic neighbors.
func contract(ctx context.Context, points []geom.Vec, graph core.Adjacency, cfg Config, r progress.Reporter) ([]geom.Vec, error) {
	ct := cfg.Contraction
	dopts := []density.Option{density.WithWorkers(cfg.Workers), density.WithReporter(r)}

	dens, err := density.DensitiesFromK(ctx, points, graph, ct.K, dopts...)
	if err != nil {
		return nil, err
	}
	hoods, err := density.KNeighborhoods(ctx, points, graph, ct.K, dopts...)
	if err != nil {
		return nil, err
	}
	orients := density.PointsetsOrientations(points, hoods)

	return density.AdaptiveContraction(ctx, points, orients, graph, dens,
		ct.MinRadius, ct.MaxRadius, nil, ct.Alpha, ct.Beta, dopts...)
}

// spanningTree reduces the macro graph to a parent array rooted at root.
func spanningTree(ctx context.Context, adj core.Adjacency, root int, centroids []geom.Vec, cfg Config) ([]int, error) {
	m := metric.Euclidean{Points: centroids}
	if cfg.SpanningTree == SpanningMinimum {
		edges, _, err := prim_kruskal.Compute(adj, m,
			prim_kruskal.WithMethod(cfg.MSTMethod),
			prim_kruskal.WithRoot(root))
		if err != nil {
			return nil, err
		}
		return orient(ctx, len(adj), edges, root)
	}
	res, err := dijkstra.ShortestPaths(adj, root, m)
	if err != nil {
		return nil, err
	}

	return res.Parents, nil
}

// orient turns the undirected edges of a spanning tree over n nodes into a
// parent array rooted at root.
func orient(ctx context.Context, n int, edges []prim_kruskal.Edge, root int) ([]int, error) {
	tree := core.NewAdjacency(n)
	for _, e := range edges {
		tree.AddEdge(e.From, e.To)
	}
	res, err := bfs.BFS(tree, root, bfs.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return res.Parent, nil
}

// groupOf returns the index of the group holding point id. The root point
// always has distance 0, so its group exists.
func groupOf(groups [][]int, id int) int {
	for g, ids := range groups {
		for _, p := range ids {
			if p == id {
				return g
			}
		}
	}

	return 0
}
