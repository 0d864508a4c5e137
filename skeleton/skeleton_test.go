package skeleton_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pointskel/builder"
	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/neighbors"
	"github.com/katalvlaran/pointskel/prim_kruskal"
	"github.com/katalvlaran/pointskel/skeleton"
	"github.com/katalvlaran/pointskel/tree"
)

// recorder keeps the stage names it sees.
type recorder struct {
	stages []string
}

func (r *recorder) Stage(name string) { r.stages = append(r.stages, name) }

func (r *recorder) Progress(string, int, int) {}

// chain triangulates points as the path 0-1-...-(n-1).
var chain = neighbors.TriangulatorFunc(func(points []geom.Vec) ([][2]int, error) {
	edges := make([][2]int, 0, len(points))
	for i := 1; i < len(points); i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	return edges, nil
})

func fork(t *testing.T) []geom.Vec {
	t.Helper()
	pts, err := builder.Fork(4, 3, 0.3, 8)
	require.NoError(t, err)

	return pts
}

// checkSkeleton asserts the structural invariants of a pipeline result.
func checkSkeleton(t *testing.T, sk *skeleton.Skeleton, nPoints int) [][]int {
	t.Helper()
	require.NotNil(t, sk)
	n := len(sk.Nodes)
	require.Positive(t, n)
	assert.Len(t, sk.Parents, n)
	assert.Len(t, sk.Radii, n)
	assert.Len(t, sk.Orientations, n)
	assert.Len(t, sk.Weights, n)
	assert.Len(t, sk.Groups, n)

	children, root, err := tree.Children(sk.Parents)
	require.NoError(t, err)
	assert.Equal(t, sk.Root, root)

	seen := make([]bool, nPoints)
	for _, g := range sk.Groups {
		for _, p := range g {
			assert.False(t, seen[p], "point %d in two groups", p)
			seen[p] = true
		}
	}
	for p, ok := range seen {
		assert.True(t, ok, "point %d in no group", p)
	}
	for _, r := range sk.Radii {
		assert.GreaterOrEqual(t, r, 0.0)
	}

	return children
}

func leaves(children [][]int) int {
	count := 0
	for _, c := range children {
		if len(c) == 0 {
			count++
		}
	}

	return count
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, skeleton.DefaultConfig().Validate())

	bad := []func(c *skeleton.Config){
		func(c *skeleton.Config) { c.Root = -1 },
		func(c *skeleton.Config) { c.BinSize = 0 },
		func(c *skeleton.Config) { c.BinSize = math.Inf(1) },
		func(c *skeleton.Config) { c.K = 0 },
		func(c *skeleton.Config) { c.SpanningTree = "widest" },
		func(c *skeleton.Config) { c.MSTMethod = "boruvka" },
		func(c *skeleton.Config) { c.PipeExponent = -1 },
		func(c *skeleton.Config) { c.MaxClosestNodes = 0 },
		func(c *skeleton.Config) { c.OverlapFilter = -0.5 },
		func(c *skeleton.Config) { c.Workers = -2 },
		func(c *skeleton.Config) { c.Contraction.Enabled = true; c.Contraction.K = 0 },
		func(c *skeleton.Config) { c.Contraction.Enabled = true; c.Contraction.MaxRadius = 0.01 },
	}
	for i, mutate := range bad {
		cfg := skeleton.DefaultConfig()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), skeleton.ErrInvalidConfig, "case %d", i)
	}

	// disabled contraction is not checked
	cfg := skeleton.DefaultConfig()
	cfg.Contraction.K = 0
	assert.NoError(t, cfg.Validate())
}

func TestDistanceToRoot(t *testing.T) {
	pts := []geom.Vec{{}, {X: 1}, {X: 1, Y: 1}, {X: 5}}
	adj := core.Adjacency{{1}, {0, 2}, {1}, {}}

	dist, parents, err := skeleton.DistanceToRoot(pts, adj, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, dist[:3])
	assert.True(t, math.IsInf(dist[3], 1))
	assert.Equal(t, []int{0, 0, 1, core.NoParent}, parents)

	_, _, err = skeleton.DistanceToRoot(pts, adj[:2], 0)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestBuild_TriangulatedLine(t *testing.T) {
	pts, err := builder.Line(geom.Vec{}, geom.Vec{X: 10}, 101)
	require.NoError(t, err)
	cfg := skeleton.DefaultConfig()
	cfg.K = 2
	cfg.BinSize = 1

	sk, err := skeleton.Build(context.Background(), pts, cfg,
		skeleton.WithBuilder(nil), skeleton.WithTriangulator(chain))
	require.NoError(t, err)
	checkSkeleton(t, sk, len(pts))

	assert.GreaterOrEqual(t, len(sk.Nodes), 10)
	assert.Less(t, sk.Nodes[sk.Root].X, 1.0)
	for i, x := range sk.Nodes {
		assert.Zero(t, x.Y)
		assert.Zero(t, x.Z)
		if i != sk.Root {
			assert.Greater(t, x.X, sk.Nodes[sk.Parents[i]].X, "node %d grows away from the root", i)
		}
	}
	// no index backend: no radius estimate
	assert.Zero(t, sk.AverageRadius)
}

func TestBuild_Fork(t *testing.T) {
	pts := fork(t)
	cfg := skeleton.DefaultConfig()

	methods := []struct{ spanning, mst string }{
		{skeleton.SpanningShortestPath, prim_kruskal.MethodPrim},
		{skeleton.SpanningMinimum, prim_kruskal.MethodPrim},
		{skeleton.SpanningMinimum, prim_kruskal.MethodKruskal},
	}
	for _, mm := range methods {
		cfg.SpanningTree, cfg.MSTMethod = mm.spanning, mm.mst
		method := mm.spanning + "/" + mm.mst
		sk, err := skeleton.Build(context.Background(), pts, cfg)
		require.NoError(t, err, method)
		children := checkSkeleton(t, sk, len(pts))

		assert.GreaterOrEqual(t, leaves(children), 2, "%s: both branches reach a tip", method)
		assert.Less(t, sk.Nodes[sk.Root].Z, 0.5, method)
		assert.Greater(t, sk.AverageRadius, 0.0, method)
		assert.InDelta(t, 0.3, sk.AverageRadius, 0.3, method)
		for i := range sk.Radii {
			assert.LessOrEqual(t, sk.Radii[i], sk.Radii[sk.Root]+1e-12, method)
		}
	}
}

func TestBuild_MinimumTreeMethodsAgree(t *testing.T) {
	pts, err := builder.Line(geom.Vec{}, geom.Vec{X: 6}, 13)
	require.NoError(t, err)
	cfg := skeleton.DefaultConfig()
	cfg.K = 2
	cfg.BinSize = 1
	cfg.Root = 6
	cfg.SpanningTree = skeleton.SpanningMinimum

	var parents [][]int
	for _, mst := range []string{prim_kruskal.MethodPrim, prim_kruskal.MethodKruskal} {
		cfg.MSTMethod = mst
		cl, err := skeleton.FromDistanceToRootClusters(context.Background(), pts, cfg)
		require.NoError(t, err, mst)
		assert.Equal(t, cl.Root, cl.Parents[cl.Root], mst)
		for g, p := range cl.Parents {
			if g != cl.Root {
				assert.True(t, cl.GroupGraph.Has(p, g), "%s: %d-%d is not a macro edge", mst, p, g)
			}
		}
		parents = append(parents, cl.Parents)
	}
	// a chain of bins has exactly one spanning tree
	assert.Equal(t, parents[0], parents[1])
}

func TestBuild_Prune(t *testing.T) {
	pts := fork(t)
	cfg := skeleton.DefaultConfig()
	full, err := skeleton.Build(context.Background(), pts, cfg)
	require.NoError(t, err)

	cfg.EdgeLengthFilter = 0.4
	cfg.OverlapFilter = 0.5
	pruned, err := skeleton.Build(context.Background(), pts, cfg)
	require.NoError(t, err)
	checkSkeleton(t, pruned, len(pts))
	assert.LessOrEqual(t, len(pruned.Nodes), len(full.Nodes))
	assert.Equal(t, full.AverageRadius, pruned.AverageRadius)
}

func TestBuild_Contraction(t *testing.T) {
	pts, err := builder.Cylinder(geom.Vec{}, geom.Vec{Z: 3}, 0.3, 11, 8, builder.WithNoise(0.01))
	require.NoError(t, err)
	cfg := skeleton.DefaultConfig()
	cfg.Workers = 4
	cfg.Contraction.Enabled = true
	cfg.Contraction.K = 8

	cl, err := skeleton.FromDistanceToRootClusters(context.Background(), pts, cfg)
	require.NoError(t, err)
	require.Len(t, cl.Points, len(pts))
	assert.NotEqual(t, pts, cl.Points)

	sk, err := skeleton.Build(context.Background(), pts, cfg)
	require.NoError(t, err)
	checkSkeleton(t, sk, len(pts))
}

func TestFromDistanceToRootClusters(t *testing.T) {
	pts := fork(t)
	cfg := skeleton.DefaultConfig()

	cl, err := skeleton.FromDistanceToRootClusters(context.Background(), pts, cfg)
	require.NoError(t, err)
	assert.True(t, cl.Graph.IsSymmetric())
	assert.Equal(t, 0.0, cl.Dist[cfg.Root])
	assert.Len(t, cl.Centroids, len(cl.Groups))
	assert.Len(t, cl.Parents, len(cl.Groups))
	assert.Equal(t, cl.Root, cl.Parents[cl.Root])
	assert.Contains(t, cl.Groups[cl.Root], cfg.Root)
}

func TestBuild_Bridges(t *testing.T) {
	// two separated segments; only bridging makes one tree
	a, err := builder.Line(geom.Vec{}, geom.Vec{X: 2}, 21)
	require.NoError(t, err)
	b, err := builder.Line(geom.Vec{X: 3}, geom.Vec{X: 5}, 21)
	require.NoError(t, err)
	pts := append(a, b...)

	cfg := skeleton.DefaultConfig()
	cfg.K = 2
	cl, err := skeleton.FromDistanceToRootClusters(context.Background(), pts, cfg)
	require.NoError(t, err)
	require.Len(t, cl.Bridges, 1)
	assert.InDelta(t, 1.0, cl.Bridges[0].Dist, 1e-9)

	sk, err := skeleton.Build(context.Background(), pts, cfg)
	require.NoError(t, err)
	checkSkeleton(t, sk, len(pts))
}

func TestBuild_Reporter(t *testing.T) {
	rec := &recorder{}
	cfg := skeleton.DefaultConfig()
	cfg.EdgeLengthFilter = 0.1
	_, err := skeleton.Build(context.Background(), fork(t), cfg, skeleton.WithReporter(rec))
	require.NoError(t, err)

	want := []string{
		skeleton.StageGraph, skeleton.StageDistance, skeleton.StageQuotient,
		skeleton.StageSpanning, skeleton.StageGeometry, skeleton.StageRadii, skeleton.StagePrune,
	}
	var got []string
	for _, s := range rec.stages {
		for _, w := range want {
			if s == w {
				got = append(got, s)
			}
		}
	}
	assert.Equal(t, want, got)
}

func TestBuild_NoBackend(t *testing.T) {
	sk, err := skeleton.Build(context.Background(), fork(t), skeleton.DefaultConfig(), skeleton.WithBuilder(nil))
	assert.NoError(t, err)
	assert.Nil(t, sk)
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := skeleton.DefaultConfig()

	_, err := skeleton.Build(ctx, nil, cfg)
	assert.ErrorIs(t, err, core.ErrEmptyInput)

	cfg.Root = 10
	_, err = skeleton.Build(ctx, []geom.Vec{{}, {X: 1}}, cfg)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	cfg = skeleton.DefaultConfig()
	cfg.BinSize = -1
	_, err = skeleton.Build(ctx, []geom.Vec{{}, {X: 1}}, cfg)
	assert.ErrorIs(t, err, skeleton.ErrInvalidConfig)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = skeleton.Build(cancelled, fork(t), skeleton.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
