package prim_kruskal_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/metric"
	"github.com/katalvlaran/pointskel/prim_kruskal"
)

// weighted builds an adjacency and a symmetric metric from an edge table.
func weighted(n int, edges [][3]float64) (core.Adjacency, metric.Metric) {
	adj := core.NewAdjacency(n)
	w := make(map[[2]int]float64, len(edges))
	for _, e := range edges {
		u, v := int(e[0]), int(e[1])
		adj.AddEdge(u, v)
		w[[2]int{u, v}] = e[2]
		w[[2]int{v, u}] = e[2]
	}

	return adj, metric.Func(func(a, b int) float64 { return w[[2]int{a, b}] })
}

// triangle is 0-1 (1), 1-2 (2), 0-2 (3). Its MST is {0-1, 1-2}, weight 3.
func triangle() (core.Adjacency, metric.Metric) {
	return weighted(3, [][3]float64{{0, 1, 1}, {1, 2, 2}, {0, 2, 3}})
}

// randomConnected builds a connected graph: a chain plus extra random edges.
func randomConnected(n, extra int, seed int64) (core.Adjacency, metric.Metric) {
	r := rand.New(rand.NewSource(seed))
	table := make([][3]float64, 0, n+extra)
	for i := 1; i < n; i++ {
		table = append(table, [3]float64{float64(i - 1), float64(i), 1 + 9*r.Float64()})
	}
	for len(table) < n-1+extra {
		u, v := r.Intn(n), r.Intn(n)
		if u == v {
			continue
		}
		table = append(table, [3]float64{float64(u), float64(v), 1 + 99*r.Float64()})
	}

	return weighted(n, table)
}

func TestValidation(t *testing.T) {
	_, _, err := prim_kruskal.Kruskal(core.Adjacency{}, metric.Unit{})
	assert.ErrorIs(t, err, core.ErrEmptyInput)
	_, _, err = prim_kruskal.Prim(core.Adjacency{}, 0, metric.Unit{})
	assert.ErrorIs(t, err, core.ErrEmptyInput)

	adj, m := triangle()
	_, _, err = prim_kruskal.Prim(adj, 3, m)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	_, _, err = prim_kruskal.Kruskal(core.Adjacency{{5}}, metric.Unit{})
	assert.ErrorIs(t, err, core.ErrPrecondition)

	assert.Panics(t, func() { prim_kruskal.WithRoot(-1) })
}

func TestDisconnected(t *testing.T) {
	adj := core.Adjacency{{1}, {0}, {}}

	_, _, err := prim_kruskal.Kruskal(adj, metric.Unit{})
	assert.ErrorIs(t, err, prim_kruskal.ErrDisconnected)

	_, _, err = prim_kruskal.Prim(adj, 0, metric.Unit{})
	assert.ErrorIs(t, err, prim_kruskal.ErrDisconnected)
}

func TestNaNWeight(t *testing.T) {
	adj, _ := triangle()
	nan := metric.Func(func(int, int) float64 { return math.NaN() })

	_, _, err := prim_kruskal.Kruskal(adj, nan)
	assert.ErrorIs(t, err, prim_kruskal.ErrBadWeight)
	_, _, err = prim_kruskal.Prim(adj, 0, nan)
	assert.ErrorIs(t, err, prim_kruskal.ErrBadWeight)
}

func TestSingleNode(t *testing.T) {
	edges, total, err := prim_kruskal.Kruskal(core.Adjacency{{}}, metric.Unit{})
	require.NoError(t, err)
	assert.Empty(t, edges)
	assert.Zero(t, total)

	parents, total, err := prim_kruskal.Prim(core.Adjacency{{}}, 0, metric.Unit{})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, parents)
	assert.Zero(t, total)
}

func TestTriangle(t *testing.T) {
	adj, m := triangle()

	edges, total, err := prim_kruskal.Kruskal(adj, m)
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
	assert.Equal(t, []prim_kruskal.Edge{{From: 0, To: 1, Weight: 1}, {From: 1, To: 2, Weight: 2}}, edges)

	parents, total, err := prim_kruskal.Prim(adj, 2, m)
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
	assert.Equal(t, []int{1, 2, 2}, parents)
}

func TestOneSidedListsAreSymmetrized(t *testing.T) {
	adj := core.Adjacency{{1, 2}, {}, {}}
	parents, total, err := prim_kruskal.Prim(adj, 2, metric.Unit{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, total)
	assert.Equal(t, []int{2, 0, 2}, parents)
}

func TestPrimMatchesKruskal(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		adj, m := randomConnected(60, 150, seed)

		_, kt, err := prim_kruskal.Kruskal(adj, m)
		require.NoError(t, err)
		for _, root := range []int{0, 17, 59} {
			parents, pt, err := prim_kruskal.Prim(adj, root, m)
			require.NoError(t, err)
			assert.InDelta(t, kt, pt, 1e-9, "seed=%d root=%d", seed, root)

			tree := prim_kruskal.TreeEdges(parents, m)
			assert.Len(t, tree, 59)
			sum := 0.0
			for _, e := range tree {
				sum += e.Weight
			}
			assert.InDelta(t, pt, sum, 1e-9)
		}
	}
}

func TestCompute(t *testing.T) {
	adj, m := triangle()

	_, total, err := prim_kruskal.Compute(adj, m)
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)

	edges, total, err := prim_kruskal.Compute(adj, m,
		prim_kruskal.WithMethod(prim_kruskal.MethodPrim),
		prim_kruskal.WithRoot(1))
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)
	assert.Len(t, edges, 2)

	_, _, err = prim_kruskal.Compute(adj, m, prim_kruskal.WithMethod("boruvka"))
	assert.ErrorIs(t, err, prim_kruskal.ErrUnknownMethod)
}
