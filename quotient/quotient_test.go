package quotient_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pointskel/components"
	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/dijkstra"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/metric"
	"github.com/katalvlaran/pointskel/neighbors"
	"github.com/katalvlaran/pointskel/quotient"
)

// fork is a Y: 0-1, then 1-2 and 1-3 on two separate branches.
func fork() (core.Adjacency, []float64) {
	adj := core.Adjacency{{1}, {0, 2, 3}, {1}, {1}}
	return adj, []float64{0, 1, 2, 2}
}

func TestSortedOrder(t *testing.T) {
	assert.Equal(t, []int{1, 3, 0, 2}, quotient.SortedOrder([]float64{2, 0, math.Inf(1), 1}))
	assert.Equal(t, []int{0, 1, 2}, quotient.SortedOrder([]float64{1, 1, 1}), "stable on ties")
	assert.Empty(t, quotient.SortedOrder(nil))
}

func TestPoints_Chain(t *testing.T) {
	adj := core.Adjacency{{1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4}}
	dist := []float64{0, 1, 2, 3, 4, 5}

	groups, err := quotient.Points(2, adj, dist)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4, 5}}, groups)

	groups, err = quotient.Points(10, adj, dist)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, groups[0])
}

func TestPoints_BranchesSplit(t *testing.T) {
	adj, dist := fork()
	groups, err := quotient.Points(1.5, adj, dist)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2}, {3}}, groups)
}

func TestPoints_EmptyBinsAndUnreached(t *testing.T) {
	adj := core.Adjacency{{1}, {0}, {}}
	dist := []float64{0, 5, math.Inf(1)}

	groups, err := quotient.Points(1, adj, dist)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1}}, groups, "unreached point 2 is left out")

	// only unreached points past the root
	groups, err = quotient.Points(1, core.Adjacency{{}, {}}, []float64{0, math.Inf(1)})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}}, groups)

	groups, err = quotient.Points(1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestPoints_ExtremeBinRatios(t *testing.T) {
	tests := []struct {
		name    string
		binSize float64
		adj     core.Adjacency
		dist    []float64
		want    [][]int
	}{
		{"tiny bins, far point", 1e-10, core.Adjacency{{1}, {0}}, []float64{0, 1e10}, [][]int{{0}, {1}}},
		{"bin count overflows", 1e-300, core.Adjacency{{1}, {0, 2}, {1}}, []float64{0, 1e300, 1.5e300}, [][]int{{0}, {1, 2}}},
		{"boundaries below precision", 1, core.Adjacency{{}, {2}, {1}}, []float64{0, 1e17, 1e17 + 16}, [][]int{{0}, {1}, {2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan [][]int, 1)
			go func() {
				groups, err := quotient.Points(tt.binSize, tt.adj, tt.dist)
				assert.NoError(t, err)
				done <- groups
			}()
			select {
			case groups := <-done:
				assert.Equal(t, tt.want, groups)
			case <-time.After(5 * time.Second):
				t.Fatal("Points did not terminate")
			}
		})
	}
}

func TestPoints_Errors(t *testing.T) {
	adj, dist := fork()
	for _, bs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := quotient.Points(bs, adj, dist)
		assert.ErrorIs(t, err, quotient.ErrBadBinSize)
	}
	_, err := quotient.Points(1, adj, dist[:2])
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
	_, err = quotient.Points(1, adj, []float64{0, -1, 2, 2})
	assert.ErrorIs(t, err, quotient.ErrBadDistance)
	_, err = quotient.Points(1, adj, []float64{0, math.NaN(), 2, 2})
	assert.ErrorIs(t, err, quotient.ErrBadDistance)
}

func TestPoints_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pts := make([]geom.Vec, 300)
	for i := range pts {
		pts[i] = geom.Vec{X: rng.Float64() * 5, Y: rng.Float64(), Z: rng.Float64()}
	}
	adj, err := neighbors.KNearest(pts, 5, neighbors.KDTreeBuilder, true)
	require.NoError(t, err)
	adj, err = components.Connect(pts, adj)
	require.NoError(t, err)
	res, err := dijkstra.ShortestPaths(adj, 0, metric.Euclidean{Points: pts})
	require.NoError(t, err)

	groups, err := quotient.Points(0.5, adj, res.Dist)
	require.NoError(t, err)
	count := make([]int, len(pts))
	for _, g := range groups {
		require.NotEmpty(t, g)
		for _, p := range g {
			count[p]++
		}
	}
	for p, c := range count {
		assert.Equal(t, 1, c, "point %d", p)
	}

	macro, err := quotient.Adjacency(adj, groups)
	require.NoError(t, err)
	require.NoError(t, macro.Validate(len(groups)))
	assert.True(t, macro.IsSymmetric())
	for g, nbrs := range macro {
		assert.NotContains(t, nbrs, g)
	}
}

func TestAdjacency(t *testing.T) {
	adj, _ := fork()
	macro, err := quotient.Adjacency(adj, [][]int{{0, 1}, {2}, {3}})
	require.NoError(t, err)
	assert.Equal(t, core.Adjacency{{1, 2}, {0}, {0}}, macro)

	// point 3 in no group is ignored
	macro, err = quotient.Adjacency(adj, [][]int{{0}, {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, core.Adjacency{{1}, {0}}, macro)

	_, err = quotient.Adjacency(adj, [][]int{{0, 1}, {1}})
	assert.ErrorIs(t, err, core.ErrDuplicateIndex)
	_, err = quotient.Adjacency(adj, [][]int{{7}})
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestCentroids(t *testing.T) {
	pts := []geom.Vec{{}, {X: 2}, {Y: 4}}
	got, err := quotient.Centroids(pts, [][]int{{0, 1}, {0, 1, 2}, {}})
	require.NoError(t, err)
	assert.Equal(t, geom.Vec{X: 1}, got[0])
	assert.InDelta(t, 2.0/3, got[1].X, 1e-12)
	assert.InDelta(t, 4.0/3, got[1].Y, 1e-12)
	assert.True(t, geom.IsNaN(got[2]), "empty group yields NaN")

	_, err = quotient.Centroids(pts, [][]int{{3}})
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	assert.Equal(t, geom.Vec{X: 1}, quotient.Centroid(pts, []int{0, 1}))
}
