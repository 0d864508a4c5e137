package density_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/density"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/neighbors"
	"github.com/katalvlaran/pointskel/progress"
)

// chain returns n points spaced 1 apart on the x axis, linked in sequence.
func chain(n int) ([]geom.Vec, core.Adjacency) {
	pts := make([]geom.Vec, n)
	adj := core.NewAdjacency(n)
	for i := range pts {
		pts[i] = geom.Vec{X: float64(i)}
		if i > 0 {
			adj.AddEdge(i-1, i)
		}
	}

	return pts, adj
}

// cloud returns a seeded random cloud with its symmetric 6-NN graph.
func cloud(t *testing.T, n int) ([]geom.Vec, core.Adjacency) {
	rng := rand.New(rand.NewSource(5))
	pts := make([]geom.Vec, n)
	for i := range pts {
		pts[i] = geom.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
	}
	adj, err := neighbors.KNearest(pts, 6, neighbors.KDTreeBuilder, true)
	require.NoError(t, err)

	return pts, adj
}

func TestRNeighborhood(t *testing.T) {
	pts, adj := chain(5)

	ids, err := density.RNeighborhood(2, pts, adj, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, ids)

	ids, err = density.RNeighborhood(0, pts, adj, 2.5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)

	ids, err = density.RNeighborhood(4, pts, adj, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids)

	_, err = density.RNeighborhood(0, pts, adj, -1)
	assert.ErrorIs(t, err, density.ErrBadRadius)
	_, err = density.RNeighborhood(9, pts, adj, 1)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
	_, err = density.RNeighborhood(0, pts[:4], adj, 1)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestRNeighborhoods(t *testing.T) {
	pts, adj := chain(4)
	ctx := context.Background()

	got, err := density.RNeighborhoods(ctx, pts, adj, []float64{0, 1, 2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1, 0, 2}, {2, 1, 3, 0}, {3}}, got)

	_, err = density.RNeighborhoods(ctx, pts, adj, []float64{1, 1})
	assert.ErrorIs(t, err, core.ErrLengthMismatch)

	uni, err := density.RNeighborhoodsUniform(ctx, pts, adj, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, uni[0])
	assert.Equal(t, []int{3, 2}, uni[3])
}

func TestAnisotropicNeighborhood(t *testing.T) {
	// an L shape: 0→1 runs along x, 1→2 along y
	pts := []geom.Vec{{}, {X: 1}, {X: 1, Y: 1}}
	adj := core.Adjacency{{1}, {0, 2}, {1}}
	alongX := geom.Vec{X: 1}

	// cheap along x, expensive across: 2 is out of reach
	ids, err := density.AnisotropicNeighborhood(0, pts, adj, 1.5, alongX, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ids)

	// isotropic weights behave like the Euclidean neighborhood
	ids, err = density.AnisotropicNeighborhood(0, pts, adj, 2, alongX, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)

	all, err := density.AnisotropicNeighborhoods(context.Background(), pts, adj,
		[]float64{1.5, 1.5, 1.5}, []geom.Vec{alongX, alongX, alongX}, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, all[0])
	assert.Equal(t, []int{2}, all[2])

	_, err = density.AnisotropicNeighborhoods(context.Background(), pts, adj,
		[]float64{1, 1, 1}, []geom.Vec{alongX}, 1, 1)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestKNeighborhood(t *testing.T) {
	pts, adj := chain(5)

	// enough direct neighbors: closest-k filter, pid excluded
	ids, err := density.KNeighborhood(2, pts, adj, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)

	// not enough: k-bounded range search, pid first
	ids, err = density.KNeighborhood(2, pts, adj, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, ids)

	ids, err = density.KNeighborhood(0, pts, adj, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = density.KNeighborhood(0, pts, adj, -2)
	assert.ErrorIs(t, err, density.ErrBadK)

	// the result never aliases the adjacency list it was filtered from
	small := core.Adjacency{{1, 2}, {0}, {0}}
	ids, err = density.KNeighborhood(0, []geom.Vec{{}, {X: 1}, {X: 2}}, small, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, ids)
	ids[0] = 99
	assert.Equal(t, core.Adjacency{{1, 2}, {0}, {0}}, small)

	all, err := density.KNeighborhoods(context.Background(), pts, adj, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, all[0])
	assert.Equal(t, []int{2, 1}, all[2])
}

func TestDensities(t *testing.T) {
	pts, adj := chain(5)

	d, err := density.DensityFromR(2, pts, adj, 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-12)

	d, err = density.DensityFromR(2, pts, adj, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d, "zero radius is guarded")

	d, err = density.DensityFromK(2, pts, adj, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-12, "raw adjacency: 2 neighbors at distance 1")

	d, err = density.DensityFromK(0, pts, adj, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, d, 1e-12, "3 points, farthest at distance 2")

	isolated := core.Adjacency{{}, {}}
	d, err = density.DensityFromK(0, []geom.Vec{{}, {X: 1}}, isolated, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	assert.InDelta(t, 2.0, density.MaxNeighborhoodDistance(0, pts, []int{1, 2}), 1e-12)
	assert.Equal(t, 0.0, density.MaxNeighborhoodDistance(0, pts, nil))
}

func TestDensities_WorkersAgree(t *testing.T) {
	pts, adj := cloud(t, 200)
	ctx := context.Background()

	seqK, err := density.DensitiesFromK(ctx, pts, adj, 8)
	require.NoError(t, err)
	parK, err := density.DensitiesFromK(ctx, pts, adj, 8, density.WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, seqK, parK)

	seqR, err := density.DensitiesFromR(ctx, pts, adj, 0.2)
	require.NoError(t, err)
	parR, err := density.DensitiesFromR(ctx, pts, adj, 0.2, density.WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, seqR, parR)
	for _, v := range seqR {
		assert.Greater(t, v, 0.0)
	}
}

func TestDensities_Cancelled(t *testing.T) {
	pts, adj := cloud(t, 50)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := density.DensitiesFromK(ctx, pts, adj, 4)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = density.DensitiesFromK(ctx, pts, adj, 4, density.WithWorkers(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDensities_Progress(t *testing.T) {
	pts, adj := cloud(t, 100)
	var events []int
	rep := progress.Func(func(_ string, done, _ int) { events = append(events, done) })

	_, err := density.DensitiesFromK(context.Background(), pts, adj, 4, density.WithReporter(rep))
	require.NoError(t, err)
	require.Len(t, events, 20)
	assert.Equal(t, 5, events[0])
	assert.Equal(t, 100, events[19])
}

func TestAdaptiveRadii(t *testing.T) {
	r, err := density.AdaptiveRadii([]float64{1, 2, 3}, 1, 2, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2}, r, 1e-12)

	sq := density.Remap(func(x float64) float64 { return x * x })
	r, err = density.AdaptiveRadii([]float64{1, 2, 3}, 1, 2, sq)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1.25, 2}, r, 1e-12)

	r, err = density.AdaptiveRadii([]float64{4, 4}, 0.5, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, r, "zero span maps to the minimum radius")

	r, err = density.AdaptiveRadii(nil, 1, 2, nil)
	require.NoError(t, err)
	assert.Empty(t, r)

	_, err = density.AdaptiveRadii([]float64{1}, 2, 1, nil)
	assert.ErrorIs(t, err, density.ErrBadRange)
}

func TestAdaptiveContraction(t *testing.T) {
	pts, adj := chain(4)
	dirs := []geom.Vec{{X: 1}, {X: 1}, {X: 1}, {X: 1}}

	got, err := density.AdaptiveContraction(context.Background(), pts, dirs, adj,
		[]float64{5, 5, 5, 5}, 1, 3, nil, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.InDelta(t, 0.5, got[0].X, 1e-12)
	assert.InDelta(t, 1.0, got[1].X, 1e-12)
	assert.InDelta(t, 2.0, got[2].X, 1e-12)
	assert.InDelta(t, 2.5, got[3].X, 1e-12)

	_, err = density.AdaptiveContraction(context.Background(), pts, dirs, adj, []float64{1}, 1, 3, nil, 1, 1)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestPointsetOrientation(t *testing.T) {
	pts := []geom.Vec{{}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	o := density.PointsetOrientation(pts, []int{0, 1, 2, 3})
	assert.InDelta(t, 1/math.Sqrt2, o.X, 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, o.Y, 1e-9)
	assert.InDelta(t, 0, o.Z, 1e-9)

	assert.Equal(t, geom.Vec{}, density.PointsetOrientation(pts, []int{2}))
	assert.Equal(t, geom.Vec{}, density.PointsetOrientation([]geom.Vec{{X: 1}, {X: 1}}, []int{0, 1}))

	all := density.PointsetsOrientations(pts, [][]int{{0, 1}, {}})
	assert.InDelta(t, 1/math.Sqrt2, all[0].X, 1e-9)
	assert.Equal(t, geom.Vec{}, all[1])
}

func TestPrincipalAxes(t *testing.T) {
	// a flat, elongated patch in the xy plane
	pts := []geom.Vec{
		{}, {X: 4}, {X: -4}, {X: 2, Y: 1}, {X: -2, Y: -1}, {Y: 1}, {Y: -1},
	}
	axes, err := density.PrincipalAxes(pts, 0, []int{0, 1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Len(t, axes, 3)
	assert.GreaterOrEqual(t, axes[0].Value, axes[1].Value)
	assert.GreaterOrEqual(t, axes[1].Value, axes[2].Value)
	assert.InDelta(t, 0, axes[2].Value, 1e-9)
	assert.InDelta(t, 1, axes[2].Vector.Z, 1e-9, "normal of the patch, canonical sign")
	assert.Greater(t, math.Abs(axes[0].Vector.X), math.Abs(axes[0].Vector.Y))

	axes, err = density.PrincipalAxes(pts, 3, []int{3})
	require.NoError(t, err)
	assert.Nil(t, axes)

	_, err = density.PrincipalAxes(pts, 0, []int{42})
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { density.WithWorkers(-1) })
}
