package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pointskel/geom"
)

// Minimum sizes accepted by the constructors.
const (
	MinLinePoints = 2
	MinRings      = 2
	MinPerRing    = 3
)

// Method tokens used as error context.
const (
	MethodLine     = "Line"
	MethodCylinder = "Cylinder"
	MethodFork     = "Fork"
	MethodScatter  = "Scatter"
)

// Line samples n evenly spaced points on the segment from→to, endpoints
// included, with optional noise.
//
// Complexity: O(n).
func Line(from, to geom.Vec, n int, opts ...BuilderOption) ([]geom.Vec, error) {
	if n < MinLinePoints {
		return nil, builderErrorf(MethodLine, ErrTooFewPoints, "n=%d < %d", n, MinLinePoints)
	}
	cfg := newBuilderConfig(opts...)

	out := make([]geom.Vec, n)
	step := r3.Scale(1/float64(n-1), r3.Sub(to, from))
	for i := range out {
		out[i] = cfg.jitter(r3.Add(from, r3.Scale(float64(i), step)))
	}

	return out, nil
}

// Cylinder samples the lateral surface of the cylinder of the given radius
// around the axis from→to: rings evenly spaced along the axis, perRing
// points per ring, odd rings rotated by half a step. Points are ordered
// ring by ring starting at from.
//
// Complexity: O(rings·perRing).
func Cylinder(from, to geom.Vec, radius float64, rings, perRing int, opts ...BuilderOption) ([]geom.Vec, error) {
	if err := checkTube(MethodCylinder, from, to, radius, rings, perRing); err != nil {
		return nil, err
	}
	cfg := newBuilderConfig(opts...)

	return cfg.tube(from, to, radius, rings, perRing, 0), nil
}

// Fork samples a Y-shaped tube: a vertical trunk of length trunk from the
// origin, then two branches of length branch leaving its top at ±45° in the
// XZ plane. Rings are spaced about one radius apart. The first perRing
// points form the base ring of the trunk.
//
// Complexity: O((trunk + 2·branch)/radius · perRing).
func Fork(trunk, branch, radius float64, perRing int, opts ...BuilderOption) ([]geom.Vec, error) {
	top := geom.Vec{Z: trunk}
	s := branch / math.Sqrt2
	left := geom.Vec{X: -s, Z: trunk + s}
	right := geom.Vec{X: s, Z: trunk + s}
	if err := checkTube(MethodFork, geom.Vec{}, top, radius, MinRings, perRing); err != nil {
		return nil, err
	}
	if branch <= 0 {
		return nil, builderErrorf(MethodFork, ErrBadGeometry, "branch=%g", branch)
	}
	if radius == 0 {
		return nil, builderErrorf(MethodFork, ErrBadGeometry, "radius must be positive")
	}
	cfg := newBuilderConfig(opts...)

	out := cfg.tube(geom.Vec{}, top, radius, ringsFor(trunk, radius), perRing, 0)
	out = append(out, cfg.tube(top, left, radius, ringsFor(branch, radius), perRing, 1)...)
	out = append(out, cfg.tube(top, right, radius, ringsFor(branch, radius), perRing, 1)...)

	return out, nil
}

// Scatter samples n points uniformly in the axis-aligned box [lo, hi].
//
// Complexity: O(n).
func Scatter(n int, lo, hi geom.Vec, opts ...BuilderOption) ([]geom.Vec, error) {
	if n < 1 {
		return nil, builderErrorf(MethodScatter, ErrTooFewPoints, "n=%d < 1", n)
	}
	if hi.X < lo.X || hi.Y < lo.Y || hi.Z < lo.Z {
		return nil, builderErrorf(MethodScatter, ErrBadGeometry, "box %v..%v", lo, hi)
	}
	cfg := newBuilderConfig(opts...)

	out := make([]geom.Vec, n)
	for i := range out {
		p := geom.Vec{
			X: lo.X + (hi.X-lo.X)*cfg.rng.Float64(),
			Y: lo.Y + (hi.Y-lo.Y)*cfg.rng.Float64(),
			Z: lo.Z + (hi.Z-lo.Z)*cfg.rng.Float64(),
		}
		out[i] = cfg.jitter(p)
	}

	return out, nil
}

func checkTube(method string, from, to geom.Vec, radius float64, rings, perRing int) error {
	if rings < MinRings {
		return builderErrorf(method, ErrTooFewPoints, "rings=%d < %d", rings, MinRings)
	}
	if perRing < MinPerRing {
		return builderErrorf(method, ErrTooFewPoints, "perRing=%d < %d", perRing, MinPerRing)
	}
	if radius < 0 || math.IsNaN(radius) {
		return builderErrorf(method, ErrBadGeometry, "radius=%g", radius)
	}
	if geom.Distance(from, to) == 0 {
		return builderErrorf(method, ErrBadGeometry, "zero-length axis")
	}

	return nil
}

// ringsFor places rings about one radius apart, at least MinRings.
func ringsFor(length, radius float64) int {
	n := int(length/radius) + 1
	if n < MinRings {
		n = MinRings
	}

	return n
}

// tube samples rings [skip, rings) of a cylinder surface.
func (c *builderConfig) tube(from, to geom.Vec, radius float64, rings, perRing, skip int) []geom.Vec {
	axis := r3.Sub(to, from)
	u, v := basis(geom.Direction(axis))
	out := make([]geom.Vec, 0, (rings-skip)*perRing)
	for i := skip; i < rings; i++ {
		center := r3.Add(from, r3.Scale(float64(i)/float64(rings-1), axis))
		phase := 0.0
		if i%2 == 1 {
			phase = math.Pi / float64(perRing)
		}
		for j := 0; j < perRing; j++ {
			a := phase + 2*math.Pi*float64(j)/float64(perRing)
			off := r3.Add(r3.Scale(radius*math.Cos(a), u), r3.Scale(radius*math.Sin(a), v))
			out = append(out, c.jitter(r3.Add(center, off)))
		}
	}

	return out
}

// jitter adds the configured Gaussian noise to p.
func (c *builderConfig) jitter(p geom.Vec) geom.Vec {
	if c.noiseSigma == 0 {
		return p
	}

	return geom.Vec{
		X: p.X + c.noiseSigma*c.rng.NormFloat64(),
		Y: p.Y + c.noiseSigma*c.rng.NormFloat64(),
		Z: p.Z + c.noiseSigma*c.rng.NormFloat64(),
	}
}

// basis returns two unit vectors orthogonal to d and to each other.
func basis(d geom.Vec) (geom.Vec, geom.Vec) {
	ref := geom.Vec{X: 1}
	if math.Abs(d.X) > 0.9 {
		ref = geom.Vec{Y: 1}
	}
	u := geom.Direction(r3.Cross(d, ref))
	v := r3.Cross(d, u)

	return u, v
}
