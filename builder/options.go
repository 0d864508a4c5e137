// Package: pointskel/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors validate and panic on meaningless inputs.
//   - Determinism is explicit: every constructor draws from one seeded RNG.

package builder

import "math/rand"

// DefaultSeed seeds the RNG when neither WithSeed nor WithRand is given.
const DefaultSeed int64 = 1

// BuilderOption customizes a constructor by mutating its builderConfig.
type BuilderOption func(*builderConfig)

// builderConfig holds the resolved options of one constructor call.
type builderConfig struct {
	rng        *rand.Rand
	noiseSigma float64
}

// newBuilderConfig applies opts over the defaults: seeded RNG, no noise.
func newBuilderConfig(opts ...BuilderOption) *builderConfig {
	c := &builderConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return c
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new RNG with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNoise adds isotropic Gaussian noise with standard deviation sigma to
// every coordinate. Panics if sigma < 0.
func WithNoise(sigma float64) BuilderOption {
	if sigma < 0 {
		panic("builder: WithNoise(sigma<0)")
	}
	return func(c *builderConfig) {
		c.noiseSigma = sigma
	}
}
