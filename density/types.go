// Package density defines options, remapping functions and sentinel errors
// for the neighborhood and density estimators.
package density

import (
	"errors"

	"github.com/katalvlaran/pointskel/progress"
)

// Sentinel errors for density estimation.
var (
	// ErrBadRadius indicates a negative or NaN neighborhood radius.
	ErrBadRadius = errors.New("density: radius must be non-negative")

	// ErrBadK indicates a negative neighborhood size.
	ErrBadK = errors.New("density: k must be non-negative")

	// ErrBadRange indicates an adaptive radius range with max < min.
	ErrBadRange = errors.New("density: max radius below min radius")
)

// Progress stage names reported by the batch operations.
const (
	StageRNeighborhoods           = "r-neighborhoods"
	StageAnisotropicNeighborhoods = "anisotropic neighborhoods"
	StageKNeighborhoods           = "k-neighborhoods"
	StageDensities                = "densities"
)

// Remap is a monotone map of [0,1] onto [0,1] applied to normalized
// densities before they are turned into radii. A nil Remap is the identity.
type Remap func(normalized float64) float64

// Options configures the batch (per-point) operations.
//
// Workers  – number of goroutines; values <= 1 run sequentially.
// Reporter – progress sink, progress.Nop by default.
type Options struct {
	Workers  int
	Reporter progress.Reporter
}

// Option represents a functional option for the batch operations.
type Option func(*Options)

// DefaultOptions returns a sequential, silent configuration.
func DefaultOptions() Options {
	return Options{Workers: 1, Reporter: progress.Nop{}}
}

// WithWorkers sets the number of goroutines. Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("density: workers must be non-negative")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithReporter routes progress events to r.
func WithReporter(r progress.Reporter) Option {
	return func(o *Options) {
		o.Reporter = progress.OrNop(r)
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
