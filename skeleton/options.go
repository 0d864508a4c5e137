package skeleton

import (
	"github.com/katalvlaran/pointskel/neighbors"
	"github.com/katalvlaran/pointskel/progress"
)

// Progress stage names reported by the pipeline, in execution order.
const (
	StageGraph    = "proximity graph"
	StageContract = "contraction"
	StageDistance = "distance to root"
	StageQuotient = "quotient"
	StageSpanning = "spanning tree"
	StageGeometry = "orientations and positions"
	StageRadii    = "radii"
	StagePrune    = "prune"
)

// Options configures the backends of a pipeline run.
//
// Builder      – neighbor-index backend. Default neighbors.KDTreeBuilder.
// Triangulator – proximity graph source used when Builder is nil.
// Reporter     – progress sink, progress.Nop by default.
type Options struct {
	Builder      neighbors.Builder
	Triangulator neighbors.Triangulator
	Reporter     progress.Reporter
}

// Option represents a functional option for the pipeline.
type Option func(*Options)

// DefaultOptions returns the kd-tree backend with no triangulator.
func DefaultOptions() Options {
	return Options{
		Builder:  neighbors.KDTreeBuilder,
		Reporter: progress.Nop{},
	}
}

// WithBuilder selects the neighbor-index backend; nil disables it.
func WithBuilder(b neighbors.Builder) Option {
	return func(o *Options) {
		o.Builder = b
	}
}

// WithTriangulator sets the Delaunay source used when no Builder is set.
func WithTriangulator(t neighbors.Triangulator) Option {
	return func(o *Options) {
		o.Triangulator = t
	}
}

// WithReporter routes stage and progress events to r.
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
