// Package components defines options and result types for the component
// connector.
package components

import (
	"github.com/katalvlaran/pointskel/neighbors"
	"github.com/katalvlaran/pointskel/progress"
)

// StageName is the progress stage reported by Connect.
const StageName = "connect components"

// Bridge is an edge added to join an unreached point to the reached set.
// From is the reached endpoint, To the newly connected one, Dist their
// Euclidean distance.
type Bridge struct {
	From int
	To   int
	Dist float64
}

// Options configures Connect.
//
// Builder  – neighbor-index backend over reached points; nil means absent.
// Reporter – progress sink, progress.Nop by default.
// Root     – point the first reachability search starts from. Default 0.
type Options struct {
	Builder  neighbors.Builder
	Reporter progress.Reporter
	Root     int
}

// Option represents a functional option for configuring Connect.
type Option func(*Options)

// DefaultOptions returns the kd-tree backend, a silent reporter and root 0.
func DefaultOptions() Options {
	return Options{
		Builder:  neighbors.KDTreeBuilder,
		Reporter: progress.Nop{},
		Root:     0,
	}
}

// WithBuilder selects the neighbor-index backend. Passing nil models an
// absent backend: Connect then returns the input unchanged.
func WithBuilder(b neighbors.Builder) Option {
	return func(o *Options) {
		o.Builder = b
	}
}

// WithReporter routes progress events to r.
func WithReporter(r progress.Reporter) Option {
	return func(o *Options) {
		o.Reporter = progress.OrNop(r)
	}
}

// WithRoot sets the starting point of the first reachability search.
// Panics if root < 0; an out-of-range root is reported by Connect.
func WithRoot(root int) Option {
	if root < 0 {
		panic("components: root must be non-negative")
	}
	return func(o *Options) {
		o.Root = root
	}
}
