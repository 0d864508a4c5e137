package skeleton

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pointskel/prim_kruskal"
)

// ErrInvalidConfig indicates a Config that fails Validate.
var ErrInvalidConfig = errors.New("skeleton: invalid config")

// Spanning tree strategies for the macro graph of bins.
const (
	// SpanningShortestPath keeps the shortest-path tree from the root bin.
	SpanningShortestPath = "shortest-path"
	// SpanningMinimum keeps the minimum spanning tree grown from the root bin.
	SpanningMinimum = "minimum"
)

// Config holds every knob of the pipeline. The TOML tags match the CLI
// config file.
type Config struct {
	// Root is the index of the point the distance-to-root labelling starts from.
	Root int `toml:"root"`
	// BinSize is the width of a distance-to-root bin.
	BinSize float64 `toml:"bin_size"`
	// K is the number of nearest neighbors in the proximity graph.
	K int `toml:"k"`
	// ConnectAll bridges disconnected components before labelling.
	ConnectAll bool `toml:"connect_all"`
	// SpanningTree is SpanningShortestPath or SpanningMinimum.
	SpanningTree string `toml:"spanning_tree"`
	// MSTMethod picks the minimum spanning tree algorithm, prim or kruskal.
	MSTMethod string `toml:"mst_method"`
	// SmoothPositions moves nodes towards orientation-coherent edges.
	SmoothPositions bool `toml:"smooth_positions"`
	// PipeExponent relates carried length to radius; 0 gives uniform radii.
	PipeExponent float64 `toml:"pipe_exponent"`
	// MaxClosestNodes bounds the nodes examined per point in AverageRadius.
	MaxClosestNodes int `toml:"max_closest_nodes"`
	// EdgeLengthFilter removes children closer than this to their parent.
	EdgeLengthFilter float64 `toml:"edge_length_filter"`
	// OverlapFilter scales the sibling overlap test; 0 disables pruning
	// together with EdgeLengthFilter.
	OverlapFilter float64 `toml:"overlap_filter"`
	// Workers bounds the goroutines of per-point batch stages.
	Workers int `toml:"workers"`

	Contraction ContractionConfig `toml:"contraction"`
}

// ContractionConfig drives the optional density-adaptive contraction that
// pulls points towards their local medial axis before clustering.
type ContractionConfig struct {
	Enabled   bool    `toml:"enabled"`
	K         int     `toml:"k"`
	MinRadius float64 `toml:"min_radius"`
	MaxRadius float64 `toml:"max_radius"`
	Alpha     float64 `toml:"alpha"`
	Beta      float64 `toml:"beta"`
}

// DefaultConfig returns the settings used by the CLI when no file is given.
func DefaultConfig() Config {
	return Config{
		Root:             0,
		BinSize:          0.5,
		K:                8,
		ConnectAll:       true,
		SpanningTree:     SpanningShortestPath,
		MSTMethod:        prim_kruskal.MethodPrim,
		SmoothPositions:  true,
		PipeExponent:     2.5,
		MaxClosestNodes:  10,
		EdgeLengthFilter: 0,
		OverlapFilter:    0,
		Workers:          1,
		Contraction: ContractionConfig{
			Enabled:   false,
			K:         16,
			MinRadius: 0.1,
			MaxRadius: 0.5,
			Alpha:     1,
			Beta:      4,
		},
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Root < 0:
		return fmt.Errorf("%w: root=%d", ErrInvalidConfig, c.Root)
	case !(c.BinSize > 0) || math.IsInf(c.BinSize, 0):
		return fmt.Errorf("%w: bin_size=%g", ErrInvalidConfig, c.BinSize)
	case c.K < 1:
		return fmt.Errorf("%w: k=%d", ErrInvalidConfig, c.K)
	case c.SpanningTree != SpanningShortestPath && c.SpanningTree != SpanningMinimum:
		return fmt.Errorf("%w: spanning_tree=%q", ErrInvalidConfig, c.SpanningTree)
	case c.MSTMethod != prim_kruskal.MethodPrim && c.MSTMethod != prim_kruskal.MethodKruskal:
		return fmt.Errorf("%w: mst_method=%q", ErrInvalidConfig, c.MSTMethod)
	case c.PipeExponent < 0 || math.IsNaN(c.PipeExponent):
		return fmt.Errorf("%w: pipe_exponent=%g", ErrInvalidConfig, c.PipeExponent)
	case c.MaxClosestNodes < 1:
		return fmt.Errorf("%w: max_closest_nodes=%d", ErrInvalidConfig, c.MaxClosestNodes)
	case c.EdgeLengthFilter < 0 || c.OverlapFilter < 0:
		return fmt.Errorf("%w: filters must be non-negative", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers=%d", ErrInvalidConfig, c.Workers)
	}
	if !c.Contraction.Enabled {
		return nil
	}
	ct := c.Contraction
	switch {
	case ct.K < 1:
		return fmt.Errorf("%w: contraction.k=%d", ErrInvalidConfig, ct.K)
	case ct.MinRadius < 0 || ct.MaxRadius < ct.MinRadius:
		return fmt.Errorf("%w: contraction radii [%g, %g]", ErrInvalidConfig, ct.MinRadius, ct.MaxRadius)
	case ct.Alpha < 0 || ct.Beta < 0:
		return fmt.Errorf("%w: contraction weights must be non-negative", ErrInvalidConfig)
	}

	return nil
}

// pruning reports whether the prune stage runs.
func (c Config) pruning() bool {
	return c.EdgeLengthFilter > 0 || c.OverlapFilter > 0
}
