package skeleton

import (
	"context"
	"sort"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/prune"
	"github.com/katalvlaran/pointskel/tree"
)

// Skeleton is a rooted tree of nodes with per-node geometry. All slices are
// indexed by node and share one length.
type Skeleton struct {
	Nodes        []geom.Vec
	Parents      []int
	Radii        []float64
	Orientations []geom.Vec
	// Weights are the carried lengths computed before pruning.
	Weights []float64
	// Groups lists the input point indices summarized by each node. Points
	// of pruned nodes move to the surviving ancestor.
	Groups [][]int
	// Root is the index of the node with Parents[Root] == Root.
	Root int
	// AverageRadius is the mean distance from the cloud to the unpruned tree.
	AverageRadius float64
}

// Build runs the full pipeline and returns the skeleton of points.
//
// With no proximity graph backend it returns nil and a nil error. Errors
// are those of FromDistanceToRootClusters and of the tree and prune stages.
func Build(ctx context.Context, points []geom.Vec, cfg Config, opts ...Option) (*Skeleton, error) {
	cl, err := FromDistanceToRootClusters(ctx, points, cfg, opts...)
	if err != nil || cl == nil {
		return nil, err
	}
	o := buildOptions(opts)
	r := o.Reporter

	// 8) Weights, orientations, positions
	r.Stage(StageGeometry)
	nodes, parents := cl.Centroids, cl.Parents
	weights, err := tree.CarriedLength(nodes, parents)
	if err != nil {
		return nil, err
	}
	orients, err := tree.OptimizeOrientations(nodes, parents, weights)
	if err != nil {
		return nil, err
	}
	if cfg.SmoothPositions {
		if nodes, err = tree.OptimizePositions(nodes, orients, parents, weights); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 9) Radii
	r.Stage(StageRadii)
	avg, err := tree.AverageRadius(points, nodes, parents, cfg.MaxClosestNodes, o.Builder)
	if err != nil {
		return nil, err
	}
	radii, err := tree.EstimateRadii(nodes, parents, weights, avg, cfg.PipeExponent)
	if err != nil {
		return nil, err
	}

	sk := &Skeleton{
		Nodes:         nodes,
		Parents:       parents,
		Radii:         radii,
		Orientations:  orients,
		Weights:       weights,
		Groups:        cl.Groups,
		Root:          cl.Root,
		AverageRadius: avg,
	}
	if !cfg.pruning() {
		return sk, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 10) Prune
	r.Stage(StagePrune)
	drop, err := prune.FilterShortNodes(nodes, parents, radii, cfg.EdgeLengthFilter, cfg.OverlapFilter)
	if err != nil {
		return nil, err
	}
	if len(drop) == 0 {
		return sk, nil
	}
	rm, err := prune.RemoveNodes(drop, nodes, parents, radii)
	if err != nil {
		return nil, err
	}

	return sk.compact(rm), nil
}

// compact rewrites the per-node slices of sk through a removal.
func (sk *Skeleton) compact(rm *prune.Removal) *Skeleton {
	out := &Skeleton{
		Nodes:         rm.Nodes,
		Parents:       rm.Parents,
		Radii:         rm.Radii,
		Orientations:  make([]geom.Vec, len(rm.Kept)),
		Weights:       make([]float64, len(rm.Kept)),
		Groups:        make([][]int, len(rm.Kept)),
		Root:          rm.IDMap[sk.Root],
		AverageRadius: sk.AverageRadius,
	}
	for j, old := range rm.Kept {
		out.Orientations[j] = sk.Orientations[old]
		out.Weights[j] = sk.Weights[old]
		out.Groups[j] = append(out.Groups[j], sk.Groups[old]...)
	}

	// hand the points of removed nodes to their surviving ancestor
	for old, id := range rm.IDMap {
		if id != core.NoParent {
			continue
		}
		a := sk.Parents[old]
		for rm.IDMap[a] == core.NoParent {
			a = sk.Parents[a]
		}
		j := rm.IDMap[a]
		out.Groups[j] = append(out.Groups[j], sk.Groups[old]...)
	}
	for _, g := range out.Groups {
		sort.Ints(g)
	}

	return out
}
