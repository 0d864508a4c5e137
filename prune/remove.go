package prune

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/tree"
)

// ErrRemoveRoot indicates a removal set that contains the tree root.
// It also matches core.ErrPrecondition.
var ErrRemoveRoot = errors.New("prune: cannot remove the root")

// Removal is the compacted tree left after RemoveNodes.
//
// IDMap maps every old index to its new index, core.NoParent for removed
// nodes. Kept is the inverse: Kept[new] is the old index.
type Removal struct {
	Nodes   []geom.Vec
	Parents []int
	Radii   []float64
	IDMap   []int
	Kept    []int
}

// RemoveNodes drops the nodes listed in toRemove and compacts the index
// space. Every surviving node whose parent was removed is reattached to its
// nearest surviving ancestor. Inputs are never modified; the result holds
// fresh arrays.
//
// Duplicates in toRemove are ignored.
//
// Errors:
//   - core preconditions for misaligned arrays or an invalid parent array.
//   - core.ErrIndexOutOfRange for a removal index outside [0, n).
//   - ErrRemoveRoot (also core.ErrPrecondition) when toRemove names the root.
//
// Complexity: O(n + Σ removed-chain lengths).
func RemoveNodes(toRemove []int, nodes []geom.Vec, parents []int, radii []float64) (*Removal, error) {
	// 1) Validate
	n := len(nodes)
	if err := core.CheckLength("parents", len(parents), n); err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	if err := core.CheckLength("radii", len(radii), n); err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	_, root, err := tree.Children(parents)
	if err != nil {
		return nil, err
	}

	removed := make([]bool, n)
	for _, id := range dedupe(toRemove) {
		if err := core.CheckIndex("removal", id, n); err != nil {
			return nil, fmt.Errorf("prune: %w", err)
		}
		if id == root {
			return nil, fmt.Errorf("%w: %w: node %d", core.ErrPrecondition, ErrRemoveRoot, id)
		}
		removed[id] = true
	}

	// 2) Old → new index table
	idmap := make([]int, n)
	kept := make([]int, 0, n)
	for i := range idmap {
		if removed[i] {
			idmap[i] = core.NoParent
			continue
		}
		idmap[i] = len(kept)
		kept = append(kept, i)
	}

	// 3) Rewrite every array in one pass
	res := &Removal{
		Nodes:   make([]geom.Vec, len(kept)),
		Parents: make([]int, len(kept)),
		Radii:   make([]float64, len(kept)),
		IDMap:   idmap,
		Kept:    kept,
	}
	for j, old := range kept {
		res.Nodes[j] = nodes[old]
		res.Radii[j] = radii[old]
		p := parents[old]
		for removed[p] {
			p = parents[p]
		}
		res.Parents[j] = idmap[p]
	}

	return res, nil
}
