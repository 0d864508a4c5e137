// Package core defines the index-addressed structures shared by every stage
// of the skeleton pipeline: the adjacency graph over point indices, the
// parent-array sentinel, and the precondition error taxonomy.
//
// A point set is addressed by position: point i is points[i]. An Adjacency
// maps each index to the list of its neighbor indices. Lists hold no
// duplicates and order is insignificant. A symmetrized adjacency satisfies
// j ∈ adj[i] ⇔ i ∈ adj[j].
//
// Errors:
//
//	ErrPrecondition     - umbrella kind for every malformed-input failure.
//	ErrEmptyInput       - an operation needs at least one element.
//	ErrLengthMismatch   - aligned arrays have different lengths.
//	ErrIndexOutOfRange  - an index falls outside [0, n).
//	ErrDuplicateIndex   - an adjacency list repeats a neighbor.
//	ErrNoRoot           - a parent array has no self-parent.
//	ErrMultipleRoots    - a parent array has more than one self-parent.
//	ErrNotATree         - a parent array contains a cycle.
//	ErrNoCandidate      - an iteration found no candidate where one is required.
//
// All specific errors satisfy errors.Is(err, ErrPrecondition).
package core

import "errors"

// NoParent marks a node that a search never reached.
const NoParent = -1

// ErrPrecondition is the distinct "precondition failed" kind. Callers that
// only need to tell malformed input apart from other failures test against it.
var ErrPrecondition = errors.New("core: precondition failed")

// precondition is a sentinel that also matches ErrPrecondition.
type precondition string

func (p precondition) Error() string { return string(p) }

// Is lets errors.Is(err, ErrPrecondition) match every specific sentinel.
func (p precondition) Is(target error) bool { return target == ErrPrecondition }

// Sentinel errors for malformed input.
var (
	// ErrEmptyInput indicates an operation received no elements where at least one is required.
	ErrEmptyInput error = precondition("core: empty input")

	// ErrLengthMismatch indicates arrays that must be aligned 1:1 have different lengths.
	ErrLengthMismatch error = precondition("core: array length mismatch")

	// ErrIndexOutOfRange indicates an index outside [0, n).
	ErrIndexOutOfRange error = precondition("core: index out of range")

	// ErrDuplicateIndex indicates an adjacency list names the same neighbor twice.
	ErrDuplicateIndex error = precondition("core: duplicate neighbor index")

	// ErrNoRoot indicates a parent array without any self-parent entry.
	ErrNoRoot error = precondition("core: parent array has no root")

	// ErrMultipleRoots indicates a parent array with more than one self-parent entry.
	ErrMultipleRoots error = precondition("core: parent array has multiple roots")

	// ErrNotATree indicates a parent array whose links do not all lead to the root.
	ErrNotATree error = precondition("core: parent array is not a tree")

	// ErrNoCandidate indicates an iterative step found nothing to pick.
	ErrNoCandidate error = precondition("core: no candidate found")
)

// Adjacency is an undirected neighbor relation over point indices.
type Adjacency [][]int

// NewAdjacency returns an adjacency for n points with no edges.
func NewAdjacency(n int) Adjacency {
	return make(Adjacency, n)
}

// CheckLength returns ErrLengthMismatch wrapped with context if got != want.
// what names the offending array in the message.
func CheckLength(what string, got, want int) error {
	if got != want {
		return wrapf(ErrLengthMismatch, "%s has %d entries, want %d", what, got, want)
	}

	return nil
}

// CheckIndex returns ErrIndexOutOfRange wrapped with context unless 0 <= i < n.
func CheckIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return wrapf(ErrIndexOutOfRange, "%s=%d not in [0,%d)", what, i, n)
	}

	return nil
}
