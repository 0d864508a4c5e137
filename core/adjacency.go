package core

import "fmt"

// wrapf attaches context to a sentinel while keeping it matchable by errors.Is.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// Len returns the number of indexed points.
func (a Adjacency) Len() int { return len(a) }

// EdgeCount returns the number of directed entries (an undirected edge that
// is stored in both lists counts twice).
func (a Adjacency) EdgeCount() int {
	total := 0
	for _, nbrs := range a {
		total += len(nbrs)
	}

	return total
}

// Validate checks that a describes n points, every neighbor index lies in
// [0, n) and no list repeats a neighbor.
//
// Complexity: O(V + E) time, O(V) scratch.
func (a Adjacency) Validate(n int) error {
	if err := CheckLength("adjacency", len(a), n); err != nil {
		return err
	}
	// seen[j] == i+1 marks j as already listed for i, so one array serves all rows.
	seen := make([]int, n)
	for i, nbrs := range a {
		for _, j := range nbrs {
			if j < 0 || j >= n {
				return wrapf(ErrIndexOutOfRange, "adjacency[%d] lists %d, n=%d", i, j, n)
			}
			if seen[j] == i+1 {
				return wrapf(ErrDuplicateIndex, "adjacency[%d] lists %d twice", i, j)
			}
			seen[j] = i + 1
		}
	}

	return nil
}

// Clone returns a deep copy of a.
func (a Adjacency) Clone() Adjacency {
	if a == nil {
		return nil
	}
	out := make(Adjacency, len(a))
	for i, nbrs := range a {
		out[i] = append([]int(nil), nbrs...)
	}

	return out
}

// Has reports whether j is listed as a neighbor of i.
func (a Adjacency) Has(i, j int) bool {
	for _, k := range a[i] {
		if k == j {
			return true
		}
	}

	return false
}

// AddEdge inserts the undirected edge i-j into a in place, skipping entries
// that already exist. Self-loops are ignored.
func (a Adjacency) AddEdge(i, j int) {
	if i == j {
		return
	}
	if !a.Has(i, j) {
		a[i] = append(a[i], j)
	}
	if !a.Has(j, i) {
		a[j] = append(a[j], i)
	}
}

// Symmetrize returns a copy of a where every j ∈ adj[i] also has i ∈ adj[j].
// Reverse entries are appended in index order, so the result is deterministic
// and applying Symmetrize to its own output changes nothing.
//
// Complexity: O(V + E·d) where d is the largest degree.
func (a Adjacency) Symmetrize() Adjacency {
	out := a.Clone()
	for i, nbrs := range a {
		for _, j := range nbrs {
			if !out.Has(j, i) {
				out[j] = append(out[j], i)
			}
		}
	}

	return out
}

// IsSymmetric reports whether j ∈ adj[i] ⇔ i ∈ adj[j] for all pairs.
func (a Adjacency) IsSymmetric() bool {
	for i, nbrs := range a {
		for _, j := range nbrs {
			if !a.Has(j, i) {
				return false
			}
		}
	}

	return true
}
