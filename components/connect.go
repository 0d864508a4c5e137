// Package components joins the connected components of a neighborhood
// graph into one, bridging each stray component to the reached set through
// its globally closest point pair.
//
// Algorithm:
//
//  1. Run a hop-count shortest-path search from the root; every finalized
//     point is "reached", the rest "unreached".
//  2. Index the reached points with the configured neighbor backend.
//  3. For each unreached point query its nearest reached point; keep the
//     globally closest (reached, unreached) pair.
//  4. Add that pair as an undirected edge, re-run the search from the newly
//     bridged point and move everything it reaches into the reached set.
//  5. Repeat from 2 until nothing is unreached.
//
// The search sees the graph as undirected: a one-way edge still joins two
// points. The returned adjacency is the symmetrized input plus bridges.
//
// Complexity: O(B · (V log V + E)) for B bridges.
package components

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pointskel/core"
	"github.com/katalvlaran/pointskel/dijkstra"
	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/metric"
	"github.com/katalvlaran/pointskel/progress"
)

// Connect returns a connected copy of adj. See ConnectWithBridges.
func Connect(points []geom.Vec, adj core.Adjacency, opts ...Option) (core.Adjacency, error) {
	out, _, err := ConnectWithBridges(points, adj, opts...)

	return out, err
}

// ConnectWithBridges returns a connected, symmetric copy of adj together with
// the bridges it added, in insertion order.
//
// When the neighbor backend is absent (nil Builder, or a Builder returning a
// nil Index) the input is returned as an unchanged clone with no bridges.
//
// Errors:
//   - core.ErrLengthMismatch / core.ErrIndexOutOfRange for malformed input.
//   - core.ErrNoCandidate if an iteration finds no candidate pair.
func ConnectWithBridges(points []geom.Vec, adj core.Adjacency, opts ...Option) (core.Adjacency, []Bridge, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(points)
	if err := adj.Validate(n); err != nil {
		return nil, nil, fmt.Errorf("components: %w", err)
	}
	if n == 0 {
		return adj.Clone(), nil, nil
	}
	if err := core.CheckIndex("root", cfg.Root, n); err != nil {
		return nil, nil, fmt.Errorf("components: %w", err)
	}
	if cfg.Builder == nil {
		return adj.Clone(), nil, nil
	}

	c := &connector{
		points:  points,
		search:  adj.Symmetrize(),
		reached: make([]bool, n),
		ticker:  progress.NewTicker(cfg.Reporter, StageName, n),
	}
	cfg.Reporter.Stage(StageName)
	out := c.search.Clone()

	next := cfg.Root
	for {
		if err := c.absorb(next); err != nil {
			return nil, nil, err
		}
		if len(c.refIDs) == n {
			break
		}

		b, ok, err := c.closestPair(cfg)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			// the backend yields no index: treat it as absent
			return adj.Clone(), nil, nil
		}
		out.AddEdge(b.From, b.To)
		c.bridges = append(c.bridges, b)
		next = b.To
	}

	return out, c.bridges, nil
}

// connector holds the state of one Connect call.
type connector struct {
	points  []geom.Vec
	search  core.Adjacency // symmetrized input, never grows
	reached []bool
	refIDs  []int // reached point ids, in the order they were reached
	bridges []Bridge
	ticker  *progress.Ticker
}

// absorb runs the hop-count search from root and marks every point it
// finalizes as reached.
func (c *connector) absorb(root int) error {
	res, err := dijkstra.ShortestPaths(c.search, root, metric.Unit{})
	if err != nil {
		return fmt.Errorf("components: %w", err)
	}
	for _, v := range res.Order {
		if !c.reached[v] {
			c.reached[v] = true
			c.refIDs = append(c.refIDs, v)
		}
	}
	c.ticker.Tick(len(c.refIDs))

	return nil
}

// closestPair indexes the reached points and returns the globally closest
// (reached, unreached) pair. The first strictly smaller distance wins ties.
// ok is false when the backend yields no index.
func (c *connector) closestPair(cfg Options) (Bridge, bool, error) {
	ref := make([]geom.Vec, len(c.refIDs))
	for i, id := range c.refIDs {
		ref[i] = c.points[id]
	}
	idx := cfg.Builder(ref)
	if idx == nil {
		return Bridge{}, false, nil
	}

	best := Bridge{From: core.NoParent, To: core.NoParent, Dist: math.Inf(1)}
	for pid, ok := range c.reached {
		if ok {
			continue
		}
		hits := idx.Nearest(c.points[pid], 1)
		if len(hits) == 0 {
			continue
		}
		if hits[0].Dist < best.Dist || best.To == core.NoParent {
			best = Bridge{From: c.refIDs[hits[0].ID], To: pid, Dist: hits[0].Dist}
		}
	}
	if best.To == core.NoParent {
		return Bridge{}, false, fmt.Errorf("components: %w: %d unreached points, none locatable",
			core.ErrNoCandidate, len(c.points)-len(c.refIDs))
	}

	return best, true, nil
}
