package flow

import (
	"fmt"
	"math"
)

// arc is one residual arc; arcs are stored in pairs (2k forward, 2k+1 reverse).
type arc struct {
	to   int
	cap  float64 // residual capacity
	cost float64
}

// Graph is a capacitated network with per-node supplies. Not safe for
// concurrent mutation; MinCostFlow works on a private residual copy.
type Graph struct {
	n      int
	arcs   []arc
	from   []int // tail of forward arc k, indexed by arc ID
	adj    [][]int
	supply []float64
}

// NewGraph creates a network with n nodes and no arcs.
func NewGraph(n int) (*Graph, error) {
	if n <= 0 {
		return nil, ErrBadNodeCount
	}

	return &Graph{
		n:      n,
		adj:    make([][]int, n),
		supply: make([]float64, n),
	}, nil
}

// Nodes returns the node count.
func (g *Graph) Nodes() int { return g.n }

// Arcs returns the number of arcs added with AddArc.
func (g *Graph) Arcs() int { return len(g.from) }

// AddArc adds a directed arc from→to and returns its ID.
//
// Errors:
//   - ErrNodeOutOfRange for endpoints outside 0..n−1.
//   - ArcError for negative or non-finite capacity or cost.
//
// Complexity: amortized O(1).
func (g *Graph) AddArc(from, to int, capacity, cost float64) (int, error) {
	if from < 0 || from >= g.n || to < 0 || to >= g.n {
		return -1, fmt.Errorf("%w: arc %d→%d with %d nodes", ErrNodeOutOfRange, from, to, g.n)
	}
	if !finiteNonNeg(capacity) || !finiteNonNeg(cost) {
		return -1, ArcError{From: from, To: to, Cap: capacity, Cost: cost}
	}
	id := len(g.from)
	g.from = append(g.from, from)
	g.arcs = append(g.arcs,
		arc{to: to, cap: capacity, cost: cost},
		arc{to: from, cap: 0, cost: -cost},
	)
	g.adj[from] = append(g.adj[from], 2*id)
	g.adj[to] = append(g.adj[to], 2*id+1)

	return id, nil
}

// SetSupply sets the supply of node v (negative for demand).
func (g *Graph) SetSupply(v int, s float64) error {
	if v < 0 || v >= g.n {
		return fmt.Errorf("%w: node %d with %d nodes", ErrNodeOutOfRange, v, g.n)
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("flow: supply of node %d is not finite", v)
	}
	g.supply[v] = s

	return nil
}

// Supply returns the supply of node v.
func (g *Graph) Supply(v int) float64 { return g.supply[v] }

func finiteNonNeg(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
