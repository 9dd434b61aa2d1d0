package flow

import (
	"container/heap"
	"context"
	"fmt"
	"math"
)

// MinCostFlow routes every node's supply to the demands at minimum total cost
// using successive shortest paths with Dijkstra over reduced costs.
//
// Steps:
//  1. Validate the supply balance (ErrUnbalanced).
//  2. Build a private residual network: a copy of g plus a super source s
//     (arcs s→v for every v with supply > 0) and a super sink t (arcs v→t
//     for every demand), all of cost zero.
//  3. Repeat until the super source is drained:
//     a. Check for cancellation.
//     b. Dijkstra from s over residual arcs with cap > Epsilon using reduced
//     cost c(u,v) + π(u) − π(v).
//     c. If t is unreachable, return ErrInfeasible.
//     d. Update potentials π(v) += min(dist(v), dist(t)).
//     e. Push the bottleneck amount along the path; count one augmentation.
//  4. Read arc flows back as original capacity − residual capacity.
//
// Ties in Dijkstra are broken by node index, so the returned flow is
// deterministic for a given insertion order of arcs.
//
// Complexity:
//
//	Time:   O(F · (V + E) log V).
//	Memory: O(V + E).
func MinCostFlow(ctx context.Context, g *Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrBadNodeCount
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	// 1) Supply balance
	var balance, total float64
	for _, s := range g.supply {
		balance += s
		if s > 0 {
			total += s
		}
	}
	if math.Abs(balance) > eps {
		return nil, fmt.Errorf("%w: net supply %g", ErrUnbalanced, balance)
	}

	r := newResidual(g)
	if total <= eps {
		return r.result(g), nil
	}

	// 3) Main loop
	pushed := 0.0
	for total-pushed > eps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.MaxAugmentations > 0 && r.augmentations >= opts.MaxAugmentations {
			return nil, fmt.Errorf("%w: %d augmentations, %g of %g units routed",
				ErrIterationLimit, r.augmentations, pushed, total)
		}

		if !r.shortestPaths(eps) {
			return nil, fmt.Errorf("%w: %g of %g units routed", ErrInfeasible, pushed, total)
		}
		amount := r.augment(eps)
		pushed += amount
		r.augmentations++

		if opts.Logger != nil {
			opts.Logger.Debug("augment", "step", r.augmentations, "amount", amount, "routed", pushed, "total", total)
		}
	}

	return r.result(g), nil
}

// residual holds the mutable state for a single MinCostFlow execution.
type residual struct {
	n, s, t       int // node count including s and t
	arcs          []arc
	adj           [][]int
	pot           []float64 // node potentials π
	dist          []float64
	prevArc       []int
	visited       []bool
	augmentations int
}

// newResidual copies g and attaches the super source and super sink.
func newResidual(g *Graph) *residual {
	n := g.n + 2
	s, t := g.n, g.n+1
	r := &residual{
		n:       n,
		s:       s,
		t:       t,
		arcs:    make([]arc, len(g.arcs), len(g.arcs)+4*g.n),
		adj:     make([][]int, n),
		pot:     make([]float64, n),
		dist:    make([]float64, n),
		prevArc: make([]int, n),
		visited: make([]bool, n),
	}
	copy(r.arcs, g.arcs)
	for v := 0; v < g.n; v++ {
		r.adj[v] = append([]int(nil), g.adj[v]...)
	}
	for v, sup := range g.supply {
		switch {
		case sup > 0:
			r.addArc(s, v, sup)
		case sup < 0:
			r.addArc(v, t, -sup)
		}
	}

	return r
}

// addArc appends a zero-cost arc pair to the residual network.
func (r *residual) addArc(from, to int, capacity float64) {
	id := len(r.arcs)
	r.arcs = append(r.arcs, arc{to: to, cap: capacity}, arc{to: from})
	r.adj[from] = append(r.adj[from], id)
	r.adj[to] = append(r.adj[to], id+1)
}

// shortestPaths runs Dijkstra from s over reduced costs, then folds the
// distances into the potentials. It reports whether t is reachable.
func (r *residual) shortestPaths(eps float64) bool {
	inf := math.Inf(1)
	for v := 0; v < r.n; v++ {
		r.dist[v] = inf
		r.prevArc[v] = -1
		r.visited[v] = false
	}
	r.dist[r.s] = 0
	pq := nodePQ{{id: r.s, dist: 0}}

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(nodeItem)
		u := item.id
		// Skip stale heap entries (lazy decrease-key).
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		for _, a := range r.adj[u] {
			e := r.arcs[a]
			if e.cap <= eps || r.visited[e.to] {
				continue
			}
			rc := e.cost + r.pot[u] - r.pot[e.to]
			if rc < 0 {
				// Float round-off only; exact potentials keep rc ≥ 0.
				rc = 0
			}
			nd := r.dist[u] + rc
			if nd < r.dist[e.to] {
				r.dist[e.to] = nd
				r.prevArc[e.to] = a
				heap.Push(&pq, nodeItem{id: e.to, dist: nd})
			}
		}
	}
	if !r.visited[r.t] {
		return false
	}

	dt := r.dist[r.t]
	for v := 0; v < r.n; v++ {
		r.pot[v] += math.Min(r.dist[v], dt)
	}

	return true
}

// augment pushes the bottleneck capacity along the s→t path recorded in
// prevArc and returns the amount pushed.
func (r *residual) augment(eps float64) float64 {
	amount := math.Inf(1)
	for v := r.t; v != r.s; {
		a := r.prevArc[v]
		amount = math.Min(amount, r.arcs[a].cap)
		v = r.arcs[a^1].to
	}
	for v := r.t; v != r.s; {
		a := r.prevArc[v]
		r.arcs[a].cap -= amount
		r.arcs[a^1].cap += amount
		if r.arcs[a].cap < eps {
			r.arcs[a].cap = 0
		}
		v = r.arcs[a^1].to
	}

	return amount
}

// result reads flows of the original arcs back from the residual network.
func (r *residual) result(g *Graph) *Result {
	res := &Result{
		Flow:          make([]float64, len(g.from)),
		Augmentations: r.augmentations,
	}
	for id := range g.from {
		// Flow on a forward arc equals the residual capacity of its reverse twin.
		f := r.arcs[2*id+1].cap
		res.Flow[id] = f
		res.Cost += f * g.arcs[2*id].cost
	}

	return res
}

// nodeItem is a node and its tentative distance from the super source.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of nodeItem ordered by dist, then by node index.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
