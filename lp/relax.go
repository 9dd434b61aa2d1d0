package lp

import "context"

// Relaxation is the sparse continuous backend for network-matrix programs.
// The zero value is ready to use.
type Relaxation struct{}

var _ Solver = Relaxation{}

// Mode reports ModeContinuous.
func (Relaxation) Mode() Mode { return ModeContinuous }

// Name returns "flow-relaxation".
func (Relaxation) Name() string { return "flow-relaxation" }

// Solve solves the continuous relaxation of p as a min-cost flow.
//
// The mapping is the one of Network.Solve, except that b may be fractional
// and no variable is bounded above: arcs are capped at 1 + Σ|b|, which no
// optimal flow reaches. Augmentations push fractional bottlenecks and are
// never rounded; each one counts against opts.MaxIterations.
//
// Requirements (ErrUnsupported otherwise): every column is a network column
// and every cost is ≥ 0. General programs go to Simplex.
//
// Error mapping: flow.ErrInfeasible → ErrInfeasible,
// flow.ErrIterationLimit → ErrNonconvergence.
//
// Complexity: O(nnz + cols) to build, then O(F·(V+E) log V) to solve;
// no dense copy of A is made.
func (s Relaxation) Solve(ctx context.Context, p *Problem, opts Options) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.normalize()

	return solveNetwork(ctx, p, opts, false, s.Name())
}
