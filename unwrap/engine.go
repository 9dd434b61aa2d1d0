package unwrap

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/lp"
)

// Engine unwraps phase grids with a fixed configuration.
// It retains no per-call state and is safe for concurrent use.
type Engine struct {
	opts       Options
	solver     lp.Solver
	rowWeights *grid.Grid // nil: DefaultWeights per call
	colWeights *grid.Grid
}

// Result is the full outcome of one unwrap.
type Result struct {
	Unwrapped       *grid.Grid    // absolute phase, input shape
	Jumps           Jumps         // integer cycle corrections per edge
	Residues        int           // loops with non-zero rounded curl
	ResidueClusters int           // 4-connected groups of residue loops
	Objective       float64       // weighted L1 norm of the jumps
	Iterations      int           // backend work count
	Mode            lp.Mode       // decoding mode
	Backend         string        // solver name
	Elapsed         time.Duration // wall time of Solve
}

// New validates opts and returns a ready Engine.
//
// Errors:
//   - ErrSolverUnavailable for a nil injected solver, an unknown mode or a
//     solver reporting an unknown capability.
//   - ErrInvalidWeights when only one weight grid is given or a grid is
//     ragged, non-finite or negative. Shapes are checked per call.
func New(opts ...Option) (*Engine, error) {
	o := gatherOptions(opts...)

	s := o.solver
	if o.solverSet {
		if s == nil {
			return nil, fmt.Errorf("%w: nil solver", ErrSolverUnavailable)
		}
	} else {
		var err error
		if s, err = lp.New(o.mode); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSolverUnavailable, err)
		}
	}
	if m := s.Mode(); m != lp.ModeContinuous && m != lp.ModeInteger {
		return nil, fmt.Errorf("%w: %s reports %v", ErrSolverUnavailable, s.Name(), m)
	}

	e := &Engine{opts: o, solver: s}
	if o.rowWeights != nil || o.colWeights != nil {
		var err error
		if e.rowWeights, err = weightGrid("row", o.rowWeights); err != nil {
			return nil, err
		}
		if e.colWeights, err = weightGrid("col", o.colWeights); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Mode returns the decoding mode of the configured backend.
func (e *Engine) Mode() lp.Mode { return e.solver.Mode() }

// Backend returns the configured solver name.
func (e *Engine) Backend() string { return e.solver.Name() }

// Unwrap returns the absolute phase of wrapped, same shape as the input.
func (e *Engine) Unwrap(ctx context.Context, wrapped [][]float64) ([][]float64, error) {
	res, err := e.Solve(ctx, wrapped)
	if err != nil {
		return nil, err
	}

	return res.Unwrapped.Slices(), nil
}

// Solve runs the whole pipeline and reports its by-products.
//
// Steps:
//  1. Validate and copy the input (ErrInvalidGrid).
//  2. Wrapped gradients Psi1, Psi2.
//  3. Constraint system A·x = b; count and cluster residues.
//  4. Cost vector from default or custom weights (ErrInvalidWeights).
//  5. Solve the LP unless there are no residues (x = 0 is then optimal),
//     then verify A·x = b, x ≥ 0 within tolerance.
//  6. Decode jumps (floor for continuous, round for integer) and integrate
//     from Wrap(W[0][0]).
//
// Stage failures after validation are returned as *Error.
// ctx is checked between stages and inside the solver.
func (e *Engine) Solve(ctx context.Context, wrapped [][]float64) (*Result, error) {
	start := time.Now()
	logger := e.opts.logger

	w, err := grid.NewAtLeast2x2(wrapped)
	if err != nil {
		return nil, err
	}
	grads, err := grid.NewGradients(w)
	if err != nil {
		return nil, err
	}
	l := NewLayout(w.Rows(), w.Cols())
	fail := func(op string, err error) error {
		return &Error{
			Op: op, Rows: l.Rows, Cols: l.Cols,
			Constraints: l.Constraints(), Variables: l.Variables(),
			Mode: e.solver.Mode(), Backend: e.solver.Name(), Err: err,
		}
	}

	cs, err := BuildConstraints(ctx, grads, e.opts.workers)
	if err != nil {
		return nil, fail("constraints", err)
	}
	residues := cs.ResidueCount()
	clusters := len(grid.Components(l.Rows-1, l.Cols-1, cs.Residues()))
	logger.Debug("constraints assembled",
		"rows", l.Rows, "cols", l.Cols,
		"constraints", l.Constraints(), "variables", l.Variables(),
		"nnz", cs.A.NNZ(), "residues", residues, "clusters", clusters)

	rw, cw := e.rowWeights, e.colWeights
	if rw == nil {
		rw, cw = DefaultWeights(l.Rows, l.Cols)
	}
	cost, err := CostVector(l, rw, cw)
	if err != nil {
		return nil, fail("weights", err)
	}

	if err = ctx.Err(); err != nil {
		return nil, fail("solve", err)
	}
	sol := &lp.Solution{X: make([]float64, l.Variables()), Mode: e.solver.Mode(), Backend: e.solver.Name()}
	if residues > 0 {
		p := &lp.Problem{A: cs.A, B: cs.B, C: cost}
		sol, err = e.solver.Solve(ctx, p, lp.Options{
			Tolerance:     e.opts.tolerance,
			MaxIterations: e.opts.maxIterations,
			Upper:         e.opts.upper,
			Logger:        logger,
		})
		if err != nil {
			return nil, fail("solve", err)
		}
		if err = lp.Verify(p, sol, e.opts.tolerance); err != nil {
			return nil, fail("verify", err)
		}
	} else {
		logger.Debug("no residues, skipping solver")
	}
	logger.Debug("lp solved", "backend", e.solver.Name(),
		"objective", sol.Objective, "iterations", sol.Iterations)

	jumps, err := DecodeJumps(sol.X, l, e.solver.Mode())
	if err != nil {
		return nil, fail("decode", err)
	}
	u, err := Integrate(grid.Wrap(w.At(0, 0)), grads, jumps)
	if err != nil {
		return nil, fail("integrate", err)
	}

	res := &Result{
		Unwrapped:       u,
		Jumps:           jumps,
		Residues:        residues,
		ResidueClusters: clusters,
		Objective:       sol.Objective,
		Iterations:      sol.Iterations,
		Mode:            e.solver.Mode(),
		Backend:         e.solver.Name(),
		Elapsed:         time.Since(start),
	}
	logger.Debug("unwrapped", "jumps", jumps.Count(), "elapsed", res.Elapsed)

	return res, nil
}

// Unwrap is a convenience wrapper: New(opts...) followed by Engine.Unwrap.
func Unwrap(ctx context.Context, wrapped [][]float64, opts ...Option) ([][]float64, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return e.Unwrap(ctx, wrapped)
}
