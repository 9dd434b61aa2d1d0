package lp

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"
)

// DenseLimit caps rows×cols of the problems Simplex accepts. gonum builds a
// dense tableau of that size, so larger programs go to Relaxation instead.
const DenseLimit = 1 << 18

// Simplex is the general continuous backend built on gonum's dense simplex.
// It suits small programs that are not network matrices.
// The zero value is ready to use.
type Simplex struct{}

var _ Solver = Simplex{}

// Mode reports ModeContinuous.
func (Simplex) Mode() Mode { return ModeContinuous }

// Name returns "gonum-simplex".
func (Simplex) Name() string { return "gonum-simplex" }

// Solve runs gonum's Simplex on p.
//
// Implementation:
//   - Stage 1: validate p (ErrBadProblem), ctx, and the DenseLimit size
//     guard (ErrUnsupported).
//   - Stage 2: call gonum with the sparse matrix as a mat.Matrix.
//   - Stage 3: translate gonum errors (see below), clamp round-off
//     negatives to zero and recompute the objective.
//
// Error mapping:
//   - gonum ErrInfeasible, ErrUnbounded → ErrInfeasible.
//   - gonum ErrBland, ErrLinSolve, ErrSingular → ErrNonconvergence.
//   - gonum ErrZeroColumn, ErrZeroRow → ErrBadProblem.
//
// gonum exposes no pivot counter, so opts.MaxIterations is not consulted;
// Bland's rule guarantees termination and DenseLimit bounds the work.
func (s Simplex) Solve(ctx context.Context, p *Problem, opts Options) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m, n := p.A.Dims(); m*n > DenseLimit {
		return nil, fmt.Errorf("%w: %d×%d exceeds the dense limit %d", ErrUnsupported, m, n, DenseLimit)
	}
	opts = opts.normalize()

	_, x, err := gonumlp.Simplex(p.C, p.A, p.B, opts.Tolerance, nil)
	if err != nil {
		return nil, mapGonumError(err)
	}
	for j, v := range x {
		if v < 0 {
			if v < -opts.Tolerance {
				return nil, fmt.Errorf("%w: x[%d]=%g below zero", ErrNonconvergence, j, v)
			}
			x[j] = 0
		}
	}
	if opts.Logger != nil {
		opts.Logger.Debug("simplex solved", "backend", s.Name(), "vars", len(x))
	}

	return &Solution{
		X:         x,
		Objective: floats.Dot(p.C, x),
		Mode:      ModeContinuous,
		Backend:   s.Name(),
	}, nil
}

// mapGonumError translates gonum's lp sentinels into this package's taxonomy,
// keeping the original diagnostic in the chain.
func mapGonumError(err error) error {
	switch {
	case errors.Is(err, gonumlp.ErrInfeasible), errors.Is(err, gonumlp.ErrUnbounded):
		return fmt.Errorf("%w: %v", ErrInfeasible, err)
	case errors.Is(err, gonumlp.ErrBland), errors.Is(err, gonumlp.ErrLinSolve),
		errors.Is(err, gonumlp.ErrSingular):
		return fmt.Errorf("%w: %v", ErrNonconvergence, err)
	case errors.Is(err, gonumlp.ErrZeroColumn), errors.Is(err, gonumlp.ErrZeroRow):
		return fmt.Errorf("%w: %v", ErrBadProblem, err)
	default:
		return fmt.Errorf("%w: %v", ErrNonconvergence, err)
	}
}
