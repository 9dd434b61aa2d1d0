package lp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Verify checks that sol is feasible for p within tol: len(X) matches,
// every X[j] ≥ −tol and ‖A·X − B‖∞ ≤ tol.
// It returns ErrInfeasible describing the worst violation.
func Verify(p *Problem, sol *Solution, tol float64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if sol == nil {
		return fmt.Errorf("%w: nil solution", ErrBadProblem)
	}
	if _, n := p.A.Dims(); len(sol.X) != n {
		return fmt.Errorf("%w: len(x)=%d, cols=%d", ErrBadProblem, len(sol.X), n)
	}
	if lo := floats.Min(sol.X); lo < -tol {
		return fmt.Errorf("%w: x[%d]=%g is negative", ErrInfeasible, floats.MinIdx(sol.X), lo)
	}
	ax, err := p.A.MulVec(sol.X)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadProblem, err)
	}
	floats.Sub(ax, p.B)
	if worst := floats.Norm(ax, math.Inf(1)); worst > tol {
		return fmt.Errorf("%w: ‖Ax−b‖∞=%g exceeds %g", ErrInfeasible, worst, tol)
	}

	return nil
}
