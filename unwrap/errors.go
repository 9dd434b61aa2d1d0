package unwrap

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/lp"
)

// Sentinel errors. Solver-stage sentinels alias the lp package so callers
// may match either name with errors.Is.
var (
	// ErrInvalidGrid reports malformed or too-small input. Not retried.
	ErrInvalidGrid = grid.ErrInvalidGrid

	// ErrDimension reports gradient grids whose shapes do not describe an
	// R×C grid with R, C ≥ 2.
	ErrDimension = errors.New("unwrap: gradient dimensions inconsistent")

	// ErrInvalidWeights reports a custom weight grid of the wrong shape or
	// with negative / non-finite entries.
	ErrInvalidWeights = errors.New("unwrap: invalid weight grid")

	// ErrInfeasible reports a constraint system with no feasible point.
	ErrInfeasible = lp.ErrInfeasible

	// ErrNonconvergence reports an exhausted iteration or tolerance budget.
	ErrNonconvergence = lp.ErrNonconvergence

	// ErrSolverUnavailable reports a missing or misconfigured solver.
	ErrSolverUnavailable = errors.New("unwrap: solver unavailable")
)

// Error carries the context needed to reproduce a failed unwrap.
type Error struct {
	Op          string  // failing stage, e.g. "solve" or "verify"
	Rows, Cols  int     // input grid shape
	Constraints int     // rows of A
	Variables   int     // columns of A
	Mode        lp.Mode // solver capability
	Backend     string  // solver name
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("unwrap: %s on %dx%d grid (%d constraints, %d variables, %s/%s): %v",
		e.Op, e.Rows, e.Cols, e.Constraints, e.Variables, e.Backend, e.Mode, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
