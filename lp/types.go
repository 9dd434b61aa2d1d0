package lp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/phaseflow/sparse"
)

// Sentinel errors returned by every backend.
var (
	// ErrBadProblem indicates a malformed problem definition.
	ErrBadProblem = errors.New("lp: malformed problem")

	// ErrInfeasible indicates that no feasible point exists.
	ErrInfeasible = errors.New("lp: problem is infeasible")

	// ErrNonconvergence indicates the solver exhausted its iteration budget
	// or broke down numerically before reaching an optimum.
	ErrNonconvergence = errors.New("lp: solver did not converge")

	// ErrUnsupported indicates the backend cannot solve this problem class.
	ErrUnsupported = errors.New("lp: unsupported problem for solver")
)

// Mode selects the capability a Solver provides.
type Mode int

const (
	// ModeContinuous solves the continuous relaxation.
	ModeContinuous Mode = iota
	// ModeInteger solves with every variable integer and bounded.
	ModeInteger
)

// String returns "continuous" or "integer".
func (m Mode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeInteger:
		return "integer"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "continuous" / "integer" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "continuous":
		return ModeContinuous, nil
	case "integer":
		return ModeInteger, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrUnsupported, s)
	}
}

// Defaults.
const (
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 10000
	DefaultUpper         = 1 << 20
)

// Options tunes a single Solve call.
type Options struct {
	Tolerance     float64
	MaxIterations int
	Upper         float64
	Logger        *log.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Upper:         DefaultUpper,
	}
}

// normalize fills zero fields with defaults.
func (o Options) normalize() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Upper <= 0 {
		o.Upper = DefaultUpper
	}

	return o
}

// Problem is min cᵀx s.t. A·x = B, x ≥ 0.
type Problem struct {
	A *sparse.CSR
	B []float64
	C []float64
}

// Validate checks shapes and finiteness.
func (p *Problem) Validate() error {
	if p == nil || p.A == nil {
		return fmt.Errorf("%w: nil constraint matrix", ErrBadProblem)
	}
	m, n := p.A.Dims()
	if len(p.B) != m {
		return fmt.Errorf("%w: len(b)=%d, rows=%d", ErrBadProblem, len(p.B), m)
	}
	if len(p.C) != n {
		return fmt.Errorf("%w: len(c)=%d, cols=%d", ErrBadProblem, len(p.C), n)
	}
	if m > n {
		return fmt.Errorf("%w: %d rows exceed %d columns", ErrBadProblem, m, n)
	}
	for i, v := range p.B {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: b[%d]=%g", ErrBadProblem, i, v)
		}
	}
	for j, v := range p.C {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: c[%d]=%g", ErrBadProblem, j, v)
		}
	}

	return nil
}

// Solution is an optimal, non-negative point.
//   - X: variable values, len == cols(A).
//   - Objective: cᵀX.
//   - Iterations: backend-specific work count (augmentations for Network
//     and Relaxation, zero when the backend does not report one).
type Solution struct {
	X          []float64
	Objective  float64
	Iterations int
	Mode       Mode
	Backend    string
}

// Solver is the pluggable LP backend.
// Implementations must be safe for concurrent use: all workspace is
// allocated per Solve call and released on return.
type Solver interface {
	// Solve returns an optimal solution or one of the package sentinels.
	Solve(ctx context.Context, p *Problem, opts Options) (*Solution, error)
	// Mode reports the capability of the backend.
	Mode() Mode
	// Name identifies the backend in logs and errors.
	Name() string
}

// New returns the built-in backend for mode.
func New(mode Mode) (Solver, error) {
	switch mode {
	case ModeContinuous:
		return Relaxation{}, nil
	case ModeInteger:
		return Network{}, nil
	default:
		return nil, fmt.Errorf("%w: no backend for %v", ErrUnsupported, mode)
	}
}
