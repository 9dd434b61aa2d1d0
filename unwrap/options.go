package unwrap

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/phaseflow/lp"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the solver stop criterion and feasibility slack.
	DefaultTolerance = lp.DefaultTolerance

	// DefaultMaxIterations caps solver iterations.
	DefaultMaxIterations = lp.DefaultMaxIterations

	// DefaultMode selects the exact integer backend.
	DefaultMode = lp.ModeInteger

	// DefaultWorkers keeps constraint assembly single-threaded.
	DefaultWorkers = 1

	// DefaultUpper bounds every flow variable of integer solves.
	DefaultUpper = lp.DefaultUpper

	// jumpSnap absorbs round-off before flooring continuous jumps.
	jumpSnap = 1e-9
)

// ---------- Internal panic messages ----------

const (
	panicToleranceInvalid  = "unwrap: WithTolerance: tol must be finite and > 0"
	panicIterationsInvalid = "unwrap: WithMaxIterations: n must be > 0"
	panicWorkersInvalid    = "unwrap: WithWorkers: n must be > 0"
	panicUpperInvalid      = "unwrap: WithUpperBound: u must be finite and > 0"
)

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the effective engine configuration. Fields are unexported;
// use the WithX constructors.
type Options struct {
	tolerance     float64
	maxIterations int
	mode          lp.Mode
	solver        lp.Solver
	solverSet     bool
	workers       int
	upper         float64
	rowWeights    [][]float64
	colWeights    [][]float64
	logger        *log.Logger
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
		mode:          DefaultMode,
		workers:       DefaultWorkers,
		upper:         DefaultUpper,
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	return o
}

// WithTolerance sets the solver tolerance (default 1e-4).
// Panics when tol is not finite or ≤ 0.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithMaxIterations sets the solver iteration cap (default 10000).
// Panics when n ≤ 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithSolverMode selects the built-in backend: lp.ModeContinuous (flow
// relaxation, jumps floored) or lp.ModeInteger (min-cost flow, exact).
// An unknown mode makes New fail with ErrSolverUnavailable.
func WithSolverMode(m lp.Mode) Option {
	return func(o *Options) { o.mode = m }
}

// WithSolver injects a custom backend; its Mode decides jump decoding.
// A nil solver makes New fail with ErrSolverUnavailable.
func WithSolver(s lp.Solver) Option {
	return func(o *Options) {
		o.solver = s
		o.solverSet = true
	}
}

// WithWorkers sets the number of goroutines assembling the constraint
// matrix (default 1). The matrix is identical for every n.
// Panics when n ≤ 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithUpperBound sets the per-variable bound of integer solves (default 1<<20).
// Panics when u is not finite or ≤ 0.
func WithUpperBound(u float64) Option {
	if math.IsNaN(u) || math.IsInf(u, 0) || u <= 0 {
		panic(panicUpperInvalid)
	}

	return func(o *Options) { o.upper = u }
}

// WithWeights overrides the default cost weights. row must be shaped like
// Psi1 ((R−1)×C) and col like Psi2 (R×(C−1)); entries must be finite and ≥ 0.
// Values are deep-copied. Shapes are checked per call against the input grid.
func WithWeights(row, col [][]float64) Option {
	r, c := copy2D(row), copy2D(col)

	return func(o *Options) {
		o.rowWeights = r
		o.colWeights = c
	}
}

// WithLogger routes debug output to l. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func copy2D(in [][]float64) [][]float64 {
	if in == nil {
		return nil
	}
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = append([]float64(nil), row...)
	}

	return out
}
