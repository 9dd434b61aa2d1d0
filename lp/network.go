package lp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/phaseflow/flow"
	"github.com/katalvlaran/phaseflow/sparse"
)

// Network is the integer backend for network-matrix programs.
// The zero value is ready to use.
type Network struct{}

var _ Solver = Network{}

// Mode reports ModeInteger.
func (Network) Mode() Mode { return ModeInteger }

// Name returns "min-cost-flow".
func (Network) Name() string { return "min-cost-flow" }

// Solve maps p onto a flow network and solves it with flow.MinCostFlow.
//
// Mapping (m rows, n columns):
//   - node i < m is constraint row i; node m is the ground node.
//   - column j with +1 in row h and −1 in row t becomes arc t→h with
//     capacity opts.Upper and cost c[j]; a missing ±1 is the ground node.
//   - row i has supply −b[i] (inflow − outflow = b[i]); ground balances.
//
// Requirements (ErrUnsupported otherwise): every column is a network column,
// every cost is ≥ 0, every b[i] is integral within opts.Tolerance.
//
// Error mapping: flow.ErrInfeasible → ErrInfeasible,
// flow.ErrIterationLimit → ErrNonconvergence.
//
// Complexity: O(nnz + cols) to build, then O(F·(V+E) log V) to solve.
func (s Network) Solve(ctx context.Context, p *Problem, opts Options) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.normalize()

	return solveNetwork(ctx, p, opts, true, s.Name())
}

// solveNetwork builds the flow network of p and routes it. With integral
// set, b is rounded (and rejected when fractional) and every arc is capped
// at opts.Upper; otherwise b is used as is and arcs are capped at Σ|b|,
// which no optimal flow exceeds.
func solveNetwork(ctx context.Context, p *Problem, opts Options, integral bool, name string) (*Solution, error) {
	m, n := p.A.Dims()
	ground := m

	supply := make([]float64, m)
	var net, volume float64
	for i, b := range p.B {
		if integral {
			rb := math.Round(b)
			if math.Abs(b-rb) > opts.Tolerance {
				return nil, fmt.Errorf("%w: b[%d]=%g is not integral", ErrUnsupported, i, b)
			}
			b = rb
		}
		supply[i] = -b
		net += b
		volume += math.Abs(b)
	}
	capacity := opts.Upper
	if !integral {
		capacity = volume + 1
	}

	g, err := flow.NewGraph(m + 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadProblem, err)
	}

	// Columns of A are the rows of Aᵀ.
	at := p.A.Transpose()
	arcOf := make([]int, n)
	for j := 0; j < n; j++ {
		head, tail, err := networkColumn(at, j, opts.Tolerance)
		if err != nil {
			return nil, err
		}
		if head == -1 {
			head = ground
		}
		if tail == -1 {
			tail = ground
		}
		id, err := g.AddArc(tail, head, capacity, p.C[j])
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %v", ErrUnsupported, j, err)
		}
		arcOf[j] = id
	}

	for i, sup := range supply {
		if err := g.SetSupply(i, sup); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadProblem, err)
		}
	}
	if err := g.SetSupply(ground, net); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadProblem, err)
	}

	res, err := flow.MinCostFlow(ctx, g, flow.Options{
		Epsilon:          flow.DefaultEpsilon,
		MaxAugmentations: opts.MaxIterations,
		Logger:           opts.Logger,
	})
	if err != nil {
		return nil, mapFlowError(err)
	}

	mode := ModeInteger
	if !integral {
		mode = ModeContinuous
	}
	x := make([]float64, n)
	for j, id := range arcOf {
		x[j] = res.Flow[id]
	}
	if opts.Logger != nil {
		opts.Logger.Debug("network solved", "backend", name, "mode", mode, "nodes", m+1, "arcs", n,
			"augmentations", res.Augmentations, "cost", res.Cost)
	}

	return &Solution{
		X:          x,
		Objective:  floats.Dot(p.C, x),
		Iterations: res.Augmentations,
		Mode:       mode,
		Backend:    name,
	}, nil
}

// networkColumn returns the rows holding +1 (head) and −1 (tail) in column j,
// −1 when absent.
func networkColumn(at *sparse.CSR, j int, tol float64) (head, tail int, err error) {
	head, tail = -1, -1
	at.DoRowNonZero(j, func(_, row int, v float64) {
		if err != nil {
			return
		}
		switch {
		case math.Abs(v-1) <= tol && head == -1:
			head = row
		case math.Abs(v+1) <= tol && tail == -1:
			tail = row
		default:
			err = fmt.Errorf("%w: column %d is not a network column (row %d, value %g)", ErrUnsupported, j, row, v)
		}
	})

	return head, tail, err
}

// mapFlowError translates flow sentinels into this package's taxonomy.
func mapFlowError(err error) error {
	switch {
	case errors.Is(err, flow.ErrInfeasible), errors.Is(err, flow.ErrUnbalanced):
		return fmt.Errorf("%w: %v", ErrInfeasible, err)
	case errors.Is(err, flow.ErrIterationLimit):
		return fmt.Errorf("%w: %v", ErrNonconvergence, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
}
