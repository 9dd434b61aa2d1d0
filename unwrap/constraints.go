package unwrap

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/sparse"
)

// Layout records where each flow block lives in the variable vector of an
// R×C problem. Blocks are laid out as [k1⁺ | k1⁻ | k2⁺ | k2⁻] with sizes
// N1, N1, N2, N2 where N1 = (R−1)·C and N2 = R·(C−1).
type Layout struct {
	Rows, Cols int // shape of the phase grid
	N1, N2     int // edges down columns, edges along rows
}

// NewLayout returns the layout of an rows×cols grid.
func NewLayout(rows, cols int) Layout {
	return Layout{Rows: rows, Cols: cols, N1: (rows - 1) * cols, N2: rows * (cols - 1)}
}

// Constraints returns the number of equality rows, (R−1)·(C−1).
func (l Layout) Constraints() int { return (l.Rows - 1) * (l.Cols - 1) }

// Variables returns the number of columns, 2·(N1+N2).
func (l Layout) Variables() int { return 2 * (l.N1 + l.N2) }

// K1Pos is the column of k1⁺[i][j].
func (l Layout) K1Pos(i, j int) int { return i*l.Cols + j }

// K1Neg is the column of k1⁻[i][j].
func (l Layout) K1Neg(i, j int) int { return l.N1 + i*l.Cols + j }

// K2Pos is the column of k2⁺[i][j].
func (l Layout) K2Pos(i, j int) int { return 2*l.N1 + i*(l.Cols-1) + j }

// K2Neg is the column of k2⁻[i][j].
func (l Layout) K2Neg(i, j int) int { return 2*l.N1 + l.N2 + i*(l.Cols-1) + j }

// ConstraintSystem is the equality system A·x = B over the flow variables.
type ConstraintSystem struct {
	A      *sparse.CSR
	B      []float64
	Layout Layout
}

// Residues returns a row-major mask over the (R−1)×(C−1) elementary loops,
// true where the loop carries non-zero rounded curl.
func (cs *ConstraintSystem) Residues() []bool {
	mask := make([]bool, len(cs.B))
	for k, v := range cs.B {
		mask[k] = v != 0
	}

	return mask
}

// ResidueCount returns the number of loops with non-zero rounded curl.
func (cs *ConstraintSystem) ResidueCount() int {
	n := 0
	for _, v := range cs.B {
		if v != 0 {
			n++
		}
	}

	return n
}

// BuildConstraints assembles the Costantini equality system from the
// wrapped gradients of an R×C grid.
//
// For every elementary loop (i, j), 0 ≤ i < R−1, 0 ≤ j < C−1, row i·(C−1)+j:
//
//	curl = (Psi1[i][j+1] − Psi1[i][j]) − (Psi2[i+1][j] − Psi2[i][j])
//	b    = −round(curl / 2π)
//	row  = +k1[i][j+1] − k1[i][j] − k2[i+1][j] + k2[i][j]
//
// where every k = k⁺ − k⁻, so the negative blocks carry the opposite sign.
// Each edge touches at most two loops with opposite signs: A is a network
// matrix.
//
// Steps:
//  1. Validate shapes (ErrDimension).
//  2. Split loop rows into contiguous bands, one per worker (errgroup).
//  3. Each band emits its triplets and RHS into its own slot.
//  4. Concatenate bands in order and compress COO → CSR.
//
// Bands own disjoint rows, so the CSR is identical for every worker count.
// Complexity: O(R·C) time and memory.
func BuildConstraints(ctx context.Context, g *grid.Gradients, workers int) (*ConstraintSystem, error) {
	if g == nil || g.Psi1 == nil || g.Psi2 == nil {
		return nil, fmt.Errorf("%w: nil gradients", ErrDimension)
	}
	r, c := g.Psi2.Rows(), g.Psi1.Cols()
	if r < 2 || c < 2 || g.Psi1.Rows() != r-1 || g.Psi2.Cols() != c-1 {
		return nil, fmt.Errorf("%w: Psi1 %dx%d, Psi2 %dx%d", ErrDimension,
			g.Psi1.Rows(), g.Psi1.Cols(), g.Psi2.Rows(), g.Psi2.Cols())
	}
	if workers < 1 {
		workers = 1
	}

	layout := NewLayout(r, c)
	loopRows := r - 1
	if workers > loopRows {
		workers = loopRows
	}

	b := make([]float64, layout.Constraints())
	bands := make([][]sparse.Triplet, workers)
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := w*loopRows/workers, (w+1)*loopRows/workers
		eg.Go(func() error {
			ts := make([]sparse.Triplet, 0, 8*(hi-lo)*(c-1))
			for i := lo; i < hi; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				for j := 0; j < c-1; j++ {
					ts = appendLoop(ts, g, layout, b, i, j)
				}
			}
			bands[w] = ts

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	coo, err := sparse.NewCOO(layout.Constraints(), layout.Variables())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimension, err)
	}
	coo.Grow(8 * layout.Constraints())
	for _, ts := range bands {
		if err = coo.AppendTriplets(ts); err != nil {
			return nil, err
		}
	}

	return &ConstraintSystem{A: coo.ToCSR(), B: b, Layout: layout}, nil
}

// appendLoop writes the RHS of loop (i, j) into b and appends its eight
// coefficients in ascending column order.
func appendLoop(ts []sparse.Triplet, g *grid.Gradients, l Layout, b []float64, i, j int) []sparse.Triplet {
	row := i*(l.Cols-1) + j
	curl := (g.Psi1.At(i, j+1) - g.Psi1.At(i, j)) - (g.Psi2.At(i+1, j) - g.Psi2.At(i, j))
	// +0 turns a rounded −0 into 0
	b[row] = -math.Round(curl/grid.TwoPi) + 0

	return append(ts,
		sparse.Triplet{Row: row, Col: l.K1Pos(i, j), Val: -1},
		sparse.Triplet{Row: row, Col: l.K1Pos(i, j+1), Val: +1},
		sparse.Triplet{Row: row, Col: l.K1Neg(i, j), Val: +1},
		sparse.Triplet{Row: row, Col: l.K1Neg(i, j+1), Val: -1},
		sparse.Triplet{Row: row, Col: l.K2Pos(i, j), Val: +1},
		sparse.Triplet{Row: row, Col: l.K2Pos(i+1, j), Val: -1},
		sparse.Triplet{Row: row, Col: l.K2Neg(i, j), Val: -1},
		sparse.Triplet{Row: row, Col: l.K2Neg(i+1, j), Val: +1},
	)
}
