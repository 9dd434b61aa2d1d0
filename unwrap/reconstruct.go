package unwrap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/lp"
)

// Jumps holds the integer cycle corrections of every edge.
//   - K1 is (R−1)×C, added to Psi1/2π.
//   - K2 is R×(C−1), added to Psi2/2π.
type Jumps struct {
	K1 [][]float64
	K2 [][]float64
}

// Count returns the number of edges with a non-zero jump.
func (j Jumps) Count() int {
	n := 0
	for _, k := range [][][]float64{j.K1, j.K2} {
		for _, row := range k {
			for _, v := range row {
				if v != 0 {
					n++
				}
			}
		}
	}

	return n
}

// DecodeJumps turns a flow solution into jump fields.
// k = x⁺ − x⁻ per edge; ModeContinuous floors (after a 1e-9 snap against
// round-off), ModeInteger rounds away representation noise.
//
// Errors:
//   - ErrDimension when len(x) does not match the layout.
func DecodeJumps(x []float64, l Layout, mode lp.Mode) (Jumps, error) {
	if len(x) != l.Variables() {
		return Jumps{}, fmt.Errorf("%w: solution has %d variables, layout wants %d",
			ErrDimension, len(x), l.Variables())
	}
	snap := math.Round
	if mode == lp.ModeContinuous {
		snap = func(v float64) float64 { return math.Floor(v + jumpSnap) }
	}

	k1 := make([][]float64, l.Rows-1)
	for i := range k1 {
		k1[i] = make([]float64, l.Cols)
		for j := range k1[i] {
			k1[i][j] = snap(x[l.K1Pos(i, j)]-x[l.K1Neg(i, j)]) + 0
		}
	}
	k2 := make([][]float64, l.Rows)
	for i := range k2 {
		k2[i] = make([]float64, l.Cols-1)
		for j := range k2[i] {
			k2[i][j] = snap(x[l.K2Pos(i, j)]-x[l.K2Neg(i, j)]) + 0
		}
	}

	return Jumps{K1: k1, K2: k2}, nil
}

// Integrate rebuilds the absolute phase from the wrapped gradients and the
// jumps, in cycles, then scales by 2π.
//
// Steps:
//  1. g1 = Psi1/2π + K1, g2 = Psi2/2π + K2.
//  2. U[0][0] = seed/2π; row 0 is the prefix sum of g2 along j.
//  3. Every column is the prefix sum of g1 down i, starting from row 0.
//
// With curl-free corrected gradients the result is path independent and
// Wrap(U) equals the wrapped input (seeded with its first sample).
// Complexity: O(R×C).
func Integrate(seed float64, g *grid.Gradients, j Jumps) (*grid.Grid, error) {
	if g == nil || g.Psi1 == nil || g.Psi2 == nil {
		return nil, fmt.Errorf("%w: nil gradients", ErrDimension)
	}
	r, c := g.Rows(), g.Cols()
	if r < 2 || c < 2 || len(j.K1) != r-1 || len(j.K2) != r || len(j.K2[0]) != c-1 {
		return nil, fmt.Errorf("%w: jump fields do not match a %dx%d grid", ErrDimension, r, c)
	}

	u := make([]float64, r*c)
	u[0] = seed / grid.TwoPi
	for col := 1; col < c; col++ {
		u[col] = u[col-1] + g.Psi2.At(0, col-1)/grid.TwoPi + j.K2[0][col-1]
	}
	for i := 1; i < r; i++ {
		if len(j.K1[i-1]) != c {
			return nil, fmt.Errorf("%w: K1 row %d has %d entries", ErrDimension, i-1, len(j.K1[i-1]))
		}
		for col := 0; col < c; col++ {
			u[i*c+col] = u[(i-1)*c+col] + g.Psi1.At(i-1, col)/grid.TwoPi + j.K1[i-1][col]
		}
	}
	for k := range u {
		u[k] *= grid.TwoPi
	}

	return grid.FromFlat(r, c, u)
}
