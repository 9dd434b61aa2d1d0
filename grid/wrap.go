package grid

import "math"

// TwoPi is one full phase cycle.
const TwoPi = 2 * math.Pi

// Wrap folds v into the principal interval (−π, π].
// The IEEE remainder modulo TwoPi is exact for every finite v, so values of
// any magnitude keep their phase; the −π end maps to π.
// Non-finite inputs yield NaN.
// Complexity: O(1).
func Wrap(v float64) float64 {
	r := math.Remainder(v, TwoPi)
	if r <= -math.Pi {
		r += TwoPi
	}

	return r
}

// Gradients holds the wrapped phase differences of an R×C grid.
//   - Psi1 is (R−1)×C: Psi1[i][j] = Wrap(W[i+1][j] − W[i][j]) (down a column).
//   - Psi2 is R×(C−1): Psi2[i][j] = Wrap(W[i][j+1] − W[i][j]) (along a row).
type Gradients struct {
	Psi1 *Grid
	Psi2 *Grid
}

// NewGradients computes the wrapped gradients of w.
//
// Steps:
//  1. Reject grids smaller than 2×2 (ErrTooSmall).
//  2. For every vertically adjacent pair, wrap the raw difference into Psi1.
//  3. For every horizontally adjacent pair, wrap the raw difference into Psi2.
//
// Input values need not be pre-wrapped; only differences matter.
// Complexity: O(R×C) time and memory.
func NewGradients(w *Grid) (*Gradients, error) {
	if w == nil || w.rows < 2 || w.cols < 2 {
		return nil, ErrTooSmall
	}
	r, c := w.rows, w.cols

	psi1 := make([]float64, (r-1)*c)
	for i := 0; i < r-1; i++ {
		for j := 0; j < c; j++ {
			psi1[i*c+j] = Wrap(w.data[(i+1)*c+j] - w.data[i*c+j])
		}
	}

	psi2 := make([]float64, r*(c-1))
	for i := 0; i < r; i++ {
		for j := 0; j < c-1; j++ {
			psi2[i*(c-1)+j] = Wrap(w.data[i*c+j+1] - w.data[i*c+j])
		}
	}

	return &Gradients{
		Psi1: fromData(r-1, c, psi1),
		Psi2: fromData(r, c-1, psi2),
	}, nil
}

// Rows returns the row count of the grid the gradients were taken from.
func (g *Gradients) Rows() int { return g.Psi2.rows }

// Cols returns the column count of the grid the gradients were taken from.
func (g *Gradients) Cols() int { return g.Psi1.cols }

// Rewrap returns a copy of g with every value folded into (−π, π].
func Rewrap(g *Grid) *Grid {
	return g.Map(Wrap)
}
