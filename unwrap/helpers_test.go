package unwrap_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/unwrap"
)

const eps = 1e-9

// vortex is a 2×2 grid whose single loop winds once (+π/2 per edge).
func vortex() [][]float64 {
	return [][]float64{
		{0, math.Pi / 2},
		{-math.Pi / 2, math.Pi},
	}
}

// noise returns rows×cols uniformly random wrapped phases; dense in residues.
func noise(rows, cols int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = grid.Wrap(rng.Float64()*2*math.Pi - math.Pi)
		}
	}

	return out
}

// surface samples f on an rows×cols lattice over [−3, 3]².
func surface(rows, cols int, f func(x, y float64) float64) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		y := -3 + 6*float64(i)/float64(rows-1)
		for j := range out[i] {
			x := -3 + 6*float64(j)/float64(cols-1)
			out[i][j] = f(x, y)
		}
	}

	return out
}

// peaks is the classic two-hump test surface.
func peaks(x, y float64) float64 {
	return 3*(1-x)*(1-x)*math.Exp(-x*x-(y+1)*(y+1)) -
		10*(x/5-x*x*x-math.Pow(y, 5))*math.Exp(-x*x-y*y) -
		math.Exp(-(x+1)*(x+1)-y*y)/3
}

func wrapAll(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = grid.Wrap(v)
		}
	}

	return out
}

// requireRewraps checks Wrap(u) == Wrap(w) cell by cell.
func requireRewraps(t *testing.T, w, u [][]float64) {
	t.Helper()
	require.Len(t, u, len(w))
	for i := range w {
		require.Len(t, u[i], len(w[i]))
		for j := range w[i] {
			require.InDelta(t, 0, grid.Wrap(u[i][j]-w[i][j]), 1e-6, "cell (%d,%d)", i, j)
		}
	}
}

// requireCurlFree checks that the jump-corrected gradients close every loop.
func requireCurlFree(t *testing.T, w [][]float64, j unwrap.Jumps) {
	t.Helper()
	g, err := grid.New(w)
	require.NoError(t, err)
	grads, err := grid.NewGradients(g)
	require.NoError(t, err)
	for r := 0; r < g.Rows()-1; r++ {
		for c := 0; c < g.Cols()-1; c++ {
			g1 := func(a, b int) float64 { return grads.Psi1.At(a, b)/grid.TwoPi + j.K1[a][b] }
			g2 := func(a, b int) float64 { return grads.Psi2.At(a, b)/grid.TwoPi + j.K2[a][b] }
			curl := (g1(r, c+1) - g1(r, c)) - (g2(r+1, c) - g2(r, c))
			require.InDelta(t, 0, curl, 1e-9, "loop (%d,%d)", r, c)
		}
	}
}

// requireIntegral checks every jump is a whole number.
func requireIntegral(t *testing.T, j unwrap.Jumps) {
	t.Helper()
	for _, k := range [][][]float64{j.K1, j.K2} {
		for _, row := range k {
			for _, v := range row {
				require.Equal(t, math.Round(v), v)
			}
		}
	}
}
