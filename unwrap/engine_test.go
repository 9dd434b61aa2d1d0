package unwrap_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/lp"
	"github.com/katalvlaran/phaseflow/unwrap"
)

// EngineSuite runs the unwrap properties against one backend.
type EngineSuite struct {
	suite.Suite
	mode lp.Mode
	ctx  context.Context
	eng  *unwrap.Engine
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	eng, err := unwrap.New(unwrap.WithSolverMode(s.mode))
	require.NoError(s.T(), err)
	s.eng = eng
}

// TestZeros: all-zero 2×2 input unwraps to zeros without jumps.
func (s *EngineSuite) TestZeros() {
	res, err := s.eng.Solve(s.ctx, [][]float64{{0, 0}, {0, 0}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]float64{{0, 0}, {0, 0}}, res.Unwrapped.Slices())
	require.Zero(s.T(), res.Jumps.Count())
	require.Zero(s.T(), res.Residues)
	require.Zero(s.T(), res.Objective)
}

// TestSubPiStep: a step just below π needs no correction.
func (s *EngineSuite) TestSubPiStep() {
	w := [][]float64{{0, math.Pi - 0.01}, {0, math.Pi - 0.01}}
	res, err := s.eng.Solve(s.ctx, w)
	require.NoError(s.T(), err)
	requireGridInDelta(s.T(), w, res.Unwrapped.Slices())
	require.Zero(s.T(), res.Jumps.Count())
}

// TestPeaks: a smooth multi-cycle surface is recovered up to the constant
// fixed by the first sample.
func (s *EngineSuite) TestPeaks() {
	truth := surface(32, 32, peaks)
	u, err := s.eng.Unwrap(s.ctx, wrapAll(truth))
	require.NoError(s.T(), err)

	offset := u[0][0] - truth[0][0]
	require.InDelta(s.T(), 0, grid.Wrap(offset), eps)
	for i := range truth {
		for j := range truth[i] {
			require.InDelta(s.T(), truth[i][j]+offset, u[i][j], 1e-9)
		}
	}
}

// TestVortex: one winding loop costs one border edge.
func (s *EngineSuite) TestVortex() {
	res, err := s.eng.Solve(s.ctx, vortex())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, res.Residues)
	require.Equal(s.T(), 1, res.ResidueClusters)
	require.Equal(s.T(), 1, res.Jumps.Count())
	require.InDelta(s.T(), 0.5, res.Objective, 1e-9)
	requireCurlFree(s.T(), vortex(), res.Jumps)
	requireRewraps(s.T(), vortex(), res.Unwrapped.Slices())
}

// TestNoise: random phases are dense in residues; the contract still holds.
func (s *EngineSuite) TestNoise() {
	w := noise(7, 6, 11)
	res, err := s.eng.Solve(s.ctx, w)
	require.NoError(s.T(), err)
	require.Positive(s.T(), res.Residues)
	requireIntegral(s.T(), res.Jumps)
	requireCurlFree(s.T(), w, res.Jumps)
	requireRewraps(s.T(), w, res.Unwrapped.Slices())
	require.Equal(s.T(), s.mode, res.Mode)
}

// TestDeterministic: identical input, identical output.
func (s *EngineSuite) TestDeterministic() {
	w := noise(6, 6, 2)
	a, err := s.eng.Unwrap(s.ctx, w)
	require.NoError(s.T(), err)
	b, err := s.eng.Unwrap(s.ctx, w)
	require.NoError(s.T(), err)
	require.Equal(s.T(), a, b)
}

// TestIdempotentRamp: an unwrapped ramp comes back unchanged.
func (s *EngineSuite) TestIdempotentRamp() {
	ramp := surface(6, 8, func(x, y float64) float64 { return 1.1*x + 0.7*y + 9.4 })
	first, err := s.eng.Unwrap(s.ctx, wrapAll(ramp))
	require.NoError(s.T(), err)
	second, err := s.eng.Unwrap(s.ctx, first)
	require.NoError(s.T(), err)
	requireGridInDelta(s.T(), first, second)

	res, err := s.eng.Solve(s.ctx, first)
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Jumps.Count())
}

func TestEngineSuite(t *testing.T) {
	for _, m := range []lp.Mode{lp.ModeContinuous, lp.ModeInteger} {
		t.Run(m.String(), func(t *testing.T) {
			suite.Run(t, &EngineSuite{mode: m})
		})
	}
}

// TestSteepPeaks: an aliased surface carries residues; the integer backend
// closes every loop and still recovers the surface.
func TestSteepPeaks(t *testing.T) {
	truth := surface(40, 40, func(x, y float64) float64 { return 2 * peaks(x, y) })
	w := wrapAll(truth)
	eng, err := unwrap.New()
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), w)
	require.NoError(t, err)
	require.Positive(t, res.Residues)
	require.Positive(t, res.Jumps.Count())
	requireIntegral(t, res.Jumps)
	requireCurlFree(t, w, res.Jumps)

	u := res.Unwrapped.Slices()
	requireRewraps(t, w, u)
	offset := u[0][0] - truth[0][0]
	exact := 0
	for i := range truth {
		for j := range truth[i] {
			if math.Abs(u[i][j]-truth[i][j]-offset) < 1e-6 {
				exact++
			}
		}
	}
	require.GreaterOrEqual(t, exact, 95*40*40/100)
}

// TestBackendsAgree: both backends reach the same optimal objective.
func TestBackendsAgree(t *testing.T) {
	ctx := context.Background()
	for _, seed := range []int64{1, 2, 3} {
		w := noise(5, 6, seed)
		cont, err := unwrap.New(unwrap.WithSolverMode(lp.ModeContinuous))
		require.NoError(t, err)
		integer, err := unwrap.New()
		require.NoError(t, err)

		a, err := cont.Solve(ctx, w)
		require.NoError(t, err)
		b, err := integer.Solve(ctx, w)
		require.NoError(t, err)
		require.InDelta(t, a.Objective, b.Objective, 1e-6, "seed %d", seed)
		require.Equal(t, a.Residues, b.Residues)
	}
}

// TestLargeMagnitude: phases far beyond 2⁵³ radians keep their wrapped
// values through the round trip.
func TestLargeMagnitude(t *testing.T) {
	// 1e20 lies in [2⁶⁶, 2⁶⁷), where doubles are spaced 2¹⁴ apart.
	const base, spacing = 1e20, 16384.0
	steps := [][]float64{{0, 2, 5}, {-3, 1, 4}, {7, -6, 2}}
	w := make([][]float64, len(steps))
	for i, row := range steps {
		w[i] = make([]float64, len(row))
		for j, k := range row {
			w[i][j] = base + k*spacing
		}
	}

	for _, m := range []lp.Mode{lp.ModeContinuous, lp.ModeInteger} {
		t.Run(m.String(), func(t *testing.T) {
			u, err := unwrap.Unwrap(context.Background(), w, unwrap.WithSolverMode(m))
			require.NoError(t, err)
			require.InDelta(t, grid.Wrap(w[0][0]), u[0][0], 1e-12)
			for i := range w {
				for j := range w[i] {
					diff := grid.Wrap(grid.Wrap(u[i][j]) - grid.Wrap(w[i][j]))
					require.InDelta(t, 0, diff, 1e-9, "cell (%d,%d)", i, j)
				}
			}
		})
	}
}

// TestDimensionGuard: inputs without a single loop are rejected up front.
func TestDimensionGuard(t *testing.T) {
	cases := map[string][][]float64{
		"nil":    nil,
		"1x5":    {{0, 1, 2, 3, 4}},
		"5x1":    {{0}, {1}, {2}, {3}, {4}},
		"ragged": {{0, 1}, {2}},
		"nan":    {{0, 1}, {math.NaN(), 2}},
		"inf":    {{0, math.Inf(-1)}, {1, 2}},
		"empty":  {{}},
		"1x1":    {{0}},
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := unwrap.Unwrap(context.Background(), w)
			require.ErrorIs(t, err, unwrap.ErrInvalidGrid)
		})
	}
}

// TestInputNotRetained: mutating the input after the call has no effect on
// the result, and the call does not mutate the input.
func TestInputNotRetained(t *testing.T) {
	w := noise(4, 4, 9)
	orig := wrapAll(w)
	eng, err := unwrap.New()
	require.NoError(t, err)
	out, err := eng.Solve(context.Background(), w)
	require.NoError(t, err)
	require.Equal(t, orig, w)

	before := out.Unwrapped.Slices()
	w[0][0] = 3
	require.Equal(t, before, out.Unwrapped.Slices())
}

// TestCustomWeights: the cheapest edge absorbs the jump.
func TestCustomWeights(t *testing.T) {
	eng, err := unwrap.New(unwrap.WithWeights(
		[][]float64{{5, 5}},
		[][]float64{{0.1}, {5}},
	))
	require.NoError(t, err)
	res, err := eng.Solve(context.Background(), vortex())
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0}}, res.Jumps.K1)
	require.Equal(t, [][]float64{{-1}, {0}}, res.Jumps.K2)
	require.InDelta(t, 0.1, res.Objective, 1e-9)
}

func TestInvalidWeights(t *testing.T) {
	_, err := unwrap.New(unwrap.WithWeights(nil, [][]float64{{1}}))
	require.ErrorIs(t, err, unwrap.ErrInvalidWeights)

	_, err = unwrap.New(unwrap.WithWeights([][]float64{{-1, 1}}, [][]float64{{1}, {1}}))
	require.ErrorIs(t, err, unwrap.ErrInvalidWeights)

	_, err = unwrap.New(unwrap.WithWeights([][]float64{{math.NaN(), 1}}, [][]float64{{1}, {1}}))
	require.ErrorIs(t, err, unwrap.ErrInvalidWeights)

	// Valid values, wrong shape for a 3×3 grid.
	eng, err := unwrap.New(unwrap.WithWeights([][]float64{{1, 1}}, [][]float64{{1}, {1}}))
	require.NoError(t, err)
	_, err = eng.Solve(context.Background(), noise(3, 3, 1))
	require.ErrorIs(t, err, unwrap.ErrInvalidWeights)
	var ue *unwrap.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "weights", ue.Op)
}

// stubSolver returns a canned answer.
type stubSolver struct {
	mode lp.Mode
	x    func(n int) []float64
	err  error
}

func (s stubSolver) Solve(_ context.Context, p *lp.Problem, _ lp.Options) (*lp.Solution, error) {
	if s.err != nil {
		return nil, s.err
	}
	_, n := p.A.Dims()

	return &lp.Solution{X: s.x(n), Mode: s.mode, Backend: s.Name()}, nil
}

func (s stubSolver) Mode() lp.Mode { return s.mode }
func (stubSolver) Name() string    { return "stub" }

func TestSolverUnavailable(t *testing.T) {
	_, err := unwrap.New(unwrap.WithSolver(nil))
	require.ErrorIs(t, err, unwrap.ErrSolverUnavailable)

	_, err = unwrap.New(unwrap.WithSolverMode(lp.Mode(42)))
	require.ErrorIs(t, err, unwrap.ErrSolverUnavailable)

	_, err = unwrap.New(unwrap.WithSolver(stubSolver{mode: lp.Mode(7)}))
	require.ErrorIs(t, err, unwrap.ErrSolverUnavailable)
}

// TestSolveErrors: backend failures surface as *Error with context.
func TestSolveErrors(t *testing.T) {
	ctx := context.Background()
	w := vortex()

	eng, err := unwrap.New(unwrap.WithSolver(stubSolver{mode: lp.ModeInteger, err: lp.ErrInfeasible}))
	require.NoError(t, err)
	_, err = eng.Solve(ctx, w)
	require.ErrorIs(t, err, unwrap.ErrInfeasible)
	var ue *unwrap.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "solve", ue.Op)
	require.Equal(t, 2, ue.Rows)
	require.Equal(t, 2, ue.Cols)
	require.Equal(t, 1, ue.Constraints)
	require.Equal(t, 8, ue.Variables)
	require.Equal(t, "stub", ue.Backend)
	require.Contains(t, ue.Error(), "2x2")

	// A zero vector violates the vortex row: rejected by verification.
	eng, err = unwrap.New(unwrap.WithSolver(stubSolver{mode: lp.ModeInteger, x: func(n int) []float64 {
		return make([]float64, n)
	}}))
	require.NoError(t, err)
	_, err = eng.Solve(ctx, w)
	require.ErrorIs(t, err, unwrap.ErrInfeasible)
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "verify", ue.Op)
}

// TestNonconvergence: an augmentation budget of one cannot route a noisy
// grid in either mode.
func TestNonconvergence(t *testing.T) {
	for _, m := range []lp.Mode{lp.ModeContinuous, lp.ModeInteger} {
		t.Run(m.String(), func(t *testing.T) {
			_, err := unwrap.Unwrap(context.Background(), noise(8, 8, 4),
				unwrap.WithSolverMode(m), unwrap.WithMaxIterations(1))
			require.ErrorIs(t, err, unwrap.ErrNonconvergence)
			require.True(t, errors.Is(err, lp.ErrNonconvergence))

			var ue *unwrap.Error
			require.ErrorAs(t, err, &ue)
			require.Equal(t, m, ue.Mode)
		})
	}
}

// TestContinuousScales: the continuous relaxation stays sparse, so a noisy
// 40×40 grid solves with the same objective as the integer backend.
func TestContinuousScales(t *testing.T) {
	ctx := context.Background()
	w := noise(40, 40, 11)
	cont, err := unwrap.New(unwrap.WithSolverMode(lp.ModeContinuous))
	require.NoError(t, err)
	integer, err := unwrap.New()
	require.NoError(t, err)

	a, err := cont.Solve(ctx, w)
	require.NoError(t, err)
	b, err := integer.Solve(ctx, w)
	require.NoError(t, err)
	require.Positive(t, a.Residues)
	require.Positive(t, a.Iterations)
	require.InDelta(t, b.Objective, a.Objective, 1e-6)
	requireIntegral(t, a.Jumps)
	requireCurlFree(t, w, a.Jumps)
	requireRewraps(t, w, a.Unwrapped.Slices())
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := unwrap.Unwrap(ctx, noise(4, 4, 1))
	require.ErrorIs(t, err, context.Canceled)
}

// TestConcurrentUse: one Engine serves parallel calls.
func TestConcurrentUse(t *testing.T) {
	eng, err := unwrap.New(unwrap.WithWorkers(3))
	require.NoError(t, err)
	w := noise(10, 10, 8)
	want, err := eng.Unwrap(context.Background(), w)
	require.NoError(t, err)

	got := make([][][]float64, 8)
	var eg errgroup.Group
	for k := range got {
		k := k
		eg.Go(func() error {
			u, err := eng.Unwrap(context.Background(), w)
			got[k] = u
			return err
		})
	}
	require.NoError(t, eg.Wait())
	for _, u := range got {
		require.Equal(t, want, u)
	}
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { unwrap.WithTolerance(0) })
	require.Panics(t, func() { unwrap.WithTolerance(math.NaN()) })
	require.Panics(t, func() { unwrap.WithMaxIterations(0) })
	require.Panics(t, func() { unwrap.WithWorkers(-1) })
	require.Panics(t, func() { unwrap.WithUpperBound(math.Inf(1)) })
	require.NotPanics(t, func() { unwrap.WithLogger(nil) })
}

func TestEngineAccessors(t *testing.T) {
	eng, err := unwrap.New()
	require.NoError(t, err)
	require.Equal(t, unwrap.DefaultMode, eng.Mode())
	require.Equal(t, lp.Network{}.Name(), eng.Backend())

	eng, err = unwrap.New(unwrap.WithSolverMode(lp.ModeContinuous), unwrap.WithTolerance(1e-6))
	require.NoError(t, err)
	require.Equal(t, lp.ModeContinuous, eng.Mode())
	require.Equal(t, lp.Relaxation{}.Name(), eng.Backend())
}
