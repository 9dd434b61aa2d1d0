// Package unwrap recovers absolute phase from a wrapped (modulo-2π)
// interferometric phase grid with the Costantini minimum-cost-flow
// formulation.
//
// What:
//
//	Wrapped phase is known only modulo 2π. Between every pair of adjacent
//	pixels the engine estimates an integer number of cycles (a phase jump)
//	such that the jump-corrected gradient field is consistent around every
//	elementary 2×2 loop, and the weighted L1 norm of the jumps is minimal.
//	The corrected gradients are then integrated back into a phase surface.
//
// Pipeline:
//
//	wrapped grid ──grid.NewGradients──▶ Psi1, Psi2
//	             ──BuildConstraints──▶  A (sparse), b (rounded curl)
//	             ──CostVector───────▶   c (boundary-halved weights)
//	             ──lp.Solver────────▶   x ≥ 0
//	             ──DecodeJumps──────▶   k1, k2
//	             ──Integrate────────▶   unwrapped grid
//
// Determinism & state:
//
//	An Engine holds configuration only. Every call allocates its own
//	constraint system and solver workspace, so one Engine may serve
//	concurrent calls on disjoint grids. Matrix assembly may use several
//	workers; the resulting CSR matrix does not depend on their number.
//
// Rounding vs. flooring:
//
//	The right-hand side rounds the discrete curl to the nearest integer,
//	while jumps decoded from a continuous solution are floored. The
//	asymmetry is intentional and covered by tests.
//
// Errors:
//
//	ErrInvalidGrid        malformed or smaller than 2×2 input.
//	ErrDimension          gradient shapes inconsistent with a grid.
//	ErrInvalidWeights     custom weight grid of wrong shape or value.
//	ErrInfeasible         constraint system without a feasible point.
//	ErrNonconvergence     solver exhausted its budget.
//	ErrSolverUnavailable  missing or misconfigured solver (at New).
//
// Solve-stage failures arrive as *Error carrying the grid and system sizes.
package unwrap
