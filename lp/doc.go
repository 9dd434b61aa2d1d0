// Package lp solves equality-form linear programs
//
//	minimize   cᵀx
//	subject to A·x = b,  x ≥ 0   (and x ≤ Upper for integer solves)
//
// over a sparse constraint matrix, behind a pluggable Solver interface.
//
// Backends:
//
//   - Relaxation (ModeContinuous, returned by New): the continuous
//     relaxation of a network-matrix program, solved as a min-cost flow with
//     fractional augmentations over the sparse matrix.
//   - Simplex (ModeContinuous): general programs up to DenseLimit entries,
//     delegated to gonum's optimize/convex/lp.Simplex. gonum builds its own
//     dense tableau from the sparse matrix for the duration of the call.
//   - Network (ModeInteger): exact integer solve for network matrices
//     (each column holds at most one +1 and one −1). Columns become arcs of a
//     flow network whose rows are nodes plus one ground node; the problem is
//     solved by min-cost flow, whose optimum is integral for integral b.
//
// Options:
//
//   - Tolerance: stop criterion / feasibility slack (default 1e-4).
//   - MaxIterations: augmentation budget of Network and Relaxation
//     (default 10000).
//   - Upper: per-variable bound of integer solves (default 1<<20).
//
// Errors:
//
//   - ErrBadProblem: malformed problem (nil matrix, length mismatch, NaN).
//   - ErrInfeasible: no x satisfies the constraints.
//   - ErrNonconvergence: iteration budget exhausted or numeric breakdown.
//   - ErrUnsupported: the backend cannot express this problem, or no backend
//     exists for the requested Mode.
package lp
