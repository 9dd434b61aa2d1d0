// Package grid holds the dense 2-D phase rasters consumed by the unwrapping
// engine and the wrapped-gradient fields derived from them.
//
// What:
//
//   - Grid wraps a rectangular [][]float64 raster, deep-copied and validated
//     once at construction (non-empty, rectangular, finite values).
//   - Wrap folds any real value into the principal interval (−π, π].
//   - NewGradients computes the row- and column-direction wrapped differences
//     Psi1 ((R−1)×C) and Psi2 (R×(C−1)) of a wrapped phase grid.
//   - Components groups flagged cells of a raster into 4-connected clusters.
//
// Why:
//
//   - Every stage downstream (constraint assembly, cost weights,
//     reconstruction) relies on the shapes fixed here, so shape errors are
//     reported once, before any allocation proportional to the grid.
//
// Complexity:
//
//   - New:          O(R×C) time and memory (deep copy).
//   - NewGradients: O(R×C) time and memory.
//   - Components:   O(R×C) time and memory.
//
// Errors:
//
//   - ErrInvalidGrid: umbrella sentinel matched by every input error below.
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrTooSmall: fewer than two rows or two columns where a gradient is needed.
//   - ErrNaNInf: a NaN or ±Inf value was supplied.
package grid
