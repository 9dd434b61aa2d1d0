// SPDX-License-Identifier: MIT

// Package sparse provides the compressed storage used for the unwrapping
// constraint system.
//
// What & Why:
//
//	Constraint matrices of the Costantini formulation have (R−1)(C−1) rows and
//	2·[R(C−1)+(R−1)C] columns but only eight non-zeros per row. A dense layout
//	grows with (R·C)² and exhausts memory on moderate scenes, so matrices are
//	assembled as coordinate triplets (COO) and frozen into compressed sparse
//	rows (CSR).
//
//	*CSR satisfies gonum's mat.Matrix, so it can be handed directly to gonum
//	routines (optimize/convex/lp.Simplex, mat.DenseCopyOf in tests).
//
// Complexity:
//
//	COO.Append: amortized O(1).  COO.ToCSR: O(nnz·log nnz) (stable sort).
//	CSR.At: O(log nnz_row).  CSR.MulVec: O(nnz).  CSR.Transpose: O(nnz + cols).
package sparse
