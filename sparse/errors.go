// SPDX-License-Identifier: MIT

package sparse

import "errors"

// Sentinel errors. Every message is prefixed with "sparse: ".
var (
	// ErrBadShape is returned when requested dimensions are negative or zero.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a (row, col) outside the matrix bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates an operand of the wrong length.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf entry.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")
)
