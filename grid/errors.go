package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is the umbrella sentinel for malformed raster input.
// Every other sentinel in this package matches it via errors.Is.
var ErrInvalidGrid = errors.New("grid: invalid grid")

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("%w: must have at least one row and one column", ErrInvalidGrid)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrInvalidGrid)
	// ErrTooSmall indicates fewer than two rows or two columns.
	ErrTooSmall = fmt.Errorf("%w: at least 2x2 cells required", ErrInvalidGrid)
	// ErrNaNInf indicates a NaN or ±Inf cell value.
	ErrNaNInf = fmt.Errorf("%w: NaN or Inf value", ErrInvalidGrid)
	// ErrShapeMismatch indicates two grids that must share a shape do not.
	ErrShapeMismatch = fmt.Errorf("%w: shape mismatch", ErrInvalidGrid)
)

// CellError pinpoints the cell that failed validation.
type CellError struct {
	Row, Col int
	Value    float64
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("grid: cell (%d,%d)=%g: %v", e.Row, e.Col, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *CellError) Unwrap() error { return e.Err }
