package grid

import (
	"fmt"
	"math"
	"strings"
)

// Grid is an immutable, row-major R×C raster of float64 values.
// Rows and Cols are fixed at construction; data has length Rows*Cols.
type Grid struct {
	rows, cols int
	data       []float64
}

// New validates values and returns a deep copy wrapped in a Grid.
//
// Validation order (first failure wins):
//  1. at least one row and one column (ErrEmptyGrid);
//  2. every row as long as the first (ErrNonRectangular);
//  3. every value finite (ErrNaNInf, wrapped in *CellError).
//
// Complexity: O(R×C) time and memory.
func New(values [][]float64) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}

	data := make([]float64, rows*cols)
	for i, row := range values {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &CellError{Row: i, Col: j, Value: v, Err: ErrNaNInf}
			}
		}
		// Deep copy to prevent external mutation
		copy(data[i*cols:(i+1)*cols], row)
	}

	return &Grid{rows: rows, cols: cols, data: data}, nil
}

// NewAtLeast2x2 is New followed by the minimum-shape check required by any
// gradient computation.
func NewAtLeast2x2(values [][]float64) (*Grid, error) {
	g, err := New(values)
	if err != nil {
		return nil, err
	}
	if g.rows < 2 || g.cols < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrTooSmall, g.rows, g.cols)
	}

	return g, nil
}

// Filled returns an r×c grid with every cell set to v.
// It panics on non-positive dimensions (programmer error).
func Filled(rows, cols int, v float64) *Grid {
	if rows <= 0 || cols <= 0 {
		panic("grid: Filled: dimensions must be > 0")
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}

	return &Grid{rows: rows, cols: cols, data: data}
}

// fromData adopts a row-major buffer without copying. Internal only.
func fromData(rows, cols int, data []float64) *Grid {
	return &Grid{rows: rows, cols: cols, data: data}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns Rows*Cols.
func (g *Grid) Len() int { return len(g.data) }

// At returns the value at (i, j). It panics on out-of-range indices, like
// slice indexing; callers iterate within Rows/Cols.
func (g *Grid) At(i, j int) float64 {
	return g.data[g.Index(i, j)]
}

// Index maps (i, j) to the row-major offset i*Cols + j.
// Complexity: O(1).
func (g *Grid) Index(i, j int) int {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", i, j, g.rows, g.cols))
	}

	return i*g.cols + j
}

// Coordinate converts a row-major offset back to (i, j).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (i, j int) {
	return idx / g.cols, idx % g.cols
}

// InBounds reports whether (i, j) lies within the grid.
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.rows && j >= 0 && j < g.cols
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []float64 {
	out := make([]float64, g.cols)
	copy(out, g.data[i*g.cols:(i+1)*g.cols])

	return out
}

// Data returns a copy of the flat row-major buffer.
func (g *Grid) Data() []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)

	return out
}

// Slices returns a deep copy as [][]float64.
func (g *Grid) Slices() [][]float64 {
	out := make([][]float64, g.rows)
	for i := range out {
		out[i] = g.Row(i)
	}

	return out
}

// SameShape reports whether g and o have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.rows == o.rows && g.cols == o.cols
}

// Map returns a new grid with fn applied to every cell.
func (g *Grid) Map(fn func(v float64) float64) *Grid {
	out := make([]float64, len(g.data))
	for k, v := range g.data {
		out[k] = fn(v)
	}

	return fromData(g.rows, g.cols, out)
}

// String renders the grid one row per line, e.g. "[1, 2]\n[3, 4]\n".
func (g *Grid) String() string {
	var sb strings.Builder
	for i := 0; i < g.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < g.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", g.data[i*g.cols+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// FromFlat copies a row-major buffer of length rows*cols into a new Grid.
// It applies the same finite-value policy as New.
func FromFlat(rows, cols int, data []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: buffer length %d, want %d", ErrNonRectangular, len(data), rows*cols)
	}
	buf := make([]float64, len(data))
	for k, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &CellError{Row: k / cols, Col: k % cols, Value: v, Err: ErrNaNInf}
		}
		buf[k] = v
	}

	return fromData(rows, cols, buf), nil
}
