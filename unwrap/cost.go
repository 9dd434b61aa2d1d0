package unwrap

import (
	"fmt"

	"github.com/katalvlaran/phaseflow/grid"
)

// Default cost weights.
const (
	InteriorWeight = 1.0
	BorderWeight   = 0.5
)

// DefaultWeights returns the weight grids of an rows×cols phase grid: row
// weights shaped like Psi1 ((R−1)×C), column weights shaped like Psi2
// (R×(C−1)). Entries are InteriorWeight except on the first/last row and
// first/last column of each weight grid, where they are BorderWeight.
func DefaultWeights(rows, cols int) (row, col *grid.Grid) {
	return borderWeighted(rows-1, cols), borderWeighted(rows, cols-1)
}

func borderWeighted(rows, cols int) *grid.Grid {
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = InteriorWeight
			if i == 0 || i == rows-1 || j == 0 || j == cols-1 {
				data[i*cols+j] = BorderWeight
			}
		}
	}
	out, _ := grid.FromFlat(rows, cols, data)

	return out
}

// weightGrid converts user weights into a grid: rectangular, finite, ≥ 0.
func weightGrid(name string, values [][]float64) (*grid.Grid, error) {
	g, err := grid.New(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %s weights: %w", ErrInvalidWeights, name, err)
	}
	for k, v := range g.Data() {
		if v < 0 {
			i, j := g.Coordinate(k)
			return nil, fmt.Errorf("%w: %s weight (%d,%d) = %g", ErrInvalidWeights, name, i, j, v)
		}
	}

	return g, nil
}

// CostVector expands the weight grids into one cost per LP column: the
// positive and negative variable of an edge share the edge weight.
//
// Errors:
//   - ErrInvalidWeights when a grid does not match the layout.
func CostVector(l Layout, row, col *grid.Grid) ([]float64, error) {
	if row == nil || col == nil ||
		row.Rows() != l.Rows-1 || row.Cols() != l.Cols ||
		col.Rows() != l.Rows || col.Cols() != l.Cols-1 {
		return nil, fmt.Errorf("%w: weight shapes do not match a %dx%d grid", ErrInvalidWeights, l.Rows, l.Cols)
	}
	c := make([]float64, l.Variables())
	copy(c[0:l.N1], row.Data())
	copy(c[l.N1:2*l.N1], row.Data())
	copy(c[2*l.N1:2*l.N1+l.N2], col.Data())
	copy(c[2*l.N1+l.N2:], col.Data())

	return c, nil
}
