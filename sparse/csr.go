// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CSR is an immutable compressed-sparse-row matrix.
//   - indptr has length rows+1; row i occupies indices[indptr[i]:indptr[i+1]].
//   - column indices are strictly increasing within a row.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []float64
}

// Compile-time assertion: *CSR is usable wherever gonum expects a mat.Matrix.
var _ mat.Matrix = (*CSR)(nil)

// Dims returns (rows, cols).
func (m *CSR) Dims() (rows, cols int) { return m.r, m.c }

// At returns the entry at (i, j), zero when not stored.
// It panics on out-of-range indices, matching gonum's mat.Matrix contract.
// Complexity: O(log nnz_row).
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic(fmt.Sprintf("sparse: At(%d,%d) outside %dx%d", i, j, m.r, m.c))
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	row := m.indices[lo:hi]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return m.data[lo+k]
	}

	return 0
}

// T returns the implicit transpose, as gonum's mat.Matrix requires.
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ returns the number of stored non-zeros.
func (m *CSR) NNZ() int { return len(m.data) }

// RowNNZ returns the number of stored non-zeros in row i.
func (m *CSR) RowNNZ(i int) int { return m.indptr[i+1] - m.indptr[i] }

// DoRowNonZero calls fn for every stored entry of row i, in column order.
func (m *CSR) DoRowNonZero(i int, fn func(i, j int, v float64)) {
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		fn(i, m.indices[k], m.data[k])
	}
}

// DoNonZero calls fn for every stored entry, row by row.
func (m *CSR) DoNonZero(fn func(i, j int, v float64)) {
	for i := 0; i < m.r; i++ {
		m.DoRowNonZero(i, fn)
	}
}

// MulVec returns m·x.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != cols.
//
// Complexity: O(nnz).
func (m *CSR) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.c {
		return nil, fmt.Errorf("CSR.MulVec: len(x)=%d, cols=%d: %w", len(x), m.c, ErrDimensionMismatch)
	}
	y := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		var s float64
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			s += m.data[k] * x[m.indices[k]]
		}
		y[i] = s
	}

	return y, nil
}

// Transpose materializes mᵀ as a new CSR, i.e. m in compressed-column form.
// Rows of the result are the columns of m, so column scans become row scans.
// Complexity: O(nnz + cols).
func (m *CSR) Transpose() *CSR {
	indptr := make([]int, m.c+1)
	for _, j := range m.indices {
		indptr[j+1]++
	}
	for j := 0; j < m.c; j++ {
		indptr[j+1] += indptr[j]
	}
	next := make([]int, m.c)
	copy(next, indptr[:m.c])
	indices := make([]int, len(m.indices))
	data := make([]float64, len(m.data))
	// Rows are visited in increasing order, so each output row stays sorted.
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			j := m.indices[k]
			dst := next[j]
			indices[dst] = i
			data[dst] = m.data[k]
			next[j]++
		}
	}

	return &CSR{r: m.c, c: m.r, indptr: indptr, indices: indices, data: data}
}

// Equal reports whether two matrices have identical shape and storage.
func (m *CSR) Equal(o *CSR) bool {
	if m.r != o.r || m.c != o.c || len(m.data) != len(o.data) {
		return false
	}
	for i := range m.indptr {
		if m.indptr[i] != o.indptr[i] {
			return false
		}
	}
	for k := range m.data {
		if m.indices[k] != o.indices[k] || m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}
