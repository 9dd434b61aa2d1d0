// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Triplet is one (row, col, value) entry of a coordinate-list matrix.
type Triplet struct {
	Row, Col int
	Val      float64
}

// COO is an append-only coordinate-list builder. Duplicate coordinates are
// summed when frozen with ToCSR.
type COO struct {
	r, c    int
	entries []Triplet
}

// NewCOO creates an empty rows×cols builder.
//
// Errors:
//   - ErrBadShape when rows<=0 or cols<=0.
func NewCOO(rows, cols int) (*COO, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &COO{r: rows, c: cols}, nil
}

// Dims returns the declared shape.
func (m *COO) Dims() (rows, cols int) { return m.r, m.c }

// Len returns the number of appended triplets (duplicates included).
func (m *COO) Len() int { return len(m.entries) }

// Grow reserves room for n more triplets.
func (m *COO) Grow(n int) {
	if n <= 0 {
		return
	}
	if cap(m.entries)-len(m.entries) < n {
		next := make([]Triplet, len(m.entries), len(m.entries)+n)
		copy(next, m.entries)
		m.entries = next
	}
}

// Append records v at (i, j).
//
// Errors:
//   - ErrOutOfRange for coordinates outside the shape.
//   - ErrNaNInf for non-finite values.
func (m *COO) Append(i, j int, v float64) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return fmt.Errorf("COO.Append(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("COO.Append(%d,%d): %w", i, j, ErrNaNInf)
	}
	m.entries = append(m.entries, Triplet{Row: i, Col: j, Val: v})

	return nil
}

// AppendTriplets validates and records a batch of entries in order.
func (m *COO) AppendTriplets(ts []Triplet) error {
	m.Grow(len(ts))
	for _, t := range ts {
		if err := m.Append(t.Row, t.Col, t.Val); err != nil {
			return err
		}
	}

	return nil
}

// ToCSR freezes the builder into compressed sparse rows.
//
// Implementation:
//   - Stage 1: stable-sort a copy of the triplets by (row, col).
//   - Stage 2: sum duplicates, drop exact zeros.
//   - Stage 3: prefix-count row lengths into indptr.
//
// The result depends only on the multiset of triplets and the order of
// duplicates, never on insertion interleaving across rows.
// Complexity: O(nnz·log nnz) time, O(nnz + rows) memory.
func (m *COO) ToCSR() *CSR {
	ts := make([]Triplet, len(m.entries))
	copy(ts, m.entries)
	sort.SliceStable(ts, func(a, b int) bool {
		if ts[a].Row != ts[b].Row {
			return ts[a].Row < ts[b].Row
		}
		return ts[a].Col < ts[b].Col
	})

	indptr := make([]int, m.r+1)
	indices := make([]int, 0, len(ts))
	data := make([]float64, 0, len(ts))
	for k := 0; k < len(ts); {
		row, col := ts[k].Row, ts[k].Col
		sum := 0.0
		for k < len(ts) && ts[k].Row == row && ts[k].Col == col {
			sum += ts[k].Val
			k++
		}
		if sum == 0 {
			continue
		}
		indices = append(indices, col)
		data = append(data, sum)
		indptr[row+1]++
	}
	for i := 0; i < m.r; i++ {
		indptr[i+1] += indptr[i]
	}

	return &CSR{r: m.r, c: m.c, indptr: indptr, indices: indices, data: data}
}
