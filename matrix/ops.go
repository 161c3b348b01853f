// SPDX-License-Identifier: MIT

// Package matrix - reductions and column permutation.
//
// All kernels validate shapes up front and then run on the flat buffer with a
// fixed i-then-j loop order, so results are deterministic across platforms.
package matrix

import "fmt"

// ColSums returns the per-column totals of m (length Cols()).
//
// Complexity: O(r*c).
func ColSums(m *Dense) ([]int64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	var (
		out  = make([]int64, m.c)
		i, j int
	)
	for i = 0; i < m.r; i++ {
		row := m.data[i*m.c : (i+1)*m.c]
		for j = 0; j < m.c; j++ {
			out[j] += row[j]
		}
	}

	return out, nil
}

// RowSums returns the per-row totals of m (length Rows()).
//
// Complexity: O(r*c).
func RowSums(m *Dense) ([]int64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	var (
		out  = make([]int64, m.r)
		i, j int
	)
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out[i] += m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Total returns the sum of all entries.
func Total(m *Dense) (int64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	var s int64
	for _, v := range m.data {
		s += v
	}

	return s, nil
}

// MaxAbs returns the largest absolute entry (0 for an all-zero matrix).
func MaxAbs(m *Dense) (int64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	var best int64
	for _, v := range m.data {
		if v < 0 {
			v = -v
		}
		if v > best {
			best = v
		}
	}

	return best, nil
}

// Add returns a+b elementwise.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, err
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, err
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, err
	}
	out := a.Clone()
	for i := range out.data {
		out.data[i] += b.data[i]
	}

	return out, nil
}

// PermuteColumns returns m*P where P is the permutation matrix of perm
// (P[j,perm[j]] = 1): column j of m lands at column perm[j] of the result.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(perm) != Cols()),
// ErrNotPermutation.
//
// Complexity: O(r*c).
func PermuteColumns(m *Dense, perm Permutation) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if len(perm) != m.c {
		return nil, fmt.Errorf("PermuteColumns: len(perm)=%d, cols=%d: %w", len(perm), m.c, ErrDimensionMismatch)
	}
	if err := perm.Validate(); err != nil {
		return nil, err
	}
	out := &Dense{r: m.r, c: m.c, data: make([]int64, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		src := m.data[i*m.c : (i+1)*m.c]
		dst := out.data[i*m.c : (i+1)*m.c]
		for j = 0; j < m.c; j++ {
			dst[perm[j]] = src[j]
		}
	}

	return out, nil
}
