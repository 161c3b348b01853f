// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Single source of truth for shape, sign and permutation checks.
//   - Return sentinel errors wrapped with a validator tag so call sites can match
//     them via errors.Is and still read where the check failed.
package matrix

import "fmt"

// validatorErrorf tags a sentinel with the validator that raised it.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and Rows == Cols.
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateNonNegative reports the first negative entry in row-major order.
//
// Complexity: O(r*c).
func ValidateNonNegative(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	for idx, v := range m.data {
		if v < 0 {
			return validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", idx/m.c, idx%m.c), ErrNegative)
		}
	}

	return nil
}

// ValidatePermutationMatrix checks the full permutation invariant on pm:
// square, every entry 0 or 1, every row sum exactly 1, every column sum exactly 1
// (hence total == m). Each row and column is checked individually; a reduction such
// as "all sums are non-zero" is not sufficient.
//
// Complexity: O(m^2).
func ValidatePermutationMatrix(pm *Dense) error {
	if err := ValidateSquare(pm); err != nil {
		return err
	}
	var (
		m       = pm.r
		rowSum  = make([]int64, m)
		colSum  = make([]int64, m)
		i, j    int
		v       int64
		ones    int
		tagCell = "ValidatePermutationMatrix: entry"
	)
	for i = 0; i < m; i++ {
		for j = 0; j < m; j++ {
			v = pm.at(i, j)
			if v != 0 && v != 1 {
				return validatorErrorf(fmt.Sprintf("%s (%d,%d)=%d", tagCell, i, j, v), ErrNotPermutation)
			}
			rowSum[i] += v
			colSum[j] += v
			if v == 1 {
				ones++
			}
		}
	}
	for i = 0; i < m; i++ {
		if rowSum[i] != 1 {
			return validatorErrorf(fmt.Sprintf("ValidatePermutationMatrix: row %d sums to %d", i, rowSum[i]), ErrNotPermutation)
		}
		if colSum[i] != 1 {
			return validatorErrorf(fmt.Sprintf("ValidatePermutationMatrix: column %d sums to %d", i, colSum[i]), ErrNotPermutation)
		}
	}
	if ones != m {
		return validatorErrorf("ValidatePermutationMatrix: total", ErrNotPermutation)
	}

	return nil
}
