package colmatch

import (
	"fmt"
	"math"

	"github.com/katalvlaran/birkhoff/matrix"
)

// Verify checks that res describes an m×m permutation: Perm is a bijection on
// [0,m), P has every row sum and every column sum equal to 1 with 0/1 entries,
// and P agrees with Perm. Failures wrap ErrNotPermutation.
func Verify(res *Result, m int) error {
	if res == nil {
		return fmt.Errorf("nil result: %w", ErrNotPermutation)
	}
	if len(res.Perm) != m {
		return fmt.Errorf("length %d, want %d: %w", len(res.Perm), m, ErrNotPermutation)
	}
	if err := res.Perm.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPermutation, err)
	}
	if err := matrix.ValidatePermutationMatrix(res.P); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPermutation, err)
	}
	if res.P.Rows() != m {
		return fmt.Errorf("P is %dx%d, want %dx%d: %w", res.P.Rows(), res.P.Cols(), m, m, ErrNotPermutation)
	}
	fromP, err := matrix.PermutationFromMatrix(res.P)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotPermutation, err)
	}
	if !fromP.Equal(res.Perm) {
		return fmt.Errorf("P disagrees with Perm: %w", ErrNotPermutation)
	}

	return nil
}

// Recovered reports whether res found exactly the planted permutation.
func Recovered(res *Result, planted matrix.Permutation) bool {
	return res != nil && res.Perm.Equal(planted)
}

// ObjectiveOf returns sum_j C[j, perm[j]] with overflow detection. C is the
// m×m cross product Aᵀ·B, so this equals sum_{i,j,k} A[i,j]·P[j,k]·B[i,k].
func ObjectiveOf(c *matrix.Dense, perm matrix.Permutation) (int64, error) {
	if err := matrix.ValidateSquare(c); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(perm) != c.Rows() {
		return 0, fmt.Errorf("permutation length %d, want %d: %w", len(perm), c.Rows(), ErrInvalidInput)
	}
	if err := perm.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotPermutation, err)
	}
	var sum int64
	for j, k := range perm {
		v, _ := c.At(j, k)
		if (v > 0 && sum > math.MaxInt64-v) || (v < 0 && sum < math.MinInt64-v) {
			return 0, fmt.Errorf("objective: %w: %w", ErrInvalidInput, matrix.ErrOverflow)
		}
		sum += v
	}

	return sum, nil
}
