// SPDX-License-Identifier: MIT

// Package matrix - cross product C = A^T*B.
//
// C[j,k] = sum_i A[i,j]*B[i,k] is the alignment score of reference column j against
// observed column k. Two kernels compute it:
//
//   - gonum path: both operands are widened to float64 and multiplied with
//     mat.Dense.Mul (BLAS). Every partial sum is an integer bounded by
//     n*max|A|*max|B|; while that bound stays below 2^53 float64 represents every
//     intermediate exactly, so the rounded result equals the integer product.
//   - int64 path: a straightforward i-j-k accumulation with overflow detection, used
//     when the exactness bound does not hold.
package matrix

import (
	"fmt"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/mat"
)

// exactFloatLimit is 2^53, the bound below which float64 represents all integers.
const exactFloatLimit = 1 << 53

// CrossProduct returns the c×c matrix A^T*B for two r×c operands.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (row counts differ), ErrOverflow.
//
// Complexity: O(r*ca*cb).
func CrossProduct(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, err
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, err
	}
	if a.r != b.r {
		return nil, fmt.Errorf("CrossProduct: rows %d vs %d: %w", a.r, b.r, ErrDimensionMismatch)
	}

	if floatExact(a, b) {
		return crossFloat(a, b), nil
	}

	return crossInt(a, b)
}

// floatExact reports whether n*max|A|*max|B| < 2^53.
func floatExact(a, b *Dense) bool {
	ma, _ := MaxAbs(a)
	mb, _ := MaxAbs(b)
	if ma == 0 || mb == 0 {
		return true
	}
	hi, lo := bits.Mul64(uint64(ma), uint64(mb))
	if hi != 0 {
		return false
	}
	hi, lo = bits.Mul64(lo, uint64(a.r))

	return hi == 0 && lo < exactFloatLimit
}

// toGonum widens a Dense into a freshly allocated *mat.Dense.
func toGonum(m *Dense) *mat.Dense {
	buf := make([]float64, len(m.data))
	for i, v := range m.data {
		buf[i] = float64(v)
	}

	return mat.NewDense(m.r, m.c, buf)
}

func crossFloat(a, b *Dense) *Dense {
	var c mat.Dense
	c.Mul(toGonum(a).T(), toGonum(b))

	out := &Dense{r: a.c, c: b.c, data: make([]int64, a.c*b.c)}
	var j, k int
	for j = 0; j < a.c; j++ {
		for k = 0; k < b.c; k++ {
			out.data[j*b.c+k] = int64(math.Round(c.At(j, k)))
		}
	}

	return out
}

func crossInt(a, b *Dense) (*Dense, error) {
	out := &Dense{r: a.c, c: b.c, data: make([]int64, a.c*b.c)}
	var (
		i, j, k int
		av      int64
		ok      bool
	)
	for i = 0; i < a.r; i++ {
		arow := a.data[i*a.c : (i+1)*a.c]
		brow := b.data[i*b.c : (i+1)*b.c]
		for j = 0; j < a.c; j++ {
			av = arow[j]
			if av == 0 {
				continue
			}
			crow := out.data[j*b.c : (j+1)*b.c]
			for k = 0; k < b.c; k++ {
				if crow[k], ok = mulAdd(crow[k], av, brow[k]); !ok {
					return nil, fmt.Errorf("CrossProduct: C[%d,%d]: %w", j, k, ErrOverflow)
				}
			}
		}
	}

	return out, nil
}

// mulAdd returns acc + x*y and false when the int64 result overflows.
func mulAdd(acc, x, y int64) (int64, bool) {
	if x != 0 && y != 0 {
		p := x * y
		if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, false
		}
		s := acc + p
		if (p > 0 && s < acc) || (p < 0 && s > acc) {
			return 0, false
		}

		return s, true
	}

	return acc, true
}
