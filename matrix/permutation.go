// SPDX-License-Identifier: MIT

// Package matrix - permutations in index and matrix form.
//
// A Permutation p of size m encodes the m×m permutation matrix P with
// P[j,p[j]] = 1 and zeros elsewhere: reference column j corresponds to observed
// column p[j]. The index form is what solvers produce; the matrix form is what
// callers validate and print.
package matrix

import "fmt"

// Permutation maps reference column j to observed column p[j].
type Permutation []int

// Identity returns the identity permutation of size m (m >= 0).
func Identity(m int) Permutation {
	p := make(Permutation, m)
	for i := range p {
		p[i] = i
	}

	return p
}

// Validate checks that p is a bijection on [0, len(p)).
//
// Complexity: O(m) time, O(m) space.
func (p Permutation) Validate() error {
	seen := make([]bool, len(p))
	for j, k := range p {
		if k < 0 || k >= len(p) {
			return fmt.Errorf("Permutation[%d]=%d out of [0,%d): %w", j, k, len(p), ErrNotPermutation)
		}
		if seen[k] {
			return fmt.Errorf("Permutation: target %d used twice: %w", k, ErrNotPermutation)
		}
		seen[k] = true
	}

	return nil
}

// Inverse returns q with q[p[j]] = j. p must be valid.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for j, k := range p {
		q[k] = j
	}

	return q
}

// Equal reports whether p and q map every index identically.
func (p Permutation) Equal(q Permutation) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (p Permutation) Clone() Permutation {
	return append(Permutation(nil), p...)
}

// ToMatrix returns the m×m 0/1 matrix form of p.
//
// Errors: ErrInvalidDimensions for an empty p, ErrNotPermutation.
func (p Permutation) ToMatrix() (*Dense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out, err := NewDense(len(p), len(p))
	if err != nil {
		return nil, err
	}
	for j, k := range p {
		out.data[j*out.c+k] = 1
	}

	return out, nil
}

// PermutationFromMatrix converts a permutation matrix into index form.
// The matrix must pass ValidatePermutationMatrix.
func PermutationFromMatrix(pm *Dense) (Permutation, error) {
	if err := ValidatePermutationMatrix(pm); err != nil {
		return nil, err
	}
	p := make(Permutation, pm.r)
	var j, k int
	for j = 0; j < pm.r; j++ {
		for k = 0; k < pm.c; k++ {
			if pm.at(j, k) == 1 {
				p[j] = k
				break
			}
		}
	}

	return p, nil
}
