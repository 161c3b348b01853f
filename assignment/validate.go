package assignment

import (
	"fmt"

	"github.com/katalvlaran/birkhoff/matrix"
)

// validateInput checks the score matrix and mask, returning m.
//
// Complexity: O(m²) when a mask is present, O(1) otherwise.
func validateInput(cost *matrix.Dense, opts Options) (int, error) {
	if cost == nil {
		return 0, ErrEmpty
	}
	if cost.Rows() != cost.Cols() {
		return 0, fmt.Errorf("%dx%d: %w", cost.Rows(), cost.Cols(), ErrNonSquare)
	}
	m := cost.Rows()
	if m == 0 {
		return 0, ErrEmpty
	}
	if opts.Allowed != nil {
		if len(opts.Allowed) != m {
			return 0, fmt.Errorf("mask has %d rows, want %d: %w", len(opts.Allowed), m, ErrBadMask)
		}
		for j := range opts.Allowed {
			if len(opts.Allowed[j]) != m {
				return 0, fmt.Errorf("mask row %d has %d entries, want %d: %w", j, len(opts.Allowed[j]), m, ErrBadMask)
			}
		}
	}

	return m, nil
}

// allowed reports whether pair (j,k) may be used under mask.
func allowed(mask [][]bool, j, k int) bool {
	return mask == nil || mask[j][k]
}

// respects reports whether perm only uses allowed pairs.
func respects(mask [][]bool, perm matrix.Permutation) bool {
	for j, k := range perm {
		if !allowed(mask, j, k) {
			return false
		}
	}

	return true
}
