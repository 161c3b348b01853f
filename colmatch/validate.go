package colmatch

import (
	"fmt"

	"github.com/katalvlaran/birkhoff/matrix"
)

// validateInputs enforces: non-nil, at least one row and column, equal shape,
// every entry ≥ 0. All failures wrap ErrInvalidInput.
func validateInputs(a, b *matrix.Dense) error {
	if err := matrix.ValidateNotNil(a); err != nil {
		return fmt.Errorf("A: %w: %w", ErrInvalidInput, err)
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return fmt.Errorf("B: %w: %w", ErrInvalidInput, err)
	}
	if a.Rows() == 0 || a.Cols() == 0 {
		return fmt.Errorf("A is %dx%d: %w", a.Rows(), a.Cols(), ErrInvalidInput)
	}
	if err := matrix.ValidateSameShape(a, b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := matrix.ValidateNonNegative(a); err != nil {
		return fmt.Errorf("A: %w: %w", ErrInvalidInput, err)
	}
	if err := matrix.ValidateNonNegative(b); err != nil {
		return fmt.Errorf("B: %w: %w", ErrInvalidInput, err)
	}

	return nil
}

// validateOptions checks pair ranges, pair consistency and constraint shapes
// against m.
func validateOptions(o Options, m int) error {
	inRange := func(q Pair) bool { return q.Row >= 0 && q.Row < m && q.Col >= 0 && q.Col < m }
	for _, q := range o.Forbidden {
		if !inRange(q) {
			return fmt.Errorf("forbidden pair %v outside [0,%d): %w", q, m, ErrInvalidInput)
		}
	}
	var (
		rowUsed = make(map[int]bool, len(o.Required))
		colUsed = make(map[int]bool, len(o.Required))
	)
	for _, q := range o.Required {
		if !inRange(q) {
			return fmt.Errorf("required pair %v outside [0,%d): %w", q, m, ErrInvalidInput)
		}
		if rowUsed[q.Row] || colUsed[q.Col] {
			return fmt.Errorf("required pair %v reuses a row or column: %w", q, ErrInfeasible)
		}
		rowUsed[q.Row], colUsed[q.Col] = true, true
	}
	for _, q := range o.Forbidden {
		for _, r := range o.Required {
			if q == r {
				return fmt.Errorf("pair %v both required and forbidden: %w", q, ErrInfeasible)
			}
		}
	}
	for i, c := range o.Constraints {
		if c.Weights == nil || c.Weights.Rows() != m || c.Weights.Cols() != m {
			return fmt.Errorf("constraint %d (%s) weights must be %dx%d: %w", i, c.Name, m, m, ErrInvalidInput)
		}
	}

	return nil
}
