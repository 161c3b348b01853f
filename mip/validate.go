package mip

import (
	"fmt"

	"github.com/katalvlaran/birkhoff/matrix"
)

// validateProblem checks shapes and pair consistency; it returns m.
//
// Complexity: O(m² · (1 + len(Constraints))).
func validateProblem(p Problem) (int, error) {
	if err := matrix.ValidateSquare(p.Score); err != nil {
		return 0, fmt.Errorf("score: %w: %w", ErrBadProblem, err)
	}
	m := p.Score.Rows()
	if m == 0 {
		return 0, fmt.Errorf("empty score: %w", ErrBadProblem)
	}

	inRange := func(q Pair) bool { return q.Row >= 0 && q.Row < m && q.Col >= 0 && q.Col < m }
	forbidden := make(map[Pair]bool, len(p.Forbidden))
	for _, q := range p.Forbidden {
		if !inRange(q) {
			return 0, fmt.Errorf("forbidden pair %v out of range: %w", q, ErrBadProblem)
		}
		forbidden[q] = true
	}

	var (
		rowUsed = make([]bool, m)
		colUsed = make([]bool, m)
	)
	for _, q := range p.Required {
		if !inRange(q) {
			return 0, fmt.Errorf("required pair %v out of range: %w", q, ErrBadProblem)
		}
		if forbidden[q] {
			return 0, fmt.Errorf("pair %v both required and forbidden: %w", q, ErrBadProblem)
		}
		if rowUsed[q.Row] || colUsed[q.Col] {
			return 0, fmt.Errorf("required pair %v reuses a row or column: %w", q, ErrBadProblem)
		}
		rowUsed[q.Row], colUsed[q.Col] = true, true
	}

	for i, c := range p.Constraints {
		if c.Weights == nil || c.Weights.Rows() != m || c.Weights.Cols() != m {
			return 0, fmt.Errorf("constraint %d (%s) weights must be %dx%d: %w", i, c.Name, m, m, ErrBadProblem)
		}
	}

	return m, nil
}
