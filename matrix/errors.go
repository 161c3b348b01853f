// SPDX-License-Identifier: MIT

// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: " for grep-ability. Call sites attach
// context with fmt.Errorf("...: %w", ErrX); callers match with errors.Is.
package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil *Dense was passed where a matrix is required.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrRagged indicates that a [][]int64 literal has rows of different lengths.
	ErrRagged = errors.New("matrix: ragged rows")

	// ErrNegative indicates a negative entry where non-negative counts are required.
	ErrNegative = errors.New("matrix: negative entry")

	// ErrNotPermutation indicates that a matrix or index slice is not a permutation.
	ErrNotPermutation = errors.New("matrix: not a permutation")

	// ErrOverflow indicates that an exact int64 reduction would overflow.
	ErrOverflow = errors.New("matrix: int64 overflow")
)
