package assignment

import (
	"errors"

	"github.com/katalvlaran/birkhoff/matrix"
)

// Sentinel errors returned by the assignment solvers.
var (
	// ErrEmpty indicates a nil or zero-sized score matrix.
	ErrEmpty = errors.New("assignment: empty score matrix")

	// ErrNonSquare indicates a non-square score matrix.
	ErrNonSquare = errors.New("assignment: score matrix is not square")

	// ErrBadMask indicates an Allowed mask whose shape differs from the score matrix.
	ErrBadMask = errors.New("assignment: allowed mask shape mismatch")

	// ErrTooLarge indicates m > MaxBruteForce for BruteForce.
	ErrTooLarge = errors.New("assignment: instance too large for brute force")

	// ErrOverflow indicates scores whose penalised span does not fit in int64.
	ErrOverflow = errors.New("assignment: score magnitude overflows int64")

	// ErrInfeasible indicates that no permutation uses only allowed pairs.
	ErrInfeasible = errors.New("assignment: no feasible permutation")

	// ErrTimeLimit indicates that the context expired before optimality was proved.
	ErrTimeLimit = errors.New("assignment: time limit reached")
)

// MaxBruteForce bounds BruteForce to 10! ≈ 3.6M permutations.
const MaxBruteForce = 10

// Sense selects the optimisation direction.
type Sense int

const (
	// Maximize searches for the largest total score.
	Maximize Sense = iota

	// Minimize searches for the smallest total cost.
	Minimize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}

	return "maximize"
}

// Options configures a solve.
//
//   - Sense:   Maximize (default) or Minimize.
//   - Allowed: optional m×m mask; Allowed[j][k]==false forbids pairing j with k.
//     nil allows every pair.
type Options struct {
	Sense   Sense
	Allowed [][]bool
}

// DefaultOptions returns Options{Sense: Maximize, Allowed: nil}.
func DefaultOptions() Options {
	return Options{Sense: Maximize}
}

// Solution is the outcome of a solve.
//
//   - Perm:    Perm[j] is the column assigned to row j.
//   - Value:   sum_j C[j, Perm[j]] on the caller's (unpenalised) scores.
//   - Optimal: false only when the time limit interrupted the search and Perm is
//     a feasible completion of the partial assignment.
type Solution struct {
	Perm    matrix.Permutation
	Value   int64
	Optimal bool
}

// Value returns sum_j C[j, perm[j]]. The caller guarantees shapes agree.
func Value(cost *matrix.Dense, perm matrix.Permutation) int64 {
	var s int64
	for j, k := range perm {
		v, _ := cost.At(j, k)
		s += v
	}

	return s
}
