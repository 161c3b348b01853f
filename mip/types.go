package mip

import (
	"errors"

	"github.com/katalvlaran/birkhoff/matrix"
)

// Sentinel errors.
var (
	// ErrBadProblem indicates a malformed problem: nil or non-square scores,
	// out-of-range pairs, contradictory required pairs, or mis-shaped weights.
	ErrBadProblem = errors.New("mip: malformed problem")

	// ErrInfeasible indicates that no permutation satisfies the constraints.
	ErrInfeasible = errors.New("mip: problem is infeasible")

	// ErrTimeLimit indicates that the context expired before optimality was proved.
	ErrTimeLimit = errors.New("mip: time limit reached")

	// ErrNodeLimit indicates that Options.MaxNodes was exhausted.
	ErrNodeLimit = errors.New("mip: node limit reached")
)

// Pair names one cell (Row, Col) of the assignment: reference column Row paired
// with observed column Col.
type Pair struct {
	Row, Col int
}

// Constraint is the side row sum_{j,k} Weights[j,k]·x[j,k] ≤ Limit.
type Constraint struct {
	Name    string
	Weights *matrix.Dense
	Limit   int64
}

// Problem is a maximisation over m×m permutation matrices.
type Problem struct {
	Score       *matrix.Dense // m×m scores, maximised
	Forbidden   []Pair        // x[j,k] = 0
	Required    []Pair        // x[j,k] = 1
	Constraints []Constraint  // ≤ side rows
}

// Defaults.
const (
	// DefaultTol is the simplex reduced-cost tolerance.
	DefaultTol = 1e-10

	// DefaultIntTol is the distance from {0,1} under which an LP value is integral.
	DefaultIntTol = 1e-6
)

// Options configures the search.
//
//   - MaxNodes:   node budget; 0 means unlimited.
//   - Tol:        simplex tolerance (DefaultTol when ≤ 0).
//   - IntTol:     integrality tolerance (DefaultIntTol when ≤ 0).
//   - NoSeed:     skip the Hungarian incumbent (testing/benchmarking).
type Options struct {
	MaxNodes int
	Tol      float64
	IntTol   float64
	NoSeed   bool
}

// DefaultOptions returns an unlimited search with default tolerances.
func DefaultOptions() Options {
	return Options{Tol: DefaultTol, IntTol: DefaultIntTol}
}

// Result is the outcome of Solve.
//
//   - Perm:     Perm[j] is the observed column matched to reference column j.
//   - Value:    sum_j Score[j,Perm[j]], exact.
//   - Optimal:  false when a budget stopped the search early.
//   - Nodes:    number of branch-and-bound nodes processed.
//   - RootBound: LP upper bound at the root (+Inf if the root LP was not solved).
type Result struct {
	Perm      matrix.Permutation
	Value     int64
	Optimal   bool
	Nodes     int
	RootBound float64
}
