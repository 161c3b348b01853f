package colmatch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/katalvlaran/birkhoff/matrix"
	"github.com/katalvlaran/birkhoff/mip"
)

// Sentinel errors returned by MatchColumns and helpers.
var (
	// ErrInvalidInput indicates nil, empty, mis-shaped or negative matrices, or
	// constraint pairs outside [0,m).
	ErrInvalidInput = errors.New("colmatch: invalid input")

	// ErrInfeasible indicates that no permutation satisfies the constraints.
	ErrInfeasible = errors.New("colmatch: infeasible problem")

	// ErrTimeLimit indicates that the time or node budget was exhausted before
	// optimality was proved.
	ErrTimeLimit = errors.New("colmatch: time limit reached")

	// ErrUnsupported indicates a strategy that cannot honour the requested
	// constraints, size or score magnitude.
	ErrUnsupported = errors.New("colmatch: strategy unsupported for this problem")

	// ErrNotPermutation indicates a solver output that is not a permutation.
	ErrNotPermutation = errors.New("colmatch: result is not a permutation")

	// ErrBadTimeLimit indicates a negative time limit.
	ErrBadTimeLimit = errors.New("colmatch: time limit must be non-negative")

	// ErrBadMaxNodes indicates a negative node budget.
	ErrBadMaxNodes = errors.New("colmatch: max nodes must be non-negative")

	// ErrUnknownStrategy indicates a strategy name ParseStrategy does not know.
	ErrUnknownStrategy = errors.New("colmatch: unknown strategy")
)

// Strategy selects the solver behind MatchColumns.
type Strategy int

const (
	// StrategyAuto picks Hungarian, or branch-and-bound when side rows exist.
	StrategyAuto Strategy = iota

	// StrategyHungarian runs the O(m³) shortest augmenting path solver.
	StrategyHungarian

	// StrategyBranchAndBound runs LP-based branch-and-bound.
	StrategyBranchAndBound

	// StrategyBruteForce enumerates all m! permutations (m ≤ 10).
	StrategyBruteForce
)

var strategyNames = map[Strategy]string{
	StrategyAuto:           "auto",
	StrategyHungarian:      "hungarian",
	StrategyBranchAndBound: "bnb",
	StrategyBruteForce:     "brute",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a name ("auto", "hungarian", "bnb", "brute") to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}

	return StrategyAuto, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// Pair names reference column Row matched with observed column Col.
type Pair = mip.Pair

// Constraint is a side row sum_{j,k} Weights[j,k]·P[j,k] ≤ Limit.
type Constraint = mip.Constraint

// Options configures MatchColumns. There is no package-level state; every call
// carries its own Options.
//
// TimeLimit   – overall budget; 0 means none.
// Strategy    – solver selection (default StrategyAuto).
// MaxNodes    – branch-and-bound node budget; 0 means unlimited.
// Forbidden   – pairs that must not be matched.
// Required    – pairs that must be matched.
// Constraints – capacity side rows; force branch-and-bound under StrategyAuto.
// Logger      – structured logger; discards output by default.
type Options struct {
	TimeLimit   time.Duration
	Strategy    Strategy
	MaxNodes    int
	Forbidden   []Pair
	Required    []Pair
	Constraints []Constraint
	Logger      *slog.Logger
}

// Option represents a functional option for configuring MatchColumns.
type Option func(*Options)

// WithTimeLimit bounds the whole call. Must be non-negative; zero disables it.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			panic(ErrBadTimeLimit.Error())
		}
		o.TimeLimit = d
	}
}

// WithStrategy overrides the solver choice.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithMaxNodes caps branch-and-bound nodes. Must be non-negative; zero is unlimited.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadMaxNodes.Error())
		}
		o.MaxNodes = n
	}
}

// WithForbidden forbids matching reference column j with observed column k.
func WithForbidden(j, k int) Option {
	return func(o *Options) {
		o.Forbidden = append(o.Forbidden, Pair{Row: j, Col: k})
	}
}

// WithRequired forces reference column j to match observed column k.
func WithRequired(j, k int) Option {
	return func(o *Options) {
		o.Required = append(o.Required, Pair{Row: j, Col: k})
	}
}

// WithConstraint adds the side row sum W[j,k]·P[j,k] ≤ limit.
func WithConstraint(name string, w *matrix.Dense, limit int64) Option {
	return func(o *Options) {
		o.Constraints = append(o.Constraints, Constraint{Name: name, Weights: w, Limit: limit})
	}
}

// WithLogger injects a structured logger. A nil logger restores the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = discardLogger()
		}
		o.Logger = l
	}
}

// DefaultOptions returns the defaults: no time limit, StrategyAuto, unlimited
// nodes, no constraints, and a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		Strategy: StrategyAuto,
		Logger:   discardLogger(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Result is the outcome of MatchColumns.
//
//   - Perm:      Perm[j] = k means column j of A matches column k of B.
//   - P:         the m×m 0/1 matrix form of Perm.
//   - Objective: sum_{i,j,k} A[i,j]·P[j,k]·B[i,k], recomputed from Aᵀ·B.
//   - Optimal:   false when a budget stopped the solver early.
//   - Strategy:  the solver actually used (never StrategyAuto).
//   - Elapsed:   wall time of the call.
//   - Nodes:     branch-and-bound nodes processed (0 for other strategies).
type Result struct {
	Perm      matrix.Permutation
	P         *matrix.Dense
	Objective int64
	Optimal   bool
	Strategy  Strategy
	Elapsed   time.Duration
	Nodes     int
}
