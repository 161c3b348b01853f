package colmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/birkhoff/assignment"
	"github.com/katalvlaran/birkhoff/matrix"
	"github.com/katalvlaran/birkhoff/mip"
)

// MatchColumns recovers the column permutation that best maps a onto b.
//
// On ErrTimeLimit the returned *Result is non-nil when a feasible permutation
// was found before the budget ran out; it has Optimal=false. On every other
// error the Result is nil. Inputs are never modified.
func MatchColumns(ctx context.Context, a, b *matrix.Dense, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	// Stage 1: validate
	if err := validateInputs(a, b); err != nil {
		return nil, err
	}
	m := a.Cols()
	if err := validateOptions(o, m); err != nil {
		return nil, err
	}
	strategy, err := resolveStrategy(o, m)
	if err != nil {
		return nil, err
	}

	if o.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.TimeLimit)
		defer cancel()
	}

	// Stage 2: C = Aᵀ·B
	c, err := matrix.CrossProduct(a, b)
	if err != nil {
		if errors.Is(err, matrix.ErrOverflow) {
			return nil, fmt.Errorf("cross product: %w: %w", ErrUnsupported, err)
		}
		return nil, fmt.Errorf("cross product: %w: %w", ErrInvalidInput, err)
	}
	o.Logger.Debug("cross product ready",
		"rows", a.Rows(), "cols", m, "elapsed", time.Since(start))

	// Stage 3: dispatch
	out, solveErr := solve(ctx, c, o, strategy)
	if out.perm == nil {
		if solveErr == nil {
			solveErr = fmt.Errorf("%v returned no permutation: %w", strategy, ErrNotPermutation)
		}
		return nil, solveErr
	}

	// Stage 4: verify and score
	res, err := finish(c, out, o)
	if err != nil {
		return nil, err
	}
	res.Strategy = strategy
	res.Elapsed = time.Since(start)

	if solveErr != nil {
		o.Logger.Warn("budget exhausted, returning best feasible permutation",
			"strategy", strategy.String(), "objective", res.Objective,
			"nodes", res.Nodes, "elapsed", res.Elapsed, "err", solveErr)
		return res, solveErr
	}
	o.Logger.Info("columns matched",
		"strategy", strategy.String(), "objective", res.Objective,
		"optimal", res.Optimal, "nodes", res.Nodes, "elapsed", res.Elapsed)

	return res, nil
}

// outcome is the solver-independent raw answer.
type outcome struct {
	perm    matrix.Permutation
	optimal bool
	nodes   int
}

// solve runs the chosen solver and maps its errors onto colmatch sentinels.
// A non-nil perm together with an error means "feasible but not certified".
func solve(ctx context.Context, c *matrix.Dense, o Options, s Strategy) (outcome, error) {
	switch s {
	case StrategyBranchAndBound:
		p := mip.Problem{
			Score:       c,
			Forbidden:   o.Forbidden,
			Required:    o.Required,
			Constraints: o.Constraints,
		}
		opts := mip.DefaultOptions()
		opts.MaxNodes = o.MaxNodes
		res, err := mip.Solve(ctx, p, opts)
		out := outcome{perm: res.Perm, optimal: res.Optimal, nodes: res.Nodes}
		switch {
		case err == nil:
			return out, nil
		case errors.Is(err, mip.ErrTimeLimit), errors.Is(err, mip.ErrNodeLimit):
			return out, fmt.Errorf("%w: %w", ErrTimeLimit, err)
		case errors.Is(err, mip.ErrInfeasible):
			return outcome{}, fmt.Errorf("%w: %w", ErrInfeasible, err)
		default:
			return outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

	case StrategyBruteForce:
		sol, err := assignment.BruteForce(c, assignment.Options{Allowed: pairMask(o, c.Rows())})
		if err != nil {
			return outcome{}, mapAssignmentErr(err)
		}
		return outcome{perm: sol.Perm, optimal: true}, nil

	default:
		sol, err := assignment.Hungarian(ctx, c, assignment.Options{Allowed: pairMask(o, c.Rows())})
		out := outcome{perm: sol.Perm, optimal: sol.Optimal}
		if err != nil {
			if errors.Is(err, assignment.ErrTimeLimit) && sol.Perm != nil {
				return out, fmt.Errorf("%w: %w", ErrTimeLimit, err)
			}
			return outcome{}, mapAssignmentErr(err)
		}
		return out, nil
	}
}

func mapAssignmentErr(err error) error {
	switch {
	case errors.Is(err, assignment.ErrInfeasible):
		return fmt.Errorf("%w: %w", ErrInfeasible, err)
	case errors.Is(err, assignment.ErrTimeLimit):
		return fmt.Errorf("%w: %w", ErrTimeLimit, err)
	case errors.Is(err, assignment.ErrTooLarge), errors.Is(err, assignment.ErrOverflow):
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}

// resolveStrategy turns StrategyAuto into a concrete solver and rejects
// combinations a solver cannot honour.
func resolveStrategy(o Options, m int) (Strategy, error) {
	s := o.Strategy
	if s == StrategyAuto {
		if len(o.Constraints) > 0 {
			return StrategyBranchAndBound, nil
		}
		return StrategyHungarian, nil
	}
	if _, ok := strategyNames[s]; !ok {
		return s, fmt.Errorf("%v: %w", s, ErrUnknownStrategy)
	}
	if len(o.Constraints) > 0 && s != StrategyBranchAndBound {
		return s, fmt.Errorf("%v with %d side constraints: %w", s, len(o.Constraints), ErrUnsupported)
	}
	if s == StrategyBruteForce && m > assignment.MaxBruteForce {
		return s, fmt.Errorf("%v with m=%d > %d: %w", s, m, assignment.MaxBruteForce, ErrUnsupported)
	}

	return s, nil
}

// pairMask turns forbidden/required pairs into an allowed mask, or nil when no
// pair constraint exists.
func pairMask(o Options, m int) [][]bool {
	if len(o.Forbidden) == 0 && len(o.Required) == 0 {
		return nil
	}
	mask := make([][]bool, m)
	for j := range mask {
		mask[j] = make([]bool, m)
		for k := range mask[j] {
			mask[j][k] = true
		}
	}
	for _, q := range o.Forbidden {
		mask[q.Row][q.Col] = false
	}
	for _, q := range o.Required {
		for k := 0; k < m; k++ {
			if k != q.Col {
				mask[q.Row][k] = false
			}
		}
		for j := 0; j < m; j++ {
			if j != q.Row {
				mask[j][q.Col] = false
			}
		}
	}

	return mask
}

// finish rebuilds P, checks the permutation invariant and recomputes the
// objective from C.
func finish(c *matrix.Dense, out outcome, o Options) (*Result, error) {
	m := c.Rows()
	if len(out.perm) != m {
		return nil, fmt.Errorf("length %d, want %d: %w", len(out.perm), m, ErrNotPermutation)
	}
	p, err := out.perm.ToMatrix()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPermutation, err)
	}
	if err = matrix.ValidatePermutationMatrix(p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPermutation, err)
	}
	for _, q := range o.Forbidden {
		if out.perm[q.Row] == q.Col {
			return nil, fmt.Errorf("forbidden pair %v used: %w", q, ErrNotPermutation)
		}
	}
	for _, q := range o.Required {
		if out.perm[q.Row] != q.Col {
			return nil, fmt.Errorf("required pair %v missing: %w", q, ErrNotPermutation)
		}
	}
	obj, err := ObjectiveOf(c, out.perm)
	if err != nil {
		return nil, err
	}

	return &Result{
		Perm:      out.perm.Clone(),
		P:         p,
		Objective: obj,
		Optimal:   out.optimal,
		Nodes:     out.nodes,
	}, nil
}
