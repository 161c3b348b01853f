// Package mip_test validates the branch-and-bound solver.
// Focus:
//  1. Agreement with the Hungarian optimum when there are no side rows.
//  2. Agreement with exhaustive search under forbidden/required pairs and
//     capacity rows, including infeasible instances.
//  3. Strict sentinels on malformed problems.
//  4. Budget behavior (cancelled context, node limit) without panics.
package mip_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/birkhoff/assignment"
	"github.com/katalvlaran/birkhoff/matrix"
	"github.com/katalvlaran/birkhoff/mip"
)

type SolveSuite struct {
	suite.Suite
	rng *rand.Rand
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}

func (s *SolveSuite) SetupTest() {
	s.rng = rand.New(rand.NewSource(2024))
}

func (s *SolveSuite) randomDense(m int, max int64) *matrix.Dense {
	d, err := matrix.NewDense(m, m)
	require.NoError(s.T(), err)
	for j := 0; j < m; j++ {
		for k := 0; k < m; k++ {
			require.NoError(s.T(), d.Set(j, k, s.rng.Int63n(max)))
		}
	}

	return d
}

// TestNoSideRowsEqualsHungarian covers the integral Birkhoff relaxation, with and
// without the Hungarian incumbent seed.
func (s *SolveSuite) TestNoSideRowsEqualsHungarian() {
	for _, noSeed := range []bool{false, true} {
		for m := 1; m <= 6; m++ {
			for trial := 0; trial < 5; trial++ {
				score := s.randomDense(m, 100)
				opts := mip.DefaultOptions()
				opts.NoSeed = noSeed

				res, err := mip.Solve(context.Background(), mip.Problem{Score: score}, opts)
				require.NoError(s.T(), err)
				require.True(s.T(), res.Optimal)
				require.NoError(s.T(), res.Perm.Validate())

				h, err := assignment.Hungarian(context.Background(), score, assignment.DefaultOptions())
				require.NoError(s.T(), err)
				require.Equal(s.T(), h.Value, res.Value, "m=%d trial=%d noSeed=%v", m, trial, noSeed)
				require.GreaterOrEqual(s.T(), res.RootBound+1e-6, float64(res.Value))
			}
		}
	}
}

// TestPairsMatchBruteForce checks forbidden and required pairs.
func (s *SolveSuite) TestPairsMatchBruteForce() {
	for m := 2; m <= 5; m++ {
		for trial := 0; trial < 8; trial++ {
			score := s.randomDense(m, 50)
			var p mip.Problem
			p.Score = score
			for j := 0; j < m; j++ {
				for k := 0; k < m; k++ {
					if s.rng.Intn(4) == 0 {
						p.Forbidden = append(p.Forbidden, mip.Pair{Row: j, Col: k})
					}
				}
			}
			// Require one pair that is not forbidden, when available.
			for _, cand := range []mip.Pair{{Row: 0, Col: m - 1}, {Row: m - 1, Col: 0}} {
				if !contains(p.Forbidden, cand) {
					p.Required = []mip.Pair{cand}
					break
				}
			}

			want, ok := enumerate(p)
			res, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
			if !ok {
				require.ErrorIs(s.T(), err, mip.ErrInfeasible)
				continue
			}
			require.NoError(s.T(), err)
			require.Equal(s.T(), want, res.Value)
			for _, q := range p.Required {
				require.Equal(s.T(), q.Col, res.Perm[q.Row])
			}
			for _, q := range p.Forbidden {
				require.NotEqual(s.T(), q.Col, res.Perm[q.Row])
			}
		}
	}
}

// TestCapacityRowsMatchBruteForce checks knapsack-like side rows that break
// integrality of the relaxation.
func (s *SolveSuite) TestCapacityRowsMatchBruteForce() {
	for m := 2; m <= 5; m++ {
		for trial := 0; trial < 10; trial++ {
			p := mip.Problem{Score: s.randomDense(m, 100)}
			nc := 1 + s.rng.Intn(2)
			for c := 0; c < nc; c++ {
				w := s.randomDense(m, 10)
				p.Constraints = append(p.Constraints, mip.Constraint{
					Name:    "capacity",
					Weights: w,
					Limit:   int64(m) * (2 + s.rng.Int63n(4)),
				})
			}

			want, ok := enumerate(p)
			res, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
			if !ok {
				require.ErrorIs(s.T(), err, mip.ErrInfeasible, "m=%d trial=%d", m, trial)
				continue
			}
			require.NoError(s.T(), err, "m=%d trial=%d", m, trial)
			require.True(s.T(), res.Optimal)
			require.Equal(s.T(), want, res.Value, "m=%d trial=%d", m, trial)
			require.True(s.T(), feasible(p, res.Perm))
		}
	}
}

func (s *SolveSuite) TestImpossibleCapacity() {
	score := s.randomDense(3, 10)
	ones, _ := matrix.NewDenseFrom([][]int64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	p := mip.Problem{
		Score:       score,
		Constraints: []mip.Constraint{{Name: "too tight", Weights: ones, Limit: 2}},
	}
	_, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
	require.ErrorIs(s.T(), err, mip.ErrInfeasible)
}

func (s *SolveSuite) TestMalformedProblems() {
	score := s.randomDense(3, 10)
	rect, _ := matrix.NewDense(2, 3)
	cases := map[string]mip.Problem{
		"nil score":           {},
		"non-square score":    {Score: rect},
		"forbidden oob":       {Score: score, Forbidden: []mip.Pair{{Row: 3, Col: 0}}},
		"required oob":        {Score: score, Required: []mip.Pair{{Row: 0, Col: -1}}},
		"required+forbidden":  {Score: score, Required: []mip.Pair{{Row: 1, Col: 1}}, Forbidden: []mip.Pair{{Row: 1, Col: 1}}},
		"required row twice":  {Score: score, Required: []mip.Pair{{Row: 0, Col: 1}, {Row: 0, Col: 2}}},
		"required col twice":  {Score: score, Required: []mip.Pair{{Row: 0, Col: 1}, {Row: 2, Col: 1}}},
		"constraint shape":    {Score: score, Constraints: []mip.Constraint{{Weights: rect}}},
		"constraint nil rows": {Score: score, Constraints: []mip.Constraint{{}}},
	}
	for name, p := range cases {
		_, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
		require.ErrorIs(s.T(), err, mip.ErrBadProblem, name)
	}
}

func (s *SolveSuite) TestCancelledContext() {
	score := s.randomDense(5, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := mip.Solve(ctx, mip.Problem{Score: score}, mip.DefaultOptions())
	require.ErrorIs(s.T(), err, mip.ErrTimeLimit)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.False(s.T(), res.Optimal)
	require.NoError(s.T(), res.Perm.Validate(), "the seeded incumbent is still surfaced")
}

func (s *SolveSuite) TestNodeLimit() {
	p := mip.Problem{Score: s.randomDense(5, 100)}
	w := s.randomDense(5, 10)
	cheapest, err := assignment.Hungarian(context.Background(), w, assignment.Options{Sense: assignment.Minimize})
	require.NoError(s.T(), err)
	p.Constraints = []mip.Constraint{{Weights: w, Limit: cheapest.Value + 2}}
	opts := mip.DefaultOptions()
	opts.MaxNodes = 1
	opts.NoSeed = true

	res, err := mip.Solve(context.Background(), p, opts)
	if err != nil {
		require.ErrorIs(s.T(), err, mip.ErrNodeLimit)
		require.False(s.T(), res.Optimal)
	} else {
		require.True(s.T(), res.Optimal)
	}
	require.LessOrEqual(s.T(), res.Nodes, 1)
}

func (s *SolveSuite) TestAllRequired() {
	score := s.randomDense(3, 10)
	p := mip.Problem{
		Score:    score,
		Required: []mip.Pair{{Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 1}},
	}
	res, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{2, 0, 1}, []int(res.Perm))
}

// ---------------------------
// Exhaustive oracle helpers.
// ---------------------------

func contains(ps []mip.Pair, q mip.Pair) bool {
	for _, p := range ps {
		if p == q {
			return true
		}
	}

	return false
}

func feasible(p mip.Problem, perm matrix.Permutation) bool {
	for _, q := range p.Forbidden {
		if perm[q.Row] == q.Col {
			return false
		}
	}
	for _, q := range p.Required {
		if perm[q.Row] != q.Col {
			return false
		}
	}
	for _, c := range p.Constraints {
		var sum int64
		for j, k := range perm {
			w, _ := c.Weights.At(j, k)
			sum += w
		}
		if sum > c.Limit {
			return false
		}
	}

	return true
}

// enumerate returns the best feasible value by recursion over all permutations.
func enumerate(p mip.Problem) (int64, bool) {
	m := p.Score.Rows()
	var (
		perm  = make(matrix.Permutation, m)
		used  = make([]bool, m)
		best  int64
		found bool
		rec   func(j int)
	)
	rec = func(j int) {
		if j == m {
			if !feasible(p, perm) {
				return
			}
			v := assignment.Value(p.Score, perm)
			if !found || v > best {
				best, found = v, true
			}
			return
		}
		for k := 0; k < m; k++ {
			if used[k] {
				continue
			}
			used[k], perm[j] = true, k
			rec(j + 1)
			used[k] = false
		}
	}
	rec(0)

	return best, found
}

// TestResidualLimitsCutRoot checks the side-row lower bound applied before the LP.
func TestResidualLimitsCutRoot(t *testing.T) {
	score, _ := matrix.NewDenseFrom([][]int64{{1, 2, 3}, {3, 1, 2}, {2, 3, 1}})
	ones, _ := matrix.NewDenseFrom([][]int64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	heavy, _ := matrix.NewDenseFrom([][]int64{{5, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	require.False(t, mip.RootReachable(mip.Problem{
		Score:       score,
		Constraints: []mip.Constraint{{Name: "count", Weights: ones, Limit: 2}},
	}))
	require.True(t, mip.RootReachable(mip.Problem{
		Score:       score,
		Constraints: []mip.Constraint{{Name: "count", Weights: ones, Limit: 3}},
	}))

	// The required pair alone spends 5 of a limit of 4.
	p := mip.Problem{
		Score:       score,
		Required:    []mip.Pair{{Row: 0, Col: 0}},
		Constraints: []mip.Constraint{{Name: "heavy", Weights: heavy, Limit: 4}},
	}
	require.False(t, mip.RootReachable(p))
	res, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
	require.ErrorIs(t, err, mip.ErrInfeasible)
	require.Equal(t, 1, res.Nodes)

	// Forbidding the heavy pair leaves only zero weights in row 0.
	p.Required = nil
	p.Forbidden = []mip.Pair{{Row: 0, Col: 0}}
	require.True(t, mip.RootReachable(p))
}
