package assignment

import (
	"fmt"

	"github.com/katalvlaran/birkhoff/matrix"
)

// BruteForce enumerates every permutation with Heap's algorithm and keeps the
// first best one (ties resolve to the earliest permutation visited).
//
// Errors: validation sentinels, ErrTooLarge for m > MaxBruteForce, ErrInfeasible
// when the mask excludes every permutation.
//
// Complexity: O(m·m!) time, O(m) memory.
func BruteForce(cost *matrix.Dense, opts Options) (Solution, error) {
	m, err := validateInput(cost, opts)
	if err != nil {
		return Solution{}, err
	}
	if m > MaxBruteForce {
		return Solution{}, fmt.Errorf("m=%d > %d: %w", m, MaxBruteForce, ErrTooLarge)
	}

	var (
		perm  = matrix.Identity(m)
		c     = make([]int, m) // Heap's per-level counters
		best  matrix.Permutation
		bestV int64
		i     int
	)
	best, bestV = consider(cost, perm, opts, best, bestV)
	for i = 1; i < m; {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			best, bestV = consider(cost, perm, opts, best, bestV)
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	if best == nil {
		return Solution{}, ErrInfeasible
	}

	return Solution{Perm: best, Value: bestV, Optimal: true}, nil
}

// consider returns the new incumbent after evaluating perm.
func consider(cost *matrix.Dense, perm matrix.Permutation, opts Options, best matrix.Permutation, bestV int64) (matrix.Permutation, int64) {
	if !respects(opts.Allowed, perm) {
		return best, bestV
	}
	v := Value(cost, perm)
	if best == nil || better(v, bestV, opts.Sense) {
		return perm.Clone(), v
	}

	return best, bestV
}
