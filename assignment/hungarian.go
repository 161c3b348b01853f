package assignment

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/birkhoff/matrix"
)

// potentialInf stands in for +∞ in reduced costs; a quarter of MaxInt64 leaves
// headroom for the potential updates that add and subtract it.
const potentialInf = math.MaxInt64 / 4

// Hungarian solves the assignment problem on cost exactly.
//
// Implementation:
//   - Stage 1: validate shape and mask; prove feasibility with PerfectMatching
//     when a mask is present.
//   - Stage 2: build the minimisation working matrix (negated scores for
//     Maximize, forbidden pairs priced at a penalty above any feasible span).
//   - Stage 3: for each row, grow a shortest augmenting path over reduced costs
//     w[i,j]-u[i]-v[j], updating potentials so reduced costs stay ≥ 0, then flip
//     the path. Indices are 1-based internally with column 0 as the virtual root.
//   - Stage 4: read the permutation and evaluate it on the caller's scores.
//
// Cancellation: ctx is checked once per row. If it is done, the rows already
// matched are kept, the rest are completed greedily on allowed pairs, and the
// feasible (uncertified) Solution is returned together with ErrTimeLimit.
//
// Complexity: O(m³) time, O(m²) memory for the working copy.
func Hungarian(ctx context.Context, cost *matrix.Dense, opts Options) (Solution, error) {
	m, err := validateInput(cost, opts)
	if err != nil {
		return Solution{}, err
	}
	if opts.Allowed != nil {
		if _, ok := PerfectMatching(opts.Allowed); !ok {
			return Solution{}, ErrInfeasible
		}
	}
	w, err := workMatrix(cost, m, opts)
	if err != nil {
		return Solution{}, err
	}

	var (
		u    = make([]int64, m+1) // row potentials
		v    = make([]int64, m+1) // column potentials
		p    = make([]int, m+1)   // p[j] = row matched to column j (0 = free)
		way  = make([]int, m+1)   // way[j] = previous column on the augmenting path
		minv = make([]int64, m+1)
		used = make([]bool, m+1)

		i, j, j0, j1, i0 int
		delta, cur       int64
	)
	for i = 1; i <= m; i++ {
		if cerr := ctx.Err(); cerr != nil {
			perm := completePartial(cost, p, m, opts)

			return Solution{Perm: perm, Value: Value(cost, perm)}, fmt.Errorf("%w: %w", ErrTimeLimit, cerr)
		}

		p[0] = i
		j0 = 0
		for j = 0; j <= m; j++ {
			minv[j] = potentialInf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 = p[j0]
			delta = potentialInf
			j1 = 0
			row := w[(i0-1)*m : i0*m]
			for j = 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur = row[j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j = 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// Flip the augmenting path back to the root.
		for j0 != 0 {
			j1 = way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	perm := make(matrix.Permutation, m)
	for j = 1; j <= m; j++ {
		perm[p[j]-1] = j - 1
	}

	return Solution{Perm: perm, Value: Value(cost, perm), Optimal: true}, nil
}

// workMatrix returns the flat minimisation matrix for the solver.
// Maximize negates scores. Forbidden pairs get penalty = 2·m·max|w| + 1, which
// exceeds the difference between any two mask-respecting assignments, so an
// optimum never uses a forbidden pair when a feasible permutation exists.
//
// Potentials and reduced costs stay within (m+1) times the largest working
// entry: max|w| without a mask, the penalty with one. That span must leave
// potentialInf room, otherwise ErrOverflow.
func workMatrix(cost *matrix.Dense, m int, opts Options) ([]int64, error) {
	maxAbs, _ := matrix.MaxAbs(cost)
	limit := int64(math.MaxInt64/16) / int64(m+1)
	if opts.Allowed != nil {
		limit = (limit - 1) / (2 * int64(m))
	}
	if maxAbs > limit {
		return nil, fmt.Errorf("max|score|=%d exceeds %d for m=%d: %w", maxAbs, limit, m, ErrOverflow)
	}
	var (
		w       = make([]int64, m*m)
		penalty = 2*int64(m)*maxAbs + 1
		j, k    int
		x       int64
	)
	for j = 0; j < m; j++ {
		for k = 0; k < m; k++ {
			if !allowed(opts.Allowed, j, k) {
				w[j*m+k] = penalty
				continue
			}
			x, _ = cost.At(j, k)
			if opts.Sense == Maximize {
				x = -x
			}
			w[j*m+k] = x
		}
	}

	return w, nil
}

// completePartial turns the solver's column→row table into a full permutation:
// matched rows keep their columns, remaining rows take the best free allowed
// column in row order. If the greedy completion breaks the mask, any perfect
// matching on the mask is returned instead.
func completePartial(cost *matrix.Dense, p []int, m int, opts Options) matrix.Permutation {
	var (
		perm     = make(matrix.Permutation, m)
		taken    = make([]bool, m)
		j, k     int
		best     int
		bestVal  int64
		x        int64
		assigned = make([]bool, m)
	)
	for j = 1; j <= m; j++ {
		if p[j] > 0 {
			perm[p[j]-1] = j - 1
			assigned[p[j]-1] = true
			taken[j-1] = true
		}
	}
	for j = 0; j < m; j++ {
		if assigned[j] {
			continue
		}
		best = -1
		for k = 0; k < m; k++ {
			if taken[k] {
				continue
			}
			x, _ = cost.At(j, k)
			if best < 0 || (allowed(opts.Allowed, j, k) && !allowed(opts.Allowed, j, best)) ||
				(allowed(opts.Allowed, j, k) == allowed(opts.Allowed, j, best) && better(x, bestVal, opts.Sense)) {
				best, bestVal = k, x
			}
		}
		perm[j] = best
		taken[best] = true
	}
	if !respects(opts.Allowed, perm) {
		if fallback, ok := PerfectMatching(opts.Allowed); ok {
			return fallback
		}
	}

	return perm
}

// better reports whether x improves on incumbent under sense.
func better(x, incumbent int64, sense Sense) bool {
	if sense == Minimize {
		return x < incumbent
	}

	return x > incumbent
}
