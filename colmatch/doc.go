// Package colmatch realigns the columns of an observed integer matrix with the
// columns of a reference matrix.
//
// Given A (n×m) and B (n×m) where B's columns are a permutation of A's columns
// plus small non-negative noise, MatchColumns recovers the m×m permutation
// matrix P maximising
//
//	sum_{i,j,k} A[i,j] · P[j,k] · B[i,k]
//
// The objective is linear in P once C = Aᵀ·B is known, so the problem is a
// linear assignment over C and is solved exactly in polynomial time.
//
// Stages:
//
//	1. Validate: both matrices non-nil, non-empty, equal shape, non-negative.
//	2. Cross product: C = Aᵀ·B (exact int64; gonum fast path when it is exact).
//	3. Dispatch: Hungarian (default), branch-and-bound (capacity side rows),
//	   or brute force (tiny m, oracle).
//	4. Verify: P is rebuilt from the permutation and checked row by row and
//	   column by column; the objective is recomputed from C.
//
// Complexity:
//
//	– Time:  O(n·m²) for C, plus O(m³) for Hungarian.
//	– Space: O(m²).
//
// Strategies:
//
//	– StrategyAuto:           Hungarian, or branch-and-bound when WithConstraint is used.
//	– StrategyHungarian:      exact assignment; honours forbidden/required pairs.
//	– StrategyBranchAndBound: LP-based search; honours every constraint kind.
//	– StrategyBruteForce:     m ≤ 10 only; honours forbidden/required pairs.
//
// Errors (sentinel):
//
//	– ErrInvalidInput   nil, empty, mis-shaped or negative input, or bad pairs.
//	– ErrInfeasible     no permutation satisfies the constraints.
//	– ErrTimeLimit      the budget ran out; Result holds the best feasible
//	                    permutation with Optimal=false when one exists.
//	– ErrUnsupported    the chosen strategy cannot honour the constraints or
//	                    the score magnitude (Aᵀ·B outside exact int64 range).
//	– ErrNotPermutation internal guard; a solver produced a non-permutation.
//
// Example usage:
//
//	res, err := colmatch.MatchColumns(ctx, a, b,
//	    colmatch.WithTimeLimit(30*time.Second),
//	    colmatch.WithLogger(logger),
//	)
//	if err != nil && !errors.Is(err, colmatch.ErrTimeLimit) {
//	    return err
//	}
//	if res != nil { // nil when the budget ran out before any feasible permutation
//	    fmt.Println(res.Perm, res.Objective, res.Optimal)
//	}
package colmatch
