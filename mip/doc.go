// Package mip implements branch-and-bound over the Birkhoff polytope with side constraints.
//
// The plain column-matching problem is a linear assignment problem and is solved
// exactly by package assignment. This package keeps the general integer-programming
// formulation alive for variants that add side constraints:
//
//	maximise   sum_{j,k} S[j,k]·x[j,k]
//	subject to sum_k x[j,k] = 1            (every reference column matched once)
//	           sum_j x[j,k] = 1            (every observed column matched once)
//	           sum_{j,k} W_c[j,k]·x[j,k] ≤ L_c   for each side constraint c
//	           x[j,k] = 0 for forbidden pairs, x[j,k] = 1 for required pairs
//	           x ∈ {0,1}
//
// Approach:
//  1. Without side rows the LP relaxation is integral (Birkhoff–von Neumann: the
//     vertices of the doubly-stochastic polytope are permutation matrices), so the
//     root LP already yields the optimum.
//  2. Side rows break integrality; a depth-first search branches on the most
//     fractional x[j,k]: "require (j,k)" removes row j and column k, "forbid (j,k)"
//     removes the variable. Each node re-solves the reduced LP with
//     gonum.org/v1/gonum/optimize/convex/lp.Simplex.
//  3. Equality rows of a bipartite incidence system have one redundant row per
//     connected component; one column row per component is dropped so the system
//     handed to the simplex has full row rank.
//  4. The incumbent is seeded with the Hungarian optimum when it satisfies every
//     side row; a node is pruned when floor(LP bound) cannot beat the incumbent.
//  5. If the simplex fails numerically on a node, the node falls back to the
//     Hungarian optimum of its free block, which is still an admissible bound.
//
// Budgets: the context deadline (soft, checked per node) and Options.MaxNodes.
// When a budget is exhausted the best incumbent is returned with Optimal=false
// alongside ErrTimeLimit or ErrNodeLimit.
//
// Complexity: exponential in the worst case; one O(poly) LP per node.
package mip
