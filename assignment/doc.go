// Package assignment solves the square linear assignment problem exactly.
//
// Given an m×m integer score matrix C, find the permutation p maximising (or
// minimising) sum_j C[j,p[j]]. Three entry points are provided:
//
//   - Hungarian   - shortest augmenting paths with row/column potentials
//     (Jonker-Volgenant variant of Kuhn-Munkres).
//     Complexity: O(m³) time, O(m) extra memory beyond the working copy.
//     Arithmetic is int64 throughout, so the optimum is exact.
//
//   - BruteForce  - enumerates all m! permutations with Heap's algorithm.
//     Intended as an oracle for m ≤ MaxBruteForce.
//
//   - PerfectMatching - decides whether a mask of allowed (row, column) pairs
//     admits any permutation, via augmenting paths. Complexity: O(m³).
//
// An optional Allowed mask restricts the pairs a solution may use. Forbidden
// pairs are priced out with a penalty larger than any feasible objective span,
// after PerfectMatching has proved that a feasible permutation exists.
//
// Errors (sentinel):
//
//	ErrEmpty, ErrNonSquare, ErrBadMask, ErrTooLarge, ErrOverflow,
//	ErrInfeasible, ErrTimeLimit.
package assignment
