// SPDX-License-Identifier: MIT

// Package matrix provides the integer matrix primitives used by the column matcher.
//
// What & Why:
//
//	Column realignment works on count data: every cell of the reference and observed
//	matrices is a non-negative integer, and the alignment score A^T*B must be exact so
//	that ties and optimality certificates are not blurred by rounding. Dense therefore
//	stores int64 values in a flat row-major buffer, mirroring a float Dense layout but
//	without any numeric policy beyond bounds checks.
//
// Contents:
//
//   - Dense        - row-major int64 storage with error-returning At/Set.
//   - ColSums etc. - reductions and column permutation (B = A*P).
//   - CrossProduct - C = A^T*B with a gonum BLAS fast path when it is exact.
//   - Permutation  - index form of a permutation matrix plus strict validation.
//   - Validate*    - canonical shape / sign / permutation guards.
//
// Complexity quicksheet:
//
//	NewDense O(r*c); At/Set O(1); ColSums O(r*c); PermuteColumns O(r*c);
//	CrossProduct O(n*m^2); ValidatePermutationMatrix O(m^2).
package matrix
