package assignment

import "github.com/katalvlaran/birkhoff/matrix"

// PerfectMatching finds any permutation that uses only pairs with allowed[j][k]
// true, using Kuhn's augmenting paths: for each row, a DFS looks for a free
// column or a matched column whose owner can be re-routed.
//
// Returns (perm, true) on success, (nil, false) when no perfect matching exists
// (Hall's condition fails). A nil mask has no rows and yields an empty permutation.
//
// Complexity: O(m³) time, O(m) memory.
func PerfectMatching(allowed [][]bool) (matrix.Permutation, bool) {
	if allowed == nil {
		return matrix.Permutation{}, true
	}
	m := len(allowed)
	var (
		owner = make([]int, m) // owner[k] = row matched to column k, or -1
		seen  = make([]bool, m)
		j, k  int
	)
	for k = 0; k < m; k++ {
		owner[k] = -1
	}
	for j = 0; j < m; j++ {
		for k = range seen {
			seen[k] = false
		}
		if !augment(allowed, j, owner, seen) {
			return nil, false
		}
	}

	perm := make(matrix.Permutation, m)
	for k = 0; k < m; k++ {
		perm[owner[k]] = k
	}

	return perm, true
}

// augment tries to match row j, re-routing earlier rows along alternating paths.
func augment(allowed [][]bool, j int, owner []int, seen []bool) bool {
	for k, ok := range allowed[j] {
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		if owner[k] < 0 || augment(allowed, owner[k], owner, seen) {
			owner[k] = j

			return true
		}
	}

	return false
}
