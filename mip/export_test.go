package mip

import "context"

// RootReachable reports whether the root node of p survives the block checks
// (perfect matching and residual side limits) before any LP is solved.
func RootReachable(p Problem) bool {
	m, err := validateProblem(p)
	if err != nil {
		return false
	}
	e := newEngine(context.Background(), p, m, DefaultOptions())
	_, _, ok := e.freeBlock(e.rootNode(p))

	return ok
}
