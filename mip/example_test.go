package mip_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/birkhoff/matrix"
	"github.com/katalvlaran/birkhoff/mip"
)

// ExampleSolve forbids the unconstrained optimum's first pair and lets the
// solver find the best remaining permutation.
func ExampleSolve() {
	score, _ := matrix.NewDenseFrom([][]int64{
		{9, 2, 1},
		{2, 9, 1},
		{1, 2, 9},
	})
	p := mip.Problem{
		Score:     score,
		Forbidden: []mip.Pair{{Row: 0, Col: 0}},
	}
	res, err := mip.Solve(context.Background(), p, mip.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Perm, res.Value, res.Optimal)
	// Output: [1 0 2] 13 true
}
