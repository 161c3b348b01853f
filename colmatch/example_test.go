package colmatch_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/birkhoff/colmatch"
	"github.com/katalvlaran/birkhoff/matrix"
)

// ExampleMatchColumns swaps the first and last columns of a scaled identity and
// recovers the swap.
func ExampleMatchColumns() {
	a, _ := matrix.NewDenseFrom([][]int64{
		{10, 0, 0},
		{0, 10, 0},
		{0, 0, 10},
	})
	b, _ := matrix.PermuteColumns(a, matrix.Permutation{2, 1, 0})

	res, err := colmatch.MatchColumns(context.Background(), a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Perm, res.Objective, res.Optimal)
	fmt.Print(res.P)
	// Output:
	// [2 1 0] 300 true
	// [0, 0, 1]
	// [0, 1, 0]
	// [1, 0, 0]
}

// ExampleWithForbidden keeps column 1 away from its natural partner.
func ExampleWithForbidden() {
	a, _ := matrix.NewDenseFrom([][]int64{
		{5, 1, 0},
		{2, 5, 1},
		{0, 1, 5},
	})
	res, err := colmatch.MatchColumns(context.Background(), a, a,
		colmatch.WithForbidden(1, 1),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Perm, res.Strategy)
	// Output: [1 0 2] hungarian
}
