package assignment_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/birkhoff/assignment"
	"github.com/katalvlaran/birkhoff/matrix"
)

// ExampleHungarian maximises alignment scores where the best pairing swaps
// the first and last columns.
func ExampleHungarian() {
	scores, _ := matrix.NewDenseFrom([][]int64{
		{0, 0, 100},
		{0, 100, 0},
		{100, 0, 0},
	})
	sol, err := assignment.Hungarian(context.Background(), scores, assignment.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sol.Perm, sol.Value, sol.Optimal)
	// Output: [2 1 0] 300 true
}
