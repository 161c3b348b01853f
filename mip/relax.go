package mip

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// relaxation is the LP solution of one node's free block.
type relaxation struct {
	bound float64   // upper bound on the free block's score (excludes fixed pairs)
	vars  []Pair    // global (row, col) of each structural variable
	x     []float64 // LP values, aligned with vars
}

// errRelaxInfeasible marks a node whose LP has no feasible point.
var errRelaxInfeasible = errors.New("mip: relaxation infeasible")

// block describes the free part of a node: rows and columns not fixed by a
// required pair, the allowed mask between them, and residual side limits.
type block struct {
	rows, cols []int    // global indices of free rows / columns (equal length)
	allowed    [][]bool // allowed[r][c] over local indices
	limits     []int64  // residual limit per side constraint
}

// solveRelaxation builds and solves
//
//	min  -S·x / scale
//	s.t. row sums = 1, column sums = 1 (one column row dropped per component),
//	     W_c·x + s_c = L_c, x ≥ 0, s ≥ 0
//
// and returns the bound in score units.
//
// Complexity: dominated by lp.Simplex on a (2r + C) × (|vars| + C) system.
func (e *engine) solveRelaxation(b block) (relaxation, error) {
	var (
		nr    = len(b.rows)
		nc    = len(b.cols)
		ncons = len(e.cons)
		vars  = make([]Pair, 0, nr*nc)
		r, c  int
	)
	for r = 0; r < nr; r++ {
		for c = 0; c < nc; c++ {
			if b.allowed[r][c] {
				vars = append(vars, Pair{Row: r, Col: c})
			}
		}
	}

	dropped := droppedColumns(nr, nc, vars)
	rowsA := nr + nc - countTrue(dropped) + ncons
	colsA := len(vars) + ncons

	var (
		A    = mat.NewDense(rowsA, colsA, nil)
		rhs  = make([]float64, rowsA)
		cost = make([]float64, colsA)
		// colRow[c] is the equality row of local column c, or -1 when dropped.
		colRow = make([]int, nc)
		next   = nr
		v      int
		q      Pair
	)
	for c = 0; c < nc; c++ {
		if dropped[c] {
			colRow[c] = -1
			continue
		}
		colRow[c] = next
		next++
	}
	for r = 0; r < next; r++ {
		rhs[r] = 1
	}
	for v, q = range vars {
		A.Set(q.Row, v, 1)
		if colRow[q.Col] >= 0 {
			A.Set(colRow[q.Col], v, 1)
		}
		cost[v] = -float64(e.score[b.rows[q.Row]*e.m+b.cols[q.Col]])
	}
	for ci, con := range e.cons {
		row := next + ci
		for v, q = range vars {
			A.Set(row, v, float64(con.w[b.rows[q.Row]*e.m+b.cols[q.Col]]))
		}
		A.Set(row, len(vars)+ci, 1)
		rhs[row] = float64(b.limits[ci])
	}

	scale := 1.0
	if mx := floats.Max(absAll(cost)); mx > 0 {
		scale = mx
	}
	floats.Scale(1/scale, cost)

	optF, x, err := lp.Simplex(cost, A, rhs, e.tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return relaxation{}, errRelaxInfeasible
		}

		return relaxation{}, err
	}

	// Map local pairs back to global indices for branching.
	global := make([]Pair, len(vars))
	for v, q = range vars {
		global[v] = Pair{Row: b.rows[q.Row], Col: b.cols[q.Col]}
	}

	return relaxation{bound: -optF * scale, vars: global, x: x[:len(vars)]}, nil
}

// droppedColumns marks, per connected component of the bipartite graph formed by
// vars, the highest-index column whose equality row is redundant.
func droppedColumns(nr, nc int, vars []Pair) []bool {
	parent := make([]int, nr+nc)
	for i := range parent {
		parent[i] = i
	}
	for _, q := range vars {
		union(parent, q.Row, nr+q.Col)
	}

	var (
		last    = make(map[int]int, nc) // component root -> highest column
		dropped = make([]bool, nc)
		c       int
	)
	for c = 0; c < nc; c++ {
		last[find(parent, nr+c)] = c
	}
	for _, c = range last {
		dropped[c] = true
	}

	return dropped
}

func find(parent []int, x int) int {
	for parent[x] != x {
		parent[x] = parent[parent[x]]
		x = parent[x]
	}

	return x
}

func union(parent []int, a, b int) {
	ra, rb := find(parent, a), find(parent, b)
	if ra != rb {
		parent[ra] = rb
	}
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}

	return n
}

// absAll returns |x| elementwise in a new slice (a zero-length input yields {0}).
func absAll(xs []float64) []float64 {
	out := make([]float64, len(xs), len(xs)+1)
	for i, x := range xs {
		out[i] = math.Abs(x)
	}
	if len(out) == 0 {
		out = append(out, 0)
	}

	return out
}
