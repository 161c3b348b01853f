package mip

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/birkhoff/assignment"
	"github.com/katalvlaran/birkhoff/matrix"
)

// sideRow is a side constraint prefetched into a flat buffer: w[j*m+k].
type sideRow struct {
	w     []int64
	limit int64
}

// engine holds all search data and policies; hot-path state lives here rather
// than in closures so the recursion stays explicit.
type engine struct {
	ctx context.Context

	m      int
	score  []int64 // score[j*m+k]
	cons   []sideRow
	tol    float64
	intTol float64

	maxNodes int
	nodes    int
	stopErr  error // ErrTimeLimit / ErrNodeLimit once a budget is hit

	rootMask [][]bool // pairs allowed by the problem's own fixings/forbids

	// incumbent
	found    bool
	best     matrix.Permutation
	bestVal  int64
	rootSeen bool
	root     float64
}

// node is one subproblem: fix[j] = k for required pairs (-1 = free) and the
// forbidden mask over all pairs.
type node struct {
	fix    []int
	forbid [][]bool
}

// Solve maximises Problem.Score over permutation matrices subject to the
// problem's forbidden/required pairs and side constraints.
//
// Errors:
//   - ErrBadProblem for malformed input.
//   - ErrInfeasible when no permutation satisfies the constraints.
//   - ErrTimeLimit / ErrNodeLimit when a budget stops the search; Result holds the
//     best incumbent (Optimal=false) if one was found.
func Solve(ctx context.Context, p Problem, opts Options) (Result, error) {
	m, err := validateProblem(p)
	if err != nil {
		return Result{}, err
	}

	e := newEngine(ctx, p, m, opts)
	root := e.rootNode(p)
	e.rootMask = e.fullMask(root)

	if !opts.NoSeed {
		e.seed(root)
	}
	e.search(root)

	res := Result{Nodes: e.nodes, RootBound: math.Inf(1)}
	if e.rootSeen {
		res.RootBound = e.root
	}
	if e.found {
		res.Perm, res.Value = e.best, e.bestVal
	}
	if e.stopErr != nil {
		return res, e.stopErr
	}
	if !e.found {
		return res, ErrInfeasible
	}
	res.Optimal = true

	return res, nil
}

func newEngine(ctx context.Context, p Problem, m int, opts Options) *engine {
	e := &engine{
		ctx:      ctx,
		m:        m,
		score:    flatten(p.Score, m),
		tol:      opts.Tol,
		intTol:   opts.IntTol,
		maxNodes: opts.MaxNodes,
	}
	if e.tol <= 0 {
		e.tol = DefaultTol
	}
	if e.intTol <= 0 {
		e.intTol = DefaultIntTol
	}
	for _, c := range p.Constraints {
		e.cons = append(e.cons, sideRow{w: flatten(c.Weights, m), limit: c.Limit})
	}

	return e
}

func flatten(d *matrix.Dense, m int) []int64 {
	out := make([]int64, m*m)
	var j, k int
	for j = 0; j < m; j++ {
		for k = 0; k < m; k++ {
			out[j*m+k], _ = d.At(j, k)
		}
	}

	return out
}

func (e *engine) rootNode(p Problem) node {
	n := node{fix: make([]int, e.m), forbid: make([][]bool, e.m)}
	for j := range n.fix {
		n.fix[j] = -1
		n.forbid[j] = make([]bool, e.m)
	}
	for _, q := range p.Forbidden {
		n.forbid[q.Row][q.Col] = true
	}
	for _, q := range p.Required {
		n.fix[q.Row] = q.Col
	}

	return n
}

// seed tries the Hungarian optimum of the root (side rows relaxed) as incumbent.
func (e *engine) seed(root node) {
	sol, err := assignment.Hungarian(e.ctx, e.denseScore(), assignment.Options{Allowed: e.fullMask(root)})
	if err != nil && !errors.Is(err, assignment.ErrTimeLimit) {
		return
	}
	e.offer(sol.Perm)
}

// denseScore rebuilds the score matrix as *matrix.Dense.
func (e *engine) denseScore() *matrix.Dense {
	d, _ := matrix.NewDense(e.m, e.m)
	var j, k int
	for j = 0; j < e.m; j++ {
		for k = 0; k < e.m; k++ {
			_ = d.Set(j, k, e.score[j*e.m+k])
		}
	}

	return d
}

// fullMask expresses a node's fixings and forbidden pairs as an m×m mask.
func (e *engine) fullMask(n node) [][]bool {
	var (
		mask    = make([][]bool, e.m)
		colFix  = make([]int, e.m)
		j, k, r int
	)
	for k = range colFix {
		colFix[k] = -1
	}
	for j, k = range n.fix {
		if k >= 0 {
			colFix[k] = j
		}
	}
	for r = 0; r < e.m; r++ {
		mask[r] = make([]bool, e.m)
		for k = 0; k < e.m; k++ {
			switch {
			case n.fix[r] >= 0:
				mask[r][k] = k == n.fix[r]
			case colFix[k] >= 0:
				mask[r][k] = false
			default:
				mask[r][k] = !n.forbid[r][k]
			}
		}
	}

	return mask
}

// offer validates perm exactly (bijection + side rows) and records it when it
// beats the incumbent.
func (e *engine) offer(perm matrix.Permutation) bool {
	if len(perm) != e.m || perm.Validate() != nil || !e.satisfies(perm) {
		return false
	}
	for j, k := range perm {
		if !e.rootMask[j][k] {
			return false
		}
	}
	var v int64
	for j, k := range perm {
		v += e.score[j*e.m+k]
	}
	if !e.found || v > e.bestVal {
		e.found, e.best, e.bestVal = true, perm.Clone(), v
	}

	return true
}

// satisfies checks every side row in exact integer arithmetic.
func (e *engine) satisfies(perm matrix.Permutation) bool {
	for _, c := range e.cons {
		var s int64
		for j, k := range perm {
			s += c.w[j*e.m+k]
		}
		if s > c.limit {
			return false
		}
	}

	return true
}

// budget reports whether the search must stop, recording the reason once.
func (e *engine) budget() bool {
	if e.stopErr != nil {
		return true
	}
	if err := e.ctx.Err(); err != nil {
		e.stopErr = fmt.Errorf("%w: %w", ErrTimeLimit, err)
		return true
	}
	if e.maxNodes > 0 && e.nodes >= e.maxNodes {
		e.stopErr = ErrNodeLimit
		return true
	}

	return false
}

// search is the depth-first core: bound, prune, accept or branch.
func (e *engine) search(n node) {
	if e.budget() {
		return
	}
	e.nodes++

	b, fixedVal, ok := e.freeBlock(n)
	if !ok {
		return // a side row is already violated beyond repair, or the block has no matching
	}
	if len(b.rows) == 0 {
		e.offer(e.assemble(n, nil))
		return
	}

	rel, err := e.solveRelaxation(b)
	switch {
	case errors.Is(err, errRelaxInfeasible):
		return
	case err != nil:
		e.fallback(n, b)
		return
	}

	bound := float64(fixedVal) + rel.bound
	if !e.rootSeen {
		e.rootSeen, e.root = true, bound
	}
	if e.found && !canImprove(bound, e.bestVal) {
		return
	}

	branch, integral := e.pickBranch(rel)
	if integral {
		perm := e.assemble(n, &rel)
		if e.offer(perm) {
			return
		}
		// Rounding produced an exact-check violation; branch on a chosen pair.
		branch = e.violatingPair(n, perm)
		if branch.Row < 0 {
			return
		}
	}

	e.branch(n, branch, rel)
}

// canImprove reports whether an integer objective strictly above incumbent is
// still possible under bound (with a relative tolerance for LP noise).
func canImprove(bound float64, incumbent int64) bool {
	tol := 1e-6 * math.Max(1, math.Abs(bound))

	return math.Floor(bound+tol) > float64(incumbent)
}

// freeBlock extracts the unfixed rows/columns, their allowed mask and residual
// side limits. ok is false when the block has no perfect matching or a side
// row's residual limit is below the least weight the free rows can add.
func (e *engine) freeBlock(n node) (block, int64, bool) {
	var (
		b       block
		colUsed = make([]bool, e.m)
		fixed   int64
		j, k    int
	)
	b.limits = make([]int64, len(e.cons))
	for ci, c := range e.cons {
		b.limits[ci] = c.limit
	}
	for j, k = range n.fix {
		if k < 0 {
			b.rows = append(b.rows, j)
			continue
		}
		colUsed[k] = true
		fixed += e.score[j*e.m+k]
		for ci, c := range e.cons {
			b.limits[ci] -= c.w[j*e.m+k]
		}
	}
	for k = 0; k < e.m; k++ {
		if !colUsed[k] {
			b.cols = append(b.cols, k)
		}
	}
	b.allowed = make([][]bool, len(b.rows))
	for r, gj := range b.rows {
		b.allowed[r] = make([]bool, len(b.cols))
		for c, gk := range b.cols {
			b.allowed[r][c] = !n.forbid[gj][gk]
		}
	}
	if len(b.rows) > 0 {
		if _, ok := assignment.PerfectMatching(b.allowed); !ok {
			return block{}, 0, false
		}
	}
	if !e.limitsReachable(b) {
		return block{}, 0, false
	}

	return b, fixed, true
}

// limitsReachable reports whether every side row can still meet its residual
// limit: each free row contributes at least its smallest allowed weight.
//
// Complexity: O(C·r·c) for C side rows over an r×c free block.
func (e *engine) limitsReachable(b block) bool {
	for ci, con := range e.cons {
		var least int64
		for r, gj := range b.rows {
			rowMin, seen := int64(0), false
			for c, gk := range b.cols {
				if !b.allowed[r][c] {
					continue
				}
				if w := con.w[gj*e.m+gk]; !seen || w < rowMin {
					rowMin, seen = w, true
				}
			}
			least += rowMin
		}
		if least > b.limits[ci] {
			return false
		}
	}

	return true
}

// pickBranch selects the most fractional structural variable. integral is true
// when every variable lies within intTol of 0 or 1.
func (e *engine) pickBranch(rel relaxation) (Pair, bool) {
	var (
		best  = Pair{Row: -1, Col: -1}
		bestF = e.intTol
		f     float64
	)
	for v, x := range rel.x {
		f = math.Min(x, 1-x)
		if f > bestF {
			best, bestF = rel.vars[v], f
		}
	}

	return best, best.Row < 0
}

// assemble merges a node's fixings with the LP's (rounded) free assignment.
func (e *engine) assemble(n node, rel *relaxation) matrix.Permutation {
	perm := make(matrix.Permutation, e.m)
	copy(perm, n.fix)
	if rel != nil {
		for v, x := range rel.x {
			if x > 0.5 {
				perm[rel.vars[v].Row] = rel.vars[v].Col
			}
		}
	}

	return perm
}

// violatingPair picks a free pair of perm to branch on: the free pair with the
// largest weight in the first violated side row, else the first free pair.
// Fixed rows are never returned, so every branch makes progress. It returns
// {-1,-1} when perm is not a permutation or has no free row.
func (e *engine) violatingPair(n node, perm matrix.Permutation) Pair {
	none := Pair{Row: -1, Col: -1}
	if perm.Validate() != nil {
		return none
	}
	first := none
	for j, k := range perm {
		if n.fix[j] < 0 {
			first = Pair{Row: j, Col: k}
			break
		}
	}
	if first.Row < 0 {
		return none
	}
	for _, c := range e.cons {
		var (
			s    int64
			best = first
			bw   = int64(math.MinInt64)
		)
		for j, k := range perm {
			w := c.w[j*e.m+k]
			s += w
			if n.fix[j] < 0 && w > bw {
				best, bw = Pair{Row: j, Col: k}, w
			}
		}
		if s > c.limit {
			return best
		}
	}

	return first
}

// branch explores "require q" and "forbid q", most promising child first.
func (e *engine) branch(n node, q Pair, rel relaxation) {
	requireFirst := true
	for v, p := range rel.vars {
		if p == q {
			requireFirst = rel.x[v] >= 0.5
			break
		}
	}
	req, forb := n.withRequired(q), n.withForbidden(q)
	if requireFirst {
		e.search(req)
		e.search(forb)
	} else {
		e.search(forb)
		e.search(req)
	}
}

// fallback handles a node whose LP failed numerically: the Hungarian optimum of
// the free block (side rows relaxed) is an admissible bound and a candidate.
func (e *engine) fallback(n node, b block) {
	sub, _ := matrix.NewDense(len(b.rows), len(b.cols))
	for r, gj := range b.rows {
		for c, gk := range b.cols {
			_ = sub.Set(r, c, e.score[gj*e.m+gk])
		}
	}
	sol, err := assignment.Hungarian(e.ctx, sub, assignment.Options{Allowed: b.allowed})
	if err != nil {
		if errors.Is(err, assignment.ErrTimeLimit) {
			e.budget()
		}
		return
	}

	perm := make(matrix.Permutation, e.m)
	copy(perm, n.fix)
	var fixedVal int64
	for j, k := range n.fix {
		if k >= 0 {
			fixedVal += e.score[j*e.m+k]
		}
	}
	for r, c := range sol.Perm {
		perm[b.rows[r]] = b.cols[c]
	}
	if e.found && !canImprove(float64(fixedVal+sol.Value), e.bestVal) {
		return
	}
	if e.offer(perm) {
		return
	}
	q := e.violatingPair(n, perm)
	if q.Row < 0 {
		return
	}
	e.search(n.withRequired(q))
	e.search(n.withForbidden(q))
}

func (n node) withRequired(q Pair) node {
	fix := append([]int(nil), n.fix...)
	fix[q.Row] = q.Col

	return node{fix: fix, forbid: n.forbid}
}

func (n node) withForbidden(q Pair) node {
	forbid := make([][]bool, len(n.forbid))
	for j := range n.forbid {
		forbid[j] = n.forbid[j]
	}
	forbid[q.Row] = append([]bool(nil), n.forbid[q.Row]...)
	forbid[q.Row][q.Col] = true

	return node{fix: n.fix, forbid: forbid}
}
