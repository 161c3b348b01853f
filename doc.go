// Package birkhoff recovers the column correspondence between two integer
// matrices whose columns were shuffled and lightly perturbed.
//
// What is birkhoff?
//
//	Given a reference matrix A and an observed matrix B = A·P + Δ, find the
//	permutation matrix P maximising sum_{i,j,k} A[i,j]·P[j,k]·B[i,k]. The
//	objective is linear in P once C = Aᵀ·B is known, so the problem is an
//	assignment over the Birkhoff polytope and is solved exactly.
//
// Packages:
//
//	matrix/     - integer Dense, permutations, validators, Aᵀ·B kernel
//	assignment/ - Hungarian (Jonker–Volgenant), brute force, perfect matching
//	mip/        - LP-relaxation branch-and-bound for side constraints
//	colmatch/   - MatchColumns: validation, strategy dispatch, verification
//	synth/      - reproducible planted instances (A, P, Δ, B)
//	dataset/    - CSV/XLSX loaders and header alignment export
//	cmd/birkhoff - the synth and match command-line tool
//
// Quick example:
//
//	A = [10 0 0]     B = [0 0 10]     P = [0 0 1]
//	    [0 10 0]         [0 10 0]         [0 1 0]
//	    [0 0 10]         [10 0 0]         [1 0 0]
//
//	res, _ := colmatch.MatchColumns(ctx, a, b)
//	// res.Perm == [2 1 0], res.Objective == 300
package birkhoff
