package colmatch_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/birkhoff/colmatch"
	"github.com/katalvlaran/birkhoff/synth"
)

// BenchmarkMatchColumnsReference runs the full-size experiment: 14000×200,
// values in [0,100), noise in [0,3).
func BenchmarkMatchColumnsReference(b *testing.B) {
	inst, err := synth.Generate(synth.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := colmatch.MatchColumns(context.Background(), inst.A, inst.B)
		if err != nil {
			b.Fatal(err)
		}
		if !colmatch.Recovered(res, inst.Planted) {
			b.Fatal("planted permutation not recovered")
		}
	}
}

func BenchmarkMatchColumnsBranchAndBound(b *testing.B) {
	inst, err := synth.Generate(synth.Config{Rows: 500, Cols: 30, MaxValue: 100, MaxNoise: 3, Seed: 1})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := colmatch.MatchColumns(context.Background(), inst.A, inst.B,
			colmatch.WithStrategy(colmatch.StrategyBranchAndBound)); err != nil {
			b.Fatal(err)
		}
	}
}
