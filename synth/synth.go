// Package synth generates reproducible column-realignment instances: a
// reference matrix A, a planted column permutation, bounded non-negative noise
// and the observed matrix B = A·P + Δ.
//
// Determinism: one seed drives three independent streams (A, permutation,
// noise), so changing MaxNoise never changes A or the planted permutation.
// math/rand.Rand is not goroutine-safe; Generate owns its streams.
package synth

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/birkhoff/matrix"
)

// Sentinel errors.
var (
	// ErrBadConfig indicates non-positive dimensions or value bounds.
	ErrBadConfig = errors.New("synth: invalid config")

	// ErrNilInstance indicates a nil *Instance.
	ErrNilInstance = errors.New("synth: instance is nil")
)

// Defaults reproduce the reference experiment: 14000 samples, 200 columns,
// values in [0,100), noise in [0,3), seed 1.
const (
	DefaultRows     = 14000
	DefaultCols     = 200
	DefaultMaxValue = 100
	DefaultMaxNoise = 3
	DefaultSeed     = 1
)

// stream ids for deriveRNG.
const (
	streamValues uint64 = iota + 1
	streamPerm
	streamNoise
)

// Config describes one instance.
//
// Rows, Cols – shape n×m, both > 0.
// MaxValue   – A entries are uniform in [0, MaxValue); must be > 0.
// MaxNoise   – Δ entries are uniform in [0, MaxNoise); 0 disables noise.
// Seed       – 0 selects DefaultSeed.
type Config struct {
	Rows     int
	Cols     int
	MaxValue int64
	MaxNoise int64
	Seed     int64
}

// DefaultConfig returns the reference experiment's parameters.
func DefaultConfig() Config {
	return Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		MaxValue: DefaultMaxValue,
		MaxNoise: DefaultMaxNoise,
		Seed:     DefaultSeed,
	}
}

// Instance is a generated problem with its ground truth.
//
// Planted[j] = k means column j of A became column k of B.
type Instance struct {
	A       *matrix.Dense
	B       *matrix.Dense
	Planted matrix.Permutation
	Noise   *matrix.Dense
}

// Generate builds an Instance from cfg.
//
// Stages:
//  1. A[i,j] uniform in [0, MaxValue).
//  2. Planted permutation by Fisher–Yates.
//  3. B = A·P + Δ with Δ[i,k] uniform in [0, MaxNoise).
//
// Complexity: O(n·m) time and memory.
func Generate(cfg Config) (*Instance, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("shape %dx%d: %w", cfg.Rows, cfg.Cols, ErrBadConfig)
	}
	if cfg.MaxValue <= 0 || cfg.MaxNoise < 0 {
		return nil, fmt.Errorf("MaxValue=%d MaxNoise=%d: %w", cfg.MaxValue, cfg.MaxNoise, ErrBadConfig)
	}
	base := rngFromSeed(cfg.Seed)

	a, err := uniform(deriveRNG(base, streamValues), cfg.Rows, cfg.Cols, cfg.MaxValue)
	if err != nil {
		return nil, err
	}
	planted := matrix.Identity(cfg.Cols)
	shuffleInPlace(deriveRNG(base, streamPerm), planted)

	noise, err := uniform(deriveRNG(base, streamNoise), cfg.Rows, cfg.Cols, cfg.MaxNoise)
	if err != nil {
		return nil, err
	}
	moved, err := matrix.PermuteColumns(a, planted)
	if err != nil {
		return nil, err
	}
	b, err := matrix.Add(moved, noise)
	if err != nil {
		return nil, err
	}

	return &Instance{A: a, B: b, Planted: planted, Noise: noise}, nil
}

// uniform fills an r×c matrix with values in [0, max); max == 0 yields zeros.
func uniform(rng *rand.Rand, r, c int, max int64) (*matrix.Dense, error) {
	d, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, err
	}
	if max == 0 {
		return d, nil
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = d.Set(i, j, rng.Int63n(max)); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// ColumnSumDrift returns max_k |colsum(A·P)[k] - colsum(B)[k]|, the amount the
// noise moved any observed column total. Without noise it is 0.
func ColumnSumDrift(inst *Instance) (int64, error) {
	if inst == nil || inst.A == nil || inst.B == nil {
		return 0, ErrNilInstance
	}
	moved, err := matrix.PermuteColumns(inst.A, inst.Planted)
	if err != nil {
		return 0, err
	}
	want, err := matrix.ColSums(moved)
	if err != nil {
		return 0, err
	}
	got, err := matrix.ColSums(inst.B)
	if err != nil {
		return 0, err
	}
	if len(want) != len(got) {
		return 0, fmt.Errorf("column counts %d vs %d: %w", len(want), len(got), matrix.ErrDimensionMismatch)
	}
	var drift int64
	for k := range want {
		d := got[k] - want[k]
		if d < 0 {
			d = -d
		}
		if d > drift {
			drift = d
		}
	}

	return drift, nil
}
