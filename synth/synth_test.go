package synth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/birkhoff/matrix"
	"github.com/katalvlaran/birkhoff/synth"
)

func TestGenerateShapesAndRanges(t *testing.T) {
	cfg := synth.Config{Rows: 50, Cols: 8, MaxValue: 100, MaxNoise: 3, Seed: 7}
	inst, err := synth.Generate(cfg)
	require.NoError(t, err)

	require.Equal(t, 50, inst.A.Rows())
	require.Equal(t, 8, inst.A.Cols())
	require.Equal(t, 50, inst.B.Rows())
	require.Equal(t, 8, inst.B.Cols())
	require.NoError(t, inst.Planted.Validate())

	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			a, _ := inst.A.At(i, j)
			require.GreaterOrEqual(t, a, int64(0))
			require.Less(t, a, cfg.MaxValue)

			d, _ := inst.Noise.At(i, j)
			require.GreaterOrEqual(t, d, int64(0))
			require.Less(t, d, cfg.MaxNoise)

			// B[i, planted[j]] = A[i,j] + noise[i, planted[j]].
			b, _ := inst.B.At(i, inst.Planted[j])
			dk, _ := inst.Noise.At(i, inst.Planted[j])
			require.Equal(t, a+dk, b)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := synth.Config{Rows: 30, Cols: 6, MaxValue: 10, MaxNoise: 2, Seed: 99}
	x, err := synth.Generate(cfg)
	require.NoError(t, err)
	y, err := synth.Generate(cfg)
	require.NoError(t, err)
	require.True(t, x.A.Equal(y.A))
	require.True(t, x.B.Equal(y.B))
	require.True(t, x.Planted.Equal(y.Planted))

	// Noise level does not disturb A or the planted permutation.
	cfg.MaxNoise = 0
	z, err := synth.Generate(cfg)
	require.NoError(t, err)
	require.True(t, x.A.Equal(z.A))
	require.True(t, x.Planted.Equal(z.Planted))
}

func TestZeroSeedUsesDefault(t *testing.T) {
	cfg := synth.Config{Rows: 5, Cols: 4, MaxValue: 10}
	x, err := synth.Generate(cfg)
	require.NoError(t, err)
	cfg.Seed = synth.DefaultSeed
	y, err := synth.Generate(cfg)
	require.NoError(t, err)
	require.True(t, x.A.Equal(y.A))
}

func TestColumnSumDrift(t *testing.T) {
	clean, err := synth.Generate(synth.Config{Rows: 40, Cols: 5, MaxValue: 100, Seed: 3})
	require.NoError(t, err)
	drift, err := synth.ColumnSumDrift(clean)
	require.NoError(t, err)
	require.Zero(t, drift)

	noisy, err := synth.Generate(synth.Config{Rows: 40, Cols: 5, MaxValue: 100, MaxNoise: 3, Seed: 3})
	require.NoError(t, err)
	drift, err = synth.ColumnSumDrift(noisy)
	require.NoError(t, err)
	require.LessOrEqual(t, drift, int64(40*2))

	sums, err := matrix.ColSums(noisy.Noise)
	require.NoError(t, err)
	var max int64
	for _, s := range sums {
		if s > max {
			max = s
		}
	}
	require.Equal(t, max, drift)

	_, err = synth.ColumnSumDrift(nil)
	require.ErrorIs(t, err, synth.ErrNilInstance)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	bad := []synth.Config{
		{Rows: 0, Cols: 3, MaxValue: 10},
		{Rows: 3, Cols: -1, MaxValue: 10},
		{Rows: 3, Cols: 3, MaxValue: 0},
		{Rows: 3, Cols: 3, MaxValue: 10, MaxNoise: -1},
	}
	for _, cfg := range bad {
		_, err := synth.Generate(cfg)
		require.ErrorIs(t, err, synth.ErrBadConfig, "%+v", cfg)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := synth.DefaultConfig()
	require.Equal(t, 14000, cfg.Rows)
	require.Equal(t, 200, cfg.Cols)
	require.Equal(t, int64(100), cfg.MaxValue)
	require.Equal(t, int64(3), cfg.MaxNoise)
	require.Equal(t, int64(1), cfg.Seed)
}
