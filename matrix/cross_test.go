package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/birkhoff/matrix"
)

// naiveCross is the reference A^T*B triple loop.
func naiveCross(t *testing.T, a, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	out, err := matrix.NewDense(a.Cols(), b.Cols())
	require.NoError(t, err)
	for j := 0; j < a.Cols(); j++ {
		for k := 0; k < b.Cols(); k++ {
			var s int64
			for i := 0; i < a.Rows(); i++ {
				x, _ := a.At(i, j)
				y, _ := b.At(i, k)
				s += x * y
			}
			require.NoError(t, out.Set(j, k, s))
		}
	}

	return out
}

func randomDense(t *testing.T, rng *rand.Rand, r, c int, max int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, rng.Int63n(max)))
		}
	}

	return m
}

func TestCrossProduct_FloatPathExact(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := randomDense(t, rng, 500, 6, 100)
	b := randomDense(t, rng, 500, 6, 103)

	got, err := matrix.CrossProduct(a, b)
	require.NoError(t, err)
	require.True(t, naiveCross(t, a, b).Equal(got))
}

func TestCrossProduct_IntPath(t *testing.T) {
	// Entries near 2^40 push n*max|A|*max|B| past 2^53, forcing the int64 kernel.
	rng := rand.New(rand.NewSource(11))
	a := randomDense(t, rng, 4, 3, 1<<20)
	b := randomDense(t, rng, 4, 3, 1<<20)
	require.NoError(t, a.Set(0, 0, 1<<40))
	require.NoError(t, b.Set(0, 0, 1<<13))

	got, err := matrix.CrossProduct(a, b)
	require.NoError(t, err)
	require.True(t, naiveCross(t, a, b).Equal(got))
}

func TestCrossProduct_Errors(t *testing.T) {
	a, _ := matrix.NewDense(2, 2)
	b, _ := matrix.NewDense(3, 2)
	_, err := matrix.CrossProduct(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.CrossProduct(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	big, _ := matrix.NewDenseFrom([][]int64{{1 << 62}})
	four, _ := matrix.NewDenseFrom([][]int64{{4}})
	_, err = matrix.CrossProduct(big, four)
	require.ErrorIs(t, err, matrix.ErrOverflow)
}

func TestCrossProduct_Rectangular(t *testing.T) {
	a, _ := matrix.NewDenseFrom([][]int64{{1, 2}, {3, 4}, {5, 6}})
	b, _ := matrix.NewDenseFrom([][]int64{{1, 0, 2}, {0, 1, 0}, {1, 1, 1}})
	got, err := matrix.CrossProduct(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, got.Rows())
	require.Equal(t, 3, got.Cols())
	require.True(t, naiveCross(t, a, b).Equal(got))
}
