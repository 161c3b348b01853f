package assignment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/birkhoff/assignment"
)

func TestPerfectMatching(t *testing.T) {
	mask := [][]bool{
		{true, true, false},
		{true, false, false},
		{false, true, true},
	}
	perm, ok := assignment.PerfectMatching(mask)
	require.True(t, ok)
	require.NoError(t, perm.Validate())
	for j, k := range perm {
		require.True(t, mask[j][k])
	}
	// Row 1 can only take column 0, which forces row 0 onto column 1 and row 2 onto column 2.
	require.Equal(t, []int{1, 0, 2}, []int(perm))
}

func TestPerfectMatching_HallViolation(t *testing.T) {
	mask := [][]bool{
		{true, false, false},
		{true, false, false},
		{false, true, true},
	}
	_, ok := assignment.PerfectMatching(mask)
	require.False(t, ok)

	emptyColumn := [][]bool{
		{true, false},
		{true, false},
	}
	_, ok = assignment.PerfectMatching(emptyColumn)
	require.False(t, ok)
}

func TestPerfectMatching_Nil(t *testing.T) {
	perm, ok := assignment.PerfectMatching(nil)
	require.True(t, ok)
	require.Empty(t, perm)
}
