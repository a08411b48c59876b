package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairs(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, Pairs(3))
	assert.Empty(t, Pairs(1))
	assert.Len(t, Pairs(4), 6)
}

func TestBonferroni(t *testing.T) {
	got := Bonferroni([]float64{0.01, 0.5, 0.02})
	assert.InDeltaSlice(t, []float64{0.03, 1, 0.06}, got, 1e-12)
	assert.Empty(t, Bonferroni(nil))
}

func TestPooledPairwiseT(t *testing.T) {
	res, err := PooledPairwiseT(evenGroups)
	require.NoError(t, err)
	require.Len(t, res, 3)

	first := res[0]
	assert.Equal(t, 0, first.I)
	assert.Equal(t, 1, first.J)
	assert.Equal(t, 6.0, first.DF)
	assert.InDelta(t, -3/math.Sqrt(2.0/3), first.T, 1e-9)
	assert.InDelta(t, math.Min(1, first.P*3), first.Adjusted, 1e-12)

	// Groups 0 and 2 are further apart than 0 and 1.
	assert.Less(t, res[1].P, res[0].P)
}

func TestWelchPairwiseT(t *testing.T) {
	res, err := WelchPairwiseT(evenGroups)
	require.NoError(t, err)
	require.Len(t, res, 3)
	for _, p := range res {
		assert.GreaterOrEqual(t, p.Adjusted, p.P)
		assert.LessOrEqual(t, p.Adjusted, 1.0)
	}
	// Equal sizes and variances: Welch df is 2(n-1).
	assert.InDelta(t, 4.0, res[0].DF, 1e-9)
	assert.InDelta(t, -3/math.Sqrt(2.0/3), res[0].T, 1e-9)
}

func TestPairwise_TooSmall(t *testing.T) {
	_, err := WelchPairwiseT([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrTooFewObservations)

	_, err = PooledPairwiseT([][]float64{{1}, {3}})
	assert.ErrorIs(t, err, ErrTooFewObservations)
}
