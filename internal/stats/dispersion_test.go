package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOfDispersion(t *testing.T) {
	res, err := IndexOfDispersion([]float64{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Statistic, 1e-12)
	assert.Equal(t, 2.0, res.DF)
	// Chi-square with two degrees of freedom has survival exp(-x/2).
	assert.InDelta(t, math.Exp(-1), res.P, 1e-9)
}

func TestIndexOfDispersion_Overdispersed(t *testing.T) {
	res, err := IndexOfDispersion([]float64{0, 0, 1, 50, 2, 0, 80, 1})
	require.NoError(t, err)
	assert.Less(t, res.P, 0.001)
}

func TestIndexOfDispersion_Errors(t *testing.T) {
	_, err := IndexOfDispersion([]float64{3})
	assert.ErrorIs(t, err, ErrTooFewObservations)

	_, err = IndexOfDispersion([]float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestCameronTrivedi(t *testing.T) {
	t.Run("overdispersed", func(t *testing.T) {
		y := []float64{0, 30, 1, 25, 0, 40, 2, 35}
		mu := []float64{16.6, 16.6, 16.6, 16.6, 16.6, 16.6, 16.6, 16.6}
		res, err := CameronTrivedi(y, mu)
		require.NoError(t, err)
		assert.Greater(t, res.Z, 0.0)
		assert.Greater(t, res.Dispersion, 1.0)
		assert.Less(t, res.P, 0.05)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := CameronTrivedi([]float64{1, 2}, []float64{1})
		require.Error(t, err)
	})

	t.Run("too few", func(t *testing.T) {
		_, err := CameronTrivedi([]float64{1}, []float64{1})
		assert.ErrorIs(t, err, ErrTooFewObservations)
	})
}
