package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPoisson_InterceptOnly(t *testing.T) {
	y := []float64{2, 4, 6}
	x := [][]float64{{1}, {1}, {1}}

	fit, err := FitPoisson(x, y, []string{"(Intercept)"})
	require.NoError(t, err)
	assert.True(t, fit.Converged)

	c := fit.Coefficients[0]
	assert.Equal(t, "(Intercept)", c.Name)
	assert.InDelta(t, math.Log(4), c.Estimate, 1e-6)
	assert.InDelta(t, math.Sqrt(1.0/12), c.StdErr, 1e-6)

	want := 2 * (2*math.Log(0.5) + 6*math.Log(1.5))
	assert.InDelta(t, want, fit.Deviance, 1e-6)
	assert.InDelta(t, fit.NullDeviance, fit.Deviance, 1e-6)
	assert.Equal(t, 2, fit.ResidualDF)
	assert.Equal(t, 2, fit.NullDF)
	for _, mu := range fit.Fitted {
		assert.InDelta(t, 4.0, mu, 1e-6)
	}
}

func TestFitPoisson_TwoGroups(t *testing.T) {
	y := []float64{10, 10, 20, 20}
	x := [][]float64{{1, 0}, {1, 0}, {1, 1}, {1, 1}}

	fit, err := FitPoisson(x, y, []string{"(Intercept)", "treated"})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(10), fit.Coefficients[0].Estimate, 1e-6)
	assert.InDelta(t, math.Log(2), fit.Coefficients[1].Estimate, 1e-6)
	assert.InDelta(t, 0, fit.Deviance, 1e-6)
	assert.Greater(t, fit.NullDeviance, fit.Deviance)
	assert.InDelta(t, 1.0, fit.GoodnessOfFitP(), 1e-6)

	var h float64
	for _, l := range fit.Leverage {
		h += l
	}
	assert.InDelta(t, 2.0, h, 1e-6, "leverages sum to the number of parameters")

	// log L = sum(y log mu - mu - log y!), AIC = -2 log L + 2p.
	var ll float64
	for i, v := range y {
		lg, _ := math.Lgamma(v + 1)
		ll += v*math.Log(fit.Fitted[i]) - fit.Fitted[i] - lg
	}
	assert.InDelta(t, -2*ll+4, fit.AIC, 1e-6)
}

func TestFitPoisson_Residuals(t *testing.T) {
	y := []float64{3, 7, 12, 2, 9, 15}
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 0}, {1, 1}, {1, 2}}

	fit, err := FitPoisson(x, y, []string{"(Intercept)", "slope"})
	require.NoError(t, err)

	res := fit.Residuals(y)
	require.Len(t, res, len(y))
	for i, r := range res {
		assert.InDelta(t, (y[i]-r.Fitted)/math.Sqrt(r.Fitted), r.Pearson, 1e-9)
		assert.Equal(t, math.Signbit(y[i]-r.Fitted), math.Signbit(r.Deviance))
		assert.GreaterOrEqual(t, r.CooksDistance, 0.0)
		assert.InDelta(t, math.Sqrt(math.Abs(r.Standardized)), r.ScaleLocation, 1e-12)
		assert.False(t, math.IsNaN(r.TheoreticalQuantile))
	}
}

func TestFitPoisson_Errors(t *testing.T) {
	_, err := FitPoisson(nil, nil, []string{"a"})
	assert.ErrorIs(t, err, ErrTooFewObservations)

	_, err = FitPoisson([][]float64{{1}}, []float64{3}, []string{"a"})
	assert.ErrorIs(t, err, ErrTooFewObservations)

	_, err = FitPoisson([][]float64{{1, 0}, {1, 0}, {1, 0}}, []float64{1, 2, 3}, []string{"a", "b"})
	assert.ErrorIs(t, err, ErrSingular)

	_, err = FitPoisson([][]float64{{1}, {1}}, []float64{1, -2}, []string{"a"})
	require.Error(t, err)
}
