package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// IndexOfDispersion tests whether counts are more variable than a Poisson
// sample with a common mean: sum((y - mean)^2) / mean against a chi-square
// with n-1 degrees of freedom, upper tail.
func IndexOfDispersion(counts []float64) (ChiSquareTest, error) {
	if len(counts) < 2 {
		return ChiSquareTest{}, fmt.Errorf("%d counts: %w", len(counts), ErrTooFewObservations)
	}
	mean := stat.Mean(counts, nil)
	if mean == 0 {
		return ChiSquareTest{}, fmt.Errorf("all counts are zero: %w", ErrZeroVariance)
	}
	var ss float64
	for _, y := range counts {
		ss += (y - mean) * (y - mean)
	}
	return chiSquareTest(ss/mean, float64(len(counts)-1)), nil
}

// DispersionTest is the Cameron and Trivedi regression-based test for
// overdispersion in a fitted Poisson model.
type DispersionTest struct {
	Z          float64 `json:"z"`
	P          float64 `json:"p_value"`
	Dispersion float64 `json:"dispersion"`
}

// CameronTrivedi tests H0: Var(y) = mu against Var(y) = mu * (1 + alpha)
// with alpha > 0, given observed counts and fitted means.
func CameronTrivedi(y, mu []float64) (DispersionTest, error) {
	if len(y) != len(mu) {
		return DispersionTest{}, fmt.Errorf("length mismatch: %d counts, %d fitted", len(y), len(mu))
	}
	if len(y) < 2 {
		return DispersionTest{}, ErrTooFewObservations
	}
	aux := make([]float64, len(y))
	for i := range y {
		aux[i] = ((y[i]-mu[i])*(y[i]-mu[i]) - y[i]) / mu[i]
	}
	mean, sd := stat.MeanStdDev(aux, nil)
	if sd == 0 {
		return DispersionTest{}, ErrZeroVariance
	}
	z := math.Sqrt(float64(len(aux))) * mean / sd
	return DispersionTest{
		Z:          z,
		P:          distuv.UnitNormal.Survival(z),
		Dispersion: mean + 1,
	}, nil
}
