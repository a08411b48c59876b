package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinNormalityN is the smallest sample JarqueBera will assess.
const MinNormalityN = 8

// ChiSquareTest is the outcome of a chi-square distributed statistic.
type ChiSquareTest struct {
	Statistic float64 `json:"statistic"`
	DF        float64 `json:"df"`
	P         float64 `json:"p_value"`
}

func chiSquareTest(x, df float64) ChiSquareTest {
	return ChiSquareTest{Statistic: x, DF: df, P: distuv.ChiSquared{K: df}.Survival(x)}
}

// JarqueBera tests the null hypothesis that xs is normally distributed. The
// statistic uses the uncorrected moment ratios b1 = m3/m2^1.5 and
// b2 = m4/m2^2, as R's tseries::jarque.bera.test does.
func JarqueBera(xs []float64) (ChiSquareTest, error) {
	if len(xs) < MinNormalityN {
		return ChiSquareTest{}, fmt.Errorf("%d observations, need %d: %w", len(xs), MinNormalityN, ErrTooFewObservations)
	}
	if stat.Variance(xs, nil) == 0 {
		return ChiSquareTest{}, ErrZeroVariance
	}
	n := float64(len(xs))
	m2 := stat.Moment(2, xs, nil)
	s := stat.Moment(3, xs, nil) / math.Pow(m2, 1.5)
	k := stat.Moment(4, xs, nil)/(m2*m2) - 3
	return chiSquareTest(n/6*(s*s+k*k/4), 2), nil
}

// QQPoint pairs a theoretical standard normal quantile with an observed value.
type QQPoint struct {
	Theoretical float64 `json:"theoretical"`
	Sample      float64 `json:"sample"`
}

// NormalQQ returns the points of a normal Q-Q plot of xs: sorted values
// against standard normal quantiles at R's ppoints positions.
func NormalQQ(xs []float64) []QQPoint {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	q := NormalScores(len(sorted))
	out := make([]QQPoint, len(sorted))
	for i, x := range sorted {
		out[i] = QQPoint{Theoretical: q[i], Sample: x}
	}
	return out
}

// NormalScores returns n standard normal quantiles at the plotting positions
// (i - a) / (n + 1 - 2a), with a = 3/8 for n <= 10 and 1/2 otherwise.
func NormalScores(n int) []float64 {
	a := 0.5
	if n <= 10 {
		a = 3.0 / 8
	}
	out := make([]float64, n)
	for i := range out {
		p := (float64(i+1) - a) / (float64(n) + 1 - 2*a)
		out[i] = distuv.UnitNormal.Quantile(p)
	}
	return out
}

// TwoSidedNormalP returns P(|Z| >= |z|) for a standard normal Z.
func TwoSidedNormalP(z float64) float64 {
	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}
