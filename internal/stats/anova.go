package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FTest is the outcome of an F-distributed test statistic.
type FTest struct {
	F   float64 `json:"f"`
	DF1 float64 `json:"df1"`
	DF2 float64 `json:"df2"`
	P   float64 `json:"p_value"`
}

func fTest(f, df1, df2 float64) FTest {
	return FTest{F: f, DF1: df1, DF2: df2, P: distuv.F{D1: df1, D2: df2}.Survival(f)}
}

// checkGroups requires at least two groups of at least minN observations.
func checkGroups(groups [][]float64, minN int) error {
	if len(groups) < 2 {
		return ErrTooFewGroups
	}
	for i, g := range groups {
		if len(g) < minN {
			return fmt.Errorf("group %d has %d observations, need %d: %w", i, len(g), minN, ErrTooFewObservations)
		}
	}
	return nil
}

// OneWayANOVA performs the classic equal-variance one-way analysis of
// variance across groups.
func OneWayANOVA(groups [][]float64) (FTest, error) {
	if err := checkGroups(groups, 1); err != nil {
		return FTest{}, err
	}

	var all []float64
	for _, g := range groups {
		all = append(all, g...)
	}
	k, n := float64(len(groups)), float64(len(all))
	if n <= k {
		return FTest{}, fmt.Errorf("%d observations in %d groups: %w", len(all), len(groups), ErrTooFewObservations)
	}
	grand := stat.Mean(all, nil)

	var ssb, ssw float64
	for _, g := range groups {
		m := stat.Mean(g, nil)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, x := range g {
			ssw += (x - m) * (x - m)
		}
	}
	if ssw == 0 {
		return FTest{}, fmt.Errorf("within-group sum of squares: %w", ErrZeroVariance)
	}

	df1, df2 := k-1, n-k
	return fTest((ssb/df1)/(ssw/df2), df1, df2), nil
}

// WelchANOVA performs Welch's heteroscedastic one-way ANOVA, the test R
// runs as oneway.test(var.equal = FALSE).
func WelchANOVA(groups [][]float64) (FTest, error) {
	if err := checkGroups(groups, 2); err != nil {
		return FTest{}, err
	}

	k := float64(len(groups))
	weights := make([]float64, len(groups))
	means := make([]float64, len(groups))
	var sumW float64
	for i, g := range groups {
		v := stat.Variance(g, nil)
		if v == 0 {
			return FTest{}, fmt.Errorf("group %d: %w", i, ErrZeroVariance)
		}
		weights[i] = float64(len(g)) / v
		means[i] = stat.Mean(g, nil)
		sumW += weights[i]
	}

	var weightedMean float64
	for i := range groups {
		weightedMean += weights[i] * means[i]
	}
	weightedMean /= sumW

	var between, tmp float64
	for i, g := range groups {
		between += weights[i] * (means[i] - weightedMean) * (means[i] - weightedMean)
		r := 1 - weights[i]/sumW
		tmp += r * r / float64(len(g)-1)
	}
	tmp /= k*k - 1

	f := (between / (k - 1)) / (1 + 2*(k-2)*tmp)
	return fTest(f, k-1, 1/(3*tmp)), nil
}

// BrownForsythe tests equality of variances with Levene's test on absolute
// deviations from each group median.
func BrownForsythe(groups [][]float64) (FTest, error) {
	if err := checkGroups(groups, 2); err != nil {
		return FTest{}, err
	}
	dev := make([][]float64, len(groups))
	for i, g := range groups {
		med := median(g)
		dev[i] = make([]float64, len(g))
		for j, x := range g {
			dev[i][j] = math.Abs(x - med)
		}
	}
	return OneWayANOVA(dev)
}

// VarianceRatio returns the largest group variance divided by the smallest.
func VarianceRatio(groups [][]float64) float64 {
	lo, hi := math.Inf(1), 0.0
	for _, g := range groups {
		if len(g) < 2 {
			continue
		}
		v := stat.Variance(g, nil)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == 0 || math.IsInf(lo, 1) {
		return 0
	}
	return hi / lo
}
