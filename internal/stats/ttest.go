package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PairTest is one two-sample comparison between groups I and J.
type PairTest struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	T        float64 `json:"t"`
	DF       float64 `json:"df"`
	P        float64 `json:"p_value"`
	Adjusted float64 `json:"p_adjusted"`
}

// Pairs returns every (i, j) with i < j for k groups, in lexical order.
func Pairs(k int) [][2]int {
	var out [][2]int
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// PooledPairwiseT runs two-sided t-tests between every pair of groups using
// the standard deviation pooled over all groups, as R's pairwise.t.test does
// by default. P-values are Bonferroni adjusted.
func PooledPairwiseT(groups [][]float64) ([]PairTest, error) {
	if err := checkGroups(groups, 1); err != nil {
		return nil, err
	}

	var ssw, n float64
	means := make([]float64, len(groups))
	for i, g := range groups {
		means[i] = stat.Mean(g, nil)
		for _, x := range g {
			ssw += (x - means[i]) * (x - means[i])
		}
		n += float64(len(g))
	}
	df := n - float64(len(groups))
	if df <= 0 {
		return nil, fmt.Errorf("no residual degrees of freedom: %w", ErrTooFewObservations)
	}
	pooledVar := ssw / df
	if pooledVar == 0 {
		return nil, fmt.Errorf("pooled variance: %w", ErrZeroVariance)
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	var out []PairTest
	for _, p := range Pairs(len(groups)) {
		i, j := p[0], p[1]
		se := math.Sqrt(pooledVar * (1/float64(len(groups[i])) + 1/float64(len(groups[j]))))
		t := (means[i] - means[j]) / se
		out = append(out, PairTest{I: i, J: j, T: t, DF: df, P: 2 * dist.Survival(math.Abs(t))})
	}
	adjustPairs(out)
	return out, nil
}

// WelchPairwiseT runs unpooled two-sided Welch t-tests between every pair of
// groups. P-values are Bonferroni adjusted. A pair of constant groups
// yields ErrZeroVariance.
func WelchPairwiseT(groups [][]float64) ([]PairTest, error) {
	if err := checkGroups(groups, 2); err != nil {
		return nil, err
	}

	var out []PairTest
	for _, p := range Pairs(len(groups)) {
		i, j := p[0], p[1]
		res, err := stats.TwoSampleWelchTTest(
			stats.Sample{Xs: groups[i]}, stats.Sample{Xs: groups[j]}, stats.LocationDiffers)
		if errors.Is(err, stats.ErrZeroVariance) {
			err = ErrZeroVariance
		}
		if err != nil {
			return nil, fmt.Errorf("groups %d and %d: %w", i, j, err)
		}
		out = append(out, PairTest{I: i, J: j, T: res.T, DF: res.DoF, P: res.P})
	}
	adjustPairs(out)
	return out, nil
}

func adjustPairs(tests []PairTest) {
	ps := make([]float64, len(tests))
	for i, t := range tests {
		ps[i] = t.P
	}
	for i, adj := range Bonferroni(ps) {
		tests[i].Adjusted = adj
	}
}

// Bonferroni multiplies each p-value by the number of comparisons, capping
// the result at 1.
func Bonferroni(ps []float64) []float64 {
	m := float64(len(ps))
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = math.Min(1, p*m)
	}
	return out
}
