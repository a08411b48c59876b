package analysis

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/stats"
)

// GroupSummary describes the shallow depths of one magnitude category.
type GroupSummary struct {
	Category domain.MagnitudeCategory `json:"category"`
	N        int                      `json:"n"`
	Mean     float64                  `json:"mean"`
	SD       float64                  `json:"sd"`
	Variance float64                  `json:"variance"`

	Normality *stats.ChiSquareTest `json:"normality,omitempty"`
	QQ        []stats.QQPoint      `json:"qq"`
}

// PairComparison is a two-sample t-test between magnitude categories A and B.
type PairComparison struct {
	A        domain.MagnitudeCategory `json:"a"`
	B        domain.MagnitudeCategory `json:"b"`
	T        float64                  `json:"t"`
	DF       float64                  `json:"df"`
	P        float64                  `json:"p_value"`
	Adjusted float64                  `json:"p_bonferroni"`
}

// ANOVAResult compares the depth of shallow quakes across magnitude
// categories.
type ANOVAResult struct {
	Groups  []GroupSummary `json:"groups"`
	Classic stats.FTest    `json:"classic"`
	// Welch and WelchPairwise are nil when a group has zero variance.
	Welch *stats.FTest `json:"welch,omitempty"`

	// Pairwise uses the standard deviation pooled over all groups;
	// WelchPairwise does not pool.
	Pairwise      []PairComparison `json:"pairwise"`
	WelchPairwise []PairComparison `json:"welch_pairwise,omitempty"`

	Homogeneity   stats.FTest `json:"brown_forsythe"`
	VarianceRatio float64     `json:"variance_ratio"`

	Alpha       float64 `json:"alpha"`
	Assumptions []Check `json:"assumptions"`
	Valid       bool    `json:"valid"`
}

// ShallowDepthByMagnitude runs classic and Welch one-way ANOVA of depth
// across Minor, Moderate and Major among Shallow quakes, followed by
// Bonferroni-adjusted pairwise t-tests. Each category needs at least two
// shallow quakes. A category with identical depths leaves the Welch tests
// out and fails the equal_variance check.
func ShallowDepthByMagnitude(ds domain.Dataset, alpha float64) (*ANOVAResult, error) {
	shallow := ds.Filter(func(q domain.Quake) bool { return q.DepthCategory == domain.Shallow })

	groups := make([][]float64, len(domain.MagnitudeCategories))
	for _, q := range shallow {
		for i, c := range domain.MagnitudeCategories {
			if q.MagnitudeCategory == c {
				groups[i] = append(groups[i], q.Depth)
			}
		}
	}
	for i, c := range domain.MagnitudeCategories {
		if len(groups[i]) < 2 {
			return nil, &InsufficientDataError{
				Test:  TestShallowDepth,
				Group: string(c),
				Err:   fmt.Errorf("%d shallow quakes: %w", len(groups[i]), stats.ErrTooFewObservations),
			}
		}
	}

	r := &ANOVAResult{Alpha: alpha}
	var err error
	if r.Classic, err = stats.OneWayANOVA(groups); err != nil {
		return nil, anovaError(err)
	}
	pooled, err := stats.PooledPairwiseT(groups)
	if err != nil {
		return nil, anovaError(err)
	}
	r.Pairwise = comparisons(pooled)

	if welch, err := stats.WelchANOVA(groups); err == nil {
		r.Welch = &welch
		pairs, err := stats.WelchPairwiseT(groups)
		if err != nil {
			return nil, anovaError(err)
		}
		r.WelchPairwise = comparisons(pairs)
	} else if !errors.Is(err, stats.ErrZeroVariance) {
		return nil, anovaError(err)
	}

	r.Assumptions = []Check{assumedIndependent()}
	for i, c := range domain.MagnitudeCategories {
		g, check := describeGroup(c, groups[i], alpha)
		r.Groups = append(r.Groups, g)
		r.Assumptions = append(r.Assumptions, check)
	}

	r.VarianceRatio = stats.VarianceRatio(groups)
	var c Check
	if r.Homogeneity, err = stats.BrownForsythe(groups); err != nil {
		c = Check{Name: "equal_variance", Detail: err.Error()}
	} else {
		c = pValueCheck("equal_variance", "Brown-Forsythe", r.Homogeneity.P, alpha)
		c.Detail += fmt.Sprintf(", max/min variance ratio=%.3g", r.VarianceRatio)
	}
	if constant := constantGroups(r.Groups); len(constant) > 0 {
		c.Satisfied = false
		c.Detail += fmt.Sprintf("; zero variance in %s, Welch tests omitted", strings.Join(constant, ", "))
	}
	r.Assumptions = append(r.Assumptions, c)

	r.Valid = allSatisfied(r.Assumptions)
	return r, nil
}

func describeGroup(c domain.MagnitudeCategory, depths []float64, alpha float64) (GroupSummary, Check) {
	g := GroupSummary{
		Category: c,
		N:        len(depths),
		Variance: stat.Variance(depths, nil),
		QQ:       stats.NormalQQ(depths),
	}
	g.Mean, g.SD = stats.MeanSD(depths)

	name := "normality:" + string(c)
	jb, err := stats.JarqueBera(depths)
	if err != nil {
		return g, Check{Name: name, Detail: fmt.Sprintf("not assessable: %v", err)}
	}
	g.Normality = &jb
	return g, pValueCheck(name, "Jarque-Bera", jb.P, alpha)
}

func constantGroups(groups []GroupSummary) []string {
	var out []string
	for _, g := range groups {
		if g.Variance == 0 {
			out = append(out, string(g.Category))
		}
	}
	return out
}

func comparisons(tests []stats.PairTest) []PairComparison {
	out := make([]PairComparison, len(tests))
	for i, t := range tests {
		out[i] = PairComparison{
			A:        domain.MagnitudeCategories[t.I],
			B:        domain.MagnitudeCategories[t.J],
			T:        t.T,
			DF:       t.DF,
			P:        t.P,
			Adjusted: t.Adjusted,
		}
	}
	return out
}

// anovaError reports numeric failures such as a group of identical depths as
// insufficient data rather than returning an undefined statistic.
func anovaError(err error) error {
	return &InsufficientDataError{Test: TestShallowDepth, Err: err}
}
