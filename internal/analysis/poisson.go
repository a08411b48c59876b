package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/stats"
)

// Cell is the number of quakes sharing one combination of the four
// categorical predictors.
type Cell struct {
	TimeOfDay         domain.TimeOfDay         `json:"time_of_day"`
	InRingOfFire      bool                     `json:"in_ring_of_fire"`
	DepthCategory     domain.DepthCategory     `json:"depth_category"`
	MagnitudeCategory domain.MagnitudeCategory `json:"magnitude_category"`
	Count             int                      `json:"count"`
}

type cellKey struct {
	tod  domain.TimeOfDay
	ring bool
	dep  domain.DepthCategory
	mag  domain.MagnitudeCategory
}

// AggregateCells counts quakes per observed predictor combination. Cells are
// ordered Day before Night, outside the Ring of Fire before inside, then by
// depth and magnitude category order.
func AggregateCells(ds domain.Dataset) []Cell {
	counts := make(map[cellKey]int)
	for _, q := range ds {
		counts[cellKey{q.TimeOfDay, q.InRingOfFire, q.DepthCategory, q.MagnitudeCategory}]++
	}
	cells := make([]Cell, 0, len(counts))
	for k, n := range counts {
		cells = append(cells, Cell{
			TimeOfDay:         k.tod,
			InRingOfFire:      k.ring,
			DepthCategory:     k.dep,
			MagnitudeCategory: k.mag,
			Count:             n,
		})
	}
	sort.Slice(cells, func(i, j int) bool { return cellRank(cells[i]) < cellRank(cells[j]) })
	return cells
}

func cellRank(c Cell) int {
	r := 0
	if c.TimeOfDay == domain.Night {
		r += 18
	}
	if c.InRingOfFire {
		r += 9
	}
	r += 3 * indexOf(domain.DepthCategories, c.DepthCategory)
	r += indexOf(domain.MagnitudeCategories, c.MagnitudeCategory)
	return r
}

func indexOf[T comparable](xs []T, v T) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return len(xs)
}

// predictor is one dummy column of the count model.
type predictor struct {
	name  string
	level func(Cell) bool
}

// Baselines are Day, outside the Ring of Fire, Deep and Major.
var predictors = []predictor{
	{"time_of_day:Night", func(c Cell) bool { return c.TimeOfDay == domain.Night }},
	{"ring_of_fire:TRUE", func(c Cell) bool { return c.InRingOfFire }},
	{"depth:Shallow", func(c Cell) bool { return c.DepthCategory == domain.Shallow }},
	{"depth:Intermediate", func(c Cell) bool { return c.DepthCategory == domain.Intermediate }},
	{"magnitude:Minor", func(c Cell) bool { return c.MagnitudeCategory == domain.Minor }},
	{"magnitude:Moderate", func(c Cell) bool { return c.MagnitudeCategory == domain.Moderate }},
}

// factorLevels lists every level of every factor; each must appear in at
// least one cell for the model to be identifiable.
var factorLevels = []predictor{
	{"Day", func(c Cell) bool { return c.TimeOfDay == domain.Day }},
	{"Night", func(c Cell) bool { return c.TimeOfDay == domain.Night }},
	{"Ring of Fire", func(c Cell) bool { return c.InRingOfFire }},
	{"Elsewhere", func(c Cell) bool { return !c.InRingOfFire }},
	{"Shallow", func(c Cell) bool { return c.DepthCategory == domain.Shallow }},
	{"Intermediate", func(c Cell) bool { return c.DepthCategory == domain.Intermediate }},
	{"Deep", func(c Cell) bool { return c.DepthCategory == domain.Deep }},
	{"Minor", func(c Cell) bool { return c.MagnitudeCategory == domain.Minor }},
	{"Moderate", func(c Cell) bool { return c.MagnitudeCategory == domain.Moderate }},
	{"Major", func(c Cell) bool { return c.MagnitudeCategory == domain.Major }},
}

// CellDiagnostic pairs a cell with its residual diagnostics.
type CellDiagnostic struct {
	Cell
	stats.Residual
}

// CountModelResult is the Poisson regression of cell counts on the four
// categorical predictors.
type CountModelResult struct {
	Cells []Cell `json:"cells"`

	// Dispersion is the index-of-dispersion test on the raw cell counts;
	// PoissonAppropriate is false when it rejects equidispersion.
	Dispersion         stats.ChiSquareTest `json:"dispersion"`
	PoissonAppropriate bool                `json:"poisson_appropriate"`

	Coefficients   []stats.Coefficient   `json:"coefficients"`
	Deviance       float64               `json:"deviance"`
	NullDeviance   float64               `json:"null_deviance"`
	ResidualDF     int                   `json:"residual_df"`
	NullDF         int                   `json:"null_df"`
	AIC            float64               `json:"aic"`
	GoodnessOfFitP float64               `json:"goodness_of_fit_p"`
	Converged      bool                  `json:"converged"`
	Iterations     int                   `json:"iterations"`
	Overdispersion *stats.DispersionTest `json:"overdispersion,omitempty"`
	Diagnostics    []CellDiagnostic      `json:"diagnostics"`

	Alpha       float64 `json:"alpha"`
	Assumptions []Check `json:"assumptions"`
	Valid       bool    `json:"valid"`
}

// EarthquakeCountModel fits count ~ time_of_day + ring_of_fire + depth +
// magnitude over the aggregated cells with a log link. Every factor level
// must be observed and there must be more cells than parameters.
func EarthquakeCountModel(ds domain.Dataset, alpha float64) (*CountModelResult, error) {
	cells := AggregateCells(ds)
	params := len(predictors) + 1
	if len(cells) <= params {
		return nil, &InsufficientDataError{
			Test: TestQuakeCounts,
			Err:  fmt.Errorf("%d cells for %d parameters: %w", len(cells), params, stats.ErrTooFewObservations),
		}
	}
	for _, lvl := range factorLevels {
		if !anyCell(cells, lvl.level) {
			return nil, &InsufficientDataError{Test: TestQuakeCounts, Group: lvl.name, Err: stats.ErrTooFewObservations}
		}
	}

	y := make([]float64, len(cells))
	x := make([][]float64, len(cells))
	for i, c := range cells {
		y[i] = float64(c.Count)
		row := make([]float64, params)
		row[0] = 1
		for j, p := range predictors {
			if p.level(c) {
				row[j+1] = 1
			}
		}
		x[i] = row
	}
	names := []string{"(Intercept)"}
	for _, p := range predictors {
		names = append(names, p.name)
	}

	r := &CountModelResult{Cells: cells, Alpha: alpha}
	var err error
	if r.Dispersion, err = stats.IndexOfDispersion(y); err != nil {
		return nil, &InsufficientDataError{Test: TestQuakeCounts, Err: err}
	}
	r.PoissonAppropriate = r.Dispersion.P >= alpha

	fit, err := stats.FitPoisson(x, y, names)
	if err != nil {
		if errors.Is(err, stats.ErrSingular) || errors.Is(err, stats.ErrTooFewObservations) {
			return nil, &InsufficientDataError{Test: TestQuakeCounts, Err: err}
		}
		return nil, fmt.Errorf("fit count model: %w", err)
	}
	r.Coefficients = fit.Coefficients
	r.Deviance = fit.Deviance
	r.NullDeviance = fit.NullDeviance
	r.ResidualDF = fit.ResidualDF
	r.NullDF = fit.NullDF
	r.AIC = fit.AIC
	r.GoodnessOfFitP = fit.GoodnessOfFitP()
	r.Converged = fit.Converged
	r.Iterations = fit.Iterations

	for i, res := range fit.Residuals(y) {
		r.Diagnostics = append(r.Diagnostics, CellDiagnostic{Cell: cells[i], Residual: res})
	}

	r.Assumptions = []Check{
		assumedIndependent(),
		pValueCheck("equidispersion", "index of dispersion", r.Dispersion.P, alpha),
		pValueCheck("goodness_of_fit", "residual deviance chi-square", r.GoodnessOfFitP, alpha),
		{Name: "converged", Satisfied: fit.Converged, Detail: fmt.Sprintf("%d IRLS iterations", fit.Iterations)},
	}
	if ct, err := stats.CameronTrivedi(y, fit.Fitted); err == nil {
		r.Overdispersion = &ct
		c := pValueCheck("no_overdispersion", "Cameron-Trivedi", ct.P, alpha)
		c.Detail += fmt.Sprintf(", dispersion=%.3g", ct.Dispersion)
		r.Assumptions = append(r.Assumptions, c)
	}

	r.Valid = allSatisfied(r.Assumptions)
	return r, nil
}

func anyCell(cells []Cell, match func(Cell) bool) bool {
	for _, c := range cells {
		if match(c) {
			return true
		}
	}
	return false
}
