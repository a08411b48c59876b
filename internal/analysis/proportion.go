package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/stats"
)

// minSuccessFailure is the smallest group count for the normal
// approximation to a proportion.
const minSuccessFailure = 10

var errDegenerateSE = errors.New("standard error is zero")

// ProportionResult is the two-proportion z-test comparing the share of
// quakes at night with the share during the day.
type ProportionResult struct {
	Night      int     `json:"n_night"`
	Day        int     `json:"n_day"`
	Total      int     `json:"n_total"`
	NightShare float64 `json:"night_share"`
	DayShare   float64 `json:"day_share"`
	Difference float64 `json:"difference"`
	StdErr     float64 `json:"std_error"`
	CILower    float64 `json:"ci_lower"`
	CIUpper    float64 `json:"ci_upper"`
	Z          float64 `json:"z"`
	P          float64 `json:"p_value"`
	Alpha      float64 `json:"alpha"`
	Reject     bool    `json:"reject_null"`

	// SimplifiedSE marks that the difference itself stands in for the
	// pooled proportion in the standard error.
	SimplifiedSE bool `json:"simplified_se"`

	Assumptions []Check `json:"assumptions"`
	Valid       bool    `json:"valid"`
}

// TimeOfDayProportions tests H0: the night and day shares of quakes are
// equal. With d = night/N - day/N, SE = sqrt(d(1-d)/n_night + d(1-d)/n_day)
// and the confidence interval is d ± z(1-alpha/2)·SE. H0 is rejected when the
// interval excludes zero and p < alpha.
func TimeOfDayProportions(ds domain.Dataset, alpha float64) (*ProportionResult, error) {
	r := &ProportionResult{Alpha: alpha, SimplifiedSE: true}
	for _, q := range ds {
		switch q.TimeOfDay {
		case domain.Night:
			r.Night++
		case domain.Day:
			r.Day++
		}
	}
	if r.Night == 0 {
		return nil, &InsufficientDataError{Test: TestTimeOfDay, Group: string(domain.Night), Err: stats.ErrTooFewObservations}
	}
	if r.Day == 0 {
		return nil, &InsufficientDataError{Test: TestTimeOfDay, Group: string(domain.Day), Err: stats.ErrTooFewObservations}
	}

	r.Total = r.Night + r.Day
	n := float64(r.Total)
	r.NightShare = float64(r.Night) / n
	r.DayShare = float64(r.Day) / n
	r.Difference = r.NightShare - r.DayShare

	// The rate is taken as |d| so the statistic is symmetric when day
	// outnumbers night.
	rate := math.Abs(r.Difference)
	r.StdErr = math.Sqrt(rate*(1-rate)/float64(r.Night) + rate*(1-rate)/float64(r.Day))
	if r.StdErr == 0 || math.IsNaN(r.StdErr) {
		return nil, &InsufficientDataError{Test: TestTimeOfDay, Err: errDegenerateSE}
	}

	crit := distuv.UnitNormal.Quantile(1 - alpha/2)
	r.CILower = r.Difference - crit*r.StdErr
	r.CIUpper = r.Difference + crit*r.StdErr
	r.Z = r.Difference / r.StdErr
	r.P = stats.TwoSidedNormalP(r.Z)
	r.Reject = (r.CILower > 0 || r.CIUpper < 0) && r.P < alpha

	r.Assumptions = []Check{
		assumedIndependent(),
		{
			Name:      "success_failure",
			Satisfied: r.Night >= minSuccessFailure && r.Day >= minSuccessFailure,
			Detail:    fmt.Sprintf("n_night=%d, n_day=%d, need >= %d each", r.Night, r.Day, minSuccessFailure),
		},
	}
	r.Valid = allSatisfied(r.Assumptions)
	return r, nil
}
