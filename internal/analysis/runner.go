package analysis

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

// Outcome of one test in a run.
const (
	OutcomeValid        = "valid"
	OutcomeInvalid      = "invalid"
	OutcomeInsufficient = "insufficient_data"
)

// Skipped records a test that could not be computed.
type Skipped struct {
	Test   string `json:"test"`
	Group  string `json:"group,omitempty"`
	Reason string `json:"reason"`
}

// Results gathers the summary and every hypothesis test of one run. A test
// that was skipped has a nil result and an entry in Skipped.
type Results struct {
	Summary      Summary           `json:"summary"`
	TimeOfDay    *ProportionResult `json:"time_of_day_proportions,omitempty"`
	ShallowDepth *ANOVAResult      `json:"shallow_depth_by_magnitude,omitempty"`
	QuakeCounts  *CountModelResult `json:"earthquake_count_model,omitempty"`
	Skipped      []Skipped         `json:"skipped,omitempty"`
}

// Verdict is the one-line outcome of a test.
type Verdict struct {
	Test    string
	Outcome string
	Reject  bool
	Failed  []string
}

// Verdicts lists every test's outcome in a fixed order.
func (r *Results) Verdicts() []Verdict {
	out := []Verdict{{Test: TestTimeOfDay}, {Test: TestShallowDepth}, {Test: TestQuakeCounts}}
	if p := r.TimeOfDay; p != nil {
		out[0] = verdict(TestTimeOfDay, p.Valid, p.Reject, p.Assumptions)
	}
	if a := r.ShallowDepth; a != nil {
		out[1] = verdict(TestShallowDepth, a.Valid, a.Classic.P < a.Alpha, a.Assumptions)
	}
	if c := r.QuakeCounts; c != nil {
		out[2] = verdict(TestQuakeCounts, c.Valid, c.GoodnessOfFitP < c.Alpha, c.Assumptions)
	}
	for i := range out {
		if out[i].Outcome == "" {
			out[i].Outcome = OutcomeInsufficient
		}
	}
	return out
}

func verdict(test string, valid, reject bool, checks []Check) Verdict {
	v := Verdict{Test: test, Outcome: OutcomeValid, Reject: reject, Failed: Failed(checks)}
	if !valid {
		v.Outcome = OutcomeInvalid
	}
	return v
}

// RunAll computes the summary and the three tests concurrently over ds,
// which must not be modified while RunAll runs. An InsufficientDataError is
// recorded in Skipped and does not stop the other tests; any other error
// cancels the run.
func RunAll(ctx context.Context, ds domain.Dataset, alpha float64) (*Results, error) {
	res := &Results{}
	var mu sync.Mutex
	skip := func(err error) error {
		var ide *InsufficientDataError
		if !errors.As(err, &ide) {
			return err
		}
		mu.Lock()
		res.Skipped = append(res.Skipped, Skipped{Test: ide.Test, Group: ide.Group, Reason: ide.Err.Error()})
		mu.Unlock()
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Summary = Summarize(ds)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := TimeOfDayProportions(ds, alpha)
		if err != nil {
			return skip(err)
		}
		res.TimeOfDay = r
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := ShallowDepthByMagnitude(ds, alpha)
		if err != nil {
			return skip(err)
		}
		res.ShallowDepth = r
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := EarthquakeCountModel(ds, alpha)
		if err != nil {
			return skip(err)
		}
		res.QuakeCounts = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(res.Skipped, func(i, j int) bool {
		return testOrder[res.Skipped[i].Test] < testOrder[res.Skipped[j].Test]
	})
	return res, nil
}

var testOrder = map[string]int{TestTimeOfDay: 0, TestShallowDepth: 1, TestQuakeCounts: 2}
