package analysis

import "fmt"

// Test names used in results, errors, logs and metrics.
const (
	TestTimeOfDay    = "time_of_day_proportions"
	TestShallowDepth = "shallow_depth_by_magnitude"
	TestQuakeCounts  = "earthquake_count_model"
)

// InsufficientDataError reports that a test is undefined for the data, for
// example because a group it compares is empty. Group is empty when the
// problem is not specific to one group.
type InsufficientDataError struct {
	Test  string
	Group string
	Err   error
}

func (e *InsufficientDataError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("%s: insufficient data in group %s: %v", e.Test, e.Group, e.Err)
	}
	return fmt.Sprintf("%s: insufficient data: %v", e.Test, e.Err)
}

func (e *InsufficientDataError) Unwrap() error { return e.Err }
