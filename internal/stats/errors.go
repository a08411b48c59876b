package stats

import "errors"

var (
	// ErrTooFewGroups is returned when a test needs at least two groups.
	ErrTooFewGroups = errors.New("at least two groups required")
	// ErrTooFewObservations is returned when a group is too small for the test.
	ErrTooFewObservations = errors.New("too few observations")
	// ErrZeroVariance is returned when a variance in a denominator is zero.
	ErrZeroVariance = errors.New("zero variance")
	// ErrSingular is returned when the GLM normal equations cannot be solved.
	ErrSingular = errors.New("design matrix is singular")
)
