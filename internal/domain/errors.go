package domain

import (
	"errors"
	"fmt"
)

// ErrNoSunEvent is returned by an Ephemeris when the sun does not rise or
// set at the given place and date (polar day or polar night).
var ErrNoSunEvent = errors.New("sun does not cross the horizon")

// DataSourceError reports that the input CSV could not be read. It is fatal
// for a run; no partial dataset is produced.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %q: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// DropReason classifies why a record was excluded from the dataset.
type DropReason string

const (
	DropMissingField   DropReason = "missing_field"
	DropInvalidField   DropReason = "invalid_field"
	DropUnmappedPlace  DropReason = "unmapped_location"
	DropEphemerisError DropReason = "ephemeris_error"
)

// DerivationError reports that one record could not be fully derived. The
// record is dropped and the run continues.
type DerivationError struct {
	Line   int
	Field  string
	Reason DropReason
	Err    error
}

func (e *DerivationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %s: %v", e.Line, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
}

func (e *DerivationError) Unwrap() error { return e.Err }
