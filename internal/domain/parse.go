package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when parsing the catalog time column.
// ComCat exports use RFC 3339 with milliseconds; older extracts drop the T.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseRawRecord converts the raw string columns into a Quake with only the
// source fields populated. Derived fields are filled in by Deriver.
func ParseRawRecord(raw RawRecord) (Quake, error) {
	t, err := parseTime(raw.Line, raw.Time)
	if err != nil {
		return Quake{}, err
	}
	mag, err := parseFloatField(raw.Line, "mag", raw.Magnitude)
	if err != nil {
		return Quake{}, err
	}
	depth, err := parseFloatField(raw.Line, "depth", raw.Depth)
	if err != nil {
		return Quake{}, err
	}
	lat, err := parseFloatField(raw.Line, "latitude", raw.Latitude)
	if err != nil {
		return Quake{}, err
	}
	lon, err := parseFloatField(raw.Line, "longitude", raw.Longitude)
	if err != nil {
		return Quake{}, err
	}
	if lat < -90 || lat > 90 {
		return Quake{}, &DerivationError{Line: raw.Line, Field: "latitude", Reason: DropInvalidField,
			Err: fmt.Errorf("%g out of range", lat)}
	}
	if lon < -180 || lon > 180 {
		return Quake{}, &DerivationError{Line: raw.Line, Field: "longitude", Reason: DropInvalidField,
			Err: fmt.Errorf("%g out of range", lon)}
	}
	place := strings.TrimSpace(raw.Place)
	if isMissing(place) {
		return Quake{}, &DerivationError{Line: raw.Line, Field: "place", Reason: DropMissingField}
	}

	return Quake{
		Time:      t,
		Magnitude: mag,
		Depth:     depth,
		Place:     place,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// isMissing reports whether a CSV cell holds no value. The loader reads
// every column as text, so R and pandas style NA markers show up verbatim.
func isMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "<nil>":
		return true
	}
	return false
}

func parseFloatField(line int, field, s string) (float64, error) {
	if isMissing(s) {
		return 0, &DerivationError{Line: line, Field: field, Reason: DropMissingField}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &DerivationError{Line: line, Field: field, Reason: DropInvalidField, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DerivationError{Line: line, Field: field, Reason: DropInvalidField,
			Err: fmt.Errorf("non-finite value %q", s)}
	}
	return v, nil
}

func parseTime(line int, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return time.Time{}, &DerivationError{Line: line, Field: "time", Reason: DropMissingField}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &DerivationError{Line: line, Field: "time", Reason: DropInvalidField,
		Err: fmt.Errorf("unrecognized timestamp %q", s)}
}
