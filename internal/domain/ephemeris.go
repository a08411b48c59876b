package domain

import "time"

// SunEvents holds sunrise and sunset instants in UTC.
type SunEvents struct {
	Sunrise time.Time
	Sunset  time.Time
}

// Ephemeris computes sunrise and sunset at a coordinate.
type Ephemeris interface {
	// SunEvents returns the sunrise and sunset the underlying calculator
	// associates with the UTC calendar date of date. It returns an error
	// wrapping ErrNoSunEvent when the sun stays above or below the horizon.
	SunEvents(lat, lon float64, date time.Time) (SunEvents, error)
}
