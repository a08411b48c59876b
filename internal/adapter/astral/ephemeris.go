// Package astral provides the sunrise and sunset calculator used to classify
// quakes as Day or Night, backed by github.com/sj14/astral.
package astral

import (
	"fmt"
	"time"

	"github.com/sj14/astral/pkg/astral"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

// Ephemeris implements domain.Ephemeris with the astral solar calculator.
type Ephemeris struct{}

// NewEphemeris returns an astral-backed ephemeris.
func NewEphemeris() *Ephemeris {
	return &Ephemeris{}
}

// SunEvents returns the UTC sunrise and sunset astral computes for the UTC
// calendar date of date. A failed calculation, or an event that lands
// outside the days around date, means the sun does not cross the horizon.
func (e *Ephemeris) SunEvents(lat, lon float64, date time.Time) (domain.SunEvents, error) {
	date = date.UTC()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	observer := astral.Observer{Latitude: lat, Longitude: lon}

	sunrise, err := astral.Sunrise(observer, day)
	if err != nil || !plausible(sunrise, day) {
		return domain.SunEvents{}, noSunEvent("sunrise", lat, lon, day, err)
	}
	sunset, err := astral.Sunset(observer, day)
	if err != nil || !plausible(sunset, day) {
		return domain.SunEvents{}, noSunEvent("sunset", lat, lon, day, err)
	}
	return domain.SunEvents{Sunrise: sunrise.UTC(), Sunset: sunset.UTC()}, nil
}

// plausible reports whether t falls within a day either side of the UTC
// date starting at day.
func plausible(t, day time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(day.AddDate(0, 0, -1)) && t.Before(day.AddDate(0, 0, 2))
}

func noSunEvent(event string, lat, lon float64, day time.Time, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s at %.4f,%.4f on %s: %w (%v)", event, lat, lon, day.Format(time.DateOnly), domain.ErrNoSunEvent, cause)
	}
	return fmt.Errorf("%s at %.4f,%.4f on %s: %w", event, lat, lon, day.Format(time.DateOnly), domain.ErrNoSunEvent)
}
