package domain

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// meanSolarEphemeris puts sunrise at 06:00 and sunset at 18:00 local mean
// solar time (UTC shifted by lon/15 hours).
type meanSolarEphemeris struct {
	calls int
}

func (e *meanSolarEphemeris) SunEvents(_, lon float64, date time.Time) (SunEvents, error) {
	e.calls++
	shift := time.Duration(lon / 15 * float64(time.Hour))
	return SunEvents{
		Sunrise: date.Add(6*time.Hour - shift),
		Sunset:  date.Add(18*time.Hour - shift),
	}, nil
}

type failingEphemeris struct {
	err error
}

func (e failingEphemeris) SunEvents(_, _ float64, _ time.Time) (SunEvents, error) {
	return SunEvents{}, e.err
}

var errEphemerisDown = errors.New("ephemeris unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
