package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// horizonElevation is the apparent solar elevation at sunrise and sunset in
// degrees: the solar radius plus standard atmospheric refraction.
const horizonElevation = -0.833

// ClassifyTimeOfDay reports Day when t lies in the closed interval between a
// sunrise and the sunset that follows it, and Night otherwise.
//
// Sun events are requested for the UTC dates before, of and after t because
// the calculator's notion of "the date" is UTC while daylight follows local
// solar time. When any of those dates has no sunrise or sunset, the sun's
// elevation at t decides.
func ClassifyTimeOfDay(eph Ephemeris, lat, lon float64, t time.Time) (TimeOfDay, error) {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	var sunrises, sunsets []time.Time
	for offset := -1; offset <= 1; offset++ {
		ev, err := eph.SunEvents(lat, lon, day.AddDate(0, 0, offset))
		if errors.Is(err, ErrNoSunEvent) {
			return classifyByElevation(lat, lon, t), nil
		}
		if err != nil {
			return "", fmt.Errorf("sun events for %s: %w", day.AddDate(0, 0, offset).Format(time.DateOnly), err)
		}
		sunrises = append(sunrises, ev.Sunrise)
		sunsets = append(sunsets, ev.Sunset)
	}

	var rise time.Time
	for _, r := range sunrises {
		if !r.After(t) && r.After(rise) {
			rise = r
		}
	}
	if rise.IsZero() {
		return classifyByElevation(lat, lon, t), nil
	}

	var set time.Time
	for _, s := range sunsets {
		if s.After(rise) && (set.IsZero() || s.Before(set)) {
			set = s
		}
	}
	if set.IsZero() {
		return classifyByElevation(lat, lon, t), nil
	}

	if !t.After(set) {
		return Day, nil
	}
	return Night, nil
}

func classifyByElevation(lat, lon float64, t time.Time) TimeOfDay {
	if SolarElevation(lat, lon, t) > horizonElevation {
		return Day
	}
	return Night
}

// SolarElevation returns the geometric elevation of the sun in degrees at
// the given coordinate and instant, using the low-precision almanac formulas
// (accurate to about 0.01 degrees between 1950 and 2050).
func SolarElevation(lat, lon float64, t time.Time) float64 {
	const deg = math.Pi / 180

	// Days since J2000.0.
	n := float64(t.UTC().UnixNano())/float64(24*time.Hour) + 2440587.5 - 2451545.0

	meanLon := math.Mod(280.460+0.9856474*n, 360)
	meanAnomaly := math.Mod(357.528+0.9856003*n, 360) * deg
	eclipticLon := (meanLon + 1.915*math.Sin(meanAnomaly) + 0.020*math.Sin(2*meanAnomaly)) * deg
	obliquity := (23.439 - 0.0000004*n) * deg

	declination := math.Asin(math.Sin(obliquity) * math.Sin(eclipticLon))
	rightAscension := math.Atan2(math.Cos(obliquity)*math.Sin(eclipticLon), math.Cos(eclipticLon))

	gmst := math.Mod(280.46061837+360.98564736629*n, 360) * deg
	hourAngle := gmst + lon*deg - rightAscension

	phi := lat * deg
	sinElev := math.Sin(phi)*math.Sin(declination) + math.Cos(phi)*math.Cos(declination)*math.Cos(hourAngle)
	return math.Asin(math.Max(-1, math.Min(1, sinElev))) / deg
}
