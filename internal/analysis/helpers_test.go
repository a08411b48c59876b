package analysis

import (
	"time"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

func quake(tod domain.TimeOfDay, ring bool, dep domain.DepthCategory, mag domain.MagnitudeCategory) domain.Quake {
	q := domain.Quake{
		Time:              time.Date(2011, 3, 11, 5, 46, 24, 0, time.UTC),
		Place:             "somewhere",
		Location:          "Japan",
		InRingOfFire:      ring,
		TimeOfDay:         tod,
		DepthCategory:     dep,
		MagnitudeCategory: mag,
	}
	switch dep {
	case domain.Shallow:
		q.Depth = 10
	case domain.Intermediate:
		q.Depth = 150
	case domain.Deep:
		q.Depth = 500
	}
	switch mag {
	case domain.Minor:
		q.Magnitude = 3
	case domain.Moderate:
		q.Magnitude = 5
	case domain.Major:
		q.Magnitude = 8
	}
	return q
}

func repeat(q domain.Quake, n int) domain.Dataset {
	out := make(domain.Dataset, n)
	for i := range out {
		out[i] = q
	}
	return out
}

// shallowDataset returns ten shallow quakes per magnitude category with
// depths spread differently in each group.
func shallowDataset() domain.Dataset {
	var ds domain.Dataset
	for i := 0; i < 10; i++ {
		minor := quake(domain.Day, true, domain.Shallow, domain.Minor)
		minor.Depth = 5 + float64(i)
		moderate := quake(domain.Night, true, domain.Shallow, domain.Moderate)
		moderate.Depth = 20 + 1.5*float64(i)
		major := quake(domain.Night, false, domain.Shallow, domain.Major)
		major.Depth = 30 + 2*float64((i*7)%10)
		ds = append(ds, minor, moderate, major)
	}
	return ds
}

// factorialDataset returns a dataset whose cell counts follow an exact
// multiplicative model over every predictor level.
func factorialDataset() domain.Dataset {
	todF := map[domain.TimeOfDay]int{domain.Day: 1, domain.Night: 2}
	ringF := map[bool]int{false: 1, true: 3}
	depF := map[domain.DepthCategory]int{domain.Deep: 1, domain.Intermediate: 2, domain.Shallow: 4}
	magF := map[domain.MagnitudeCategory]int{domain.Major: 1, domain.Moderate: 5, domain.Minor: 10}

	var ds domain.Dataset
	for tod, a := range todF {
		for ring, b := range ringF {
			for dep, c := range depF {
				for mag, d := range magF {
					ds = append(ds, repeat(quake(tod, ring, dep, mag), a*b*c*d)...)
				}
			}
		}
	}
	return ds
}
