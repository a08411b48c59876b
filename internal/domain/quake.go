package domain

import "time"

// RawRecord holds the six catalog columns used by the analysis, as read from
// the CSV. Line is the 1-based line number in the source file.
type RawRecord struct {
	Line      int
	Time      string
	Magnitude string
	Depth     string
	Place     string
	Latitude  string
	Longitude string
}

// TimeOfDay is Day or Night.
type TimeOfDay string

const (
	Day   TimeOfDay = "Day"
	Night TimeOfDay = "Night"
)

// MagnitudeCategory buckets magnitude into Minor, Moderate and Major.
type MagnitudeCategory string

const (
	Minor    MagnitudeCategory = "Minor"
	Moderate MagnitudeCategory = "Moderate"
	Major    MagnitudeCategory = "Major"
)

// MagnitudeCategories lists the magnitude buckets in ascending order.
var MagnitudeCategories = []MagnitudeCategory{Minor, Moderate, Major}

// DepthCategory buckets hypocentre depth into Shallow, Intermediate and Deep.
type DepthCategory string

const (
	Shallow      DepthCategory = "Shallow"
	Intermediate DepthCategory = "Intermediate"
	Deep         DepthCategory = "Deep"
)

// DepthCategories lists the depth buckets in ascending order.
var DepthCategories = []DepthCategory{Shallow, Intermediate, Deep}

// Quake is a fully derived earthquake record. It is a value type and is not
// modified after derivation.
type Quake struct {
	Time      time.Time `json:"time"`
	Magnitude float64   `json:"magnitude"`
	Depth     float64   `json:"depth_km"`
	Place     string    `json:"place"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	Location          string            `json:"location"`
	InRingOfFire      bool              `json:"in_ring_of_fire"`
	TimeOfDay         TimeOfDay         `json:"time_of_day"`
	MagnitudeCategory MagnitudeCategory `json:"magnitude_category"`
	DepthCategory     DepthCategory     `json:"depth_category"`
}

// Dataset is the ordered set of derived quakes for one run. Callers treat it
// as read-only; Filter returns a new slice.
type Dataset []Quake

// Filter returns the quakes for which keep reports true, in order.
func (d Dataset) Filter(keep func(Quake) bool) Dataset {
	out := make(Dataset, 0, len(d))
	for _, q := range d {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
