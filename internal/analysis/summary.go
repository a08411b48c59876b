package analysis

import (
	"math"
	"sort"

	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/stats"
)

// Histogram bin widths for the exploratory charts.
const (
	MagnitudeBinWidth = 0.5
	DepthBinWidth     = 50.0
)

// Count is the number of quakes sharing one categorical value.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimeOfDayStats holds the mean and standard deviation of magnitude and
// depth for one side of the day.
type TimeOfDayStats struct {
	TimeOfDay     domain.TimeOfDay `json:"time_of_day"`
	N             int              `json:"n"`
	MagnitudeMean float64          `json:"magnitude_mean"`
	MagnitudeSD   float64          `json:"magnitude_sd"`
	DepthMean     float64          `json:"depth_mean"`
	DepthSD       float64          `json:"depth_sd"`
}

// Bin is one histogram bucket covering [Lower, Upper). The last bin of a
// histogram also includes its upper edge.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Summary is the descriptive overview of a dataset.
type Summary struct {
	Records     int               `json:"records"`
	Magnitude   stats.Description `json:"magnitude"`
	Depth       stats.Description `json:"depth"`
	ByMagnitude []Count           `json:"by_magnitude_category"`
	ByDepth     []Count           `json:"by_depth_category"`
	ByTimeOfDay []TimeOfDayStats  `json:"by_time_of_day"`
	ByLocation  []Count           `json:"by_location"`
	RingOfFire  []Count           `json:"by_ring_of_fire"`

	MagnitudeHistogram []Bin `json:"magnitude_histogram"`
	DepthHistogram     []Bin `json:"depth_histogram"`
}

// Summarize computes the descriptive summary of ds. Category counts are
// listed in category order, including zero counts; location counts are
// sorted by descending count, then by name.
func Summarize(ds domain.Dataset) Summary {
	mags := make([]float64, len(ds))
	depths := make([]float64, len(ds))
	byMag := make(map[domain.MagnitudeCategory]int)
	byDepth := make(map[domain.DepthCategory]int)
	byLoc := make(map[string]int)
	var inRing int
	for i, q := range ds {
		mags[i] = q.Magnitude
		depths[i] = q.Depth
		byMag[q.MagnitudeCategory]++
		byDepth[q.DepthCategory]++
		byLoc[q.Location]++
		if q.InRingOfFire {
			inRing++
		}
	}

	s := Summary{
		Records:   len(ds),
		Magnitude: stats.Describe(mags),
		Depth:     stats.Describe(depths),
		RingOfFire: []Count{
			{Name: "Ring of Fire", Count: inRing},
			{Name: "Elsewhere", Count: len(ds) - inRing},
		},
		MagnitudeHistogram: histogram(mags, MagnitudeBinWidth),
		DepthHistogram:     histogram(depths, DepthBinWidth),
	}
	for _, c := range domain.MagnitudeCategories {
		s.ByMagnitude = append(s.ByMagnitude, Count{Name: string(c), Count: byMag[c]})
	}
	for _, c := range domain.DepthCategories {
		s.ByDepth = append(s.ByDepth, Count{Name: string(c), Count: byDepth[c]})
	}
	for _, tod := range []domain.TimeOfDay{domain.Day, domain.Night} {
		s.ByTimeOfDay = append(s.ByTimeOfDay, timeOfDayStats(ds, tod))
	}
	s.ByLocation = sortedCounts(byLoc)
	return s
}

func timeOfDayStats(ds domain.Dataset, tod domain.TimeOfDay) TimeOfDayStats {
	var mags, depths []float64
	for _, q := range ds {
		if q.TimeOfDay == tod {
			mags = append(mags, q.Magnitude)
			depths = append(depths, q.Depth)
		}
	}
	out := TimeOfDayStats{TimeOfDay: tod, N: len(mags)}
	out.MagnitudeMean, out.MagnitudeSD = stats.MeanSD(mags)
	out.DepthMean, out.DepthSD = stats.MeanSD(depths)
	return out
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// histogram buckets xs into bins of the given width aligned to multiples of
// width. It returns nil for an empty input.
func histogram(xs []float64, width float64) []Bin {
	if len(xs) == 0 {
		return nil
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	start := math.Floor(lo/width) * width
	n := int(math.Floor((hi-start)/width)) + 1

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = start + float64(i)*width
		bins[i].Upper = bins[i].Lower + width
	}
	for _, x := range xs {
		i := int(math.Floor((x - start) / width))
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}
