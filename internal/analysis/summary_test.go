package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

func TestSummarize(t *testing.T) {
	a := quake(domain.Day, true, domain.Shallow, domain.Minor)
	a.Location, a.Magnitude, a.Depth = "Japan", 3.2, 10
	b := quake(domain.Night, true, domain.Intermediate, domain.Moderate)
	b.Location, b.Magnitude, b.Depth = "Chile", 5.5, 120
	c := quake(domain.Night, false, domain.Deep, domain.Major)
	c.Location, c.Magnitude, c.Depth = "Japan", 7.4, 610
	d := quake(domain.Night, false, domain.Shallow, domain.Moderate)
	d.Location, d.Magnitude, d.Depth = "Albania", 4.1, 20
	ds := domain.Dataset{a, b, c, d}

	s := Summarize(ds)
	assert.Equal(t, 4, s.Records)
	assert.Equal(t, 3.2, s.Magnitude.Min)
	assert.Equal(t, 7.4, s.Magnitude.Max)
	assert.Equal(t, 4, s.Depth.N)

	assert.Equal(t, []Count{{"Minor", 1}, {"Moderate", 2}, {"Major", 1}}, s.ByMagnitude)
	assert.Equal(t, []Count{{"Shallow", 2}, {"Intermediate", 1}, {"Deep", 1}}, s.ByDepth)
	assert.Equal(t, []Count{{"Japan", 2}, {"Albania", 1}, {"Chile", 1}}, s.ByLocation)
	assert.Equal(t, []Count{{"Ring of Fire", 2}, {"Elsewhere", 2}}, s.RingOfFire)

	require.Len(t, s.ByTimeOfDay, 2)
	day, night := s.ByTimeOfDay[0], s.ByTimeOfDay[1]
	assert.Equal(t, domain.Day, day.TimeOfDay)
	assert.Equal(t, 1, day.N)
	assert.Equal(t, 3.2, day.MagnitudeMean)
	assert.Zero(t, day.MagnitudeSD)
	assert.Equal(t, 3, night.N)
	assert.InDelta(t, (5.5+7.4+4.1)/3, night.MagnitudeMean, 1e-12)
	assert.InDelta(t, 250.0, night.DepthMean, 1e-12)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Records)
	assert.Empty(t, s.ByLocation)
	assert.Nil(t, s.MagnitudeHistogram)
	for _, c := range s.ByMagnitude {
		assert.Zero(t, c.Count)
	}
	for _, tod := range s.ByTimeOfDay {
		assert.False(t, math.IsNaN(tod.MagnitudeMean))
	}
}

func TestHistogram(t *testing.T) {
	bins := histogram([]float64{4.1, 4.4, 4.5, 5.0, 5.49}, 0.5)
	require.Len(t, bins, 3)
	assert.Equal(t, Bin{Lower: 4.0, Upper: 4.5, Count: 2}, bins[0])
	assert.Equal(t, Bin{Lower: 4.5, Upper: 5.0, Count: 1}, bins[1])
	assert.Equal(t, Bin{Lower: 5.0, Upper: 5.5, Count: 2}, bins[2])

	depths := histogram([]float64{-3, 0, 49, 50, 650}, 50)
	assert.Equal(t, -50.0, depths[0].Lower)
	assert.Equal(t, 1, depths[0].Count)
	assert.Equal(t, 2, depths[1].Count)
	assert.Equal(t, 1, depths[len(depths)-1].Count)

	var total int
	for _, b := range depths {
		total += b.Count
	}
	assert.Equal(t, 5, total)
}
