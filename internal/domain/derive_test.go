package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriver_Derive(t *testing.T) {
	d := NewDeriver(&meanSolarEphemeris{}, discardLogger())

	raw := RawRecord{
		Line:      7,
		Time:      "2011-03-11T05:46:24.120Z",
		Magnitude: "9.1",
		Depth:     "29",
		Place:     "2011 Great Tohoku Earthquake, Japan",
		Latitude:  "38.297",
		Longitude: "142.373",
	}

	q, err := d.Derive(raw)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2011, 3, 11, 5, 46, 24, 120000000, time.UTC), q.Time)
	assert.Equal(t, "Japan", q.Location)
	assert.True(t, q.InRingOfFire)
	assert.Equal(t, Day, q.TimeOfDay) // 14:46 local
	assert.Equal(t, Major, q.MagnitudeCategory)
	assert.Equal(t, Shallow, q.DepthCategory)
}

func TestDeriver_DeriveEphemerisFailure(t *testing.T) {
	d := NewDeriver(failingEphemeris{err: errEphemerisDown}, discardLogger())

	_, err := d.Derive(validRaw())
	require.Error(t, err)

	var derr *DerivationError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, DropEphemerisError, derr.Reason)
	assert.ErrorIs(t, err, errEphemerisDown)
}

func TestDeriver_DeriveAllDropsIncompleteRows(t *testing.T) {
	d := NewDeriver(&meanSolarEphemeris{}, discardLogger())

	raws := []RawRecord{
		{Line: 2, Time: "2020-01-01T10:00:00Z", Magnitude: "4.5", Depth: "10", Place: "10 km N of Lima, Peru", Latitude: "-12", Longitude: "-77"},
		{Line: 3, Time: "2020-01-02T10:00:00Z", Magnitude: "5.5", Depth: "120", Place: "Tonga", Latitude: "", Longitude: "-175"},
		{Line: 4, Time: "2020-01-03T10:00:00Z", Magnitude: "7.5", Depth: "550", Place: "Fiji Islands region", Latitude: "-18", Longitude: "-178"},
	}

	full, _ := d.DeriveAll([]RawRecord{raws[0], raws[2]})
	ds, drops := d.DeriveAll(raws)

	require.Len(t, ds, 2)
	assert.Equal(t, full, ds, "surviving records are unchanged and keep their order")
	assert.Equal(t, 1, drops.Total)
	assert.Equal(t, 1, drops.ByReason[DropMissingField])

	assert.Equal(t, "Peru", ds[0].Location)
	assert.Equal(t, "Fiji", ds[1].Location)
	assert.Equal(t, Deep, ds[1].DepthCategory)
}

func TestDeriver_DeriveAllNoDrops(t *testing.T) {
	d := NewDeriver(&meanSolarEphemeris{}, discardLogger())

	ds, drops := d.DeriveAll([]RawRecord{validRaw()})
	require.Len(t, ds, 1)
	assert.Zero(t, drops.Total)
	assert.NotNil(t, drops.ByReason)
}

func TestDataset_Filter(t *testing.T) {
	ds := Dataset{
		{Magnitude: 3, DepthCategory: Shallow},
		{Magnitude: 5, DepthCategory: Deep},
		{Magnitude: 6, DepthCategory: Shallow},
	}

	shallow := ds.Filter(func(q Quake) bool { return q.DepthCategory == Shallow })
	require.Len(t, shallow, 2)
	assert.Equal(t, 3.0, shallow[0].Magnitude)
	assert.Equal(t, 6.0, shallow[1].Magnitude)
	assert.Len(t, ds, 3)
}
