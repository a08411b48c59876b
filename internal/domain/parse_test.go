package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawRecord {
	return RawRecord{
		Line:      2,
		Time:      "2023-02-06T01:17:34.342Z",
		Magnitude: "7.8",
		Depth:     "10",
		Place:     "Pazarcik earthquake, Kahramanmaras earthquake sequence",
		Latitude:  "37.2256",
		Longitude: "37.0143",
	}
}

func TestParseRawRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		q, err := ParseRawRecord(validRaw())
		require.NoError(t, err)

		assert.Equal(t, time.Date(2023, 2, 6, 1, 17, 34, 342000000, time.UTC), q.Time)
		assert.Equal(t, 7.8, q.Magnitude)
		assert.Equal(t, 10.0, q.Depth)
		assert.Equal(t, 37.2256, q.Latitude)
		assert.Equal(t, 37.0143, q.Longitude)
		assert.Empty(t, q.Location, "derived fields are not set by parsing")
	})

	t.Run("negative depth is kept", func(t *testing.T) {
		raw := validRaw()
		raw.Depth = "-1.2"
		q, err := ParseRawRecord(raw)
		require.NoError(t, err)
		assert.Equal(t, -1.2, q.Depth)
	})

	t.Run("space separated timestamp", func(t *testing.T) {
		raw := validRaw()
		raw.Time = "1964-03-28 03:36:16"
		q, err := ParseRawRecord(raw)
		require.NoError(t, err)
		assert.Equal(t, time.Date(1964, 3, 28, 3, 36, 16, 0, time.UTC), q.Time)
	})
}

func TestParseRawRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawRecord)
		field  string
		reason DropReason
	}{
		{"missing time", func(r *RawRecord) { r.Time = "" }, "time", DropMissingField},
		{"bad time", func(r *RawRecord) { r.Time = "yesterday" }, "time", DropInvalidField},
		{"missing magnitude", func(r *RawRecord) { r.Magnitude = "NA" }, "mag", DropMissingField},
		{"bad magnitude", func(r *RawRecord) { r.Magnitude = "big" }, "mag", DropInvalidField},
		{"missing depth", func(r *RawRecord) { r.Depth = "NaN" }, "depth", DropMissingField},
		{"missing latitude", func(r *RawRecord) { r.Latitude = "" }, "latitude", DropMissingField},
		{"latitude out of range", func(r *RawRecord) { r.Latitude = "91" }, "latitude", DropInvalidField},
		{"longitude out of range", func(r *RawRecord) { r.Longitude = "-180.5" }, "longitude", DropInvalidField},
		{"infinite longitude", func(r *RawRecord) { r.Longitude = "Inf" }, "longitude", DropInvalidField},
		{"missing place", func(r *RawRecord) { r.Place = "  " }, "place", DropMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			_, err := ParseRawRecord(raw)
			require.Error(t, err)

			var derr *DerivationError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.field, derr.Field)
			assert.Equal(t, tt.reason, derr.Reason)
			assert.Equal(t, 2, derr.Line)
		})
	}
}
