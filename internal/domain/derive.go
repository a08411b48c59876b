package domain

import (
	"errors"
	"log/slog"
)

// DropStats counts records excluded during derivation, by reason.
type DropStats struct {
	Total    int                `json:"total"`
	ByReason map[DropReason]int `json:"by_reason"`
}

func (s *DropStats) add(reason DropReason) {
	if s.ByReason == nil {
		s.ByReason = make(map[DropReason]int)
	}
	s.Total++
	s.ByReason[reason]++
}

// Deriver turns raw catalog rows into fully derived quakes.
type Deriver struct {
	ephemeris Ephemeris
	logger    *slog.Logger
}

// NewDeriver creates a Deriver that classifies time of day with eph.
func NewDeriver(eph Ephemeris, logger *slog.Logger) *Deriver {
	return &Deriver{ephemeris: eph, logger: logger}
}

// Derive parses raw and computes every derived field. Any failure is
// returned as a *DerivationError and the record must be dropped.
func (d *Deriver) Derive(raw RawRecord) (Quake, error) {
	q, err := ParseRawRecord(raw)
	if err != nil {
		return Quake{}, err
	}

	q.Location = NormalizeLocation(q.Place)
	if q.Location == "" {
		return Quake{}, &DerivationError{Line: raw.Line, Field: "place", Reason: DropUnmappedPlace}
	}
	q.InRingOfFire = InRingOfFire(q.Location)

	tod, err := ClassifyTimeOfDay(d.ephemeris, q.Latitude, q.Longitude, q.Time)
	if err != nil {
		return Quake{}, &DerivationError{Line: raw.Line, Field: "time", Reason: DropEphemerisError, Err: err}
	}
	q.TimeOfDay = tod

	q.MagnitudeCategory = ClassifyMagnitude(q.Magnitude)
	q.DepthCategory = ClassifyDepth(q.Depth)
	return q, nil
}

// DeriveAll derives every record, silently dropping the ones that fail.
// Order is preserved for the records that survive.
func (d *Deriver) DeriveAll(raws []RawRecord) (Dataset, DropStats) {
	out := make(Dataset, 0, len(raws))
	drops := DropStats{ByReason: make(map[DropReason]int)}
	for _, raw := range raws {
		q, err := d.Derive(raw)
		if err != nil {
			var derr *DerivationError
			reason := DropInvalidField
			if errors.As(err, &derr) {
				reason = derr.Reason
			}
			drops.add(reason)
			d.logger.Debug("record dropped", "line", raw.Line, "reason", reason, "error", err)
			continue
		}
		out = append(out, q)
	}
	return out, drops
}
