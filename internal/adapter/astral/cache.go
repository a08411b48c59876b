package astral

import (
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

// CachedEphemeris memoizes sun events per rounded coordinate and UTC date.
// It is safe for concurrent use.
type CachedEphemeris struct {
	inner domain.Ephemeris
	cache *cache.Cache
	stats CacheRecorder
}

// CacheRecorder observes cache lookups.
type CacheRecorder interface {
	EphemerisLookup(hit bool)
}

type result struct {
	events domain.SunEvents
	err    error
}

// NewCachedEphemeris wraps inner with a cache whose entries expire after ttl.
// A nil recorder disables lookup accounting.
func NewCachedEphemeris(inner domain.Ephemeris, ttl time.Duration, rec CacheRecorder) *CachedEphemeris {
	return &CachedEphemeris{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
		stats: rec,
	}
}

// SunEvents returns cached events when present. Polar days and nights
// (domain.ErrNoSunEvent) are cached too; other errors are not.
func (c *CachedEphemeris) SunEvents(lat, lon float64, date time.Time) (domain.SunEvents, error) {
	key := fmt.Sprintf("%.4f,%.4f,%s", lat, lon, date.UTC().Format(time.DateOnly))
	if v, ok := c.cache.Get(key); ok {
		c.record(true)
		r := v.(result)
		return r.events, r.err
	}
	c.record(false)

	events, err := c.inner.SunEvents(lat, lon, date)
	if err == nil || errors.Is(err, domain.ErrNoSunEvent) {
		c.cache.Set(key, result{events: events, err: err}, cache.DefaultExpiration)
	}
	return events, err
}

// ItemCount returns the number of cached entries, including expired ones not
// yet cleaned up.
func (c *CachedEphemeris) ItemCount() int {
	return c.cache.ItemCount()
}

func (c *CachedEphemeris) record(hit bool) {
	if c.stats != nil {
		c.stats.EphemerisLookup(hit)
	}
}
