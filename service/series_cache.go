package services

import (
	"sync"

	"biorhythms-server/biorhythm"
)

type seriesKey struct {
	birth  biorhythm.Date
	center biorhythm.Date
	before int
	after  int
}

// SeriesCache memoizes GenerateSeries. Returned series are shared and must
// not be modified.
type SeriesCache struct {
	mu         sync.RWMutex
	entries    map[seriesKey]biorhythm.Series
	maxEntries int
	hits       uint64
	misses     uint64
}

// NewSeriesCache creates a cache holding at most maxEntries series. When full
// it is emptied before the next insert. maxEntries <= 0 disables caching.
func NewSeriesCache(maxEntries int) *SeriesCache {
	return &SeriesCache{
		entries:    make(map[seriesKey]biorhythm.Series),
		maxEntries: maxEntries,
	}
}

func (c *SeriesCache) Get(birth, center biorhythm.Date, before, after int) biorhythm.Series {
	if c.maxEntries <= 0 {
		return biorhythm.GenerateSeries(birth, center, before, after)
	}

	key := seriesKey{birth: birth, center: center, before: before, after: after}

	c.mu.RLock()
	s, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return s
	}

	s = biorhythm.GenerateSeries(birth, center, before, after)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if len(c.entries) >= c.maxEntries {
		clear(c.entries)
	}
	c.entries[key] = s
	return s
}

// EvictCenteredBefore drops entries whose centre date is before day and
// returns how many were removed.
func (c *SeriesCache) EvictCenteredBefore(day biorhythm.Date) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if k.center.Before(day) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *SeriesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *SeriesCache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
