package domain

import (
	"fmt"
	"sync"
	"time"
)

// priceCache is a small in-process TTL cache fronting an HTTPPriceSource
// (§C: "in-process interval caching... no distributed coordination, no
// time-series database is named anywhere"). Keyed by symbol, interval, and
// the requested window bucketed to the interval's own granularity, so
// repeated requests for the same bucketed window within ttl are served
// without a round trip.
type priceCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]priceCacheEntry
}

type priceCacheEntry struct {
	points    []PricePoint
	expiresAt time.Time
}

func newPriceCache(ttl time.Duration) *priceCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &priceCache{ttl: ttl, entries: map[string]priceCacheEntry{}}
}

func (c *priceCache) bucketDuration(interval string) time.Duration {
	switch interval {
	case "1h", "hour", "hourly":
		return time.Hour
	case "1w", "week", "weekly":
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (c *priceCache) key(symbol string, from, to time.Time, interval string) string {
	bucket := c.bucketDuration(interval)
	return fmt.Sprintf("%s|%s|%d|%d", symbol, interval, from.Truncate(bucket).Unix(), to.Truncate(bucket).Unix())
}

func (c *priceCache) get(symbol string, from, to time.Time, interval string) ([]PricePoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[c.key(symbol, from, to, interval)]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.points, true
}

func (c *priceCache) put(symbol string, from, to time.Time, interval string, points []PricePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(symbol, from, to, interval)] = priceCacheEntry{
		points:    points,
		expiresAt: time.Now().Add(c.ttl),
	}
}
