package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"SHT20Monitor.influxDB/internal/models"
)

// RangeCache stores serialized range results.
type RangeCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cached serves FetchRange from a RangeCache. Only ranges with absolute
// bounds that lie entirely in the past are cached, since anything else can
// still change.
type Cached struct {
	QueryClient
	cache     RangeCache
	namespace string
	ttl       time.Duration
	now       func() time.Time
}

// NewCached wraps inner. namespace separates keys of different buckets or measurements.
func NewCached(inner QueryClient, cache RangeCache, namespace string, ttl time.Duration) *Cached {
	return &Cached{
		QueryClient: inner,
		cache:       cache,
		namespace:   namespace,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (c *Cached) FetchRange(ctx context.Context, r models.TimeRange) ([]models.RawRow, error) {
	if !c.cacheable(r) {
		return c.QueryClient.FetchRange(ctx, r)
	}

	key := c.key(r)
	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		log.Printf("Range cache read failed for %s: %v", key, err)
	} else if ok {
		var rows []models.RawRow
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows, nil
		}
		log.Printf("Discarding undecodable cache entry %s", key)
	}

	rows, err := c.QueryClient.FetchRange(ctx, r)
	if err != nil || len(rows) == 0 {
		return rows, err
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		log.Printf("Failed to encode rows for cache: %v", err)
		return rows, nil
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		log.Printf("Range cache write failed for %s: %v", key, err)
	}
	return rows, nil
}

func (c *Cached) cacheable(r models.TimeRange) bool {
	start, err := time.Parse(time.RFC3339Nano, r.Start)
	if err != nil {
		return false
	}
	stop, err := time.Parse(time.RFC3339Nano, r.Stop)
	if err != nil {
		return false
	}
	return start.Before(stop) && !stop.After(c.now())
}

func (c *Cached) key(r models.TimeRange) string {
	return c.namespace + ":range:" + r.Start + "|" + r.Stop
}
