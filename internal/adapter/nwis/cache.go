package nwis

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/couchcryptid/hydrograph-axis-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultCacheTTL matches the 15-minute NWIS update cadence closely enough that
// a cached series is at most one reading behind.
const DefaultCacheTTL = 5 * time.Minute

// CachedFetcher wraps a SeriesFetcher with an in-memory LRU cache whose
// entries expire after a fixed TTL.
type CachedFetcher struct {
	inner   domain.SeriesFetcher
	cache   *lruCache
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner domain.SeriesFetcher, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchSeries(ctx context.Context, req domain.SeriesRequest) (domain.FetchedSeries, error) {
	key := cacheKey(req)
	now := c.clock.Now()
	if result, ok := c.cache.get(key, now); ok {
		c.metrics.NWISCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.NWISCache.WithLabelValues("miss").Inc()

	result, err := c.inner.FetchSeries(ctx, req)
	if err != nil {
		return result, err
	}
	c.cache.put(key, result, now.Add(c.ttl))
	return result, nil
}

func cacheKey(req domain.SeriesRequest) string {
	period := req.Period
	if period == "" {
		period = DefaultPeriod
	}
	return req.SiteID + "|" + req.ParameterCode + "|" + period
}

// lruCache is a simple thread-safe LRU cache for fetched series.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key     string
	value   domain.FetchedSeries
	expires time.Time
	prev    *entry
	next    *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// get returns the entry for key unless it is missing or expired at now.
// Expired entries are dropped.
func (c *lruCache) get(key string, now time.Time) (domain.FetchedSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.FetchedSeries{}, false
	}
	if !now.Before(e.expires) {
		delete(c.entries, key)
		c.remove(e)
		return domain.FetchedSeries{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.FetchedSeries, expires time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expires = expires
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expires: expires}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
