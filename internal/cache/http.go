package cache

import (
	"time"

	"liiga-teletext/internal/metrics"
)

const storeHTTP = "http_response"

type httpEntry struct {
	body []byte
	ttl  time.Duration
}

// HTTPCache memoizes response bodies by URL with a per-entry TTL chosen by the caller.
// Two concurrent misses on one URL both fetch, and the later Put wins.
type HTTPCache struct {
	s   *store[string, httpEntry]
	ttl TTL
}

func newHTTPCache(capacity int, ttl TTL, now func() time.Time, rec *metrics.Recorder) *HTTPCache {
	return &HTTPCache{
		s:   newStore[string, httpEntry](storeHTTP, capacity, now, rec),
		ttl: ttl,
	}
}

// Put stores a copy of body; a non-positive ttl uses the default HTTP TTL.
func (c *HTTPCache) Put(url string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl.HTTP
	}
	c.s.put(url, httpEntry{body: append([]byte(nil), body...), ttl: ttl})
}

// Get returns a copy of the body if it has not expired.
func (c *HTTPCache) Get(url string) ([]byte, bool) {
	e, ok := c.s.lookup(url, func(e entry[httpEntry], now time.Time) bool {
		return expiredAfter(e.value.ttl, e.insertedAt, now)
	})
	if !ok {
		return nil, false
	}
	return append([]byte(nil), e.value.body...), true
}

// Invalidate drops one URL.
func (c *HTTPCache) Invalidate(url string) bool {
	return c.s.remove(url)
}

// Stats reports the store counters.
func (c *HTTPCache) Stats() Stats {
	return c.s.stats()
}
