package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits   int
	misses int
}

// Recorder captures lightweight, in-memory metrics about API calls, cache lookups and refresh cycles.
// When OpenTelemetry is configured every observation is mirrored to its instruments.
type Recorder struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats
	caches    map[string]*cacheStats
	refreshes int
	refreshEr int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		endpoints: make(map[string]*endpointStats),
		caches:    make(map[string]*cacheStats),
		otel:      otel,
	}
}

// RecordFetchAttempt increments counters for an API call and stores the last observed latency.
func (r *Recorder) RecordFetchAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureEndpoint(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that a response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureEndpoint(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordCacheLookup counts a hit or miss against a named cache store.
func (r *Recorder) RecordCacheLookup(store string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.caches[store]
	if !ok {
		stats = &cacheStats{}
		r.caches[store] = stats
	}
	if hit {
		stats.hits++
	} else {
		stats.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(store, hit)
	}
}

// RecordRefreshCycle tracks refresh cycles and their failures.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.refreshes++
	if err != nil {
		r.refreshEr++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(duration, err)
	}
}

// FetchCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) FetchCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// FetchErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) FetchErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// RateLimitHits returns the number of rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	return r.Snapshot(endpoint).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an endpoint.
func (r *Recorder) LastRetryAfter(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for an endpoint call.
func (r *Recorder) LastCallLatency(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastCallLatency
}

// CacheHits returns hits recorded for a cache store.
func (r *Recorder) CacheHits(store string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.caches[store]; ok {
		return stats.hits
	}
	return 0
}

// CacheMisses returns misses recorded for a cache store.
func (r *Recorder) CacheMisses(store string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.caches[store]; ok {
		return stats.misses
	}
	return 0
}

// RefreshCycles returns total and failed refresh cycles.
func (r *Recorder) RefreshCycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes, r.refreshEr
}

// Snapshot returns a copy of the current stats for an endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.endpoints[endpoint]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureEndpoint must be called with r.mu held.
func (r *Recorder) ensureEndpoint(endpoint string) *endpointStats {
	stats, ok := r.endpoints[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.endpoints[endpoint] = stats
	}
	return stats
}
