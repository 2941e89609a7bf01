package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"liiga-teletext/internal/metrics"
)

// Stats reports the counters of one store.
type Stats struct {
	Hits     int64
	Misses   int64
	Len      int
	Capacity int
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
	seq        uint64
}

// store is a bounded LRU guarded by one RWMutex. Values are cloned by the typed wrappers, never here.
type store[K comparable, V any] struct {
	name     string
	capacity int
	now      func() time.Time
	recorder *metrics.Recorder

	mu  sync.RWMutex
	lru *simplelru.LRU[K, entry[V]]
	seq uint64

	hits   atomic.Int64
	misses atomic.Int64
}

func newStore[K comparable, V any](name string, capacity int, now func() time.Time, recorder *metrics.Recorder) *store[K, V] {
	lru, err := simplelru.NewLRU[K, entry[V]](capacity, nil)
	if err != nil {
		panic(fmt.Sprintf("cache %s: %v", name, err))
	}
	return &store[K, V]{
		name:     name,
		capacity: capacity,
		now:      now,
		recorder: recorder,
		lru:      lru,
	}
}

func (s *store[K, V]) put(key K, value V) {
	s.mu.Lock()
	s.seq++
	s.lru.Add(key, entry[V]{value: value, insertedAt: s.now(), seq: s.seq})
	s.mu.Unlock()
}

// lookup returns the entry for key unless stale reports it expired, in which case the entry is removed.
// The staleness check runs outside the lock; removal is skipped when a newer write replaced the entry meanwhile.
func (s *store[K, V]) lookup(key K, stale func(e entry[V], now time.Time) bool) (entry[V], bool) {
	s.mu.RLock()
	e, ok := s.lru.Peek(key)
	s.mu.RUnlock()
	if !ok {
		s.record(false)
		return entry[V]{}, false
	}

	if stale(e, s.now()) {
		s.removeIfSeq(key, e.seq)
		s.record(false)
		return entry[V]{}, false
	}

	s.mu.Lock()
	s.lru.Get(key)
	s.mu.Unlock()
	s.record(true)
	return e, true
}

// peek reads without touching recency or counters.
func (s *store[K, V]) peek(key K) (entry[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lru.Peek(key)
}

func (s *store[K, V]) removeIfSeq(key K, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.lru.Peek(key); ok && cur.seq == seq {
		s.lru.Remove(key)
	}
}

func (s *store[K, V]) remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Remove(key)
}

// removeWhere deletes every key matching fn and returns how many were removed.
func (s *store[K, V]) removeWhere(fn func(K) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, k := range s.lru.Keys() {
		if fn(k) {
			s.lru.Remove(k)
			removed++
		}
	}
	return removed
}

func (s *store[K, V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lru.Len()
}

func (s *store[K, V]) stats() Stats {
	return Stats{
		Hits:     s.hits.Load(),
		Misses:   s.misses.Load(),
		Len:      s.len(),
		Capacity: s.capacity,
	}
}

func (s *store[K, V]) record(hit bool) {
	if hit {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	s.recorder.RecordCacheLookup(s.name, hit)
}

func expiredAfter(ttl time.Duration, insertedAt, now time.Time) bool {
	return now.Sub(insertedAt) > ttl
}
