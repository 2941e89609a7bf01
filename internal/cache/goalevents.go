package cache

import (
	"time"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/metrics"
)

const storeGoalEvents = "goal_events"

// Score is a running home/away score.
type Score struct {
	Home int
	Away int
}

type goalEventsEntry struct {
	events         []games.GoalEventData
	isLive         bool
	lastKnownScore *Score
	wasCleared     bool
}

// GoalEventsCache stores processed goal events per game. A score change leaves a tombstone so the next
// fetch knows to bypass the upstream caches.
type GoalEventsCache struct {
	s   *store[GameKey, goalEventsEntry]
	ttl TTL
}

func newGoalEventsCache(capacity int, ttl TTL, now func() time.Time, rec *metrics.Recorder) *GoalEventsCache {
	return &GoalEventsCache{
		s:   newStore[GameKey, goalEventsEntry](storeGoalEvents, capacity, now, rec),
		ttl: ttl,
	}
}

// Put stores a copy of events along with the score they were built for.
func (c *GoalEventsCache) Put(key GameKey, events []games.GoalEventData, isLive bool, score Score) {
	c.s.put(key, goalEventsEntry{
		events:         games.CloneGoalEvents(events),
		isLive:         isLive,
		lastKnownScore: &score,
	})
}

// Get returns the cached events; tombstones and expired entries miss.
func (c *GoalEventsCache) Get(key GameKey) ([]games.GoalEventData, bool) {
	if c.WasCleared(key) {
		c.s.record(false)
		return nil, false
	}
	e, ok := c.s.lookup(key, func(e entry[goalEventsEntry], now time.Time) bool {
		ttl := c.ttl.Completed
		if e.value.isLive {
			ttl = c.ttl.Live
		}
		return expiredAfter(ttl, e.insertedAt, now)
	})
	if !ok || e.value.wasCleared {
		return nil, false
	}
	return games.CloneGoalEvents(e.value.events), true
}

// LastKnownScore returns the score recorded with the cached events.
func (c *GoalEventsCache) LastKnownScore(key GameKey) (Score, bool) {
	e, ok := c.s.peek(key)
	if !ok || e.value.lastKnownScore == nil {
		return Score{}, false
	}
	return *e.value.lastKnownScore, true
}

// ClearIfScoreChanged replaces the entry with a tombstone when score differs from the recorded one.
// It reports whether the entry was cleared.
func (c *GoalEventsCache) ClearIfScoreChanged(key GameKey, score Score) bool {
	e, ok := c.s.peek(key)
	if !ok || e.value.wasCleared || e.value.lastKnownScore == nil || *e.value.lastKnownScore == score {
		return false
	}
	c.s.put(key, goalEventsEntry{isLive: e.value.isLive, lastKnownScore: &score, wasCleared: true})
	return true
}

// WasCleared reports a tombstone left by ClearIfScoreChanged.
func (c *GoalEventsCache) WasCleared(key GameKey) bool {
	e, ok := c.s.peek(key)
	return ok && e.value.wasCleared
}

// Stats reports the store counters.
func (c *GoalEventsCache) Stats() Stats {
	return c.s.stats()
}
