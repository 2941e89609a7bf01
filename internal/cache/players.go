package cache

import (
	"time"

	"liiga-teletext/internal/domain/players"
	"liiga-teletext/internal/metrics"
)

const storePlayers = "player"

// TeamKey identifies a team's roster within a season.
type TeamKey struct {
	Season int
	TeamID string
}

// PlayerCache stores rosters for the player TTL.
type PlayerCache struct {
	s   *store[TeamKey, players.Roster]
	ttl TTL
}

func newPlayerCache(capacity int, ttl TTL, now func() time.Time, rec *metrics.Recorder) *PlayerCache {
	return &PlayerCache{
		s:   newStore[TeamKey, players.Roster](storePlayers, capacity, now, rec),
		ttl: ttl,
	}
}

// Put stores a deep copy of the roster.
func (c *PlayerCache) Put(key TeamKey, roster players.Roster) {
	c.s.put(key, roster.Clone())
}

// Get returns a deep copy of the roster if fresh.
func (c *PlayerCache) Get(key TeamKey) (players.Roster, bool) {
	e, ok := c.s.lookup(key, func(e entry[players.Roster], now time.Time) bool {
		return expiredAfter(c.ttl.Player, e.insertedAt, now)
	})
	if !ok {
		return nil, false
	}
	return e.value.Clone(), true
}

// Stats reports the store counters.
func (c *PlayerCache) Stats() Stats {
	return c.s.stats()
}
