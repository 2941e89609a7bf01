package cache

import (
	"fmt"
	"time"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/metrics"
)

const storeDetailed = "detailed_game"

// GameKey identifies one game across seasons.
type GameKey struct {
	Season int
	GameID int
}

func (k GameKey) String() string {
	return fmt.Sprintf("%d/%d", k.Season, k.GameID)
}

type detailedEntry struct {
	resp   games.DetailedGameResponse
	isLive bool
}

// DetailedGameCache stores game-detail payloads (game record plus rosters).
type DetailedGameCache struct {
	s   *store[GameKey, detailedEntry]
	ttl TTL
}

func newDetailedGameCache(capacity int, ttl TTL, now func() time.Time, rec *metrics.Recorder) *DetailedGameCache {
	return &DetailedGameCache{
		s:   newStore[GameKey, detailedEntry](storeDetailed, capacity, now, rec),
		ttl: ttl,
	}
}

// Put stores a deep copy of resp.
func (c *DetailedGameCache) Put(key GameKey, resp games.DetailedGameResponse) {
	c.s.put(key, detailedEntry{resp: resp.Clone(), isLive: resp.Game.IsLive()})
}

// Get returns the payload unless the TTL derived from its live flag has elapsed.
func (c *DetailedGameCache) Get(key GameKey) (games.DetailedGameResponse, bool) {
	e, ok := c.s.lookup(key, func(e entry[detailedEntry], now time.Time) bool {
		return expiredAfter(c.ttlFor(e.value, now), e.insertedAt, now)
	})
	if !ok {
		return games.DetailedGameResponse{}, false
	}
	return e.value.resp.Clone(), true
}

// Invalidate drops one game.
func (c *DetailedGameCache) Invalidate(key GameKey) bool {
	return c.s.remove(key)
}

// Stats reports the store counters.
func (c *DetailedGameCache) Stats() Stats {
	return c.s.stats()
}

func (c *DetailedGameCache) ttlFor(v detailedEntry, now time.Time) time.Duration {
	g := v.resp.Game
	switch {
	case v.isLive:
		return c.ttl.Live
	case g.Ended:
		return c.ttl.Completed
	case games.ScheduleGame{Start: g.Start}.IsStartingSoon(now):
		return c.ttl.Starting
	default:
		return c.ttl.Scheduled
	}
}
