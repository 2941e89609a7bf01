// Package cache holds the in-memory TTL stores shared by the fetch pipeline and the game service.
package cache

import (
	"time"

	"liiga-teletext/internal/metrics"
)

// Default store capacities.
const (
	DefaultTournamentCapacity = 50
	DefaultDetailedCapacity   = 200
	DefaultHTTPCapacity       = 100
	DefaultPlayerCapacity     = 100
	DefaultGoalEventsCapacity = 200
)

// Options configures a Cache. Zero values use the defaults.
type Options struct {
	Now     func() time.Time
	TTL     TTL
	Metrics *metrics.Recorder

	TournamentCapacity int
	DetailedCapacity   int
	HTTPCapacity       int
	PlayerCapacity     int
	GoalEventsCapacity int
}

// Cache groups the stores. It is safe for concurrent use.
type Cache struct {
	Tournaments *TournamentCache
	Details     *DetailedGameCache
	HTTP        *HTTPCache
	Players     *PlayerCache
	GoalEvents  *GoalEventsCache

	ttl TTL
}

// New builds every store from opts.
func New(opts Options) *Cache {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.TTL.withDefaults()
	return &Cache{
		Tournaments: newTournamentCache(orDefault(opts.TournamentCapacity, DefaultTournamentCapacity), ttl, now, opts.Metrics),
		Details:     newDetailedGameCache(orDefault(opts.DetailedCapacity, DefaultDetailedCapacity), ttl, now, opts.Metrics),
		HTTP:        newHTTPCache(orDefault(opts.HTTPCapacity, DefaultHTTPCapacity), ttl, now, opts.Metrics),
		Players:     newPlayerCache(orDefault(opts.PlayerCapacity, DefaultPlayerCapacity), ttl, now, opts.Metrics),
		GoalEvents:  newGoalEventsCache(orDefault(opts.GoalEventsCapacity, DefaultGoalEventsCapacity), ttl, now, opts.Metrics),
		ttl:         ttl,
	}
}

// TTL returns the effective freshness windows.
func (c *Cache) TTL() TTL {
	return c.ttl
}

// Stats returns counters keyed by store name.
func (c *Cache) Stats() map[string]Stats {
	return map[string]Stats{
		storeTournament: c.Tournaments.Stats(),
		storeDetailed:   c.Details.Stats(),
		storeHTTP:       c.HTTP.Stats(),
		storePlayers:    c.Players.Stats(),
		storeGoalEvents: c.GoalEvents.Stats(),
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
