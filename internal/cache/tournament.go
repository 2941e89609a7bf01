package cache

import (
	"strings"
	"time"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/timeutil"
)

const storeTournament = "tournament"

// TournamentKey builds the listing key "{serie}-{date}".
func TournamentKey(serie games.Tournament, date string) string {
	return string(serie) + "-" + date
}

type tournamentEntry struct {
	resp    games.ScheduleResponse
	hasLive bool
}

// TournamentCache stores games-by-date listings together with their live flag.
type TournamentCache struct {
	s   *store[string, tournamentEntry]
	ttl TTL
}

func newTournamentCache(capacity int, ttl TTL, now func() time.Time, rec *metrics.Recorder) *TournamentCache {
	return &TournamentCache{
		s:   newStore[string, tournamentEntry](storeTournament, capacity, now, rec),
		ttl: ttl,
	}
}

// Put stores a deep copy of resp, recording whether any game is live.
func (c *TournamentCache) Put(key string, resp games.ScheduleResponse) {
	c.s.put(key, tournamentEntry{
		resp:    resp.Clone(),
		hasLive: games.HasLiveGames(resp.Games),
	})
}

// Get returns the listing if its flag-derived TTL has not elapsed.
func (c *TournamentCache) Get(key string) (games.ScheduleResponse, bool) {
	e, ok := c.s.lookup(key, func(e entry[tournamentEntry], now time.Time) bool {
		return expiredAfter(c.flagTTL(e.value), e.insertedAt, now)
	})
	if !ok {
		return games.ScheduleResponse{}, false
	}
	return e.value.resp.Clone(), true
}

// GetWithStartCheck is Get plus the starting-game rule: a game about to face off evicts the entry,
// and any game in the starting-soon window caps the TTL at the starting TTL.
func (c *TournamentCache) GetWithStartCheck(key string) (games.ScheduleResponse, bool) {
	e, ok := c.s.lookup(key, c.startChecked)
	if !ok {
		return games.ScheduleResponse{}, false
	}
	return e.value.resp.Clone(), true
}

// GetWithLiveCheck is GetWithStartCheck plus eviction when the stored live flag disagrees with
// currentLive, the caller's view of whether the listing should have live games by now.
func (c *TournamentCache) GetWithLiveCheck(key string, currentLive bool) (games.ScheduleResponse, bool) {
	e, ok := c.s.lookup(key, func(e entry[tournamentEntry], now time.Time) bool {
		if e.value.hasLive != currentLive {
			return true
		}
		return c.startChecked(e, now)
	})
	if !ok {
		return games.ScheduleResponse{}, false
	}
	return e.value.resp.Clone(), true
}

// HasLiveGames reports the stored live flag without counting a lookup.
func (c *TournamentCache) HasLiveGames(key string) (bool, bool) {
	e, ok := c.s.peek(key)
	if !ok {
		return false, false
	}
	return e.value.hasLive, true
}

// Invalidate drops one key.
func (c *TournamentCache) Invalidate(key string) bool {
	return c.s.remove(key)
}

// InvalidateDate drops every tournament listing whose key ends in exactly "-{date}".
func (c *TournamentCache) InvalidateDate(date string) int {
	if _, err := timeutil.ParseDate(date); err != nil {
		return 0
	}
	suffix := "-" + date
	return c.s.removeWhere(func(key string) bool {
		serie, ok := strings.CutSuffix(key, suffix)
		return ok && serie != "" && !strings.Contains(serie, "-")
	})
}

// Stats reports the store counters.
func (c *TournamentCache) Stats() Stats {
	return c.s.stats()
}

func (c *TournamentCache) startChecked(e entry[tournamentEntry], now time.Time) bool {
	list := e.value.resp.Games
	if anyImminent(list, now) {
		return true
	}
	ttl := c.flagTTL(e.value)
	if anyStartingSoon(list, now) && c.ttl.Starting < ttl {
		ttl = c.ttl.Starting
	}
	return expiredAfter(ttl, e.insertedAt, now)
}

func (c *TournamentCache) flagTTL(v tournamentEntry) time.Duration {
	switch {
	case v.hasLive:
		return c.ttl.Live
	case allCompleted(v.resp.Games):
		return c.ttl.Completed
	default:
		return c.ttl.Scheduled
	}
}
