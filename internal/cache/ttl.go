package cache

import (
	"time"

	"liiga-teletext/internal/domain/games"
)

// TTL holds the freshness windows for every store. Zero fields fall back to the defaults.
type TTL struct {
	Live      time.Duration
	Starting  time.Duration
	Completed time.Duration
	Scheduled time.Duration
	Player    time.Duration
	HTTP      time.Duration
}

const (
	defaultLiveTTL      = 8 * time.Second
	defaultStartingTTL  = 30 * time.Second
	defaultCompletedTTL = time.Hour
	defaultScheduledTTL = 5 * time.Minute
	defaultPlayerTTL    = 24 * time.Hour
	defaultHTTPTTL      = 5 * time.Minute
)

// DefaultTTL returns the production freshness windows.
func DefaultTTL() TTL {
	return TTL{
		Live:      defaultLiveTTL,
		Starting:  defaultStartingTTL,
		Completed: defaultCompletedTTL,
		Scheduled: defaultScheduledTTL,
		Player:    defaultPlayerTTL,
		HTTP:      defaultHTTPTTL,
	}
}

func (t TTL) withDefaults() TTL {
	d := DefaultTTL()
	if t.Live <= 0 {
		t.Live = d.Live
	}
	if t.Starting <= 0 {
		t.Starting = d.Starting
	}
	if t.Completed <= 0 {
		t.Completed = d.Completed
	}
	if t.Scheduled <= 0 {
		t.Scheduled = d.Scheduled
	}
	if t.Player <= 0 {
		t.Player = d.Player
	}
	if t.HTTP <= 0 {
		t.HTTP = d.HTTP
	}
	return t
}

// ForState maps a game-state classification to its TTL. HTTP responses use the same mapping so both layers agree.
func (t TTL) ForState(state games.GameState) time.Duration {
	t = t.withDefaults()
	switch state {
	case games.StateLive:
		return t.Live
	case games.StateStartingSoon:
		return t.Starting
	case games.StateCompleted:
		return t.Completed
	default:
		return t.Scheduled
	}
}

// isImminent reports a scheduled game whose start is within the grace window on either side of now.
func isImminent(g games.ScheduleGame, now time.Time) bool {
	if g.Started || g.Ended {
		return false
	}
	return !g.Start.Before(now.Add(-games.StartingSoonGrace)) && !g.Start.After(now.Add(games.StartingSoonGrace))
}

func anyImminent(list []games.ScheduleGame, now time.Time) bool {
	for _, g := range list {
		if isImminent(g, now) {
			return true
		}
	}
	return false
}

func anyStartingSoon(list []games.ScheduleGame, now time.Time) bool {
	for _, g := range list {
		if g.IsStartingSoon(now) {
			return true
		}
	}
	return false
}

func allCompleted(list []games.ScheduleGame) bool {
	if len(list) == 0 {
		return false
	}
	for _, g := range list {
		if !g.Ended {
			return false
		}
	}
	return true
}
