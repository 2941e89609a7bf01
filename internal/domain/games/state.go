package games

import "time"

// Starting-soon window around a scheduled start time: [start-lead, start+grace].
const (
	StartingSoonLead  = 10 * time.Minute
	StartingSoonGrace = 5 * time.Minute
)

// GameState classifies games for cache freshness and refresh cadence.
// The order runs from most to least volatile.
type GameState int

const (
	StateLive GameState = iota
	StateStartingSoon
	StateScheduled
	StateCompleted
)

func (s GameState) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateStartingSoon:
		return "starting_soon"
	case StateCompleted:
		return "completed"
	default:
		return "scheduled"
	}
}

// IsStartingSoon reports a scheduled game whose start is within [now-5m, now+10m].
func (g ScheduleGame) IsStartingSoon(now time.Time) bool {
	if g.Started || g.Ended {
		return false
	}
	return !g.Start.Before(now.Add(-StartingSoonGrace)) && !g.Start.After(now.Add(StartingSoonLead))
}

// State classifies a single game.
func (g ScheduleGame) State(now time.Time) GameState {
	switch {
	case g.IsLive():
		return StateLive
	case g.Ended:
		return StateCompleted
	case g.IsStartingSoon(now):
		return StateStartingSoon
	default:
		return StateScheduled
	}
}

// StateOf returns the most volatile state among games; an empty list counts as scheduled.
func StateOf(games []ScheduleGame, now time.Time) GameState {
	if len(games) == 0 {
		return StateScheduled
	}
	state := StateCompleted
	for _, g := range games {
		if s := g.State(now); s < state {
			state = s
		}
	}
	return state
}

// HasLiveGames reports whether any game is in progress.
func HasLiveGames(games []ScheduleGame) bool {
	for _, g := range games {
		if g.IsLive() {
			return true
		}
	}
	return false
}

// ExpectedLive reports whether games should be live at now: one is in play, or one has not ended
// and its start time has passed.
func ExpectedLive(games []ScheduleGame, now time.Time) bool {
	for _, g := range games {
		if g.IsLive() || (!g.Ended && !g.Start.After(now)) {
			return true
		}
	}
	return false
}

// State classifies a display game with the same rules as ScheduleGame.State.
func (g GameData) State(now time.Time) GameState {
	switch g.ScoreType {
	case ScoreOngoing:
		return StateLive
	case ScoreFinal:
		return StateCompleted
	}
	if !g.Start.IsZero() && !g.Start.Before(now.Add(-StartingSoonGrace)) && !g.Start.After(now.Add(StartingSoonLead)) {
		return StateStartingSoon
	}
	return StateScheduled
}
