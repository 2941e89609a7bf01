// Package goals turns raw goal events into display events with resolved scorer names.
package goals

import (
	"sort"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/domain/players"
	"liiga-teletext/internal/names"
)

// DefaultUnresolvedThreshold is how many unknown scorers a game may have before roster fetches move to the background queue.
const DefaultUnresolvedThreshold = 3

// Result is the processed goal stream of one game.
type Result struct {
	Events     []games.GoalEventData
	Unresolved []int
}

// NeedsBackgroundFetch reports whether unresolved scorers exceed threshold.
func (r Result) NeedsBackgroundFetch(threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultUnresolvedThreshold
	}
	return len(r.Unresolved) > threshold
}

// Process resolves both teams' goals and merges them in (period, game time, event id) order.
// Only a disambiguated player's first goal carries the first-name suffix; later goals show the last name.
func Process(game games.ScheduleGame, homeRoster, awayRoster players.Roster) Result {
	shown := make(map[int]bool)
	unresolved := make(map[int]bool)

	home := processTeam(game.HomeTeam.GoalEvents, withEmbeddedScorers(homeRoster, game.HomeTeam.GoalEvents), true, shown, unresolved)
	away := processTeam(game.AwayTeam.GoalEvents, withEmbeddedScorers(awayRoster, game.AwayTeam.GoalEvents), false, shown, unresolved)

	events := append(home, away...)
	sort.SliceStable(events, func(i, j int) bool {
		return lessEvent(events[i].Period, events[i].GameTime, events[i].EventID, events[j].Period, events[j].GameTime, events[j].EventID)
	})

	ids := make([]int, 0, len(unresolved))
	for id := range unresolved {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return Result{Events: events, Unresolved: ids}
}

func processTeam(raw []games.GoalEvent, roster players.Roster, isHome bool, shown, unresolved map[int]bool) []games.GoalEventData {
	ordered := append([]games.GoalEvent(nil), raw...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return lessEvent(ordered[i].Period, ordered[i].GameTime, ordered[i].EventID, ordered[j].Period, ordered[j].GameTime, ordered[j].EventID)
	})

	ctx := names.NewContext(roster)
	out := make([]games.GoalEventData, 0, len(ordered))
	for _, e := range ordered {
		out = append(out, games.GoalEventData{
			ScorerPlayerID: e.ScorerPlayerID,
			ScorerName:     scorerName(ctx, e.ScorerPlayerID, shown, unresolved),
			Minute:         e.GameTime / 60,
			Period:         e.Period,
			GameTime:       e.GameTime,
			EventID:        e.EventID,
			HomeTeamScore:  e.HomeTeamScore,
			AwayTeamScore:  e.AwayTeamScore,
			IsWinningGoal:  e.WinningGoal,
			GoalTypes:      games.FilterGoalTypes(e.GoalTypes),
			IsHomeTeam:     isHome,
			VideoClipURL:   e.VideoClipURL,
		})
	}
	return out
}

func scorerName(ctx *names.Context, id int, shown, unresolved map[int]bool) string {
	if !ctx.Has(id) {
		unresolved[id] = true
		return names.Fallback(id)
	}
	if !ctx.IsDisambiguated(id) {
		return ctx.DisplayName(id)
	}
	if shown[id] {
		return ctx.LastNameOnly(id)
	}
	shown[id] = true
	return ctx.DisplayName(id)
}

// withEmbeddedScorers adds scorer records carried on the events for players missing from roster.
func withEmbeddedScorers(roster players.Roster, events []games.GoalEvent) players.Roster {
	known := make(map[int]bool, len(roster))
	for _, p := range roster {
		known[p.ID] = true
	}
	var extra players.Roster
	for _, e := range events {
		if e.ScorerPlayer == nil || known[e.ScorerPlayerID] {
			continue
		}
		p := e.ScorerPlayer.Clone()
		p.ID = e.ScorerPlayerID
		extra = append(extra, p)
		known[p.ID] = true
	}
	if len(extra) == 0 {
		return roster
	}
	out := make(players.Roster, 0, len(roster)+len(extra))
	out = append(out, roster...)
	return append(out, extra...)
}

func lessEvent(p1, t1, id1, p2, t2, id2 int) bool {
	if p1 != p2 {
		return p1 < p2
	}
	if t1 != t2 {
		return t1 < t2
	}
	return id1 < id2
}
