package testutil

import (
	"time"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/domain/players"
)

// ScheduledGame returns a not yet started runkosarja game between HIFK and Tappara.
func ScheduledGame(id int, start time.Time) games.ScheduleGame {
	return games.ScheduleGame{
		ID:       id,
		Season:   2025,
		Start:    start,
		HomeTeam: games.ScheduleTeam{TeamID: "hifk", TeamName: "HIFK"},
		AwayTeam: games.ScheduleTeam{TeamID: "tappara", TeamName: "Tappara"},
		Serie:    games.TournamentRegular,
	}
}

// LiveGame returns a started game with gameTime seconds played.
func LiveGame(id int, start time.Time, gameTime int) games.ScheduleGame {
	g := ScheduledGame(id, start)
	g.Started = true
	g.GameTime = gameTime
	return g
}

// EndedGame returns a completed game decided the given way.
func EndedGame(id int, start time.Time, finished games.FinishedType) games.ScheduleGame {
	g := ScheduledGame(id, start)
	g.Started = true
	g.Ended = true
	end := start.Add(150 * time.Minute)
	g.End = &end
	g.GameTime = 3600
	g.FinishedType = finished
	return g
}

// Goal builds a raw goal event.
func Goal(eventID, scorerID, period, gameTime, home, away int, types ...string) games.GoalEvent {
	return games.GoalEvent{
		EventID:        eventID,
		ScorerPlayerID: scorerID,
		Period:         period,
		GameTime:       gameTime,
		HomeTeamScore:  home,
		AwayTeamScore:  away,
		GoalTypes:      types,
	}
}

// WithGoals attaches goal events and sets the team scores from the last event of each side.
func WithGoals(g games.ScheduleGame, home, away []games.GoalEvent) games.ScheduleGame {
	g.HomeTeam.GoalEvents = home
	g.AwayTeam.GoalEvents = away
	g.HomeTeam.Goals = len(home)
	g.AwayTeam.Goals = len(away)
	return g
}

// Player returns an active roster entry.
func Player(id int, first, last string) players.Player {
	return players.Player{ID: id, FirstName: first, LastName: last, Line: players.LineAt(1)}
}
