package games

import (
	"fmt"

	domaingames "liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/timeutil"
)

// BuildGameData converts a listing game and its processed goals into the display record.
func BuildGameData(g domaingames.ScheduleGame, events []domaingames.GoalEventData) domaingames.GameData {
	return domaingames.GameData{
		ID:         g.ID,
		Season:     g.Season,
		HomeTeam:   g.HomeTeam.DisplayName(),
		AwayTeam:   g.AwayTeam.DisplayName(),
		Time:       g.Start.In(timeutil.Helsinki()).Format("15:04"),
		Result:     fmt.Sprintf("%d-%d", g.HomeTeam.Goals, g.AwayTeam.Goals),
		ScoreType:  g.ScoreType(),
		IsOvertime: g.FinishedType == domaingames.FinishedOvertime,
		IsShootout: g.FinishedType == domaingames.FinishedShootout,
		Serie:      g.Serie,
		GoalEvents: events,
		PlayedTime: g.GameTime,
		Start:      g.Start,
	}
}
