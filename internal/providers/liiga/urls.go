package liiga

import (
	"fmt"

	"liiga-teletext/internal/domain/games"
)

// GamesURL is the games-by-date listing.
func GamesURL(base string, serie games.Tournament, date string) string {
	return fmt.Sprintf("%s/games?tournament=%s&date=%s", base, serie, date)
}

// GameDetailURL is the single-game endpoint.
func GameDetailURL(base string, season, gameID int) string {
	return fmt.Sprintf("%s/games/%d/%d", base, season, gameID)
}

// ScheduleURL is the season schedule, used for past playoffs.
func ScheduleURL(base string, serie games.Tournament, season int) string {
	return fmt.Sprintf("%s/schedule?tournament=%s&week=%d&season=%d", base, serie, scheduleWeek, season)
}
