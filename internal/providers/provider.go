package providers

import (
	"context"

	"liiga-teletext/internal/domain/games"
)

// GameProvider fetches game listings.
// Dates are YYYY-MM-DD strings; seasons are named by their ending year.
type GameProvider interface {
	FetchGamesByDate(ctx context.Context, serie games.Tournament, date string) (games.ScheduleResponse, error)
	FetchSeasonSchedule(ctx context.Context, serie games.Tournament, season int) ([]games.ScheduleGame, error)
}

// DetailProvider fetches a single game with both rosters.
// bypassCache skips the detailed-game and HTTP caches, used after a score change.
type DetailProvider interface {
	FetchGameDetail(ctx context.Context, season, gameID int, bypassCache bool) (games.DetailedGameResponse, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	GameProvider
	DetailProvider
}
