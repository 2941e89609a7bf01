package providers

import (
	"context"
	"testing"

	"liiga-teletext/internal/domain/games"
)

type testProvider struct{}

func (t *testProvider) FetchGamesByDate(ctx context.Context, serie games.Tournament, date string) (games.ScheduleResponse, error) {
	return games.ScheduleResponse{}, nil
}

func (t *testProvider) FetchSeasonSchedule(ctx context.Context, serie games.Tournament, season int) ([]games.ScheduleGame, error) {
	return nil, nil
}

func (t *testProvider) FetchGameDetail(ctx context.Context, season, gameID int, bypassCache bool) (games.DetailedGameResponse, error) {
	return games.DetailedGameResponse{}, nil
}

func TestDataProviderInterfaceImplemented(t *testing.T) {
	var _ DataProvider = (*testProvider)(nil)
}
