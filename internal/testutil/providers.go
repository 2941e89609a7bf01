package testutil

import (
	"context"
	"sync"

	"liiga-teletext/internal/domain/games"
)

// StubProvider serves canned listings and details and counts calls. Missing entries return Err or an empty response.
type StubProvider struct {
	mu sync.Mutex

	ByDate    map[string]games.ScheduleResponse
	Schedules map[games.Tournament][]games.ScheduleGame
	Details   map[int]games.DetailedGameResponse
	Err       error
	DateErrs  map[games.Tournament]error

	DateCalls     []string
	ScheduleCalls int
	DetailCalls   []int
	Bypassed      []int
}

func (p *StubProvider) FetchGamesByDate(ctx context.Context, serie games.Tournament, date string) (games.ScheduleResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return games.ScheduleResponse{}, err
	}
	p.DateCalls = append(p.DateCalls, ListingKey(serie, date))
	if err, ok := p.DateErrs[serie]; ok {
		return games.ScheduleResponse{}, err
	}
	if p.Err != nil {
		return games.ScheduleResponse{}, p.Err
	}
	return p.ByDate[ListingKey(serie, date)].Clone(), nil
}

func (p *StubProvider) FetchSeasonSchedule(ctx context.Context, serie games.Tournament, season int) ([]games.ScheduleGame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ScheduleCalls++
	if p.Err != nil {
		return nil, p.Err
	}
	return games.ScheduleResponse{Games: p.Schedules[serie]}.Clone().Games, nil
}

func (p *StubProvider) FetchGameDetail(ctx context.Context, season, gameID int, bypassCache bool) (games.DetailedGameResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DetailCalls = append(p.DetailCalls, gameID)
	if bypassCache {
		p.Bypassed = append(p.Bypassed, gameID)
	}
	if p.Err != nil {
		return games.DetailedGameResponse{}, p.Err
	}
	detail, ok := p.Details[gameID]
	if !ok {
		return games.DetailedGameResponse{}, context.DeadlineExceeded
	}
	return detail.Clone(), nil
}

// ListingKey matches the "{serie}-{date}" key used by ByDate.
func ListingKey(serie games.Tournament, date string) string {
	return string(serie) + "-" + date
}

// DateCallCount returns the number of listing fetches so far.
func (p *StubProvider) DateCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.DateCalls)
}

// DetailCallCount returns the number of detail fetches so far.
func (p *StubProvider) DetailCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.DetailCalls)
}
