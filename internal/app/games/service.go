// Package games assembles the games shown for a date: listings, goal events and scorer names.
package games

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"liiga-teletext/internal/cache"
	domaingames "liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/domain/players"
	"liiga-teletext/internal/goals"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/providers"
	"liiga-teletext/internal/season"
	"liiga-teletext/internal/timeutil"
)

// Config wires a Service.
type Config struct {
	Provider            providers.DataProvider
	Cache               *cache.Cache
	Logger              *slog.Logger
	Now                 func() time.Time
	UnresolvedThreshold int
	Queue               goals.QueueConfig
}

// Day is the result of one fetch: the games of a date ready for display.
type Day struct {
	RequestedDate string
	Date          string
	Tournament    domaingames.Tournament
	Games         []domaingames.GameData
	Schedule      []domaingames.ScheduleGame
	FutureGames   bool
	Historical    bool
}

// Service coordinates the provider, the caches and goal processing.
type Service struct {
	provider  providers.DataProvider
	cache     *cache.Cache
	logger    *slog.Logger
	now       func() time.Time
	threshold int
	queue     *goals.Queue

	mu        sync.Mutex
	displayed map[string][]domaingames.ScheduleGame
}

// NewService constructs a Service. The background roster queue is created here; start it with RunBackground.
func NewService(cfg Config) *Service {
	s := &Service{
		provider:  cfg.Provider,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		now:       cfg.Now,
		threshold: cfg.UnresolvedThreshold,
		displayed: make(map[string][]domaingames.ScheduleGame),
	}
	if s.cache == nil {
		s.cache = cache.New(cache.Options{Now: cfg.Now})
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.threshold <= 0 {
		s.threshold = goals.DefaultUnresolvedThreshold
	}
	qcfg := cfg.Queue
	qcfg.Handler = s.FetchRosters
	if qcfg.Logger == nil {
		qcfg.Logger = cfg.Logger
	}
	s.queue = goals.NewQueue(qcfg)
	return s
}

// RunBackground consumes the roster queue until ctx is done.
func (s *Service) RunBackground(ctx context.Context) {
	s.queue.Run(ctx)
}

// RosterUpdates signals when background roster fetches complete; the next FetchDay resolves more names.
func (s *Service) RosterUpdates() <-chan struct{} {
	return s.queue.Updates()
}

// Queue exposes the background roster queue.
func (s *Service) Queue() *goals.Queue {
	return s.queue
}

// Today is the current Helsinki date.
func (s *Service) Today() string {
	return timeutil.LocalDate(s.now())
}

// FetchDay returns the games of date (today when empty). When today has no games the first upcoming
// game day is shown instead and marked as future games.
func (s *Service) FetchDay(ctx context.Context, date string) (Day, error) {
	if s.provider == nil {
		return Day{}, providers.ErrProviderUnavailable
	}
	if date == "" {
		date = s.Today()
	}

	day, next, err := s.fetchDate(ctx, date)
	if err != nil {
		return Day{}, err
	}
	day.RequestedDate = date
	if len(day.Games) > 0 || date != s.Today() || next == "" || next == date {
		return day, nil
	}

	logging.Info(logging.FromContext(ctx, s.logger), "no games today, showing next game day",
		logging.FieldDate, date, "next_date", next)
	future, _, err := s.fetchDate(ctx, next)
	if err != nil {
		return Day{}, err
	}
	future.RequestedDate = date
	future.FutureGames = len(future.Games) > 0
	return future, nil
}

// InvalidateDay drops the cached tournament listings of date so the next FetchDay rebuilds them.
func (s *Service) InvalidateDay(date string) {
	if date == "" {
		date = s.Today()
	}
	n := s.cache.Tournaments.InvalidateDate(date)
	logging.Debug(s.logger, "tournament listings invalidated", logging.FieldDate, date, logging.FieldCount, n)
}

// fetchDate loads every planned listing for date. It returns the earliest nextGameDate reported.
func (s *Service) fetchDate(ctx context.Context, date string) (Day, string, error) {
	logger := logging.FromContext(ctx, s.logger)
	plan, err := season.Plan(date, s.now())
	if err != nil {
		return Day{}, "", err
	}

	day := Day{Date: date}
	var (
		all      []domaingames.ScheduleGame
		next     string
		firstErr error
		failures int
	)
	for _, req := range plan {
		day.Historical = req.Historical
		list, nextDate, err := s.fetchListing(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return Day{}, "", err
			}
			failures++
			if firstErr == nil {
				firstErr = err
			}
			logging.Warn(logger, "tournament fetch failed",
				logging.FieldTournament, string(req.Tournament),
				logging.FieldDate, date,
				"err", err,
			)
			continue
		}
		if len(list) > 0 && day.Tournament == "" {
			day.Tournament = req.Tournament
		}
		all = append(all, list...)
		if nextDate != "" && (next == "" || nextDate < next) {
			next = nextDate
		}
	}
	if failures == len(plan) && firstErr != nil {
		return Day{}, "", firstErr
	}
	if day.Tournament == "" && len(plan) > 0 {
		day.Tournament = plan[0].Tournament
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Start.Equal(all[j].Start) {
			return all[i].Start.Before(all[j].Start)
		}
		return all[i].ID < all[j].ID
	})
	day.Schedule = all
	day.Games = make([]domaingames.GameData, 0, len(all))
	for _, g := range all {
		if err := g.Validate(); err != nil {
			logging.Debug(logger, "inconsistent game state", logging.FieldGameID, g.ID, "err", err)
		}
		day.Games = append(day.Games, BuildGameData(g, s.goalEvents(ctx, g)))
	}
	logging.Debug(logger, "fetched day", logging.FieldDate, date, logging.FieldCount, len(day.Games))
	return day, next, nil
}

func (s *Service) fetchListing(ctx context.Context, req season.Request) ([]domaingames.ScheduleGame, string, error) {
	if req.Endpoint == season.EndpointSeasonSchedule {
		list, err := s.provider.FetchSeasonSchedule(ctx, req.Tournament, req.Season)
		if err != nil {
			return nil, "", err
		}
		return gamesOn(list, req.Date), "", nil
	}

	key := cache.TournamentKey(req.Tournament, req.Date)
	if resp, ok := s.cachedListing(key, req.Historical); ok {
		return resp.Games, resp.NextGameDate, nil
	}
	resp, err := s.provider.FetchGamesByDate(ctx, req.Tournament, req.Date)
	if err != nil {
		return nil, "", err
	}
	s.cache.Tournaments.Put(key, resp)
	s.remember(key, resp.Games)
	return resp.Games, resp.NextGameDate, nil
}

// cachedListing reads the tournament cache. Past seasons skip the start and live checks; otherwise the
// previously displayed list, judged against now, drives live-state invalidation: a shown game whose
// start has passed expects a live listing.
func (s *Service) cachedListing(key string, historical bool) (domaingames.ScheduleResponse, bool) {
	if historical {
		return s.cache.Tournaments.Get(key)
	}
	s.mu.Lock()
	shown, ok := s.displayed[key]
	s.mu.Unlock()
	if ok {
		return s.cache.Tournaments.GetWithLiveCheck(key, domaingames.ExpectedLive(shown, s.now()))
	}
	return s.cache.Tournaments.GetWithStartCheck(key)
}

func (s *Service) remember(key string, list []domaingames.ScheduleGame) {
	s.mu.Lock()
	s.displayed[key] = list
	s.mu.Unlock()
}

// goalEvents returns the processed goals of g, fetching rosters as needed. Many unresolved scorers go
// to the background queue when it is running; otherwise the rosters are fetched inline.
// Results with unresolved scorers are not cached so the names fill in once rosters arrive.
func (s *Service) goalEvents(ctx context.Context, g domaingames.ScheduleGame) []domaingames.GoalEventData {
	if !g.HasGoalEvents() {
		return nil
	}
	logger := logging.FromContext(ctx, s.logger)
	key := cache.GameKey{Season: g.Season, GameID: g.ID}
	score := cache.Score{Home: g.HomeTeam.Goals, Away: g.AwayTeam.Goals}

	if s.cache.GoalEvents.ClearIfScoreChanged(key, score) {
		logging.Debug(logger, "score changed, goal events cleared", logging.FieldGameID, g.ID)
	}
	if events, ok := s.cache.GoalEvents.Get(key); ok {
		return events
	}
	bypass := s.cache.GoalEvents.WasCleared(key)

	home, _ := s.cache.Players.Get(cache.TeamKey{Season: g.Season, TeamID: g.HomeTeam.TeamID})
	away, _ := s.cache.Players.Get(cache.TeamKey{Season: g.Season, TeamID: g.AwayTeam.TeamID})
	res := goals.Process(g, home, away)

	if len(res.Unresolved) > 0 {
		if res.NeedsBackgroundFetch(s.threshold) && s.queue.Running() {
			if s.queue.Enqueue(goals.Job{Season: g.Season, GameID: g.ID}) {
				logging.Debug(logger, "roster fetch queued", logging.FieldGameID, g.ID, logging.FieldCount, len(res.Unresolved))
			}
			return res.Events
		}
		detail, err := s.provider.FetchGameDetail(ctx, g.Season, g.ID, bypass)
		if err != nil {
			logging.Warn(logger, "game detail fetch failed", logging.FieldGameID, g.ID, "err", err)
			return res.Events
		}
		s.putRoster(g.Season, g.HomeTeam.TeamID, detail.HomeTeamPlayers)
		s.putRoster(g.Season, g.AwayTeam.TeamID, detail.AwayTeamPlayers)
		res = goals.Process(g, detail.HomeTeamPlayers, detail.AwayTeamPlayers)
		if len(res.Unresolved) > 0 {
			return res.Events
		}
	}

	s.cache.GoalEvents.Put(key, res.Events, g.IsLive(), score)
	return res.Events
}

// FetchRosters loads the rosters of one game into the player cache; it is the background queue handler.
func (s *Service) FetchRosters(ctx context.Context, job goals.Job) error {
	detail, err := s.provider.FetchGameDetail(ctx, job.Season, job.GameID, false)
	if err != nil {
		return err
	}
	s.putRoster(job.Season, detail.Game.HomeTeam.TeamID, detail.HomeTeamPlayers)
	s.putRoster(job.Season, detail.Game.AwayTeam.TeamID, detail.AwayTeamPlayers)
	return nil
}

func (s *Service) putRoster(seasonYear int, teamID string, roster players.Roster) {
	if teamID == "" || len(roster) == 0 {
		return
	}
	s.cache.Players.Put(cache.TeamKey{Season: seasonYear, TeamID: teamID}, roster)
}

// gamesOn keeps the schedule games starting on date in Helsinki time.
func gamesOn(list []domaingames.ScheduleGame, date string) []domaingames.ScheduleGame {
	var out []domaingames.ScheduleGame
	for _, g := range list {
		if timeutil.LocalDate(g.Start) == date {
			out = append(out, g)
		}
	}
	return out
}
