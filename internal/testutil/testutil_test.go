package testutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"liiga-teletext/internal/domain/games"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFakeClockSleepAdvances(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	if err := clock.Sleep(context.Background(), time.Minute); err != nil {
		t.Fatalf("expected nil sleep error, got %v", err)
	}
	clock.Advance(time.Second)
	if got := clock.Now(); !got.Equal(start.Add(61 * time.Second)) {
		t.Fatalf("expected advanced clock, got %v", got)
	}
	if sleeps := clock.Sleeps(); len(sleeps) != 1 || sleeps[0] != time.Minute {
		t.Fatalf("expected one recorded sleep, got %v", sleeps)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := clock.Sleep(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled sleep, got %v", err)
	}
}

func TestFixtures(t *testing.T) {
	start := time.Date(2025, 1, 10, 16, 30, 0, 0, time.UTC)
	ended := EndedGame(1, start, games.FinishedOvertime)
	if err := ended.Validate(); err != nil {
		t.Fatalf("expected valid ended fixture, got %v", err)
	}
	if !LiveGame(2, start, 100).IsLive() {
		t.Fatalf("expected live fixture")
	}
	g := WithGoals(ScheduledGame(3, start), []games.GoalEvent{Goal(1, 10, 1, 60, 1, 0)}, nil)
	if g.HomeTeam.Goals != 1 || g.AwayTeam.Goals != 0 || !g.HasGoalEvents() {
		t.Fatalf("unexpected goal fixture %+v", g)
	}
	if !Player(10, "Mikko", "Koivu").IsActive() {
		t.Fatalf("expected active player fixture")
	}
}

func TestStubProviderCounts(t *testing.T) {
	key := ListingKey(games.TournamentRegular, "2025-01-10")
	p := &StubProvider{ByDate: map[string]games.ScheduleResponse{
		key: {Games: []games.ScheduleGame{ScheduledGame(1, time.Now())}},
	}}
	resp, err := p.FetchGamesByDate(context.Background(), games.TournamentRegular, "2025-01-10")
	if err != nil || len(resp.Games) != 1 {
		t.Fatalf("expected one game, got %d (%v)", len(resp.Games), err)
	}
	if _, err := p.FetchGameDetail(context.Background(), 2025, 1, true); err == nil {
		t.Fatalf("expected error for missing detail")
	}
	if p.DateCallCount() != 1 || p.DetailCallCount() != 1 || len(p.Bypassed) != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}
}

func TestHTTPHelpers(t *testing.T) {
	client := ClientFunc(func(r *http.Request) (*http.Response, error) {
		return Response(r, http.StatusTeapot, `{"ok":true}`), nil
	})
	resp, err := client.Get("http://example.test/x")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusTeapot || string(body) != `{"ok":true}` {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
}

func TestRecorderHelper(t *testing.T) {
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestBufferLogger(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello")
	if buf.Len() == 0 {
		t.Fatalf("expected debug output to be buffered")
	}
}
