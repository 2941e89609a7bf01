package liiga

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"liiga-teletext/internal/cache"
	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/providers"
	"liiga-teletext/internal/testutil"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

const gamesBody = `{
	"games": [{
		"id": 10, "season": 2024, "start": "2024-01-10T16:30:00Z", "end": "2024-01-10T19:00:00Z",
		"homeTeam": {"teamId": "1", "teamName": "Tappara", "goals": 3, "goalEvents": []},
		"awayTeam": {"teamId": "2", "teamName": "HIFK", "goals": 2, "goalEvents": []},
		"finishedType": "ENDED_DURING_REGULAR_GAME_TIME",
		"started": true, "ended": true, "gameTime": 3600, "serie": "RUNKOSARJA"
	}],
	"nextGameDate": "2024-01-12"
}`

type harness struct {
	client   *Client
	cache    *cache.Cache
	clock    *testutil.FakeClock
	recorder *metrics.Recorder
	mu       sync.Mutex
	requests []*http.Request
}

func newHarness(t *testing.T, respond func(n int, req *http.Request) (*http.Response, error)) *harness {
	t.Helper()
	h := &harness{clock: testutil.NewFakeClock(testNow), recorder: metrics.NewRecorder()}
	h.cache = cache.New(cache.Options{Now: h.clock.Now, Metrics: h.recorder})
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		h.mu.Lock()
		h.requests = append(h.requests, req)
		n := len(h.requests)
		h.mu.Unlock()
		return respond(n, req)
	})
	retry := providers.DefaultRetryPolicy(nil)
	retry.Sleep = h.clock.Sleep
	h.client = NewClient(Config{
		BaseURL:    "https://api.example.com/",
		HTTPClient: &http.Client{Transport: rt},
		Cache:      h.cache,
		Retry:      retry,
		Metrics:    h.recorder,
	})
	h.client.now = h.clock.Now
	return h
}

func (h *harness) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.requests)
}

func TestURLShapes(t *testing.T) {
	base := "https://api.example.com"
	if got := GamesURL(base, games.TournamentRegular, "2024-01-10"); got != base+"/games?tournament=runkosarja&date=2024-01-10" {
		t.Fatalf("unexpected games url %s", got)
	}
	if got := GameDetailURL(base, 2024, 42); got != base+"/games/2024/42" {
		t.Fatalf("unexpected detail url %s", got)
	}
	if got := ScheduleURL(base, games.TournamentPlayoffs, 2024); got != base+"/schedule?tournament=playoffs&week=1&season=2024" {
		t.Fatalf("unexpected schedule url %s", got)
	}
}

func TestFetchGamesByDateDecodesAndSetsHeaders(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, gamesBody), nil
	})

	resp, err := h.client.FetchGamesByDate(context.Background(), games.TournamentRegular, "2024-01-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Games) != 1 || resp.Games[0].HomeTeam.TeamName != "Tappara" || resp.NextGameDate != "2024-01-12" {
		t.Fatalf("unexpected response %+v", resp)
	}
	req := h.requests[0]
	if req.URL.String() != "https://api.example.com/games?tournament=runkosarja&date=2024-01-10" {
		t.Fatalf("unexpected request url %s", req.URL)
	}
	if req.Header.Get("Accept") != "application/json" || req.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected accept and request id headers, got %v", req.Header)
	}
	if req.Header.Get("User-Agent") != defaultUserAgent {
		t.Fatalf("unexpected user agent %q", req.Header.Get("User-Agent"))
	}
	if h.recorder.FetchCalls(EndpointGames) != 1 {
		t.Fatalf("expected fetch attempt recorded")
	}
}

func TestFetchMemoizesBodyWithStateTTL(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, gamesBody), nil
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := h.client.FetchGamesByDate(ctx, games.TournamentRegular, "2024-01-10"); err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
	}
	if h.calls() != 1 {
		t.Fatalf("expected second fetch served from cache, got %d requests", h.calls())
	}

	// Completed listing: cached for an hour.
	h.clock.Advance(59 * time.Minute)
	_, _ = h.client.FetchGamesByDate(ctx, games.TournamentRegular, "2024-01-10")
	if h.calls() != 1 {
		t.Fatalf("expected completed listing still cached")
	}
	h.clock.Advance(2 * time.Minute)
	_, _ = h.client.FetchGamesByDate(ctx, games.TournamentRegular, "2024-01-10")
	if h.calls() != 2 {
		t.Fatalf("expected refetch after an hour, got %d", h.calls())
	}
}

func TestFetchRetriesOn429(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		if n == 1 {
			resp := jsonResponse(http.StatusTooManyRequests, "slow down")
			resp.Header.Set("Retry-After", "5")
			return resp, nil
		}
		return jsonResponse(http.StatusOK, gamesBody), nil
	})

	if _, err := h.client.FetchGamesByDate(context.Background(), games.TournamentRegular, "2024-01-10"); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if h.calls() != 2 {
		t.Fatalf("expected 2 attempts, got %d", h.calls())
	}
	sleeps := h.clock.Sleeps()
	if len(sleeps) != 1 || sleeps[0] < 60*time.Second {
		t.Fatalf("expected a wait of at least 60s, got %v", sleeps)
	}
	if h.recorder.RateLimitHits(EndpointGames) != 1 || h.recorder.LastRetryAfter(EndpointGames) != 5*time.Second {
		t.Fatalf("expected rate limit recorded")
	}
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, "missing"), nil
	})
	_, err := h.client.FetchGamesByDate(context.Background(), games.TournamentRegular, "2024-01-10")
	fe, ok := providers.AsFetchError(err)
	if !ok || fe.Kind != providers.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if h.calls() != 1 {
		t.Fatalf("expected a single attempt, got %d", h.calls())
	}
}

func TestFetchPayloadErrorIsNotCached(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{bad json"), nil
	})
	_, err := h.client.FetchGamesByDate(context.Background(), games.TournamentRegular, "2024-01-10")
	fe, ok := providers.AsFetchError(err)
	if !ok || fe.Kind != providers.KindPayload {
		t.Fatalf("expected payload error, got %v", err)
	}
	if _, ok := h.cache.HTTP.Get(GamesURL("https://api.example.com", games.TournamentRegular, "2024-01-10")); ok {
		t.Fatalf("expected malformed body not cached")
	}
}

func TestFetchCanceledContextCachesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		cancel()
		return nil, req.Context().Err()
	})
	_, err := h.client.FetchGamesByDate(ctx, games.TournamentRegular, "2024-01-10")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if h.cache.HTTP.Stats().Len != 0 {
		t.Fatalf("expected nothing cached")
	}
}

func TestFetchGameDetailUsesAndBypassesCache(t *testing.T) {
	body := `{
		"game": {"id": 42, "season": 2024, "start": "2024-01-10T11:30:00Z", "started": true, "ended": false,
			"homeTeam": {"teamId": "1", "teamName": "Tappara", "goals": 1, "goalEvents": []},
			"awayTeam": {"teamId": "2", "teamName": "HIFK", "goals": 0, "goalEvents": []},
			"gameTime": 1800, "serie": "runkosarja"},
		"homeTeamPlayers": [{"id": 1, "firstName": "Mikko", "lastName": "Koivu", "line": 1}],
		"awayTeamPlayers": []
	}`
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})
	ctx := context.Background()

	resp, err := h.client.FetchGameDetail(ctx, 2024, 42, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.HomeTeamPlayers) != 1 || resp.HomeTeamPlayers[0].LastName != "Koivu" {
		t.Fatalf("unexpected roster %+v", resp.HomeTeamPlayers)
	}
	if _, err := h.client.FetchGameDetail(ctx, 2024, 42, false); err != nil || h.calls() != 1 {
		t.Fatalf("expected cached detail, calls=%d err=%v", h.calls(), err)
	}
	if _, err := h.client.FetchGameDetail(ctx, 2024, 42, true); err != nil || h.calls() != 2 {
		t.Fatalf("expected bypass to hit the network, calls=%d err=%v", h.calls(), err)
	}
	if h.requests[0].URL.Path != "/games/2024/42" {
		t.Fatalf("unexpected detail path %s", h.requests[0].URL.Path)
	}

	// Live game: HTTP and detail caches agree on the 8s TTL.
	h.clock.Advance(9 * time.Second)
	if _, err := h.client.FetchGameDetail(ctx, 2024, 42, false); err != nil || h.calls() != 3 {
		t.Fatalf("expected live detail to expire, calls=%d err=%v", h.calls(), err)
	}
}

func TestFetchSeasonSchedule(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		if req.URL.RawQuery != "tournament=playoffs&week=1&season=2024" {
			t.Fatalf("unexpected query %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `[{"id": 1, "season": 2024, "start": "2024-04-01T15:30:00Z", "serie": "PLAYOFFS",
			"homeTeam": {"teamName": "Ilves", "goals": 0}, "awayTeam": {"teamName": "Lukko", "goals": 0}}]`), nil
	})
	list, err := h.client.FetchSeasonSchedule(context.Background(), games.TournamentPlayoffs, 2024)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 || list[0].Serie != games.TournamentPlayoffs {
		t.Fatalf("unexpected schedule %+v", list)
	}
}

func TestCircuitOpensAfterConsecutiveFailures(t *testing.T) {
	h := newHarness(t, func(n int, req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, "down"), nil
	})
	ctx := context.Background()
	// Three attempts per fetch; the fifth consecutive failure trips the breaker.
	_, _ = h.client.FetchGamesByDate(ctx, games.TournamentRegular, "2024-01-10")
	_, err := h.client.FetchGamesByDate(ctx, games.TournamentRegular, "2024-01-10")
	fe, ok := providers.AsFetchError(err)
	if !ok || fe.Kind != providers.KindCircuitOpen {
		t.Fatalf("expected circuit open, got %v", err)
	}
	if h.calls() != 5 {
		t.Fatalf("expected 5 network attempts before the breaker opened, got %d", h.calls())
	}
}

func TestFetchWithoutBaseURL(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.FetchGamesByDate(context.Background(), games.TournamentRegular, "2024-01-10"); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

func TestLogFetchTagsEndpointAndPrefersContextLogger(t *testing.T) {
	fallback, fallbackBuf := testutil.NewBufferLogger()
	logFetch(context.Background(), fallback, slog.LevelInfo, EndpointGames, "fetched")
	if !strings.Contains(fallbackBuf.String(), "endpoint="+EndpointGames) {
		t.Fatalf("expected endpoint field, got %q", fallbackBuf.String())
	}

	scoped, scopedBuf := testutil.NewBufferLogger()
	ctx := logging.WithLogger(context.Background(), scoped)
	logFetch(ctx, fallback, slog.LevelInfo, EndpointDetail, "scoped")
	if !strings.Contains(scopedBuf.String(), "msg=scoped") {
		t.Fatalf("expected scoped logger to receive entry, got %q", scopedBuf.String())
	}
	if strings.Contains(fallbackBuf.String(), "scoped") {
		t.Fatalf("expected fallback logger untouched, got %q", fallbackBuf.String())
	}

	logFetch(context.Background(), nil, slog.LevelInfo, EndpointGames, "ignored")
}
