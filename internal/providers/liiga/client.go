// Package liiga talks to the Liiga JSON API.
package liiga

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"liiga-teletext/internal/cache"
	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/providers"
)

// Config controls how the client reaches the API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	Cache      *cache.Cache
	Retry      providers.RetryPolicy
	Limiter    *providers.RequestLimiter
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client fetches listings, game details and season schedules, memoizing bodies in the HTTP cache.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	cache      *cache.Cache
	retry      providers.RetryPolicy
	limiter    *providers.RequestLimiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

var _ providers.DataProvider = (*Client)(nil)

// NewClient constructs a client. A nil cache gets a private default one.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  cfg.UserAgent,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		cache:      cfg.Cache,
		retry:      cfg.Retry,
		limiter:    cfg.Limiter,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.cache == nil {
		c.cache = cache.New(cache.Options{Metrics: cfg.Metrics})
	}
	if c.retry.Logger == nil {
		c.retry.Logger = cfg.Logger
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerHalfOpenProbes,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		IsSuccessful: func(err error) bool {
			fe, ok := providers.AsFetchError(err)
			return err == nil || (ok && !fe.Kind.Retryable()) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn(c.logger, "circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchGamesByDate returns the listing for one tournament and date.
func (c *Client) FetchGamesByDate(ctx context.Context, serie games.Tournament, date string) (games.ScheduleResponse, error) {
	url := GamesURL(c.baseURL, serie, date)
	var resp games.ScheduleResponse
	err := c.fetch(ctx, EndpointGames, url, false, func(body []byte) (time.Duration, error) {
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, err
		}
		return c.cache.TTL().ForState(games.StateOf(resp.Games, c.now())), nil
	})
	if err != nil {
		return games.ScheduleResponse{}, err
	}
	return resp, nil
}

// FetchGameDetail returns one game with rosters. bypassCache skips both the detailed-game and HTTP caches.
func (c *Client) FetchGameDetail(ctx context.Context, season, gameID int, bypassCache bool) (games.DetailedGameResponse, error) {
	key := cache.GameKey{Season: season, GameID: gameID}
	if !bypassCache {
		if resp, ok := c.cache.Details.Get(key); ok {
			return resp, nil
		}
	}

	url := GameDetailURL(c.baseURL, season, gameID)
	var resp games.DetailedGameResponse
	err := c.fetch(ctx, EndpointDetail, url, bypassCache, func(body []byte) (time.Duration, error) {
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, err
		}
		return c.detailTTL(resp.Game), nil
	})
	if err != nil {
		return games.DetailedGameResponse{}, err
	}
	c.cache.Details.Put(key, resp)
	return resp, nil
}

// FetchSeasonSchedule returns every game of a tournament in a season.
func (c *Client) FetchSeasonSchedule(ctx context.Context, serie games.Tournament, season int) ([]games.ScheduleGame, error) {
	url := ScheduleURL(c.baseURL, serie, season)
	var list []games.ScheduleGame
	err := c.fetch(ctx, EndpointSchedule, url, false, func(body []byte) (time.Duration, error) {
		if err := json.Unmarshal(body, &list); err != nil {
			return 0, err
		}
		return c.cache.TTL().ForState(games.StateOf(list, c.now())), nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) detailTTL(g games.DetailedGame) time.Duration {
	sg := games.ScheduleGame{Start: g.Start, Started: g.Started, Ended: g.Ended}
	return c.cache.TTL().ForState(sg.State(c.now()))
}

// fetch serves url from the HTTP cache or the network. decode runs on the body and returns the TTL to cache it with;
// a decode failure is a payload error and leaves the cache untouched.
func (c *Client) fetch(ctx context.Context, endpoint, url string, bypassCache bool, decode func([]byte) (time.Duration, error)) error {
	if c.baseURL == "" {
		return providers.ErrProviderUnavailable
	}
	if !bypassCache {
		if body, ok := c.cache.HTTP.Get(url); ok {
			if _, err := decode(body); err == nil {
				return nil
			}
			c.cache.HTTP.Invalidate(url)
		}
	}

	var body []byte
	err := c.retry.Do(ctx, url, func(ctx context.Context, attempt int) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		out, err := c.breaker.Execute(func() (interface{}, error) {
			return c.do(ctx, endpoint, url, attempt)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &providers.FetchError{Kind: providers.KindCircuitOpen, URL: url, Err: err}
		}
		if err != nil {
			return err
		}
		body = out.([]byte)
		return nil
	})
	if err != nil {
		return err
	}

	ttl, err := decode(body)
	if err != nil {
		logFetch(ctx, c.logger, slog.LevelWarn, endpoint, "payload decode failed", logging.FieldURL, url, "err", err)
		return providers.PayloadError(url, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.cache.HTTP.Put(url, body, ttl)
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, url string, attempt int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &providers.FetchError{Kind: providers.KindClientError, URL: url, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = providers.Classify(url, err)
		c.metrics.RecordFetchAttempt(endpoint, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		retryAfter := parseRetryAfter(resp.Header.Get(headerRetryAfter), c.now())
		fe := providers.StatusError(url, resp.StatusCode, retryAfter, strings.TrimSpace(string(snippet)))
		c.metrics.RecordFetchAttempt(endpoint, time.Since(start), fe)
		if fe.Kind == providers.KindRateLimited {
			c.metrics.RecordRateLimit(endpoint, retryAfter)
		}
		logFetch(ctx, c.logger, slog.LevelWarn, endpoint, "unexpected status",
			logging.FieldURL, url,
			logging.FieldStatusCode, resp.StatusCode,
			logging.FieldAttempt, attempt,
			logging.FieldRequestID, requestID,
		)
		return nil, fe
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = providers.Classify(url, fmt.Errorf("read body: %w", err))
		c.metrics.RecordFetchAttempt(endpoint, time.Since(start), err)
		return nil, err
	}
	c.metrics.RecordFetchAttempt(endpoint, time.Since(start), nil)
	logFetch(ctx, c.logger, slog.LevelDebug, endpoint, "fetched",
		logging.FieldURL, url,
		logging.FieldAttempt, attempt,
		logging.FieldRequestID, requestID,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return body, nil
}

// logFetch logs through the context logger when present, tagging the endpoint kind.
func logFetch(ctx context.Context, fallback *slog.Logger, level slog.Level, endpoint, msg string, args ...any) {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	logger.Log(ctx, level, msg, append(args, slog.String("endpoint", endpoint))...)
}
