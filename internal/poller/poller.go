// Package poller decides when the viewer refreshes and tracks the health of recent refresh cycles.
package poller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domaingames "liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/metrics"
)

const (
	LiveInterval                = 60 * time.Second
	CompletedInterval           = time.Hour
	ScheduledInterval           = 5 * time.Minute
	DefaultStartingSoonInterval = 15 * time.Second
	ManualCooldown              = 10 * time.Second
)

// State is a step of the refresh cycle Idle → Fetching → Rendering → Waiting → Idle.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateRendering
	StateWaiting
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateRendering:
		return "rendering"
	case StateWaiting:
		return "waiting"
	default:
		return "idle"
	}
}

// ErrInvalidTransition is returned when a step is taken out of order.
var ErrInvalidTransition = errors.New("invalid refresh state transition")

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether there has been a recent success and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Config wires a Controller. StartingSoonInterval overrides DefaultStartingSoonInterval when positive.
type Config struct {
	Logger               *slog.Logger
	Metrics              *metrics.Recorder
	Now                  func() time.Time
	StartingSoonInterval time.Duration
	Cooldown             time.Duration
}

// Controller is the refresh state machine. It is driven by the UI loop and safe for concurrent reads.
type Controller struct {
	logger       *slog.Logger
	metrics      *metrics.Recorder
	now          func() time.Time
	startingSoon time.Duration
	cooldown     time.Duration

	mu         sync.Mutex
	state      State
	interval   time.Duration
	waitUntil  time.Time
	fetchStart time.Time
	lastManual time.Time
	status     Status
}

// New constructs a Controller in the Idle state, so the first refresh is due immediately.
func New(cfg Config) *Controller {
	c := &Controller{
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		now:          cfg.Now,
		startingSoon: cfg.StartingSoonInterval,
		cooldown:     cfg.Cooldown,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.startingSoon <= 0 {
		c.startingSoon = DefaultStartingSoonInterval
	}
	if c.cooldown <= 0 {
		c.cooldown = ManualCooldown
	}
	return c
}

// NextInterval is the minimum preferred interval over games: live 60s, starting soon the given
// interval, scheduled 5 minutes, completed an hour. An empty list refreshes at the scheduled pace.
func NextInterval(list []domaingames.ScheduleGame, now time.Time, startingSoon time.Duration) time.Duration {
	if len(list) == 0 {
		return ScheduledInterval
	}
	next := CompletedInterval
	for _, g := range list {
		var d time.Duration
		switch g.State(now) {
		case domaingames.StateLive:
			d = LiveInterval
		case domaingames.StateStartingSoon:
			d = startingSoon
		case domaingames.StateScheduled:
			d = ScheduledInterval
		default:
			d = CompletedInterval
		}
		next = min(next, d)
	}
	return next
}

// PollInterval is how often to poll for input given the time since the last keystroke.
func PollInterval(idle time.Duration) time.Duration {
	switch {
	case idle < 5*time.Second:
		return 50 * time.Millisecond
	case idle <= 30*time.Second:
		return 200 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}

// State returns the current step.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Due reports whether a refresh should start now, moving an expired wait back to Idle.
func (c *Controller) Due() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateWaiting && !c.now().Before(c.waitUntil) {
		c.state = StateIdle
	}
	return c.state == StateIdle
}

// BeginFetch moves Idle to Fetching.
func (c *Controller) BeginFetch() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.transition(StateIdle, StateFetching); err != nil {
		return err
	}
	c.fetchStart = c.now()
	c.status.LastAttempt = c.fetchStart
	return nil
}

// FetchDone records the fetch outcome and moves Fetching to Rendering. A failed fetch still renders
// (the page shows the error); the interval then follows the previously shown games.
func (c *Controller) FetchDone(list []domaingames.ScheduleGame, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if terr := c.transition(StateFetching, StateRendering); terr != nil {
		return terr
	}
	now := c.now()
	elapsed := now.Sub(c.fetchStart)
	if c.metrics != nil {
		c.metrics.RecordRefreshCycle(elapsed, err)
	}
	if err != nil {
		c.status.ConsecutiveFailures++
		c.status.LastError = err.Error()
		if c.interval == 0 {
			c.interval = ScheduledInterval
		}
		logging.Warn(c.logger, "refresh failed",
			logging.FieldDurationMS, elapsed.Milliseconds(),
			"failures", c.status.ConsecutiveFailures,
			"err", err,
		)
		return nil
	}
	c.status.ConsecutiveFailures = 0
	c.status.LastError = ""
	c.status.LastSuccess = now
	c.interval = NextInterval(list, now, c.startingSoon)
	logging.Info(c.logger, "refresh completed",
		logging.FieldCount, len(list),
		logging.FieldDurationMS, elapsed.Milliseconds(),
		"next_refresh", c.interval.String(),
	)
	return nil
}

// Abandon drops an in-flight fetch whose result is no longer wanted. The next refresh is due at once.
func (c *Controller) Abandon() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition(StateFetching, StateIdle)
}

// Rendered moves Rendering to Waiting until the next interval elapses.
func (c *Controller) Rendered() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.transition(StateRendering, StateWaiting); err != nil {
		return err
	}
	c.waitUntil = c.now().Add(c.interval)
	return nil
}

// RequestRefresh asks for an immediate refresh. It is refused while a refresh is in flight or within
// the cooldown of the previous manual request.
func (c *Controller) RequestRefresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if c.state == StateFetching || c.state == StateRendering {
		return false
	}
	if !c.lastManual.IsZero() && now.Sub(c.lastManual) < c.cooldown {
		logging.Debug(c.logger, "manual refresh ignored during cooldown")
		return false
	}
	c.lastManual = now
	c.state = StateIdle
	return true
}

// Reset forgets the wait so the next Due is true; used when the shown date changes.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateWaiting {
		c.state = StateIdle
	}
}

// Interval is the last computed refresh interval.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// NextRefresh is when the current wait ends; zero unless waiting.
func (c *Controller) NextRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateWaiting {
		return time.Time{}
	}
	return c.waitUntil
}

// Status returns a snapshot of the loop's recent health.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) transition(from, to State) error {
	if c.state != from {
		return fmt.Errorf("%w: %s to %s from %s", ErrInvalidTransition, from, to, c.state)
	}
	c.state = to
	return nil
}
