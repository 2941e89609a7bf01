package goals

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/providers"
)

const (
	DefaultQueueCapacity = 256
	DefaultSpacing       = 450 * time.Millisecond
	DefaultJitter        = 0.2
)

// Job asks for one game's rosters to be fetched.
type Job struct {
	Season int
	GameID int
}

// Handler performs a job.
type Handler func(ctx context.Context, job Job) error

// QueueConfig configures a Queue. Zero values use the defaults.
type QueueConfig struct {
	Capacity int
	Spacing  time.Duration
	Jitter   float64
	Handler  Handler
	Logger   *slog.Logger
	Sleep    providers.Sleeper
	Random   func() float64
}

// Queue is a bounded background queue with a single consumer. Jobs are spaced apart so a cold start
// does not burst the API; producers never block and drop jobs when the queue is full.
// Each successful job signals Updates so the caller can rebuild what it rendered from fallbacks.
type Queue struct {
	jobs    chan Job
	updates chan struct{}
	running atomic.Bool
	spacing time.Duration
	jitter  float64
	handler Handler
	logger  *slog.Logger
	sleep   providers.Sleeper
	random  func() float64

	mu      sync.Mutex
	pending map[Job]bool
	dropped int
}

// NewQueue builds a queue; call Run to start the consumer.
func NewQueue(cfg QueueConfig) *Queue {
	q := &Queue{
		jobs:    make(chan Job, orDefault(cfg.Capacity, DefaultQueueCapacity)),
		updates: make(chan struct{}, 1),
		spacing: cfg.Spacing,
		jitter:  cfg.Jitter,
		handler: cfg.Handler,
		logger:  cfg.Logger,
		sleep:   cfg.Sleep,
		random:  cfg.Random,
		pending: make(map[Job]bool),
	}
	if q.spacing <= 0 {
		q.spacing = DefaultSpacing
	}
	if q.jitter <= 0 {
		q.jitter = DefaultJitter
	}
	if q.sleep == nil {
		q.sleep = providers.SleepContext
	}
	if q.random == nil {
		q.random = rand.Float64
	}
	return q
}

// Enqueue adds job unless it is already pending or the queue is full. It never blocks.
func (q *Queue) Enqueue(job Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending[job] {
		return false
	}
	select {
	case q.jobs <- job:
		q.pending[job] = true
		return true
	default:
		q.dropped++
		return false
	}
}

// Pending returns the number of queued jobs.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Dropped returns how many jobs were rejected because the queue was full.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Updates receives a value after jobs complete; signals coalesce while unread.
func (q *Queue) Updates() <-chan struct{} {
	return q.updates
}

// Running reports whether a consumer is active. Without one, queued jobs would never run.
func (q *Queue) Running() bool {
	return q.running.Load()
}

// Run consumes jobs until ctx is done.
func (q *Queue) Run(ctx context.Context) {
	q.running.Store(true)
	defer q.running.Store(false)
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.process(ctx, job)
			if err := q.sleep(ctx, q.Delay()); err != nil {
				return
			}
		}
	}
}

func (q *Queue) process(ctx context.Context, job Job) {
	var err error
	if q.handler != nil {
		err = q.handler(ctx, job)
	}
	q.mu.Lock()
	delete(q.pending, job)
	q.mu.Unlock()

	if err != nil {
		logging.Warn(q.logger, "background roster fetch failed",
			logging.FieldSeason, job.Season,
			logging.FieldGameID, job.GameID,
			"err", err,
		)
		return
	}
	if q.handler == nil {
		return
	}
	select {
	case q.updates <- struct{}{}:
	default:
	}
}

// Delay is the spacing with uniform jitter of ±jitter applied.
func (q *Queue) Delay() time.Duration {
	factor := 1 + q.jitter*(2*q.random()-1)
	return time.Duration(float64(q.spacing) * factor)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
