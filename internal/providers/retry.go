package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"liiga-teletext/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoffBase   = time.Second
	defaultBackoffMax    = 30 * time.Second

	rateLimitedDelay        = 60 * time.Second
	serviceUnavailableDelay = 30 * time.Second
	serverErrorDelay        = 5 * time.Second
	timeoutDelay            = 2 * time.Second
	connectionRefusedDelay  = 10 * time.Second
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy retries classified fetch failures. Generic network errors follow an exponential curve;
// the other retryable kinds use fixed delays.
type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration
	Sleep       Sleeper
	Logger      *slog.Logger
}

// DefaultRetryPolicy returns three attempts on a 1s..30s exponential curve.
func DefaultRetryPolicy(logger *slog.Logger) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultRetryAttempts,
		Base:        defaultBackoffBase,
		Max:         defaultBackoffMax,
		Sleep:       SleepContext,
		Logger:      logger,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultRetryAttempts
	}
	if p.Base <= 0 {
		p.Base = defaultBackoffBase
	}
	if p.Max <= 0 {
		p.Max = defaultBackoffMax
	}
	if p.Sleep == nil {
		p.Sleep = SleepContext
	}
	return p
}

func (p RetryPolicy) newBackOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.Base,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         p.Max,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

// Delay returns the wait before retrying after fe. The exponential curve advances only for generic network errors.
func (p RetryPolicy) Delay(fe *FetchError, curve *backoff.ExponentialBackOff) time.Duration {
	switch fe.Kind {
	case KindRateLimited:
		if fe.RetryAfter > rateLimitedDelay {
			return fe.RetryAfter
		}
		return rateLimitedDelay
	case KindServiceUnavailable:
		return serviceUnavailableDelay
	case KindServerError:
		return serverErrorDelay
	case KindTimeout:
		return timeoutDelay
	case KindConnectionRefused:
		return connectionRefusedDelay
	default:
		return curve.NextBackOff()
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or attempts run out.
// The returned error is the last classified failure.
func (p RetryPolicy) Do(ctx context.Context, rawURL string, op func(ctx context.Context, attempt int) error) error {
	p = p.withDefaults()
	curve := p.newBackOff()
	logger := logging.FromContext(ctx, p.Logger)

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = Classify(rawURL, err)

		fe, ok := AsFetchError(lastErr)
		if !ok || !fe.Kind.Retryable() || attempt == p.MaxAttempts {
			break
		}

		delay := p.Delay(fe, curve)
		logging.Warn(logger, "fetch retry",
			logging.FieldURL, rawURL,
			logging.FieldAttempt, attempt,
			"max_attempts", p.MaxAttempts,
			"kind", fe.Kind.String(),
			"delay", delay,
			"err", fe,
		)
		if err := p.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	if fe, ok := AsFetchError(lastErr); ok && fe.Kind.Retryable() {
		logging.Warn(logger, "fetch failed", logging.FieldURL, rawURL, "attempts", p.MaxAttempts, "err", lastErr)
	}
	return lastErr
}
