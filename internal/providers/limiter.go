package providers

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRequestInterval = 100 * time.Millisecond
	defaultRequestBurst    = 5
)

// RequestLimiter spaces outbound requests to stay under upstream quotas.
type RequestLimiter struct {
	limiter *rate.Limiter
}

// NewRequestLimiter allows one request per interval with the given burst. Non-positive values use the defaults.
func NewRequestLimiter(interval time.Duration, burst int) *RequestLimiter {
	if interval <= 0 {
		interval = defaultRequestInterval
	}
	if burst <= 0 {
		burst = defaultRequestBurst
	}
	return &RequestLimiter{limiter: rate.NewLimiter(rate.Every(interval), burst)}
}

// Wait blocks until a request may proceed or ctx is done. A nil limiter never blocks.
func (l *RequestLimiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
