package viewer

import (
	"log/slog"

	"liiga-teletext/internal/cache"
	"liiga-teletext/internal/config"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/providers"
	"liiga-teletext/internal/providers/liiga"
)

// providerFactory assembles the Liiga client with the shared pipeline pieces (cache, limiter, retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	cache   *cache.Cache
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder, c *cache.Cache) providerFactory {
	return providerFactory{logger: logger, metrics: metrics, cache: c}
}

func (f providerFactory) build(cfg config.Config) *liiga.Client {
	return liiga.NewClient(liiga.Config{
		BaseURL: cfg.APIDomain,
		Timeout: cfg.FetchTimeout,
		Cache:   f.cache,
		Retry:   providers.DefaultRetryPolicy(f.logger),
		Limiter: providers.NewRequestLimiter(0, 0),
		Logger:  f.logger,
		Metrics: f.metrics,
	})
}
