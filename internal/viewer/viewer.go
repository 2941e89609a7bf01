// Package viewer wires configuration, telemetry, the fetch pipeline and the game service into a runnable viewer.
package viewer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	appgames "liiga-teletext/internal/app/games"
	"liiga-teletext/internal/cache"
	"liiga-teletext/internal/config"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/providers"
	"liiga-teletext/internal/ui"
)

var metricsSetup = metrics.Setup

// Viewer owns the long-lived components of one process.
type Viewer struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         *cache.Cache
	service       *appgames.Service
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a viewer backed by the Liiga API at cfg.APIDomain.
func New(cfg config.Config, logger *slog.Logger) *Viewer {
	return newViewerWithProvider(cfg, logger, nil, nil)
}

// newViewerWithProvider is used by tests to inject a provider or recorder.
func newViewerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Viewer {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	store := cache.New(cache.Options{
		Metrics:      recorder,
		HTTPCapacity: cfg.HTTPCacheSize,
	})
	if provider == nil {
		provider = newProviderFactory(logger, recorder, store).build(cfg)
	}
	svc := appgames.NewService(appgames.Config{
		Provider: provider,
		Cache:    store,
		Logger:   logger,
	})
	return &Viewer{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		cache:         store,
		service:       svc,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// Service exposes the game service.
func (v *Viewer) Service() *appgames.Service {
	return v.service
}

// Metrics exposes the recorder.
func (v *Viewer) Metrics() *metrics.Recorder {
	return v.metrics
}

// RunOnce prints one page to w and returns.
func (v *Viewer) RunOnce(ctx context.Context, w io.Writer, width int, opts ui.Options) error {
	v.startMetrics()
	defer v.shutdown()
	opts = v.uiOptions(opts)
	return ui.RunOnce(logging.WithLogger(ctx, v.logger), v.service, w, width, opts)
}

// Run starts the background roster queue and the interactive loop, and waits for both to stop.
func (v *Viewer) Run(ctx context.Context, term ui.Terminal, opts ui.Options) error {
	ctx, cancel := context.WithCancel(logging.WithLogger(ctx, v.logger))
	defer cancel()

	v.startMetrics()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.service.RunBackground(ctx)
	}()

	logging.Info(v.logger, "viewer starting", logging.FieldDate, opts.Date)
	err := ui.New(v.service, term, v.uiOptions(opts)).Run(ctx)

	cancel()
	wg.Wait()
	v.shutdown()
	logging.Info(v.logger, "viewer stopped")
	return err
}

func (v *Viewer) uiOptions(opts ui.Options) ui.Options {
	if opts.Logger == nil {
		opts.Logger = v.logger
	}
	if opts.Metrics == nil {
		opts.Metrics = v.metrics
	}
	if opts.StartingSoonInterval <= 0 {
		opts.StartingSoonInterval = v.cfg.MinRefreshInterval
	}
	return opts
}

func (v *Viewer) startMetrics() {
	if v.metricsServer == nil {
		return
	}
	launchServer("metrics", v.metricsServer, v.logger)
}

func (v *Viewer) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if v.metricsStop != nil {
		if err := v.metricsStop(shutdownCtx); err != nil {
			logging.Warn(v.logger, "metrics shutdown failed", "err", err)
		}
		v.metricsStop = nil
	}
	if v.metricsServer != nil {
		if err := v.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(v.logger, "metrics server shutdown failed", "err", err)
		}
		v.metricsServer = nil
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              "127.0.0.1:" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readHeaderTimeout,
				IdleTimeout:       idleTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger) {
	go func() {
		logging.Info(logger, "starting "+name+" server", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "err", err)
		}
	}()
}
