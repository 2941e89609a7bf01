package viewer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"liiga-teletext/internal/config"
	domaingames "liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/domain/players"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/testutil"
	"liiga-teletext/internal/ui"
)

func stubProvider() *testutil.StubProvider {
	start := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)
	return &testutil.StubProvider{
		ByDate: map[string]domaingames.ScheduleResponse{
			testutil.ListingKey(domaingames.TournamentRegular, "2025-01-10"): {
				Games: []domaingames.ScheduleGame{testutil.EndedGame(1, start, domaingames.FinishedRegulation)},
			},
		},
	}
}

func TestNewViewerWithProviderHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	v := newViewerWithProvider(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, stubProvider(), nil)
	if v.Metrics() == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if v.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewViewerWithMetricsDisabledSkipsServer(t *testing.T) {
	v := newViewerWithProvider(config.Config{}, nil, stubProvider(), nil)
	if v.Metrics() == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if v.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewViewerWithMetricsEnabledMountsHandler(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), handler, func(context.Context) error { return nil }, nil
	}

	v := newViewerWithProvider(config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9999"}}, nil, stubProvider(), nil)
	if v.metricsServer == nil {
		t.Fatalf("expected metrics server")
	}
	if v.metricsServer.Addr() != "127.0.0.1:9999" {
		t.Fatalf("expected loopback addr, got %s", v.metricsServer.Addr())
	}
	mux, ok := v.metricsServer.Handler().(*http.ServeMux)
	if !ok {
		t.Fatalf("expected a mux handler")
	}
	if _, pattern := mux.Handler(httptest.NewRequest(http.MethodGet, "/metrics", nil)); pattern != "/metrics" {
		t.Fatalf("expected /metrics route, got %q", pattern)
	}
}

func TestNewViewerUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	v := newViewerWithProvider(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, stubProvider(), rec)
	if v.Metrics() != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if v.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for injected recorder")
	}
}

func TestNewBuildsLiigaClientPipeline(t *testing.T) {
	v := New(config.Config{APIDomain: "https://liiga.test"}, nil)
	if v.Service() == nil {
		t.Fatalf("expected service")
	}
}

func TestRunOncePrintsPage(t *testing.T) {
	p := stubProvider()
	v := newViewerWithProvider(config.Config{}, nil, p, nil)

	var out bytes.Buffer
	if err := v.RunOnce(context.Background(), &out, 80, ui.Options{Date: "2025-01-10"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "HIFK") || !strings.Contains(out.String(), "10.1.2025") {
		t.Fatalf("expected the game and date, got %q", out.String())
	}
	if p.DateCallCount() == 0 {
		t.Fatalf("expected listing fetches")
	}
}

func TestRunOnceResolvesEveryScorerWithoutBackgroundQueue(t *testing.T) {
	start := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)
	game := testutil.WithGoals(testutil.EndedGame(1, start, domaingames.FinishedRegulation),
		[]domaingames.GoalEvent{
			testutil.Goal(1, 1, 1, 100, 1, 0),
			testutil.Goal(2, 2, 1, 200, 2, 0),
			testutil.Goal(3, 3, 2, 1300, 3, 0),
			testutil.Goal(4, 4, 3, 2500, 4, 0),
		}, nil)
	p := &testutil.StubProvider{
		ByDate: map[string]domaingames.ScheduleResponse{
			testutil.ListingKey(domaingames.TournamentRegular, "2025-01-10"): {Games: []domaingames.ScheduleGame{game}},
		},
		Details: map[int]domaingames.DetailedGameResponse{1: {
			HomeTeamPlayers: players.Roster{
				testutil.Player(1, "Sebastian", "Aho"),
				testutil.Player(2, "Aleksander", "Barkov"),
				testutil.Player(3, "Patrik", "Laine"),
				testutil.Player(4, "Mikko", "Rantanen"),
			},
		}},
	}
	v := newViewerWithProvider(config.Config{}, nil, p, nil)

	var out bytes.Buffer
	if err := v.RunOnce(context.Background(), &out, 80, ui.Options{Date: "2025-01-10"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, name := range []string{"Aho", "Barkov", "Laine", "Rantanen"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("expected scorer %s in output, got %q", name, out.String())
		}
	}
	if strings.Contains(out.String(), "Pelaaja") {
		t.Fatalf("expected no fallback names, got %q", out.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	orig := shutdownTimeout
	shutdownTimeout = time.Second
	defer func() { shutdownTimeout = orig }()

	v := newViewerWithProvider(config.Config{}, nil, stubProvider(), nil)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- v.Run(ctx, ui.Terminal{In: pr, Out: io.Discard}, ui.Options{Date: "2025-01-10"})
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected run to stop after cancel")
	}
}

func TestNetHTTPServerAccessors(t *testing.T) {
	handler := http.NewServeMux()
	srv := &http.Server{Addr: ":1234", Handler: handler}
	s := netHTTPServer{srv: srv}

	if s.Addr() != ":1234" {
		t.Fatalf("expected addr passthrough")
	}
	if s.Handler() != handler {
		t.Fatalf("expected handler passthrough")
	}
	_ = s.Shutdown(context.Background())
}
