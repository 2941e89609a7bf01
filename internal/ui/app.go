package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	appgames "liiga-teletext/internal/app/games"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/poller"
	"liiga-teletext/internal/render"
	"liiga-teletext/internal/teletext"
	"liiga-teletext/internal/terminal"
	"liiga-teletext/internal/timeutil"
)

// Terminal is the I/O the interactive loop runs on.
type Terminal struct {
	In   io.Reader
	Out  io.Writer
	Size terminal.SizeFunc
}

// rosterNotifier is implemented by fetchers whose background roster fetches can fill in fallback names.
type rosterNotifier interface {
	RosterUpdates() <-chan struct{}
}

type fetchResult struct {
	gen  int
	date string
	day  appgames.Day
	err  error
}

// App is the interactive viewer. All fields are owned by the Run goroutine.
type App struct {
	svc    DayFetcher
	term   Terminal
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	ctl    *poller.Controller
	resize *terminal.ResizeHandler
	frame  *render.Frame

	date      string
	page      *teletext.Page
	gen       int
	inFlight  context.CancelFunc
	lastInput time.Time

	// rosters arrived while a fetch was in flight; refetch after it renders.
	rostersStale bool
}

// New builds an App. A nil term.Size reports Fallback.
func New(svc DayFetcher, term Terminal, opts Options) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	size := term.Size
	if size == nil {
		size = func() (terminal.Dimensions, error) { return terminal.Fallback, nil }
	}
	term.Size = size
	return &App{
		svc:    svc,
		term:   term,
		opts:   opts,
		logger: opts.Logger,
		now:    now,
		ctl: poller.New(poller.Config{
			Logger:               opts.Logger,
			Metrics:              opts.Metrics,
			Now:                  now,
			StartingSoonInterval: opts.StartingSoonInterval,
		}),
		resize:    terminal.NewResizeHandler(size, terminal.DefaultDebounce, now),
		frame:     render.NewFrame(render.Options{Color: true, Links: !opts.DisableVideoLinks}),
		date:      opts.Date,
		lastInput: now(),
	}
}

// Controller exposes the refresh state machine.
func (a *App) Controller() *poller.Controller {
	return a.ctl
}

// Page returns the page currently shown, nil before the first fetch completes.
func (a *App) Page() *teletext.Page {
	return a.page
}

// Date returns the shown date.
func (a *App) Date() string {
	if a.date == "" {
		return a.svc.Today()
	}
	return a.date
}

// Run loops until q is pressed or ctx is done. Fetches run in their own goroutine and report back
// over a channel; the loop never blocks on the network.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan terminal.Key, 16)
	go func() {
		if err := terminal.ReadKeys(ctx, a.term.In, keys); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
			logging.Warn(a.logger, "key reader stopped", "err", err)
		}
	}()
	results := make(chan fetchResult, 1)
	var rosters <-chan struct{}
	if n, ok := a.svc.(rosterNotifier); ok {
		rosters = n.RosterUpdates()
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		if a.inFlight == nil && a.ctl.Due() {
			a.startFetch(ctx, results)
		}

		select {
		case <-ctx.Done():
			a.abandonFetch()
			return nil
		case k := <-keys:
			a.lastInput = a.now()
			if k == terminal.KeyQuit {
				a.abandonFetch()
				return nil
			}
			a.handleKey(k)
		case res := <-results:
			a.applyResult(res)
		case <-rosters:
			a.rostersUpdated()
		case <-timer.C:
			if d, changed := a.resize.Poll(); changed && a.page != nil {
				logging.Debug(a.logger, "terminal resized", "width", d.Width, "height", d.Height)
				a.page.HandleResize(d.Width, d.Height)
				a.draw()
			}
			timer.Reset(poller.PollInterval(a.now().Sub(a.lastInput)))
		}
	}
}

func (a *App) handleKey(k terminal.Key) {
	switch k {
	case terminal.KeyRight:
		if a.page != nil && a.page.TotalPages() > 1 {
			a.page.NextPage()
			a.draw()
		}
	case terminal.KeyLeft:
		if a.page != nil && a.page.TotalPages() > 1 {
			a.page.PreviousPage()
			a.draw()
		}
	case terminal.KeyShiftRight:
		a.shiftDate(1)
	case terminal.KeyShiftLeft:
		a.shiftDate(-1)
	case terminal.KeyRefresh:
		if !a.ctl.RequestRefresh() {
			logging.Debug(a.logger, "refresh request ignored")
			return
		}
		a.svc.InvalidateDay(a.date)
	}
}

func (a *App) shiftDate(days int) {
	next, err := timeutil.AddDays(a.Date(), days)
	if err != nil {
		logging.Warn(a.logger, "date change failed", logging.FieldDate, a.Date(), "err", err)
		return
	}
	logging.Info(a.logger, "date changed", logging.FieldDate, next)
	a.date = next
	a.gen++
	if a.abandonFetch() {
		return
	}
	a.ctl.Reset()
}

func (a *App) rostersUpdated() {
	if a.inFlight != nil {
		a.rostersStale = true
		return
	}
	logging.Debug(a.logger, "rosters updated, refreshing")
	a.ctl.Reset()
}

func (a *App) startFetch(ctx context.Context, results chan<- fetchResult) {
	if err := a.ctl.BeginFetch(); err != nil {
		logging.Warn(a.logger, "refresh not started", "err", err)
		return
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	a.inFlight = cancel
	gen, date := a.gen, a.date
	go func() {
		day, err := a.svc.FetchDay(fetchCtx, date)
		select {
		case results <- fetchResult{gen: gen, date: date, day: day, err: err}:
		case <-fetchCtx.Done():
		}
	}()
}

// abandonFetch cancels the in-flight fetch, if any, and reports whether there was one.
func (a *App) abandonFetch() bool {
	if a.inFlight == nil {
		return false
	}
	a.inFlight()
	a.inFlight = nil
	if err := a.ctl.Abandon(); err != nil {
		logging.Debug(a.logger, "abandon failed", "err", err)
	}
	return true
}

func (a *App) applyResult(res fetchResult) {
	if res.gen != a.gen || a.inFlight == nil {
		return
	}
	a.inFlight()
	a.inFlight = nil

	if err := a.ctl.FetchDone(res.day.Schedule, res.err); err != nil {
		logging.Warn(a.logger, "refresh state out of order", "err", err)
	}
	if res.day.RequestedDate == "" {
		res.day.RequestedDate = requestedDate(a.svc, res.date)
	}

	size := a.resize.Current()
	current := 0
	if a.page != nil && a.page.Subheader() == teletext.Subheader(res.day) {
		current = a.page.CurrentPage()
	}
	page, err := teletext.BuildPage(res.day, teletext.BuildOptions{
		Width:             size.Width,
		Height:            size.Height,
		Compact:           a.opts.Compact,
		Wide:              a.opts.Wide,
		DisableVideoLinks: a.opts.DisableVideoLinks,
		ShowFooter:        true,
		Err:               res.err,
	})
	if err != nil {
		logging.Error(a.logger, "page build failed", err)
	} else {
		page.SetCurrentPage(current)
		a.page = page
		a.draw()
	}
	if err := a.ctl.Rendered(); err != nil {
		logging.Warn(a.logger, "refresh state out of order", "err", err)
	}
	if a.rostersStale {
		a.rostersStale = false
		a.ctl.Reset()
	}
}

func (a *App) draw() {
	a.frame.Add(a.page.Placements()...)
	if err := a.frame.Flush(a.term.Out); err != nil {
		logging.Warn(a.logger, "frame flush failed", "err", err)
	}
}
