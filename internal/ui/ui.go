// Package ui drives the teletext page: one-shot output and the interactive refresh loop.
package ui

import (
	"context"
	"io"
	"log/slog"
	"time"

	appgames "liiga-teletext/internal/app/games"
	"liiga-teletext/internal/metrics"
	"liiga-teletext/internal/render"
	"liiga-teletext/internal/teletext"
)

// DayFetcher is the part of the game service the UI needs.
type DayFetcher interface {
	FetchDay(ctx context.Context, date string) (appgames.Day, error)
	InvalidateDay(date string)
	Today() string
}

// Options control what is shown and how.
type Options struct {
	// Date is YYYY-MM-DD; empty means today.
	Date              string
	Compact           bool
	Wide              bool
	DisableVideoLinks bool
	// Color enables ANSI styling in one-shot output. Interactive mode always uses color.
	Color bool

	StartingSoonInterval time.Duration
	Logger               *slog.Logger
	Metrics              *metrics.Recorder
	Now                  func() time.Time
}

// RunOnce fetches one day and prints the whole page to w without a height limit.
// A fetch failure is printed as the page's error message and also returned.
func RunOnce(ctx context.Context, svc DayFetcher, w io.Writer, width int, opts Options) error {
	day, fetchErr := svc.FetchDay(ctx, opts.Date)
	if day.RequestedDate == "" {
		day.RequestedDate = requestedDate(svc, opts.Date)
	}
	page, err := teletext.BuildPage(day, teletext.BuildOptions{
		Width:             width,
		Compact:           opts.Compact,
		Wide:              opts.Wide,
		DisableVideoLinks: opts.DisableVideoLinks,
		IgnoreHeightLimit: true,
		Err:               fetchErr,
	})
	if err != nil {
		return err
	}
	if err := render.WriteLines(w, page.Placements(), render.Options{Color: opts.Color, Links: opts.Color && !opts.DisableVideoLinks}); err != nil {
		return err
	}
	return fetchErr
}

func requestedDate(svc DayFetcher, date string) string {
	if date != "" {
		return date
	}
	return svc.Today()
}
