// Package season decides which endpoint and tournaments serve a requested date.
package season

import (
	"fmt"
	"time"

	"liiga-teletext/internal/domain/games"
	"liiga-teletext/internal/timeutil"
)

// Endpoint selects the listing endpoint for a request.
type Endpoint int

const (
	EndpointGamesByDate Endpoint = iota
	EndpointSeasonSchedule
)

func (e Endpoint) String() string {
	if e == EndpointSeasonSchedule {
		return "schedule"
	}
	return "games"
}

// Request is one listing fetch the service should perform for a date.
type Request struct {
	Endpoint   Endpoint
	Tournament games.Tournament
	Date       string
	Season     int
	Historical bool
}

// IsHistorical reports whether date belongs to a season that has already been played out relative to now.
// Both are compared as Helsinki calendar dates; future dates are never historical.
func IsHistorical(date, now time.Time) bool {
	d, n := localDay(date), localDay(now)
	if d.After(n) {
		return false
	}
	if d.Year() < n.Year() {
		return true
	}
	cur, req := n.Month(), d.Month()
	switch {
	case UseScheduleForPlayoffs(date, now):
		return true
	case cur == time.August && req >= time.May && req <= time.July:
		return true
	case cur >= time.May && cur <= time.July && (req >= time.September || req <= time.April):
		return true
	}
	return false
}

// UseScheduleForPlayoffs reports an off-season (June to August) request for a spring month of the same year.
// Those playoff games are no longer served by the games-by-date endpoint.
func UseScheduleForPlayoffs(date, now time.Time) bool {
	d, n := localDay(date), localDay(now)
	if d.After(n) || d.Year() != n.Year() {
		return false
	}
	cur, req := n.Month(), d.Month()
	return cur >= time.June && cur <= time.August && req >= time.March && req <= time.May
}

// TournamentsFor lists the tournaments that can have games in the month of date.
func TournamentsFor(date time.Time) []games.Tournament {
	switch localDay(date).Month() {
	case time.July, time.August:
		return []games.Tournament{games.TournamentPreseason}
	case time.September:
		return []games.Tournament{games.TournamentPreseason, games.TournamentRegular}
	case time.October, time.November, time.December, time.January, time.February:
		return []games.Tournament{games.TournamentRegular}
	case time.March, time.April:
		return []games.Tournament{games.TournamentRegular, games.TournamentPlayoffs, games.TournamentPlayout, games.TournamentQualifications}
	default:
		return []games.Tournament{games.TournamentPlayoffs, games.TournamentPlayout, games.TournamentQualifications}
	}
}

// SeasonFor names the season containing date by its ending year; July onwards belongs to the next season.
func SeasonFor(date time.Time) int {
	d := localDay(date)
	if d.Month() >= time.July {
		return d.Year() + 1
	}
	return d.Year()
}

// Plan builds the listing requests for a YYYY-MM-DD date.
func Plan(date string, now time.Time) ([]Request, error) {
	parsed, err := time.ParseInLocation(timeutil.DateLayout, date, timeutil.Helsinki())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	historical := IsHistorical(parsed, now)
	useSchedule := UseScheduleForPlayoffs(parsed, now)
	seasonYear := SeasonFor(parsed)

	tournaments := TournamentsFor(parsed)
	out := make([]Request, 0, len(tournaments))
	for _, t := range tournaments {
		req := Request{
			Endpoint:   EndpointGamesByDate,
			Tournament: t,
			Date:       date,
			Season:     seasonYear,
			Historical: historical,
		}
		if useSchedule && t != games.TournamentRegular && t != games.TournamentPreseason {
			req.Endpoint = EndpointSeasonSchedule
		}
		out = append(out, req)
	}
	return out, nil
}

func localDay(t time.Time) time.Time {
	t = t.In(timeutil.Helsinki())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, timeutil.Helsinki())
}
