package teletext

import (
	"liiga-teletext/internal/app/games"
	"liiga-teletext/internal/providers"
	"liiga-teletext/internal/timeutil"
)

// Header is the title shown in the page header bar.
const Header = "SM-LIIGA"

// BuildOptions configure BuildPage.
type BuildOptions struct {
	Width             int
	Height            int
	Compact           bool
	Wide              bool
	DisableVideoLinks bool
	ShowFooter        bool
	IgnoreHeightLimit bool
	// Err is a fetch failure to show instead of games.
	Err error
}

// BuildPage turns a fetched day into page 221. A fetch error or an empty day becomes an error message row.
func BuildPage(day games.Day, opts BuildOptions) (*Page, error) {
	p := NewPage(PageNumber, Header, Subheader(day), Options{
		Width:             opts.Width,
		Height:            opts.Height,
		DisableVideoLinks: opts.DisableVideoLinks,
		ShowFooter:        opts.ShowFooter,
		IgnoreHeightLimit: opts.IgnoreHeightLimit,
	})
	if err := p.SetCompact(opts.Compact); err != nil {
		return nil, err
	}
	if err := p.SetWide(opts.Wide); err != nil {
		return nil, err
	}
	p.SetRows(Rows(day, opts.Err))
	return p, nil
}

// Subheader is the tournament label and the shown date.
func Subheader(day games.Day) string {
	date := day.Date
	if date == "" {
		date = day.RequestedDate
	}
	label := day.Tournament.Label()
	if label == "" {
		return timeutil.FinnishDate(date)
	}
	return label + " " + timeutil.FinnishDate(date)
}

// Rows builds the content rows of a day.
func Rows(day games.Day, err error) []Row {
	if err != nil {
		return []Row{ErrorRow(providers.UserMessage(err))}
	}
	if len(day.Games) == 0 {
		return []Row{ErrorRow(providers.UserMessage(providers.ErrNoGames))}
	}
	rows := make([]Row, 0, len(day.Games)+1)
	if day.FutureGames {
		rows = append(rows, FutureGamesRow("Seuraavat ottelut "+timeutil.FinnishDate(day.Date)))
	}
	for _, g := range day.Games {
		rows = append(rows, GameRow(g))
	}
	return rows
}
