// Package teletext holds the page model: rows, pagination and the mapping to screen placements.
package teletext

import (
	"errors"

	"liiga-teletext/internal/teletext/layout"
)

const (
	// PageNumber is the teletext page of Liiga results.
	PageNumber = 221

	// ChromeHeight counts the header, subheader, footer and spacer lines.
	ChromeHeight = 5

	MinScreenWidth  = 40
	MinScreenHeight = 8
)

// ErrModeConflict is returned when compact and wide mode are enabled together.
var ErrModeConflict = errors.New("compact and wide mode are mutually exclusive")

// Options configure a new page.
type Options struct {
	Width             int
	Height            int
	DisableVideoLinks bool
	ShowFooter        bool
	IgnoreHeightLimit bool
}

// Page is an in-memory teletext page. Pagination is recomputed whenever rows, size or mode change.
type Page struct {
	number    int
	header    string
	subheader string
	rows      []Row

	width   int
	height  int
	current int

	compact           bool
	wide              bool
	disableVideoLinks bool
	showFooter        bool
	ignoreHeightLimit bool

	bounds []span
}

type span struct {
	start, end int
}

// NewPage creates an empty page.
func NewPage(number int, header, subheader string, opts Options) *Page {
	p := &Page{
		number:            number,
		header:            header,
		subheader:         subheader,
		width:             max(opts.Width, MinScreenWidth),
		height:            opts.Height,
		disableVideoLinks: opts.DisableVideoLinks,
		showFooter:        opts.ShowFooter,
		ignoreHeightLimit: opts.IgnoreHeightLimit,
	}
	p.paginate()
	return p
}

func (p *Page) Number() int {
	return p.number
}

func (p *Page) Header() string {
	return p.header
}

func (p *Page) Subheader() string {
	return p.subheader
}

func (p *Page) Rows() []Row {
	return p.rows
}

func (p *Page) Width() int {
	return p.width
}

func (p *Page) Height() int {
	return p.height
}

func (p *Page) Compact() bool {
	return p.compact
}

func (p *Page) Wide() bool {
	return p.wide
}

// SetSubheader replaces the subheader text.
func (p *Page) SetSubheader(s string) {
	p.subheader = s
}

// SetRows replaces all content rows and keeps the current page in range.
func (p *Page) SetRows(rows []Row) {
	p.rows = append([]Row(nil), rows...)
	p.paginate()
}

// SetCompact toggles compact mode. It fails while wide mode is on.
func (p *Page) SetCompact(on bool) error {
	if on && p.wide {
		return ErrModeConflict
	}
	p.compact = on
	p.paginate()
	return nil
}

// SetWide toggles wide mode. It fails while compact mode is on.
func (p *Page) SetWide(on bool) error {
	if on && p.compact {
		return ErrModeConflict
	}
	p.wide = on
	p.paginate()
	return nil
}

// WideActive reports whether wide mode is on and the screen is wide enough for two columns.
func (p *Page) WideActive() bool {
	return p.wide && p.width >= layout.WideMinWidth
}

// HandleResize applies a new terminal size, recomputing pagination and clamping the current page.
// It reports whether anything changed and the page needs a re-render.
func (p *Page) HandleResize(width, height int) bool {
	width = max(width, MinScreenWidth)
	if width == p.width && height == p.height {
		return false
	}
	p.width = width
	p.height = height
	p.paginate()
	return true
}

// AvailableHeight is the number of content lines that fit between the header and the footer.
func (p *Page) AvailableHeight() int {
	return max(p.height-ChromeHeight, 0)
}

// RowHeight is the number of lines a row takes in the current mode.
func (p *Page) RowHeight(r Row) int {
	switch r.Kind {
	case RowError:
		return 2
	case RowFutureGamesHeader:
		return 1
	}
	if p.compact {
		return 1
	}
	base := 1 + goalLines(r.Game) + 1
	if p.WideActive() {
		return (base + 1) / 2
	}
	return base
}

// paginate packs rows greedily into pages; every page holds at least one row.
func (p *Page) paginate() {
	p.bounds = p.bounds[:0]
	if len(p.rows) == 0 {
		p.bounds = append(p.bounds, span{})
		p.clamp()
		return
	}
	if p.ignoreHeightLimit {
		p.bounds = append(p.bounds, span{0, len(p.rows)})
		p.clamp()
		return
	}
	avail := p.AvailableHeight()
	start, used := 0, 0
	for i, r := range p.rows {
		h := p.RowHeight(r)
		if i > start && used+h > avail {
			p.bounds = append(p.bounds, span{start, i})
			start, used = i, 0
		}
		used += h
	}
	p.bounds = append(p.bounds, span{start, len(p.rows)})
	p.clamp()
}

func (p *Page) clamp() {
	p.current = max(0, min(p.current, len(p.bounds)-1))
}

// TotalPages is always at least one.
func (p *Page) TotalPages() int {
	return max(len(p.bounds), 1)
}

// CurrentPage is the zero-based page index.
func (p *Page) CurrentPage() int {
	return p.current
}

// SetCurrentPage selects page n clamped into range.
func (p *Page) SetCurrentPage(n int) {
	p.current = n
	p.clamp()
}

// NextPage advances, wrapping to the first page.
func (p *Page) NextPage() {
	p.current = (p.current + 1) % p.TotalPages()
}

// PreviousPage goes back, wrapping to the last page.
func (p *Page) PreviousPage() {
	total := p.TotalPages()
	p.current = (p.current - 1 + total) % total
}

// VisibleRows returns the rows of the current page. The slice must not be modified.
func (p *Page) VisibleRows() []Row {
	b := p.bounds[p.current]
	return p.rows[b.start:b.end:b.end]
}

// PageBounds returns the [start, end) row range of every page.
func (p *Page) PageBounds() [][2]int {
	out := make([][2]int, len(p.bounds))
	for i, b := range p.bounds {
		out[i] = [2]int{b.start, b.end}
	}
	return out
}

// HasMore reports rows beyond the current page.
func (p *Page) HasMore() bool {
	return p.bounds[p.current].end < len(p.rows)
}
