// Package render turns positioned, styled text into ANSI terminal output.
package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"liiga-teletext/internal/teletext/layout"
)

// Color is an ANSI-256 palette index. Zero means the terminal default.
type Color uint8

// Teletext palette.
const (
	ColorDefault Color = 0
	ColorBlack   Color = 16
	ColorBlue    Color = 21
	ColorGreen   Color = 46
	ColorCyan    Color = 51
	ColorRed     Color = 196
	ColorYellow  Color = 226
	ColorWhite   Color = 231
)

const (
	esc        = "\x1b"
	reset      = esc + "[0m"
	clearAll   = esc + "[H" + esc + "[2J"
	clearLine  = esc + "[2K"
	osc8Open   = esc + "]8;;"
	osc8Close  = esc + "\\"
	PlayIcon   = "▶"
	fgTemplate = esc + "[38;5;%dm"
	bgTemplate = esc + "[48;5;%dm"
)

// Style describes how a placement is drawn. Link is an OSC 8 target.
type Style struct {
	FG   Color
	BG   Color
	Bold bool
	Link string
}

// Placement is text at a zero-based row and column.
type Placement struct {
	Row   int
	Col   int
	Text  string
	Style Style
}

// Options control escape sequences in the output.
type Options struct {
	Color bool
	Links bool
}

// Hyperlink wraps text in an OSC 8 link.
func Hyperlink(url, text string) string {
	return osc8Open + url + osc8Close + text + osc8Open + osc8Close
}

// Styled renders text with the style's escapes, closing with a reset.
func Styled(text string, st Style, opts Options) string {
	if opts.Links && st.Link != "" {
		text = Hyperlink(st.Link, text)
	}
	if !opts.Color {
		return text
	}
	var b strings.Builder
	if st.Bold {
		b.WriteString(esc + "[1m")
	}
	if st.FG != ColorDefault {
		fmt.Fprintf(&b, fgTemplate, st.FG)
	}
	if st.BG != ColorDefault {
		fmt.Fprintf(&b, bgTemplate, st.BG)
	}
	if b.Len() == 0 {
		return text
	}
	b.WriteString(text)
	b.WriteString(reset)
	return b.String()
}

// sortPlacements orders by row then column, keeping insertion order for ties.
func sortPlacements(ps []Placement) []Placement {
	out := append([]Placement(nil), ps...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Frame is a back buffer for one interactive frame. Every row is written once per Flush.
type Frame struct {
	opts       Options
	placements []Placement
}

// NewFrame returns an empty frame.
func NewFrame(opts Options) *Frame {
	return &Frame{opts: opts}
}

// Add queues placements.
func (f *Frame) Add(ps ...Placement) {
	f.placements = append(f.placements, ps...)
}

// Reset drops queued placements.
func (f *Frame) Reset() {
	f.placements = f.placements[:0]
}

// Flush clears the screen and writes all placements in a single Write, then resets the frame.
func (f *Frame) Flush(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(clearAll)
	rows := sortPlacements(f.placements)
	for i := 0; i < len(rows); {
		row := rows[i].Row
		fmt.Fprintf(&buf, esc+"[%d;1H"+clearLine, row+1)
		for ; i < len(rows) && rows[i].Row == row; i++ {
			p := rows[i]
			fmt.Fprintf(&buf, esc+"[%d;%dH", row+1, p.Col+1)
			buf.WriteString(Styled(p.Text, p.Style, f.opts))
		}
	}
	buf.WriteString(reset)
	f.Reset()
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteLines prints placements as plain lines without cursor movement, padding gaps with spaces.
// Rows without placements become empty lines.
func WriteLines(w io.Writer, placements []Placement, opts Options) error {
	var buf bytes.Buffer
	rows := sortPlacements(placements)
	line := 0
	for i := 0; i < len(rows); {
		row := rows[i].Row
		for ; line < row; line++ {
			buf.WriteByte('\n')
		}
		col := 0
		for ; i < len(rows) && rows[i].Row == row; i++ {
			p := rows[i]
			if p.Col > col {
				buf.WriteString(strings.Repeat(" ", p.Col-col))
				col = p.Col
			}
			buf.WriteString(Styled(p.Text, p.Style, opts))
			col += layout.DisplayWidth(p.Text)
		}
		buf.WriteByte('\n')
		line++
	}
	_, err := w.Write(buf.Bytes())
	return err
}
