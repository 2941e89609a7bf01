// Package terminal wraps the controlling terminal: size detection, raw mode, the alternate screen and key input.
package terminal

import (
	"errors"
	"io"

	"golang.org/x/term"
)

const (
	enterAltScreen = "\x1b[?1049h\x1b[?25l"
	leaveAltScreen = "\x1b[?25h\x1b[?1049l"
)

// ErrSizeUnavailable is returned when the terminal reports no usable size.
var ErrSizeUnavailable = errors.New("terminal size unavailable")

// Dimensions is a terminal size in cells.
type Dimensions struct {
	Width  int
	Height int
}

// Valid reports a positive width and height.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Fallback is used after repeated size detection failures.
var Fallback = Dimensions{Width: 80, Height: 24}

// SizeFunc reports the current terminal size.
type SizeFunc func() (Dimensions, error)

// SizeOf returns a SizeFunc for the terminal on fd.
func SizeOf(fd int) SizeFunc {
	return func() (Dimensions, error) {
		w, h, err := term.GetSize(fd)
		if err != nil {
			return Dimensions{}, errors.Join(ErrSizeUnavailable, err)
		}
		d := Dimensions{Width: w, Height: h}
		if !d.Valid() {
			return d, ErrSizeUnavailable
		}
		return d, nil
	}
}

// IsTerminal reports whether fd is a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Enter switches fd to raw mode and w to the alternate screen with a hidden cursor.
// The returned function restores both.
func Enter(fd int, w io.Writer) (func() error, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, enterAltScreen); err != nil {
		_ = term.Restore(fd, state)
		return nil, err
	}
	return func() error {
		_, werr := io.WriteString(w, leaveAltScreen)
		return errors.Join(werr, term.Restore(fd, state))
	}, nil
}
