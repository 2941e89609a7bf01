package terminal

import (
	"bytes"
	"context"
	"io"
)

// Key is a decoded keystroke the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyShiftLeft
	KeyShiftRight
	KeyRefresh
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyShiftLeft:
		return "shift+left"
	case KeyShiftRight:
		return "shift+right"
	case KeyRefresh:
		return "refresh"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

const ctrlC = 0x03

var sequences = []struct {
	seq []byte
	key Key
}{
	{[]byte("\x1b[1;2D"), KeyShiftLeft},
	{[]byte("\x1b[1;2C"), KeyShiftRight},
	{[]byte("\x1b[d"), KeyShiftLeft},
	{[]byte("\x1b[c"), KeyShiftRight},
	{[]byte("\x1b[D"), KeyLeft},
	{[]byte("\x1b[C"), KeyRight},
	{[]byte("\x1bOD"), KeyLeft},
	{[]byte("\x1bOC"), KeyRight},
}

// ParseKeys decodes raw terminal input. Unrecognized bytes and escape sequences are skipped.
func ParseKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		if b[0] == 0x1b {
			n, key := matchSequence(b)
			if key != KeyUnknown {
				keys = append(keys, key)
			}
			b = b[n:]
			continue
		}
		switch b[0] {
		case 'q', 'Q', ctrlC:
			keys = append(keys, KeyQuit)
		case 'r', 'R':
			keys = append(keys, KeyRefresh)
		}
		b = b[1:]
	}
	return keys
}

// matchSequence returns the length of the escape sequence at the start of b and its key.
func matchSequence(b []byte) (int, Key) {
	for _, s := range sequences {
		if bytes.HasPrefix(b, s.seq) {
			return len(s.seq), s.key
		}
	}
	// skip an unknown CSI sequence up to its final byte
	if len(b) > 1 && b[1] == '[' {
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1, KeyUnknown
			}
		}
		return len(b), KeyUnknown
	}
	return 1, KeyUnknown
}

// ReadKeys reads r until it fails or ctx is done, sending decoded keys to out.
func ReadKeys(ctx context.Context, r io.Reader, out chan<- Key) error {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, k := range ParseKeys(buf[:n]) {
			select {
			case out <- k:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
