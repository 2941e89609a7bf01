package terminal

import (
	"time"
)

const (
	DefaultDebounce = 100 * time.Millisecond
	maxSizeFailures = 3
)

// ResizeHandler polls the terminal size and reports a change once the new size has been stable for the
// debounce period. Failed or zero-sized reports fall back to the last good size, then to Fallback after
// three consecutive failures.
type ResizeHandler struct {
	size     SizeFunc
	now      func() time.Time
	debounce time.Duration

	current  Dimensions
	lastGood Dimensions
	failures int

	pending      Dimensions
	pendingSince time.Time
	hasPending   bool
}

// NewResizeHandler starts from the size reported now. A zero debounce uses DefaultDebounce; nil now uses time.Now.
func NewResizeHandler(size SizeFunc, debounce time.Duration, now func() time.Time) *ResizeHandler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if now == nil {
		now = time.Now
	}
	h := &ResizeHandler{size: size, now: now, debounce: debounce}
	h.current = h.detect()
	return h
}

// Current returns the last reported size.
func (h *ResizeHandler) Current() Dimensions {
	return h.current
}

// Poll samples the size and reports a debounced change.
func (h *ResizeHandler) Poll() (Dimensions, bool) {
	d := h.detect()
	if d == h.current {
		h.hasPending = false
		return h.current, false
	}
	now := h.now()
	if !h.hasPending || d != h.pending {
		h.pending = d
		h.pendingSince = now
		h.hasPending = true
		return h.current, false
	}
	if now.Sub(h.pendingSince) < h.debounce {
		return h.current, false
	}
	h.current = d
	h.hasPending = false
	return d, true
}

func (h *ResizeHandler) detect() Dimensions {
	d, err := h.size()
	if err == nil && d.Valid() {
		h.failures = 0
		h.lastGood = d
		return d
	}
	h.failures++
	if h.failures >= maxSizeFailures || !h.lastGood.Valid() {
		return Fallback
	}
	return h.lastGood
}
