package activity

import "time"

// switchHistory is a fixed-capacity, insertion-ordered ring of switch-event
// timestamps that also drops entries older than the retention window when
// pruned. Timestamps arrive in non-decreasing order, so pruning only ever
// removes from the front.
type switchHistory struct {
	buf    []time.Time
	head   int // index of oldest entry
	count  int
	window time.Duration
}

func newSwitchHistory(capacity int, window time.Duration) *switchHistory {
	return &switchHistory{
		buf:    make([]time.Time, capacity),
		window: window,
	}
}

// Append records one event timestamp, overwriting the oldest entry when the
// ring is full.
func (h *switchHistory) Append(ts time.Time) {
	idx := (h.head + h.count) % len(h.buf)
	h.buf[idx] = ts
	if h.count < len(h.buf) {
		h.count++
	} else {
		h.head = (h.head + 1) % len(h.buf)
	}
}

// Prune drops every entry older than the window relative to now.
func (h *switchHistory) Prune(now time.Time) {
	cutoff := now.Add(-h.window)
	for h.count > 0 && h.buf[h.head].Before(cutoff) {
		h.head = (h.head + 1) % len(h.buf)
		h.count--
	}
}

// Len returns the number of retained entries.
func (h *switchHistory) Len() int {
	return h.count
}
