package activity

import (
	"testing"
	"time"
)

func TestSwitchHistoryAppendAndLen(t *testing.T) {
	h := newSwitchHistory(500, 60*time.Second)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		h.Append(base.Add(time.Duration(i) * time.Second))
	}
	if h.Len() != 10 {
		t.Errorf("Len() = %d, want 10", h.Len())
	}
}

func TestSwitchHistoryCapacity(t *testing.T) {
	h := newSwitchHistory(500, 60*time.Second)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 750; i++ {
		h.Append(base.Add(time.Duration(i) * time.Millisecond))
	}
	if h.Len() != 500 {
		t.Errorf("Len() = %d, want capacity 500", h.Len())
	}

	// The survivors are the newest 500; pruning against a cutoff just
	// after the dropped range must remove nothing.
	h.Prune(base.Add(750*time.Millisecond + 59*time.Second))
	if h.Len() != 500 {
		t.Errorf("Len() after no-op prune = %d, want 500", h.Len())
	}
}

func TestSwitchHistoryTimeEviction(t *testing.T) {
	h := newSwitchHistory(500, 60*time.Second)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	h.Append(base)
	h.Append(base.Add(30 * time.Second))
	h.Append(base.Add(70 * time.Second))

	h.Prune(base.Add(95 * time.Second))

	// base and base+30s are now older than 60s; base+70s survives.
	if h.Len() != 1 {
		t.Errorf("Len() after prune = %d, want 1", h.Len())
	}
}

func TestSwitchHistoryEvictionBoundary(t *testing.T) {
	h := newSwitchHistory(500, 60*time.Second)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	h.Append(base)

	// Exactly 60s old is still in the window (ts >= now-60s).
	h.Prune(base.Add(60 * time.Second))
	if h.Len() != 1 {
		t.Errorf("entry exactly at window edge evicted")
	}

	h.Prune(base.Add(60*time.Second + time.Millisecond))
	if h.Len() != 0 {
		t.Errorf("entry past window edge retained")
	}
}

func TestSwitchHistoryWrapAroundOrder(t *testing.T) {
	h := newSwitchHistory(4, 60*time.Second)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		h.Append(base.Add(time.Duration(i) * time.Second))
	}
	if h.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", h.Len())
	}

	// Oldest surviving entry is base+2s; pruning with a cutoff between
	// the 3rd and 4th survivor drops exactly two.
	h.Prune(base.Add(3*time.Second + 60*time.Second + time.Millisecond))
	if h.Len() != 2 {
		t.Errorf("Len() after partial prune = %d, want 2", h.Len())
	}
}
