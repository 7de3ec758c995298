// Package activity derives browser usage heuristics from consecutive window
// enumerations: tab-switch counts from title changes, plus DevTools and
// extension-page exposure from title markers.
package activity

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"complyd/internal/browser"
	"complyd/internal/extensions"
	"complyd/pkg/probe"
)

const (
	historyCapacity = 500
	historyWindow   = 60 * time.Second
)

// Tracker diffs window titles across polls. All mutable state is owned by
// the polling goroutine; only the lifetime counter is atomic so callers can
// display it live.
type Tracker struct {
	now     func() time.Time
	scanner *extensions.Scanner

	prevTitles map[string]string
	history    *switchHistory
	total      atomic.Uint64
}

// NewTracker builds a tracker that appends the given scanner's extension
// summary to each stats payload.
func NewTracker(scanner *extensions.Scanner) *Tracker {
	return &Tracker{
		now:        time.Now,
		scanner:    scanner,
		prevTitles: make(map[string]string),
		history:    newSwitchHistory(historyCapacity, historyWindow),
	}
}

// WithClock overrides the time source. Test hook.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// TotalSwitches returns the lifetime switch count. Safe to call from any
// goroutine.
func (t *Tracker) TotalSwitches() uint64 {
	return t.total.Load()
}

// Observe folds one enumeration pass into the tracker state and renders
// the browser-stats payload. Must be called from the polling goroutine
// only.
func (t *Tracker) Observe(snap *probe.WindowSnapshot) string {
	if snap == nil {
		return "Browser stats unavailable: no window data."
	}
	if snap.Titleless {
		return t.observeTitleless(snap)
	}

	now := t.now()
	titles := make(map[string]string, len(snap.Windows))
	devtoolsOpen := false
	extensionsOpen := false

	for _, w := range snap.Windows {
		if _, ok := browser.ClassifyWindow(w); !ok {
			continue
		}
		titles[w.Handle] = w.Title
		tl := strings.ToLower(w.Title)
		if strings.Contains(tl, "devtools") || strings.Contains(tl, "developer tools") {
			devtoolsOpen = true
		}
		if strings.Contains(tl, "extension") {
			extensionsOpen = true
		}
	}

	for handle, title := range titles {
		if old, ok := t.prevTitles[handle]; ok && old != title {
			t.total.Add(1)
			t.history.Append(now)
		}
	}
	t.history.Prune(now)
	t.prevTitles = titles

	lines := []string{
		fmt.Sprintf("Tab switches (last 60s): %d", t.history.Len()),
		fmt.Sprintf("Total tab switches: %d", t.total.Load()),
		"",
		fmt.Sprintf("DevTools detected: %s", yesNo(devtoolsOpen)),
		fmt.Sprintf("Extensions/settings page open: %s", yesNo(extensionsOpen)),
		"",
		"Extensions (approx, from disk):",
		t.scanner.Summary(),
	}
	return strings.Join(lines, "\n")
}

func (t *Tracker) observeTitleless(snap *probe.WindowSnapshot) string {
	note := snap.Note
	if note == "" {
		note = "window titles not available"
	}

	lines := []string{
		fmt.Sprintf("Tab switches (last 60s): N/A (%s)", note),
		"Total tab switches: N/A",
		"",
		"Running Browsers:",
	}
	if len(snap.RunningBrowsers) == 0 {
		lines = append(lines, "  (none detected)")
	} else {
		browsers := append([]string(nil), snap.RunningBrowsers...)
		sort.Strings(browsers)
		for _, b := range browsers {
			lines = append(lines, "  * "+b)
		}
	}
	lines = append(lines, "", "Extensions (approx, from disk):", t.scanner.Summary())
	return strings.Join(lines, "\n")
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
