// Package procfall provides the title-less fallback window enumerator for
// platforms without a usable window-enumeration API: browser presence is
// inferred from the process table only.
package procfall

import (
	"context"
	"fmt"
	"strings"
	"time"

	"complyd/internal/browser"
	"complyd/pkg/probe"
)

const processTimeout = 5 * time.Second

// Enumerator detects running browsers via ps. It never yields titles.
type Enumerator struct {
	note string
}

// NewEnumerator creates a fallback enumerator whose snapshots carry the
// given degradation note.
func NewEnumerator(note string) *Enumerator {
	if note == "" {
		note = "window enumeration not supported on this OS"
	}
	return &Enumerator{note: note}
}

// TitlesAvailable is false by definition of this fallback.
func (e *Enumerator) TitlesAvailable() bool { return false }

// Enumerate scans the process table for known browser process names.
func (e *Enumerator) Enumerate(ctx context.Context) (*probe.WindowSnapshot, error) {
	out, err := probe.RunCommand(ctx, processTimeout, "ps", "-ax", "-o", "comm=")
	if err != nil {
		return nil, fmt.Errorf("process scan failed: %w", err)
	}

	found := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		if family, ok := browser.ClassifyProcess(name); ok {
			found[family] = true
		}
	}

	snap := &probe.WindowSnapshot{
		Titleless: true,
		Note:      e.note,
	}
	for family := range found {
		snap.RunningBrowsers = append(snap.RunningBrowsers, family)
	}
	return snap, nil
}
