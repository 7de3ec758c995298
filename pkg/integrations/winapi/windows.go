// Package winapi implements the probe capabilities for Windows using the
// built-in command surface: PowerShell main-window enumeration, tasklist,
// netsh, and arp.
package winapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"complyd/pkg/probe"
)

const (
	windowTimeout  = 10 * time.Second
	processTimeout = 5 * time.Second
)

// Each titled process prints "pid<TAB>name<TAB>title" for lossless parsing.
const windowListScript = `Get-Process | Where-Object { $_.MainWindowTitle -ne '' } | ` +
	`ForEach-Object { "$($_.Id)` + "`t" + `$($_.ProcessName)` + "`t" + `$($_.MainWindowTitle)" }`

// Enumerator lists visible top-level windows by their process main window
// title.
type Enumerator struct{}

// NewEnumerator creates a Windows window enumerator.
func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

// TitlesAvailable is true: Windows exposes window titles without extra
// permissions.
func (e *Enumerator) TitlesAvailable() bool { return true }

// Enumerate runs the PowerShell enumeration and parses its tab-separated
// rows.
func (e *Enumerator) Enumerate(ctx context.Context) (*probe.WindowSnapshot, error) {
	out, err := probe.RunCommand(ctx, windowTimeout,
		"powershell", "-NoProfile", "-NonInteractive", "-Command", windowListScript)
	if err != nil {
		return nil, fmt.Errorf("window enumeration failed: %w", err)
	}
	return parseWindowRows(out), nil
}

// parseWindowRows converts "pid\tname\ttitle" rows into window records.
// Empty titles are skipped.
func parseWindowRows(out string) *probe.WindowSnapshot {
	snap := &probe.WindowSnapshot{}
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(strings.TrimRight(line, "\r"), "\t", 3)
		if len(parts) != 3 {
			continue
		}
		title := strings.TrimSpace(parts[2])
		if title == "" {
			continue
		}
		if _, err := strconv.Atoi(parts[0]); err != nil {
			continue
		}
		snap.Windows = append(snap.Windows, probe.WindowRecord{
			Handle:  parts[0],
			Title:   title,
			Process: parts[1],
		})
	}
	return snap
}
