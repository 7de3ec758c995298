// Package programs renders the running-process payload and checks the
// listing against the configured flagged-tool names.
package programs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"complyd/pkg/probe"
)

// AnyFlagged reports whether any process name contains one of the flagged
// substrings, case-insensitively.
func AnyFlagged(procs []probe.ProcessRecord, flagged []string) bool {
	for _, p := range procs {
		nl := strings.ToLower(p.Name)
		for _, f := range flagged {
			if f != "" && strings.Contains(nl, strings.ToLower(f)) {
				return true
			}
		}
	}
	return false
}

// FormatReport renders the process listing sorted case-insensitively by
// name, led by the flagged-tool boolean.
func FormatReport(procs []probe.ProcessRecord, flagged []string) string {
	sorted := append([]probe.ProcessRecord(nil), procs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	detected := "NO"
	if AnyFlagged(sorted, flagged) {
		detected = "YES"
	}

	lines := []string{
		fmt.Sprintf("Flagged Tools Detected: %s", detected),
		"",
		"Running Programs:",
	}
	for _, p := range sorted {
		line := fmt.Sprintf("  * %s  (PID %d)", p.Name, p.PID)
		if p.MemoryText != "" {
			line += "  Mem: " + p.MemoryText
		} else if p.Memory > 0 {
			line += "  Mem: " + humanize.IBytes(p.Memory)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
