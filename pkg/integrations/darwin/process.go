package darwin

import (
	"context"
	"strconv"
	"strings"

	"complyd/pkg/probe"
)

// Lister enumerates macOS processes via ps.
type Lister struct{}

// NewLister creates a ps-based process lister.
func NewLister() *Lister {
	return &Lister{}
}

// ListProcesses returns every process with its PID, base name, and
// resident memory.
func (l *Lister) ListProcesses(ctx context.Context) ([]probe.ProcessRecord, error) {
	out, err := probe.RunCommand(ctx, processTimeout, "ps", "-axo", "pid=,rss=,comm=")
	if err != nil {
		return nil, err
	}
	return parseProcessList(out), nil
}

// parseProcessList parses "pid rss comm" rows. rss is reported in KiB and
// comm may contain spaces (macOS app bundle paths).
func parseProcessList(out string) []probe.ProcessRecord {
	var procs []probe.ProcessRecord
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}

		var rss uint64
		if kb, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
			rss = kb * 1024
		}

		name := baseName(strings.Join(fields[2:], " "))
		if name == "" {
			continue
		}
		procs = append(procs, probe.ProcessRecord{Name: name, PID: pid, Memory: rss})
	}
	return procs
}
