package winapi

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"complyd/pkg/probe"
)

// Lister enumerates Windows processes via tasklist.
type Lister struct{}

// NewLister creates a tasklist-based process lister.
func NewLister() *Lister {
	return &Lister{}
}

// ListProcesses parses headerless CSV tasklist output. The memory column
// is kept as tasklist renders it (e.g. "10,240 K").
func (l *Lister) ListProcesses(ctx context.Context) ([]probe.ProcessRecord, error) {
	out, err := probe.RunCommand(ctx, processTimeout, "tasklist", "/FO", "CSV", "/NH")
	if err != nil {
		return nil, err
	}
	return parseTasklistCSV(out), nil
}

// parseTasklistCSV parses tasklist's quoted CSV rows:
// "name","pid","session","session#","mem".
func parseTasklistCSV(out string) []probe.ProcessRecord {
	var procs []probe.ProcessRecord
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		cols, err := r.Read()
		if err != nil || len(cols) < 2 {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(cols[1]))
		if err != nil {
			continue
		}
		rec := probe.ProcessRecord{Name: cols[0], PID: pid}
		if len(cols) >= 5 {
			rec.MemoryText = strings.TrimSpace(cols[4])
		}
		procs = append(procs, rec)
	}
	return procs
}
