package x11

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"complyd/pkg/probe"
)

// Lister enumerates processes by walking /proc. No external tool needed.
type Lister struct {
	procRoot string
	pageSize uint64
}

// NewLister creates a /proc-based process lister.
func NewLister() *Lister {
	return &Lister{
		procRoot: "/proc",
		pageSize: uint64(os.Getpagesize()),
	}
}

// ListProcesses returns every numeric /proc entry with its name and
// resident memory. Unreadable entries (raced exits, permissions) are
// skipped rather than failing the listing.
func (l *Lister) ListProcesses(ctx context.Context) ([]probe.ProcessRecord, error) {
	entries, err := os.ReadDir(l.procRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", l.procRoot, err)
	}

	var procs []probe.ProcessRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		name, err := l.processName(pid)
		if err != nil || name == "" {
			continue
		}

		procs = append(procs, probe.ProcessRecord{
			Name:   name,
			PID:    pid,
			Memory: l.residentBytes(pid),
		})
	}
	return procs, nil
}

// processName extracts the comm field from /proc/<pid>/stat. The name sits
// between parentheses and may itself contain spaces.
func (l *Lister) processName(pid int) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.procRoot, strconv.Itoa(pid), "stat"))
	if err != nil {
		return "", err
	}

	s := string(data)
	start := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("malformed stat for pid %d", pid)
	}
	return s[start+1 : end], nil
}

// residentBytes reads the RSS page count from /proc/<pid>/statm. Returns 0
// when unreadable.
func (l *Lister) residentBytes(pid int) uint64 {
	data, err := os.ReadFile(filepath.Join(l.procRoot, strconv.Itoa(pid), "statm"))
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return pages * l.pageSize
}
