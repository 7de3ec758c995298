package main

import (
	"strings"
	"testing"
	"time"

	"complyd/internal/models"
)

func TestFormatSnapshot(t *testing.T) {
	s := &models.Snapshot{
		Sequence:     7,
		ElapsedMS:    35000,
		Timestamp:    time.Date(2026, 8, 1, 9, 30, 15, 0, time.UTC),
		BrowserInfo:  "Chrome: 1 window(s)",
		BrowserStats: "Tab switches (last 60s): 2",
		ProgramsInfo: "Flagged Tools Detected: NO",
		NetworkInfo:  "Active Interfaces: eth0",
	}

	out := formatSnapshot(s)

	if !strings.HasPrefix(out, "=== Snapshot 7  (2026-08-01 09:30:15, +35000ms)") {
		t.Errorf("header:\n%s", out)
	}
	for _, payload := range []string{
		s.BrowserInfo, s.BrowserStats, s.ProgramsInfo, s.NetworkInfo,
	} {
		if !strings.Contains(out, payload) {
			t.Errorf("missing payload %q:\n%s", payload, out)
		}
	}
}
