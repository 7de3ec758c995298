package sink

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"complyd/internal/models"
)

func testSnapshot(seq uint64, elapsed int64) *models.Snapshot {
	return &models.Snapshot{
		Sequence:     seq,
		ElapsedMS:    elapsed,
		Timestamp:    time.Date(2026, 8, 1, 9, 30, 15, 250_000_000, time.UTC),
		BrowserInfo:  "Chrome: 1 window(s)\n  * Docs - Google Chrome",
		BrowserStats: "Tab switches (last 60s): 0",
		NetworkInfo:  "Active Interfaces: eth0",
		ProgramsInfo: "Flagged Tools Detected: NO",
	}
}

func TestJSONLSinkWritesSession(t *testing.T) {
	logDir := t.TempDir()

	s, err := NewJSONLSink(logDir, "exam", 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if !strings.Contains(filepath.Base(s.SessionDir()), "session_exam_") {
		t.Errorf("session dir = %q", s.SessionDir())
	}

	meta, err := os.ReadFile(filepath.Join(s.SessionDir(), "session_info.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"monitoring_type": "system_integrity_only"`,
		`"snapshot_interval_seconds": 5`,
		`"session_id": "exam_`,
	} {
		if !strings.Contains(string(meta), want) {
			t.Errorf("session_info.json missing %q:\n%s", want, meta)
		}
	}
}

func TestJSONLSinkRecordFormat(t *testing.T) {
	s, err := NewJSONLSink(t.TempDir(), "", time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Record(testSnapshot(1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(testSnapshot(2, 1000)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(s.SessionDir(), "system_integrity.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var entry jsonlEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if entry.Snapshot != 2 || entry.TimestampMS != 1000 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.TimestampHuman != "09:30:15.250" {
		t.Errorf("timestamp_human = %q", entry.TimestampHuman)
	}
	if !strings.Contains(entry.BrowserInfo, "Docs - Google Chrome") {
		t.Errorf("browser_info = %q", entry.BrowserInfo)
	}
}

type stubSink struct {
	recorded int
	closed   bool
	err      error
}

func (s *stubSink) Record(*models.Snapshot) error {
	s.recorded++
	return s.err
}

func (s *stubSink) Close() error {
	s.closed = true
	return s.err
}

func TestMultiSinkFanOut(t *testing.T) {
	a := &stubSink{}
	b := &stubSink{}
	m := NewMultiSink(a, nil, b)

	if err := m.Record(testSnapshot(1, 0)); err != nil {
		t.Fatal(err)
	}
	if a.recorded != 1 || b.recorded != 1 {
		t.Errorf("recorded counts: a=%d b=%d", a.recorded, b.recorded)
	}
}

func TestMultiSinkChildFailureIsolated(t *testing.T) {
	bad := &stubSink{err: errors.New("disk full")}
	good := &stubSink{}
	m := NewMultiSink(bad, good)

	err := m.Record(testSnapshot(1, 0))
	if err == nil {
		t.Fatal("expected combined error")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error = %v", err)
	}
	if good.recorded != 1 {
		t.Error("healthy sink skipped after sibling failure")
	}
}

func TestMultiSinkClose(t *testing.T) {
	bad := &stubSink{err: errors.New("close failed")}
	good := &stubSink{}
	m := NewMultiSink(bad, good)

	if err := m.Close(); err == nil {
		t.Error("expected first close error")
	}
	if !bad.closed || !good.closed {
		t.Error("all sinks must be closed")
	}
}

var _ Sink = (*JSONLSink)(nil)
var _ Sink = (*DBSink)(nil)
var _ Sink = (*MultiSink)(nil)
