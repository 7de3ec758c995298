package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"complyd/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONLSink appends one JSON object per snapshot to a session folder,
// alongside a session_info.json metadata file written at open time.
type JSONLSink struct {
	sessionDir string
	file       *os.File
}

type jsonlEntry struct {
	Snapshot       uint64 `json:"snapshot"`
	TimestampMS    int64  `json:"timestamp_ms"`
	TimestampHuman string `json:"timestamp_human"`
	BrowserInfo    string `json:"browser_info"`
	BrowserStats   string `json:"browser_stats"`
	NetworkInfo    string `json:"network_info"`
	ProgramsInfo   string `json:"programs_info"`
}

type sessionInfo struct {
	SessionID       string `json:"session_id"`
	SessionStart    string `json:"session_start"`
	MonitoringType  string `json:"monitoring_type"`
	IntervalSeconds int    `json:"snapshot_interval_seconds"`
}

// NewJSONLSink creates a session folder under logDir and opens the
// append-only snapshot stream inside it.
func NewJSONLSink(logDir, label string, interval time.Duration) (*JSONLSink, error) {
	if label == "" {
		label = "session"
	}
	sessionID := fmt.Sprintf("%s_%s", label, time.Now().Format("20060102_150405"))
	sessionDir := filepath.Join(logDir, "session_"+sessionID)
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create session folder")
	}

	info := sessionInfo{
		SessionID:       sessionID,
		SessionStart:    time.Now().Format("2006-01-02 15:04:05"),
		MonitoringType:  "system_integrity_only",
		IntervalSeconds: int(interval.Seconds()),
	}
	meta, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session metadata")
	}
	if err := os.WriteFile(filepath.Join(sessionDir, "session_info.json"), meta, 0644); err != nil {
		return nil, errors.Wrap(err, "failed to write session metadata")
	}

	file, err := os.OpenFile(
		filepath.Join(sessionDir, "system_integrity.jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot stream")
	}

	return &JSONLSink{sessionDir: sessionDir, file: file}, nil
}

// SessionDir returns the folder this sink writes into.
func (s *JSONLSink) SessionDir() string {
	return s.sessionDir
}

// Record appends one snapshot as a single JSON line.
func (s *JSONLSink) Record(snapshot *models.Snapshot) error {
	entry := jsonlEntry{
		Snapshot:       snapshot.Sequence,
		TimestampMS:    snapshot.ElapsedMS,
		TimestampHuman: snapshot.Timestamp.Format("15:04:05.000"),
		BrowserInfo:    snapshot.BrowserInfo,
		BrowserStats:   snapshot.BrowserStats,
		NetworkInfo:    snapshot.NetworkInfo,
		ProgramsInfo:   snapshot.ProgramsInfo,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to append snapshot")
	}
	return nil
}

// Close flushes and closes the snapshot stream.
func (s *JSONLSink) Close() error {
	return s.file.Close()
}
