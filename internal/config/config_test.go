package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Agent.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.Agent.PollInterval)
	}
	if len(cfg.Agent.FlaggedProcesses) != 1 || cfg.Agent.FlaggedProcesses[0] != "cluely" {
		t.Errorf("FlaggedProcesses = %v", cfg.Agent.FlaggedProcesses)
	}
	if !cfg.Sink.JSONL || !cfg.Sink.Database {
		t.Errorf("both sinks should be enabled by default")
	}
	if cfg.Sink.LogDir != "logs" {
		t.Errorf("LogDir = %q", cfg.Sink.LogDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"Interval below minimum", func(c *Config) { c.Agent.PollInterval = 500 * time.Millisecond }, true},
		{"Interval above maximum", func(c *Config) { c.Agent.PollInterval = 301 * time.Second }, true},
		{"Interval at minimum", func(c *Config) { c.Agent.PollInterval = time.Second }, false},
		{"Interval at maximum", func(c *Config) { c.Agent.PollInterval = 300 * time.Second }, false},
		{"No sinks enabled", func(c *Config) { c.Sink.JSONL = false; c.Sink.Database = false }, true},
		{"JSONL without log dir", func(c *Config) { c.Sink.LogDir = "" }, true},
		{"Database sink only", func(c *Config) { c.Sink.JSONL = false; c.Sink.LogDir = "" }, false},
		{"Empty PID file", func(c *Config) { c.Daemon.PIDFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetPollInterval(t *testing.T) {
	cfg := Default()

	if err := cfg.SetPollInterval(10 * time.Second); err != nil {
		t.Fatal(err)
	}
	if cfg.Agent.PollInterval != 10*time.Second || cfg.Agent.PollSeconds != 10 {
		t.Errorf("interval not applied: %v / %v", cfg.Agent.PollInterval, cfg.Agent.PollSeconds)
	}

	if err := cfg.SetPollInterval(100 * time.Millisecond); err == nil {
		t.Error("sub-minimum interval accepted")
	}
	if err := cfg.SetPollInterval(time.Hour); err == nil {
		t.Error("over-maximum interval accepted")
	}
	if cfg.Agent.PollInterval != 10*time.Second {
		t.Errorf("rejected interval mutated config: %v", cfg.Agent.PollInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COMPLYD_POLL_INTERVAL", "2.5")
	t.Setenv("COMPLYD_FLAGGED_PROCESSES", "cluely, teamviewer ,")
	t.Setenv("COMPLYD_DB_PATH", "/tmp/test.db")
	t.Setenv("COMPLYD_LOG_DIR", "/tmp/logs")
	t.Setenv("COMPLYD_SESSION_LABEL", "exam42")
	t.Setenv("COMPLYD_SINK_JSONL", "false")
	t.Setenv("COMPLYD_PID_FILE", "/tmp/test.pid")

	cfg := New()

	if cfg.Agent.PollInterval != 2500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 2.5s", cfg.Agent.PollInterval)
	}
	want := []string{"cluely", "teamviewer"}
	if len(cfg.Agent.FlaggedProcesses) != len(want) {
		t.Fatalf("FlaggedProcesses = %v, want %v", cfg.Agent.FlaggedProcesses, want)
	}
	for i, name := range want {
		if cfg.Agent.FlaggedProcesses[i] != name {
			t.Errorf("FlaggedProcesses[%d] = %q, want %q", i, cfg.Agent.FlaggedProcesses[i], name)
		}
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Sink.LogDir != "/tmp/logs" || cfg.Sink.SessionLabel != "exam42" {
		t.Errorf("sink config = %+v", cfg.Sink)
	}
	if cfg.Sink.JSONL {
		t.Error("COMPLYD_SINK_JSONL=false not applied")
	}
	if cfg.Daemon.PIDFile != "/tmp/test.pid" {
		t.Errorf("PIDFile = %q", cfg.Daemon.PIDFile)
	}
}

func TestLoadFromEnvRejectsOutOfRangeInterval(t *testing.T) {
	t.Setenv("COMPLYD_POLL_INTERVAL", "0.1")
	cfg := New()
	if cfg.Agent.PollInterval != 5*time.Second {
		t.Errorf("out-of-range interval applied: %v", cfg.Agent.PollInterval)
	}

	t.Setenv("COMPLYD_POLL_INTERVAL", "not-a-number")
	cfg = New()
	if cfg.Agent.PollInterval != 5*time.Second {
		t.Errorf("garbage interval applied: %v", cfg.Agent.PollInterval)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "complyd.yaml")
	content := `
agent:
  poll_interval_seconds: 1.5
  flagged_processes:
    - cluely
    - anydesk
sink:
  log_dir: /var/log/complyd
  jsonl: true
  database: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}

	if cfg.Agent.PollInterval != 1500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 1.5s", cfg.Agent.PollInterval)
	}
	if len(cfg.Agent.FlaggedProcesses) != 2 || cfg.Agent.FlaggedProcesses[1] != "anydesk" {
		t.Errorf("FlaggedProcesses = %v", cfg.Agent.FlaggedProcesses)
	}
	if cfg.Sink.LogDir != "/var/log/complyd" || cfg.Sink.Database {
		t.Errorf("sink config = %+v", cfg.Sink)
	}
	// Omitted fields keep their defaults.
	if cfg.Daemon.PIDFile == "" {
		t.Error("omitted daemon section lost its default")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "complyd.yaml")
	if err := os.WriteFile(path, []byte("agent:\n  poll_interval_seconds: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMPLYD_POLL_INTERVAL", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Agent.PollInterval != 60*time.Second {
		t.Errorf("environment should win over file: %v", cfg.Agent.PollInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestString(t *testing.T) {
	s := Default().String()
	for _, want := range []string{"Poll Interval: 5s", "cluely", "PID File:"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
