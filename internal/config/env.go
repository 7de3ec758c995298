package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default and file values
func LoadFromEnv(cfg *Config) {
	if pollInterval := os.Getenv("COMPLYD_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.ParseFloat(pollInterval, 64); err == nil && seconds > 0 {
			interval := time.Duration(seconds * float64(time.Second))
			if interval >= cfg.Agent.MinPollInterval && interval <= cfg.Agent.MaxPollInterval {
				cfg.Agent.PollInterval = interval
				cfg.Agent.PollSeconds = seconds
			}
		}
	}

	if flagged := os.Getenv("COMPLYD_FLAGGED_PROCESSES"); flagged != "" {
		var names []string
		for _, name := range strings.Split(flagged, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			cfg.Agent.FlaggedProcesses = names
		}
	}

	if dbPath := os.Getenv("COMPLYD_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if logDir := os.Getenv("COMPLYD_LOG_DIR"); logDir != "" {
		cfg.Sink.LogDir = logDir
	}

	if label := os.Getenv("COMPLYD_SESSION_LABEL"); label != "" {
		cfg.Sink.SessionLabel = label
	}

	if jsonl := os.Getenv("COMPLYD_SINK_JSONL"); jsonl != "" {
		if val, err := strconv.ParseBool(jsonl); err == nil {
			cfg.Sink.JSONL = val
		}
	}

	if dbSink := os.Getenv("COMPLYD_SINK_DATABASE"); dbSink != "" {
		if val, err := strconv.ParseBool(dbSink); err == nil {
			cfg.Sink.Database = val
		}
	}

	if pidFile := os.Getenv("COMPLYD_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
