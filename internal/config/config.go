package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Agent configuration
	Agent AgentConfig `yaml:"agent"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Sink configuration
	Sink SinkConfig `yaml:"sink"`

	// Daemon configuration
	Daemon DaemonConfig `yaml:"daemon"`
}

// AgentConfig holds polling behavior configuration
type AgentConfig struct {
	PollInterval    time.Duration `yaml:"-"` // Derived from PollSeconds
	PollSeconds     float64       `yaml:"poll_interval_seconds"`
	MinPollInterval time.Duration `yaml:"-"`
	MaxPollInterval time.Duration `yaml:"-"`

	// FlaggedProcesses are substrings matched case-insensitively against
	// process names; a hit raises the flagged-tool boolean in the
	// programs payload. Injectable policy, not engineering.
	FlaggedProcesses []string `yaml:"flagged_processes"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database file
}

// SinkConfig holds snapshot sink configuration
type SinkConfig struct {
	LogDir       string `yaml:"log_dir"`       // Session folder root for the JSONL sink
	SessionLabel string `yaml:"session_label"` // Prefix for session folder names
	JSONL        bool   `yaml:"jsonl"`         // Enable the JSONL sink
	Database     bool   `yaml:"database"`      // Enable the database sink
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `yaml:"pid_file"` // Path to PID file for daemon management
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			PollInterval:     5 * time.Second,
			PollSeconds:      5.0,
			MinPollInterval:  1 * time.Second,
			MaxPollInterval:  300 * time.Second,
			FlaggedProcesses: []string{"cluely"},
		},
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/complyd/complyd.db
		},
		Sink: SinkConfig{
			LogDir:       "logs",
			SessionLabel: "session",
			JSONL:        true,
			Database:     true,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/complyd-%d.pid", os.Getuid()),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Agent.PollInterval < c.Agent.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Agent.PollInterval, c.Agent.MinPollInterval)
	}

	if c.Agent.PollInterval > c.Agent.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Agent.PollInterval, c.Agent.MaxPollInterval)
	}

	if !c.Sink.JSONL && !c.Sink.Database {
		return fmt.Errorf("at least one sink must be enabled")
	}

	if c.Sink.JSONL && c.Sink.LogDir == "" {
		return fmt.Errorf("log directory cannot be empty when the JSONL sink is enabled")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Agent.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Agent.MinPollInterval)
	}
	if interval > c.Agent.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Agent.MaxPollInterval)
	}
	c.Agent.PollInterval = interval
	c.Agent.PollSeconds = interval.Seconds()
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Agent:
    Poll Interval: %v
    Flagged Processes: %s
  Database:
    Path: %s
  Sink:
    Log Dir: %s
    JSONL: %v
    Database: %v
  Daemon:
    PID File: %s`,
		c.Agent.PollInterval,
		strings.Join(c.Agent.FlaggedProcesses, ", "),
		c.Database.Path,
		c.Sink.LogDir,
		c.Sink.JSONL,
		c.Sink.Database,
		c.Daemon.PIDFile,
	)
}
