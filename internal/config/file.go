package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadFile merges a YAML configuration file into cfg. Omitted fields keep
// their current values; environment variables applied afterwards still win.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Agent.PollSeconds > 0 {
		cfg.Agent.PollInterval = time.Duration(cfg.Agent.PollSeconds * float64(time.Second))
	}
	return nil
}

// Load builds the effective configuration: defaults, then the optional
// YAML file, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
