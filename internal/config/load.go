package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	// Set defaults
	if cfg.Region == "" {
		cfg.Region = "us-central1"
	}
	if cfg.Zone == "" {
		cfg.Zone = cfg.Region + "-a"
	}
	if cfg.BootImageProject == "" {
		cfg.BootImageProject = "ubuntu-os-cloud"
	}
	if cfg.BootImageFamily == "" {
		cfg.BootImageFamily = "ubuntu-2204-lts"
	}
	if cfg.MachineSeries == "" {
		cfg.MachineSeries = "e2-highmem"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
