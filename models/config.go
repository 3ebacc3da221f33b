// Package models defines the data structures exchanged with the extraction
// service and the client's runtime configuration.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL  = "http://localhost:5000"
	DefaultTimeout    = 15 * time.Second
	DefaultSampleSize = 30
	DefaultBatchSize  = 50
)

// ClientConfig holds runtime configuration for the client.
// Values come from defaults, an optional YAML file, then CLI flags.
type ClientConfig struct {
	ServerURL  string        `yaml:"server_url"`
	Timeout    time.Duration `yaml:"timeout"`
	SampleSize int           `yaml:"sample_size"`
	BatchSize  int           `yaml:"batch_size"`
	StartIndex int           `yaml:"start_index"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		ServerURL:  DefaultServerURL,
		Timeout:    DefaultTimeout,
		SampleSize: DefaultSampleSize,
		BatchSize:  DefaultBatchSize,
	}
}

// LoadConfig overlays the YAML file at path onto the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (ClientConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return cfg, nil
}
