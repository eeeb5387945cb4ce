// Package config defines the server runtime configuration, loaded from a
// YAML file. Every field has a default so the server can start with no
// config file at all.
package config

import (
	"fmt"
	"os"

	"github.com/mergington/activities/logging"
	"gopkg.in/yaml.v3"
)

// ServerConfig represents the server runtime configuration.
type ServerConfig struct {
	Listener ListenerConfig `yaml:"listener"`
	// SeedPath is an optional path to a YAML file with the activity seed
	// data. When empty the built-in seed is used.
	SeedPath   string           `yaml:"seed_path"`
	Stats      StatsConfig      `yaml:"stats"`
	Logging    logging.Config   `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// ListenerConfig holds HTTP server listener settings.
type ListenerConfig struct {
	// The listen address, defaults to :8080
	Addr string `yaml:"addr"`
}

// StatsConfig controls the scheduled roster stats reporter.
type StatsConfig struct {
	// Schedule is a cron spec (5 fields). Empty disables the reporter.
	Schedule string `yaml:"schedule"`
}

// MonitoringConfig holds remote-write metrics settings. When URL is empty
// roster stats are only exposed on the local /metrics endpoint.
type MonitoringConfig struct {
	VictoriaMetricsURL string `yaml:"victoriametrics_url"`
	MetricsPrefix      string `yaml:"metrics_prefix"`
	JobName            string `yaml:"jobname"`
}

// Default returns a ServerConfig with all defaults applied.
func Default() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.SetDefaults()
	return cfg
}

// LoadConfig reads the YAML config file at the given path and returns a
// ServerConfig with defaults applied.
func LoadConfig(path string) (*ServerConfig, error) {
	var cfg ServerConfig
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open server config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode YAML server config: %w", err)
	}

	cfg.SetDefaults()

	return &cfg, nil
}

// SetDefaults sets reasonable default values for optional fields.
func (c *ServerConfig) SetDefaults() {
	if c.Listener.Addr == "" {
		c.Listener.Addr = ":8080"
	}
	if c.Monitoring.MetricsPrefix == "" {
		c.Monitoring.MetricsPrefix = "mergington"
	}
	if c.Monitoring.JobName == "" {
		c.Monitoring.JobName = "activities"
	}
}
