// Package config provides YAML configuration for the luxlex toolkit.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr renders the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig holds database and seed artifact paths. IndexPath must not
// point inside SeedDirectory: the seed store treats every .json file there
// as a seed artifact, and the watcher rebuilds on changes to them.
type StorageConfig struct {
	DatabasePath  string `yaml:"database_path"`
	SeedDirectory string `yaml:"seed_directory"`
	IndexPath     string `yaml:"index_path"`
}

// DiscoveryConfig holds upstream endpoint settings.
type DiscoveryConfig struct {
	Endpoint       string   `yaml:"endpoint"`
	PageSize       int      `yaml:"page_size"`
	Categories     []string `yaml:"categories"`
	RequestDelayMS int      `yaml:"request_delay_ms"`
}

// RequestDelay returns the configured pacing delay.
func (c DiscoveryConfig) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8736
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "data/luxlex.db"
	}
	if cfg.Storage.SeedDirectory == "" {
		cfg.Storage.SeedDirectory = "data/seeds"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "data/law-index.json"
	}
	if cfg.Discovery.PageSize == 0 {
		cfg.Discovery.PageSize = 1000
	}
	if cfg.Discovery.RequestDelayMS == 0 {
		cfg.Discovery.RequestDelayMS = 500
	}
}

// Load reads and parses the config file at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}
