// Package config holds run configuration for the events checker.
// Priority: environment > config file > defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names for overrides.
const (
	EnvTopic  = "NTFY_TOPIC"
	EnvServer = "NTFY_SERVER"
)

// Config holds everything a run needs to know.
type Config struct {
	// Topic is the ntfy topic notifications are posted to.
	Topic string `yaml:"topic"`
	// Server is the ntfy server base URL.
	Server string `yaml:"server"`
	// SourceURL is the listing page being monitored.
	SourceURL string `yaml:"source_url"`
	// StateFile is the path of the persisted state document. The auxiliary
	// outputs are written beside it.
	StateFile string `yaml:"state_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Topic:     "ath-events-notifications",
		Server:    "https://ntfy.sh",
		SourceURL: "https://events.bostonathenaeum.org/en/",
		StateFile: "state.json",
	}
}

// LoadFrom reads a YAML config file over the defaults. A missing file yields
// the defaults with no error. An unreadable or corrupt file yields the
// defaults along with the error, so the caller can log a warning and
// continue.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return normalize(cfg), nil
}

// ApplyEnvOverrides applies environment overrides, the highest priority.
func ApplyEnvOverrides(cfg Config) Config {
	if v := os.Getenv(EnvTopic); v != "" {
		cfg.Topic = v
	}
	if v := os.Getenv(EnvServer); v != "" {
		cfg.Server = v
	}
	return cfg
}

func normalize(cfg Config) Config {
	defaults := Default()
	if cfg.Topic == "" {
		cfg.Topic = defaults.Topic
	}
	if cfg.Server == "" {
		cfg.Server = defaults.Server
	}
	if cfg.SourceURL == "" {
		cfg.SourceURL = defaults.SourceURL
	}
	if cfg.StateFile == "" {
		cfg.StateFile = defaults.StateFile
	}
	return cfg
}
