package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Flags win over config
// values; config values win over defaults.
type Config struct {
	// Database is the snapshot file loaded on start and saved on exit.
	Database string `yaml:"database"`

	// MaxDequeues overrides the dispatch iteration budget.
	MaxDequeues int `yaml:"max_dequeues"`

	Log LogConfig `yaml:"log"`
}

// LogConfig selects log verbosity and the optional Seq endpoint.
type LogConfig struct {
	Level  string `yaml:"level"`   // "debug" or "info"
	SeqURL string `yaml:"seq_url"` // empty disables the Seq handler
}

// LoadConfig reads a YAML config file. Unknown keys are rejected so a
// typo never silently falls back to a default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Log.Level != "" && cfg.Log.Level != "debug" && cfg.Log.Level != "info" {
		return nil, fmt.Errorf("config %s: unknown log level %q", path, cfg.Log.Level)
	}
	if cfg.MaxDequeues < 0 {
		return nil, fmt.Errorf("config %s: max_dequeues must be non-negative", path)
	}
	return &cfg, nil
}
