package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads, parses and validates a TOML configuration file. Fields absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	cfg.Source = path
	return cfg, nil
}

// LoadFromBytes parses and validates TOML configuration data on top of the
// defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return cfg, nil
}
