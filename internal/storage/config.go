package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const defaultDegree = 32

// ErrInvalidConfig is returned by Validate and LoadConfig.
var ErrInvalidConfig = errors.New("invalid storage config")

// Config holds store construction parameters.
type Config struct {
	Degree    int    `json:"degree,omitempty"`     // btree degree of the base store
	ShowLimit uint32 `json:"show_limit,omitempty"` // default record cap for Show
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Degree:    defaultDegree,
		ShowLimit: DefaultShowLimit,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Degree != 0 {
		c.Degree = source.Degree
	}
	if source.ShowLimit != 0 {
		c.ShowLimit = source.ShowLimit
	}
}

func (c *Config) Validate() error {
	if c.Degree < 2 {
		return fmt.Errorf("%w: degree %d, must be at least 2", ErrInvalidConfig, c.Degree)
	}
	return nil
}

// LoadConfig reads a JSON config file, merges it over the defaults and
// validates the result.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
