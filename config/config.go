// Package config holds the simulation configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the SoC sizing and run parameters. Memory bounds are
// parameters, not constants: hardware variants of this design shipped
// with data memories between 11 and 64 words.
type Config struct {
	// InstrMemWords is the instruction memory capacity in 32-bit words.
	InstrMemWords int `json:"instr_mem_words"`

	// DataMemWords is the data memory capacity in 32-bit words.
	DataMemWords int `json:"data_mem_words"`

	// ImagePath optionally names a program image to load at power-on.
	// When empty, the built-in bootstrap program is used.
	ImagePath string `json:"image_path,omitempty"`

	// MaxCycles bounds a CLI run. Zero means the CLI default applies.
	MaxCycles uint64 `json:"max_cycles,omitempty"`
}

// Default returns the configuration matching the source hardware:
// 64-word instruction memory, 16-word data memory.
func Default() *Config {
	return &Config{
		InstrMemWords: 64,
		DataMemWords:  16,
	}
}

// Load reads a Config from a JSON file. Missing fields keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the Config to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the memory bounds are usable.
func (c *Config) Validate() error {
	if c.InstrMemWords <= 0 {
		return fmt.Errorf("instr_mem_words must be > 0")
	}
	if c.DataMemWords <= 0 {
		return fmt.Errorf("data_mem_words must be > 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
