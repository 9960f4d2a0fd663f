// Package config provides configuration for the chess rules engine and its tools.
package config

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Config holds all engine and tool configuration.
type Config struct {
	// Logger receives engine diagnostics. The default discards everything.
	Logger zerolog.Logger

	// Workers bounds the fan-out of legal move generation.
	Workers int

	Rules  RulesConfig
	Input  InputConfig
	Output OutputConfig
}

// InputConfig holds settings for reading PGN.
type InputConfig struct {
	// Latin1 decodes input as ISO 8859-1 instead of UTF-8.
	Latin1 bool

	// StopOnError makes a malformed game end parsing instead of being skipped.
	StopOnError bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Logger:  zerolog.Nop(),
		Workers: runtime.NumCPU(),
		Rules:   *NewRulesConfig(),
		Output:  *NewOutputConfig(),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	return c.Output.Validate()
}
