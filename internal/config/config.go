// Package config provides configuration for the chess command line tool.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/apex/log"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// SaveDirEnv names the environment variable that overrides the default
// save directory.
const SaveDirEnv = "CHESS_SAVE_DIR"

// Config holds all program configuration.
type Config struct {
	// SaveDir is where games are written and resolved from.
	SaveDir string

	Verbosity int // 0=warnings, 1=progress, 2=engine debug
	Workers   int // goroutines used by batch commands

	Output    OutputConfig
	Duplicate DuplicateConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	saveDir := os.Getenv(SaveDirEnv)
	if saveDir == "" {
		saveDir = "."
	}
	return &Config{
		SaveDir:    saveDir,
		Verbosity:  1,
		Workers:    runtime.NumCPU(),
		Output:     *NewOutputConfig(),
		Duplicate:  *NewDuplicateConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// LogLevel maps Verbosity onto a log level.
func (c *Config) LogLevel() log.Level {
	switch {
	case c.Verbosity <= 0:
		return log.WarnLevel
	case c.Verbosity == 1:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.SaveDir == "" {
		return fmt.Errorf("empty save directory: %w", errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count %d < 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	return c.Output.Validate()
}
