// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Storage
	saveDir  = flag.String("dir", "", "Directory holding save files (default: $"+config.SaveDirEnv+" or .)")
	gameName = flag.String("name", "", "File name for the new game (default: game-<id>.chess)")

	// Output options
	outputFormat = flag.String("format", "text", "Output format: text, json")
	boardStyle   = flag.String("style", "unicode", "Piece glyphs: unicode, ascii")
	noColor      = flag.Bool("nocolor", false, "Don't shade the board")
	flipBoard    = flag.Bool("flip", false, "Draw the board from Black's side")

	// Move options
	promoteTo = flag.String("promote", "q", "Promotion piece for move and play: q, r, b, n")
	noSave    = flag.Bool("nosave", false, "Don't write the game back after move or play")

	// Batch verification
	workers     = flag.Int("workers", 0, "Verification workers (default: number of CPUs)")
	headersOnly = flag.Bool("headers", false, "Verify only the header of each save file")
	noDups      = flag.Bool("nodups", false, "Don't report duplicate positions")
	failFast    = flag.Bool("failfast", false, "Stop verifying at the first bad file")

	// Logging
	verbosity = flag.Int("v", 1, "Verbosity: 0=warnings, 1=progress, 2=engine debug")
	logFile   = flag.String("l", "", "Write log to file (default: stderr)")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// buildConfig builds the configuration from the command-line flags.
func buildConfig() (*config.Config, error) {
	b := config.NewConfigBuilder().WithDuplicateReport(!*noDups)
	if *saveDir != "" {
		b.WithSaveDir(*saveDir)
	}
	if *workers > 0 {
		b.WithWorkers(*workers)
	}

	if *quiet {
		b.WithVerbosity(0)
	} else {
		b.WithVerbosity(*verbosity)
	}

	if err := applyOutputFlags(b); err != nil {
		return nil, err
	}
	cfg := b.Build()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOutputFlags configures rendering.
func applyOutputFlags(b *config.ConfigBuilder) error {
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	style, err := config.ParseBoardStyle(*boardStyle)
	if err != nil {
		return err
	}
	b.WithOutputFormat(format).
		WithBoardStyle(style).
		WithColor(!*noColor).
		WithFlip(*flipBoard)
	return nil
}

// setupLogFile points cfg.LogFile at the -l file when given.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: user-chosen log file
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// commandOptions collects the flags that individual commands read.
func commandOptions() options {
	return options{
		name:     *gameName,
		promote:  *promoteTo,
		noSave:   *noSave,
		headers:  *headersOnly,
		failFast: *failFast,
	}
}
