// chess creates, inspects, plays and verifies saved chess games.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	setupLogFile(cfg)
	setupLogging(cfg)

	if err := run(cfg, commandOptions(), flag.Args(), os.Stdin); err != nil {
		log.WithError(err).Error("failed")
		os.Exit(1)
	}
}

// setupLogging installs the log handler on cfg.LogFile.
func setupLogging(cfg *config.Config) {
	log.SetHandler(cli.New(cfg.LogFile))
	log.SetLevel(cfg.LogLevel())
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess [options] command [arguments]\n\n")
	fmt.Fprintf(os.Stderr, "Create, inspect and play saved chess games.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  new                  Start a game and save it (-name sets the file)\n")
	fmt.Fprintf(os.Stderr, "  show FILE...         Print the positions\n")
	fmt.Fprintf(os.Stderr, "  moves FILE SQUARE    Print the legal moves of the piece on SQUARE\n")
	fmt.Fprintf(os.Stderr, "  move FILE MOVE       Play MOVE (e2e4, e7e8q) and save\n")
	fmt.Fprintf(os.Stderr, "  play [FILE]          Play moves read from stdin, one per line\n")
	fmt.Fprintf(os.Stderr, "  verify [DIR]         Check every save file in DIR\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
