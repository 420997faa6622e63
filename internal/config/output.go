package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// OutputFormat selects how positions are written.
type OutputFormat int

const (
	Text OutputFormat = iota // Rendered board plus a status line
	JSON                     // Indented JSON snapshot
)

var formatNames = map[string]OutputFormat{"text": Text, "json": JSON}

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return Text, fmt.Errorf("unknown output format %q: %w", s, errors.ErrInvalidConfig)
}

func (f OutputFormat) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return "unknown"
}

// BoardStyle selects the glyphs used for pieces in text output.
type BoardStyle int

const (
	Unicode BoardStyle = iota // ♔ ♕ ♖ ...
	ASCII                     // K Q R ..., lower case for Black
)

// ParseBoardStyle converts a flag value to a BoardStyle.
func ParseBoardStyle(s string) (BoardStyle, error) {
	switch strings.ToLower(s) {
	case "unicode":
		return Unicode, nil
	case "ascii":
		return ASCII, nil
	}
	return Unicode, fmt.Errorf("unknown board style %q: %w", s, errors.ErrInvalidConfig)
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format chooses between the rendered board and JSON
	Format OutputFormat

	// Style chooses the piece glyphs of the rendered board
	Style BoardStyle

	// Coordinates prints file letters and rank numbers around the board
	Coordinates bool

	// Color shades the squares; disable for plain terminals and files
	Color bool

	// Flip draws the board from Black's side
	Flip bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:      Text,
		Style:       Unicode,
		Coordinates: true,
		Color:       true,
	}
}

// Validate checks the enum fields are in range.
func (o *OutputConfig) Validate() error {
	if o.Format != Text && o.Format != JSON {
		return fmt.Errorf("output format %d: %w", o.Format, errors.ErrInvalidConfig)
	}
	if o.Style != Unicode && o.Style != ASCII {
		return fmt.Errorf("board style %d: %w", o.Style, errors.ErrInvalidConfig)
	}
	return nil
}
