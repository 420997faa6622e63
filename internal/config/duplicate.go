package config

import "io"

// DuplicateConfig holds settings for duplicate position detection across
// save files.
type DuplicateConfig struct {
	// Report lists saves that hold the same position and move index
	Report bool

	// DuplicateFile receives the duplicate report; nil means OutputFile
	DuplicateFile io.Writer
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{Report: true}
}
