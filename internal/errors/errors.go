// Package errors provides sentinel errors and error types for the chess
// rules engine. It defines common error conditions and structured error
// types that preserve context while allowing error inspection with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrCorruptSave indicates a save file that violates the save format.
	ErrCorruptSave = errors.New("corrupted save data")

	// ErrNilPiece indicates a move requested for an absent piece.
	ErrNilPiece = errors.New("no piece to move")

	// ErrForeignPiece indicates a piece handle that is not on the game's board.
	ErrForeignPiece = errors.New("piece does not belong to this game")

	// ErrUnknownPromotion indicates a promotion to a kind other than
	// knight, bishop, rook or queen.
	ErrUnknownPromotion = errors.New("unknown promotion kind")

	// ErrNoPromotion indicates a promotion request with no pawn waiting
	// to promote on the given square.
	ErrNoPromotion = errors.New("no pending promotion")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SaveError wraps save-file errors with the file and byte offset at which
// the problem was found. It implements the error interface and supports
// unwrapping via errors.Is() and errors.As().
type SaveError struct {
	Err    error  // The underlying error
	Path   string // Save file path (if known)
	Offset int64  // Byte offset of the failing read (-1 if not applicable)
	Reason string // What was wrong
}

// Error returns a formatted error message including all available context.
func (e *SaveError) Error() string {
	var parts []string

	if e.Path != "" {
		if e.Offset >= 0 {
			parts = append(parts, fmt.Sprintf("%s@%d", e.Path, e.Offset))
		} else {
			parts = append(parts, e.Path)
		}
	} else if e.Offset >= 0 {
		parts = append(parts, fmt.Sprintf("offset %d", e.Offset))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	context := strings.Join(parts, ": ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "save error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the SaveError wrapper.
func (e *SaveError) Unwrap() error {
	return e.Err
}

// Corrupt builds a SaveError wrapping ErrCorruptSave.
func Corrupt(offset int64, format string, args ...interface{}) *SaveError {
	return &SaveError{
		Err:    ErrCorruptSave,
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}

// WithPath sets the path on a SaveError found anywhere in err's chain and
// returns err unchanged otherwise.
func WithPath(err error, path string) error {
	var se *SaveError
	if errors.As(err, &se) && se.Path == "" {
		se.Path = path
	}
	return err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// wrapError prefixes an error with context. The message is built on each
// call to Error, so a path attached later by WithPath still shows.
type wrapError struct {
	context string
	err     error
}

func (w *wrapError) Error() string { return w.context + ": " + w.err.Error() }

func (w *wrapError) Unwrap() error { return w.err }

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return &wrapError{context: context, err: err}
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
