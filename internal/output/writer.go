package output

import (
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (text, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(g *engine.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer matching cfg.Output.Format, writing to
// cfg.OutputFile.
func NewGameWriter(cfg *config.Config) GameWriter {
	if cfg.Output.Format == config.JSON {
		return NewJSONWriterSingle(cfg.OutputFile)
	}
	return NewTextWriter(cfg.OutputFile, cfg.Output)
}

// NewGamesWriter returns the writer for several games: JSON output is
// batched into one document, text output is written as it comes.
func NewGamesWriter(cfg *config.Config) GameWriter {
	if cfg.Output.Format == config.JSON {
		return NewJSONWriter(cfg.OutputFile)
	}
	return NewTextWriter(cfg.OutputFile, cfg.Output)
}

// TextWriter writes rendered boards.
type TextWriter struct {
	w    io.Writer
	opts config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, opts config.OutputConfig) *TextWriter {
	return &TextWriter{w: w, opts: opts}
}

// WriteGame writes the board and status line of g.
func (tw *TextWriter) WriteGame(g *engine.Game) error {
	_, err := io.WriteString(tw.w, RenderGame(g, tw.opts, nil))
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*engine.Game
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately,
// including its legal moves.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(g *engine.Game) error {
	if jw.single {
		return OutputGameJSON(g, true, jw.w)
	}
	jw.games = append(jw.games, g)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := OutputGamesJSON(jw.games, jw.w)
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
