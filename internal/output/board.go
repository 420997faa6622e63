// Package output renders games as text boards and JSON snapshots.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

var unicodeGlyphs = [2][7]string{
	chess.White: {"", "♙", "♘", "♗", "♖", "♕", "♔"},
	chess.Black: {"", "♟", "♞", "♝", "♜", "♛", "♚"},
}

var (
	lightSquare = lipgloss.NewStyle().Background(lipgloss.Color("#e8d0aa"))
	darkSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#b58863"))
	markSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#7fa650"))
	whitePiece  = lipgloss.Color("#ffffff")
	blackPiece  = lipgloss.Color("#000000")
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

// glyph returns the symbol for p, or "" for an empty square.
func glyph(p *chess.Piece, style config.BoardStyle) string {
	if p == nil {
		return ""
	}
	if style == config.ASCII {
		return string(p.Letter())
	}
	return unicodeGlyphs[p.Owner()][p.Kind()]
}

// cell renders one three-column square. Without colour, marked squares are
// bracketed and empty squares show a dot.
func cell(p *chess.Piece, sq chess.Square, marked bool, opts config.OutputConfig) string {
	g := glyph(p, opts.Style)

	if !opts.Color {
		switch {
		case marked && g == "":
			return " * "
		case marked:
			return "[" + g + "]"
		case g == "":
			return " . "
		}
		return " " + g + " "
	}

	style := darkSquare
	if (sq.File+sq.Rank)%2 == 1 {
		style = lightSquare
	}
	if marked {
		style = markSquare
	}
	if p != nil {
		if p.Owner() == chess.White {
			style = style.Foreground(whitePiece)
		} else {
			style = style.Foreground(blackPiece)
		}
	}
	if g == "" {
		g = " "
	}
	return style.Render(" " + g + " ")
}

// RenderBoard draws b with rank 8 at the top, or rank 1 when opts.Flip is
// set. Squares in marks are highlighted.
func RenderBoard(b *chess.Board, opts config.OutputConfig, marks []chess.Square) string {
	files := make([]int, chess.BoardSize)
	ranks := make([]int, chess.BoardSize)
	for i := range files {
		files[i], ranks[i] = i, chess.BoardSize-1-i
		if opts.Flip {
			files[i], ranks[i] = ranks[i], files[i]
		}
	}
	label := func(s string) string {
		if opts.Color {
			return labelStyle.Render(s)
		}
		return s
	}

	rows := make([]string, 0, chess.BoardSize+1)
	for _, rank := range ranks {
		cells := make([]string, 0, chess.BoardSize+1)
		if opts.Coordinates {
			cells = append(cells, label(fmt.Sprintf("%c ", chess.RankBase+rank)))
		}
		for _, file := range files {
			sq := chess.Sq(file, rank)
			cells = append(cells, cell(b.At(sq), sq, slices.Contains(marks, sq), opts))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if opts.Coordinates {
		var footer strings.Builder
		footer.WriteString("  ")
		for _, file := range files {
			fmt.Fprintf(&footer, " %c ", chess.FileBase+file)
		}
		rows = append(rows, label(footer.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// StatusLine summarises whose turn it is and how the game stands.
func StatusLine(g *engine.Game) string {
	if sq, ok := g.PendingPromotion(); ok {
		return fmt.Sprintf("%s pawn on %s awaiting promotion", g.At(sq).Owner(), sq)
	}

	switch status := g.Status(); status {
	case engine.Checkmate:
		return fmt.Sprintf("checkmate, %s wins", g.Turn().Opposite())
	case engine.Ongoing:
		line := fmt.Sprintf("%s to move, move %d", g.Turn(), g.Index()/2+1)
		if g.InCheck() {
			line += ", check"
		}
		if n := g.RepetitionCount(); n > 1 {
			line += fmt.Sprintf(", position seen %d times", n)
		}
		if g.InsufficientMaterial() {
			line += ", insufficient material"
		}
		return line
	default:
		return status.String()
	}
}

// RenderGame draws the board of g followed by its status line.
func RenderGame(g *engine.Game, opts config.OutputConfig, marks []chess.Square) string {
	return RenderBoard(g.Board(), opts, marks) + "\n" + StatusLine(g) + "\n"
}
