// Package engine implements the rules of chess on top of the chess package:
// legal move filtering, check tracking, move execution, promotion, draw
// rules and save/load of a Game.
package engine

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// SaveExtension is appended to generated save names.
const SaveExtension = ".chess"

// Game is a chess game in progress. A Game is not safe for concurrent use.
type Game struct {
	board *chess.Board
	turn  chess.Colour
	index int

	// checks holds the pieces giving check to the side to move (0..2).
	checks []*chess.Piece
	kings  [2]*chess.Piece

	fifty int
	reps  *hashing.RepetitionTable

	// pending is a pawn on its last rank waiting for Promote.
	pending *chess.Piece
	// last move bookkeeping, replayed by Promote
	lastMovers  []*chess.Piece
	lastVacated []chess.Square
	lastSig     uint64

	id   uuid.UUID
	name string
}

// newGame allocates a game around an empty board.
func newGame() *Game {
	id := uuid.New()
	return &Game{
		board:  chess.NewBoard(),
		turn:   chess.White,
		checks: make([]*chess.Piece, 0, 2),
		reps:   hashing.NewRepetitionTable(),
		id:     id,
		name:   "game-" + id.String() + SaveExtension,
	}
}

// NewGame creates a game in the standard starting position with White to move.
func NewGame() *Game {
	g := newGame()
	g.board.SetupInitialPosition()
	g.refresh()
	return g
}

// NewEmptyGame creates a game with an empty board. Pieces are added with
// Place; the game is playable once both kings are on the board.
func NewEmptyGame() *Game {
	g := newGame()
	g.refresh()
	return g
}

// Place puts a new piece on sq, replacing any occupant, and recomputes the
// derived state (kings, check list, repetition table). It is meant for
// building positions, not for playing moves.
func (g *Game) Place(kind chess.Kind, owner chess.Colour, sq chess.Square) *chess.Piece {
	p := g.board.Place(kind, owner, sq)
	if p == nil {
		return nil
	}
	g.refresh()
	return p
}

// Remove takes the piece off sq, if any, and recomputes the derived state.
func (g *Game) Remove(sq chess.Square) *chess.Piece {
	p := g.board.Remove(sq)
	if p != nil {
		g.refresh()
	}
	return p
}

// SetTurn sets the side to move and recomputes the derived state.
func (g *Game) SetTurn(c chess.Colour) {
	g.turn = c
	g.refresh()
}

// refresh rebuilds everything derived from the board after a setup change.
func (g *Game) refresh() {
	g.kings[chess.White] = g.board.FindKing(chess.White)
	g.kings[chess.Black] = g.board.FindKing(chess.Black)
	g.pending = nil
	g.lastMovers, g.lastVacated = nil, nil
	g.checks = g.scanCheckers(g.turn)
	g.invalidateAll()
	g.reps.Reset()
	g.lastSig = g.Signature()
	g.reps.Record(g.lastSig)
}

// scanCheckers returns every enemy piece attacking the king of player.
func (g *Game) scanCheckers(player chess.Colour) []*chess.Piece {
	checks := make([]*chess.Piece, 0, 2)
	king := g.kings[player]
	if king == nil {
		return checks
	}
	for _, p := range g.board.Pieces(player.Opposite()) {
		if p.Threatens(g.board, king.Square()) {
			checks = append(checks, p)
		}
	}
	return checks
}

// invalidateAll drops the legal-move memo of every piece on the board.
func (g *Game) invalidateAll() {
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for _, p := range g.board.Pieces(c) {
			p.Invalidate()
		}
	}
}

// Board returns the game's board. Callers must not modify it directly.
func (g *Game) Board() *chess.Board { return g.board }

// Snapshot returns the grid of piece handles indexed by [file][rank].
func (g *Game) Snapshot() [chess.BoardSize][chess.BoardSize]*chess.Piece {
	return g.board.Snapshot()
}

// At returns the piece on sq, or nil.
func (g *Game) At(sq chess.Square) *chess.Piece { return g.board.At(sq) }

// Turn returns the side to move.
func (g *Game) Turn() chess.Colour { return g.turn }

// Index returns the number of half-moves played.
func (g *Game) Index() int { return g.index }

// CheckList returns a copy of the pieces giving check to the side to move.
func (g *Game) CheckList() []*chess.Piece { return slices.Clone(g.checks) }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool { return len(g.checks) > 0 }

// King returns the king of the given colour, or nil if it is not on the board.
func (g *Game) King(c chess.Colour) *chess.Piece { return g.kings[c] }

// FiftyMoveCounter returns the number of half-moves since the last capture
// or pawn move.
func (g *Game) FiftyMoveCounter() int { return g.fifty }

// Signature returns the position signature used for repetition detection.
func (g *Game) Signature() uint64 {
	return hashing.Signature(g.board, g.turn, g.index)
}

// PendingPromotion returns the square of a pawn waiting to be promoted.
func (g *Game) PendingPromotion() (chess.Square, bool) {
	if g.pending == nil {
		return chess.Square{}, false
	}
	return g.pending.Square(), true
}

// ID returns the unique identifier of this game instance.
func (g *Game) ID() uuid.UUID { return g.id }

// Name returns the save file name of the game.
func (g *Game) Name() string { return g.name }

// SetName sets the save file name of the game.
func (g *Game) SetName(name string) { g.name = name }

// Equal reports whether both games have the same side to move and the same
// pieces on the same squares.
func (g *Game) Equal(other *Game) bool {
	if other == nil {
		return false
	}
	return g.turn == other.turn && g.board.Equal(other.board)
}
