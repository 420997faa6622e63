package hashing

import (
	"math/rand"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Zobrist tables, filled from a fixed seed so that a position always maps
// to the same signature across runs and across save/load.
var (
	zobristPieces     [2][7][chess.BoardSize * chess.BoardSize]uint64
	zobristCastling   [4]uint64
	zobristEnPassant  [chess.BoardSize]uint64
	zobristSideToMove uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x43484553534a4b4c)) //nolint:gosec // G404: hashing, not crypto

	for colour := range zobristPieces {
		for kind := range zobristPieces[colour] {
			for sq := range zobristPieces[colour][kind] {
				zobristPieces[colour][kind][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSideToMove = rng.Uint64()
}

// squareIndex maps a square to 0..63 with a1 = 0 and h8 = 63.
func squareIndex(sq chess.Square) int {
	return sq.Rank*chess.BoardSize + sq.File
}

// Castling right slots in zobristCastling.
const (
	whiteKingside = iota
	whiteQueenside
	blackKingside
	blackQueenside
)

// Signature computes the Zobrist signature of a position: piece placement,
// side to move, castling rights and the en passant file. index is the
// game's move index, needed to decide whether en passant is available.
func Signature(b *chess.Board, toMove chess.Colour, index int) uint64 {
	var h uint64

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, p := range b.Pieces(colour) {
			h ^= zobristPieces[colour][p.Kind()][squareIndex(p.Square())]
		}
	}

	if toMove == chess.Black {
		h ^= zobristSideToMove
	}

	for slot, ok := range castlingRights(b) {
		if ok {
			h ^= zobristCastling[slot]
		}
	}

	if file, ok := enPassantFile(b, toMove, index); ok {
		h ^= zobristEnPassant[file]
	}

	return h
}

// castlingRights reports, per slot, whether the king and rook involved
// have never moved. Occupancy between them does not matter here.
func castlingRights(b *chess.Board) [4]bool {
	var rights [4]bool
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		king := b.At(chess.Sq(chess.KingHomeFile, colour.HomeRank()))
		if king == nil || king.Kind() != chess.King || king.Owner() != colour || king.HasMoved() {
			continue
		}
		base := whiteKingside
		if colour == chess.Black {
			base = blackKingside
		}
		rights[base] = king.CastleRook(b, chess.KingsideRookFile) != nil
		rights[base+1] = king.CastleRook(b, chess.QueensideRookFile) != nil
	}
	return rights
}

// enPassantFile returns the file of a pawn that just double-stepped, if a
// pawn of the side to move stands next to it.
func enPassantFile(b *chess.Board, toMove chess.Colour, index int) (int, bool) {
	for _, p := range b.Pieces(toMove.Opposite()) {
		if !p.JustDoubleStepped(index) {
			continue
		}
		for df := -1; df <= 1; df += 2 {
			n := b.At(p.Square().Add(df, 0))
			if n != nil && n.Kind() == chess.Pawn && n.Owner() == toMove {
				return p.Square().File, true
			}
		}
	}
	return 0, false
}
