package testutil

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Placer is anything a position can be built on, e.g. an engine.Game.
type Placer interface {
	Place(kind chess.Kind, owner chess.Colour, sq chess.Square) *chess.Piece
}

// ParsePlacement parses a placement such as "Ke1" (White king on e1) or
// "pd7" (Black pawn on d7). Uppercase letters are White.
func ParsePlacement(s string) (chess.Kind, chess.Colour, chess.Square, error) {
	if len(s) != 3 {
		return chess.NoKind, chess.White, chess.Square{}, fmt.Errorf("invalid placement %q", s)
	}
	owner := chess.White
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		owner = chess.Black
		letter -= 'a' - 'A'
	}
	kind := chess.KindFromLetter(letter)
	if kind == chess.NoKind {
		return chess.NoKind, owner, chess.Square{}, fmt.Errorf("invalid piece in placement %q", s)
	}
	sq, err := chess.ParseSquare(s[1:])
	if err != nil {
		return chess.NoKind, owner, chess.Square{}, err
	}
	return kind, owner, sq, nil
}

// PlaceAll puts every placement on p. It calls t.Fatal on malformed input.
func PlaceAll(t *testing.T, p Placer, placements ...string) {
	t.Helper()
	for _, s := range placements {
		kind, owner, sq, err := ParsePlacement(s)
		if err != nil {
			t.Fatalf("PlaceAll: %v", err)
		}
		p.Place(kind, owner, sq)
	}
}

// Squares parses algebraic square names. It panics on malformed input.
func Squares(names ...string) []chess.Square {
	sqs := make([]chess.Square, 0, len(names))
	for _, n := range names {
		sqs = append(sqs, chess.MustSquare(n))
	}
	return sqs
}

// SquareNames returns the algebraic names of sqs in sorted order, so move
// sets can be compared regardless of generation order.
func SquareNames(sqs []chess.Square) []string {
	names := make([]string, 0, len(sqs))
	for _, sq := range sqs {
		names = append(names, sq.String())
	}
	slices.Sort(names)
	return names
}

// AssertSquares compares a move set against the expected square names.
func AssertSquares(t *testing.T, got []chess.Square, want ...string) {
	t.Helper()
	w := slices.Clone(want)
	slices.Sort(w)
	if w == nil {
		w = []string{}
	}
	AssertEqual(t, SquareNames(got), w)
}

// FEN renders a position in Forsyth-Edwards Notation so it can be handed
// to reference implementations in tests.
func FEN(b *chess.Board, turn chess.Colour, index, fifty int) string {
	var sb strings.Builder
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < chess.BoardSize; file++ {
			p := b.At(chess.Sq(file, rank))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if turn == chess.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), side, castlingField(b), enPassantField(b, turn, index), fifty, index/2+1)
}

func castlingField(b *chess.Board) string {
	var sb strings.Builder
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		king := b.At(chess.Sq(chess.KingHomeFile, c.HomeRank()))
		if king == nil || king.Kind() != chess.King || king.Owner() != c || king.HasMoved() {
			continue
		}
		for _, side := range []struct {
			file   int
			letter byte
		}{{chess.KingsideRookFile, 'K'}, {chess.QueensideRookFile, 'Q'}} {
			if king.CastleRook(b, side.file) == nil {
				continue
			}
			l := side.letter
			if c == chess.Black {
				l += 'a' - 'A'
			}
			sb.WriteByte(l)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func enPassantField(b *chess.Board, turn chess.Colour, index int) string {
	for _, p := range b.Pieces(turn.Opposite()) {
		if p.JustDoubleStepped(index) {
			return p.Square().Add(0, -p.Owner().Forward()).String()
		}
	}
	return "-"
}
