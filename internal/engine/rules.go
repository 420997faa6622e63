package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// FiftyMoveLimit is the number of half-moves without a capture or pawn
// move after which the game is drawn (fifty moves by each side).
const FiftyMoveLimit = 100

// DrawBy50Moves reports whether the fifty-move rule ends the game.
func (g *Game) DrawBy50Moves() bool {
	return g.fifty >= FiftyMoveLimit
}

// DrawByRepetition reports whether some position occurred three times.
func (g *Game) DrawByRepetition() bool {
	return g.reps.Repeated()
}

// RepetitionCount returns how often the current position has occurred.
func (g *Game) RepetitionCount() int {
	return g.reps.Count(g.Signature())
}

// InsufficientMaterial reports whether neither side can possibly mate:
// K vs K, K+B vs K, K+N vs K, or K+B vs K+B with same-coloured bishops.
// It is informational and does not end the game.
func (g *Game) InsufficientMaterial() bool {
	var minors [2][]chess.Kind
	var bishopOnLight [2]bool

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for _, p := range g.board.Pieces(c) {
			switch p.Kind() {
			case chess.King:
				// Kings don't count for material
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			case chess.Bishop:
				bishopOnLight[c] = isLightSquare(p.Square())
				minors[c] = append(minors[c], p.Kind())
			default:
				minors[c] = append(minors[c], p.Kind())
			}
		}
	}

	white, black := minors[chess.White], minors[chess.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1, len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		return white[0] == chess.Bishop && black[0] == chess.Bishop &&
			bishopOnLight[chess.White] == bishopOnLight[chess.Black]
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (sq.File+sq.Rank)%2 == 1
}
