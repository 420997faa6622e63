package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// isDiscoveryCheck returns the enemy slider that would attack player's king
// through sq if sq were empty, or nil.
//
// sq must share a rank, file or diagonal with the king and every square
// between them must be empty. The scan then continues past sq away from
// the king; the first piece found must be an enemy bishop, rook or queen
// moving along that line.
//
// With sq the square of one of player's pieces this is a pin test: the
// result is the pinner. With sq a square just vacated by the opponent it
// finds a discovered check.
func (g *Game) isDiscoveryCheck(sq chess.Square, player chess.Colour) *chess.Piece {
	king := g.kings[player]
	if king == nil || king.Square() == sq {
		return nil
	}
	line, step := chess.LineBetween(king.Square(), sq)
	if line == chess.NoLine {
		return nil
	}
	if !g.board.PathClear(king.Square(), sq) {
		return nil
	}

	for s := sq.Add(step.DF, step.DR); s.Valid(); s = s.Add(step.DF, step.DR) {
		p := g.board.At(s)
		if p == nil {
			continue
		}
		if p.Owner() != player && p.Kind().Covers(line) {
			return p
		}
		return nil
	}
	return nil
}
