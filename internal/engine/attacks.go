package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// attacked reports whether any piece of colour by attacks sq on the
// current board. It runs the five probes used for king safety.
func (g *Game) attacked(sq chess.Square, by chess.Colour) bool {
	return g.knightProbe(sq, by) ||
		g.rayProbe(sq, by, chess.OrthogonalDirs, chess.Rook) ||
		g.rayProbe(sq, by, chess.DiagonalDirs, chess.Bishop) ||
		g.pawnProbe(sq, by) ||
		g.kingProbe(sq, by)
}

// isEnemy reports whether p is a piece of colour by and kind k.
func isEnemy(p *chess.Piece, by chess.Colour, k chess.Kind) bool {
	return p != nil && p.Owner() == by && p.Kind() == k
}

func (g *Game) knightProbe(sq chess.Square, by chess.Colour) bool {
	for _, off := range chess.KnightOffsets {
		if isEnemy(g.board.At(sq.Add(off.DF, off.DR)), by, chess.Knight) {
			return true
		}
	}
	return false
}

// rayProbe walks each direction to the first occupied square and reports an
// attack when it holds a slider of colour by (kind or a queen).
func (g *Game) rayProbe(sq chess.Square, by chess.Colour, dirs []chess.Direction, kind chess.Kind) bool {
	for _, dir := range dirs {
		for s := sq.Add(dir.DF, dir.DR); s.Valid(); s = s.Add(dir.DF, dir.DR) {
			p := g.board.At(s)
			if p == nil {
				continue
			}
			if isEnemy(p, by, kind) || isEnemy(p, by, chess.Queen) {
				return true
			}
			break // Blocked
		}
	}
	return false
}

// pawnProbe looks for pawns of colour by one rank behind sq from their
// point of view.
func (g *Game) pawnProbe(sq chess.Square, by chess.Colour) bool {
	back := -by.Forward()
	return isEnemy(g.board.At(sq.Add(-1, back)), by, chess.Pawn) ||
		isEnemy(g.board.At(sq.Add(1, back)), by, chess.Pawn)
}

func (g *Game) kingProbe(sq chess.Square, by chess.Colour) bool {
	for _, off := range chess.KingOffsets {
		if isEnemy(g.board.At(sq.Add(off.DF, off.DR)), by, chess.King) {
			return true
		}
	}
	return false
}
