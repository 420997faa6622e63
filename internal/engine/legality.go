package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// LegalMoves returns the destinations p may legally move to. Results are
// memoised on the piece for the current move index; the returned slice is
// the caller's to keep.
func (g *Game) LegalMoves(p *chess.Piece) []chess.Square {
	if p == nil || !g.board.Contains(p) {
		return nil
	}
	if moves, ok := p.Cached(g.index); ok {
		return slices.Clone(moves)
	}
	moves := g.filterLegal(p, p.RawCandidates(g.board, g.index))
	p.Remember(g.index, moves)
	return slices.Clone(moves)
}

// LegalMovesAt returns the legal moves of the piece on sq, or nil.
func (g *Game) LegalMovesAt(sq chess.Square) []chess.Square {
	return g.LegalMoves(g.board.At(sq))
}

// checkersFor returns the pieces checking player. Only the side to move
// can be in check in a reachable position.
func (g *Game) checkersFor(player chess.Colour) []*chess.Piece {
	if player != g.turn {
		return nil
	}
	return g.checks
}

// filterLegal removes, in place, every candidate that would leave p's own
// king attacked. Order is not preserved.
func (g *Game) filterLegal(p *chess.Piece, moves []chess.Square) []chess.Square {
	if p.Kind() == chess.King {
		return g.filterKing(p, moves)
	}

	king := g.kings[p.Owner()]
	if king == nil {
		return moves
	}
	checks := g.checkersFor(p.Owner())
	if len(checks) >= 2 {
		// Only the king can answer a double check.
		return moves[:0]
	}
	var checker *chess.Piece
	if len(checks) == 1 {
		checker = checks[0]
	}
	pinner := g.isDiscoveryCheck(p.Square(), p.Owner())

	for i := 0; i < len(moves); {
		if g.allows(p, moves[i], king, checker, pinner) {
			i++
			continue
		}
		moves[i] = moves[len(moves)-1]
		moves = moves[:len(moves)-1]
	}
	return moves
}

// allows decides a single non-king candidate.
func (g *Game) allows(p *chess.Piece, to chess.Square, king, checker, pinner *chess.Piece) bool {
	victim := p.EnPassantVictim(g.board, to, g.index)

	if checker != nil {
		resolved := to == checker.Square() || victim == checker
		if !resolved && checker.Kind().IsSlider() {
			resolved = g.simulate(p, to, func() bool {
				return !checker.Threatens(g.board, king.Square())
			})
		}
		if !resolved {
			return false
		}
	}

	if pinner != nil && to != pinner.Square() {
		stillPinned := g.simulate(p, to, func() bool {
			return pinner.Threatens(g.board, king.Square())
		})
		if stillPinned {
			return false
		}
	}

	if victim != nil {
		// Two pawns leave the rank at once; only a full replay tells.
		exposed := g.simulate(p, to, func() bool {
			return g.attacked(king.Square(), p.Owner().Opposite())
		})
		return !exposed
	}
	return true
}

// filterKing keeps the king moves that land on unattacked squares and the
// castles whose conditions hold.
func (g *Game) filterKing(king *chess.Piece, moves []chess.Square) []chess.Square {
	enemy := king.Owner().Opposite()
	from := king.Square()
	inCheck := g.attacked(from, enemy)

	safe := func(to chess.Square) bool {
		return !g.simulate(king, to, func() bool {
			return g.attacked(to, enemy)
		})
	}

	for i := 0; i < len(moves); {
		to := moves[i]
		ok := safe(to)
		if ok && king.IsCastle(to) {
			transit := chess.Sq((from.File+to.File)/2, from.Rank)
			ok = !inCheck && safe(transit)
		}
		if ok {
			i++
			continue
		}
		moves[i] = moves[len(moves)-1]
		moves = moves[:len(moves)-1]
	}
	return moves
}

// CanCastle reports whether the king of the side to move may castle
// towards the rook on rookFile right now.
func (g *Game) CanCastle(rookFile int) bool {
	king := g.kings[g.turn]
	if king == nil {
		return false
	}
	from := king.Square()
	to := from.Add(2*direction(rookFile-from.File), 0)
	return slices.Contains(g.LegalMoves(king), to)
}

func direction(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}
