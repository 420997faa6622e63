package engine

import (
	"github.com/apex/log"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Move plays p to `to`. It returns false without changing anything when
// the move is not allowed: a promotion is pending, p does not belong to
// the side to move, or `to` is not one of p's legal moves. With force set
// those checks are skipped and only moves onto an own piece or a king are
// refused, and the turn passes to the mover's opponent. Passing a nil
// piece or one from another game is an error.
func (g *Game) Move(p *chess.Piece, to chess.Square, force bool) (bool, error) {
	if p == nil {
		return false, errors.ErrNilPiece
	}
	if !g.board.Contains(p) {
		return false, errors.ErrForeignPiece
	}

	if force {
		target := g.board.At(to)
		if !to.Valid() || to == p.Square() || (target != nil && (target.Owner() == p.Owner() || target.Kind() == chess.King)) {
			return false, nil
		}
	} else if g.pending != nil || p.Owner() != g.turn || !slices.Contains(g.LegalMoves(p), to) {
		return false, nil
	}

	g.execute(p, to)
	return true, nil
}

// MoveFrom plays the piece on from to `to` without forcing.
func (g *Game) MoveFrom(from, to chess.Square) (bool, error) {
	p := g.board.At(from)
	if p == nil {
		return false, errors.ErrNilPiece
	}
	return g.Move(p, to, false)
}

// execute applies a move that has already been accepted.
func (g *Game) execute(p *chess.Piece, to chess.Square) {
	from := p.Square()
	movers := []*chess.Piece{p}
	vacated := []chess.Square{from}

	var captured *chess.Piece
	if victim := p.EnPassantVictim(g.board, to, g.index); victim != nil {
		vacated = append(vacated, victim.Square())
		captured = g.board.Remove(victim.Square())
	}

	if p.IsCastle(to) {
		rookFile := chess.QueensideRookFile
		if to.File > from.File {
			rookFile = chess.KingsideRookFile
		}
		if rook := p.CastleRook(g.board, rookFile); rook != nil {
			vacated = append(vacated, rook.Square())
			g.board.Relocate(rook, chess.Sq((from.File+to.File)/2, from.Rank))
			rook.SetHasMoved(true)
			movers = append(movers, rook)
		}
	}

	if c := g.board.Relocate(p, to); c != nil {
		captured = c
	}
	if g.pending != nil && (captured == g.pending || p == g.pending) {
		// A forced move took or moved the waiting pawn.
		g.pending = nil
	}

	switch p.Kind() {
	case chess.Pawn:
		if to.Rank-from.Rank == 2*p.Owner().Forward() {
			p.SetDoubleStep(g.index)
		} else if p.DoubleStep() == chess.NeverMoved {
			p.SetDoubleStep(chess.MovedSingle)
		}
		if to.Rank == p.Owner().LastRank() {
			g.pending = p
		}
	case chess.Rook, chess.King:
		p.SetHasMoved(true)
	}

	if p.Kind() == chess.Pawn || captured != nil {
		g.fifty = 0
	} else {
		g.fifty++
	}

	g.turn = p.Owner().Opposite()
	g.index++
	g.lastMovers, g.lastVacated = movers, vacated
	g.updateCheckList(movers, vacated)
	g.lastSig = g.Signature()
	g.reps.Record(g.lastSig)

	log.WithFields(log.Fields{
		"game":  g.id.String(),
		"index": g.index,
		"from":  from.String(),
		"to":    to.String(),
	}).Debug("move")
}

// promotionKinds lists the kinds a pawn may promote to.
var promotionKinds = []chess.Kind{chess.Knight, chess.Bishop, chess.Rook, chess.Queen}

// Promote replaces the pawn waiting on sq with a new piece of the given
// kind and returns it.
func (g *Game) Promote(sq chess.Square, kind chess.Kind) (*chess.Piece, error) {
	if !slices.Contains(promotionKinds, kind) {
		return nil, errors.Wrapf(errors.ErrUnknownPromotion, "promote to %s", kind)
	}
	if g.pending == nil || g.pending.Square() != sq || !g.board.Contains(g.pending) {
		return nil, errors.Wrapf(errors.ErrNoPromotion, "promote on %s", sq)
	}

	pawn := g.pending
	piece := g.board.Place(kind, pawn.Owner(), sq)
	piece.SetHasMoved(true)
	g.pending = nil

	for i, m := range g.lastMovers {
		if m == pawn {
			g.lastMovers[i] = piece
		}
	}
	g.updateCheckList(g.lastMovers, g.lastVacated)

	g.reps.Forget(g.lastSig)
	g.lastSig = g.Signature()
	g.reps.Record(g.lastSig)
	g.invalidateAll()

	log.WithFields(log.Fields{
		"game":  g.id.String(),
		"index": g.index,
		"on":    sq.String(),
		"kind":  kind.String(),
	}).Debug("promote")
	return piece, nil
}
