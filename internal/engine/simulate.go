package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// simulate plays p to `to` on the board, evaluates fn and puts everything
// back before returning fn's result. Captures, including en passant, are
// lifted for the duration. No piece flags, counters or caches are touched.
func (g *Game) simulate(p *chess.Piece, to chess.Square, fn func() bool) bool {
	from := p.Square()
	capSq := to
	if victim := p.EnPassantVictim(g.board, to, g.index); victim != nil {
		capSq = victim.Square()
	}

	captured := g.board.Remove(capSq)
	g.board.Relocate(p, to)
	defer func() {
		g.board.Put(to, nil)
		g.board.Put(from, p)
		if captured != nil {
			g.board.Put(capSq, captured)
		}
	}()

	return fn()
}
