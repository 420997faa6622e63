package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// maxCheckers is the most pieces that can give check at once.
const maxCheckers = 2

// updateCheckList recomputes the pieces checking the side to move after a
// move. movers are the pieces that just landed (the moved piece and a
// castled rook) and are tested for direct threats; vacated are the squares
// emptied by the move, tested for discovered checks.
func (g *Game) updateCheckList(movers []*chess.Piece, vacated []chess.Square) {
	g.checks = g.checks[:0]
	king := g.kings[g.turn]
	if king == nil {
		return
	}

	add := func(p *chess.Piece) {
		if p == nil || len(g.checks) >= maxCheckers || slices.Contains(g.checks, p) {
			return
		}
		g.checks = append(g.checks, p)
	}

	for _, p := range movers {
		if p.Threatens(g.board, king.Square()) {
			add(p)
		}
	}
	for _, sq := range vacated {
		add(g.isDiscoveryCheck(sq, g.turn))
	}
}
