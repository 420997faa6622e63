package engine

// Status is the state of a game from the point of view of the side to move.
type Status int

// Game states.
const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	DrawFiftyMoves
	DrawRepetition
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMoves:
		return "draw by fifty-move rule"
	case DrawRepetition:
		return "draw by repetition"
	}
	return "unknown"
}

// IsMate reports whether the game is over: a draw rule applies or the side
// to move has no legal move. Use InCheck to tell checkmate from the rest.
func (g *Game) IsMate() bool {
	return g.DrawBy50Moves() || g.DrawByRepetition() || !g.hasLegalMove()
}

// Status classifies the current position. Checkmate and stalemate take
// precedence over the draw rules.
func (g *Game) Status() Status {
	if !g.hasLegalMove() {
		if g.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case g.DrawByRepetition():
		return DrawRepetition
	case g.DrawBy50Moves():
		return DrawFiftyMoves
	}
	return Ongoing
}

// hasLegalMove reports whether the side to move has any legal move.
func (g *Game) hasLegalMove() bool {
	for _, p := range g.board.Pieces(g.turn) {
		if len(g.LegalMoves(p)) > 0 {
			return true
		}
	}
	return false
}
