package chess

import "fmt"

// Pawn double-step markers. Any other value is the move index at which the
// pawn double-stepped.
const (
	NeverMoved  = -1 // pawn still on its start square
	MovedSingle = -2 // pawn moved but never double-stepped
)

// Piece is a single chess piece on a Board. The Board owns every piece;
// everything else holds a *Piece handle into it.
type Piece struct {
	kind   Kind
	owner  Colour
	square Square

	// doubleStep is only meaningful for pawns.
	doubleStep int
	// hasMoved is only meaningful for rooks and kings.
	hasMoved bool

	// Legal-move memo, valid while cacheIndex equals the game's move index.
	cacheIndex  int
	cachedMoves []Square
}

// newPiece constructs a piece in its never-moved state.
func newPiece(kind Kind, owner Colour, sq Square) *Piece {
	return &Piece{
		kind:       kind,
		owner:      owner,
		square:     sq,
		doubleStep: NeverMoved,
		cacheIndex: -1,
	}
}

// Kind returns the piece type.
func (p *Piece) Kind() Kind { return p.kind }

// Owner returns the colour of the player owning the piece.
func (p *Piece) Owner() Colour { return p.owner }

// Square returns the square the piece stands on.
func (p *Piece) Square() Square { return p.square }

// Letter returns the piece letter, uppercase for White and lowercase for Black.
func (p *Piece) Letter() byte {
	l := p.kind.Letter()
	if p.owner == Black {
		l += 'a' - 'A'
	}
	return l
}

// DoubleStep returns the pawn's double-step marker: NeverMoved,
// MovedSingle, or the move index of its double step.
func (p *Piece) DoubleStep() int { return p.doubleStep }

// SetDoubleStep sets the pawn's double-step marker.
func (p *Piece) SetDoubleStep(v int) { p.doubleStep = v }

// HasMoved reports whether a rook or king has ever moved. For pawns it
// reports whether the pawn left its start square.
func (p *Piece) HasMoved() bool {
	if p.kind == Pawn {
		return p.doubleStep != NeverMoved
	}
	return p.hasMoved
}

// SetHasMoved sets the castling flag of a rook or king.
func (p *Piece) SetHasMoved(v bool) { p.hasMoved = v }

// JustDoubleStepped reports whether the piece is a pawn that double-stepped
// on the move immediately preceding move index.
func (p *Piece) JustDoubleStepped(index int) bool {
	return p.kind == Pawn && p.doubleStep >= 0 && p.doubleStep == index-1
}

// Cached returns the memoised legal moves if they were computed at index.
func (p *Piece) Cached(index int) ([]Square, bool) {
	if p.cacheIndex != index {
		return nil, false
	}
	return p.cachedMoves, true
}

// Remember stores the legal moves computed at index.
func (p *Piece) Remember(index int, moves []Square) {
	p.cacheIndex = index
	p.cachedMoves = moves
}

// Invalidate drops the memoised legal moves.
func (p *Piece) Invalidate() {
	p.cacheIndex = -1
	p.cachedMoves = nil
}

// String returns a debug representation such as "White Knight g1".
func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s %s", p.owner, p.kind, p.square)
}
