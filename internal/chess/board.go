package chess

// Board is an 8x8 grid of piece handles indexed by [file][rank].
type Board struct {
	squares [BoardSize][BoardSize]*Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// SetupInitialPosition clears the board and sets up the standard chess
// starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.Place(backRank[file], White, Sq(file, White.HomeRank()))
		b.Place(Pawn, White, Sq(file, White.PawnRank()))
		b.Place(Pawn, Black, Sq(file, Black.PawnRank()))
		b.Place(backRank[file], Black, Sq(file, Black.HomeRank()))
	}
}

// Clear removes every piece.
func (b *Board) Clear() {
	b.squares = [BoardSize][BoardSize]*Piece{}
}

// At returns the piece on sq, or nil if the square is empty or off the board.
func (b *Board) At(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b.squares[sq.File][sq.Rank]
}

// Empty reports whether sq is on the board and unoccupied.
func (b *Board) Empty(sq Square) bool {
	return sq.Valid() && b.squares[sq.File][sq.Rank] == nil
}

// Place constructs a new piece on sq, replacing anything already there.
// It returns nil when sq is off the board.
func (b *Board) Place(kind Kind, owner Colour, sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	p := newPiece(kind, owner, sq)
	b.squares[sq.File][sq.Rank] = p
	return p
}

// Remove lifts the piece off sq and returns it. Ownership is released: the
// caller may keep the handle only to put it back with Put.
func (b *Board) Remove(sq Square) *Piece {
	p := b.At(sq)
	if p != nil {
		b.squares[sq.File][sq.Rank] = nil
	}
	return p
}

// Put sets the content of sq to p (which may be nil) and updates p's square.
func (b *Board) Put(sq Square, p *Piece) {
	if !sq.Valid() {
		return
	}
	b.squares[sq.File][sq.Rank] = p
	if p != nil {
		p.square = sq
	}
}

// Relocate moves p from its current square to sq, overwriting whatever
// occupied sq. It returns the overwritten piece.
func (b *Board) Relocate(p *Piece, sq Square) *Piece {
	captured := b.At(sq)
	b.squares[p.square.File][p.square.Rank] = nil
	b.Put(sq, p)
	return captured
}

// Contains reports whether the handle p is currently on this board.
func (b *Board) Contains(p *Piece) bool {
	return p != nil && b.At(p.square) == p
}

// Snapshot returns a copy of the grid of piece handles.
func (b *Board) Snapshot() [BoardSize][BoardSize]*Piece {
	return b.squares
}

// Pieces returns every piece of the given colour in file-then-rank order.
func (b *Board) Pieces(owner Colour) []*Piece {
	pieces := make([]*Piece, 0, 16)
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			if p := b.squares[file][rank]; p != nil && p.owner == owner {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// FindKing returns the king of the given colour, or nil.
func (b *Board) FindKing(owner Colour) *Piece {
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			if p := b.squares[file][rank]; p != nil && p.owner == owner && p.kind == King {
				return p
			}
		}
	}
	return nil
}

// PathClear reports whether every square strictly between from and to is
// empty. The squares must share a rank, file or diagonal.
func (b *Board) PathClear(from, to Square) bool {
	line, step := LineBetween(from, to)
	if line == NoLine {
		return false
	}
	for sq := from.Add(step.DF, step.DR); sq != to; sq = sq.Add(step.DF, step.DR) {
		if b.At(sq) != nil {
			return false
		}
	}
	return true
}

// Equal reports whether both boards hold the same kinds and owners on
// every square.
func (b *Board) Equal(other *Board) bool {
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			p, q := b.squares[file][rank], other.squares[file][rank]
			if (p == nil) != (q == nil) {
				return false
			}
			if p != nil && (p.kind != q.kind || p.owner != q.owner) {
				return false
			}
		}
	}
	return true
}
