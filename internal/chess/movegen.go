package chess

// Castling geometry relative to the king's home square.
const (
	KingHomeFile      = 4
	QueensideRookFile = 0
	KingsideRookFile  = BoardSize - 1
)

// RawCandidates returns the squares p could move to by geometry alone,
// ignoring whether the move leaves its own king in check. index is the
// game's current move index, used to detect en passant.
func (p *Piece) RawCandidates(b *Board, index int) []Square {
	switch p.kind {
	case Pawn:
		return p.pawnCandidates(b, index)
	case Knight:
		return p.leaperCandidates(b, KnightOffsets)
	case Bishop:
		return p.sliderCandidates(b, DiagonalDirs, nil)
	case Rook:
		return p.sliderCandidates(b, OrthogonalDirs, nil)
	case Queen:
		moves := p.sliderCandidates(b, DiagonalDirs, make([]Square, 0, 27))
		return p.sliderCandidates(b, OrthogonalDirs, moves)
	case King:
		moves := p.leaperCandidates(b, KingOffsets)
		return append(moves, p.CastleCandidates(b)...)
	}
	return nil
}

// pawnCandidates generates pushes, captures and en passant captures.
func (p *Piece) pawnCandidates(b *Board, index int) []Square {
	moves := make([]Square, 0, 4)
	fwd := p.owner.Forward()

	one := p.square.Add(0, fwd)
	if b.Empty(one) {
		moves = append(moves, one)
		two := one.Add(0, fwd)
		if p.square.Rank == p.owner.PawnRank() && b.Empty(two) {
			moves = append(moves, two)
		}
	}

	for df := -1; df <= 1; df += 2 {
		target := p.square.Add(df, fwd)
		if !target.Valid() {
			continue
		}
		if victim := b.At(target); victim != nil {
			if victim.owner != p.owner {
				moves = append(moves, target)
			}
			continue
		}
		if p.EnPassantVictim(b, target, index) != nil {
			moves = append(moves, target)
		}
	}
	return moves
}

// EnPassantVictim returns the enemy pawn that a capture by pawn p onto the
// empty square target would take en passant, or nil if target is not an
// en passant capture.
func (p *Piece) EnPassantVictim(b *Board, target Square, index int) *Piece {
	if p.kind != Pawn || target.File == p.square.File || b.At(target) != nil {
		return nil
	}
	victim := b.At(Sq(target.File, p.square.Rank))
	if victim == nil || victim.owner == p.owner || !victim.JustDoubleStepped(index) {
		return nil
	}
	return victim
}

// leaperCandidates generates moves for knights and the king's single steps.
func (p *Piece) leaperCandidates(b *Board, offsets []Direction) []Square {
	moves := make([]Square, 0, len(offsets)+2)
	for _, off := range offsets {
		target := p.square.Add(off.DF, off.DR)
		if !target.Valid() {
			continue
		}
		if occupant := b.At(target); occupant == nil || occupant.owner != p.owner {
			moves = append(moves, target)
		}
	}
	return moves
}

// sliderCandidates casts rays until the first occupied square, which is
// included only when it holds an enemy piece.
func (p *Piece) sliderCandidates(b *Board, dirs []Direction, moves []Square) []Square {
	if moves == nil {
		moves = make([]Square, 0, 14)
	}
	for _, dir := range dirs {
		for target := p.square.Add(dir.DF, dir.DR); target.Valid(); target = target.Add(dir.DF, dir.DR) {
			occupant := b.At(target)
			if occupant == nil {
				moves = append(moves, target)
				continue
			}
			if occupant.owner != p.owner {
				moves = append(moves, target)
			}
			break // Blocked
		}
	}
	return moves
}

// CastleCandidates returns the king destinations of castles whose pieces
// have never moved and whose intervening squares are empty. Attack-based
// conditions are not checked here.
func (p *Piece) CastleCandidates(b *Board) []Square {
	if p.kind != King || p.hasMoved {
		return nil
	}
	home := Sq(KingHomeFile, p.owner.HomeRank())
	if p.square != home {
		return nil
	}
	var moves []Square
	for _, rookFile := range []int{QueensideRookFile, KingsideRookFile} {
		if p.CastleRook(b, rookFile) != nil && b.PathClear(home, Sq(rookFile, home.Rank)) {
			moves = append(moves, home.Add(2*sign(rookFile-home.File), 0))
		}
	}
	return moves
}

// CastleRook returns the unmoved friendly rook in the corner on rookFile,
// or nil.
func (p *Piece) CastleRook(b *Board, rookFile int) *Piece {
	rook := b.At(Sq(rookFile, p.owner.HomeRank()))
	if rook == nil || rook.kind != Rook || rook.owner != p.owner || rook.hasMoved {
		return nil
	}
	return rook
}

// IsCastle reports whether a king move from its square to target is a
// castle: an unmoved king on its home square stepping two files sideways.
func (p *Piece) IsCastle(target Square) bool {
	if p.kind != King || p.hasMoved || p.square != Sq(KingHomeFile, p.owner.HomeRank()) {
		return false
	}
	return target.Rank == p.square.Rank && abs(target.File-p.square.File) == 2
}

// Threatens reports whether p's raw attack pattern covers target. Sliders
// are blocked by occupancy; pins are ignored.
func (p *Piece) Threatens(b *Board, target Square) bool {
	if target == p.square || !target.Valid() {
		return false
	}
	df, dr := target.File-p.square.File, target.Rank-p.square.Rank
	switch p.kind {
	case Pawn:
		return dr == p.owner.Forward() && abs(df) == 1
	case Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1
	case Bishop, Rook, Queen:
		line, _ := LineBetween(p.square, target)
		if !p.kind.Covers(line) {
			return false
		}
		return b.PathClear(p.square, target)
	}
	return false
}

// Covers reports whether a slider of this kind attacks along line.
func (k Kind) Covers(line Line) bool {
	switch k {
	case Bishop:
		return line.Diagonal()
	case Rook:
		return line.Orthogonal()
	case Queen:
		return line != NoLine
	}
	return false
}
