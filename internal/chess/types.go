// Package chess provides the core chess types: colours, piece kinds,
// squares, pieces and the board that owns them.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

// The numeric values double as the owner byte of the save format.
const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the rank index of the colour's back rank.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank returns the rank index pawns of this colour start on.
func (c Colour) PawnRank() int {
	return c.HomeRank() + c.Forward()
}

// LastRank returns the rank index on which pawns of this colour promote.
func (c Colour) LastRank() int {
	return c.Opposite().HomeRank()
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
// The letters are the piece tags of the save format.
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts an uppercase piece letter back to a Kind.
// It returns NoKind for unrecognised letters.
func KindFromLetter(letter byte) Kind {
	switch letter {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	}
	return NoKind
}

// IsSlider reports whether pieces of this kind attack along rays.
func (k Kind) IsSlider() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	RankBase = '1'
	FileBase = 'a'
)

// Square is a (file, rank) pair. Rank 0 is White's back rank.
type Square struct {
	File int
	Rank int
}

// Sq is shorthand for Square{File: file, Rank: rank}.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Add returns the square offset by the given deltas. The result may be off the board.
func (s Square) Add(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + s.Rank)})
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	s := Square{File: int(name[0]) - FileBase, Rank: int(name[1]) - RankBase}
	if !s.Valid() {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	return s, nil
}

// MustSquare is like ParseSquare but panics on malformed input.
// It is intended for literals in setup code and tests.
func MustSquare(name string) Square {
	s, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Direction is a unit step on the board.
type Direction struct {
	DF, DR int
}

// Ray directions and leaper offsets.
var (
	OrthogonalDirs = []Direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	DiagonalDirs   = []Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	KingOffsets    = []Direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	KnightOffsets  = []Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// Line classifies the geometric relationship between two squares.
type Line int

const (
	NoLine Line = iota
	SameRank
	SameFile
	SameDiagonal     // a1-h8 direction
	SameAntiDiagonal // a8-h1 direction
)

// LineBetween returns the line shared by a and b and the unit step from a
// towards b. The step is zero when the squares are equal or unaligned.
func LineBetween(a, b Square) (Line, Direction) {
	df, dr := b.File-a.File, b.Rank-a.Rank
	step := Direction{DF: sign(df), DR: sign(dr)}
	switch {
	case df == 0 && dr == 0:
		return NoLine, Direction{}
	case dr == 0:
		return SameRank, step
	case df == 0:
		return SameFile, step
	case df == dr:
		return SameDiagonal, step
	case df == -dr:
		return SameAntiDiagonal, step
	}
	return NoLine, Direction{}
}

// Orthogonal reports whether the line is a rank or a file.
func (l Line) Orthogonal() bool {
	return l == SameRank || l == SameFile
}

// Diagonal reports whether the line is one of the two diagonals.
func (l Line) Diagonal() bool {
	return l == SameDiagonal || l == SameAntiDiagonal
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
