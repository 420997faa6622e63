// Package savefile implements the binary save format of a chess game.
//
// Layout:
//
//	magic      9 bytes  "CHESSJKLV"
//	index      1 byte   move index (wraps beyond 255)
//	turn       1 byte   0 White, 1 Black
//	fifty      1 byte   fifty-move counter
//	board      64 squares, row 0 = rank 8 down to rank 1, files a..h:
//	             tag byte (0 empty, else P R N B Q K)
//	             owner byte
//	             pawn: double-step byte (0xFF never moved, 0xFE moved single)
//	             rook/king: has-moved byte
//	checks     count byte, then (x, y) byte pairs in board orientation
package savefile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Magic is the signature every save file starts with.
const Magic = "CHESSJKLV"

// Pawn double-step encodings.
const (
	neverMovedByte  = 0xFF
	movedSingleByte = 0xFE
)

// MaxCheckers is the largest check list a legal position can have.
const MaxCheckers = 2

// header is the fixed-size prefix of a save file.
type header struct {
	Magic [len(Magic)]byte
	Index uint8
	Turn  uint8
	Fifty uint8
}

// PieceRecord is one occupied square of a saved board.
type PieceRecord struct {
	Kind       chess.Kind
	Owner      chess.Colour
	Square     chess.Square
	DoubleStep int  // pawns only
	HasMoved   bool // rooks and kings only
}

// Record is the decoded content of a save file.
type Record struct {
	Index     int
	Turn      chess.Colour
	FiftyMove int
	Pieces    []PieceRecord
	Checks    []chess.Square
}

// rowOf converts a square to its (x, y) position in save orientation.
func rowOf(sq chess.Square) (x, y int) {
	return sq.File, chess.BoardSize - 1 - sq.Rank
}

// squareAt converts a save-orientation (x, y) position to a square.
func squareAt(x, y int) chess.Square {
	return chess.Sq(x, chess.BoardSize-1-y)
}

// Encode writes rec to w in the save format.
func Encode(w io.Writer, rec *Record) error {
	var buf bytes.Buffer

	hdr := header{
		Index: uint8(rec.Index),
		Turn:  uint8(rec.Turn),
		Fifty: uint8(rec.FiftyMove),
	}
	copy(hdr.Magic[:], Magic)
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return errors.Wrap(err, "write header")
	}

	var grid [chess.BoardSize][chess.BoardSize]*PieceRecord
	for i := range rec.Pieces {
		x, y := rowOf(rec.Pieces[i].Square)
		grid[y][x] = &rec.Pieces[i]
	}
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			p := grid[y][x]
			if p == nil {
				buf.WriteByte(0)
				continue
			}
			buf.WriteByte(p.Kind.Letter())
			buf.WriteByte(byte(p.Owner))
			switch p.Kind {
			case chess.Pawn:
				buf.WriteByte(encodeDoubleStep(p.DoubleStep, rec.Index))
			case chess.Rook, chess.King:
				buf.WriteByte(boolByte(p.HasMoved))
			}
		}
	}

	buf.WriteByte(byte(len(rec.Checks)))
	for _, sq := range rec.Checks {
		x, y := rowOf(sq)
		buf.WriteByte(byte(x))
		buf.WriteByte(byte(y))
	}

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write save")
}

// encodeDoubleStep squeezes a pawn's double-step marker into one byte.
// Indices that no longer enable en passant are kept exactly while they fit
// and are not ambiguous after the move index wraps; otherwise they
// degrade to "moved single", which has the same effect on legality.
func encodeDoubleStep(v, index int) byte {
	switch {
	case v == chess.NeverMoved:
		return neverMovedByte
	case v < 0:
		return movedSingleByte
	case v == index-1:
		if b := byte(v); b < movedSingleByte {
			return b
		}
		return movedSingleByte
	case v < movedSingleByte && index <= 0xFF:
		return byte(v)
	}
	return movedSingleByte
}

func decodeDoubleStep(b byte) int {
	switch b {
	case neverMovedByte:
		return chess.NeverMoved
	case movedSingleByte:
		return chess.MovedSingle
	}
	return int(b)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// byteReader reads single bytes and remembers the offset for error reports.
type byteReader struct {
	r   *bufio.Reader
	off int64
}

func (br *byteReader) readByte(what string) (byte, error) {
	b, err := br.r.ReadByte()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return 0, errors.Corrupt(br.off, "unexpected end of data reading %s", what)
		}
		return 0, errors.Wrapf(err, "read %s", what)
	}
	br.off++
	return b, nil
}

// Decode reads a save file from r and validates its structure.
func Decode(r io.Reader) (*Record, error) {
	br := &byteReader{r: bufio.NewReader(r)}

	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if hdr.Turn > 1 {
		return nil, errors.Corrupt(int64(len(Magic)+1), "invalid side to move %d", hdr.Turn)
	}

	rec := &Record{
		Index:     int(hdr.Index),
		Turn:      chess.Colour(hdr.Turn),
		FiftyMove: int(hdr.Fifty),
	}

	if err := readBoard(br, rec); err != nil {
		return nil, err
	}
	if err := readChecks(br, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readHeader reads and checks the magic signature and the three counters.
func readHeader(br *byteReader) (header, error) {
	var hdr header
	if err := binary.Read(br.r, binary.LittleEndian, &hdr); err != nil {
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
			return hdr, errors.Corrupt(0, "truncated header")
		}
		return hdr, errors.Wrap(err, "read header")
	}
	br.off = int64(binary.Size(hdr))
	if string(hdr.Magic[:]) != Magic {
		return hdr, errors.Corrupt(0, "bad signature %q", hdr.Magic[:])
	}
	return hdr, nil
}

func readBoard(br *byteReader, rec *Record) error {
	var kings [2]bool
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			sq := squareAt(x, y)
			tagOff := br.off
			tag, err := br.readByte("piece tag")
			if err != nil {
				return err
			}
			if tag == 0 {
				continue
			}
			kind := chess.KindFromLetter(tag)
			if kind == chess.NoKind {
				return errors.Corrupt(tagOff, "unknown piece tag %q at %s", tag, sq)
			}

			ownerOff := br.off
			owner, err := br.readByte("piece owner")
			if err != nil {
				return err
			}
			if owner > 1 {
				return errors.Corrupt(ownerOff, "invalid owner %d at %s", owner, sq)
			}

			p := PieceRecord{Kind: kind, Owner: chess.Colour(owner), Square: sq, DoubleStep: chess.NeverMoved}
			switch kind {
			case chess.Pawn:
				b, err := br.readByte("pawn state")
				if err != nil {
					return err
				}
				p.DoubleStep = decodeDoubleStep(b)
			case chess.Rook, chess.King:
				b, err := br.readByte("moved flag")
				if err != nil {
					return err
				}
				p.HasMoved = b != 0
			}

			if kind == chess.King {
				if kings[owner] {
					return errors.Corrupt(tagOff, "second %s king at %s", p.Owner, sq)
				}
				kings[owner] = true
			}
			rec.Pieces = append(rec.Pieces, p)
		}
	}

	for colour, found := range kings {
		if !found {
			return errors.Corrupt(br.off, "missing %s king", chess.Colour(colour))
		}
	}
	return nil
}

func readChecks(br *byteReader, rec *Record) error {
	countOff := br.off
	count, err := br.readByte("check count")
	if err != nil {
		return err
	}
	if count > MaxCheckers {
		return errors.Corrupt(countOff, "%d checkers recorded", count)
	}

	occupied := make(map[chess.Square]bool, len(rec.Pieces))
	for _, p := range rec.Pieces {
		occupied[p.Square] = true
	}

	for i := 0; i < int(count); i++ {
		pairOff := br.off
		x, err := br.readByte("checker x")
		if err != nil {
			return err
		}
		y, err := br.readByte("checker y")
		if err != nil {
			return err
		}
		if x >= chess.BoardSize || y >= chess.BoardSize {
			return errors.Corrupt(pairOff, "checker (%d,%d) out of bounds", x, y)
		}
		sq := squareAt(int(x), int(y))
		if !occupied[sq] {
			return errors.Corrupt(pairOff, "checker square %s is empty", sq)
		}
		rec.Checks = append(rec.Checks, sq)
	}
	return nil
}

// PeekIndex reads only the header of a save and returns its move index.
func PeekIndex(r io.Reader) (int, error) {
	br := &byteReader{r: bufio.NewReader(r)}
	hdr, err := readHeader(br)
	if err != nil {
		return 0, err
	}
	return int(hdr.Index), nil
}
