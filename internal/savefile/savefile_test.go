package savefile

import (
	"bytes"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// kingsOnly is the smallest valid record: Black king e8, White king e1.
func kingsOnly() *Record {
	return &Record{
		Index:     10,
		Turn:      chess.Black,
		FiftyMove: 4,
		Pieces: []PieceRecord{
			{Kind: chess.King, Owner: chess.Black, Square: chess.MustSquare("e8"), DoubleStep: chess.NeverMoved, HasMoved: true},
			{Kind: chess.King, Owner: chess.White, Square: chess.MustSquare("e1"), DoubleStep: chess.NeverMoved},
		},
	}
}

// Offsets into the encoding of kingsOnly.
const (
	blackKingTag   = 16
	blackKingOwner = 17
	whiteKingTag   = 74
	whiteKingOwner = 75
	checkCount     = 80
)

func encode(t *testing.T, rec *Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	testutil.AssertNoError(t, Encode(&buf, rec))
	return buf.Bytes()
}

func TestEncodeLayout(t *testing.T) {
	data := encode(t, kingsOnly())

	if len(data) != checkCount+1 {
		t.Fatalf("len = %d, want %d", len(data), checkCount+1)
	}
	testutil.AssertEqual(t, string(data[:len(Magic)]), Magic)
	testutil.AssertEqual(t, data[9:12], []byte{10, 1, 4}, "header counters")
	testutil.AssertEqual(t, data[blackKingTag:blackKingTag+3], []byte{'K', 1, 1}, "black king")
	testutil.AssertEqual(t, data[whiteKingTag:whiteKingTag+3], []byte{'K', 0, 0}, "white king")
	testutil.AssertEqual(t, data[checkCount], byte(0), "check count")
}

func TestRoundTrip(t *testing.T) {
	rec := &Record{
		Index:     33,
		Turn:      chess.White,
		FiftyMove: 0,
		Pieces: []PieceRecord{
			{Kind: chess.Rook, Owner: chess.Black, Square: chess.MustSquare("a8"), DoubleStep: chess.NeverMoved},
			{Kind: chess.King, Owner: chess.Black, Square: chess.MustSquare("g8"), DoubleStep: chess.NeverMoved, HasMoved: true},
			{Kind: chess.Bishop, Owner: chess.White, Square: chess.MustSquare("b5"), DoubleStep: chess.NeverMoved},
			{Kind: chess.Pawn, Owner: chess.Black, Square: chess.MustSquare("d5"), DoubleStep: 32},
			{Kind: chess.Pawn, Owner: chess.White, Square: chess.MustSquare("e5"), DoubleStep: 12},
			{Kind: chess.Pawn, Owner: chess.White, Square: chess.MustSquare("f3"), DoubleStep: chess.MovedSingle},
			{Kind: chess.Pawn, Owner: chess.White, Square: chess.MustSquare("a2"), DoubleStep: chess.NeverMoved},
			{Kind: chess.Queen, Owner: chess.White, Square: chess.MustSquare("d1"), DoubleStep: chess.NeverMoved},
			{Kind: chess.King, Owner: chess.White, Square: chess.MustSquare("e1"), DoubleStep: chess.NeverMoved},
			{Kind: chess.Rook, Owner: chess.White, Square: chess.MustSquare("h1"), DoubleStep: chess.NeverMoved, HasMoved: true},
		},
		Checks: []chess.Square{chess.MustSquare("a8")},
	}

	got, err := Decode(bytes.NewReader(encode(t, rec)))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, rec)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{"bad signature", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"empty input", func(b []byte) []byte { return b[:0] }},
		{"truncated header", func(b []byte) []byte { return b[:10] }},
		{"truncated board", func(b []byte) []byte { return b[:blackKingOwner] }},
		{"truncated check list", func(b []byte) []byte { return b[:checkCount] }},
		{"invalid side to move", func(b []byte) []byte { b[10] = 2; return b }},
		{"unknown piece tag", func(b []byte) []byte { b[blackKingTag] = 'X'; return b }},
		{"invalid owner", func(b []byte) []byte { b[blackKingOwner] = 2; return b }},
		{"second king for a side", func(b []byte) []byte { b[whiteKingOwner] = 1; return b }},
		{"missing king", func(b []byte) []byte { b[whiteKingTag] = 0; return b }},
		{"too many checkers", func(b []byte) []byte { b[checkCount] = 3; return append(b, 4, 0, 4, 7, 4, 0) }},
		{"checker out of bounds", func(b []byte) []byte { b[checkCount] = 1; return append(b, 8, 0) }},
		{"checker on empty square", func(b []byte) []byte { b[checkCount] = 1; return append(b, 4, 3) }},
		{"checker pair cut short", func(b []byte) []byte { b[checkCount] = 1; return append(b, 4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(encode(t, kingsOnly()))
			_, err := Decode(bytes.NewReader(data))
			testutil.AssertErrorIs(t, err, errors.ErrCorruptSave)
			var se *errors.SaveError
			testutil.AssertTrue(t, errors.As(err, &se), "error is a SaveError")
		})
	}
}

func TestDecodeEveryPrefixFails(t *testing.T) {
	data := encode(t, kingsOnly())
	for n := 0; n < len(data); n++ {
		if _, err := Decode(bytes.NewReader(data[:n])); !errors.Is(err, errors.ErrCorruptSave) {
			t.Errorf("Decode(%d of %d bytes) error = %v, want ErrCorruptSave", n, len(data), err)
		}
	}
}

func TestDecodeCheckers(t *testing.T) {
	data := encode(t, kingsOnly())
	data[checkCount] = 1
	data = append(data, 4, 0) // e8

	rec, err := Decode(bytes.NewReader(data))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Checks, []chess.Square{chess.MustSquare("e8")})
}

func TestEncodeDoubleStep(t *testing.T) {
	tests := []struct {
		name  string
		value int
		index int
		want  byte
	}{
		{"never moved", chess.NeverMoved, 10, neverMovedByte},
		{"moved single", chess.MovedSingle, 10, movedSingleByte},
		{"just double-stepped", 9, 10, 9},
		{"old double step", 3, 10, 3},
		{"just double-stepped after wrap", 300, 301, byte(300 % 256)},
		{"old double step after wrap", 3, 301, movedSingleByte},
		{"just double-stepped on a sentinel value", 254, 255, movedSingleByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeDoubleStep(tt.value, tt.index); got != tt.want {
				t.Errorf("encodeDoubleStep(%d, %d) = %#x, want %#x", tt.value, tt.index, got, tt.want)
			}
		})
	}
}

func TestPeekIndex(t *testing.T) {
	data := encode(t, kingsOnly())
	got, err := PeekIndex(bytes.NewReader(data))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, 10)

	_, err = PeekIndex(bytes.NewReader([]byte("NOTACHESSFILE")))
	testutil.AssertErrorIs(t, err, errors.ErrCorruptSave)
}
