package hashing

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

func BenchmarkSignature(b *testing.B) {
	board := startBoard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Signature(board, chess.White, i)
	}
}

func BenchmarkRepetitionTable_Record(b *testing.B) {
	table := NewRepetitionTable()
	for i := 0; i < b.N; i++ {
		table.Record(uint64(i % 512))
	}
}

func BenchmarkDuplicateDetector_CheckAndAdd(b *testing.B) {
	d := NewThreadSafeDuplicateDetector()
	for i := 0; i < b.N; i++ {
		d.CheckAndAdd(GameSignature{Hash: uint64(i % 1024), Index: i % 64}, "bench.chess")
	}
}
