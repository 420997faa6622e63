package hashing

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestRepetitionTable(t *testing.T) {
	table := NewRepetitionTable()

	testutil.AssertEqual(t, table.Record(1), 1)
	testutil.AssertEqual(t, table.Record(2), 1)
	testutil.AssertEqual(t, table.Record(1), 2)
	testutil.AssertFalse(t, table.Repeated(), "two occurrences")

	testutil.AssertEqual(t, table.Record(1), RepetitionThreshold)
	testutil.AssertTrue(t, table.Repeated(), "three occurrences")
	testutil.AssertEqual(t, table.Count(1), 3)
	testutil.AssertEqual(t, table.Count(9), 0)
	testutil.AssertEqual(t, table.Count(2), 1)
}

func TestRepetitionTableForget(t *testing.T) {
	table := NewRepetitionTable()
	for i := 0; i < RepetitionThreshold; i++ {
		table.Record(5)
	}
	table.Record(6)

	table.Forget(5)
	testutil.AssertFalse(t, table.Repeated(), "latch cleared after forgetting")
	testutil.AssertEqual(t, table.Count(5), 2)

	table.Forget(6)
	testutil.AssertEqual(t, table.Count(6), 0)

	table.Forget(42) // unknown signatures are ignored
	testutil.AssertEqual(t, table.Count(5), 2)
}

func TestRepetitionTableReset(t *testing.T) {
	table := NewRepetitionTable()
	for i := 0; i < RepetitionThreshold; i++ {
		table.Record(3)
	}
	table.Reset()
	testutil.AssertFalse(t, table.Repeated())
	testutil.AssertEqual(t, table.Count(3), 0)
}

func TestDuplicateDetector(t *testing.T) {
	d := NewDuplicateDetector()
	a := GameSignature{Hash: 0xabc, Index: 4}

	testutil.AssertNil(t, d.CheckAndAdd(a, "one.chess"))
	testutil.AssertEqual(t, d.CheckAndAdd(a, "two.chess"), []string{"one.chess"})
	testutil.AssertEqual(t, d.CheckAndAdd(a, "three.chess"), []string{"one.chess", "two.chess"})

	// Same position at another move index is a different entry.
	testutil.AssertNil(t, d.CheckAndAdd(GameSignature{Hash: 0xabc, Index: 6}, "four.chess"))

	testutil.AssertEqual(t, d.DuplicateCount(), 2)
	testutil.AssertEqual(t, d.UniqueCount(), 2)

	d.Reset()
	testutil.AssertEqual(t, d.DuplicateCount(), 0)
	testutil.AssertEqual(t, d.UniqueCount(), 0)
}

func TestDuplicateDetectorReturnsCopy(t *testing.T) {
	d := NewDuplicateDetector()
	sig := GameSignature{Hash: 1}
	d.CheckAndAdd(sig, "a")
	got := d.CheckAndAdd(sig, "b")
	got[0] = "changed"

	testutil.AssertEqual(t, d.CheckAndAdd(sig, "c"), []string{"a", "b"})
}
