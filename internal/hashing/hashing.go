// Package hashing provides position signatures, repetition counting and
// duplicate detection for saved games.
package hashing

import "golang.org/x/exp/slices"

// RepetitionThreshold is the number of occurrences of one position that
// draws the game.
const RepetitionThreshold = 3

// RepetitionTable counts how often each position signature occurred.
type RepetitionTable struct {
	counts map[uint64]int
	// repeated latches once any position reaches RepetitionThreshold
	repeated bool
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

// Record adds one occurrence of sig and returns the new count.
func (t *RepetitionTable) Record(sig uint64) int {
	t.counts[sig]++
	n := t.counts[sig]
	if n >= RepetitionThreshold {
		t.repeated = true
	}
	return n
}

// Forget removes one occurrence of sig. It is used when the position
// recorded for a move is replaced, e.g. after a promotion choice.
func (t *RepetitionTable) Forget(sig uint64) {
	switch n := t.counts[sig]; {
	case n > 1:
		t.counts[sig] = n - 1
	case n == 1:
		delete(t.counts, sig)
	}
	t.repeated = false
	for _, n := range t.counts {
		if n >= RepetitionThreshold {
			t.repeated = true
			break
		}
	}
}

// Count returns how many times sig occurred.
func (t *RepetitionTable) Count(sig uint64) int {
	return t.counts[sig]
}

// Repeated reports whether any position occurred RepetitionThreshold times.
func (t *RepetitionTable) Repeated() bool {
	return t.repeated
}

// Reset clears the table.
func (t *RepetitionTable) Reset() {
	t.counts = make(map[uint64]int)
	t.repeated = false
}

// DuplicateDetector tracks seen game signatures to report saves that hold
// the same position.
type DuplicateDetector struct {
	// hashTable maps a signature to the names of saves holding it
	hashTable map[GameSignature][]string
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a saved position.
type GameSignature struct {
	// Hash is the Zobrist signature of the position
	Hash uint64
	// Index is the move index stored alongside the position
	Index int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		hashTable: make(map[GameSignature][]string),
	}
}

// CheckAndAdd records the save name under sig and returns the names of
// previously seen saves with the same signature.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature, name string) []string {
	existing := d.hashTable[sig]
	if len(existing) > 0 {
		d.duplicateCount++
	}
	d.hashTable[sig] = append(existing, name)
	return slices.Clone(existing)
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct signatures.
func (d *DuplicateDetector) UniqueCount() int {
	return len(d.hashTable)
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[GameSignature][]string)
	d.duplicateCount = 0
}
