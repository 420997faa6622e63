package worker

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// saveDir writes a small collection of saves: two copies of the start
// position, a finished game, a corrupt file and an unrelated file.
func saveDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	save := func(name string, moves ...string) {
		g := engine.NewGame()
		for _, m := range moves {
			if ok, err := g.MoveFrom(chess.MustSquare(m[:2]), chess.MustSquare(m[2:])); !ok || err != nil {
				t.Fatalf("move %s rejected", m)
			}
		}
		g.SetName(name)
		if _, err := g.Save(dir); err != nil {
			t.Fatal(err)
		}
	}
	save("a.chess")
	save("b.chess")
	save("c.chess", "f2f3", "e7e5", "g2g4", "d8h4")

	if err := os.WriteFile(filepath.Join(dir, "d.chess"), []byte("CHESSJKLV\x00\x00\x00"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSaveFiles(t *testing.T) {
	dir := saveDir(t)
	paths, err := SaveFiles(dir)
	testutil.AssertNoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	testutil.AssertEqual(t, names, []string{"a.chess", "b.chess", "c.chess", "d.chess"})

	_, err = SaveFiles(filepath.Join(dir, "missing"))
	testutil.AssertError(t, err)
}

func TestRunVerify(t *testing.T) {
	paths, err := SaveFiles(saveDir(t))
	testutil.AssertNoError(t, err)

	detector := hashing.NewThreadSafeDuplicateDetector()
	// One worker keeps "earlier" in path order.
	results := Run(paths, 1, VerifyFunc(detector), false)

	testutil.AssertEqual(t, len(results), 4)
	for i, res := range results {
		testutil.AssertEqual(t, res.Path, paths[i], "results in input order")
	}

	a, b, c, d := results[0], results[1], results[2], results[3]
	testutil.AssertTrue(t, a.OK(), "a.chess loads")
	testutil.AssertEqual(t, a.Status, "ongoing")
	testutil.AssertEqual(t, a.Turn, "White")
	testutil.AssertNil(t, a.Duplicates)

	testutil.AssertEqual(t, b.Duplicates, []string{"a.chess"})
	testutil.AssertEqual(t, b.Signature, a.Signature)

	testutil.AssertEqual(t, c.Status, "checkmate")
	testutil.AssertEqual(t, c.MoveIndex, 4)

	testutil.AssertFalse(t, d.OK(), "d.chess is corrupt")
	testutil.AssertErrorIs(t, d.Error, errors.ErrCorruptSave)

	testutil.AssertEqual(t, detector.DuplicateCount(), 1)
	testutil.AssertEqual(t, detector.UniqueCount(), 2)
}

func TestRunVerifyParallel(t *testing.T) {
	paths, err := SaveFiles(saveDir(t))
	testutil.AssertNoError(t, err)

	results := Run(paths, 4, VerifyFunc(nil), false)
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
		testutil.AssertNil(t, res.Duplicates)
	}
	testutil.AssertEqual(t, failed, 1)
}

func TestRunHeaders(t *testing.T) {
	paths, err := SaveFiles(saveDir(t))
	testutil.AssertNoError(t, err)

	results := Run(paths, 2, HeaderFunc(), false)
	testutil.AssertEqual(t, results[0].MoveIndex, 0)
	testutil.AssertEqual(t, results[2].MoveIndex, 4)
	testutil.AssertEqual(t, results[2].Status, "", "header mode skips the board")
	// The corrupt file has a valid header.
	testutil.AssertTrue(t, results[3].OK(), "d.chess header")

	results = Run([]string{filepath.Join(t.TempDir(), "gone.chess")}, 1, HeaderFunc(), false)
	testutil.AssertError(t, results[0].Error)
}

func TestRunFailFast(t *testing.T) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("game-%d.chess", i)
	}
	// The first file fails at once; the rest are slow enough for the
	// stop to land while the worker is still busy.
	fn := func(item WorkItem) ProcessResult {
		res := ProcessResult{Path: item.Path, Index: item.Index}
		if item.Index == 0 {
			res.Error = errors.ErrCorruptSave
			return res
		}
		time.Sleep(20 * time.Millisecond)
		return res
	}

	results := Run(paths, 1, fn, true)
	if len(results) == 0 || len(results) >= len(paths) {
		t.Fatalf("results = %d, want between 1 and %d", len(results), len(paths)-1)
	}
	testutil.AssertEqual(t, results[0].Path, "game-0.chess")
	testutil.AssertErrorIs(t, results[0].Error, errors.ErrCorruptSave)
	for i := 1; i < len(results); i++ {
		if results[i].Index <= results[i-1].Index {
			t.Errorf("results out of input order at %d", i)
		}
	}

	all := Run(paths, 1, fn, false)
	testutil.AssertEqual(t, len(all), len(paths), "without failFast every file is checked")
}
