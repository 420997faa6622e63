package worker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/savefile"
)

// VerifyFunc returns a ProcessFunc that fully loads each save file. When
// detector is non-nil, files holding the same position at the same move
// index are reported as duplicates of earlier ones.
func VerifyFunc(detector *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Path: item.Path, Index: item.Index}

		g, err := engine.Load(item.Path)
		if err != nil {
			res.Error = err
			log.WithError(err).WithField("path", item.Path).Debug("verify failed")
			return res
		}

		res.MoveIndex = g.Index()
		res.Turn = g.Turn().String()
		res.Status = g.Status().String()
		res.Signature = g.Signature()
		if detector != nil {
			sig := hashing.GameSignature{Hash: res.Signature, Index: res.MoveIndex}
			res.Duplicates = detector.CheckAndAdd(sig, filepath.Base(item.Path))
		}
		return res
	}
}

// HeaderFunc returns a ProcessFunc that reads only the header of each save
// file, reporting its move index.
func HeaderFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Path: item.Path, Index: item.Index}

		f, err := os.Open(item.Path)
		if err != nil {
			res.Error = err
			return res
		}
		defer f.Close()

		res.MoveIndex, res.Error = savefile.PeekIndex(f)
		return res
	}
}

// SaveFiles lists the save files in dir, sorted by name.
func SaveFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), engine.SaveExtension) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// Run processes paths with fn on a pool of n workers and returns the
// results in input order. With failFast set the pool stops at the first
// failure, and files that were skipped have no result.
func Run(paths []string, n int, fn ProcessFunc, failFast bool) []ProcessResult {
	pool := NewPool(fn, WithWorkers(n), WithBufferSize(len(paths)+1))
	pool.Start()

	go func() {
		// The buffer holds every path, so Submit never blocks here.
		for i, path := range paths {
			if pool.IsStopped() {
				break
			}
			pool.Submit(WorkItem{Path: path, Index: i})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, len(paths))
	done := make([]bool, len(paths))
	for res := range pool.Results() {
		results[res.Index] = res
		done[res.Index] = true
		if failFast && !res.OK() && !pool.IsStopped() {
			log.WithField("path", res.Path).Debug("stopping at first failure")
			pool.Stop()
		}
	}

	finished := results[:0]
	for i, res := range results {
		if done[i] {
			finished = append(finished, res)
		}
	}
	return finished
}
