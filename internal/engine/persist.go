package engine

import (
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/savefile"
)

// Record converts the game to its save representation.
func (g *Game) Record() *savefile.Record {
	rec := &savefile.Record{
		Index:     g.index,
		Turn:      g.turn,
		FiftyMove: g.fifty,
	}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for _, p := range g.board.Pieces(c) {
			rec.Pieces = append(rec.Pieces, savefile.PieceRecord{
				Kind:       p.Kind(),
				Owner:      p.Owner(),
				Square:     p.Square(),
				DoubleStep: p.DoubleStep(),
				HasMoved:   p.Kind() != chess.Pawn && p.HasMoved(),
			})
		}
	}
	for _, p := range g.checks {
		rec.Checks = append(rec.Checks, p.Square())
	}
	return rec
}

// Encode writes the game in the save format.
func (g *Game) Encode(w io.Writer) error {
	return savefile.Encode(w, g.Record())
}

// Save writes the game to dir under its name and returns the file path.
func (g *Game) Save(dir string) (string, error) {
	path := filepath.Join(dir, g.name)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "save %s", path)
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "save %s", path)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "save %s", path)
	}

	log.WithFields(log.Fields{
		"game":  g.id.String(),
		"index": g.index,
		"path":  path,
	}).Debug("saved")
	return path, nil
}

// Load reads a saved game from path. The game is named after the file.
func Load(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}
	g.name = filepath.Base(path)

	log.WithFields(log.Fields{
		"game":  g.id.String(),
		"index": g.index,
		"path":  path,
	}).Debug("loaded")
	return g, nil
}

// Decode reads a saved game from r.
func Decode(r io.Reader) (*Game, error) {
	rec, err := savefile.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromRecord(rec)
}

// FromRecord rebuilds a game from its save representation.
func FromRecord(rec *savefile.Record) (*Game, error) {
	g := newGame()
	g.turn = rec.Turn
	g.index = rec.Index
	g.fifty = rec.FiftyMove

	for _, pr := range rec.Pieces {
		p := g.board.Place(pr.Kind, pr.Owner, pr.Square)
		if p == nil {
			return nil, errors.Corrupt(-1, "piece off the board at %s", pr.Square)
		}
		switch pr.Kind {
		case chess.Pawn:
			p.SetDoubleStep(pr.DoubleStep)
		case chess.Rook, chess.King:
			p.SetHasMoved(pr.HasMoved)
		}
	}

	g.kings[chess.White] = g.board.FindKing(chess.White)
	g.kings[chess.Black] = g.board.FindKing(chess.Black)
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if g.kings[c] == nil {
			return nil, errors.Corrupt(-1, "missing %s king", c)
		}
	}

	if len(rec.Checks) > maxCheckers {
		return nil, errors.Corrupt(-1, "%d checkers recorded", len(rec.Checks))
	}
	for _, sq := range rec.Checks {
		p := g.board.At(sq)
		if p == nil {
			return nil, errors.Corrupt(-1, "checker square %s is empty", sq)
		}
		g.checks = append(g.checks, p)
	}

	g.lastSig = g.Signature()
	g.reps.Record(g.lastSig)
	return g, nil
}
