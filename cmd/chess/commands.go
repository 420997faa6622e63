package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// options holds per-command flag values.
type options struct {
	name    string
	promote string
	noSave   bool
	headers  bool
	failFast bool
}

// run dispatches args[0] to its command.
func run(cfg *config.Config, opts options, args []string, stdin io.Reader) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	cmd, args := args[0], args[1:]

	want := map[string][2]int{
		"new":    {0, 0},
		"show":   {1, -1},
		"moves":  {2, 2},
		"move":   {2, 3},
		"play":   {0, 1},
		"verify": {0, 1},
	}
	n, ok := want[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q", cmd)
	}
	if len(args) < n[0] || (n[1] >= 0 && len(args) > n[1]) {
		return fmt.Errorf("%s: wrong number of arguments", cmd)
	}

	switch cmd {
	case "new":
		return cmdNew(cfg, opts)
	case "show":
		return cmdShow(cfg, args)
	case "moves":
		return cmdMoves(cfg, args[0], args[1])
	case "move":
		return cmdMove(cfg, opts, args[0], strings.Join(args[1:], ""))
	case "play":
		return cmdPlay(cfg, opts, args, stdin)
	default:
		dir := cfg.SaveDir
		if len(args) == 1 {
			dir = args[0]
		}
		return cmdVerify(cfg, opts, dir)
	}
}

// resolvePath finds a save file by name. Bare names are looked up in the
// save directory and get the save extension when it is missing.
func resolvePath(cfg *config.Config, name string) string {
	if filepath.Ext(name) == "" {
		name += engine.SaveExtension
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(cfg.SaveDir, name)
}

// writeGame writes g in the configured format.
func writeGame(cfg *config.Config, g *engine.Game) error {
	w := output.NewGameWriter(cfg)
	if err := w.WriteGame(g); err != nil {
		return err
	}
	return w.Close()
}

// saveBack writes g to the directory it was loaded from.
func saveBack(g *engine.Game, path string) error {
	saved, err := g.Save(filepath.Dir(path))
	if err != nil {
		return err
	}
	log.WithField("path", saved).Info("saved")
	return nil
}

func cmdNew(cfg *config.Config, opts options) error {
	g := engine.NewGame()
	if opts.name != "" {
		name := opts.name
		if filepath.Ext(name) == "" {
			name += engine.SaveExtension
		}
		g.SetName(name)
	}

	path, err := g.Save(cfg.SaveDir)
	if err != nil {
		return err
	}
	log.WithField("path", path).Info("created")
	return writeGame(cfg, g)
}

// cmdShow prints each named game. Several games in JSON form are written
// as one document.
func cmdShow(cfg *config.Config, names []string) error {
	if len(names) == 1 {
		g, err := engine.Load(resolvePath(cfg, names[0]))
		if err != nil {
			return err
		}
		return writeGame(cfg, g)
	}

	w := output.NewGamesWriter(cfg)
	for _, name := range names {
		g, err := engine.Load(resolvePath(cfg, name))
		if err != nil {
			return err
		}
		if err := w.WriteGame(g); err != nil {
			return err
		}
	}
	return w.Close()
}

func cmdMoves(cfg *config.Config, name, square string) error {
	g, err := engine.Load(resolvePath(cfg, name))
	if err != nil {
		return err
	}
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return err
	}
	if g.At(sq) == nil {
		return fmt.Errorf("no piece on %s", sq)
	}

	moves := g.LegalMovesAt(sq)
	names := squareNames(moves)

	if cfg.Output.Format == config.JSON {
		enc := json.NewEncoder(cfg.OutputFile)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{sq.String(): names})
	}

	if _, err := io.WriteString(cfg.OutputFile, output.RenderGame(g, cfg.Output, moves)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cfg.OutputFile, "%s: %s\n", sq, strings.Join(names, " "))
	return err
}

func cmdMove(cfg *config.Config, opts options, name, move string) error {
	path := resolvePath(cfg, name)
	g, err := engine.Load(path)
	if err != nil {
		return err
	}
	if err := applyMove(g, move, opts.promote); err != nil {
		return err
	}
	if !opts.noSave {
		if err := saveBack(g, path); err != nil {
			return err
		}
	}
	return writeGame(cfg, g)
}

// cmdPlay reads moves from stdin until input ends or the game is over.
// Blank lines and lines starting with # are skipped.
func cmdPlay(cfg *config.Config, opts options, args []string, stdin io.Reader) error {
	var (
		g    *engine.Game
		path string
		err  error
	)
	if len(args) == 1 {
		path = resolvePath(cfg, args[0])
		if g, err = engine.Load(path); err != nil {
			return err
		}
	} else {
		g = engine.NewGame()
		if opts.name != "" {
			g.SetName(filepath.Base(resolvePath(cfg, opts.name)))
		}
		path = filepath.Join(cfg.SaveDir, g.Name())
	}

	scanner := bufio.NewScanner(stdin)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if g.Status() != engine.Ongoing {
			log.WithField("line", line).Warn("game over, ignoring remaining moves")
			break
		}
		if err := applyMove(g, text, opts.promote); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if !opts.noSave {
		if err := saveBack(g, path); err != nil {
			return err
		}
	}
	return writeGame(cfg, g)
}

// applyMove plays a coordinate move such as "e2e4" or "e7e8n". A pawn
// reaching the last rank is promoted to the piece named in the move, or
// to promote when the move names none.
func applyMove(g *engine.Game, move, promote string) error {
	from, to, kind, err := parseMove(move)
	if err != nil {
		return err
	}
	if kind == chess.NoKind {
		if kind, err = parsePromotion(promote); err != nil {
			return err
		}
	}

	ok, err := g.MoveFrom(from, to)
	if err != nil {
		return fmt.Errorf("move %s: %w", move, err)
	}
	if !ok {
		return fmt.Errorf("illegal move %s", move)
	}

	if sq, pending := g.PendingPromotion(); pending {
		if _, err := g.Promote(sq, kind); err != nil {
			return err
		}
	}
	return nil
}

// parseMove splits "e2e4", "e2-e4" or "e7e8q" into its parts. The kind is
// NoKind when no promotion piece is named.
func parseMove(s string) (from, to chess.Square, kind chess.Kind, err error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(s) != 4 && len(s) != 5 {
		return from, to, chess.NoKind, fmt.Errorf("invalid move %q", s)
	}
	if from, err = chess.ParseSquare(s[:2]); err != nil {
		return from, to, chess.NoKind, err
	}
	if to, err = chess.ParseSquare(s[2:4]); err != nil {
		return from, to, chess.NoKind, err
	}
	if len(s) == 5 {
		if kind, err = parsePromotion(s[4:]); err != nil {
			return from, to, chess.NoKind, err
		}
	}
	return from, to, kind, nil
}

// parsePromotion converts a promotion letter (q, r, b or n in either
// case) to a kind.
func parsePromotion(s string) (chess.Kind, error) {
	if len(s) == 1 {
		switch kind := chess.KindFromLetter(strings.ToUpper(s)[0]); kind {
		case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
			return kind, nil
		}
	}
	return chess.NoKind, fmt.Errorf("invalid promotion piece %q", s)
}

func squareNames(sqs []chess.Square) []string {
	names := make([]string, len(sqs))
	for i, sq := range sqs {
		names[i] = sq.String()
	}
	slices.Sort(names)
	return names
}

// cmdVerify checks every save file in dir and reports failures and
// duplicate positions. It fails when any file does not load.
func cmdVerify(cfg *config.Config, opts options, dir string) error {
	paths, err := worker.SaveFiles(dir)
	if err != nil {
		return err
	}

	var detector *hashing.ThreadSafeDuplicateDetector
	fn := worker.HeaderFunc()
	if !opts.headers {
		if cfg.Duplicate.Report {
			detector = hashing.NewThreadSafeDuplicateDetector()
		}
		fn = worker.VerifyFunc(detector)
	}

	log.WithFields(log.Fields{"dir": dir, "files": len(paths), "workers": cfg.Workers}).Info("verifying")
	results := worker.Run(paths, cfg.Workers, fn, opts.failFast)
	if len(results) < len(paths) {
		log.WithField("skipped", len(paths)-len(results)).Warn("stopped at first failure")
	}

	dupOut := cfg.Duplicate.DuplicateFile
	if dupOut == nil {
		dupOut = cfg.OutputFile
	}

	failed := 0
	for _, res := range results {
		name := filepath.Base(res.Path)
		switch {
		case !res.OK():
			failed++
			fmt.Fprintf(cfg.OutputFile, "FAIL %s: %v\n", name, res.Error)
		case opts.headers:
			fmt.Fprintf(cfg.OutputFile, "ok   %s index %d\n", name, res.MoveIndex)
		default:
			fmt.Fprintf(cfg.OutputFile, "ok   %s index %d, %s, %s\n", name, res.MoveIndex, res.Turn, res.Status)
		}
		for _, dup := range res.Duplicates {
			fmt.Fprintf(dupOut, "dup  %s same position as %s\n", name, dup)
		}
	}

	if cfg.Verbosity > 0 {
		dups := 0
		if detector != nil {
			dups = detector.DuplicateCount()
		}
		fmt.Fprintf(cfg.OutputFile, "%d file(s), %d failed, %d duplicate(s).\n", len(results), failed, dups)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d save files failed verification", failed, len(results))
	}
	return nil
}
