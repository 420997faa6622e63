package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// testConfig returns a plain-text config writing into out with saves in dir.
func testConfig(dir string, out io.Writer) *config.Config {
	return config.NewConfigBuilder().
		WithSaveDir(dir).
		WithOutput(out).
		WithLogFile(io.Discard).
		WithBoardStyle(config.ASCII).
		WithColor(false).
		WithWorkers(2).
		Build()
}

var defaults = options{promote: "q"}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in       string
		from, to string
		kind     chess.Kind
		wantErr  bool
	}{
		{in: "e2e4", from: "e2", to: "e4"},
		{in: "e2-e4", from: "e2", to: "e4"},
		{in: " g1f3 ", from: "g1", to: "f3"},
		{in: "e7e8q", from: "e7", to: "e8", kind: chess.Queen},
		{in: "a2a1N", from: "a2", to: "a1", kind: chess.Knight},
		{in: "e7e8k", wantErr: true},
		{in: "e7e8x", wantErr: true},
		{in: "e2", wantErr: true},
		{in: "i2i4", wantErr: true},
		{in: "e2e9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			from, to, kind, err := parseMove(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMove(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			testutil.AssertEqual(t, from.String(), tt.from)
			testutil.AssertEqual(t, to.String(), tt.to)
			testutil.AssertEqual(t, kind, tt.kind)
		})
	}
}

func TestParsePromotion(t *testing.T) {
	for in, want := range map[string]chess.Kind{"q": chess.Queen, "R": chess.Rook, "b": chess.Bishop, "n": chess.Knight} {
		got, err := parsePromotion(in)
		if err != nil || got != want {
			t.Errorf("parsePromotion(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	_, err := parsePromotion("queen")
	testutil.AssertError(t, err)
}

func TestResolvePath(t *testing.T) {
	cfg := testConfig("saves", io.Discard)
	tests := []struct {
		in, want string
	}{
		{"game", filepath.Join("saves", "game.chess")},
		{"game.chess", filepath.Join("saves", "game.chess")},
		{filepath.Join("other", "game.chess"), filepath.Join("other", "game.chess")},
		{"/abs/game.chess", "/abs/game.chess"},
	}
	for _, tt := range tests {
		if got := resolvePath(cfg, tt.in); got != tt.want {
			t.Errorf("resolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyMovePromotion(t *testing.T) {
	tests := []struct {
		move    string
		promote string
		want    chess.Kind
	}{
		{"a7a8", "q", chess.Queen},
		{"a7a8n", "q", chess.Knight},
		{"a7a8", "r", chess.Rook},
	}

	for _, tt := range tests {
		t.Run(tt.move+"/"+tt.promote, func(t *testing.T) {
			g := engine.NewEmptyGame()
			testutil.PlaceAll(t, g, "Pa7", "Ke1", "kh6")
			testutil.AssertNoError(t, applyMove(g, tt.move, tt.promote))

			testutil.AssertEqual(t, g.At(chess.MustSquare("a8")).Kind(), tt.want)
			_, pending := g.PendingPromotion()
			testutil.AssertFalse(t, pending, "promotion resolved")
			testutil.AssertEqual(t, g.Turn(), chess.Black)
		})
	}
}

func TestApplyMoveRejects(t *testing.T) {
	g := engine.NewGame()

	err := applyMove(g, "e2e5", "q")
	if err == nil || !strings.Contains(err.Error(), "illegal move e2e5") {
		t.Errorf("applyMove(e2e5) error = %v, want illegal move", err)
	}
	testutil.AssertErrorIs(t, applyMove(g, "e4e5", "q"), errors.ErrNilPiece)
	testutil.AssertError(t, applyMove(g, "e2e4", "x"), "bad promotion flag")
	testutil.AssertEqual(t, g.Index(), 0, "nothing played")
}

func TestRunNewMoveShow(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cfg := testConfig(dir, &out)
	opts := defaults
	opts.name = "first"

	testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))
	path := filepath.Join(dir, "first.chess")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("new did not write %s: %v", path, err)
	}

	testutil.AssertNoError(t, run(cfg, defaults, []string{"move", "first", "e2", "e4"}, nil))
	testutil.AssertNoError(t, run(cfg, defaults, []string{"move", "first", "e7e5"}, nil))

	g, err := engine.Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.Index(), 2)
	testutil.AssertNotNil(t, g.At(chess.MustSquare("e5")))

	out.Reset()
	testutil.AssertNoError(t, run(cfg, defaults, []string{"show", "first"}, nil))
	if !strings.Contains(out.String(), "4  .  .  .  .  P  .  .  . ") {
		t.Errorf("show output lacks the advanced pawn:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "White to move, move 2\n") {
		t.Errorf("show output = %q", out.String())
	}
}

func TestRunShowSeveral(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cfg := testConfig(dir, &out)
	for _, name := range []string{"a", "b"} {
		opts := defaults
		opts.name = name
		testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))
	}
	testutil.AssertNoError(t, run(cfg, defaults, []string{"move", "b", "e2e4"}, nil))

	out.Reset()
	testutil.AssertNoError(t, run(cfg, defaults, []string{"show", "a", "b"}, nil))
	if got := strings.Count(out.String(), "to move, move"); got != 2 {
		t.Errorf("show printed %d status lines, want 2:\n%s", got, out.String())
	}

	out.Reset()
	cfg.Output.Format = config.JSON
	testutil.AssertNoError(t, run(cfg, defaults, []string{"show", "a", "b"}, nil))
	var doc output.JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(out.Bytes(), &doc))
	testutil.AssertEqual(t, len(doc.Games), 2)
	testutil.AssertEqual(t, doc.Games[0].Index, 0)
	testutil.AssertEqual(t, doc.Games[1].Index, 1)

	testutil.AssertError(t, run(cfg, defaults, []string{"show", "a", "missing"}, nil))
}

func TestRunMoveNoSave(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, io.Discard)
	opts := defaults
	opts.name = "keep"
	testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))

	opts.noSave = true
	testutil.AssertNoError(t, run(cfg, opts, []string{"move", "keep", "d2d4"}, nil))

	g, err := engine.Load(filepath.Join(dir, "keep.chess"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.Index(), 0, "file unchanged")
}

func TestRunMoves(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cfg := testConfig(dir, &out)
	opts := defaults
	opts.name = "m"
	testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))

	out.Reset()
	testutil.AssertNoError(t, run(cfg, defaults, []string{"moves", "m", "g1"}, nil))
	if !strings.HasSuffix(out.String(), "g1: f3 h3\n") {
		t.Errorf("moves output = %q", out.String())
	}
	if !strings.Contains(out.String(), "3  .  .  .  .  .  *  .  * ") {
		t.Errorf("moves output lacks marked squares:\n%s", out.String())
	}

	out.Reset()
	cfg.Output.Format = config.JSON
	testutil.AssertNoError(t, run(cfg, defaults, []string{"moves", "m", "b1"}, nil))
	var got map[string][]string
	testutil.AssertNoError(t, json.Unmarshal(out.Bytes(), &got))
	testutil.AssertEqual(t, got, map[string][]string{"b1": {"a3", "c3"}})

	testutil.AssertError(t, run(cfg, defaults, []string{"moves", "m", "e4"}, nil), "empty square")
	testutil.AssertError(t, run(cfg, defaults, []string{"moves", "m", "z9"}, nil), "bad square")
}

func TestRunPlay(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cfg := testConfig(dir, &out)
	opts := defaults
	opts.name = "mate"

	stdin := strings.NewReader("# fool's mate\nf2f3\ne7e5\n\ng2g4\nd8h4\na2a3\n")
	testutil.AssertNoError(t, run(cfg, opts, []string{"play"}, stdin))
	if !strings.HasSuffix(out.String(), "checkmate, Black wins\n") {
		t.Errorf("play output = %q", out.String())
	}

	g, err := engine.Load(filepath.Join(dir, "mate.chess"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.Status(), engine.Checkmate)
	testutil.AssertEqual(t, g.Index(), 4, "moves after mate ignored")
}

func TestRunPlayContinuesSavedGame(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, io.Discard)
	opts := defaults
	opts.name = "cont"
	testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))

	testutil.AssertNoError(t, run(cfg, defaults, []string{"play", "cont"}, strings.NewReader("e2e4\ne7e5\n")))

	err := run(cfg, defaults, []string{"play", "cont"}, strings.NewReader("g1f3\ng1f3\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("play error = %v, want failure on line 2", err)
	}

	g, err := engine.Load(filepath.Join(dir, "cont.chess"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, g.Index(), 2, "failed session not saved")
}

func TestRunVerify(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cfg := testConfig(dir, &out)

	for _, name := range []string{"a", "b"} {
		opts := defaults
		opts.name = name
		testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))
	}

	out.Reset()
	cfg.Workers = 1
	testutil.AssertNoError(t, run(cfg, defaults, []string{"verify"}, nil))
	want := "ok   a.chess index 0, White, ongoing\n" +
		"ok   b.chess index 0, White, ongoing\n" +
		"dup  b.chess same position as a.chess\n" +
		"2 file(s), 0 failed, 1 duplicate(s).\n"
	testutil.AssertEqual(t, out.String(), want)

	if err := os.WriteFile(filepath.Join(dir, "c.chess"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	opts := defaults
	opts.headers = true
	err := run(cfg, opts, []string{"verify", dir}, nil)
	testutil.AssertError(t, err)
	if !strings.Contains(out.String(), "FAIL c.chess") || !strings.Contains(out.String(), "ok   a.chess index 0\n") {
		t.Errorf("verify output = %q", out.String())
	}
}

func TestRunVerifyFailFast(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cfg := testConfig(dir, &out)
	cfg.Workers = 1

	if err := os.WriteFile(filepath.Join(dir, "a.chess"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	opts := defaults
	opts.name = "b"
	testutil.AssertNoError(t, run(cfg, opts, []string{"new"}, nil))

	out.Reset()
	opts = defaults
	opts.failFast = true
	err := run(cfg, opts, []string{"verify"}, nil)
	testutil.AssertError(t, err)
	if !strings.HasPrefix(out.String(), "FAIL a.chess") {
		t.Errorf("verify output = %q, want the failure first", out.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	cfg := testConfig(t.TempDir(), io.Discard)
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"fly"}},
		{"show without file", []string{"show"}},
		{"new with extra", []string{"new", "x"}},
		{"missing save", []string{"show", "nothing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertError(t, run(cfg, defaults, tt.args, nil))
		})
	}
}
