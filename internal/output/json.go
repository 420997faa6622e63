package output

import (
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// JSONGame represents a game position in JSON format.
type JSONGame struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Turn      string              `json:"turn"` // "white" or "black"
	Index     int                 `json:"index"`
	FiftyMove int                 `json:"fiftyMove"`
	Status    string              `json:"status"`
	InCheck   bool                `json:"inCheck"`
	Checkers  []string            `json:"checkers,omitempty"`
	Promotion string              `json:"promotion,omitempty"` // square of a pawn awaiting promotion
	Castling  []string            `json:"castling,omitempty"`  // "kingside", "queenside" for the side to move
	Repeats   int                 `json:"repetitions"`
	DeadDraw  bool                `json:"insufficientMaterial,omitempty"`
	Pieces    []JSONPiece         `json:"pieces"`
	Moves     map[string][]string `json:"moves,omitempty"`
	MoveTotal int                 `json:"moveCount,omitempty"`
}

// JSONPiece represents one piece on the board.
type JSONPiece struct {
	Square string `json:"square"`
	Kind   string `json:"kind"`
	Color  string `json:"color"`
	Moved  bool   `json:"moved,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game to its JSON form. With withMoves set, the legal
// moves of the side to move are included, keyed by origin square.
func GameToJSON(g *engine.Game, withMoves bool) *JSONGame {
	jg := &JSONGame{
		ID:        g.ID().String(),
		Name:      g.Name(),
		Turn:      strings.ToLower(g.Turn().String()),
		Index:     g.Index(),
		FiftyMove: g.FiftyMoveCounter(),
		Status:    g.Status().String(),
		InCheck:   g.InCheck(),
		Repeats:   g.RepetitionCount(),
		DeadDraw:  g.InsufficientMaterial(),
	}

	for _, c := range g.CheckList() {
		jg.Checkers = append(jg.Checkers, c.Square().String())
	}
	if sq, ok := g.PendingPromotion(); ok {
		jg.Promotion = sq.String()
	}
	if g.CanCastle(chess.KingsideRookFile) {
		jg.Castling = append(jg.Castling, "kingside")
	}
	if g.CanCastle(chess.QueensideRookFile) {
		jg.Castling = append(jg.Castling, "queenside")
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, p := range g.Board().Pieces(colour) {
			jg.Pieces = append(jg.Pieces, JSONPiece{
				Square: p.Square().String(),
				Kind:   strings.ToLower(p.Kind().String()),
				Color:  strings.ToLower(colour.String()),
				Moved:  p.HasMoved(),
			})
		}
	}

	if withMoves {
		jg.Moves = legalMoveMap(g)
		jg.MoveTotal = MoveCount(jg.Moves)
	}
	return jg
}

// legalMoveMap lists destinations per origin square, omitting pieces that
// cannot move.
func legalMoveMap(g *engine.Game) map[string][]string {
	moves := make(map[string][]string)
	for _, p := range g.Board().Pieces(g.Turn()) {
		targets := g.LegalMoves(p)
		if len(targets) == 0 {
			continue
		}
		names := make([]string, len(targets))
		for i, sq := range targets {
			names[i] = sq.String()
		}
		slices.Sort(names)
		moves[p.Square().String()] = names
	}
	return moves
}

// MoveCount sums the destinations in a legal move map.
func MoveCount(moves map[string][]string) int {
	n := 0
	for _, origin := range maps.Keys(moves) {
		n += len(moves[origin])
	}
	return n
}

// OutputGameJSON writes a single game in indented JSON.
func OutputGameJSON(g *engine.Game, withMoves bool, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(g, withMoves))
}

// OutputGamesJSON writes several games as a JSON object holding an array.
func OutputGamesJSON(games []*engine.Game, w io.Writer) error {
	out := &JSONOutput{Games: make([]*JSONGame, len(games))}
	for i, g := range games {
		out.Games[i] = GameToJSON(g, false)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
