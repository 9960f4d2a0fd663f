package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/parser"
)

// MustBoard creates a board from FEN, calling t.Fatal if the FEN is invalid.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
	}
	return board
}

// MustPlay resolves and pushes each SAN token on board in turn and returns
// the played moves. It calls t.Fatal on the first token that does not
// resolve to exactly one legal move.
func MustPlay(t *testing.T, board *chess.Board, sans ...string) []chess.Move {
	t.Helper()
	played := make([]chess.Move, 0, len(sans))
	for _, text := range sans {
		m, err := engine.ParseSAN(board, text)
		if err != nil {
			t.Fatalf("ParseSAN(%q) after %v: %v", text, SANs(played), err)
		}
		board.Push(m)
		played = append(played, m)
	}
	return played
}

// MustGame parses the first game of a PGN string and replays it.
// It calls t.Fatal if parsing or replay fails.
func MustGame(t *testing.T, pgn string, cfg *config.Config) *game.Game {
	t.Helper()
	rec, err := parser.NewParser(strings.NewReader(pgn), cfg).ParseGame()
	if err != nil {
		t.Fatalf("failed to parse test game: %v\n%s", err, pgn)
	}
	if rec == nil {
		t.Fatalf("no game found in PGN:\n%s", pgn)
	}
	g, err := game.FromRecord(rec, cfg)
	if err != nil {
		t.Fatalf("failed to replay test game: %v", err)
	}
	return g
}

// SANs returns the SAN text of each move.
func SANs(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.SAN
	}
	return out
}
