package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-rules-go/internal/config"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

// parseTestGame is a helper that parses a PGN string and returns the first record.
func parseTestGame(t *testing.T, pgn string) *Record {
	t.Helper()
	p := NewParser(strings.NewReader(pgn), config.NewConfig())
	rec, err := p.ParseGame()
	if err != nil {
		t.Fatalf("ParseGame error: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected game, got nil")
	}
	return rec
}

func TestParseSimpleGame(t *testing.T) {
	pgn := `[Event "Test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0
`

	rec := parseTestGame(t, pgn)

	if got := rec.Tags["Event"]; got != "Test" {
		t.Errorf("Event = %q, want %q", got, "Test")
	}
	if got := rec.Tags["White"]; got != "Player1" {
		t.Errorf("White = %q, want %q", got, "Player1")
	}
	if got := len(rec.Tags); got != 7 {
		t.Errorf("len(Tags) = %d, want 7", got)
	}

	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}
	if diff := cmp.Diff(want, rec.Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}
	if rec.Result != "1-0" {
		t.Errorf("Result = %q, want %q", rec.Result, "1-0")
	}
	if rec.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", rec.StartLine)
	}
}

func TestParseFoolsMate(t *testing.T) {
	rec := parseTestGame(t, `1. f3 e5 2. g4 Qh4# 0-1`)

	want := []string{"f3", "e5", "g4", "Qh4#"}
	if diff := cmp.Diff(want, rec.Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}
	if rec.Result != "0-1" {
		t.Errorf("Result = %q, want %q", rec.Result, "0-1")
	}
}

func TestParseDiscardsCommentsNAGsAndVariations(t *testing.T) {
	pgn := `1. e4 {best by test} e5! 2. Nf3 $1 (2. f4 exf4 (2... d5) 3. Nf3) Nc6 ; line comment
3. Bb5 {a
multi-line comment} a6?! 1-0`

	rec := parseTestGame(t, pgn)

	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}
	if diff := cmp.Diff(want, rec.Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}
	if rec.Result != "1-0" {
		t.Errorf("Result = %q, want %q", rec.Result, "1-0")
	}
}

func TestParseCastling(t *testing.T) {
	rec := parseTestGame(t, `1. e4 e5 2. Nf3 Nf6 3. Bc4 Bc5 4. O-O 0-0 *`)

	want := []string{"e4", "e5", "Nf3", "Nf6", "Bc4", "Bc5", "O-O", "O-O"}
	if diff := cmp.Diff(want, rec.Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}
	if rec.Result != "*" {
		t.Errorf("Result = %q, want %q", rec.Result, "*")
	}
}

func TestParseMultipleGames(t *testing.T) {
	pgn := `[Event "One"]

1. e4 e5 1-0

[Event "Two"]

1. d4 d5 1/2-1/2

1. c4 *
`
	p := NewParser(strings.NewReader(pgn), config.NewConfig())
	games, err := p.ParseAllGames()
	if err != nil {
		t.Fatalf("ParseAllGames() error = %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("len(games) = %d, want 3", len(games))
	}

	wantEvents := []string{"One", "Two", ""}
	wantResults := []string{"1-0", "1/2-1/2", "*"}
	for i, rec := range games {
		if got := rec.Tags["Event"]; got != wantEvents[i] {
			t.Errorf("game %d Event = %q, want %q", i, got, wantEvents[i])
		}
		if rec.Result != wantResults[i] {
			t.Errorf("game %d Result = %q, want %q", i, rec.Result, wantResults[i])
		}
	}
	if games[1].StartLine != 5 {
		t.Errorf("games[1].StartLine = %d, want 5", games[1].StartLine)
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := NewParser(strings.NewReader("  \n\n"), nil)
	rec, err := p.ParseGame()
	if err != nil || rec != nil {
		t.Errorf("ParseGame() = %v, %v, want nil, nil", rec, err)
	}
}

func TestParseGameWithoutResult(t *testing.T) {
	rec := parseTestGame(t, "1. e4 e5")
	if rec.Result != "" {
		t.Errorf("Result = %q, want empty", rec.Result)
	}
	if len(rec.Moves) != 2 {
		t.Errorf("len(Moves) = %d, want 2", len(rec.Moves))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgn     string
		wantSAN bool
	}{
		{name: "unknown move text", pgn: "1. e4 Zz5 1-0"},
		{name: "bad square", pgn: "1. e9 e5 1-0", wantSAN: true},
		{name: "unclosed variation", pgn: "1. e4 (1. d4 d5"},
		{name: "tag without string", pgn: "[Event Test]\n1. e4 *"},
		{name: "unmatched close paren", pgn: "1. e4 ) e5 *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(strings.NewReader(tt.pgn), config.NewConfig())
			_, err := p.ParseGame()
			if !errors.Is(err, chesserrors.ErrParseFailure) {
				t.Fatalf("ParseGame() error = %v, want ErrParseFailure", err)
			}
			var perr *chesserrors.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseGame() error = %T, want *ParseError", err)
			}
			if perr.Line != 1 {
				t.Errorf("Line = %d, want 1", perr.Line)
			}
			if got := errors.Is(err, chesserrors.ErrInvalidSAN); got != tt.wantSAN {
				t.Errorf("errors.Is(err, ErrInvalidSAN) = %v, want %v", got, tt.wantSAN)
			}
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	p := NewParser(strings.NewReader("1. e4 Zz5 1-0"), nil)
	_, err := p.ParseGame()

	var perr *chesserrors.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseGame() error = %v, want *ParseError", err)
	}
	if perr.Column != 7 {
		t.Errorf("Column = %d, want 7", perr.Column)
	}
}

func TestParseAllGamesSkipsBrokenGame(t *testing.T) {
	pgn := `1. e4 Zz5 1-0

1. d4 d5 *
`
	var logBuf bytes.Buffer
	cfg := config.NewConfigBuilder().WithLogger(zerolog.New(&logBuf)).Build()

	games, err := NewParser(strings.NewReader(pgn), cfg).ParseAllGames()
	if err != nil {
		t.Fatalf("ParseAllGames() error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("len(games) = %d, want 1", len(games))
	}
	if diff := cmp.Diff([]string{"d4", "d5"}, games[0].Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logBuf.String(), "skipping malformed game") {
		t.Errorf("log = %q, want a skipped game warning", logBuf.String())
	}
}

func TestParseAllGamesStopOnError(t *testing.T) {
	pgn := `1. d4 d5 *

1. e4 Zz5 1-0

1. c4 *
`
	cfg := config.NewConfigBuilder().WithStopOnError(true).Build()

	games, err := NewParser(strings.NewReader(pgn), cfg).ParseAllGames()
	if !errors.Is(err, chesserrors.ErrParseFailure) {
		t.Fatalf("ParseAllGames() error = %v, want ErrParseFailure", err)
	}
	if len(games) != 1 {
		t.Errorf("len(games) = %d, want 1", len(games))
	}
}

func TestParseLatin1Tags(t *testing.T) {
	pgn := "[White \"M\xfcller\"]\n\n1. e4 *\n"

	cfg := config.NewConfigBuilder().WithLatin1Input(true).Build()
	rec, err := NewParser(strings.NewReader(pgn), cfg).ParseGame()
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}
	if got := rec.Tags["White"]; got != "Müller" {
		t.Errorf("White = %q, want %q", got, "Müller")
	}
}
