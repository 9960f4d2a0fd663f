package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

// mustBoard creates a board from FEN or fails the test.
func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error = %v", fen, err)
	}
	return board
}

// play resolves and pushes each SAN token, failing the test on the first error.
func play(t *testing.T, board *chess.Board, sans ...string) {
	t.Helper()
	for _, text := range sans {
		m, err := ParseSAN(board, text)
		if err != nil {
			t.Fatalf("ParseSAN(%q) error = %v", text, err)
		}
		board.Push(m)
	}
}

func sq(s string) chess.Position {
	return chess.MustPosition(s)
}

func TestParseFEN_Initial(t *testing.T) {
	s, err := ParseFEN(InitialFEN)
	if err != nil {
		t.Fatalf("ParseFEN() error = %v", err)
	}

	if diff := cmp.Diff(chess.StandardGrid(), s.Grid); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
	if s.ToMove != chess.White {
		t.Errorf("ToMove = %v, want White", s.ToMove)
	}
	if s.Castling != chess.AllCastling {
		t.Errorf("Castling = %v, want KQkq", s.Castling)
	}
	if s.EnPassant != chess.NoPosition {
		t.Errorf("EnPassant = %v, want none", s.EnPassant)
	}
	if s.HalfMove != 0 || s.FullMove != 1 {
		t.Errorf("clocks = %d %d, want 0 1", s.HalfMove, s.FullMove)
	}
	if s.Captured[chess.White].Total() != 0 || s.Captured[chess.Black].Total() != 0 {
		t.Errorf("Captured = %v, want none", s.Captured)
	}
}

func TestParseFEN_CapturedMaterial(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN() error = %v", err)
	}

	want := chess.Material{chess.Pawn: 8, chess.Knight: 2, chess.Bishop: 2, chess.Rook: 2}
	if diff := cmp.Diff(want, s.Captured[chess.White]); diff != "" {
		t.Errorf("Captured[White] mismatch (-want +got):\n%s", diff)
	}
	want[chess.Queen] = 1
	if diff := cmp.Diff(want, s.Captured[chess.Black]); diff != "" {
		t.Errorf("Captured[Black] mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFEN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1"},
		{"long rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNRR w KQkq - 0 1"},
		{"nine empty", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1"},
		{"repeated castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1"},
		{"en passant rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1"},
		{"en passant square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z3 0 1"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"zero fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"word clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - zero 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			if !errors.Is(err, chesserrors.ErrInvalidFEN) {
				t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"8/8/8/8/1B1bPk2/8/8/4K3 b - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 42 80",
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			if got := BoardToFEN(mustBoard(t, fen)); got != fen {
				t.Errorf("BoardToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestFEN_RoundTripAfterMoves(t *testing.T) {
	board := mustBoard(t, InitialFEN)
	games := [][]string{
		{"e4"},
		{"e5", "Nf3", "Nc6", "Bb5", "a6"},
		{"Bxc6", "dxc6", "O-O", "f6"},
	}

	for _, moves := range games {
		play(t, board, moves...)
		fen := BoardToFEN(board)
		if got := BoardToFEN(mustBoard(t, fen)); got != fen {
			t.Errorf("FEN(parse(%q)) = %q", fen, got)
		}
	}
}

func TestBoardToFEN_DerivedFields(t *testing.T) {
	board := mustBoard(t, InitialFEN)

	play(t, board, "e4")
	if got, want := BoardToFEN(board), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"; got != want {
		t.Errorf("after e4: %q, want %q", got, want)
	}

	play(t, board, "Nf6", "Ke2")
	if got, want := BoardToFEN(board), "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPPKPPP/RNBQ1BNR b kq - 2 2"; got != want {
		t.Errorf("after Ke2: %q, want %q", got, want)
	}

	board.SeekStart()
	if got := BoardToFEN(board); got != InitialFEN {
		t.Errorf("after SeekStart: %q, want %q", got, InitialFEN)
	}
}

func TestBoardToFEN_RookCapturedOnCorner(t *testing.T) {
	board := mustBoard(t, "4k3/8/8/8/8/8/6b1/4K2R b K - 0 1")

	play(t, board, "Bxh1")
	if got, want := BoardToFEN(board), "4k3/8/8/8/8/8/8/4K2b w - - 0 2"; got != want {
		t.Errorf("after Bxh1: %q, want %q", got, want)
	}
	if got := board.CastlingRights(); got != 0 {
		t.Errorf("CastlingRights() = %v, want none", got)
	}
}
