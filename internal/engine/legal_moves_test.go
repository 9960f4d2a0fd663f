package engine

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// sampleFENs covers openings, pins, castling and promotion positions.
var sampleFENs = []string{
	InitialFEN,
	"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
	"8/P7/8/8/8/8/7P/k6K w - - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
}

func sans(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.SAN
	}
	return out
}

func TestLegalMoves_Counts(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  int
	}{
		{"initial", InitialFEN, nil, 20},
		{"after e4", InitialFEN, []string{"e4"}, 20},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", nil, 4},
		{"checkmated", InitialFEN, []string{"f3", "e5", "g4", "Qh4#"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			play(t, board, tt.moves...)
			if got := LegalMoves(board, MoveOptions{}); len(got) != tt.want {
				t.Errorf("len(LegalMoves()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestLegalMoves_NeverLeaveKingInCheck(t *testing.T) {
	for _, fen := range sampleFENs {
		t.Run(fen, func(t *testing.T) {
			board := mustBoard(t, fen)
			mover := board.ToMove()
			for _, m := range LegalMoves(board, MoveOptions{AllowAmbiguousCastleSquares: true}) {
				sim := board.Clone()
				sim.Push(m)
				if IsInCheck(sim, mover) {
					t.Errorf("move %s leaves the %v king in check", m, mover)
				}
			}
		})
	}
}

func TestLegalMoves_UndoRestoresPosition(t *testing.T) {
	for _, fen := range sampleFENs {
		t.Run(fen, func(t *testing.T) {
			board := mustBoard(t, fen)
			before := board.Grid()
			captured := [2]chess.Material{board.Captured(chess.Black), board.Captured(chess.White)}

			for _, m := range LegalMoves(board, MoveOptions{AllowAmbiguousCastleSquares: true}) {
				sim := board.Clone()
				sim.Push(m)
				sim.Back()
				if diff := cmp.Diff(before, sim.Grid()); diff != "" {
					t.Errorf("%s then Back() mismatch (-want +got):\n%s", m, diff)
				}
				got := [2]chess.Material{sim.Captured(chess.Black), sim.Captured(chess.White)}
				if got != captured {
					t.Errorf("%s then Back() Captured = %v, want %v", m, got, captured)
				}
			}
		})
	}
}

func TestLegalMoves_PoolSizeDoesNotChangeOrder(t *testing.T) {
	board := mustBoard(t, InitialFEN)
	play(t, board, "e4", "e5", "Nf3", "Nc6", "Bc4")

	serial := LegalMoves(board, MoveOptions{WithNotation: true, Pool: worker.NewPool(worker.WithWorkers(1))})
	parallel := LegalMoves(board, MoveOptions{WithNotation: true, Pool: worker.NewPool(worker.WithWorkers(8))})

	if diff := cmp.Diff(sans(serial), sans(parallel)); diff != "" {
		t.Errorf("LegalMoves() order mismatch (-serial +parallel):\n%s", diff)
	}
}

func TestMoves_WithNotation(t *testing.T) {
	board := mustBoard(t, InitialFEN)

	got := sans(Moves(board, sq("g1"), MoveOptions{WithNotation: true}))
	if diff := cmp.Diff([]string{"Nf3", "Nh3"}, got); diff != "" {
		t.Errorf("Moves(g1) mismatch (-want +got):\n%s", diff)
	}

	if got := Moves(board, sq("e4"), MoveOptions{}); got != nil {
		t.Errorf("Moves(empty square) = %v, want nil", got)
	}
}

func TestMoves_PromotionFanOut(t *testing.T) {
	board := mustBoard(t, "8/P7/8/8/8/8/7P/k6K w - - 0 1")

	moves := Moves(board, sq("a7"), MoveOptions{WithNotation: true})
	if diff := cmp.Diff([]string{"a8=Q+", "a8=R+", "a8=B", "a8=N"}, sans(moves)); diff != "" {
		t.Errorf("Moves(a7) mismatch (-want +got):\n%s", diff)
	}
	for _, m := range moves {
		if m.Mate {
			t.Errorf("%s flagged as mate", m.SAN)
		}
	}
}

func TestMoves_Castling(t *testing.T) {
	const fen = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	tests := []struct {
		name  string
		opts  MoveOptions
		want  int
		extra []string
	}{
		{"king and rook squares hidden", MoveOptions{}, 7, []string{"g1", "c1"}},
		{"rook squares listed", MoveOptions{AllowAmbiguousCastleSquares: true}, 9, []string{"g1", "h1", "c1", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, fen)
			moves := Moves(board, sq("e1"), tt.opts)
			if len(moves) != tt.want {
				t.Fatalf("len(Moves(e1)) = %d, want %d", len(moves), tt.want)
			}

			var castles []string
			for _, m := range moves {
				if m.IsCastle() {
					castles = append(castles, m.To.String())
				}
			}
			if diff := cmp.Diff(tt.extra, castles); diff != "" {
				t.Errorf("castle destinations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCastling_BothDestinations(t *testing.T) {
	for _, to := range []string{"g1", "h1"} {
		t.Run(to, func(t *testing.T) {
			board := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			m, err := Validate(board, chess.Move{From: sq("e1"), To: sq(to)}, Options{CheckTurn: true})
			if err != nil {
				t.Fatalf("Validate(e1%s) error = %v", to, err)
			}
			if got := FormatSAN(board, m); got != "O-O" {
				t.Errorf("FormatSAN() = %q, want O-O", got)
			}

			board.Push(m)
			if board.At(sq("g1")) != chess.W(chess.King) || board.At(sq("f1")) != chess.W(chess.Rook) {
				t.Errorf("after castling: %s", BoardToFEN(board))
			}
			if !board.At(sq("e1")).IsEmpty() || !board.At(sq("h1")).IsEmpty() {
				t.Errorf("after castling: %s", BoardToFEN(board))
			}
			if got := board.CastlingRights().String(); got != "kq" {
				t.Errorf("CastlingRights() = %q, want kq", got)
			}

			board.Back()
			if got := BoardToFEN(board); got != "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1" {
				t.Errorf("after Back(): %q", got)
			}
		})
	}
}

func TestCastling_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		to   string
	}{
		{"right lost", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", "g1"},
		{"path blocked", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", "c1"},
		{"in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1", "g1"},
		{"through attack", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", "g1"},
		{"onto attack", "r3k2r/8/8/8/8/8/2r5/R3K2R w KQkq - 0 1", "c1"},
		{"rook missing", "r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1", "g1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			if _, err := Validate(board, chess.Move{From: sq("e1"), To: sq(tt.to)}, Options{CheckTurn: true}); err == nil {
				t.Errorf("Validate(e1%s) succeeded, want error", tt.to)
			}
		})
	}
}

func TestCastling_RookAttackedIsAllowed(t *testing.T) {
	// Only the king's path matters; b1 and the rook may be attacked.
	board := mustBoard(t, "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	m, err := Validate(board, chess.Move{From: sq("e1"), To: sq("c1")}, Options{CheckTurn: true})
	if err != nil {
		t.Fatalf("Validate(O-O-O) error = %v", err)
	}
	if !m.IsCastle() {
		t.Errorf("move %s is not a castle", m)
	}
}

func TestPositions_IgnoresPins(t *testing.T) {
	board := mustBoard(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")

	got := Positions(board, sq("e2"))
	if !slices.Contains(got, sq("d3")) {
		t.Errorf("Positions(e2) = %v, want d3 included", got)
	}
	if moves := Moves(board, sq("e2"), MoveOptions{}); len(moves) != 0 {
		t.Errorf("Moves(e2) = %v, want none", moves)
	}
}

func TestHasLegalMoves(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		colour chess.Colour
		want   bool
	}{
		{"initial", InitialFEN, chess.White, true},
		{"stalemated", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", chess.Black, false},
		{"checkmated", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", chess.Black, false},
		{"other side", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", chess.White, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			if got := HasLegalMoves(board, tt.colour); got != tt.want {
				t.Errorf("HasLegalMoves(%v) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}
