package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// MoveOptions controls move generation.
type MoveOptions struct {
	// AllowAmbiguousCastleSquares also lists castling with the king sent onto
	// the rook's square, next to the usual g- or c-file destination.
	AllowAmbiguousCastleSquares bool

	// WithNotation fills in each move's SAN text.
	WithNotation bool

	// Pool bounds the fan-out of LegalMoves. Nil uses a default pool.
	Pool *worker.Pool
}

// Positions returns the squares the piece on sq could move to by geometry
// alone: turn order and king safety are not considered. Castling squares are
// included when the castling preconditions hold.
func Positions(board *chess.Board, sq chess.Position) []chess.Position {
	piece := board.At(sq)
	if piece.IsEmpty() {
		return nil
	}

	var out []chess.Position
	try := func(to chess.Position) {
		if !to.Valid() {
			return
		}
		if _, ok := geometry(board, chess.Move{From: sq, To: to, Piece: piece}, chess.Empty); ok {
			out = append(out, to)
		}
	}

	switch piece.Type {
	case chess.Pawn:
		dir := piece.Colour.Direction()
		for _, df := range []int{-1, 0, 1} {
			try(sq.Offset(df, dir))
		}
		try(sq.Offset(0, 2*dir))

	case chess.Knight:
		for _, o := range knightOffsets {
			try(sq.Offset(o[0], o[1]))
		}

	case chess.King:
		for _, o := range kingOffsets {
			try(sq.Offset(o[0], o[1]))
		}
		if sq == chess.KingHome(piece.Colour) {
			for _, side := range []chess.CastleSide{chess.KingSide, chess.QueenSide} {
				try(chess.Sq(side.KingFile(), sq.Rank))
				try(chess.Sq(side.RookFile(), sq.Rank))
			}
		}

	case chess.Bishop, chess.Rook, chess.Queen:
		var dirs [][2]int
		if piece.Type != chess.Rook {
			dirs = append(dirs, diagonalDirs...)
		}
		if piece.Type != chess.Bishop {
			dirs = append(dirs, straightDirs...)
		}
		for _, d := range dirs {
			for to := sq.Offset(d[0], d[1]); to.Valid(); to = to.Offset(d[0], d[1]) {
				try(to)
				if !board.At(to).IsEmpty() {
					break // Blocked
				}
			}
		}
	}

	return out
}

// isRookSquareCastle reports whether m castles by sending the king onto the rook.
func isRookSquareCastle(piece chess.Piece, m chess.Move) bool {
	if piece.Type != chess.King || m.To.Rank != m.From.Rank || abs(m.To.File-m.From.File) < 2 {
		return false
	}
	return m.To.File == chess.KingSide.RookFile() || m.To.File == chess.QueenSide.RookFile()
}

// Moves returns every legal move of the piece on sq, whichever side is to
// move. A pawn reaching the last rank yields one move per promotion piece.
func Moves(board *chess.Board, sq chess.Position, opts MoveOptions) []chess.Move {
	piece := board.At(sq)
	if piece.IsEmpty() {
		return nil
	}

	var out []chess.Move
	for _, to := range Positions(board, sq) {
		m := chess.Move{From: sq, To: to}
		if !opts.AllowAmbiguousCastleSquares && isRookSquareCastle(piece, m) {
			continue
		}
		if piece.Type == chess.Pawn && to.Rank == promotionRank(piece.Colour) {
			for _, t := range chess.PromotionTypes {
				m.Special = chess.Promotion{To: t}
				if v, err := Validate(board, m, Options{}); err == nil {
					out = append(out, v)
				}
			}
			continue
		}
		if v, err := Validate(board, m, Options{}); err == nil {
			out = append(out, v)
		}
	}

	if opts.WithNotation {
		for i := range out {
			out[i].SAN = FormatSAN(board, out[i])
		}
	}
	return out
}

// LegalMoves returns every legal move for the side to move, ordered by origin
// square. Each origin is searched as a separate task on the pool; the tasks
// share the board read-only and simulate on their own clones.
func LegalMoves(board *chess.Board, opts MoveOptions) []chess.Move {
	pool := opts.Pool
	if pool == nil {
		pool = worker.NewPool()
	}

	origins := board.Occupied(board.ToMove())
	perOrigin := worker.Map(pool, origins, func(sq chess.Position) []chess.Move {
		return Moves(board, sq, opts)
	})

	var out []chess.Move
	for _, moves := range perOrigin {
		out = append(out, moves...)
	}
	return out
}

// HasLegalMoves returns true if the given colour has at least one legal move.
// It stops at the first one found and skips check and mate flags.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, sq := range board.Occupied(colour) {
		for _, to := range Positions(board, sq) {
			if _, err := validate(board, chess.Move{From: sq, To: to}, Options{}, false); err == nil {
				return true
			}
		}
	}
	return false
}
