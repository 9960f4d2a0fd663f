package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pieceMove checks the geometry of a knight, bishop, rook, queen or adjacent
// king move and fills in the captured piece.
func pieceMove(board *chess.Board, m chess.Move) (chess.Move, bool) {
	g := board.Grid()
	target := g.At(m.To)
	if !target.IsEmpty() && target.Colour == m.Piece.Colour {
		return m, false
	}
	if !canPieceReach(&g, m.Piece, m.From, m.To) {
		return m, false
	}
	m.Captured = target
	return m, true
}

// kingMove handles both the adjacent step and castling. Any horizontal king
// move of two or more files is treated as a castling attempt.
func kingMove(board *chess.Board, m chess.Move) (chess.Move, bool) {
	if m.To.Rank == m.From.Rank && abs(m.To.File-m.From.File) >= 2 {
		return castleMove(board, m)
	}
	return pieceMove(board, m)
}

// geometry dispatches to the per-type movement rules. It does not consider
// whose turn it is or whether the mover's king ends up attacked.
func geometry(board *chess.Board, m chess.Move, promoteTo chess.PieceType) (chess.Move, bool) {
	switch m.Piece.Type {
	case chess.Pawn:
		return pawnMove(board, m, promoteTo)
	case chess.King:
		return kingMove(board, m)
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		return pieceMove(board, m)
	}
	return m, false
}
