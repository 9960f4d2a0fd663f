package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// castleSide maps a king destination to a castling side. The king may be sent
// to its landing square (g or c file) or onto the rook's square (h or a file).
func castleSide(to chess.Position) (chess.CastleSide, bool) {
	switch to.File {
	case chess.KingSide.KingFile(), chess.KingSide.RookFile():
		return chess.KingSide, true
	case chess.QueenSide.KingFile(), chess.QueenSide.RookFile():
		return chess.QueenSide, true
	}
	return chess.KingSide, false
}

// castleMove checks every castling precondition: the right is still held,
// the king stands on its home square, the own rook is on its corner, the
// squares between them are empty, and the king is not attacked on any square
// it starts on, passes through or lands on.
func castleMove(board *chess.Board, m chess.Move) (chess.Move, bool) {
	colour := m.Piece.Colour
	home := chess.KingHome(colour)
	if m.From != home || m.To.Rank != home.Rank {
		return m, false
	}

	side, ok := castleSide(m.To)
	if !ok || !board.CastlingRights().Has(colour, side) {
		return m, false
	}

	rank := home.Rank
	rookSq := chess.Sq(side.RookFile(), rank)
	if board.At(rookSq) != (chess.Piece{Colour: colour, Type: chess.Rook}) {
		return m, false
	}

	lo, hi := min(home.File, rookSq.File), max(home.File, rookSq.File)
	for file := lo + 1; file < hi; file++ {
		if !board.At(chess.Sq(file, rank)).IsEmpty() {
			return m, false
		}
	}

	// Place the king on each path square of a scratch grid and test it there.
	step := sign(side.KingFile() - home.File)
	scratch := board.Grid()
	scratch.Set(home, chess.NoPiece)
	for file := home.File; ; file += step {
		sq := chess.Sq(file, rank)
		saved := scratch.At(sq)
		scratch.Set(sq, m.Piece)
		attacked := isSquareAttacked(&scratch, sq, colour.Opposite())
		scratch.Set(sq, saved)
		if attacked {
			return m, false
		}
		if file == side.KingFile() {
			break
		}
	}

	m.Captured = chess.NoPiece
	m.Special = chess.Castle{Side: side}
	return m, true
}
