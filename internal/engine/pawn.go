package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnStartRank returns the rank from which a pawn of colour c may advance two squares.
func pawnStartRank(c chess.Colour) int {
	if c == chess.White {
		return 1
	}
	return chess.LastIndex - 1
}

// promotionRank returns the rank on which a pawn of colour c promotes.
func promotionRank(c chess.Colour) int {
	return c.Opposite().HomeRank()
}

// pawnMove checks pushes, double pushes, captures and en passant captures,
// and tags promotions. promoteTo is carried into the Promotion strategy and
// is Empty when the choice has not been made yet.
func pawnMove(board *chess.Board, m chess.Move, promoteTo chess.PieceType) (chess.Move, bool) {
	colour := m.Piece.Colour
	dir := colour.Direction()
	fileDiff := m.To.File - m.From.File
	rankDiff := m.To.Rank - m.From.Rank
	target := board.At(m.To)

	switch {
	case fileDiff == 0 && rankDiff == dir:
		if !target.IsEmpty() {
			return m, false
		}

	case fileDiff == 0 && rankDiff == 2*dir:
		if m.From.Rank != pawnStartRank(colour) || !target.IsEmpty() {
			return m, false
		}
		if !board.At(m.From.Offset(0, dir)).IsEmpty() {
			return m, false
		}

	case abs(fileDiff) == 1 && rankDiff == dir:
		if !target.IsEmpty() {
			if target.Colour == colour {
				return m, false
			}
			m.Captured = target
			break
		}
		// En passant needs the derived target square and an enemy pawn beside the origin.
		if m.To != board.EnPassantTarget() {
			return m, false
		}
		victim := board.At(chess.Sq(m.To.File, m.From.Rank))
		if victim != (chess.Piece{Colour: colour.Opposite(), Type: chess.Pawn}) {
			return m, false
		}
		m.Captured = victim
		m.Special = chess.EnPassant{}
		return m, true

	default:
		return m, false
	}

	if m.To.Rank == promotionRank(colour) {
		m.Special = chess.Promotion{To: promoteTo}
	} else if promoteTo != chess.Empty {
		return m, false
	}
	return m, true
}
