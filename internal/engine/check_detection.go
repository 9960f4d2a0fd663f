package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked on the displayed position.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	g := board.Grid()
	return isKingAttacked(&g, colour)
}

// IsSquareAttacked returns true if any piece of colour by attacks sq.
func IsSquareAttacked(board *chess.Board, sq chess.Position, by chess.Colour) bool {
	g := board.Grid()
	return isSquareAttacked(&g, sq, by)
}

// isKingAttacked reports whether colour's king is attacked on g. A side without
// a king is never in check.
func isKingAttacked(g *chess.Grid, colour chess.Colour) bool {
	king, ok := g.Find(chess.Piece{Colour: colour, Type: chess.King})
	if !ok {
		return false
	}
	return isSquareAttacked(g, king, colour.Opposite())
}

// isSquareAttacked asks every piece of colour by whether its attack geometry
// reaches sq. Turn order and the attacker's own king safety are ignored.
func isSquareAttacked(g *chess.Grid, sq chess.Position, by chess.Colour) bool {
	for _, from := range g.Occupied(by) {
		if canPieceReach(g, g.At(from), from, sq) {
			return true
		}
	}
	return false
}
