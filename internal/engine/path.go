package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Direction sets used by the sliding and stepping pieces.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// canPieceReach reports whether piece, standing on from, attacks to on grid g,
// ignoring what stands on to. Pawns reach diagonally forward only and kings
// reach adjacent squares only.
func canPieceReach(g *chess.Grid, piece chess.Piece, from, to chess.Position) bool {
	fileDiff := abs(to.File - from.File)
	rankDiff := abs(to.Rank - from.Rank)
	if fileDiff == 0 && rankDiff == 0 {
		return false
	}

	switch piece.Type {
	case chess.Pawn:
		return fileDiff == 1 && to.Rank-from.Rank == piece.Colour.Direction()

	case chess.Knight:
		return (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		if fileDiff != rankDiff {
			return false
		}
		return isPathClear(g, from, to)

	case chess.Rook:
		if fileDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(g, from, to)

	case chess.Queen:
		if fileDiff == rankDiff || fileDiff == 0 || rankDiff == 0 {
			return isPathClear(g, from, to)
		}
		return false

	case chess.King:
		return fileDiff <= 1 && rankDiff <= 1
	}

	return false
}

// isPathClear checks that every square strictly between from and to is empty.
// The squares must share a rank, a file or a diagonal.
func isPathClear(g *chess.Grid, from, to chess.Position) bool {
	fileDir := sign(to.File - from.File)
	rankDir := sign(to.Rank - from.Rank)

	sq := from.Offset(fileDir, rankDir)
	for sq != to {
		if !g.At(sq).IsEmpty() {
			return false
		}
		sq = sq.Offset(fileDir, rankDir)
	}

	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns -1, 0 or 1.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
