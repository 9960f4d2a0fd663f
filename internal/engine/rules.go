package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// DrawRule is an optional end-of-game rule evaluated after every move.
type DrawRule interface {
	// IsDraw reports whether the displayed position is drawn under this rule.
	IsDraw(board *chess.Board) bool

	// Kind is the end game kind reported when IsDraw is true.
	Kind() chess.EndGameKind
}

// InsufficientMaterialRule draws positions in which neither side can force mate.
type InsufficientMaterialRule struct{}

func (InsufficientMaterialRule) IsDraw(board *chess.Board) bool {
	return HasInsufficientMaterial(board)
}

func (InsufficientMaterialRule) Kind() chess.EndGameKind {
	return chess.InsufficientMaterial
}

// RepetitionRule draws on the third occurrence of a position. It reports
// nothing unless Detect is set.
type RepetitionRule struct {
	Detect bool
}

func (r RepetitionRule) IsDraw(board *chess.Board) bool {
	if !r.Detect {
		return false
	}
	return hashing.CountPositions(board).Count(hashing.GenerateZobristHash(board)) >= 3
}

func (RepetitionRule) Kind() chess.EndGameKind {
	return chess.Repetition
}

// FiftyMoveRule draws after fifty moves by each side without a pawn move or
// capture. It reports nothing unless Detect is set.
type FiftyMoveRule struct {
	Detect bool
}

func (r FiftyMoveRule) IsDraw(board *chess.Board) bool {
	return r.Detect && board.HalfMoveClock() >= 100
}

func (FiftyMoveRule) Kind() chess.EndGameKind {
	return chess.FiftyMoveRule
}

// DefaultRules returns the rules in evaluation order: insufficient material,
// repetition, fifty-move.
func DefaultRules(detectRepetition, detectFiftyMove bool) []DrawRule {
	return []DrawRule{
		InsufficientMaterialRule{},
		RepetitionRule{Detect: detectRepetition},
		FiftyMoveRule{Detect: detectFiftyMove},
	}
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (bishops on same-coloured squares)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.PieceType
	var whiteBishopOnLight, blackBishopOnLight bool

	g := board.Grid()
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.Sq(file, rank)
			piece := g.At(sq)
			if piece.IsEmpty() || piece.Type == chess.King {
				continue
			}

			// Any pawn, rook, or queen means sufficient material
			if piece.Type == chess.Pawn || piece.Type == chess.Rook || piece.Type == chess.Queen {
				return false
			}

			if piece.Colour == chess.White {
				whitePieces = append(whitePieces, piece.Type)
				if piece.Type == chess.Bishop {
					whiteBishopOnLight = sq.IsLight()
				}
			} else {
				blackPieces = append(blackPieces, piece.Type)
				if piece.Type == chess.Bishop {
					blackBishopOnLight = sq.IsLight()
				}
			}
		}
	}

	// K vs K
	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(whitePieces) == 0 && len(blackPieces) == 1 {
		return blackPieces[0] == chess.Bishop || blackPieces[0] == chess.Knight
	}
	if len(blackPieces) == 0 && len(whitePieces) == 1 {
		return whitePieces[0] == chess.Bishop || whitePieces[0] == chess.Knight
	}

	// K+B vs K+B with both bishops on the same square colour
	if len(whitePieces) == 1 && len(blackPieces) == 1 &&
		whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop {
		return whiteBishopOnLight == blackBishopOnLight
	}

	return false
}

// Evaluate reports how the game on board has ended, or nil if it has not.
// A mate flag on the last displayed move decides first. A diagram with no
// displayed moves is searched for mate or stalemate of either side. Then the
// rules are tried in order and the first that fires wins.
func Evaluate(board *chess.Board, rules []DrawRule) *chess.EndGame {
	ply := board.Cursor()

	if last, ok := board.LastMove(); ok {
		if last.Mate {
			if last.Check {
				return &chess.EndGame{Kind: chess.Checkmate, Winner: last.Piece.Colour, Decisive: true, Ply: ply}
			}
			return &chess.EndGame{Kind: chess.Stalemate, Ply: ply}
		}
	} else {
		side := board.ToMove()
		for _, c := range []chess.Colour{side, side.Opposite()} {
			if HasLegalMoves(board, c) {
				continue
			}
			if IsInCheck(board, c) {
				return &chess.EndGame{Kind: chess.Checkmate, Winner: c.Opposite(), Decisive: true, Ply: ply}
			}
			return &chess.EndGame{Kind: chess.Stalemate, Ply: ply}
		}
	}

	for _, rule := range rules {
		if rule.IsDraw(board) {
			return &chess.EndGame{Kind: rule.Kind(), Ply: ply}
		}
	}
	return nil
}
