// Package engine provides chess move validation, generation, notation and
// end-of-game evaluation on top of the chess board types.
package engine

import (
	"fmt"
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Notifier receives the validator's side notifications. Either method may be
// left as a no-op.
type Notifier interface {
	// KingWouldBeChecked is called when a geometrically valid move is
	// rejected because it leaves the mover's king attacked.
	KingWouldBeChecked(m chess.Move)

	// ChoosePromotion is called for a promotion whose piece is still unresolved.
	// Returning anything but a queen, rook, bishop or knight selects a queen.
	ChoosePromotion(m chess.Move) chess.PieceType
}

// Options controls a validation.
type Options struct {
	// CheckTurn rejects moves by the side not on move.
	CheckTurn bool

	// Notifier, if set, receives self-check and promotion notifications.
	Notifier Notifier
}

// Validate checks m against the displayed position of board and returns a new
// move with Piece, Captured, Special, Check and Mate filled in. The board and
// the caller's move are left untouched.
func Validate(board *chess.Board, m chess.Move, opts Options) (chess.Move, error) {
	return validate(board, m, opts, true)
}

// validate is Validate with an option to skip the check and mate flags. The
// flags need a legal-move search for the opponent, which in turn validates
// without flags, so the recursion stops at depth one.
func validate(board *chess.Board, m chess.Move, opts Options, withFlags bool) (chess.Move, error) {
	if !m.From.Valid() {
		return m, fmt.Errorf("origin %v off the board: %w", m.From, errors.ErrPieceNotFound)
	}
	piece := board.At(m.From)
	if piece.IsEmpty() {
		return m, fmt.Errorf("%s: %w", m.From, errors.ErrPieceNotFound)
	}
	if !m.To.Valid() {
		return m, fmt.Errorf("%s destination %v off the board: %w", piece, m.To, errors.ErrIllegalMove)
	}

	promoteTo, promoting := m.Promotion()
	out := chess.Move{From: m.From, To: m.To, Piece: piece}

	if opts.CheckTurn && piece.Colour != board.ToMove() {
		return out, fmt.Errorf("%s %s: %w", piece, out, errors.ErrWrongTurn)
	}
	if m.From == m.To {
		return out, fmt.Errorf("%s %s: %w", piece, out, errors.ErrIllegalMove)
	}
	if promoting && piece.Type != chess.Pawn {
		return out, fmt.Errorf("%s %s cannot promote: %w", piece, out, errors.ErrIllegalMove)
	}
	if promoting && promoteTo != chess.Empty && !slices.Contains(chess.PromotionTypes[:], promoteTo) {
		return out, fmt.Errorf("%s %s cannot promote to %v: %w", piece, out, promoteTo, errors.ErrIllegalMove)
	}

	out, ok := geometry(board, out, promoteTo)
	if !ok {
		return out, fmt.Errorf("%s %s: %w", piece, out, errors.ErrIllegalMove)
	}

	sim := board.Clone()
	sim.Push(out)
	if IsInCheck(sim, piece.Colour) {
		if opts.Notifier != nil {
			opts.Notifier.KingWouldBeChecked(out)
		}
		return out, fmt.Errorf("%s %s: %w", piece, out, errors.ErrSelfCheck)
	}

	if t, ok := out.Promotion(); ok && t == chess.Empty && withFlags {
		out.Special = chess.Promotion{To: choosePromotion(out, opts.Notifier)}
	}

	if withFlags {
		opponent := piece.Colour.Opposite()
		sim = board.Clone()
		sim.Push(out)
		out.Check = IsInCheck(sim, opponent)
		out.Mate = !HasLegalMoves(sim, opponent)
	}

	return out, nil
}

// choosePromotion asks the notifier for a piece and falls back to a queen.
func choosePromotion(m chess.Move, n Notifier) chess.PieceType {
	if n == nil {
		return chess.Queen
	}
	if t := n.ChoosePromotion(m); slices.Contains(chess.PromotionTypes[:], t) {
		return t
	}
	return chess.Queen
}
