package game

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Listener receives a game's notifications. All calls are synchronous and
// happen on the goroutine that committed the move.
type Listener interface {
	engine.Notifier

	// PieceCaptured is called after a committed move that captured a piece.
	PieceCaptured(m chess.Move)

	// GameEnded is called once, when the game reaches a terminal state.
	GameEnded(eg *chess.EndGame)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are no-ops;
// a nil OnChoosePromotion selects a queen.
type ListenerFuncs struct {
	OnKingWouldBeChecked func(m chess.Move)
	OnChoosePromotion    func(m chess.Move) chess.PieceType
	OnPieceCaptured      func(m chess.Move)
	OnGameEnded          func(eg *chess.EndGame)
}

func (l ListenerFuncs) KingWouldBeChecked(m chess.Move) {
	if l.OnKingWouldBeChecked != nil {
		l.OnKingWouldBeChecked(m)
	}
}

func (l ListenerFuncs) ChoosePromotion(m chess.Move) chess.PieceType {
	if l.OnChoosePromotion != nil {
		return l.OnChoosePromotion(m)
	}
	return chess.Queen
}

func (l ListenerFuncs) PieceCaptured(m chess.Move) {
	if l.OnPieceCaptured != nil {
		l.OnPieceCaptured(m)
	}
}

func (l ListenerFuncs) GameEnded(eg *chess.EndGame) {
	if l.OnGameEnded != nil {
		l.OnGameEnded(eg)
	}
}

// checkOnly forwards self-check notifications but never asks for a promotion
// piece, so a dry-run validation does not prompt the user.
type checkOnly struct {
	l Listener
}

func (c checkOnly) KingWouldBeChecked(m chess.Move) {
	c.l.KingWouldBeChecked(m)
}

func (checkOnly) ChoosePromotion(chess.Move) chess.PieceType {
	return chess.Queen
}
