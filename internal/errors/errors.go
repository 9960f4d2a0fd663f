// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSAN indicates a move token that does not match the SAN grammar.
	ErrInvalidSAN = errors.New("invalid SAN move")

	// ErrPieceNotFound indicates an operation addressed an empty square.
	ErrPieceNotFound = errors.New("no piece on square")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrWrongTurn indicates a move by the side not on move.
	ErrWrongTurn = fmt.Errorf("%w: not this side's turn", ErrIllegalMove)

	// ErrSelfCheck indicates a geometrically valid move that leaves the mover's king attacked.
	ErrSelfCheck = fmt.Errorf("%w: king would be in check", ErrIllegalMove)

	// ErrSANNotFound indicates that no legal move matches a SAN token.
	ErrSANNotFound = errors.New("no legal move matches")

	// ErrAmbiguousSAN indicates that several legal moves match a SAN token.
	ErrAmbiguousSAN = errors.New("ambiguous move")

	// ErrGameEnded indicates a commit, resignation or draw after the game is over.
	ErrGameEnded = errors.New("game has already ended")

	// ErrNotLatestMove indicates a commit while the cursor is rewound.
	ErrNotLatestMove = errors.New("not displaying the latest move")

	// ErrParseFailure indicates a general PGN parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// AmbiguousMoveError carries every legal move that matched an ambiguous SAN token.
type AmbiguousMoveError struct {
	Text       string
	Candidates []chess.Move
}

// Error lists the candidate moves in long algebraic form.
func (e *AmbiguousMoveError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, m := range e.Candidates {
		names[i] = m.String()
	}
	return fmt.Sprintf("%v %q: candidates %s", ErrAmbiguousSAN, e.Text, strings.Join(names, ", "))
}

// Unwrap returns ErrAmbiguousSAN so callers can match with errors.Is().
func (e *AmbiguousMoveError) Unwrap() error {
	return ErrAmbiguousSAN
}

// GameError wraps errors with replay context: the ply and move text at which
// a game could not be continued.
type GameError struct {
	Err      error  // The underlying error
	PlyNum   int    // 1-based ply number where the error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		context = "game"
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with input location context.
type ParseError struct {
	Err      error  // The underlying error
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		loc := fmt.Sprintf("line %d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
