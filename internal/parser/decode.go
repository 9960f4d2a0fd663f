package parser

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// SAN is a decoded move token. It describes a move only partially: the
// origin is known at most by file and rank hints and must be resolved
// against a position.
type SAN struct {
	Text string

	// Piece is the moving piece type, Pawn when no letter is given.
	Piece chess.PieceType

	// From holds the disambiguating file and/or rank, or NoPosition.
	From chess.Position

	To        chess.Position
	Capture   bool
	Promotion chess.PieceType // Empty if none
	EnPassant bool

	// Castle is set for O-O and O-O-O; Side tells which.
	Castle bool
	Side   chess.CastleSide

	Check bool
	Mate  bool
}

// isFile returns true if c is a valid file character.
func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

// sanPiece returns the piece type for an uppercase SAN piece letter.
func sanPiece(c byte) chess.PieceType {
	if c < 'A' || c > 'Z' {
		return chess.Empty
	}
	return chess.PieceTypeFromLetter(c)
}

// DecodeSAN parses one SAN token:
//
//	[PNBRQK]?[a-h]?[1-8]?[x-]?[a-h][1-8](=[NBRQ]| ?e.p.)?[+#]?
//	O-O(-O)?[+#]?
//
// Malformed tokens return an error wrapping ErrInvalidSAN.
func DecodeSAN(text string) (SAN, error) {
	san := SAN{
		Text:  text,
		Piece: chess.Pawn,
		From:  chess.NoPosition,
		To:    chess.NoPosition,
	}
	invalid := func(why string) (SAN, error) {
		return SAN{}, fmt.Errorf("%q %s: %w", text, why, errors.ErrInvalidSAN)
	}

	s := text
	switch {
	case strings.HasSuffix(s, "#"):
		san.Check, san.Mate = true, true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "+"):
		san.Check = true
		s = s[:len(s)-1]
	}

	switch s {
	case "O-O":
		san.Castle, san.Side, san.Piece = true, chess.KingSide, chess.King
		return san, nil
	case "O-O-O":
		san.Castle, san.Side, san.Piece = true, chess.QueenSide, chess.King
		return san, nil
	}

	if rest, ok := strings.CutSuffix(s, "e.p."); ok {
		san.EnPassant = true
		s = strings.TrimSuffix(rest, " ")
	} else if n := len(s); n >= 2 && s[n-2] == '=' {
		san.Promotion = sanPiece(s[n-1])
		if san.Promotion == chess.Empty || san.Promotion == chess.Pawn || san.Promotion == chess.King {
			return invalid("has a bad promotion piece")
		}
		s = s[:n-2]
	}

	if len(s) > 0 {
		if t := sanPiece(s[0]); t != chess.Empty {
			san.Piece = t
			s = s[1:]
		}
	}

	n := len(s)
	if n < 2 || !isFile(s[n-2]) || !isRank(s[n-1]) {
		return invalid("has no destination square")
	}
	san.To = chess.Sq(int(s[n-2]-'a'), int(s[n-1]-'1'))
	s = s[:n-2]

	if n := len(s); n > 0 && (s[n-1] == 'x' || s[n-1] == '-') {
		san.Capture = s[n-1] == 'x'
		s = s[:n-1]
	}

	if len(s) > 0 && isFile(s[0]) {
		san.From.File = int(s[0] - 'a')
		s = s[1:]
	}
	if len(s) > 0 && isRank(s[0]) {
		san.From.Rank = int(s[0] - '1')
		s = s[1:]
	}
	if s != "" {
		return invalid("has unexpected characters")
	}

	if san.Piece != chess.Pawn && (san.Promotion != chess.Empty || san.EnPassant) {
		return invalid("promotes or captures en passant with a piece")
	}
	return san, nil
}
