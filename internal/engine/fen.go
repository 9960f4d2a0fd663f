package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a six-field FEN string into a starting snapshot.
func ParseFEN(fen string) (chess.Snapshot, error) {
	var s chess.Snapshot

	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return s, fmt.Errorf("want 6 fields, got %d: %w", len(parts), errors.ErrInvalidFEN)
	}

	if err := parsePiecePositions(&s.Grid, parts[0]); err != nil {
		return s, err
	}
	if err := parseSideToMove(&s, parts[1]); err != nil {
		return s, err
	}
	if err := parseCastlingRights(&s, parts[2]); err != nil {
		return s, err
	}
	if err := parseEnPassant(&s, parts[3]); err != nil {
		return s, err
	}
	if err := parseClocks(&s, parts[4], parts[5]); err != nil {
		return s, err
	}

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		s.Captured[c] = missingMaterial(s.Grid.Count(c))
	}
	return s, nil
}

// missingMaterial diffs on-board material against the standard allotment.
// Surplus pieces from promotion count as nothing missing.
func missingMaterial(onBoard chess.Material) chess.Material {
	var m chess.Material
	for t := chess.Pawn; t <= chess.King; t++ {
		m[t] = max(chess.StandardMaterial[t]-onBoard[t], 0)
	}
	return m
}

// NewBoardFromFEN creates a board from a FEN string.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	s, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return chess.NewBoardFromSnapshot(s), nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(g *chess.Grid, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("want %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	for i, row := range ranks {
		rank := chess.LastIndex - i
		file := 0
		for _, c := range []byte(row) {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				t := chess.PieceTypeFromLetter(c)
				if t == chess.Empty {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if file > chess.LastIndex {
					return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if c >= 'a' && c <= 'z' {
					colour = chess.Black
				}
				g.Set(chess.Sq(file, rank), chess.Piece{Colour: colour, Type: t})
				file++
			}
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(s *chess.Snapshot, field string) error {
	switch field {
	case "w":
		s.ToMove = chess.White
	case "b":
		s.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", field, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(s *chess.Snapshot, field string) error {
	s.Castling = chess.NoCastling
	if field == "-" {
		return nil
	}

	for _, c := range []byte(field) {
		var right chess.CastlingRights
		switch c {
		case 'K':
			right = chess.WhiteKingSide
		case 'Q':
			right = chess.WhiteQueenSide
		case 'k':
			right = chess.BlackKingSide
		case 'q':
			right = chess.BlackQueenSide
		default:
			return fmt.Errorf("invalid castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
		if s.Castling&right != 0 {
			return fmt.Errorf("repeated castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
		s.Castling |= right
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(s *chess.Snapshot, field string) error {
	s.EnPassant = chess.NoPosition
	if field == "-" {
		return nil
	}
	sq, err := chess.ParsePosition(field)
	if err != nil || (sq.Rank != 2 && sq.Rank != 5) {
		return fmt.Errorf("invalid en passant square: %s: %w", field, errors.ErrInvalidFEN)
	}
	s.EnPassant = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(s *chess.Snapshot, halfMove, fullMove string) error {
	h, err := strconv.Atoi(halfMove)
	if err != nil || h < 0 {
		return fmt.Errorf("invalid halfmove clock: %s: %w", halfMove, errors.ErrInvalidFEN)
	}
	f, err := strconv.Atoi(fullMove)
	if err != nil || f < 1 {
		return fmt.Errorf("invalid fullmove number: %s: %w", fullMove, errors.ErrInvalidFEN)
	}
	s.HalfMove, s.FullMove = h, f
	return nil
}

// BoardToFEN converts the displayed position of a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	g := board.Grid()
	writePiecePositions(&sb, &g)
	sb.WriteByte(' ')
	if board.ToMove() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(board.CastlingRights().String())
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassantTarget().String())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfMoveClock(), board.FullMoveNumber())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, g *chess.Grid) {
	for rank := chess.LastIndex; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := g.At(chess.Sq(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}
