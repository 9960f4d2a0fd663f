package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/parser"
)

// SANCandidates returns every legal move of the side to move that matches
// the SAN token text, ordered by origin square. A pawn move to the last rank
// without a promotion letter matches once per promotion piece.
func SANCandidates(board *chess.Board, text string) ([]chess.Move, error) {
	san, err := parser.DecodeSAN(text)
	if err != nil {
		return nil, err
	}
	return MatchSAN(board, san), nil
}

// MatchSAN resolves a decoded SAN token against the displayed position.
func MatchSAN(board *chess.Board, san parser.SAN) []chess.Move {
	colour := board.ToMove()
	opts := Options{CheckTurn: true}

	if san.Castle {
		home := chess.KingHome(colour)
		m := chess.Move{From: home, To: chess.Sq(san.Side.KingFile(), home.Rank)}
		if board.At(home) != (chess.Piece{Colour: colour, Type: chess.King}) {
			return nil
		}
		v, err := Validate(board, m, opts)
		if err != nil {
			return nil
		}
		return []chess.Move{v}
	}

	var out []chess.Move
	for _, from := range board.Occupied(colour) {
		piece := board.At(from)
		if piece.Type != san.Piece {
			continue
		}
		if san.From.HasFile() && from.File != san.From.File {
			continue
		}
		if san.From.HasRank() && from.Rank != san.From.Rank {
			continue
		}

		m := chess.Move{From: from, To: san.To}
		if san.Promotion != chess.Empty {
			m.Special = chess.Promotion{To: san.Promotion}
		} else if piece.Type == chess.Pawn && san.To.Rank == promotionRank(colour) {
			for _, t := range chess.PromotionTypes {
				m.Special = chess.Promotion{To: t}
				if v, err := Validate(board, m, opts); err == nil && markersAgree(san, v) {
					out = append(out, v)
				}
			}
			continue
		}
		if v, err := Validate(board, m, opts); err == nil && markersAgree(san, v) {
			out = append(out, v)
		}
	}
	return out
}

// markersAgree reports whether the capture and en passant markers written in
// the token hold for the resolved move. A capture written without "x" is
// accepted.
func markersAgree(san parser.SAN, m chess.Move) bool {
	if san.Capture && !m.IsCapture() {
		return false
	}
	return !san.EnPassant || m.IsEnPassant()
}

// ParseSAN resolves text to exactly one legal move. No match returns
// ErrSANNotFound; several matches return an *errors.AmbiguousMoveError
// carrying all of them.
func ParseSAN(board *chess.Board, text string) (chess.Move, error) {
	candidates, err := SANCandidates(board, text)
	if err != nil {
		return chess.Move{}, err
	}
	switch len(candidates) {
	case 0:
		return chess.Move{}, fmt.Errorf("%q: %w", text, errors.ErrSANNotFound)
	case 1:
		m := candidates[0]
		m.SAN = FormatSAN(board, m)
		return m, nil
	default:
		return chess.Move{}, &errors.AmbiguousMoveError{Text: text, Candidates: candidates}
	}
}

// FormatSAN renders a validated move, played from the displayed position of
// board, in standard algebraic notation.
func FormatSAN(board *chess.Board, m chess.Move) string {
	var sb strings.Builder

	switch {
	case m.IsCastle():
		sb.WriteString(m.Special.String())

	case m.Piece.Type == chess.Pawn:
		if m.IsCapture() {
			sb.WriteByte(m.From.FileLetter())
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if t, ok := m.Promotion(); ok {
			if t == chess.Empty {
				t = chess.Queen
			}
			sb.WriteByte('=')
			sb.WriteByte(t.Letter())
		}

	default:
		sb.WriteByte(m.Piece.Type.Letter())
		sb.WriteString(disambiguator(board, m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	switch {
	case m.Check && m.Mate:
		sb.WriteByte('#')
	case m.Check:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguator returns the shortest origin hint that tells m apart from
// other pieces of the same type that can legally reach the same square:
// the file if that suffices, else the rank, else both.
func disambiguator(board *chess.Board, m chess.Move) string {
	var rivals []chess.Position
	for _, sq := range board.Occupied(m.Piece.Colour) {
		if sq == m.From || board.At(sq) != m.Piece {
			continue
		}
		if _, err := validate(board, chess.Move{From: sq, To: m.To}, Options{}, false); err == nil {
			rivals = append(rivals, sq)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		sameFile = sameFile || sq.File == m.From.File
		sameRank = sameRank || sq.Rank == m.From.Rank
	}
	switch {
	case !sameFile:
		return string(m.From.FileLetter())
	case !sameRank:
		return string(m.From.RankDigit())
	default:
		return m.From.String()
	}
}
