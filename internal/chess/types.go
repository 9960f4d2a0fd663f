// Package chess provides core chess types and operations.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Direction returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index of the colour.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return LastIndex
}

// PieceType represents a chess piece type.
type PieceType int

const (
	Empty PieceType = iota // No piece
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes
)

// PromotionTypes lists the piece types a pawn may become, strongest first.
var PromotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceTypeFromLetter converts an upper or lower case piece letter to a piece type.
// It returns Empty for anything else.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return Empty
}

// Piece is a coloured piece. The zero value means "no piece".
type Piece struct {
	Colour Colour
	Type   PieceType
}

// NoPiece is the empty square value.
var NoPiece = Piece{}

// W creates a white piece.
func W(t PieceType) Piece {
	return Piece{Colour: White, Type: t}
}

// B creates a black piece.
func B(t PieceType) Piece {
	return Piece{Colour: Black, Type: t}
}

// IsEmpty returns true if the value holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// Letter returns the FEN letter of the piece: uppercase for White, lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if p.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8
	LastIndex = BoardSize - 1

	FileBase = 'a'
	RankBase = '1'
)

// Position is a board coordinate. File and Rank run from 0 to 7; -1 marks an
// unknown component, which the SAN decoder uses for partial disambiguators.
type Position struct {
	File int
	Rank int
}

// NoPosition is the fully unset position.
var NoPosition = Position{File: -1, Rank: -1}

// Sq builds a position from file and rank indices.
func Sq(file, rank int) Position {
	return Position{File: file, Rank: rank}
}

// ParsePosition parses algebraic notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoPosition, fmt.Errorf("invalid square %q", s)
	}
	return Position{File: int(s[0] - FileBase), Rank: int(s[1] - RankBase)}, nil
}

// MustPosition is ParsePosition for literals known to be valid.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid returns true if both components are on the board.
func (p Position) Valid() bool {
	return p.File >= 0 && p.File < BoardSize && p.Rank >= 0 && p.Rank < BoardSize
}

// HasFile returns true if the file component is set.
func (p Position) HasFile() bool {
	return p.File >= 0
}

// HasRank returns true if the rank component is set.
func (p Position) HasRank() bool {
	return p.Rank >= 0
}

// Offset returns the position shifted by df files and dr ranks.
func (p Position) Offset(df, dr int) Position {
	return Position{File: p.File + df, Rank: p.Rank + dr}
}

// IsLight returns true if the square is a light square.
func (p Position) IsLight() bool {
	return (p.File+p.Rank)%2 == 1
}

// FileLetter returns 'a'..'h'.
func (p Position) FileLetter() byte {
	return byte(FileBase + p.File)
}

// RankDigit returns '1'..'8'.
func (p Position) RankDigit() byte {
	return byte(RankBase + p.Rank)
}

// String returns the algebraic name of the square, or "-" when unset.
func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return string([]byte{p.FileLetter(), p.RankDigit()})
}

// Material counts pieces by type.
type Material [NumPieceTypes]int

// StandardMaterial is one side's allotment in the initial position.
var StandardMaterial = Material{Pawn: 8, Knight: 2, Bishop: 2, Rook: 2, Queen: 1, King: 1}

// Total returns the number of pieces counted.
func (m Material) Total() int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// EndGameKind classifies how a game ended.
type EndGameKind int

const (
	Checkmate EndGameKind = iota + 1
	Stalemate
	Resigned
	DrawDeclared
	InsufficientMaterial
	FiftyMoveRule
	Repetition
)

// String returns the name of the end game kind.
func (k EndGameKind) String() string {
	switch k {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case Resigned:
		return "Resigned"
	case DrawDeclared:
		return "DrawDeclared"
	case InsufficientMaterial:
		return "InsufficientMaterial"
	case FiftyMoveRule:
		return "FiftyMoveRule"
	case Repetition:
		return "Repetition"
	}
	return "InProgress"
}

// EndGame describes a finished game. A nil *EndGame means the game is in progress.
type EndGame struct {
	Kind     EndGameKind
	Winner   Colour // Meaningful only when Decisive
	Decisive bool

	// Ply is the cursor index the result belongs to; rewinding below it clears the result.
	Ply int
}

// Result returns the PGN result token for the end game.
func (e *EndGame) Result() string {
	switch {
	case e == nil:
		return "*"
	case !e.Decisive:
		return "1/2-1/2"
	case e.Winner == White:
		return "1-0"
	default:
		return "0-1"
	}
}

// String returns a human readable description.
func (e *EndGame) String() string {
	if e == nil {
		return "InProgress"
	}
	if e.Decisive {
		return fmt.Sprintf("%s (%s wins)", e.Kind, e.Winner)
	}
	return e.Kind.String()
}
