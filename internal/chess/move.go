package chess

import "strings"

// Move is a single move together with the facts the validator established
// about it. Moves are values; validation returns a new Move rather than
// updating the caller's.
type Move struct {
	From Position
	To   Position

	// The piece being moved.
	Piece Piece

	// The piece captured (NoPiece if none).
	Captured Piece

	// Special is nil for an ordinary lift-and-place move.
	Special SpecialMove

	// Check is set when the move leaves the opponent's king attacked.
	Check bool

	// Mate is set when the opponent has no legal reply. Mate without Check
	// is stalemate.
	Mate bool

	// SAN is the cached standard algebraic notation, if rendered.
	SAN string
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	_, ok := m.Special.(Castle)
	return ok
}

// IsEnPassant returns true if this move is an en passant capture.
func (m Move) IsEnPassant() bool {
	_, ok := m.Special.(EnPassant)
	return ok
}

// Promotion returns the promotion piece type, and whether the move promotes at all.
// The type is Empty while the choice is still unresolved.
func (m Move) Promotion() (PieceType, bool) {
	p, ok := m.Special.(Promotion)
	return p.To, ok
}

// Apply plays the move on g.
func (m *Move) Apply(g *Grid) {
	if m.Special != nil {
		m.Special.Apply(m, g)
		return
	}
	LiftAndPlace(m, g)
}

// Undo reverses Apply on g.
func (m *Move) Undo(g *Grid) {
	if m.Special != nil {
		m.Special.Undo(m, g)
		return
	}
	PutBack(m, g)
}

// String returns the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if t, ok := m.Promotion(); ok && t != Empty {
		sb.WriteByte(t.Letter() + ('a' - 'A'))
	}
	return sb.String()
}

// SpecialMove is the strategy for moves that touch more than the origin and
// destination squares, or change the moving piece.
type SpecialMove interface {
	Apply(m *Move, g *Grid)
	Undo(m *Move, g *Grid)
	String() string
}

// LiftAndPlace is the default move application.
func LiftAndPlace(m *Move, g *Grid) {
	g.Set(m.To, g.At(m.From))
	g.Set(m.From, NoPiece)
}

// PutBack is the default move reversal.
func PutBack(m *Move, g *Grid) {
	g.Set(m.From, m.Piece)
	g.Set(m.To, m.Captured)
}

// CastleSide selects the king side or the queen side.
type CastleSide int

const (
	KingSide CastleSide = iota
	QueenSide
)

// String returns the SAN text for castling on this side.
func (s CastleSide) String() string {
	if s == QueenSide {
		return "O-O-O"
	}
	return "O-O"
}

// KingFile is the file the king lands on.
func (s CastleSide) KingFile() int {
	if s == QueenSide {
		return 2
	}
	return 6
}

// RookFile is the file the rook starts from.
func (s CastleSide) RookFile() int {
	if s == QueenSide {
		return 0
	}
	return LastIndex
}

// RookTargetFile is the file the rook lands on.
func (s CastleSide) RookTargetFile() int {
	if s == QueenSide {
		return 3
	}
	return 5
}

// Castle moves the king two squares toward a rook and the rook over it.
// The move's To may name either the king's landing square or the rook's square.
type Castle struct {
	Side CastleSide
}

func (c Castle) Apply(m *Move, g *Grid) {
	rank := m.From.Rank
	king := g.At(m.From)
	rook := g.At(Sq(c.Side.RookFile(), rank))
	g.Set(m.From, NoPiece)
	g.Set(Sq(c.Side.RookFile(), rank), NoPiece)
	g.Set(Sq(c.Side.KingFile(), rank), king)
	g.Set(Sq(c.Side.RookTargetFile(), rank), rook)
}

func (c Castle) Undo(m *Move, g *Grid) {
	rank := m.From.Rank
	rook := g.At(Sq(c.Side.RookTargetFile(), rank))
	g.Set(Sq(c.Side.KingFile(), rank), NoPiece)
	g.Set(Sq(c.Side.RookTargetFile(), rank), NoPiece)
	g.Set(m.From, m.Piece)
	g.Set(Sq(c.Side.RookFile(), rank), rook)
}

func (c Castle) String() string {
	return c.Side.String()
}

// EnPassant captures the pawn beside the origin, on the destination's file.
type EnPassant struct{}

// CapturedSquare returns where the captured pawn stands.
func (EnPassant) CapturedSquare(m *Move) Position {
	return Sq(m.To.File, m.From.Rank)
}

func (e EnPassant) Apply(m *Move, g *Grid) {
	LiftAndPlace(m, g)
	g.Set(e.CapturedSquare(m), NoPiece)
}

func (e EnPassant) Undo(m *Move, g *Grid) {
	g.Set(m.From, m.Piece)
	g.Set(m.To, NoPiece)
	captured := m.Captured
	if captured.IsEmpty() {
		captured = Piece{Colour: m.Piece.Colour.Opposite(), Type: Pawn}
	}
	g.Set(e.CapturedSquare(m), captured)
}

func (EnPassant) String() string {
	return "e.p."
}

// Promotion replaces the pawn by To on the destination square.
// To is Empty while the choice is unresolved; applying it then promotes to a queen.
type Promotion struct {
	To PieceType
}

func (p Promotion) Apply(m *Move, g *Grid) {
	LiftAndPlace(m, g)
	t := p.To
	if t == Empty {
		t = Queen
	}
	g.Set(m.To, Piece{Colour: m.Piece.Colour, Type: t})
}

func (p Promotion) Undo(m *Move, g *Grid) {
	PutBack(m, g)
}

func (p Promotion) String() string {
	if p.To == Empty {
		return "="
	}
	return "=" + string(p.To.Letter())
}

// CastlingRights is a bitmask of the four castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// CastlingRight returns the single right for colour c on side s.
func CastlingRight(c Colour, s CastleSide) CastlingRights {
	switch {
	case c == White && s == KingSide:
		return WhiteKingSide
	case c == White:
		return WhiteQueenSide
	case s == KingSide:
		return BlackKingSide
	default:
		return BlackQueenSide
	}
}

// Has returns true if colour c may still castle on side s.
func (r CastlingRights) Has(c Colour, s CastleSide) bool {
	return r&CastlingRight(c, s) != 0
}

// String returns the FEN castling field, "-" when no rights remain.
func (r CastlingRights) String() string {
	if r == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for _, x := range []struct {
		right  CastlingRights
		letter byte
	}{{WhiteKingSide, 'K'}, {WhiteQueenSide, 'Q'}, {BlackKingSide, 'k'}, {BlackQueenSide, 'q'}} {
		if r&x.right != 0 {
			sb.WriteByte(x.letter)
		}
	}
	return sb.String()
}
