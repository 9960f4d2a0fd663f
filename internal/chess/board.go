package chess

// Snapshot is an immutable starting diagram, usually read from FEN.
type Snapshot struct {
	Grid      Grid
	ToMove    Colour
	Castling  CastlingRights
	EnPassant Position // NoPosition if none
	HalfMove  int
	FullMove  int

	// Captured holds, per colour, the pieces missing from the standard set.
	Captured [2]Material
}

// Board represents a position as a starting diagram plus an ordered move list
// and a cursor. The grid always equals the start replayed through
// moves[0..cursor]; rewinding never drops moves.
//
// Everything except the grid is derived on demand, so a Board that is only
// read may be shared between goroutines.
type Board struct {
	grid     Grid
	moves    []Move
	cursor   int // index of the last displayed move, -1 before the first
	snapshot *Snapshot
}

// NewBoard creates a board holding the standard starting position.
func NewBoard() *Board {
	return &Board{
		grid:   StandardGrid(),
		cursor: -1,
	}
}

// NewBoardFromSnapshot creates a board starting from s.
func NewBoardFromSnapshot(s Snapshot) *Board {
	if s.FullMove < 1 {
		s.FullMove = 1
	}
	return &Board{
		grid:     s.Grid,
		cursor:   -1,
		snapshot: &s,
	}
}

// Snapshot returns the starting diagram, or nil for the standard position.
func (b *Board) Snapshot() *Snapshot {
	return b.snapshot
}

// At returns the piece on p in the displayed position.
func (b *Board) At(p Position) Piece {
	return b.grid.At(p)
}

// Grid returns a copy of the displayed grid.
func (b *Board) Grid() Grid {
	return b.grid
}

// Moves returns every recorded move, including any beyond the cursor.
func (b *Board) Moves() []Move {
	return append([]Move(nil), b.moves...)
}

// Displayed returns the moves up to and including the cursor.
func (b *Board) Displayed() []Move {
	return append([]Move(nil), b.moves[:b.cursor+1]...)
}

// Cursor returns the index of the last displayed move, -1 before the first.
func (b *Board) Cursor() int {
	return b.cursor
}

// Len returns the number of recorded moves.
func (b *Board) Len() int {
	return len(b.moves)
}

// LastMove returns the last displayed move.
func (b *Board) LastMove() (Move, bool) {
	if b.cursor < 0 {
		return Move{}, false
	}
	return b.moves[b.cursor], true
}

// AtLatest returns true if the cursor shows the last recorded move.
func (b *Board) AtLatest() bool {
	return b.cursor == len(b.moves)-1
}

// Push applies m and makes it the latest move. Moves beyond the cursor are dropped.
func (b *Board) Push(m Move) {
	b.moves = append(b.moves[:b.cursor+1], m)
	b.cursor++
	b.moves[b.cursor].Apply(&b.grid)
}

// Back undoes the displayed move. It returns false at the start.
func (b *Board) Back() bool {
	if b.cursor < 0 {
		return false
	}
	b.moves[b.cursor].Undo(&b.grid)
	b.cursor--
	return true
}

// Forward replays the next recorded move. It returns false at the end.
func (b *Board) Forward() bool {
	if b.AtLatest() {
		return false
	}
	b.cursor++
	b.moves[b.cursor].Apply(&b.grid)
	return true
}

// SeekStart rewinds to the starting diagram.
func (b *Board) SeekStart() {
	for b.Back() {
	}
}

// SeekEnd replays every recorded move.
func (b *Board) SeekEnd() {
	for b.Forward() {
	}
}

// Clone returns a disposable copy of the displayed position for simulation.
// Pushing on the clone never disturbs the original's move list.
func (b *Board) Clone() *Board {
	n := b.cursor + 1
	return &Board{
		grid:     b.grid,
		moves:    b.moves[:n:n],
		cursor:   b.cursor,
		snapshot: b.snapshot,
	}
}

// StartToMove returns the side to move in the starting diagram.
func (b *Board) StartToMove() Colour {
	if b.snapshot != nil {
		return b.snapshot.ToMove
	}
	return White
}

// ToMove returns the side to move in the displayed position.
func (b *Board) ToMove() Colour {
	if (b.cursor+1)%2 == 0 {
		return b.StartToMove()
	}
	return b.StartToMove().Opposite()
}

// Castling squares whose disturbance removes rights.
var (
	whiteKingHome = Sq(4, 0)
	blackKingHome = Sq(4, LastIndex)
	rightsLost    = map[Position]CastlingRights{
		whiteKingHome:            WhiteKingSide | WhiteQueenSide,
		Sq(LastIndex, 0):         WhiteKingSide,
		Sq(0, 0):                 WhiteQueenSide,
		blackKingHome:            BlackKingSide | BlackQueenSide,
		Sq(LastIndex, LastIndex): BlackKingSide,
		Sq(0, LastIndex):         BlackQueenSide,
	}
)

// KingHome returns the king's starting square for colour c.
func KingHome(c Colour) Position {
	if c == White {
		return whiteKingHome
	}
	return blackKingHome
}

// CastlingRights returns the rights still held in the displayed position:
// those of the starting diagram, minus any whose king or rook square has been
// the origin or destination of a displayed move.
func (b *Board) CastlingRights() CastlingRights {
	rights := AllCastling
	if b.snapshot != nil {
		rights = b.snapshot.Castling
	}
	for i := 0; i <= b.cursor; i++ {
		m := &b.moves[i]
		rights &^= rightsLost[m.From]
		rights &^= rightsLost[m.To]
	}
	return rights
}

// EnPassantTarget returns the square a pawn may capture onto en passant,
// or NoPosition.
func (b *Board) EnPassantTarget() Position {
	if b.cursor < 0 {
		if b.snapshot != nil {
			return b.snapshot.EnPassant
		}
		return NoPosition
	}
	m := b.moves[b.cursor]
	if m.Piece.Type != Pawn {
		return NoPosition
	}
	if d := m.To.Rank - m.From.Rank; d == 2 || d == -2 {
		return Sq(m.From.File, (m.From.Rank+m.To.Rank)/2)
	}
	return NoPosition
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (b *Board) HalfMoveClock() int {
	clock := 0
	if b.snapshot != nil {
		clock = b.snapshot.HalfMove
	}
	for i := 0; i <= b.cursor; i++ {
		m := &b.moves[i]
		if m.Piece.Type == Pawn || m.IsCapture() {
			clock = 0
		} else {
			clock++
		}
	}
	return clock
}

// FullMoveNumber returns the FEN full-move number of the displayed position.
func (b *Board) FullMoveNumber() int {
	n := 1
	if b.snapshot != nil {
		n = b.snapshot.FullMove
	}
	mover := b.StartToMove()
	for i := 0; i <= b.cursor; i++ {
		if mover == Black {
			n++
		}
		mover = mover.Opposite()
	}
	return n
}

// Captured returns the pieces of colour c no longer on the board through capture.
func (b *Board) Captured(c Colour) Material {
	var m Material
	if b.snapshot != nil {
		m = b.snapshot.Captured[c]
	}
	for i := 0; i <= b.cursor; i++ {
		if x := b.moves[i].Captured; !x.IsEmpty() && x.Colour == c {
			m[x.Type]++
		}
	}
	return m
}

// King returns the square of colour c's king.
func (b *Board) King(c Colour) (Position, bool) {
	return b.grid.Find(Piece{Colour: c, Type: King})
}

// Occupied returns the squares holding colour c's pieces, in a1..h8 order.
func (b *Board) Occupied(c Colour) []Position {
	return b.grid.Occupied(c)
}

// Material returns colour c's pieces on the board.
func (b *Board) Material(c Colour) Material {
	return b.grid.Count(c)
}
