package chess

// Grid is the 8x8 square array, indexed [file][rank].
type Grid [BoardSize][BoardSize]Piece

// backRank is the standard piece order from the a-file to the h-file.
var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardGrid returns the grid of the standard starting position.
func StandardGrid() Grid {
	var g Grid
	for file := 0; file < BoardSize; file++ {
		g[file][0] = W(backRank[file])
		g[file][1] = W(Pawn)
		g[file][6] = B(Pawn)
		g[file][7] = B(backRank[file])
	}
	return g
}

// At returns the piece at p, or NoPiece if p is off the board.
func (g *Grid) At(p Position) Piece {
	if !p.Valid() {
		return NoPiece
	}
	return g[p.File][p.Rank]
}

// Set places a piece at p. Off-board positions are ignored.
func (g *Grid) Set(p Position, piece Piece) {
	if p.Valid() {
		g[p.File][p.Rank] = piece
	}
}

// Find returns the first square, in a1..h8 order, holding piece.
func (g *Grid) Find(piece Piece) (Position, bool) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if g[file][rank] == piece {
				return Sq(file, rank), true
			}
		}
	}
	return NoPosition, false
}

// Occupied returns the squares holding a piece of colour c, in a1..h8 order.
func (g *Grid) Occupied(c Colour) []Position {
	var out []Position
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			p := g[file][rank]
			if !p.IsEmpty() && p.Colour == c {
				out = append(out, Sq(file, rank))
			}
		}
	}
	return out
}

// Count returns the material of colour c on the grid.
func (g *Grid) Count(c Colour) Material {
	var m Material
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			p := g[file][rank]
			if !p.IsEmpty() && p.Colour == c {
				m[p.Type]++
			}
		}
	}
	return m
}
