package hashing

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Zobrist keys, generated from a fixed seed so hashes are stable across runs.
var (
	// [Colour][PieceType][Square]
	zobristPiece [2][chess.NumPieceTypes][chess.BoardSize * chess.BoardSize]uint64

	// One per file
	zobristEnPassant [chess.BoardSize]uint64

	// All 16 castling combinations
	zobristCastling [chess.AllCastling + 1]uint64

	// XOR when Black is to move
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng is a xorshift64* generator.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := range zobristPiece {
		for pt := chess.Pawn; pt <= chess.King; pt++ {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// GenerateZobristHash hashes the displayed position of a board: piece
// placement, side to move, castling rights and en passant file.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64

	g := board.Grid()
	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			p := g[file][rank]
			if p.IsEmpty() {
				continue
			}
			hash ^= zobristPiece[p.Colour][p.Type][rank*chess.BoardSize+file]
		}
	}

	if board.ToMove() == chess.Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[board.CastlingRights()]
	if ep := board.EnPassantTarget(); ep.Valid() {
		hash ^= zobristEnPassant[ep.File]
	}
	return hash
}
