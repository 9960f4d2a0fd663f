package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID         string            `json:"id"`
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	EndGame    string            `json:"endGame,omitempty"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN"`
	FinalFEN   string            `json:"finalFEN"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	Check      bool   `json:"check,omitempty"`
	Mate       bool   `json:"mate,omitempty"`
	FEN        string `json:"fen"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// WriteGamesJSON writes several games as one indented JSON document.
func WriteGamesJSON(w io.Writer, games []*game.Game) error {
	out := &JSONOutput{Games: make([]*JSONGame, len(games))}
	for i, g := range games {
		out.Games[i] = GameToJSON(g)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// GameToJSON converts the displayed main line of a game to JSON form, with
// the position after every move.
func GameToJSON(g *game.Game) *JSONGame {
	board := g.Board()
	board.SeekStart()

	jg := &JSONGame{
		ID:         g.ID.String(),
		Tags:       g.Tags(),
		Result:     g.Result(),
		InitialFEN: engine.BoardToFEN(board),
	}
	if eg := g.EndGame(); eg != nil {
		jg.EndGame = eg.Kind.String()
	}
	jg.Tags[chess.ResultTag] = jg.Result

	moves := g.Moves()
	jg.Moves = make([]JSONMove, 0, len(moves))
	for _, m := range moves {
		moveNum := board.FullMoveNumber()
		board.Forward()
		jg.Moves = append(jg.Moves, convertMove(m, moveNum, engine.BoardToFEN(board)))
	}
	jg.PlyCount = len(jg.Moves)
	jg.FinalFEN = engine.BoardToFEN(board)
	return jg
}

// convertMove converts a single move to JSON format.
func convertMove(m chess.Move, moveNum int, fen string) JSONMove {
	jm := JSONMove{
		MoveNumber: moveNum,
		Color:      strings.ToLower(m.Piece.Colour.String()),
		SAN:        m.SAN,
		UCI:        m.String(),
		From:       m.From.String(),
		To:         m.To.String(),
		Piece:      pieceTypeName(m.Piece.Type),
		Check:      m.Check,
		Mate:       m.Check && m.Mate,
		FEN:        fen,
	}
	if m.IsCapture() {
		jm.Captured = pieceTypeName(m.Captured.Type)
	}
	if t, ok := m.Promotion(); ok {
		if t == chess.Empty {
			t = chess.Queen
		}
		jm.Promotion = pieceTypeName(t)
	}
	return jm
}

// pieceTypeName returns the lowercase name of a piece type.
func pieceTypeName(t chess.PieceType) string {
	return strings.ToLower(t.String())
}
