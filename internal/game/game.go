// Package game drives a single chess game: it commits moves through the
// validator, tracks the end of the game, and supports stepping back and
// forward through the recorded moves.
package game

import (
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// Game is one game in progress or finished. A Game has a single writer:
// it must not be used from several goroutines at once.
type Game struct {
	ID uuid.UUID

	board    *chess.Board
	tags     map[string]string
	final    *chess.EndGame // Set once, never changed
	cfg      *config.Config
	rules    []engine.DrawRule
	pool     *worker.Pool
	listener Listener
	log      zerolog.Logger
}

// New creates a game from the standard starting position.
// If cfg is nil, a default config is created.
func New(cfg *config.Config) *Game {
	return newGame(chess.NewBoard(), cfg)
}

// NewFromFEN creates a game starting from the given FEN diagram. The FEN and
// SetUp tags are filled in.
func NewFromFEN(fen string, cfg *config.Config) (*Game, error) {
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := newGame(board, cfg)
	g.tags[chess.SetupTag] = "1"
	g.tags[chess.FENTag] = fen
	return g, nil
}

func newGame(board *chess.Board, cfg *config.Config) *Game {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	id := uuid.New()
	g := &Game{
		ID:    id,
		board: board,
		tags:  make(map[string]string, len(chess.SevenTagRoster)),
		cfg:   cfg,
		rules: engine.DefaultRules(cfg.Rules.DetectRepetition, cfg.Rules.DetectFiftyMove),
		pool:  worker.NewPool(worker.WithWorkers(cfg.Workers)),
		log:   cfg.Logger.With().Str("game", id.String()).Logger(),
	}
	for _, name := range chess.SevenTagRoster {
		g.tags[name] = chess.SevenTagDefaults[name]
	}

	// A diagram may already be decided.
	if eg := engine.Evaluate(board, g.rules); eg != nil {
		g.finish(eg)
	}
	return g
}

// SetListener installs the listener for subsequent notifications. Nil removes it.
func (g *Game) SetListener(l Listener) {
	g.listener = l
}

// notifier returns the listener as an engine notifier, or nil.
func (g *Game) notifier() engine.Notifier {
	if g.listener == nil {
		return nil
	}
	return g.listener
}

// canCommit reports why the game cannot take a new move or ending, if it cannot.
func (g *Game) canCommit() error {
	if g.EndGame() != nil {
		return errors.ErrGameEnded
	}
	if !g.board.AtLatest() {
		return errors.ErrNotLatestMove
	}
	return nil
}

// Commit validates m for the side to move and, if legal, plays it. The
// committed move, with its flags and SAN filled in, is returned. On error
// the game is unchanged.
func (g *Game) Commit(m chess.Move) (chess.Move, error) {
	if err := g.canCommit(); err != nil {
		return chess.Move{}, err
	}

	v, err := engine.Validate(g.board, m, engine.Options{CheckTurn: true, Notifier: g.notifier()})
	if err != nil {
		return chess.Move{}, err
	}
	v.SAN = engine.FormatSAN(g.board, v)

	g.board.Push(v)
	g.log.Debug().Int("ply", g.board.Cursor()+1).Str("san", v.SAN).Msg("move committed")

	if v.IsCapture() && g.listener != nil {
		g.listener.PieceCaptured(v)
	}
	if eg := engine.Evaluate(g.board, g.rules); eg != nil {
		g.finish(eg)
	}
	return v, nil
}

// CommitSAN resolves a SAN token against the position and commits it. When the
// only ambiguity is the promotion piece, the listener chooses it.
func (g *Game) CommitSAN(text string) (chess.Move, error) {
	if err := g.canCommit(); err != nil {
		return chess.Move{}, err
	}

	candidates, err := engine.SANCandidates(g.board, text)
	if err != nil {
		return chess.Move{}, err
	}

	switch {
	case len(candidates) == 0:
		return chess.Move{}, fmt.Errorf("%q: %w", text, errors.ErrSANNotFound)
	case len(candidates) == 1:
		return g.Commit(candidates[0])
	case promotionChoices(candidates):
		return g.Commit(g.pickPromotion(candidates))
	default:
		return chess.Move{}, &errors.AmbiguousMoveError{Text: text, Candidates: candidates}
	}
}

// promotionChoices reports whether every candidate is the same pawn move
// differing only in the promotion piece.
func promotionChoices(candidates []chess.Move) bool {
	first := candidates[0]
	for _, m := range candidates {
		if _, ok := m.Promotion(); !ok || m.From != first.From || m.To != first.To {
			return false
		}
	}
	return true
}

// pickPromotion asks the listener which promotion to play, defaulting to a queen.
func (g *Game) pickPromotion(candidates []chess.Move) chess.Move {
	want := chess.Queen
	if g.listener != nil {
		open := candidates[0]
		open.Special = chess.Promotion{}
		want = g.listener.ChoosePromotion(open)
	}
	for _, m := range candidates {
		if t, _ := m.Promotion(); t == want {
			return m
		}
	}
	for _, m := range candidates {
		if t, _ := m.Promotion(); t == chess.Queen {
			return m
		}
	}
	return candidates[0]
}

// Validate checks a from-to move for the side to move without playing it.
// Self-check rejections are still reported to the listener.
func (g *Game) Validate(from, to chess.Position) (chess.Move, error) {
	opts := engine.Options{CheckTurn: true}
	if g.listener != nil {
		opts.Notifier = checkOnly{g.listener}
	}
	return engine.Validate(g.board, chess.Move{From: from, To: to}, opts)
}

func (g *Game) moveOptions() engine.MoveOptions {
	return engine.MoveOptions{
		AllowAmbiguousCastleSquares: g.cfg.Rules.AllowAmbiguousCastleSquares,
		WithNotation:                true,
		Pool:                        g.pool,
	}
}

// LegalMoves returns every legal move for the side to move, with SAN.
// A finished game has none.
func (g *Game) LegalMoves() []chess.Move {
	if g.EndGame() != nil {
		return nil
	}
	return engine.LegalMoves(g.board, g.moveOptions())
}

// MovesFrom returns the legal moves of the piece on sq if it belongs to the
// side to move.
func (g *Game) MovesFrom(sq chess.Position) []chess.Move {
	if g.EndGame() != nil || g.board.At(sq).Colour != g.board.ToMove() {
		return nil
	}
	return engine.Moves(g.board, sq, g.moveOptions())
}

// Resign ends the game with a win for the opponent of c.
func (g *Game) Resign(c chess.Colour) error {
	if err := g.canCommit(); err != nil {
		return err
	}
	g.finish(&chess.EndGame{Kind: chess.Resigned, Winner: c.Opposite(), Decisive: true, Ply: g.board.Cursor()})
	return nil
}

// DeclareDraw ends the game as an agreed draw.
func (g *Game) DeclareDraw() error {
	if err := g.canCommit(); err != nil {
		return err
	}
	g.finish(&chess.EndGame{Kind: chess.DrawDeclared, Ply: g.board.Cursor()})
	return nil
}

// finish records the end of the game and tells the listener.
func (g *Game) finish(eg *chess.EndGame) {
	g.final = eg
	g.tags[chess.ResultTag] = eg.Result()
	g.log.Info().Stringer("end", eg).Str("result", eg.Result()).Int("ply", eg.Ply+1).Msg("game ended")
	if g.listener != nil {
		g.listener.GameEnded(eg)
	}
}

// EndGame returns how the game ended, or nil while it is in progress. A game
// rewound to before its end reads as in progress.
func (g *Game) EndGame() *chess.EndGame {
	if g.final == nil || g.board.Cursor() < g.final.Ply {
		return nil
	}
	return g.final
}

// Result returns the PGN result token for the displayed position.
func (g *Game) Result() string {
	return g.EndGame().Result()
}

// Back steps back one move. It returns false at the start.
func (g *Game) Back() bool {
	ok := g.board.Back()
	g.logCursor(ok)
	return ok
}

// Forward steps forward one recorded move. It returns false at the end.
func (g *Game) Forward() bool {
	ok := g.board.Forward()
	g.logCursor(ok)
	return ok
}

// SeekStart rewinds to the starting position.
func (g *Game) SeekStart() {
	g.board.SeekStart()
	g.logCursor(true)
}

// SeekEnd replays every recorded move.
func (g *Game) SeekEnd() {
	g.board.SeekEnd()
	g.logCursor(true)
}

func (g *Game) logCursor(moved bool) {
	if moved {
		g.log.Debug().Int("cursor", g.board.Cursor()).Bool("latest", g.board.AtLatest()).Msg("cursor moved")
	}
}

// AtLatest returns true if the latest recorded move is displayed.
func (g *Game) AtLatest() bool {
	return g.board.AtLatest()
}

// Board returns a copy of the displayed position.
func (g *Game) Board() *chess.Board {
	return g.board.Clone()
}

// Moves returns the displayed moves.
func (g *Game) Moves() []chess.Move {
	return g.board.Displayed()
}

// ToMove returns the side to move in the displayed position.
func (g *Game) ToMove() chess.Colour {
	return g.board.ToMove()
}

// FEN returns the displayed position as FEN.
func (g *Game) FEN() string {
	return engine.BoardToFEN(g.board)
}

// Captured returns the pieces of colour c captured so far.
func (g *Game) Captured(c chess.Colour) chess.Material {
	return g.board.Captured(c)
}

// Tag returns the value of a tag.
func (g *Game) Tag(name string) (string, bool) {
	v, ok := g.tags[name]
	return v, ok
}

// SetTag sets a tag.
func (g *Game) SetTag(name, value string) {
	g.tags[name] = value
}

// Tags returns a copy of the tags.
func (g *Game) Tags() map[string]string {
	return maps.Clone(g.tags)
}
