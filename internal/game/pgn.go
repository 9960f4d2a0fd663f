package game

import (
	"context"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/parser"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// FromRecord replays a parsed PGN game. A FEN tag supplies the starting
// position. A trailing result that the moves do not explain is recorded as a
// resignation (1-0, 0-1) or an agreed draw (1/2-1/2).
func FromRecord(rec *parser.Record, cfg *config.Config) (*Game, error) {
	var g *Game
	if fen, ok := rec.Tags[chess.FENTag]; ok {
		var err error
		if g, err = NewFromFEN(fen, cfg); err != nil {
			return nil, &errors.GameError{Err: err}
		}
	} else {
		g = New(cfg)
	}
	for name, value := range rec.Tags {
		g.tags[name] = value
	}

	for i, text := range rec.Moves {
		if _, err := g.CommitSAN(text); err != nil {
			return nil, &errors.GameError{Err: err, PlyNum: i + 1, MoveText: text}
		}
	}

	if g.final == nil {
		g.applyResult(rec.Result)
	} else {
		g.tags[chess.ResultTag] = g.final.Result()
	}
	return g, nil
}

// applyResult ends an undecided game according to a PGN result token.
func (g *Game) applyResult(result string) {
	switch result {
	case "1-0":
		_ = g.Resign(chess.Black)
	case "0-1":
		_ = g.Resign(chess.White)
	case "1/2-1/2":
		_ = g.DeclareDraw()
	}
}

// LoadPGN reads every game from r and replays them concurrently on a pool
// bounded by cfg.Workers. Games are returned in input order. A game that
// fails to parse or replay is logged and skipped, unless cfg.Input.StopOnError
// is set, in which case the first failure is returned.
func LoadPGN(ctx context.Context, r io.Reader, cfg *config.Config) ([]*Game, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	records, err := parser.NewParser(r, cfg).ParseAllGames()
	if err != nil {
		return nil, err
	}

	pool := worker.NewPool(worker.WithWorkers(cfg.Workers))
	replayed, err := worker.MapContext(ctx, pool, records, func(_ context.Context, rec *parser.Record) (*Game, error) {
		g, err := FromRecord(rec, cfg)
		if err != nil && !cfg.Input.StopOnError {
			cfg.Logger.Warn().Err(err).Int("line", rec.StartLine).Msg("skipping unplayable game")
			return nil, nil
		}
		return g, err
	})
	if err != nil {
		return nil, err
	}

	games := make([]*Game, 0, len(replayed))
	for _, g := range replayed {
		if g != nil {
			games = append(games, g)
		}
	}
	return games, nil
}
