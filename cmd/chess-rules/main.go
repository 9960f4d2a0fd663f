// chess-rules validates chess games given as FEN and SAN moves or as PGN,
// and rewrites them as PGN or JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

const (
	programName    = "chess-rules"
	programVersion = "0.1.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code: 0 on success,
// 1 when a game or input fails, 2 for usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s version %s\n", programName, programVersion)
		return 0
	}

	cfg := config.NewConfig()
	applyFlags(cfg, opts)
	cfg.Logger = newLogger(stderr, opts.verbosity)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.positionMode() {
		err = runPosition(stdout, opts, cfg)
	} else {
		err = runPGN(context.Background(), stdin, stdout, stderr, opts, cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger writes human readable log lines to w.
func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// runPosition plays -moves from -fen and reports the resulting position.
func runPosition(w io.Writer, opts *options, cfg *config.Config) error {
	var g *game.Game
	if opts.fen == "" {
		g = game.New(cfg)
	} else {
		var err error
		if g, err = game.NewFromFEN(opts.fen, cfg); err != nil {
			return err
		}
	}

	for i, text := range strings.Fields(opts.moves) {
		if _, err := g.CommitSAN(text); err != nil {
			return &chesserrors.GameError{Err: err, PlyNum: i + 1, MoveText: text}
		}
	}

	if opts.jsonOutput {
		return output.NewJSONWriterSingle(w).WriteGame(g)
	}
	return writePosition(w, g, opts.legal)
}

// writePosition prints a short report of the game's displayed position.
func writePosition(w io.Writer, g *game.Game, legal bool) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FEN: %s\n", g.FEN())
	fmt.Fprintf(&sb, "ToMove: %s\n", g.ToMove())
	fmt.Fprintf(&sb, "Result: %s\n", g.Result())
	if eg := g.EndGame(); eg != nil {
		fmt.Fprintf(&sb, "EndGame: %s\n", eg)
	}
	if legal {
		fmt.Fprintf(&sb, "Legal: %s\n", strings.Join(sanList(g.LegalMoves()), " "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func sanList(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.SAN
	}
	return out
}

// runPGN reads every input file, or stdin, and writes the playable games.
func runPGN(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, opts *options, cfg *config.Config) error {
	var gw output.GameWriter
	if opts.jsonOutput {
		gw = output.NewJSONWriter(stdout)
	} else {
		gw = output.NewPGNWriter(stdout, cfg)
	}

	total, failed := 0, 0
	process := func(r io.Reader, name string) error {
		games, err := game.LoadPGN(ctx, r, cfg)
		for _, g := range games {
			if werr := gw.WriteGame(g); werr != nil {
				return werr
			}
		}
		total += len(games)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cfg.Logger.Info().Str("input", name).Int("games", len(games)).Msg("input read")
		return nil
	}

	if len(opts.files) == 0 {
		if err := process(stdin, "stdin"); err != nil {
			return err
		}
	}
	for _, filename := range opts.files {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			cfg.Logger.Error().Err(err).Str("input", filename).Msg("cannot open input")
			failed++
			continue
		}
		err = process(file, filename)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			return err
		}
	}

	if err := gw.Close(); err != nil {
		return err
	}
	if !opts.quiet {
		fmt.Fprintf(stderr, "%d game(s) read.\n", total)
	}
	if failed > 0 {
		return fmt.Errorf("%d input file(s) could not be opened", failed)
	}
	return nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Usage: %s [options] [pgn-files...]\n", programName)
	fmt.Fprintf(w, "       %s [-fen FEN] [-moves \"e4 e5 ...\"] [-legal]\n\n", programName)
	fmt.Fprintf(w, "Validates chess games and rewrites them as PGN or JSON.\n")
	fmt.Fprintf(w, "With -fen, -moves or -legal a single position is reported instead.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
}
