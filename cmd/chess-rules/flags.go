// flags.go - Command-line flag definitions and configuration
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// options holds the parsed command line.
type options struct {
	// Position mode
	fen   string
	moves string
	legal bool

	// Output options
	jsonOutput    bool
	sevenTagOnly  bool
	noTags        bool
	noResults     bool
	noChecks      bool
	noMoveNumbers bool
	lineLength    int

	// Input options
	latin1 bool
	strict bool

	// Rules
	repetition       bool
	fifty            bool
	rookSquareCastle bool

	// Other options
	workers   int
	verbosity int
	quiet     bool
	version   bool

	files []string
}

// positionMode reports whether a single position is being examined instead
// of PGN input.
func (o *options) positionMode() bool {
	return o.fen != "" || o.moves != "" || o.legal
}

// newFlagSet binds every flag to opts.
func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)

	// Position mode
	fs.StringVar(&opts.fen, "fen", "", "Starting position in FEN (default: standard start)")
	fs.StringVar(&opts.moves, "moves", "", "Space separated SAN moves to play from the starting position")
	fs.BoolVar(&opts.legal, "legal", false, "List the legal moves of the final position")

	// Output options
	fs.BoolVar(&opts.jsonOutput, "J", false, "Output in JSON format")
	fs.BoolVar(&opts.sevenTagOnly, "7", false, "Output only the seven tag roster")
	fs.BoolVar(&opts.noTags, "notags", false, "Don't output any tags")
	fs.BoolVar(&opts.noResults, "noresults", false, "Don't output results")
	fs.BoolVar(&opts.noChecks, "nochecks", false, "Don't output check and mate symbols")
	fs.BoolVar(&opts.noMoveNumbers, "nomovenumbers", false, "Don't output move numbers")
	fs.IntVar(&opts.lineLength, "w", 80, "Maximum line length")

	// Input options
	fs.BoolVar(&opts.latin1, "latin1", false, "Decode input as ISO 8859-1")
	fs.BoolVar(&opts.strict, "strict", false, "Stop at the first malformed or unplayable game")

	// Rules
	fs.BoolVar(&opts.repetition, "repetition", false, "Draw on threefold repetition")
	fs.BoolVar(&opts.fifty, "fifty", false, "Draw by the fifty-move rule")
	fs.BoolVar(&opts.rookSquareCastle, "rookcastle", false, "List castling onto the rook's square among legal moves")

	// Other options
	fs.IntVar(&opts.workers, "workers", 0, "Number of move generation workers (0 = auto-detect based on CPU cores)")
	fs.IntVar(&opts.verbosity, "v", 0, "Log verbosity: 0 warnings, 1 info, 2 debug")
	fs.BoolVar(&opts.quiet, "s", false, "Silent mode (no game count)")
	fs.BoolVar(&opts.version, "version", false, "Show version")

	// Note: -A is expanded before parsing in expandArgsFile
	_ = fs.String("A", "", "File containing command-line arguments (one per line, # for comments)")

	return fs
}

// parseFlags expands an -A arguments file and parses args.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	args, err := expandArgsFile(args)
	if err != nil {
		return nil, err
	}

	opts := &options{}
	fs := newFlagSet(opts)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()
	return opts, nil
}

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config, opts *options) {
	applyRuleFlags(cfg, opts)
	applyInputFlags(cfg, opts)
	applyOutputFlags(cfg, opts)

	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
}

// applyRuleFlags configures the optional end-of-game rules.
func applyRuleFlags(cfg *config.Config, opts *options) {
	cfg.Rules.DetectRepetition = opts.repetition
	cfg.Rules.DetectFiftyMove = opts.fifty
	cfg.Rules.AllowAmbiguousCastleSquares = opts.rookSquareCastle
}

// applyInputFlags configures PGN reading.
func applyInputFlags(cfg *config.Config, opts *options) {
	cfg.Input.Latin1 = opts.latin1
	cfg.Input.StopOnError = opts.strict
}

// applyOutputFlags configures tag and move text output.
func applyOutputFlags(cfg *config.Config, opts *options) {
	switch {
	case opts.noTags:
		cfg.Output.TagFormat = config.NoTags
	case opts.sevenTagOnly:
		cfg.Output.TagFormat = config.SevenTagRoster
	}
	cfg.Output.KeepResults = !opts.noResults
	cfg.Output.KeepChecks = !opts.noChecks
	cfg.Output.KeepMoveNumbers = !opts.noMoveNumbers
	if opts.lineLength >= 0 {
		cfg.Output.MaxLineLength = uint(opts.lineLength)
	}
}

// expandArgsFile replaces the first -A flag and its value with the arguments
// read from that file.
func expandArgsFile(args []string) ([]string, error) {
	for i, arg := range args {
		var path string
		next := i + 1

		switch {
		case arg == "-A" || arg == "--A":
			if next >= len(args) {
				return nil, fmt.Errorf("flag needs an argument: -A")
			}
			path = args[next]
			next++
		case strings.HasPrefix(arg, "-A="), strings.HasPrefix(arg, "--A="):
			_, path, _ = strings.Cut(arg, "=")
		case arg == "--":
			return args, nil
		default:
			continue
		}

		loaded, err := loadArgsFile(path)
		if err != nil {
			return nil, err
		}
		return slices.Concat(args[:i], loaded, args[next:]), nil
	}
	return args, nil
}

// loadArgsFile reads command-line arguments from a file. Blank lines and
// lines starting with # are ignored.
func loadArgsFile(path string) ([]string, error) {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, fmt.Errorf("opening args file: %w", err)
	}
	defer file.Close()

	var args []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, splitArgsLine(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading args file: %w", err)
	}
	return args, nil
}

// splitArgsLine splits a line on spaces and tabs, keeping single or double
// quoted text together.
func splitArgsLine(line string) []string {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}
