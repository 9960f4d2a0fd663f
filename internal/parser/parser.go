package parser

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Record is one game as read from PGN: its tags, the main-line move tokens
// and the terminating result. Comments, NAGs and variations are discarded.
type Record struct {
	Tags   map[string]string
	Moves  []string
	Result string // Empty if the game text had no result token

	// StartLine is the input line the game began on.
	StartLine int
}

// Parser parses PGN input into Records.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	cfg          *config.Config
	log          zerolog.Logger
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r, cfg),
		cfg:   cfg,
		log:   cfg.Logger,
	}
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// fail builds a ParseError located at the current token.
func (p *Parser) fail(err error, expected string) error {
	return &errors.ParseError{
		Err:      err,
		Line:     p.currentToken.Line,
		Column:   p.currentToken.Column,
		Expected: expected,
		Got:      p.describe(p.currentToken),
	}
}

// describe names a token for error messages.
func (p *Parser) describe(t *Token) string {
	if t.Text != "" {
		return fmt.Sprintf("%s %q", t.Type, t.Text)
	}
	return t.Type.String()
}

// ParseGame parses a single game from the input.
// Returns nil, nil if no more games are available. After an error the parser
// has skipped to the end of the broken game, so parsing may continue.
func (p *Parser) ParseGame() (*Record, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	p.lexer.RestartForNewGame()
	rec := &Record{
		Tags:      make(map[string]string),
		StartLine: p.currentToken.Line,
	}

	if err := p.parseOptTagList(rec); err != nil {
		p.recover()
		return nil, err
	}
	if err := p.parseMoveList(rec); err != nil {
		p.recover()
		return nil, err
	}
	rec.Result = p.parseResult()

	if rec.Result == "" && len(rec.Moves) == 0 && len(rec.Tags) == 0 {
		return nil, nil
	}
	return rec, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult:
			return
		case ErrorToken:
			p.log.Warn().Int("line", p.currentToken.Line).Str("error", p.currentToken.Text).Msg("skipping input between games")
		}
		p.nextToken()
	}
}

// recover skips the rest of a broken game: up to and including its result,
// or up to the next tag section.
func (p *Parser) recover() {
	inMoves := false
	for {
		switch p.currentToken.Type {
		case EOFToken:
			return
		case TagToken:
			if inMoves {
				return
			}
		case TerminatingResult:
			if p.lexer.RAVLevel() == 0 {
				p.nextToken()
				return
			}
		case MoveToken, MoveNumber:
			inMoves = true
		}
		p.nextToken()
	}
}

// parseOptTagList parses zero or more tag pairs.
func (p *Parser) parseOptTagList(rec *Record) error {
	for p.currentToken.Type == TagToken {
		name := p.currentToken.Text
		p.nextToken()

		if p.currentToken.Type != StringToken {
			return p.fail(fmt.Errorf("tag %s: %w", name, errors.ErrParseFailure), "tag string")
		}
		rec.Tags[name] = p.currentToken.Text
		p.nextToken()
		p.skipComments()
	}
	return nil
}

// skipComments discards comment tokens.
func (p *Parser) skipComments() {
	for p.currentToken.Type == CommentToken {
		p.nextToken()
	}
}

// parseMoveList collects main-line move tokens until a result, a new tag
// section or the end of input.
func (p *Parser) parseMoveList(rec *Record) error {
	for {
		switch p.currentToken.Type {
		case MoveToken:
			text := p.currentToken.Text
			if _, err := DecodeSAN(text); err != nil {
				return p.fail(fmt.Errorf("%w: %w", errors.ErrParseFailure, err), "move")
			}
			rec.Moves = append(rec.Moves, text)

		case CheckSymbol:
			if len(rec.Moves) == 0 {
				return p.fail(errors.ErrParseFailure, "move")
			}
			rec.Moves[len(rec.Moves)-1] += p.currentToken.Text

		case MoveNumber, NAGToken, CommentToken:
			// Discarded

		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
			continue

		case RAVEnd:
			return p.fail(errors.ErrParseFailure, "move")

		case ErrorToken:
			return p.fail(errors.ErrParseFailure, "move")

		case StringToken:
			return p.fail(errors.ErrParseFailure, "tag name")

		default:
			// TerminatingResult, TagToken, EOFToken
			return nil
		}
		p.nextToken()
	}
}

// skipVariation discards a parenthesised variation, including nested ones.
// The current token is the opening parenthesis.
func (p *Parser) skipVariation() error {
	depth := 0
	for {
		switch p.currentToken.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
			if depth == 0 {
				p.nextToken()
				return nil
			}
		case EOFToken, TagToken:
			return p.fail(errors.ErrParseFailure, "')' to close variation")
		case ErrorToken:
			return p.fail(errors.ErrParseFailure, "variation move")
		}
		p.nextToken()
	}
}

// parseResult parses a game result.
func (p *Parser) parseResult() string {
	if p.currentToken.Type != TerminatingResult {
		return ""
	}
	result := p.currentToken.Text
	p.nextToken()
	return result
}

// ParseAllGames parses all games from the input. Broken games are logged and
// skipped unless cfg.Input.StopOnError is set.
func (p *Parser) ParseAllGames() ([]*Record, error) {
	var games []*Record

	for {
		rec, err := p.ParseGame()
		if err != nil {
			if p.cfg.Input.StopOnError {
				return games, err
			}
			p.log.Warn().Err(err).Int("game", len(games)+1).Msg("skipping malformed game")
			continue
		}
		if rec == nil {
			if p.currentToken.Type == EOFToken {
				break
			}
			continue
		}
		games = append(games, rec)
	}

	return games, nil
}
