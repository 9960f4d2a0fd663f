package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// Lexer tokenizes PGN input.
type Lexer struct {
	reader   *bufio.Reader
	line     string
	pos      int
	lineNum  int
	ravLevel int
	eof      bool
	log      zerolog.Logger
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	// Initialize all to error
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	// Whitespace
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = Whitespace
	}

	// Brackets and quotes
	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment

	// Special symbols
	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab['*'] = Star

	// Digits
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}

	// Alpha characters (upper and lowercase)
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	chTab['_'] = Alpha

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	// Files (a-h) and ranks (1-8)
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}

	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'P'} {
		moveChars[c] = true
	}

	// Capture/separators, promotion, castling
	for _, c := range []byte{'x', '-', '=', 'O'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
// If cfg is nil, a default config is created. With cfg.Input.Latin1 set the
// input is decoded from ISO 8859-1.
func NewLexer(r io.Reader, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cfg.Input.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	return &Lexer{
		reader: bufio.NewReader(r),
		log:    cfg.Logger,
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return &Token{Type: EOFToken, Line: l.lineNum}
			}
			continue
		}
		column := l.pos + 1
		token := l.getNextSymbol()
		if token.Type != NoToken {
			token.Line = l.lineNum
			token.Column = column
			return token
		}
	}
}

// errorToken creates a token describing malformed input.
func (l *Lexer) errorToken(what string) *Token {
	return &Token{Type: ErrorToken, Text: what}
}

// getNextSymbol identifies the next symbol on the current line.
func (l *Lexer) getNextSymbol() *Token {
	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.log.Warn().Int("line", l.lineNum).Msg("unmatched comment end")
		return &Token{Type: NoToken}

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}

	case Annotate:
		// Gather annotation symbols (!, ?, !!, ??, !?, ?!)
		for l.pos < len(l.line) && chTab[l.currentChar()] == Annotate {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[symbolStart:l.pos])}

	case CheckSymbol:
		return &Token{Type: CheckSymbol, Text: string(ch)}

	case Dot:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return &Token{Type: NoToken}

	case RAVStart:
		l.ravLevel++
		return &Token{Type: RAVStart}

	case RAVEnd:
		if l.ravLevel > 0 {
			l.ravLevel--
			return &Token{Type: RAVEnd}
		}
		return l.errorToken("unmatched ')'")

	case Percent:
		// Escape line: skip the rest
		l.pos = len(l.line)
		return &Token{Type: NoToken}

	case Escape:
		if l.pos < len(l.line) {
			l.advance()
		}
		return &Token{Type: NoToken}

	case Alpha:
		return l.gatherAlpha(ch, symbolStart)

	case Digit:
		return l.gatherNumeric(ch)

	case Star:
		return &Token{Type: TerminatingResult, Text: "*"}

	default:
		l.log.Warn().Int("line", l.lineNum).Str("char", string(ch)).Msg("unknown character skipped")
		for l.pos < len(l.line) && chTab[l.currentChar()] == ErrorToken {
			l.advance()
		}
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if chTab[ch] == Alpha || chTab[ch] == Digit {
			l.advance()
		} else {
			break
		}
	}

	if l.pos > start {
		return &Token{Type: TagToken, Text: l.line[start:l.pos]}
	}
	return l.errorToken("missing tag name")
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '"':
			return &Token{Type: StringToken, Text: sb.String()}
		default:
			sb.WriteByte(ch)
		}
	}

	return l.errorToken("missing closing quote")
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder

	for {
		if idx := strings.IndexByte(l.line[l.pos:], '}'); idx >= 0 {
			sb.WriteString(l.line[l.pos : l.pos+idx])
			l.pos += idx + 1
			return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String())}
		}
		sb.WriteString(l.line[l.pos:])
		l.pos = len(l.line)
		if !l.readLine() {
			return l.errorToken("missing end of comment")
		}
	}
}

// gatherAlpha handles alpha characters (potential moves).
func (l *Lexer) gatherAlpha(ch byte, symbolStart int) *Token {
	// An "e.p." suffix after an en passant capture carries no information.
	if strings.HasPrefix(l.line[symbolStart:], "e.p.") {
		l.pos = symbolStart + len("e.p.")
		return &Token{Type: NoToken}
	}

	if !moveChars[ch] {
		for l.pos < len(l.line) && chTab[l.currentChar()] == Alpha {
			l.advance()
		}
		return l.errorToken("unknown move text " + l.line[symbolStart:l.pos])
	}

	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}
	return &Token{Type: MoveToken, Text: l.line[symbolStart:l.pos]}
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(initialDigit byte) *Token {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		// Could be 0-1 (result) or 0-0 / 0-0-0 (castling)
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1"}
		}
		if strings.HasPrefix(remaining, "-0-0") {
			l.pos += 4
			return &Token{Type: MoveToken, Text: "O-O-O"}
		}
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: MoveToken, Text: "O-O"}
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0"}
		}
		if strings.HasPrefix(remaining, "/2-1/2") {
			l.pos += 6
			return &Token{Type: TerminatingResult, Text: "1/2-1/2"}
		}
	}

	return l.gatherMoveNumber()
}

// gatherMoveNumber parses a move number token.
func (l *Lexer) gatherMoveNumber() *Token {
	start := l.pos - 1
	for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
		l.advance()
	}
	text := l.line[start:l.pos]

	// Skip trailing dots
	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.advance()
	}
	return &Token{Type: MoveNumber, Text: text}
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}

// RAVLevel returns the current RAV nesting level.
func (l *Lexer) RAVLevel() int {
	return l.ravLevel
}

// RestartForNewGame resets lexer state for a new game.
func (l *Lexer) RestartForNewGame() {
	l.ravLevel = 0
}
