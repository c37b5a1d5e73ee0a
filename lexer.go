package remat

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType represents a type of a token.
type tokenType int

// token types.
const (
	tokEOF    tokenType = iota // End of file
	tokIdent                   // Identifier
	tokNumber                  // Number
	tokString                  // String
	tokLBrace                  // Left brace
	tokRBrace                  // Right brace
)

// String returns a readable token type name.
func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	default:
		return "token"
	}
}

// token represents a token of a shader tree file.
type token struct {
	Lit  string    // Literal value of the token
	Type tokenType // Type of the token
	Line int       // Line number of the token
	Col  int       // Column number of the token
}

// eof is returned by cur at the end of input.
const eof rune = -1

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// lexer splits shader tree source into tokens.
type lexer struct {
	src  []byte       // Source, UTF-8
	off  int          // Offset of the current rune
	line int          // Line of the current rune
	col  int          // Runes consumed on the current line
	opt  ParseOptions // Options for the lexer
}

// newLexer creates a new lexer over UTF-8 source.
func newLexer(src []byte, opt ParseOptions) *lexer {
	return &lexer{src: bytes.TrimPrefix(src, utf8BOM), line: 1, opt: opt}
}

// next returns the next token.
func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		return token{}, err
	}

	tok := token{Line: l.line, Col: l.col + 1}
	switch r := l.cur(); {
	case r == eof:
		tok.Type = tokEOF
	case r == '{':
		tok.Type, tok.Lit = tokLBrace, "{"
		l.advance()
	case r == '}':
		tok.Type, tok.Lit = tokRBrace, "}"
		l.advance()
	case r == '"':
		lit, err := l.scanString()
		if err != nil {
			return token{}, err
		}
		tok.Type, tok.Lit = tokString, lit
	case isWordPart(r):
		tok.Type, tok.Lit = tokIdent, l.scanWord()
		// Words starting with a digit or sign are numbers when they parse as one.
		if isNumberStart(rune(tok.Lit[0])) && isNumber(tok.Lit) {
			tok.Type = tokNumber
		}
	default:
		return token{}, l.errorf("unexpected character %q", r)
	}

	return tok, nil
}

// cur returns the current rune, or eof.
func (l *lexer) cur() rune {
	if l.off >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.src[l.off:])
	return r
}

// followedBy reports whether the byte after an ASCII current rune is b.
func (l *lexer) followedBy(b byte) bool {
	return l.off+1 < len(l.src) && l.src[l.off+1] == b
}

// advance consumes the current rune.
func (l *lexer) advance() {
	if l.off >= len(l.src) {
		return
	}
	r, n := utf8.DecodeRune(l.src[l.off:])
	l.off += n
	if r == '\n' {
		l.line++
		l.col = 0
		return
	}
	l.col++
}

// skipSpace skips whitespace, line comments and block comments.
func (l *lexer) skipSpace() error {
	for {
		r := l.cur()
		switch {
		case r == eof:
			return nil
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && !l.opt.DisableComments && l.followedBy('/'):
			for r := l.cur(); r != '\n' && r != eof; r = l.cur() {
				l.advance()
			}
		case r == '/' && !l.opt.DisableComments && l.followedBy('*'):
			line, col := l.line, l.col+1
			l.advance()
			l.advance()
			for !(l.cur() == '*' && l.followedBy('/')) {
				if l.cur() == eof {
					return fmt.Errorf("%w at %d:%d: unterminated comment", ErrLex, line, col)
				}
				l.advance()
			}
			l.advance()
			l.advance()
		default:
			return nil
		}
	}
}

// scanWord reads an identifier or number.
func (l *lexer) scanWord() string {
	start := l.off
	for isWordPart(l.cur()) {
		l.advance()
	}
	return string(l.src[start:l.off])
}

// scanString reads a quoted string. Host paths keep their backslashes;
// only an escaped quote is unescaped.
func (l *lexer) scanString() (string, error) {
	l.advance()
	var b strings.Builder
	for {
		switch r := l.cur(); {
		case r == eof:
			return "", l.errorf("unterminated string")
		case r == '"':
			l.advance()
			return b.String(), nil
		case r == '\\' && l.followedBy('"'):
			l.advance()
		}
		b.WriteRune(l.cur())
		l.advance()
	}
}

// errorf formats a lexical error at the current position.
func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %d:%d: %s", ErrLex, l.line, l.col+1, fmt.Sprintf(format, args...))
}

// isNumberStart checks if a character is a valid start of a number.
func isNumberStart(r rune) bool {
	return unicode.IsDigit(r) || r == '-' || r == '+' || r == '.'
}

// isWordPart checks if a character is a valid part of a word.
func isWordPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '.' || r == '+' || r == '-' || r == ':'
}

// isNumber checks if a word parses as a number.
func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
