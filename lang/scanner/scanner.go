// Package scanner implements the lexical scanner that turns Lox source text
// into a flat sequence of tokens.
//
// The scanner is a peripheral component of the interpreter: the grammar and
// runtime semantics live in lang/parser, lang/resolver and lang/interp. This
// package only needs to produce the token stream those packages consume.
package scanner

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"
	"strconv"

	"github.com/mna/lox/lang/token"
)

// Error and ErrorList are aliases for the standard library's go/scanner
// error types, reused here as a ready-made position-sorted error
// aggregator: the same trick this codebase's ancestor used in its own
// lexer, so multiple scan errors in one source file can be reported
// together instead of aborting on the first one.
type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// Scan tokenizes src (named filename for error messages) and returns the
// resulting tokens along with any scan errors encountered. Scanning never
// stops early: on an illegal character or an unterminated string, the error
// is recorded and scanning resumes at the next character, so a single run
// can report more than one error. The returned error, when non-nil, is
// always an ErrorList.
func Scan(filename string, src []byte) ([]token.Token, error) {
	var s Scanner
	var errs ErrorList
	s.Init(filename, src, errs.Add)

	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	errs.Sort()
	return toks, errs.Err()
}

// Scanner tokenizes a single source file.
type Scanner struct {
	filename string
	src      []byte
	err      func(pos gotoken.Position, msg string)

	start   int // offset of the start of the token being scanned
	current int // offset of the next unread byte
	line    int
}

// Init prepares the scanner to tokenize src. errHandler is invoked for every
// scan error encountered (unterminated string, unexpected character).
func (s *Scanner) Init(filename string, src []byte, errHandler func(gotoken.Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler
	s.start = 0
	s.current = 0
	s.line = 1
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) errorf(format string, args ...interface{}) {
	s.err(gotoken.Position{Filename: s.filename, Line: s.line}, fmt.Sprintf(format, args...))
}

func (s *Scanner) make(kind token.Kind, literal interface{}) token.Token {
	return token.Token{
		Kind:    kind,
		Lexeme:  string(s.src[s.start:s.current]),
		Literal: literal,
		Line:    s.line,
	}
}

// Next scans and returns the next token. Once it returns a token.EOF token,
// every subsequent call keeps returning token.EOF.
func (s *Scanner) Next() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.current
	if s.atEnd() {
		return s.make(token.EOF, nil)
	}

	c := s.advance()
	switch {
	case isDigit(c):
		return s.number()
	case isAlpha(c):
		return s.identifier()
	}

	switch c {
	case '(':
		return s.make(token.LPAREN, nil)
	case ')':
		return s.make(token.RPAREN, nil)
	case '{':
		return s.make(token.LBRACE, nil)
	case '}':
		return s.make(token.RBRACE, nil)
	case ',':
		return s.make(token.COMMA, nil)
	case '.':
		return s.make(token.DOT, nil)
	case '-':
		return s.make(token.MINUS, nil)
	case '+':
		return s.make(token.PLUS, nil)
	case ';':
		return s.make(token.SEMI, nil)
	case '*':
		return s.make(token.STAR, nil)
	case '%':
		return s.make(token.PERCENT, nil)
	case '/':
		return s.make(token.SLASH, nil)
	case '!':
		if s.match('=') {
			return s.make(token.BANG_EQ, nil)
		}
		return s.make(token.BANG, nil)
	case '=':
		if s.match('=') {
			return s.make(token.EQ_EQ, nil)
		}
		return s.make(token.EQ, nil)
	case '<':
		if s.match('=') {
			return s.make(token.LT_EQ, nil)
		}
		return s.make(token.LT, nil)
	case '>':
		if s.match('=') {
			return s.make(token.GT_EQ, nil)
		}
		return s.make(token.GT, nil)
	case '"':
		return s.string()
	}

	s.errorf("unexpected character: %q", c)
	return s.Next()
}

// skipWhitespaceAndComments advances past spaces, tabs, carriage returns,
// newlines (tracking the line counter) and "//" line comments.
func (s *Scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.current++
		case '\n':
			s.line++
			s.current++
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.current++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// string scans a "..."-delimited string literal. Lox strings support no
// escape sequences and may span multiple lines.
func (s *Scanner) string() token.Token {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}
	if s.atEnd() {
		s.errorf("unterminated string")
		return s.make(token.STRING, "")
	}
	s.current++ // closing quote
	value := string(s.src[s.start+1 : s.current-1])
	return s.make(token.STRING, value)
}

// number scans a decimal literal with an optional fractional part. A
// trailing or leading dot with no digits on the other side is not part of
// the number ("1." and ".5" are not accepted as NUMBER literals).
func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++ // consume '.'
		for isDigit(s.peek()) {
			s.current++
		}
	}
	lexeme := string(s.src[s.start:s.current])
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.errorf("invalid number literal: %s", lexeme)
		v = 0
	}
	return s.make(token.NUMBER, v)
}

func (s *Scanner) identifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.current++
	}
	text := string(s.src[s.start:s.current])
	if kind, ok := token.Keywords[text]; ok {
		return s.make(kind, nil)
	}
	return s.make(token.IDENT, nil)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
