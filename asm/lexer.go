// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"
	"strings"
	"unicode/utf8"
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// lexer is the scanning state of a single Tokenize call.
type lexer struct {
	source string
	pos    int
	line   int
	column int

	// Set at the start of a statement, until the mnemonic is seen.
	statement bool
}

// Tokenize lazily splits assembly source into tokens. The sequence ends
// after a TOKEN_EOF, or after the first (and only) error.
func Tokenize(source string) iter.Seq2[Token, error] {
	return func(yield func(tok Token, err error) bool) {
		lx := &lexer{source: source, line: 1, column: 1, statement: true}
		for {
			tok, err := lx.next()
			if err != nil {
				yield(tok, err)
				return
			}
			if !yield(tok, nil) || tok.Kind == TOKEN_EOF {
				return
			}
		}
	}
}

// here returns an empty span at the current position.
func (lx *lexer) here() Span {
	return Span{Start: lx.pos, End: lx.pos, Line: lx.line, Column: lx.column}
}

// consume advances over n bytes of source.
func (lx *lexer) consume(n int) {
	for _, r := range lx.source[lx.pos : lx.pos+n] {
		if r == '\n' {
			lx.line++
			lx.column = 1
		} else {
			lx.column++
		}
	}
	lx.pos += n
}

// run returns the length of the run of bytes starting at pos+skip that satisfy ok.
func (lx *lexer) run(skip int, ok func(c byte) bool) (n int) {
	n = skip
	for lx.pos+n < len(lx.source) && ok(lx.source[lx.pos+n]) {
		n++
	}
	return
}

// token consumes n bytes into a token of the given kind.
func (lx *lexer) token(kind TokenKind, n int) (tok Token) {
	span := lx.here()
	span.End += n
	tok = Token{Kind: kind, Text: lx.source[span.Start:span.End], Span: span}
	lx.consume(n)
	return
}

// next scans the next token.
func (lx *lexer) next() (tok Token, err error) {
	for lx.pos < len(lx.source) {
		c := lx.source[lx.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		lx.consume(1)
	}

	if lx.pos >= len(lx.source) {
		tok = Token{Kind: TOKEN_EOF, Span: lx.here()}
		return
	}

	rest := lx.source[lx.pos:]
	c := rest[0]

	switch {
	case c == '\n':
		tok = lx.token(TOKEN_NEWLINE, 1)
		lx.statement = true
	case c == ',':
		tok = lx.token(TOKEN_COMMA, 1)
	case strings.HasPrefix(rest, "//"):
		n := strings.IndexByte(rest, '\n')
		if n < 0 {
			n = len(rest)
		}
		tok = lx.token(TOKEN_COMMENT, n)
	case isIdentStart(c):
		n := lx.run(1, isIdentPart)
		switch {
		case lx.pos+n < len(lx.source) && lx.source[lx.pos+n] == ':':
			tok = lx.token(TOKEN_LABEL, n+1)
		case lx.statement:
			tok = lx.token(TOKEN_MNEMONIC, n)
			lx.statement = false
		default:
			tok = lx.token(TOKEN_IDENTIFIER, n)
		}
	case c == '.' && len(rest) > 1 && isIdentStart(rest[1]):
		tok = lx.token(TOKEN_DIRECTIVE, lx.run(2, isIdentPart))
		lx.statement = false
	case isDigit(c):
		tok = lx.token(TOKEN_NUMBER, lx.run(1, isIdentPart))
		tok.Base = numberBase(tok.Text)
		lx.statement = false
	default:
		r, size := utf8.DecodeRuneInString(rest)
		span := lx.here()
		span.End += size
		err = &ErrUnexpectedCharacter{Span: span, Char: r}
	}

	return
}
