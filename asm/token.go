// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"strconv"
	"strings"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_LABEL      = TokenKind(0) // label
	TOKEN_MNEMONIC   = TokenKind(1) // mnemonic
	TOKEN_DIRECTIVE  = TokenKind(2) // directive
	TOKEN_NUMBER     = TokenKind(3) // number
	TOKEN_IDENTIFIER = TokenKind(4) // identifier
	TOKEN_COMMA      = TokenKind(5) // comma
	TOKEN_COMMENT    = TokenKind(6) // comment
	TOKEN_NEWLINE    = TokenKind(7) // newline
	TOKEN_EOF        = TokenKind(8) // end of input
)

// Token is a single lexical element of assembly source.
type Token struct {
	Kind TokenKind
	Text string // Raw source text.
	Span Span
	Base int // Numeric base inferred for TOKEN_NUMBER.
}

// Name returns the label name of a TOKEN_LABEL, without the colon,
// or the text of any other token.
func (tok Token) Name() string {
	if tok.Kind == TOKEN_LABEL {
		return strings.TrimSuffix(tok.Text, ":")
	}
	return tok.Text
}

// Value parses a TOKEN_NUMBER. Errors wrap strconv.ErrSyntax for
// malformed literals and strconv.ErrRange for overflow.
func (tok Token) Value() (value uint64, err error) {
	base := tok.Base
	if base == 0 {
		base = numberBase(tok.Text)
	}

	digits := tok.Text
	if base != 10 && len(digits) >= 2 {
		digits = digits[2:]
	}
	digits = strings.ReplaceAll(digits, "_", "")
	if tok.Kind != TOKEN_NUMBER || len(digits) == 0 {
		err = &strconv.NumError{Func: "ParseUint", Num: tok.Text, Err: strconv.ErrSyntax}
		return
	}

	return strconv.ParseUint(digits, base, 64)
}

// Malformed is true for a number token that is not a valid literal in its base.
func (tok Token) Malformed() bool {
	if tok.Kind != TOKEN_NUMBER {
		return false
	}
	_, err := tok.Value()
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err == strconv.ErrSyntax
	}
	return false
}

// Describe returns a human readable description of the token.
func (tok Token) Describe() string {
	switch tok.Kind {
	case TOKEN_NEWLINE, TOKEN_EOF:
		return tok.Kind.String()
	case TOKEN_NUMBER:
		if tok.Malformed() {
			return f("malformed number '%v'", tok.Text)
		}
	}
	return f("%v '%v'", tok.Kind, tok.Text)
}

// numberBase infers the base of a numeric literal from its prefix.
func numberBase(text string) int {
	if len(text) >= 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return 16
		case 'b', 'B':
			return 2
		case 'o', 'O':
			return 8
		}
	}
	return 10
}
