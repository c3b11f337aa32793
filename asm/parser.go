// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"
	"slices"

	"github.com/ezrec/nand7400/internal"
)

// Token kinds valid at each position of a statement.
var (
	expectStart     = []TokenKind{TOKEN_LABEL, TOKEN_MNEMONIC, TOKEN_DIRECTIVE, TOKEN_COMMENT, TOKEN_NEWLINE, TOKEN_EOF}
	expectLabelled  = []TokenKind{TOKEN_LABEL, TOKEN_MNEMONIC, TOKEN_DIRECTIVE, TOKEN_COMMENT, TOKEN_NEWLINE}
	expectOperands  = []TokenKind{TOKEN_NUMBER, TOKEN_IDENTIFIER, TOKEN_COMMENT, TOKEN_NEWLINE, TOKEN_EOF}
	expectSeparator = []TokenKind{TOKEN_COMMA, TOKEN_COMMENT, TOKEN_NEWLINE, TOKEN_EOF}
	expectOperand   = []TokenKind{TOKEN_NUMBER, TOKEN_IDENTIFIER}
)

// parser is the state of a single Parse call.
type parser struct {
	tokens *internal.Peeker[Token, error]
	last   Token // Last consumed token.
}

// Parse reads statements from a token sequence, stopping at the first error.
// Parsing knows nothing of the opcode table: only the shape of each
// statement is checked.
func Parse(tokens iter.Seq2[Token, error]) (statements []Statement, err error) {
	p := &parser{tokens: internal.NewPeeker(tokens)}
	defer p.tokens.Stop()

	for {
		var stmt *Statement
		var done bool
		stmt, done, err = p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, *stmt)
		}
		if done {
			return
		}
	}
}

// peek returns the next token without consuming it. A sequence that ends
// without a TOKEN_EOF is treated as if it had one.
func (p *parser) peek() (tok Token, err error) {
	tok, err, ok := p.tokens.Peek()
	if !ok {
		span := p.last.Span
		span.Start = span.End
		tok = Token{Kind: TOKEN_EOF, Span: span}
	}
	return
}

// advance consumes the peeked token.
func (p *parser) advance() (tok Token) {
	tok, _ = p.peek()
	p.tokens.Next()
	p.last = tok
	return
}

func (p *parser) unexpected(tok Token, expected []TokenKind) error {
	return &ErrUnexpected{Span: tok.Span, Found: tok, Expected: slices.Clone(expected)}
}

func (p *parser) endOfInput(expected []TokenKind) error {
	return &ErrUnexpectedEndOfInput{Span: p.last.Span, Expected: slices.Clone(expected)}
}

// statement parses up to the end of the next line that holds an instruction.
// A nil statement is returned for blank lines and at the end of input.
func (p *parser) statement() (stmt *Statement, done bool, err error) {
	var labels []LabelDef
	var tok Token

	for stmt == nil {
		tok, err = p.peek()
		if err != nil {
			return
		}

		switch tok.Kind {
		case TOKEN_LABEL:
			p.advance()
			span := tok.Span
			span.End--
			labels = append(labels, LabelDef{Name: tok.Name(), Span: span})
		case TOKEN_COMMENT:
			p.advance()
		case TOKEN_NEWLINE:
			p.advance()
			if len(labels) == 0 {
				return
			}
		case TOKEN_EOF:
			if len(labels) != 0 {
				err = p.endOfInput(expectLabelled)
				return
			}
			done = true
			return
		case TOKEN_MNEMONIC, TOKEN_DIRECTIVE:
			p.advance()
			stmt = &Statement{
				Labels:       labels,
				Mnemonic:     tok.Text,
				MnemonicSpan: tok.Span,
				Directive:    tok.Kind == TOKEN_DIRECTIVE,
				Span:         tok.Span,
			}
			if len(labels) != 0 {
				stmt.Span = labels[0].Span.To(tok.Span)
			}
		default:
			expected := expectStart
			if len(labels) != 0 {
				expected = expectLabelled
			}
			err = p.unexpected(tok, expected)
			return
		}
	}

	err = p.operands(stmt)
	if err != nil {
		return nil, false, err
	}

	err = p.terminator()
	if err != nil {
		return nil, false, err
	}

	return
}

// operand parses a single operand.
func (p *parser) operand(stmt *Statement) (err error) {
	tok, err := p.peek()
	if err != nil {
		return
	}

	switch {
	case tok.Kind == TOKEN_EOF:
		err = p.endOfInput(expectOperand)
	case tok.Kind == TOKEN_IDENTIFIER, tok.Kind == TOKEN_NUMBER && !tok.Malformed():
		p.advance()
		stmt.Operands = append(stmt.Operands, tok)
		stmt.Span = stmt.Span.To(tok.Span)
	default:
		err = p.unexpected(tok, expectOperand)
	}

	return
}

// operands parses the optional, comma separated, operand list.
func (p *parser) operands(stmt *Statement) (err error) {
	tok, err := p.peek()
	if err != nil {
		return
	}

	switch tok.Kind {
	case TOKEN_COMMENT, TOKEN_NEWLINE, TOKEN_EOF:
		return
	case TOKEN_NUMBER, TOKEN_IDENTIFIER:
	default:
		return p.unexpected(tok, expectOperands)
	}

	for {
		err = p.operand(stmt)
		if err != nil {
			return
		}

		tok, err = p.peek()
		if err != nil {
			return
		}

		switch tok.Kind {
		case TOKEN_COMMA:
			p.advance()
		case TOKEN_COMMENT, TOKEN_NEWLINE, TOKEN_EOF:
			return
		default:
			return p.unexpected(tok, expectSeparator)
		}
	}
}

// terminator consumes an optional comment and the end of the line.
func (p *parser) terminator() (err error) {
	tok, err := p.peek()
	if err != nil {
		return
	}

	if tok.Kind == TOKEN_COMMENT {
		p.advance()
		tok, err = p.peek()
		if err != nil {
			return
		}
	}

	switch tok.Kind {
	case TOKEN_NEWLINE:
		p.advance()
	case TOKEN_EOF:
	default:
		err = p.unexpected(tok, []TokenKind{TOKEN_NEWLINE, TOKEN_EOF})
	}

	return
}
