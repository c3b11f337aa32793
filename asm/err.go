package asm

import (
	"strings"

	"github.com/ezrec/nand7400/config"
	"github.com/ezrec/nand7400/translate"
)

var f = translate.From

// Located is an assembler error that can be placed in the source text.
type Located interface {
	error
	Location() Span
}

// describeKinds lists token kinds as "a, b or c".
func describeKinds(kinds []TokenKind) string {
	names := make([]string, len(kinds))
	for n, kind := range kinds {
		names[n] = kind.String()
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return f("%v or %v", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}

// ErrUnexpectedCharacter is a character the lexer does not recognize.
type ErrUnexpectedCharacter struct {
	Span Span
	Char rune
}

func (err *ErrUnexpectedCharacter) Error() string {
	return f("%v: unexpected character %q", err.Span, err.Char)
}

func (err *ErrUnexpectedCharacter) Location() Span { return err.Span }

// ErrUnexpected is a token found where the grammar does not allow it.
type ErrUnexpected struct {
	Span     Span
	Found    Token
	Expected []TokenKind // Every token kind valid at this position.
}

func (err *ErrUnexpected) Error() string {
	return f("%v: expected %v; found %v", err.Span, describeKinds(err.Expected), err.Found.Describe())
}

func (err *ErrUnexpected) Location() Span { return err.Span }

// ErrUnexpectedEndOfInput is the source ending in the middle of a statement.
// Span is the last token consumed.
type ErrUnexpectedEndOfInput struct {
	Span     Span
	Expected []TokenKind
}

func (err *ErrUnexpectedEndOfInput) Error() string {
	return f("%v: unexpected end of input; expected %v", err.Span, describeKinds(err.Expected))
}

func (err *ErrUnexpectedEndOfInput) Location() Span { return err.Span }

// ErrOpcodeDoesNotExist is a mnemonic that is not in the configuration.
type ErrOpcodeDoesNotExist struct {
	Span     Span
	Mnemonic string
}

func (err *ErrOpcodeDoesNotExist) Error() string {
	return f("%v: opcode '%v' does not exist", err.Span, err.Mnemonic)
}

func (err *ErrOpcodeDoesNotExist) Location() Span { return err.Span }

// ErrWrongOperandCount is a statement with the wrong number of operands.
type ErrWrongOperandCount struct {
	Span     Span
	Mnemonic string
	Expected int
	Found    int
	AtLeast  bool // Expected is a minimum.
}

func (err *ErrWrongOperandCount) Error() string {
	if err.AtLeast {
		return f("%v: '%v' expects at least %d operands, found %d", err.Span, err.Mnemonic, err.Expected, err.Found)
	}
	return f("%v: '%v' expects %d operands, found %d", err.Span, err.Mnemonic, err.Expected, err.Found)
}

func (err *ErrWrongOperandCount) Location() Span { return err.Span }

// ErrInvalidOperand is an operand that does not fit the kind expected at its position.
type ErrInvalidOperand struct {
	Span     Span
	Text     string
	Expected config.OperandKind
}

func (err *ErrInvalidOperand) Error() string {
	return f("%v: '%v' is not a valid %v operand", err.Span, err.Text, err.Expected)
}

func (err *ErrInvalidOperand) Location() Span { return err.Span }

// ErrUndefinedLabel is a reference to a label that is never defined.
type ErrUndefinedLabel struct {
	Span Span
	Name string
}

func (err *ErrUndefinedLabel) Error() string {
	return f("%v: label '%v' does not exist", err.Span, err.Name)
}

func (err *ErrUndefinedLabel) Location() Span { return err.Span }

// ErrDuplicateLabel is a label defined more than once.
type ErrDuplicateLabel struct {
	Span     Span
	Name     string
	Previous Span
}

func (err *ErrDuplicateLabel) Error() string {
	return f("%v: label '%v' already defined at %v", err.Span, err.Name, err.Previous)
}

func (err *ErrDuplicateLabel) Location() Span { return err.Span }
