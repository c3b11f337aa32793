// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package binding maps assembler errors to plain data, for hosts that
// cannot use errors.As on the Go error types.
package binding

import (
	"errors"

	"github.com/ezrec/nand7400/asm"
	"github.com/ezrec/nand7400/config"
)

//go:generate go tool stringer -linecomment -type=Code

// Code identifies the kind of an assembler error.
type Code int

const (
	CODE_UNKNOWN                 = Code(iota) // Unknown
	CODE_UNEXPECTED_CHARACTER                 // UnexpectedCharacter
	CODE_UNEXPECTED                           // Unexpected
	CODE_UNEXPECTED_END_OF_INPUT              // UnexpectedEndOfInput
	CODE_OPCODE_DOES_NOT_EXIST                // OpcodeDoesNotExist
	CODE_WRONG_OPERAND_COUNT                  // WrongOperandCount
	CODE_INVALID_OPERAND                      // InvalidOperand
	CODE_UNDEFINED_LABEL                      // UndefinedLabel
	CODE_DUPLICATE_LABEL                      // DuplicateLabel
	CODE_DUPLICATE_MNEMONIC                   // DuplicateMnemonic
	CODE_MNEMONIC_INVALID                     // MnemonicInvalid
)

// MarshalText encodes the code by name.
func (code Code) MarshalText() ([]byte, error) {
	return []byte(code.String()), nil
}

// Location is a source range, as in asm.Span.
type Location struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func location(span asm.Span) *Location {
	return &Location{
		Start:  span.Start,
		End:    span.End,
		Line:   span.Line,
		Column: span.Column,
	}
}

// Error is the data of an assembler or configuration error. Fields that do
// not apply to the Code are left at their zero value.
type Error struct {
	Code     Code      `json:"code"`
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`

	Mnemonic string   `json:"mnemonic,omitempty"`
	Name     string   `json:"name,omitempty"`     // Label name.
	Found    string   `json:"found,omitempty"`    // Offending source text.
	Expected []string `json:"expected,omitempty"` // Token or operand kinds.

	ExpectedCount int  `json:"expected_count,omitempty"`
	FoundCount    int  `json:"found_count,omitempty"`
	AtLeast       bool `json:"at_least,omitempty"`

	Index    int       `json:"index,omitempty"`    // Opcode index in the configuration.
	Previous int       `json:"previous,omitempty"` // Opcode index of the first definition.
	Defined  *Location `json:"defined,omitempty"`  // First definition of a label.
}

func (err *Error) Error() string {
	return err.Message
}

func kindNames(kinds []asm.TokenKind) (names []string) {
	names = make([]string, len(kinds))
	for n, kind := range kinds {
		names[n] = kind.String()
	}
	return
}

// FromError maps err, or the first recognized error it wraps, to an Error.
// A nil err maps to nil.
func FromError(err error) (data *Error) {
	if err == nil {
		return
	}

	data = &Error{
		Code:    CODE_UNKNOWN,
		Message: err.Error(),
	}

	var located asm.Located
	if errors.As(err, &located) {
		data.Location = location(located.Location())
	}

	var (
		errChar      *asm.ErrUnexpectedCharacter
		errToken     *asm.ErrUnexpected
		errEnd       *asm.ErrUnexpectedEndOfInput
		errOpcode    *asm.ErrOpcodeDoesNotExist
		errCount     *asm.ErrWrongOperandCount
		errOperand   *asm.ErrInvalidOperand
		errUndefined *asm.ErrUndefinedLabel
		errLabel     *asm.ErrDuplicateLabel
		errMnemonic  *config.ErrDuplicateMnemonic
		errInvalid   config.ErrMnemonicInvalid
	)

	switch {
	case errors.As(err, &errChar):
		data.Code = CODE_UNEXPECTED_CHARACTER
		data.Found = string(errChar.Char)
	case errors.As(err, &errToken):
		data.Code = CODE_UNEXPECTED
		data.Found = errToken.Found.Text
		data.Expected = kindNames(errToken.Expected)
	case errors.As(err, &errEnd):
		data.Code = CODE_UNEXPECTED_END_OF_INPUT
		data.Expected = kindNames(errEnd.Expected)
	case errors.As(err, &errOpcode):
		data.Code = CODE_OPCODE_DOES_NOT_EXIST
		data.Mnemonic = errOpcode.Mnemonic
	case errors.As(err, &errCount):
		data.Code = CODE_WRONG_OPERAND_COUNT
		data.Mnemonic = errCount.Mnemonic
		data.ExpectedCount = errCount.Expected
		data.FoundCount = errCount.Found
		data.AtLeast = errCount.AtLeast
	case errors.As(err, &errOperand):
		data.Code = CODE_INVALID_OPERAND
		data.Found = errOperand.Text
		data.Expected = []string{errOperand.Expected.String()}
	case errors.As(err, &errUndefined):
		data.Code = CODE_UNDEFINED_LABEL
		data.Name = errUndefined.Name
	case errors.As(err, &errLabel):
		data.Code = CODE_DUPLICATE_LABEL
		data.Name = errLabel.Name
		data.Defined = location(errLabel.Previous)
	case errors.As(err, &errMnemonic):
		data.Code = CODE_DUPLICATE_MNEMONIC
		data.Mnemonic = errMnemonic.Mnemonic
		data.Index = errMnemonic.Index
		data.Previous = errMnemonic.Previous
	case errors.As(err, &errInvalid):
		data.Code = CODE_MNEMONIC_INVALID
		data.Mnemonic = string(errInvalid)
	}

	return
}
