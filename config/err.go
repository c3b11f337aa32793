package config

import (
	"errors"

	"github.com/ezrec/nand7400/translate"
)

var f = translate.From

var (
	ErrConfigFormat  = errors.New(f("configuration format unknown"))
	ErrOpcodeSyntax  = errors.New(f("opcode definition syntax"))
	ErrOpcodeMissing = errors.New(f("no opcodes defined"))
)

// ErrDuplicateMnemonic is returned when two opcode definitions share a mnemonic.
type ErrDuplicateMnemonic struct {
	Mnemonic string // Duplicated mnemonic.
	Index    int    // Index of the offending definition.
	Previous int    // Index of the first definition.
}

func (err *ErrDuplicateMnemonic) Error() string {
	return f("mnemonic '%v' of opcode #%d already defined by opcode #%d", err.Mnemonic, err.Index, err.Previous)
}

type ErrMnemonicInvalid string

func (err ErrMnemonicInvalid) Error() string {
	return f("'%v' is not a valid mnemonic", string(err))
}

type ErrOperandKind string

func (err ErrOperandKind) Error() string {
	return f("'%v' is not an operand kind", string(err))
}

type ErrOpcodeBinary int64

func (err ErrOpcodeBinary) Error() string {
	return f("opcode binary %d does not fit in a byte", int64(err))
}

type ErrConfigKeys []string

func (err ErrConfigKeys) Error() string {
	return f("unknown configuration keys %v", []string(err))
}

// ErrLoad locates a configuration loading error.
type ErrLoad struct {
	Name string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
