// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"slices"
)

// OperandKind is the kind of operand an opcode expects at a position.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	KIND_REGISTER  = OperandKind(0) // register
	KIND_IMMEDIATE = OperandKind(1) // immediate
	KIND_ADDRESS   = OperandKind(2) // address
	KIND_LABEL     = OperandKind(3) // label
)

// operandKinds maps the configuration file names of operand kinds.
var operandKinds = map[string]OperandKind{
	"register":  KIND_REGISTER,
	"immediate": KIND_IMMEDIATE,
	"address":   KIND_ADDRESS,
	"label":     KIND_LABEL,
}

// ParseOperandKind returns the operand kind for its configuration name.
func ParseOperandKind(name string) (kind OperandKind, err error) {
	kind, ok := operandKinds[name]
	if !ok {
		err = ErrOperandKind(name)
	}
	return
}

// Width returns the number of bytes an operand of this kind encodes to.
func (kind OperandKind) Width() int {
	switch kind {
	case KIND_ADDRESS, KIND_LABEL:
		return 2
	default:
		return 1
	}
}

// Limit returns the largest numeric value an operand of this kind can hold.
func (kind OperandKind) Limit() uint64 {
	return 1<<(8*kind.Width()) - 1
}

// Opcode is a single instruction definition.
type Opcode struct {
	Mnemonic string        // Case-sensitive mnemonic.
	Binary   uint8         // Encoded opcode byte.
	Operands []OperandKind // Expected operand kinds, in order.
}

// Size returns the encoded size, in bytes, of the instruction.
func (op Opcode) Size() (size int) {
	size = 1
	for _, kind := range op.Operands {
		size += kind.Width()
	}
	return
}

// clone returns a copy of the opcode that shares no memory with op.
func (op Opcode) clone() Opcode {
	op.Operands = slices.Clone(op.Operands)
	return op
}
