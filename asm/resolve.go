// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"github.com/ezrec/nand7400/config"
)

// fixup is a label operand to be patched once all labels are known.
type fixup struct {
	Offset  int   // Offset in the binary of the 2-byte placeholder.
	Operand Token // Label reference.
}

// resolver is the state of a single Resolve call.
type resolver struct {
	config *config.Config
	prog   *Program
	labels map[string]Span // Definition of each label.
	fixups []fixup
}

// Resolve matches statements against the opcode table and encodes them,
// in order, into a program. Nothing is returned on error.
func Resolve(statements []Statement, cfg *config.Config) (prog *Program, err error) {
	if cfg == nil {
		cfg, _ = config.New()
	}

	r := &resolver{
		config: cfg,
		prog:   &Program{Binary: []byte{}, Symbols: map[string]int{}},
		labels: map[string]Span{},
	}

	for _, stmt := range statements {
		err = r.statement(stmt)
		if err != nil {
			return nil, err
		}
	}

	if cfg.UsesLabels() {
		err = r.link()
		if err != nil {
			return nil, err
		}
	}

	prog = r.prog
	return
}

// Emit resolves statements and returns only the binary.
func Emit(statements []Statement, cfg *config.Config) (binary []byte, err error) {
	prog, err := Resolve(statements, cfg)
	if err != nil {
		return
	}
	binary = prog.Binary
	return
}

// offset is the current end of the binary.
func (r *resolver) offset() int {
	return len(r.prog.Binary)
}

// define records the labels of a statement at the current offset.
func (r *resolver) define(stmt Statement) (err error) {
	for _, label := range stmt.Labels {
		prev, ok := r.labels[label.Name]
		if ok {
			return &ErrDuplicateLabel{Span: label.Span, Name: label.Name, Previous: prev}
		}
		r.labels[label.Name] = label.Span
		r.prog.Symbols[label.Name] = r.offset()
	}
	return
}

// emit appends the encoding of a statement.
func (r *resolver) emit(stmt Statement, offset int, code []byte) {
	r.prog.Binary = append(r.prog.Binary, code...)
	r.prog.Instructions = append(r.prog.Instructions, Instruction{
		Statement: stmt,
		Offset:    offset,
		Size:      len(code),
	})
}

// number checks a numeric operand against the limit of its kind.
func number(tok Token, kind config.OperandKind) (value uint64, err error) {
	if tok.Kind != TOKEN_NUMBER {
		err = &ErrInvalidOperand{Span: tok.Span, Text: tok.Text, Expected: kind}
		return
	}
	value, err = tok.Value()
	if err != nil || value > kind.Limit() {
		err = &ErrInvalidOperand{Span: tok.Span, Text: tok.Text, Expected: kind}
	}
	return
}

// bigEndian appends the width low bytes of value, most significant first.
func bigEndian(code []byte, value uint64, width int) []byte {
	for n := width - 1; n >= 0; n-- {
		code = append(code, byte(value>>(8*n)))
	}
	return code
}

// statement validates and encodes a single statement.
func (r *resolver) statement(stmt Statement) (err error) {
	if stmt.Directive {
		return r.directive(stmt)
	}

	err = r.define(stmt)
	if err != nil {
		return
	}

	op, ok := r.config.Lookup(stmt.Mnemonic)
	if !ok {
		return &ErrOpcodeDoesNotExist{Span: stmt.MnemonicSpan, Mnemonic: stmt.Mnemonic}
	}

	if len(stmt.Operands) != len(op.Operands) {
		return &ErrWrongOperandCount{
			Span:     stmt.MnemonicSpan,
			Mnemonic: stmt.Mnemonic,
			Expected: len(op.Operands),
			Found:    len(stmt.Operands),
		}
	}

	offset := r.offset()
	code := make([]byte, 0, op.Size())
	code = append(code, op.Binary)

	for n, kind := range op.Operands {
		tok := stmt.Operands[n]
		if kind == config.KIND_LABEL {
			if tok.Kind != TOKEN_IDENTIFIER {
				return &ErrInvalidOperand{Span: tok.Span, Text: tok.Text, Expected: kind}
			}
			r.fixups = append(r.fixups, fixup{Offset: offset + len(code), Operand: tok})
			code = bigEndian(code, 0, kind.Width())
			continue
		}

		var value uint64
		value, err = number(tok, kind)
		if err != nil {
			return
		}
		code = bigEndian(code, value, kind.Width())
	}

	r.emit(stmt, offset, code)

	return
}

// directive encodes an assembler directive.
func (r *resolver) directive(stmt Statement) (err error) {
	offset := r.offset()

	switch stmt.Mnemonic {
	case DIRECTIVE_BYTE:
		err = r.define(stmt)
		if err != nil {
			return
		}
		if len(stmt.Operands) == 0 {
			return &ErrWrongOperandCount{Span: stmt.MnemonicSpan, Mnemonic: stmt.Mnemonic, Expected: 1, AtLeast: true}
		}
		code := make([]byte, 0, len(stmt.Operands))
		for _, tok := range stmt.Operands {
			var value uint64
			value, err = number(tok, config.KIND_IMMEDIATE)
			if err != nil {
				return
			}
			code = append(code, byte(value))
		}
		r.emit(stmt, offset, code)
	case DIRECTIVE_ORG:
		if len(stmt.Operands) != 1 {
			return &ErrWrongOperandCount{Span: stmt.MnemonicSpan, Mnemonic: stmt.Mnemonic, Expected: 1, Found: len(stmt.Operands)}
		}
		tok := stmt.Operands[0]
		var value uint64
		value, err = number(tok, config.KIND_ADDRESS)
		if err != nil {
			return
		}
		if value < uint64(offset) {
			return &ErrInvalidOperand{Span: tok.Span, Text: tok.Text, Expected: config.KIND_ADDRESS}
		}
		r.emit(stmt, offset, make([]byte, int(value)-offset))
		err = r.define(stmt)
	default:
		err = &ErrOpcodeDoesNotExist{Span: stmt.MnemonicSpan, Mnemonic: stmt.Mnemonic}
	}

	return
}

// link patches every label operand with the offset of its label.
func (r *resolver) link() (err error) {
	for _, fix := range r.fixups {
		name := fix.Operand.Text
		value, ok := r.prog.Symbols[name]
		if !ok {
			return &ErrUndefinedLabel{Span: fix.Operand.Span, Name: name}
		}
		if uint64(value) > config.KIND_LABEL.Limit() {
			return &ErrInvalidOperand{Span: fix.Operand.Span, Text: name, Expected: config.KIND_LABEL}
		}
		r.prog.Binary[fix.Offset] = byte(value >> 8)
		r.prog.Binary[fix.Offset+1] = byte(value)
	}

	return
}
