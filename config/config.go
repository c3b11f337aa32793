// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config describes the instruction set accepted by the assembler.
//
// A Config is built once from a list of opcode definitions and is never
// modified afterwards, so a single Config may be shared by any number of
// concurrent assemblies.
package config

import (
	"iter"
	"slices"
)

// Config is a validated, immutable opcode table.
type Config struct {
	opcodes []Opcode
	index   map[string]int
	labels  bool
}

// New validates a list of opcodes and builds a configuration from them.
func New(opcodes ...Opcode) (cfg *Config, err error) {
	cfg = &Config{
		opcodes: make([]Opcode, 0, len(opcodes)),
		index:   make(map[string]int, len(opcodes)),
	}

	for n, op := range opcodes {
		if !ValidMnemonic(op.Mnemonic) {
			return nil, ErrMnemonicInvalid(op.Mnemonic)
		}
		prev, ok := cfg.index[op.Mnemonic]
		if ok {
			return nil, &ErrDuplicateMnemonic{Mnemonic: op.Mnemonic, Index: n, Previous: prev}
		}
		for _, kind := range op.Operands {
			if kind < KIND_REGISTER || kind > KIND_LABEL {
				return nil, ErrOperandKind(kind.String())
			}
			if kind == KIND_LABEL {
				cfg.labels = true
			}
		}
		cfg.index[op.Mnemonic] = n
		cfg.opcodes = append(cfg.opcodes, op.clone())
	}

	return
}

// Lookup finds the opcode for a mnemonic.
// The returned Operands slice must be treated as read-only.
func (cfg *Config) Lookup(mnemonic string) (op Opcode, ok bool) {
	n, ok := cfg.index[mnemonic]
	if ok {
		op = cfg.opcodes[n]
	}
	return
}

// UsesLabels is true if any opcode takes a label operand.
func (cfg *Config) UsesLabels() bool {
	return cfg.labels
}

// Len returns the number of opcodes.
func (cfg *Config) Len() int {
	return len(cfg.opcodes)
}

// All iterates over copies of the opcodes, in definition order.
func (cfg *Config) All() iter.Seq[Opcode] {
	return func(yield func(Opcode) bool) {
		for _, op := range cfg.opcodes {
			if !yield(op.clone()) {
				return
			}
		}
	}
}

// Opcodes returns a copy of the opcode list.
func (cfg *Config) Opcodes() []Opcode {
	return slices.Collect(cfg.All())
}

// ValidMnemonic reports if a mnemonic could be written in assembly source:
// letters, digits and underscores, not starting with a digit.
func ValidMnemonic(mnemonic string) bool {
	if len(mnemonic) == 0 {
		return false
	}
	for n, c := range []byte(mnemonic) {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && n > 0:
		default:
			return false
		}
	}
	return true
}
