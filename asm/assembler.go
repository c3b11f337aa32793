// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"log"

	"github.com/ezrec/nand7400/config"
)

// Assembler translates assembly source into binary for one instruction set.
// An Assembler holds no per-assembly state, so Assemble may be called from
// several goroutines at once.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	config *config.Config
}

// New creates an assembler for an opcode table. A nil table has no opcodes.
func New(cfg *config.Config) *Assembler {
	if cfg == nil {
		cfg, _ = config.New()
	}
	return &Assembler{config: cfg}
}

// NewFromOpcodes validates a list of opcodes and creates an assembler for them.
func NewFromOpcodes(opcodes ...config.Opcode) (asm *Assembler, err error) {
	cfg, err := config.New(opcodes...)
	if err != nil {
		return
	}
	asm = New(cfg)
	return
}

// Config returns the opcode table of the assembler.
func (asm *Assembler) Config() *config.Config {
	return asm.config
}

// Assemble translates source into binary. On error no binary is returned,
// and the error is one of the Located error types.
func (asm *Assembler) Assemble(source string) (binary []byte, err error) {
	prog, err := asm.AssembleWithAST(source)
	if err != nil {
		return
	}
	binary = prog.Binary
	return
}

// AssembleWithAST translates source into a program, keeping the parsed
// statements and label table alongside the binary.
func (asm *Assembler) AssembleWithAST(source string) (prog *Program, err error) {
	statements, err := Parse(Tokenize(source))
	if err != nil {
		if asm.Verbose {
			log.Printf("parse: %v", err)
		}
		return
	}

	if asm.Verbose {
		log.Printf("parsed %d statements", len(statements))
	}

	prog, err = Resolve(statements, asm.config)
	if err != nil {
		if asm.Verbose {
			log.Printf("resolve: %v", err)
		}
		return
	}

	if asm.Verbose {
		for offset, ins := range prog.Listing() {
			log.Printf("%04x: %v: % x", offset, ins.Statement, ins.Bytes(prog.Binary))
		}
		for _, label := range prog.Labels() {
			log.Printf("label %v = %#04x", label, prog.Symbols[label])
		}
	}

	return
}
