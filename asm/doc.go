// Package asm implements the assembler for Nand7400 style CPUs, whose
// instruction set is supplied by the caller as a config.Config.
//
// Assembly runs in three stages. Tokenize lazily splits the source into
// spanned tokens, Parse groups the tokens into statements without looking
// at the opcode table, and Resolve looks each mnemonic up, checks its
// operands and encodes the binary. The first error of any stage stops the
// assembly.
//
// A statement is written as:
//
//	[label:] MNEMONIC [operand {, operand}] [// comment]
//
// Operands are numbers (decimal, 0x hex, 0o octal or 0b binary) or label
// names. An instruction encodes as its opcode byte followed by its operands:
// one byte for register and immediate operands, two bytes (big-endian) for
// address and label operands. The .byte and .org directives place raw bytes
// and zero-fill to an address.
package asm
