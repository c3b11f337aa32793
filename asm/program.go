package asm

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Instruction is a statement placed in the binary.
type Instruction struct {
	Statement
	Offset int // Byte offset in Program.Binary.
	Size   int // Encoded size, in bytes.
}

// Bytes returns the encoding of the instruction within binary.
func (ins Instruction) Bytes(binary []byte) []byte {
	return binary[ins.Offset : ins.Offset+ins.Size]
}

// Program is the result of an assembly: the binary together with the
// statements that produced it and the label table.
type Program struct {
	Binary       []byte
	Instructions []Instruction
	Symbols      map[string]int // Label name to byte offset.
}

type Debug struct {
	*Instruction
	Index int // Byte index within the instruction.
}

// Debug finds the instruction that encodes the byte at offset.
func (prog *Program) Debug(offset int) (dbg Debug, ok bool) {
	for n, ins := range prog.Instructions {
		if offset >= ins.Offset && offset < ins.Offset+ins.Size {
			dbg = Debug{
				Instruction: &prog.Instructions[n],
				Index:       offset - ins.Offset,
			}
			ok = true
			break
		}
	}

	return
}

// Listing iterates over the byte offset and instruction of every statement.
func (prog *Program) Listing() iter.Seq2[int, Instruction] {
	return func(yield func(offset int, ins Instruction) bool) {
		for _, ins := range prog.Instructions {
			if !yield(ins.Offset, ins) {
				return
			}
		}
	}
}

// Labels returns the label names, ordered by offset and then name.
func (prog *Program) Labels() []string {
	return slices.SortedFunc(maps.Keys(prog.Symbols), func(a, b string) int {
		return cmp.Or(cmp.Compare(prog.Symbols[a], prog.Symbols[b]), cmp.Compare(a, b))
	})
}

// String returns an assembly listing of the program.
func (prog *Program) String() string {
	var sb strings.Builder
	for offset, ins := range prog.Listing() {
		fmt.Fprintf(&sb, "%04x  % -12x  %v\n", offset, ins.Bytes(prog.Binary), ins.Statement)
	}
	return sb.String()
}
