package asm

import (
	"strings"
)

// Assembler directives.
const (
	DIRECTIVE_BYTE = ".byte" // Raw bytes.
	DIRECTIVE_ORG  = ".org"  // Zero-fill up to an address.
)

// LabelDef is a label definition.
type LabelDef struct {
	Name string
	Span Span // Span of the name, without the colon.
}

// Statement is a single parsed instruction or directive.
type Statement struct {
	Labels       []LabelDef // Labels attached to this statement.
	Mnemonic     string     // Mnemonic, or directive including its leading '.'.
	MnemonicSpan Span
	Directive    bool
	Operands     []Token // TOKEN_NUMBER or TOKEN_IDENTIFIER operands.
	Span         Span    // From the first label or mnemonic to the last operand.
}

func (stmt Statement) String() string {
	var sb strings.Builder
	for _, label := range stmt.Labels {
		sb.WriteString(label.Name)
		sb.WriteString(": ")
	}
	sb.WriteString(stmt.Mnemonic)
	for n, operand := range stmt.Operands {
		if n == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(operand.Text)
	}
	return sb.String()
}
