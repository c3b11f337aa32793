package asm

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nand7400/config"
)

var (
	REG  = config.KIND_REGISTER
	IMM  = config.KIND_IMMEDIATE
	ADDR = config.KIND_ADDRESS
	LBL  = config.KIND_LABEL
)

func testOpcodes() []config.Opcode {
	return []config.Opcode{
		{Mnemonic: "NOP", Binary: 0x00},
		{Mnemonic: "ADD", Binary: 0x01, Operands: []config.OperandKind{REG, REG}},
		{Mnemonic: "LDI", Binary: 0x02, Operands: []config.OperandKind{REG, IMM}},
		{Mnemonic: "STA", Binary: 0x03, Operands: []config.OperandKind{ADDR}},
		{Mnemonic: "JMP", Binary: 0x04, Operands: []config.OperandKind{LBL}},
		{Mnemonic: "JNZ", Binary: 0x05, Operands: []config.OperandKind{REG, LBL}},
		{Mnemonic: "HLT", Binary: 0xff},
	}
}

func testAssembler(t *testing.T) *Assembler {
	asm, err := NewFromOpcodes(testOpcodes()...)
	if err != nil {
		t.Fatal(err)
	}
	return asm
}

func TestAssemblerScenarios(t *testing.T) {
	assert := assert.New(t)

	// Single operand-less opcode.
	asm, err := NewFromOpcodes(config.Opcode{Mnemonic: "NOP", Binary: 0x00})
	assert.NoError(err)
	binary, err := asm.Assemble("NOP\n")
	assert.NoError(err)
	assert.Equal([]byte{0x00}, binary)

	// Opcode byte followed by operand bytes.
	asm, err = NewFromOpcodes(config.Opcode{Mnemonic: "ADD", Binary: 0x01, Operands: []config.OperandKind{REG, REG}})
	assert.NoError(err)
	binary, err = asm.Assemble("ADD 1, 2\n")
	assert.NoError(err)
	assert.Equal([]byte{0x01, 0x01, 0x02}, binary)

	// Wrong operand count.
	binary, err = asm.Assemble("ADD 1\n")
	assert.Nil(binary)
	var wc *ErrWrongOperandCount
	if assert.True(errors.As(err, &wc)) {
		assert.Equal("ADD", wc.Mnemonic)
		assert.Equal(2, wc.Expected)
		assert.Equal(1, wc.Found)
	}

	// Empty opcode table.
	asm, err = NewFromOpcodes()
	assert.NoError(err)
	binary, err = asm.Assemble("NOP\n")
	assert.Nil(binary)
	var dne *ErrOpcodeDoesNotExist
	if assert.True(errors.As(err, &dne)) {
		assert.Equal("NOP", dne.Mnemonic)
		assert.Equal(0, dne.Span.Start)
		assert.Equal(3, dne.Span.End)
	}

	// Identifier starting with a digit.
	binary, err = asm.Assemble("1ADD\n")
	assert.Nil(binary)
	var ue *ErrUnexpected
	if assert.True(errors.As(err, &ue)) {
		assert.Contains(ue.Expected, TOKEN_LABEL)
		assert.Contains(ue.Expected, TOKEN_MNEMONIC)
		assert.Contains(ue.Expected, TOKEN_NEWLINE)
		assert.Equal("1ADD", ue.Found.Text)
	}

	// Duplicated mnemonic.
	asm, err = NewFromOpcodes(
		config.Opcode{Mnemonic: "MOV", Binary: 0x01},
		config.Opcode{Mnemonic: "MOV", Binary: 0x02},
	)
	assert.Nil(asm)
	var dup *config.ErrDuplicateMnemonic
	if assert.True(errors.As(err, &dup)) {
		assert.Equal("MOV", dup.Mnemonic)
	}
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm, err := NewFromOpcodes(
		config.Opcode{Mnemonic: "NOP", Binary: 0x00},
		config.Opcode{Mnemonic: "LDA", Binary: 0x01, Operands: []config.OperandKind{IMM}},
		config.Opcode{Mnemonic: "ADD", Binary: 0x02, Operands: []config.OperandKind{REG, REG, REG}},
		config.Opcode{Mnemonic: "JMP", Binary: 0x03, Operands: []config.OperandKind{LBL}},
		config.Opcode{Mnemonic: "HLT", Binary: 0xff},
	)
	assert.NoError(err)

	program := []string{
		"// A basic program",
		"NOP",
		"LDA 0xCA",
		"JMP end",
		"NOP",
		"end:",
		"ADD 1, 2, 3",
		"HLT",
	}

	binary, err := asm.Assemble(strings.Join(program, "\n"))
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0x01, 0xCA, 0x03, 0x00, 0x07, 0x00, 0x02, 0x01, 0x02, 0x03, 0xFF}, binary)
}

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)
	for _, source := range []string{"", "\n", "// nothing\n"} {
		binary, err := asm.Assemble(source)
		assert.NoError(err)
		assert.NotNil(binary)
		assert.Equal(0, len(binary))
	}

	asm = New(nil)
	assert.Equal(0, asm.Config().Len())
	_, err := asm.Assemble("NOP")
	var dne *ErrOpcodeDoesNotExist
	assert.True(errors.As(err, &dne))
}

func TestAssemblerOperands(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	table := []struct {
		source string
		binary []byte
	}{
		{"LDI 3, 255", []byte{0x02, 0x03, 0xff}},
		{"LDI 0b11, 0o17", []byte{0x02, 0x03, 0x0f}},
		{"STA 0x1234", []byte{0x03, 0x12, 0x34}},
		{"STA 65535", []byte{0x03, 0xff, 0xff}},
		{"STA 7", []byte{0x03, 0x00, 0x07}},
		{"NOP // comment\nHLT", []byte{0x00, 0xff}},
	}

	for _, entry := range table {
		binary, err := asm.Assemble(entry.source)
		assert.NoError(err, entry.source)
		assert.Equal(entry.binary, binary, entry.source)
	}
}

func TestAssemblerInvalidOperand(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	table := []struct {
		source   string
		text     string
		expected config.OperandKind
	}{
		{"LDI 0, 256", "256", IMM},
		{"LDI r0, 1", "r0", REG},
		{"ADD 1, x", "x", REG},
		{"STA 0x10000", "0x10000", ADDR},
		{"STA 99999999999999999999999", "99999999999999999999999", ADDR},
		{"STA here", "here", ADDR},
		{"JMP 0x10", "0x10", LBL},
		{"JNZ 1, 2", "2", LBL},
		{"JNZ x, y", "x", REG},
		{".byte 1, 300", "300", IMM},
		{".byte x", "x", IMM},
		{".org 0x10000", "0x10000", ADDR},
		{".byte 1, 2\n.org 1", "1", ADDR},
	}

	for _, entry := range table {
		binary, err := asm.Assemble(entry.source)
		assert.Nil(binary, entry.source)
		var ie *ErrInvalidOperand
		if !assert.True(errors.As(err, &ie), entry.source) {
			continue
		}
		assert.Equal(entry.text, ie.Text, entry.source)
		assert.Equal(entry.text, ie.Span.Text(entry.source), entry.source)
		assert.Equal(entry.expected, ie.Expected, entry.source)
	}
}

func TestAssemblerArity(t *testing.T) {
	assert := assert.New(t)

	kinds := []config.OperandKind{REG, IMM, ADDR}
	operands := []string{"1", "2", "3", "4", "5"}

	for k := range len(kinds) + 1 {
		asm, err := NewFromOpcodes(config.Opcode{Mnemonic: "OP", Binary: 0x10, Operands: kinds[:k]})
		assert.NoError(err)

		for found := range len(operands) + 1 {
			source := "OP " + strings.Join(operands[:found], ", ")
			binary, err := asm.Assemble(source)
			if found == k {
				assert.NoError(err, source)
				continue
			}
			assert.Nil(binary, source)
			var wc *ErrWrongOperandCount
			if assert.True(errors.As(err, &wc), source) {
				assert.Equal(k, wc.Expected, source)
				assert.Equal(found, wc.Found, source)
				assert.Equal("OP", wc.Span.Text(source))
			}
		}
	}
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	program := []string{
		"start: NOP",
		"loop:",
		"  JNZ 1, done   // forward",
		"  JMP loop      // backward",
		"done: HLT",
	}

	prog, err := asm.AssembleWithAST(strings.Join(program, "\n"))
	assert.NoError(err)
	assert.Equal([]byte{
		0x00,
		0x05, 0x01, 0x00, 0x08,
		0x04, 0x00, 0x01,
		0xff,
	}, prog.Binary)
	assert.Equal(map[string]int{"start": 0, "loop": 1, "done": 8}, prog.Symbols)
	assert.Equal([]string{"start", "loop", "done"}, prog.Labels())
}

func TestAssemblerLabelErrors(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	source := "JMP nowhere\nNOP"
	binary, err := asm.Assemble(source)
	assert.Nil(binary)
	var ul *ErrUndefinedLabel
	if assert.True(errors.As(err, &ul)) {
		assert.Equal("nowhere", ul.Name)
		assert.Equal("nowhere", ul.Span.Text(source))
	}

	source = "a: NOP\nb: NOP\na: HLT"
	binary, err = asm.Assemble(source)
	assert.Nil(binary)
	var dl *ErrDuplicateLabel
	if assert.True(errors.As(err, &dl)) {
		assert.Equal("a", dl.Name)
		assert.Equal(3, dl.Span.Line)
		assert.Equal(1, dl.Previous.Line)
	}

	// Later errors win over unresolved labels, as labels are linked last.
	source = "JMP nowhere\nBOGUS"
	_, err = asm.Assemble(source)
	var dne *ErrOpcodeDoesNotExist
	assert.True(errors.As(err, &dne))

	source = ".org 0xffff\nend: HLT\nJMP end"
	_, err = asm.Assemble(source)
	assert.NoError(err)

	source = ".org 0xffff\nHLT\nend: JMP end"
	_, err = asm.Assemble(source)
	var ie *ErrInvalidOperand
	if assert.True(errors.As(err, &ie)) {
		assert.Equal(LBL, ie.Expected)
		assert.Equal(3, ie.Span.Line)
	}
}

func TestAssemblerLabelsWithoutLabelOperands(t *testing.T) {
	assert := assert.New(t)

	asm, err := NewFromOpcodes(config.Opcode{Mnemonic: "NOP", Binary: 0x00})
	assert.NoError(err)
	assert.False(asm.Config().UsesLabels())

	prog, err := asm.AssembleWithAST("NOP\nhere: NOP\n")
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0x00}, prog.Binary)
	assert.Equal(1, prog.Symbols["here"])
}

func TestAssemblerDirectives(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	program := []string{
		".byte 1, 0x2, 0b11",
		".org 6",
		"X: NOP",
		"JMP Y",
		"Y: .org 0xc",
		"HLT",
	}

	prog, err := asm.AssembleWithAST(strings.Join(program, "\n"))
	assert.NoError(err)
	assert.Equal([]byte{
		0x01, 0x02, 0x03,
		0x00, 0x00, 0x00,
		0x00,
		0x04, 0x00, 0x0c,
		0x00, 0x00,
		0xff,
	}, prog.Binary)
	assert.Equal(map[string]int{"X": 6, "Y": 12}, prog.Symbols)

	binary, err := asm.Assemble(".org 0\nNOP\n.org 1\nHLT")
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0xff}, binary)
}

func TestAssemblerDirectiveErrors(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	_, err := asm.Assemble(".byte")
	var wc *ErrWrongOperandCount
	if assert.True(errors.As(err, &wc)) {
		assert.True(wc.AtLeast)
		assert.Equal(1, wc.Expected)
		assert.Equal(0, wc.Found)
	}

	_, err = asm.Assemble(".org 1, 2")
	if assert.True(errors.As(err, &wc)) {
		assert.False(wc.AtLeast)
		assert.Equal(2, wc.Found)
	}

	_, err = asm.Assemble("NOP\n.foo 1")
	var dne *ErrOpcodeDoesNotExist
	if assert.True(errors.As(err, &dne)) {
		assert.Equal(".foo", dne.Mnemonic)
		assert.Equal(2, dne.Span.Line)
	}

	_, err = asm.Assemble(".BYTE 1")
	assert.True(errors.As(err, &dne))
}

func TestAssemblerDeterministic(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)
	source := "a: LDI 1, 2\nJNZ 3, a\n.byte 9\nSTA 0x100\nJMP b\nb: HLT\n"

	first, err := asm.Assemble(source)
	assert.NoError(err)
	second, err := asm.Assemble(source)
	assert.NoError(err)
	assert.Equal(first, second)
}

func TestAssemblerOrder(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)
	lines := []string{"NOP", "ADD 1, 2", "LDI 3, 4", "STA 0x0506", ".byte 7, 8", "HLT"}

	var want []byte
	for _, line := range lines {
		binary, err := asm.Assemble(line)
		assert.NoError(err, line)
		want = append(want, binary...)
	}

	binary, err := asm.Assemble(strings.Join(lines, "\n"))
	assert.NoError(err)
	assert.Equal(want, binary)
}

func TestAssemblerSpans(t *testing.T) {
	assert := assert.New(t)

	asm := testAssembler(t)

	table := []struct {
		source string
		text   string
	}{
		{"NOP\nADD 1, 2 @", "@"},
		{"NOP\n  ADD 1 2", "2"},
		{"NOP\nFOO 1", "FOO"},
		{"NOP\nADD 1", "ADD"},
		{"NOP\nLDI 1, 0x100", "0x100"},
		{"NOP\nJMP there", "there"},
		{"here: NOP\nhere: NOP", "here"},
		{"NOP\nADD 1,", ","},
	}

	for _, entry := range table {
		binary, err := asm.Assemble(entry.source)
		assert.Nil(binary, entry.source)
		var located Located
		if !assert.True(errors.As(err, &located), entry.source) {
			continue
		}
		assert.Equal(entry.text, located.Location().Text(entry.source), entry.source)
		assert.Equal(2, located.Location().Line, entry.source)
		assert.NotEmpty(located.Location().Excerpt(entry.source), entry.source)
	}
}

func TestAssemblerConcurrent(t *testing.T) {
	asm := testAssembler(t)
	source := "loop: LDI 1, 2\nJNZ 1, loop\nSTA 0xbeef\nHLT\n"

	want, err := asm.Assemble(source)
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for n := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if n%2 == 0 {
					binary, err := asm.Assemble(source)
					assert.NoError(t, err)
					assert.Equal(t, want, binary)
				} else {
					_, err := asm.Assemble("JMP nowhere")
					assert.Error(t, err)
				}
			}
		}()
	}
	wg.Wait()
}

func FuzzAssemble(f *testing.F) {
	f.Add("NOP\n")
	f.Add("ADD 1, 2\n")
	f.Add("loop: JNZ 1, loop // spin\n")
	f.Add(".org 4\n.byte 1, 2, 3\nHLT")
	f.Add("1ADD\n")
	f.Add("a:\nb:\n")
	f.Add("STA 0x10000, é")

	f.Fuzz(func(t *testing.T, source string) {
		assert := assert.New(t)

		asm := testAssembler(t)
		binary, err := asm.Assemble(source)
		if err != nil {
			assert.Nil(binary)
			var located Located
			if assert.True(errors.As(err, &located), err.Error()) {
				span := located.Location()
				assert.True(span.Start >= 0 && span.Start <= span.End && span.End <= len(source), span)
				assert.True(span.Line >= 1 && span.Column >= 1, span)
			}
			return
		}

		again, err := asm.Assemble(source)
		assert.NoError(err)
		assert.Equal(binary, again)
	})
}
