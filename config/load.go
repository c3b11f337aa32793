// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// tomlOpcode is a single [[opcode]] table of a TOML opcode file.
type tomlOpcode struct {
	Mnemonic string   `toml:"mnemonic"`
	Binary   int64    `toml:"binary"`
	Operands []string `toml:"operands"`
}

type tomlFile struct {
	Opcode []tomlOpcode `toml:"opcode"`
}

// makeOpcode converts loosely typed fields into an opcode.
func makeOpcode(mnemonic string, binary int64, operands []string) (op Opcode, err error) {
	if binary < 0 || binary > 0xff {
		err = ErrOpcodeBinary(binary)
		return
	}

	op = Opcode{Mnemonic: mnemonic, Binary: uint8(binary)}
	for _, name := range operands {
		var kind OperandKind
		kind, err = ParseOperandKind(name)
		if err != nil {
			return
		}
		op.Operands = append(op.Operands, kind)
	}

	return
}

// LoadTOML reads opcode definitions from a TOML document of the form:
//
//	[[opcode]]
//	mnemonic = "ADD"
//	binary = 0x01
//	operands = ["register", "register"]
func LoadTOML(r io.Reader) (opcodes []Opcode, err error) {
	var file tomlFile

	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = ErrConfigKeys(keys)
		return
	}

	for _, entry := range file.Opcode {
		var op Opcode
		op, err = makeOpcode(entry.Mnemonic, entry.Binary, entry.Operands)
		if err != nil {
			return nil, err
		}
		opcodes = append(opcodes, op)
	}

	if len(opcodes) == 0 {
		err = ErrOpcodeMissing
	}

	return
}

// LoadStarlark runs a Starlark script that defines opcodes by calling the
// predeclared opcode(mnemonic, binary, *operands) builtin. The operand kinds
// are also predeclared as REGISTER, IMMEDIATE, ADDRESS and LABEL.
func LoadStarlark(filename string, src any) (opcodes []Opcode, err error) {
	opcode := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) != 0 || len(args) < 2 {
			return nil, fmt.Errorf("%s: %w", fn.Name(), ErrOpcodeSyntax)
		}
		mnemonic, ok := starlark.AsString(args[0])
		if !ok {
			return nil, fmt.Errorf("%s: mnemonic: %w", fn.Name(), ErrOpcodeSyntax)
		}
		binary, err := starlark.AsInt32(args[1])
		if err != nil {
			return nil, fmt.Errorf("%s: binary: %w", fn.Name(), err)
		}
		var operands []string
		for _, arg := range args[2:] {
			name, ok := starlark.AsString(arg)
			if !ok {
				return nil, fmt.Errorf("%s: operand %v: %w", fn.Name(), arg, ErrOpcodeSyntax)
			}
			operands = append(operands, name)
		}
		op, err := makeOpcode(mnemonic, int64(binary), operands)
		if err != nil {
			return nil, err
		}
		opcodes = append(opcodes, op)
		return starlark.None, nil
	}

	pred := starlark.StringDict{
		"opcode": starlark.NewBuiltin("opcode", opcode),
	}
	for name, kind := range operandKinds {
		pred[strings.ToUpper(name)] = starlark.String(kind.String())
	}

	thread := starlark.Thread{Name: filename}
	opts := syntax.FileOptions{TopLevelControl: true, GlobalReassign: true}
	_, err = starlark.ExecFileOptions(&opts, &thread, filename, src, pred)
	if err != nil {
		return nil, err
	}

	if len(opcodes) == 0 {
		err = ErrOpcodeMissing
	}

	return
}

// LoadFS loads an opcode file from a file system, by extension:
// '.toml' for TOML and '.star' for Starlark.
func LoadFS(filesys fs.FS, name string) (opcodes []Opcode, err error) {
	defer func() {
		if err != nil {
			err = &ErrLoad{Name: name, Err: err}
		}
	}()

	data, err := fs.ReadFile(filesys, name)
	if err != nil {
		return
	}

	switch path.Ext(name) {
	case ".toml":
		opcodes, err = LoadTOML(bytes.NewReader(data))
	case ".star":
		opcodes, err = LoadStarlark(name, data)
	default:
		err = ErrConfigFormat
	}

	return
}
