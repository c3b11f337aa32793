// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/ezrec/nand7400/asm"
	"github.com/ezrec/nand7400/binding"
	"github.com/ezrec/nand7400/config"
	"github.com/ezrec/nand7400/internal"
)

var ErrNoConfig = errors.New("no opcode table given (use -c)")

// options are the command line settings of a single run.
type options struct {
	configs []string
	output  string
	hex     bool
	list    bool
	ast     bool
	json    bool
	verbose bool
}

// sourceError places an assembler error in its source file.
type sourceError struct {
	name   string
	source string
	err    asm.Located
}

func (err *sourceError) Error() string {
	return fmt.Sprintf("%v:%v\n%v", err.name, err.err, err.err.Location().Excerpt(err.source))
}

func (err *sourceError) Unwrap() error {
	return err.err
}

func newCommand() *cobra.Command {
	opt := &options{}

	cmd := &cobra.Command{
		Use:   "nandasm -c opcodes.toml [flags] source.asm",
		Short: "Assembler for configurable Nand7400 instruction sets",
		Long: `Nandasm assembles a single source file into a flat binary.

The instruction set is read from one or more opcode tables, either TOML
files (.toml) with an [[opcode]] array, or Starlark scripts (.star) calling
opcode(mnemonic, binary, *operands). A source of '-' is read from stdin.
`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opt.run(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opt.configs, "config", "c", nil, "opcode table (.toml or .star); may be repeated")
	flags.StringVarP(&opt.output, "output", "o", "", "binary output file ('-' for stdout)")
	flags.BoolVar(&opt.hex, "hex", false, "write a hex dump instead of binary")
	flags.BoolVar(&opt.list, "list", false, "write an assembly listing")
	flags.BoolVar(&opt.ast, "ast", false, "dump the assembled program structure")
	flags.BoolVar(&opt.json, "json", false, "report errors as JSON on stderr")
	flags.BoolVarP(&opt.verbose, "verbose", "v", false, "verbose mode")

	return cmd
}

// loadConfig reads and combines the opcode tables.
func (opt *options) loadConfig() (cfg *config.Config, err error) {
	if len(opt.configs) == 0 {
		err = ErrNoConfig
		return
	}

	tables := make([]iter.Seq[config.Opcode], 0, len(opt.configs))
	for _, path := range opt.configs {
		var opcodes []config.Opcode
		opcodes, err = config.LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return
		}
		if opt.verbose {
			log.Printf("%v: %d opcodes", path, len(opcodes))
		}
		tables = append(tables, slices.Values(opcodes))
	}

	cfg, err = config.New(slices.Collect(internal.IterSeqConcat(tables...))...)
	return
}

// readSource reads the named source file, or stdin for '-'.
func readSource(name string, stdin io.Reader) (source string, err error) {
	var buf []byte
	if name == "-" {
		buf, err = io.ReadAll(stdin)
	} else {
		buf, err = os.ReadFile(name)
	}
	source = string(buf)
	return
}

// outputName is the default binary file for a source file.
func outputName(name string) string {
	if name == "-" {
		return "-"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".bin"
}

func (opt *options) run(cmd *cobra.Command, name string) (err error) {
	defer func() {
		if err != nil && opt.json {
			cause := err
			var srcErr *sourceError
			if errors.As(err, &srcErr) {
				cause = srcErr.err
			}
			enc := json.NewEncoder(cmd.ErrOrStderr())
			enc.SetIndent("", "  ")
			_ = enc.Encode(binding.FromError(cause))
		}
	}()

	cfg, err := opt.loadConfig()
	if err != nil {
		return
	}

	source, err := readSource(name, cmd.InOrStdin())
	if err != nil {
		return
	}

	assembler := asm.New(cfg)
	assembler.Verbose = opt.verbose

	prog, err := assembler.AssembleWithAST(source)
	if err != nil {
		var located asm.Located
		if errors.As(err, &located) {
			err = &sourceError{name: name, source: source, err: located}
		}
		return
	}

	out := cmd.OutOrStdout()

	switch {
	case opt.ast:
		printer := pp.New()
		printer.SetColoringEnabled(false)
		printer.SetOutput(out)
		_, err = printer.Println(prog)
	case opt.list:
		_, err = io.WriteString(out, prog.String())
	case opt.hex:
		_, err = io.WriteString(out, hex.Dump(prog.Binary))
	default:
		output := opt.output
		if len(output) == 0 {
			output = outputName(name)
		}
		if output == "-" {
			_, err = out.Write(prog.Binary)
		} else {
			err = os.WriteFile(output, prog.Binary, 0o644)
		}
		if err == nil && opt.verbose {
			log.Printf("%v: %d bytes", output, len(prog.Binary))
		}
	}

	return
}

func main() {
	err := newCommand().Execute()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
