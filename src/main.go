package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sysyc/src/backend/riscv"
	"sysyc/src/frontend"
	"sysyc/src/ir"
	illvm "sysyc/src/ir/llvm"
	"sysyc/src/util"
)

// run drives the whole pipeline (spec §4's top-level shape): read source,
// parse, lower to IR, validate, then dispatch to whichever output mode
// util.ParseArgs selected.
func run(opt util.Options) error {
	src, err := util.ReadSource(opt)
	if err != nil {
		return &frontend.CompileError{Kind: frontend.IOError, Msg: err.Error(), Cause: err}
	}

	name := moduleName(opt.Src)
	cu, err := frontend.Parse(name, src)
	if err != nil {
		return err
	}

	m, err := frontend.GenerateIR(cu, name)
	if err != nil {
		return err
	}

	if err := ir.Validate(m); err != nil {
		return err
	}

	out, err := render(m, opt)
	if err != nil {
		return err
	}

	if err := util.WriteOutput(opt, out); err != nil {
		return &frontend.CompileError{Kind: frontend.IOError, Msg: err.Error(), Cause: err}
	}
	return nil
}

// render produces the requested textual output for a validated module
// (spec §6.1's CLI modes).
func render(m *ir.Module, opt util.Options) (string, error) {
	switch opt.Mode {
	case util.ModeKoopa:
		return m.String(), nil
	case util.ModeLLVM:
		llm, err := illvm.Transform(m)
		if err != nil {
			return "", err
		}
		return llm.String(), nil
	case util.ModeRiscv, util.ModePerf:
		rOpt := riscv.Options{Verbose: opt.Verbose}
		if opt.Verbose {
			rOpt.BuildID = uuid.NewString()
		}
		return riscv.Generate(m, rOpt)
	default:
		return "", &frontend.CompileError{Kind: frontend.InvalidArgs, Msg: "unknown output mode"}
	}
}

// moduleName derives a Koopa/LLVM module identifier from the source path,
// falling back to "stdin" when reading from standard input.
func moduleName(path string) string {
	if path == "" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() {
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sysyc: %s\n", err)
		os.Exit(-1)
	}
	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "sysyc: %s\n", err)
		os.Exit(-1)
	}
}
