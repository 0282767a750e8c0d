package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// Options holds parsed command-line arguments, grounded on vslc's
// util/args.go hand-rolled flag scanner (no getopt library in the pack,
// kept as-is) and adapted to the SysY driver's modes (spec §6.1).
type Options struct {
	Src     string // Path to source file; empty reads stdin.
	Out     string // Path to output file. Required for koopa/riscv/perf/llvm modes.
	Mode    int    // One of ModeKoopa/ModeRiscv/ModePerf/ModeLLVM.
	Verbose bool   // -vb: add build-id and per-function statistics comments to RISC-V output.
}

// Output modes.
const (
	ModeRiscv = iota
	ModeKoopa
	ModePerf
	ModeLLVM
)

const appVersion = "sysyc 1.0"

// ParseArgs parses command line arguments.
func ParseArgs() (Options, error) {
	opt := Options{}
	args := os.Args[1:]
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-koopa":
			opt.Mode = ModeKoopa
		case "-riscv":
			opt.Mode = ModeRiscv
		case "-perf":
			opt.Mode = ModePerf
		case "-llvm":
			opt.Mode = ModeLLVM
		case "-vb":
			opt.Verbose = true
		case "-o":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected path to output file, got new flag %s", args[i1+1])
			}
			opt.Out = args[i1+1]
			i1++
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			opt.Src = args[i1]
		}
	}
	if opt.Out == "" {
		return opt, fmt.Errorf("missing -o <output>")
	}
	return opt, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "-koopa\tEmit a textual Koopa-like IR dump instead of assembly.")
	_, _ = fmt.Fprintln(w, "-riscv\tEmit RISC-V 32-bit assembly (default).")
	_, _ = fmt.Fprintln(w, "-perf\tLike -riscv; reserved for a future optimising pass.")
	_, _ = fmt.Fprintln(w, "-llvm\tEmit LLVM textual IR instead of assembly.")
	_, _ = fmt.Fprintln(w, "-o\tPath and name of the output file.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: add build id and statistics comments to RISC-V output.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_ = w.Flush()
}
