// Package riscv emits 32-bit RISC-V assembly from the lowered IR (spec
// §4.7-§4.9), grounded file-for-file on vslc/src/backend/riscv/{riscv,
// function,conditional,expression,print}.go's register-constant layout and
// util.Writer instruction-emission helpers, simplified from the teacher's
// register-allocated multi-pass model to the spec's fixed scratch-register
// discipline (no register allocator; spec §5 is single-threaded anyway).
package riscv

import (
	"fmt"

	"sysyc/src/ir"
	"sysyc/src/util"
)

// Scratch/argument register names (spec §4.8, §6.4).
const (
	regZero = "x0"
	regRA   = "ra"
	regSP   = "sp"
	regT0   = "t0"
	regT1   = "t1"
	regT5   = "t5"
	regT6   = "t6"
)

// argReg returns the name of argument register i (0..7), per the RV32 ABI
// (spec §6.4).
func argReg(i int) string {
	return fmt.Sprintf("a%d", i)
}

// Options controls the text emitted around the generated assembly (spec
// SPEC_FULL §A.1/§A.4/§B.4).
type Options struct {
	Verbose bool   // -vb: emit frame-size/instruction-count statistics as comments.
	BuildID string // stamped as a "# build <uuid>" comment when Verbose (SPEC_FULL §B.4).
}

// Generate lowers an entire IR module to RISC-V assembly text (spec
// §4.7-§4.9's top-level driver). It assumes ir.Validate has already
// accepted m.
func Generate(m *ir.Module, opt Options) (string, error) {
	w := util.NewWriter()

	if opt.Verbose && opt.BuildID != "" {
		w.Comment("build %s", opt.BuildID)
	}

	if len(m.Globals) > 0 {
		w.WriteString("  .data\n")
		for _, g := range m.Globals {
			emitGlobal(&w, g)
		}
		w.WriteString("\n")
	}

	w.WriteString("  .text\n")
	for _, f := range m.Funcs {
		if f.Decl {
			continue
		}
		if err := emitFunction(&w, f, opt); err != nil {
			return "", fmt.Errorf("function %s: %w", f.Name, err)
		}
	}

	return w.String(), nil
}

// emitGlobal renders a single global's .data entry (spec §4.8's GlobalAlloc
// rule): a `.globl`/label header followed by its initializer's flattened
// words.
func emitGlobal(w *util.Writer, g *ir.Value) {
	w.Write("  .globl %s\n", g.Name)
	w.Label(g.Name)
	emitInitializer(w, g.Val)
}

func emitInitializer(w *util.Writer, v *ir.Value) {
	switch v.Kind {
	case ir.KindInteger:
		w.Write("  .word %d\n", v.IntVal)
	case ir.KindZeroInit:
		w.Write("  .zero %d\n", v.Typ.Size())
	case ir.KindAggregate:
		for _, e := range v.Elems {
			emitInitializer(w, e)
		}
	default:
		panic("riscv: unsupported global initializer kind")
	}
}
