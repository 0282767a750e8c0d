package riscv

import (
	"sysyc/src/ir"
	"sysyc/src/util"
)

// slot records one local's stack placement (spec §3.5). Whether a slot's
// content is itself a runtime-computed pointer (a GetPtr/GetElemPtr result)
// rather than a plain int is determined from the owning *ir.Value's Kind at
// each use site (materializeAddress/stage), not stored here — Kind already
// carries that information, so a separate is_pointer_typed bit would be
// redundant bookkeeping (spec §3.5 mentions the bit; this substrate derives
// it instead of duplicating it).
type slot struct {
	offset int
}

// Emit is the per-function backend context (spec §3.5): the stack-frame
// plan, the value->slot map, and the basic-block label table, threaded
// through every instruction emission in expression.go/conditional.go.
type Emit struct {
	w      *util.Writer
	fn     *ir.Function
	opt    Options
	frame  int
	hasRA  bool
	tmpSeq int
	slots  map[*ir.Value]slot
	labels map[*ir.BasicBlock]string
}

// emitFunction lowers one IR function to its assembly label, prologue,
// body, and epilogue (spec §4.7-§4.9).
func emitFunction(w *util.Writer, f *ir.Function, opt Options) error {
	e := &Emit{w: w, fn: f, opt: opt}
	e.planFrame()
	e.labelBlocks()

	w.Write("  .globl %s\n", f.Name)
	w.Label(f.Name)
	e.prologue()

	insnCount := 0
	for _, b := range f.Blocks {
		w.Label(e.labels[b])
		for _, inst := range b.Insts {
			if err := e.genValue(inst); err != nil {
				return err
			}
			insnCount++
		}
	}

	if opt.Verbose {
		w.Comment("%s: frame=%d bytes, %s instructions", f.Name, e.frame, humanCount(insnCount))
	}
	return nil
}

// planFrame scans every instruction in f (spec §4.7) to size the frame:
// outgoing-args area (widest call site beyond 8 args), locals area (4 bytes
// for every Load/Binary/GetPtr/GetElemPtr/non-void Call, used or not, plus
// every Alloc's pointee size), and a
// saved-ra slot iff f contains at least one call. The total is padded to a
// 16-byte multiple (spec §8.1 invariant 5).
func (e *Emit) planFrame() {
	e.slots = make(map[*ir.Value]slot)

	outArea := 0
	localsSize := 0

	addLocal := func(v *ir.Value, size int) {
		if _, ok := e.slots[v]; ok {
			return
		}
		e.slots[v] = slot{offset: localsSize}
		localsSize += size
	}

	for _, b := range e.fn.Blocks {
		for _, inst := range b.Insts {
			switch inst.Kind {
			case ir.KindAlloc:
				addLocal(inst, inst.Typ.Elem.Size())
			case ir.KindGetPtr, ir.KindGetElemPtr:
				addLocal(inst, 4)
			case ir.KindLoad, ir.KindBinary:
				addLocal(inst, 4)
			case ir.KindCall:
				if !inst.Callee.RetType.IsUnit() {
					addLocal(inst, 4)
				}
				e.hasRA = true
				if n := len(inst.Args) - 8; n > outArea {
					outArea = n
				}
			}
		}
	}
	if outArea < 0 {
		outArea = 0
	}

	frame := outArea*4 + localsSize
	if e.hasRA {
		frame += 4
	}
	frame = (frame + 15) &^ 15

	// Re-lay out offsets now that the frame size (and hence the base of the
	// locals area, above the outgoing-args area) is known (spec §3.5:
	// "outgoing-args area, locals area, [saved-ra]" low to high).
	for v, s := range e.slots {
		e.slots[v] = slot{offset: outArea*4 + s.offset}
	}
	e.frame = frame
}

// raOffset returns the saved-ra slot's offset, valid only when e.hasRA.
func (e *Emit) raOffset() int { return e.frame - 4 }

// prologue emits the standard entry sequence (spec §4.7): grow the stack by
// frame bytes, and save ra if the function makes any call.
func (e *Emit) prologue() {
	if e.frame == 0 {
		return
	}
	e.addImmSP(-e.frame)
	if e.hasRA {
		e.w.LoadStore("sw", regRA, e.raOffset(), regSP)
	}
}

// epilogue emits the matching exit sequence and a final ret.
func (e *Emit) epilogue() {
	if e.hasRA {
		e.w.LoadStore("lw", regRA, e.raOffset(), regSP)
	}
	if e.frame != 0 {
		e.addImmSP(e.frame)
	}
	e.w.Ins1("ret", "")
}

// addImmSP emits `addi sp, sp, delta`, trampolining through t6 when delta
// overflows addi's 12-bit signed immediate range (spec §4.8's t6 role).
func (e *Emit) addImmSP(delta int) {
	if delta >= -2048 && delta <= 2047 {
		e.w.Ins2imm("addi", regSP, regSP, delta)
		return
	}
	e.w.Write("  li\t%s, %d\n", regT6, delta)
	e.w.Ins3("add", regSP, regSP, regT6)
}

// labelBlocks assigns each basic block a unique assembly label (spec
// §4.9), computed upfront so jump/branch emission can resolve any target
// regardless of emission order.
func (e *Emit) labelBlocks() {
	e.labels = make(map[*ir.BasicBlock]string, len(e.fn.Blocks))
	gen := util.NewLabelGen(e.fn.Name)
	for _, b := range e.fn.Blocks {
		name := b.Name
		if len(name) > 0 && name[0] == '%' {
			name = name[1:]
		}
		e.labels[b] = gen.Next(name)
	}
}

func humanCount(n int) string {
	return util.HumanCount(n)
}
