package riscv

import (
	"sysyc/src/ir"
	"sysyc/src/util"
)

// genBranch lowers a conditional branch (spec §4.5/§4.8). RISC-V's bnez has
// a much narrower reach than j, so the condition only ever branches to a
// same-function trampoline label immediately below it; the trampoline then
// falls through to an unconditional j for the false arm, or jumps past it
// for the true arm — keeping every actual edge within j's range regardless
// of how far apart the two target blocks end up.
func (e *Emit) genBranch(v *ir.Value) {
	e.stage(v.Cond, regT0)

	trampoline := e.newTrampoline()
	e.w.Write("\tbnez\t%s, %s\n", regT0, trampoline)
	e.w.Write("\tj\t%s\n", e.labels[v.False])
	e.w.Label(trampoline)
	e.w.Write("\tj\t%s\n", e.labels[v.True])
}

func (e *Emit) genJump(v *ir.Value) {
	e.w.Write("\tj\t%s\n", e.labels[v.Jump])
}

func (e *Emit) newTrampoline() string {
	e.tmpSeq++
	return ".L_" + e.fn.Name + "_bt" + util.ItoA(e.tmpSeq)
}
