package riscv

import (
	"fmt"

	"sysyc/src/ir"
)

// genValue emits the instruction sequence for one IR value, per spec
// §4.8's per-Kind table. Alloc/Integer/GlobalAlloc/ZeroInit/Aggregate/
// FuncArgRef carry no runtime code of their own — they are addressed or
// staged as operands of the instructions that reference them.
func (e *Emit) genValue(v *ir.Value) error {
	switch v.Kind {
	case ir.KindAlloc:
		return nil
	case ir.KindLoad:
		e.genLoad(v)
	case ir.KindStore:
		e.genStore(v)
	case ir.KindGetPtr, ir.KindGetElemPtr:
		e.genGetPtr(v)
	case ir.KindBinary:
		e.genBinary(v)
	case ir.KindBranch:
		e.genBranch(v)
	case ir.KindJump:
		e.genJump(v)
	case ir.KindCall:
		e.genCall(v)
	case ir.KindReturn:
		e.genReturn(v)
	default:
		return fmt.Errorf("riscv: unsupported instruction kind %d", v.Kind)
	}
	return nil
}

// stage materializes v's *value* into reg (spec §4.8): an immediate for a
// constant, the incoming ABI register (or caller's outgoing-args slot) for
// a parameter, the computed address for an Alloc/GlobalAlloc (whose "value"
// as an operand is its own address), or a plain content fetch from v's own
// slot for everything else (Load/Binary/Call/GetPtr/GetElemPtr results).
func (e *Emit) stage(v *ir.Value, reg string) {
	switch v.Kind {
	case ir.KindInteger:
		e.li(reg, v.IntVal)
	case ir.KindFuncArgRef:
		e.stageArg(v, reg)
	case ir.KindAlloc:
		e.addrOf(reg, e.slots[v].offset, regSP)
	case ir.KindGlobalAlloc:
		e.w.Write("\tla\t%s, %s\n", reg, v.Name)
	default:
		e.loadOff(reg, e.slots[v].offset, regSP)
	}
}

// materializeAddress resolves "the address v denotes" into reg: a direct
// addi/la for an Alloc/GlobalAlloc, or a content fetch for any other value
// (a GetPtr/GetElemPtr result, or a decayed array parameter's own slot)
// whose stored word already IS the target address (spec §4.8, §3.5's
// is_pointer_typed bookkeeping). Load/Store/GetElemPtr/GetPtr base-operand
// resolution all funnel through this one helper.
func (e *Emit) materializeAddress(v *ir.Value, reg string) {
	switch v.Kind {
	case ir.KindAlloc:
		e.addrOf(reg, e.slots[v].offset, regSP)
	case ir.KindGlobalAlloc:
		e.w.Write("\tla\t%s, %s\n", reg, v.Name)
	default:
		e.stage(v, reg)
	}
}

func (e *Emit) genLoad(v *ir.Value) {
	e.materializeAddress(v.Src, regT0)
	e.w.LoadStore("lw", regT0, 0, regT0)
	e.storeToSlot(v, regT0)
}

func (e *Emit) genStore(v *ir.Value) {
	e.materializeAddress(v.Dst, regT1)
	e.stage(v.Val, regT0)
	e.w.LoadStore("sw", regT0, 0, regT1)
}

// genGetPtr computes base + index*elemSize (spec §4.4/§4.8); GetPtr and
// GetElemPtr share this codegen, differing only in which IR builder method
// the frontend used to produce them.
func (e *Emit) genGetPtr(v *ir.Value) {
	e.materializeAddress(v.Base, regT0)
	e.stage(v.Index, regT1)
	elemSize := v.Typ.Elem.Size()
	e.li(regT5, elemSize)
	e.w.Ins3("mul", regT1, regT1, regT5)
	e.w.Ins3("add", regT0, regT0, regT1)
	e.storeToSlot(v, regT0)
}

var binaryOps = map[ir.BinaryOp]string{
	ir.OpAdd: "add",
	ir.OpSub: "sub",
	ir.OpMul: "mul",
	ir.OpDiv: "div",
	ir.OpMod: "rem",
	ir.OpAnd: "and",
	ir.OpOr:  "or",
}

// genBinary lowers one arithmetic/relational/logical op (spec §4.3/§4.8).
// The six relational operators have no single RV32I instruction, so eq/ne
// reduce through sub+seqz/snez and gt/le/ge reduce through slt with
// operands swapped or the result complemented.
func (e *Emit) genBinary(v *ir.Value) {
	e.stage(v.LHS, regT0)
	e.stage(v.RHS, regT1)

	switch v.Op {
	case ir.OpEq:
		e.w.Ins3("sub", regT0, regT0, regT1)
		e.w.Ins2("seqz", regT0, regT0)
	case ir.OpNotEq:
		e.w.Ins3("sub", regT0, regT0, regT1)
		e.w.Ins2("snez", regT0, regT0)
	case ir.OpLt:
		e.w.Ins3("slt", regT0, regT0, regT1)
	case ir.OpGt:
		e.w.Ins3("slt", regT0, regT1, regT0)
	case ir.OpLe:
		e.w.Ins3("slt", regT0, regT1, regT0)
		e.w.Ins2imm("xori", regT0, regT0, 1)
	case ir.OpGe:
		e.w.Ins3("slt", regT0, regT0, regT1)
		e.w.Ins2imm("xori", regT0, regT0, 1)
	default:
		e.w.Ins3(binaryOps[v.Op], regT0, regT0, regT1)
	}
	e.storeToSlot(v, regT0)
}

// genCall marshals up to 8 arguments into a0-a7, spills the rest into the
// callee's slice of this frame's outgoing-args area (spec §3.5/§6.4), emits
// the call, and stores a non-void result out of a0.
func (e *Emit) genCall(v *ir.Value) {
	for i, arg := range v.Args {
		if i < 8 {
			e.stage(arg, argReg(i))
			continue
		}
		e.stage(arg, regT0)
		e.w.LoadStore("sw", regT0, 4*(i-8), regSP)
	}
	e.w.Write("\tcall\t%s\n", v.Callee.Name)
	if !v.Callee.RetType.IsUnit() {
		e.storeToSlot(v, "a0")
	}
}

func (e *Emit) genReturn(v *ir.Value) {
	if v.Val != nil {
		e.stage(v.Val, "a0")
	}
	e.epilogue()
}

func (e *Emit) storeToSlot(v *ir.Value, reg string) {
	e.storeOff(reg, e.slots[v].offset, regSP)
}

// stageArg materializes incoming parameter i (spec §6.4 RV32 ABI): the
// corresponding a-register directly for i<8, or a read from the caller's
// outgoing-args area, now sitting just above this frame, for i>=8.
func (e *Emit) stageArg(v *ir.Value, reg string) {
	if v.ArgIndex < 8 {
		e.w.Ins2("mv", reg, argReg(v.ArgIndex))
		return
	}
	e.loadOff(reg, e.frame+4*(v.ArgIndex-8), regSP)
}

// li emits the `li` pseudo-instruction; the assembler expands it to
// whatever lui/addi sequence an arbitrary 32-bit immediate needs.
func (e *Emit) li(reg string, imm int) {
	e.w.Write("\tli\t%s, %d\n", reg, imm)
}

// addrOf computes base+offset into reg, trampolining through reg itself
// when offset overflows addi's 12-bit signed immediate (spec §4.8's t5/t6
// scratch-register role).
func (e *Emit) addrOf(reg string, offset int, base string) {
	if offset >= -2048 && offset <= 2047 {
		e.w.Ins2imm("addi", reg, base, offset)
		return
	}
	e.li(reg, offset)
	e.w.Ins3("add", reg, reg, base)
}

func (e *Emit) loadOff(reg string, offset int, base string) {
	if offset >= -2048 && offset <= 2047 {
		e.w.LoadStore("lw", reg, offset, base)
		return
	}
	e.li(regT6, offset)
	e.w.Ins3("add", regT6, regT6, base)
	e.w.LoadStore("lw", reg, 0, regT6)
}

func (e *Emit) storeOff(reg string, offset int, base string) {
	if offset >= -2048 && offset <= 2047 {
		e.w.LoadStore("sw", reg, offset, base)
		return
	}
	e.li(regT6, offset)
	e.w.Ins3("add", regT6, regT6, base)
	e.w.LoadStore("sw", reg, 0, regT6)
}
