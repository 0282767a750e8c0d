// Package llvm renders a lowered, validated ir.Module as LLVM textual IR.
// This backs the CLI's -llvm mode (SPEC_FULL §B.2): the teacher ships two
// complete code-generation targets (vslc's backend/riscv and backend/arm);
// SPEC_FULL keeps that "more than one target" shape but replaces the
// teacher's tinygo.org/x/go-llvm (cgo bindings onto a native LLVM install,
// see DESIGN.md for why that dependency has no home here) with the pure-Go
// github.com/llir/llvm builder sentra also uses, so the alternate path needs
// nothing beyond the Go toolchain to produce textual IR.
package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	sir "sysyc/src/ir"
	styp "sysyc/src/ir/types"
)

// Transform walks m and returns the equivalent github.com/llir/llvm module.
func Transform(m *sir.Module) (*ir.Module, error) {
	out := ir.NewModule()
	t := &translator{
		out:     out,
		funcs:   make(map[*sir.Function]*ir.Func),
		globals: make(map[*sir.Value]*ir.Global),
	}
	for _, g := range m.Globals {
		t.declareGlobal(g)
	}
	for _, f := range m.Funcs {
		t.declareFunc(f)
	}
	for _, f := range m.Funcs {
		if f.Decl {
			continue
		}
		if err := t.defineFunc(f); err != nil {
			return nil, fmt.Errorf("llvm: function %s: %w", f.Name, err)
		}
	}
	return out, nil
}

type translator struct {
	out     *ir.Module
	funcs   map[*sir.Function]*ir.Func
	globals map[*sir.Value]*ir.Global
	vals    map[*sir.Value]value.Value
	blocks  map[*sir.BasicBlock]*ir.Block
}

func llType(t *styp.Type) types.Type {
	switch t.Kind {
	case styp.I32:
		return types.I32
	case styp.Unit:
		return types.Void
	case styp.Pointer:
		return types.NewPointer(llType(t.Elem))
	case styp.Array:
		return types.NewArray(uint64(t.Len), llType(t.Elem))
	default:
		return types.Void
	}
}

func (t *translator) declareGlobal(g *sir.Value) {
	elem := llType(g.Typ.Elem)
	def := t.out.NewGlobalDef(g.Name, llConst(g.Val, elem))
	t.globals[g] = def
}

func llConst(v *sir.Value, elem types.Type) constant.Constant {
	switch v.Kind {
	case sir.KindInteger:
		return constant.NewInt(types.I32, int64(v.IntVal))
	case sir.KindZeroInit:
		return constant.NewZeroInitializer(elem)
	case sir.KindAggregate:
		arr, ok := elem.(*types.ArrayType)
		if !ok {
			return constant.NewZeroInitializer(elem)
		}
		elems := make([]constant.Constant, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = llConst(e, arr.ElemType)
		}
		return constant.NewArray(arr, elems...)
	default:
		return constant.NewZeroInitializer(elem)
	}
}

func (t *translator) declareFunc(f *sir.Function) {
	params := make([]*ir.Param, len(f.ParamTyp))
	for i, pt := range f.ParamTyp {
		params[i] = ir.NewParam(fmt.Sprintf("a%d", i), llType(pt))
	}
	fn := t.out.NewFunc(f.Name, llType(f.RetType), params...)
	t.funcs[f] = fn
}

func (t *translator) defineFunc(f *sir.Function) error {
	fn := t.funcs[f]
	t.vals = make(map[*sir.Value]value.Value, 32)
	t.blocks = make(map[*sir.BasicBlock]*ir.Block, len(f.Blocks))
	for i, p := range f.Params {
		t.vals[p] = fn.Params[i]
	}
	for _, b := range f.Blocks {
		t.blocks[b] = fn.NewBlock(blockName(b))
	}
	for _, b := range f.Blocks {
		if err := t.defineBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func blockName(b *sir.BasicBlock) string {
	if len(b.Name) > 0 && b.Name[0] == '%' {
		return b.Name[1:]
	}
	return b.Name
}

func (t *translator) operand(v *sir.Value) value.Value {
	if v.Kind == sir.KindInteger {
		return constant.NewInt(types.I32, int64(v.IntVal))
	}
	if v.Kind == sir.KindGlobalAlloc {
		return t.globals[v]
	}
	return t.vals[v]
}

func (t *translator) defineBlock(b *sir.BasicBlock) error {
	blk := t.blocks[b]
	for _, inst := range b.Insts {
		switch inst.Kind {
		case sir.KindAlloc:
			t.vals[inst] = blk.NewAlloca(llType(inst.Typ.Elem))
		case sir.KindLoad:
			t.vals[inst] = blk.NewLoad(llType(inst.Typ), t.operand(inst.Src))
		case sir.KindStore:
			blk.NewStore(t.operand(inst.Val), t.operand(inst.Dst))
		case sir.KindGetElemPtr:
			zero := constant.NewInt(types.I32, 0)
			t.vals[inst] = blk.NewGetElementPtr(llType(inst.Base.Typ.Elem), t.operand(inst.Base), zero, t.operand(inst.Index))
		case sir.KindGetPtr:
			t.vals[inst] = blk.NewGetElementPtr(llType(inst.Base.Typ.Elem), t.operand(inst.Base), t.operand(inst.Index))
		case sir.KindBinary:
			t.vals[inst] = t.binary(blk, inst)
		case sir.KindBranch:
			blk.NewCondBr(t.operand(inst.Cond), t.blocks[inst.True], t.blocks[inst.False])
		case sir.KindJump:
			blk.NewBr(t.blocks[inst.Jump])
		case sir.KindCall:
			args := make([]value.Value, len(inst.Args))
			for i, a := range inst.Args {
				args[i] = t.operand(a)
			}
			call := blk.NewCall(t.funcs[inst.Callee], args...)
			t.vals[inst] = call
		case sir.KindReturn:
			if inst.Val == nil {
				blk.NewRet(nil)
			} else {
				blk.NewRet(t.operand(inst.Val))
			}
		default:
			return fmt.Errorf("unhandled ir kind %v", inst.Kind)
		}
	}
	return nil
}

func (t *translator) binary(blk *ir.Block, inst *sir.Value) value.Value {
	l, r := t.operand(inst.LHS), t.operand(inst.RHS)
	switch inst.Op {
	case sir.OpAdd:
		return blk.NewAdd(l, r)
	case sir.OpSub:
		return blk.NewSub(l, r)
	case sir.OpMul:
		return blk.NewMul(l, r)
	case sir.OpDiv:
		return blk.NewSDiv(l, r)
	case sir.OpMod:
		return blk.NewSRem(l, r)
	case sir.OpAnd:
		return blk.NewAnd(l, r)
	case sir.OpOr:
		return blk.NewOr(l, r)
	case sir.OpEq:
		return zext(blk, blk.NewICmp(enum.IPredEQ, l, r))
	case sir.OpNotEq:
		return zext(blk, blk.NewICmp(enum.IPredNE, l, r))
	case sir.OpGt:
		return zext(blk, blk.NewICmp(enum.IPredSGT, l, r))
	case sir.OpLt:
		return zext(blk, blk.NewICmp(enum.IPredSLT, l, r))
	case sir.OpGe:
		return zext(blk, blk.NewICmp(enum.IPredSGE, l, r))
	case sir.OpLe:
		return zext(blk, blk.NewICmp(enum.IPredSLE, l, r))
	default:
		return constant.NewInt(types.I32, 0)
	}
}

func zext(blk *ir.Block, cmp value.Value) value.Value {
	return blk.NewZExt(cmp, types.I32)
}
