package ir

import "sysyc/src/ir/types"

// BasicBlock is a straight-line sequence of instructions ending in exactly
// one terminator (branch/jump/return), per spec §3.2 and §8.1 invariant 1.
type BasicBlock struct {
	Name  string
	Func  *Function
	Insts []*Value
}

func (b *BasicBlock) append(v *Value) *Value {
	v.Block = b
	b.Insts = append(b.Insts, v)
	return v
}

// Terminated reports whether b already ends in a terminator instruction.
func (b *BasicBlock) Terminated() bool {
	return len(b.Insts) > 0 && b.Insts[len(b.Insts)-1].IsTerminator()
}

func (b *BasicBlock) next(kind Kind, t *types.Type) *Value {
	v := &Value{ID: b.Func.module.nextID(), Typ: t, Kind: kind}
	return v
}

// CreateAlloc allocates stack storage for a value of type elem and returns
// a pointer-to-elem value. Globals use Module.CreateGlobalAlloc instead.
func (b *BasicBlock) CreateAlloc(elem *types.Type) *Value {
	v := b.next(KindAlloc, types.PtrTo(elem))
	return b.append(v)
}

// CreateLoad reads the value pointed to by src.
func (b *BasicBlock) CreateLoad(src *Value) *Value {
	v := b.next(KindLoad, src.Typ.Elem)
	v.Src = src
	return b.append(v)
}

// CreateStore writes val to the location pointed to by dst.
func (b *BasicBlock) CreateStore(val, dst *Value) *Value {
	v := b.next(KindStore, types.UnitType())
	v.Val = val
	v.Dst = dst
	return b.append(v)
}

// CreateGetElemPtr indexes into an array-typed pointer base, producing a
// pointer to the element type. Used for array subscripting where base still
// carries array type (spec §4.4: every subscript on a declared array, and
// every subscript after the first on an array parameter).
func (b *BasicBlock) CreateGetElemPtr(base, index *Value) *Value {
	v := b.next(KindGetElemPtr, types.PtrTo(base.Typ.Elem.Elem))
	v.Base = base
	v.Index = index
	return b.append(v)
}

// CreateGetPtr indexes into a pointer-typed base (a decayed array parameter),
// producing a pointer to the same pointee type (spec §4.4: the first
// subscript on an array parameter).
func (b *BasicBlock) CreateGetPtr(base, index *Value) *Value {
	v := b.next(KindGetPtr, types.PtrTo(base.Typ.Elem))
	v.Base = base
	v.Index = index
	return b.append(v)
}

// CreateBinary builds an arithmetic/relational/logical binary instruction.
func (b *BasicBlock) CreateBinary(op BinaryOp, lhs, rhs *Value) *Value {
	v := b.next(KindBinary, types.I32Type())
	v.Op = op
	v.LHS = lhs
	v.RHS = rhs
	return b.append(v)
}

// CreateBranch terminates b with a conditional branch to whenTrue/whenFalse.
func (b *BasicBlock) CreateBranch(cond *Value, whenTrue, whenFalse *BasicBlock) *Value {
	v := b.next(KindBranch, types.UnitType())
	v.Cond = cond
	v.True = whenTrue
	v.False = whenFalse
	return b.append(v)
}

// CreateJump terminates b with an unconditional jump to target.
func (b *BasicBlock) CreateJump(target *BasicBlock) *Value {
	v := b.next(KindJump, types.UnitType())
	v.Jump = target
	return b.append(v)
}

// CreateCall invokes callee with args. The result's type is callee's return type.
func (b *BasicBlock) CreateCall(callee *Function, args []*Value) *Value {
	v := b.next(KindCall, callee.RetType)
	v.Callee = callee
	v.Args = args
	return b.append(v)
}

// CreateReturn terminates b, optionally returning val (nil for a unit
// function). Every function must route its returns into a single designated
// end block per spec §8.1 invariant 2; EnterFunc/LeaveFunc in the frontend
// enforce that by construction rather than here.
func (b *BasicBlock) CreateReturn(val *Value) *Value {
	v := b.next(KindReturn, types.UnitType())
	v.Val = val
	return b.append(v)
}
