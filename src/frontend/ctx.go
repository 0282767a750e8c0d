package frontend

import (
	"sysyc/src/ir"
	"sysyc/src/ir/types"
	"sysyc/src/util"
)

// Ctx is the lowering context threaded through every generate method: a
// scoped symbol-table stack, a function table (implicit in ctx.Module), a
// loop stack for break/continue targets, and the position of the IR builder
// (current function/block). Grounded on vslc's util.Stack (scope/loop
// stacks) and on original_source/src/frontend/mod.rs's enter_func/
// leave_func for the single-end-block function shape (spec §8.1 invariant
// 2 and §4.6).
type Ctx struct {
	Module *ir.Module

	scopes util.Stack // of map[string]*SymValue, innermost on top
	loops  util.Stack // of *loopTarget

	Func     *ir.Function
	Block    *ir.BasicBlock
	endBlock *ir.BasicBlock
	retSlot  *ir.Value // nil for void functions
	skipSeq  int
}

type loopTarget struct {
	Continue *ir.BasicBlock
	Break    *ir.BasicBlock
}

// NewCtx builds a fresh lowering context with the runtime library functions
// of spec §4.6 pre-declared (SPEC_FULL §C.1), and the single file-level
// (global) scope pushed.
func NewCtx(moduleName string) *Ctx {
	ctx := &Ctx{Module: ir.CreateModule(moduleName)}
	ctx.PushScope()
	ctx.declareRuntimeLib()
	return ctx
}

func (ctx *Ctx) declareRuntimeLib() {
	i32 := types.I32Type()
	unit := types.UnitType()
	intp := types.PtrTo(i32)
	decl := func(name string, params []*types.Type, ret *types.Type) {
		ctx.Module.CreateFunction(name, params, ret, true)
	}
	decl("getint", nil, i32)
	decl("getch", nil, i32)
	decl("getarray", []*types.Type{intp}, i32)
	decl("putint", []*types.Type{i32}, unit)
	decl("putch", []*types.Type{i32}, unit)
	decl("putarray", []*types.Type{i32, intp}, unit)
	decl("starttime", nil, unit)
	decl("stoptime", nil, unit)
}

// PushScope introduces a new innermost lexical scope.
func (ctx *Ctx) PushScope() {
	ctx.scopes.Push(map[string]*SymValue{})
}

// PopScope discards the innermost lexical scope.
func (ctx *Ctx) PopScope() {
	ctx.scopes.Pop()
}

// Declare binds name in the innermost scope. Redeclaring a name already
// bound in that same scope is a MultiDef error (spec §7); shadowing an
// outer scope's name is permitted. At global scope (ctx.Func == nil, since
// every local declaration happens with a current function set), a variable
// name colliding with an already-declared function is also a MultiDef: spec
// §3.3 forbids shadowing a function name with a variable (or vice versa) at
// global scope.
func (ctx *Ctx) Declare(name string, sym *SymValue) error {
	if ctx.Func == nil && ctx.Module.GetFunction(name) != nil {
		return Errf(MultiDef, "%s is already declared as a function", name)
	}
	scope := ctx.scopes.Peek().(map[string]*SymValue)
	if _, ok := scope[name]; ok {
		return Errf(MultiDef, "%s is already declared in this scope", name)
	}
	scope[name] = sym
	return nil
}

// Lookup searches scopes from innermost to outermost, returning nil if name
// is undeclared.
func (ctx *Ctx) Lookup(name string) *SymValue {
	for i := 1; i <= ctx.scopes.Size(); i++ {
		scope := ctx.scopes.Get(i).(map[string]*SymValue)
		if sym, ok := scope[name]; ok {
			return sym
		}
	}
	return nil
}

// PushLoop records the continue/break targets of an enclosing while loop.
func (ctx *Ctx) PushLoop(cont, brk *ir.BasicBlock) {
	ctx.loops.Push(&loopTarget{Continue: cont, Break: brk})
}

// PopLoop discards the innermost loop's targets.
func (ctx *Ctx) PopLoop() {
	ctx.loops.Pop()
}

// CurrentLoop returns the innermost enclosing loop's targets, or nil outside
// any loop.
func (ctx *Ctx) CurrentLoop() (*ir.BasicBlock, *ir.BasicBlock) {
	top := ctx.loops.Peek()
	if top == nil {
		return nil, nil
	}
	lt := top.(*loopTarget)
	return lt.Continue, lt.Break
}

// SkipBlock opens a fresh, otherwise-unreferenced block and makes it
// current. Used right after emitting a terminator mid-statement-list (a
// return/break/continue that SysY still allows trailing, unreachable
// statements after) so later statements have somewhere syntactically valid
// to land, preserving the one-terminator-per-block invariant (spec §8.1).
func (ctx *Ctx) SkipBlock() {
	ctx.skipSeq++
	b := ctx.Func.CreateBlock("%skipped" + util.ItoA(ctx.skipSeq))
	ctx.Block = b
}

// EnterFunc starts lowering a function body: creates the entry block,
// allocates the return-value slot (for non-void functions), and
// pre-allocates (but does not yet append) the function's single designated
// end block, so `return` statements encountered mid-body can target it.
func (ctx *Ctx) EnterFunc(f *ir.Function) {
	ctx.Func = f
	entry := f.CreateBlock("%entry")
	ctx.Block = entry
	ctx.endBlock = f.NewDetachedBlock("%end")
	if !f.RetType.Equal(types.UnitType()) {
		ctx.retSlot = entry.CreateAlloc(f.RetType)
	} else {
		ctx.retSlot = nil
	}
}

// EmitReturn lowers a `return [Exp];` by storing (if non-void) into the
// return slot and jumping to the function's end block, then opening a skip
// block for any unreachable statements that follow.
func (ctx *Ctx) EmitReturn(val *ir.Value) {
	if ctx.retSlot != nil {
		if val == nil {
			val = ctx.Module.CreateInteger(0)
		}
		ctx.Block.CreateStore(val, ctx.retSlot)
	}
	ctx.Block.CreateJump(ctx.endBlock)
	ctx.SkipBlock()
}

// LeaveFunc closes off the function: if the current block is unterminated
// (falling off the end of the body, or the open skip block a trailing
// return leaves behind), it is routed into the end block too, then the end
// block is appended (always last in f.Blocks) with its single `ret`.
func (ctx *Ctx) LeaveFunc() {
	if !ctx.Block.Terminated() {
		if ctx.retSlot != nil {
			ctx.Block.CreateStore(ctx.Module.CreateInteger(0), ctx.retSlot)
		}
		ctx.Block.CreateJump(ctx.endBlock)
	}
	ctx.Func.Append(ctx.endBlock)
	if ctx.retSlot != nil {
		v := ctx.endBlock.CreateLoad(ctx.retSlot)
		ctx.endBlock.CreateReturn(v)
	} else {
		ctx.endBlock.CreateReturn(nil)
	}
	ctx.Func = nil
	ctx.Block = nil
	ctx.endBlock = nil
	ctx.retSlot = nil
}
