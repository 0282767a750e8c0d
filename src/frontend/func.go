package frontend

import styp "sysyc/src/ir/types"

// generate lowers a function definition (spec §4.6): declares it in the
// module's flat function table, opens one shared scope for parameters and
// the body's top-level block items, then wires EnterFunc/LeaveFunc around
// the body so every `return` routes through the function's single end
// block (spec §8.1 invariant 2).
func (fd *FuncDef) generate(ctx *Ctx) error {
	if ctx.Module.GetFunction(fd.Name) != nil {
		return Errf(MultiDef, "function %s already declared", fd.Name)
	}
	if sym := ctx.Lookup(fd.Name); sym != nil {
		return Errf(MultiDef, "%s is already declared as a global variable", fd.Name)
	}

	paramTypes := make([]*styp.Type, len(fd.Params))
	paramDims := make([][]int, len(fd.Params))
	for i, p := range fd.Params {
		if p.Array == nil {
			paramTypes[i] = i32Type()
			continue
		}
		dims, err := ctx.evalDims(p.Array.Dims)
		if err != nil {
			return err
		}
		paramDims[i] = dims
		if len(dims) == 0 {
			paramTypes[i] = styp.PtrTo(i32Type())
		} else {
			paramTypes[i] = styp.PtrTo(buildArrayType(dims))
		}
	}
	retType := i32Type()
	if fd.RetType == "void" {
		retType = styp.UnitType()
	}

	f := ctx.Module.CreateFunction(fd.Name, paramTypes, retType, false)

	ctx.PushScope()
	ctx.EnterFunc(f)

	for i, p := range fd.Params {
		slot := ctx.Block.CreateAlloc(paramTypes[i])
		ctx.Block.CreateStore(f.Params[i], slot)
		sym := &SymValue{Value: slot, Type: i32Type()}
		if p.Array != nil {
			sym.Dims = paramDims[i]
			sym.IsParamArray = true
		}
		if err := ctx.Declare(p.Name, sym); err != nil {
			return err
		}
	}

	for _, item := range fd.Body.Items {
		if err := item.generate(ctx); err != nil {
			return err
		}
	}

	ctx.LeaveFunc()
	ctx.PopScope()
	return nil
}
