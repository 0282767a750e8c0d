package frontend

import sir "sysyc/src/ir"

// generate lowers an LVal reference (spec §4.4). A scalar constant
// substitutes its folded value directly; everything else resolves to
// addressable IR storage that callers coerce via Val.AsVal/AsPtr.
func (lv *LVal) generate(ctx *Ctx) (Val, error) {
	sym := ctx.Lookup(lv.Name)
	if sym == nil {
		return Val{}, Errf(UndeclaredID, "undeclared identifier %s", lv.Name)
	}

	// Scalar constant: substituted at use, never addressable (spec §4.4).
	if sym.IsConst && sym.Dims == nil {
		if len(lv.Idx) > 0 {
			return Val{}, Errf(InvalidValueType, "%s is a scalar constant, cannot be indexed", lv.Name)
		}
		return intVal(ctx.Module.CreateInteger(sym.Const)), nil
	}

	// Plain scalar variable (or parameter).
	if sym.Dims == nil {
		if len(lv.Idx) > 0 {
			return Val{}, Errf(InvalidValueType, "%s is not an array", lv.Name)
		}
		return ptrVal(sym.Value), nil
	}

	// Array (declared, or decayed parameter). Consume each subscript,
	// tracking the dimensions still unindexed.
	dimsLeft := sym.Dims
	indices := lv.Idx
	var ptr *sir.Value

	if sym.IsParamArray {
		base := ctx.Block.CreateLoad(sym.Value) // materialize the incoming pointer (spec §4.4)
		if len(indices) == 0 {
			// Already a pointer; no decay needed (spec §4.4 exception).
			return aptrVal(base), nil
		}
		iv, err := indices[0].generate(ctx)
		if err != nil {
			return Val{}, err
		}
		ivIR, err := iv.AsInt(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		// The decayed first dimension has no entry in sym.Dims (it already
		// collapsed into the parameter's own pointer type), so this
		// subscript consumes no dimsLeft entry, unlike the GetElemPtr
		// subscripts below.
		ptr = ctx.Block.CreateGetPtr(base, ivIR)
		indices = indices[1:]
	} else {
		ptr = sym.Value
	}

	for _, ix := range indices {
		iv, err := ix.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		ivIR, err := iv.AsInt(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		ptr = ctx.Block.CreateGetElemPtr(ptr, ivIR)
		dimsLeft = dimsLeft[1:]
	}

	if len(dimsLeft) == 0 {
		return ptrVal(ptr), nil
	}
	// Partially indexed: decay to a pointer to the next sub-array (spec §4.4).
	ptr = ctx.Block.CreateGetElemPtr(ptr, ctx.Module.CreateInteger(0))
	return aptrVal(ptr), nil
}
