package frontend

import sir "sysyc/src/ir"

// generate lowers a declaration (spec §4.2/§4.6), dispatching to const or
// variable handling and to global vs. local storage depending on whether
// ctx.Func is set.
func (d *Decl) generate(ctx *Ctx) error {
	switch {
	case d.Const != nil:
		return d.Const.generate(ctx)
	default:
		return d.Var.generate(ctx)
	}
}

func (cd *ConstDecl) generate(ctx *Ctx) error {
	for _, def := range cd.Defs {
		if err := def.generate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (def *ConstDef) generate(ctx *Ctx) error {
	dims, err := ctx.evalDims(def.Dims)
	if err != nil {
		return err
	}

	if len(dims) == 0 {
		if def.Init.Exp == nil {
			return Errf(InvalidInitializer, "const %s requires a scalar initializer", def.Name)
		}
		v, err := ctx.EvalConstExp(def.Init.Exp)
		if err != nil {
			return err
		}
		return ctx.Declare(def.Name, &SymValue{IsConst: true, Const: v})
	}

	flat, err := FlattenConstInit(def.Init, dims)
	if err != nil {
		return err
	}
	data := make([]int, len(flat))
	for i, e := range flat {
		if e == nil {
			continue
		}
		v, err := ctx.EvalConstExp(e)
		if err != nil {
			return err
		}
		data[i] = v
	}

	// Const arrays still get real IR storage: spec §4.4 requires `a[i]`
	// with a runtime-only index to work, not just constant-index reads.
	value, err := ctx.declareArrayStorage(def.Name, dims, nil, data)
	if err != nil {
		return err
	}
	value.IsConst = true
	value.ConstData = data
	return ctx.Declare(def.Name, value)
}

func (vd *VarDecl) generate(ctx *Ctx) error {
	for _, def := range vd.Defs {
		if err := def.generate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (def *VarDef) generate(ctx *Ctx) error {
	dims, err := ctx.evalDims(def.Dims)
	if err != nil {
		return err
	}

	if len(dims) == 0 {
		return ctx.declareScalarVar(def.Name, def.Init)
	}
	sym, err := ctx.declareArrayStorage(def.Name, dims, def.Init, nil)
	if err != nil {
		return err
	}
	return ctx.Declare(def.Name, sym)
}

// declareScalarVar lowers a scalar variable declaration, global or local.
func (ctx *Ctx) declareScalarVar(name string, init *InitVal) error {
	if ctx.Func == nil {
		v := 0
		if init != nil {
			if init.Exp == nil {
				return Errf(InvalidInitializer, "%s requires a scalar initializer", name)
			}
			folded, err := ctx.evalExp(init.Exp)
			if err != nil {
				return Errf(InvalidInitializer, "global initializer for %s must be a constant expression: %v", name, err)
			}
			v = folded
		}
		ga := ctx.Module.CreateGlobalAlloc(name, i32Type(), ctx.Module.CreateInteger(v))
		return ctx.Declare(name, &SymValue{Value: ga, Type: i32Type()})
	}

	alloc := ctx.Block.CreateAlloc(i32Type())
	if init != nil {
		if init.Exp == nil {
			return Errf(InvalidInitializer, "%s requires a scalar initializer", name)
		}
		val, err := init.Exp.generate(ctx)
		if err != nil {
			return err
		}
		valIR, err := val.AsInt(ctx.Block)
		if err != nil {
			return err
		}
		ctx.Block.CreateStore(valIR, alloc)
	}
	return ctx.Declare(name, &SymValue{Value: alloc, Type: i32Type()})
}

// declareArrayStorage builds the array's storage (global or local) and
// fills it from init (a VarDef's *InitVal) or constData (a ConstDef's
// already-folded flat data), per spec §4.2's fill/reshape pipeline. It
// returns the SymValue to bind but does not bind it, so ConstDef.generate
// can stamp IsConst/ConstData on top first.
func (ctx *Ctx) declareArrayStorage(name string, dims []int, init *InitVal, constData []int) (*SymValue, error) {
	arrType := buildArrayType(dims)

	if ctx.Func == nil {
		var initVal *sir.Value
		switch {
		case constData != nil:
			initVal = buildAggregate(ctx, dims, constData)
		case init != nil:
			flat, err := FlattenVarInit(init, dims)
			if err != nil {
				return nil, err
			}
			data := make([]int, len(flat))
			for i, e := range flat {
				if e == nil {
					continue
				}
				v, err := ctx.evalExp(e)
				if err != nil {
					return nil, Errf(InvalidInitializer, "global initializer for %s must be constant: %v", name, err)
				}
				data[i] = v
			}
			initVal = buildAggregate(ctx, dims, data)
		default:
			initVal = ctx.Module.CreateZeroInit(arrType)
		}
		ga := ctx.Module.CreateGlobalAlloc(name, arrType, initVal)
		return &SymValue{Value: ga, Type: i32Type(), Dims: dims}, nil
	}

	alloc := ctx.Block.CreateAlloc(arrType)
	switch {
	case constData != nil:
		ctx.fillLocalArrayConst(alloc, dims, constData)
	case init != nil:
		flat, err := FlattenVarInit(init, dims)
		if err != nil {
			return nil, err
		}
		if err := ctx.fillLocalArray(alloc, dims, flat); err != nil {
			return nil, err
		}
	}
	return &SymValue{Value: alloc, Type: i32Type(), Dims: dims}, nil
}

// fillLocalArrayConst mirrors fillLocalArray for an already-folded constant
// array (a local `const int a[...] = {...}` declaration).
func (ctx *Ctx) fillLocalArrayConst(base *sir.Value, dims []int, flat []int) {
	if len(dims) == 1 {
		for i := 0; i < dims[0]; i++ {
			ptr := ctx.Block.CreateGetElemPtr(base, ctx.Module.CreateInteger(i))
			ctx.Block.CreateStore(ctx.Module.CreateInteger(flat[i]), ptr)
		}
		return
	}
	chunk := product(dims[1:])
	for i := 0; i < dims[0]; i++ {
		sub := ctx.Block.CreateGetElemPtr(base, ctx.Module.CreateInteger(i))
		ctx.fillLocalArrayConst(sub, dims[1:], flat[i*chunk:(i+1)*chunk])
	}
}

// fillLocalArray walks dims recursively, emitting a get_elem_ptr chain to
// each leaf cell and storing its (possibly implicit-zero) value, per spec
// §4.2's "sequence of stores via get_elem_ptr chains" rendering for locals.
func (ctx *Ctx) fillLocalArray(base *sir.Value, dims []int, flat []*Exp) error {
	if len(dims) == 1 {
		for i := 0; i < dims[0]; i++ {
			ptr := ctx.Block.CreateGetElemPtr(base, ctx.Module.CreateInteger(i))
			val := ctx.Module.CreateInteger(0)
			if flat[i] != nil {
				v, err := flat[i].generate(ctx)
				if err != nil {
					return err
				}
				vIR, err := v.AsInt(ctx.Block)
				if err != nil {
					return err
				}
				val = vIR
			}
			ctx.Block.CreateStore(val, ptr)
		}
		return nil
	}
	chunk := product(dims[1:])
	for i := 0; i < dims[0]; i++ {
		sub := ctx.Block.CreateGetElemPtr(base, ctx.Module.CreateInteger(i))
		if err := ctx.fillLocalArray(sub, dims[1:], flat[i*chunk:(i+1)*chunk]); err != nil {
			return err
		}
	}
	return nil
}

// buildAggregate recursively chunks a flat constant array by the outermost
// dimension into nested IR Aggregate values (spec §4.2's reshape phase,
// rendered for global emission).
func buildAggregate(ctx *Ctx, dims []int, flat []int) *sir.Value {
	t := buildArrayType(dims)
	if len(dims) == 1 {
		elems := make([]*sir.Value, dims[0])
		for i := range elems {
			elems[i] = ctx.Module.CreateInteger(flat[i])
		}
		return ctx.Module.CreateAggregate(t, elems)
	}
	chunk := product(dims[1:])
	elems := make([]*sir.Value, dims[0])
	for i := range elems {
		elems[i] = buildAggregate(ctx, dims[1:], flat[i*chunk:(i+1)*chunk])
	}
	return ctx.Module.CreateAggregate(t, elems)
}
