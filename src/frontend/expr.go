package frontend

import sir "sysyc/src/ir"

// Expression lowering (spec §4.3). Every Exp.generate first tries the
// constant evaluator (eval.go); only on failure does it fall through to
// structural IR lowering. && and || lower to explicit branches rather than
// plain binary ops so the right-hand side is genuinely skipped at runtime
// when short-circuited (spec §4.3, §8.3 scenario 2).

// generate lowers e, trying constant folding first (spec §4.3).
func (e *Exp) generate(ctx *Ctx) (Val, error) {
	if v, err := ctx.evalExp(e); err == nil {
		return intVal(ctx.Module.CreateInteger(v)), nil
	}
	return e.Or.generate(ctx)
}

func (o *LOrExp) generate(ctx *Ctx) (Val, error) {
	lhs, err := o.Head.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	for _, t := range o.Tail {
		lhs, err = ctx.emitShortCircuitOr(lhs, t)
		if err != nil {
			return Val{}, err
		}
	}
	return lhs, nil
}

func (a *LAndExp) generate(ctx *Ctx) (Val, error) {
	lhs, err := a.Head.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	for _, t := range a.Tail {
		lhs, err = ctx.emitShortCircuitAnd(lhs, t)
		if err != nil {
			return Val{}, err
		}
	}
	return lhs, nil
}

// emitShortCircuitAnd lowers `lhs && rhs` per spec §4.3: a 1-slot %result
// initialized to 0, lhs truthy evaluates rhs into %result (normalized to
// 0/1), lhs falsy skips straight to reading %result.
func (ctx *Ctx) emitShortCircuitAnd(lhs Val, rhs *EqExp) (Val, error) {
	result := ctx.Block.CreateAlloc(i32Type())
	ctx.Block.CreateStore(ctx.Module.CreateInteger(0), result)

	lhsIR, err := lhs.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	reval := ctx.Func.CreateBlock("")
	short := ctx.Func.CreateBlock("")
	ctx.Block.CreateBranch(lhsIR, reval, short)

	ctx.Block = reval
	rv, err := rhs.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	rvIR, err := rv.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	norm := ctx.Block.CreateBinary(sir.OpNotEq, rvIR, ctx.Module.CreateInteger(0))
	ctx.Block.CreateStore(norm, result)
	ctx.Block.CreateJump(short)

	ctx.Block = short
	return intVal(ctx.Block.CreateLoad(result)), nil
}

// emitShortCircuitOr mirrors emitShortCircuitAnd: %result starts at 1, lhs
// truthy jumps straight to %short_path, falsy evaluates rhs.
func (ctx *Ctx) emitShortCircuitOr(lhs Val, rhs *LAndExp) (Val, error) {
	result := ctx.Block.CreateAlloc(i32Type())
	ctx.Block.CreateStore(ctx.Module.CreateInteger(1), result)

	lhsIR, err := lhs.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	reval := ctx.Func.CreateBlock("")
	short := ctx.Func.CreateBlock("")
	ctx.Block.CreateBranch(lhsIR, short, reval)

	ctx.Block = reval
	rv, err := rhs.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	rvIR, err := rv.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	norm := ctx.Block.CreateBinary(sir.OpNotEq, rvIR, ctx.Module.CreateInteger(0))
	ctx.Block.CreateStore(norm, result)
	ctx.Block.CreateJump(short)

	ctx.Block = short
	return intVal(ctx.Block.CreateLoad(result)), nil
}

func (e *EqExp) generate(ctx *Ctx) (Val, error) {
	lhs, err := e.Head.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	if len(e.Tail) == 0 {
		return lhs, nil
	}
	lv, err := lhs.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	for _, t := range e.Tail {
		rv, err := t.Exp.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		rvIR, err := rv.AsInt(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		var op sir.BinaryOp
		if t.Op == "==" {
			op = sir.OpEq
		} else {
			op = sir.OpNotEq
		}
		lv = ctx.Block.CreateBinary(op, lv, rvIR)
	}
	return intVal(lv), nil
}

func (r *RelExp) generate(ctx *Ctx) (Val, error) {
	lhs, err := r.Head.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	if len(r.Tail) == 0 {
		return lhs, nil
	}
	lv, err := lhs.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	for _, t := range r.Tail {
		rv, err := t.Exp.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		rvIR, err := rv.AsInt(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		var op sir.BinaryOp
		switch t.Op {
		case "<":
			op = sir.OpLt
		case ">":
			op = sir.OpGt
		case "<=":
			op = sir.OpLe
		case ">=":
			op = sir.OpGe
		}
		lv = ctx.Block.CreateBinary(op, lv, rvIR)
	}
	return intVal(lv), nil
}

func (a *AddExp) generate(ctx *Ctx) (Val, error) {
	lhs, err := a.Head.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	if len(a.Tail) == 0 {
		return lhs, nil
	}
	lv, err := lhs.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	for _, t := range a.Tail {
		rv, err := t.Exp.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		rvIR, err := rv.AsInt(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		var op sir.BinaryOp
		if t.Op == "+" {
			op = sir.OpAdd
		} else {
			op = sir.OpSub
		}
		lv = ctx.Block.CreateBinary(op, lv, rvIR)
	}
	return intVal(lv), nil
}

func (m *MulExp) generate(ctx *Ctx) (Val, error) {
	lhs, err := m.Head.generate(ctx)
	if err != nil {
		return Val{}, err
	}
	if len(m.Tail) == 0 {
		return lhs, nil
	}
	lv, err := lhs.AsInt(ctx.Block)
	if err != nil {
		return Val{}, err
	}
	for _, t := range m.Tail {
		rv, err := t.Exp.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		rvIR, err := rv.AsInt(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		var op sir.BinaryOp
		switch t.Op {
		case "*":
			op = sir.OpMul
		case "/":
			op = sir.OpDiv
		case "%":
			op = sir.OpMod
		}
		lv = ctx.Block.CreateBinary(op, lv, rvIR)
	}
	return intVal(lv), nil
}

func (u *UnaryExp) generate(ctx *Ctx) (Val, error) {
	switch {
	case u.Unary != nil:
		v, err := u.Unary.Operand.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		switch u.Unary.Op {
		case "+":
			return v, nil
		case "-":
			vIR, err := v.AsInt(ctx.Block)
			if err != nil {
				return Val{}, err
			}
			return intVal(ctx.Block.CreateBinary(sir.OpSub, ctx.Module.CreateInteger(0), vIR)), nil
		default: // "!"
			vIR, err := v.AsInt(ctx.Block)
			if err != nil {
				return Val{}, err
			}
			return intVal(ctx.Block.CreateBinary(sir.OpEq, ctx.Module.CreateInteger(0), vIR)), nil
		}
	case u.Call != nil:
		return u.Call.generate(ctx)
	default:
		return u.Primary.generate(ctx)
	}
}

// generate lowers a call expression (spec §4.3's FuncCall rule): arguments
// are lowered left to right, then the call is emitted. A void callee
// yields CatNav; any other return type yields CatInt.
func (c *CallExp) generate(ctx *Ctx) (Val, error) {
	fn := ctx.Module.GetFunction(c.Name)
	if fn == nil {
		return Val{}, Errf(UndeclaredID, "call to undeclared function %s", c.Name)
	}
	if len(c.Args) != len(fn.ParamTyp) {
		return Val{}, Errf(InvalidValueType, "%s expects %d arguments, got %d", c.Name, len(fn.ParamTyp), len(c.Args))
	}
	args := make([]*sir.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := a.generate(ctx)
		if err != nil {
			return Val{}, err
		}
		arg, err := v.AsVal(ctx.Block)
		if err != nil {
			return Val{}, err
		}
		args[i] = arg
	}
	call := ctx.Block.CreateCall(fn, args)
	if fn.RetType.IsUnit() {
		return navVal(), nil
	}
	return intVal(call), nil
}

func (p *PrimaryExp) generate(ctx *Ctx) (Val, error) {
	switch {
	case p.Paren != nil:
		return p.Paren.generate(ctx)
	case p.LVal != nil:
		return p.LVal.generate(ctx)
	default:
		n, err := parseIntLiteral(*p.Number)
		if err != nil {
			return Val{}, err
		}
		return intVal(ctx.Module.CreateInteger(n)), nil
	}
}
