package frontend

import "strconv"

// Eval implements spec §4.1's constant evaluator: folding a ConstExp (the
// same LOrExp-rooted grammar as a runtime Exp, spec §6.2) down to an int at
// compile time, resolving identifiers against already-declared constants in
// scope. EvalConstExpFail (spec §7) is raised for anything not reducible: an
// undeclared name, a non-constant variable, or an out-of-range array index.
// && and || short-circuit during folding exactly as they do at runtime
// (spec §4.1), so `0 && (1/0)` folds to 0 without ever evaluating the
// right-hand side.

// EvalConstExp folds e to a compile-time int.
func (ctx *Ctx) EvalConstExp(e *ConstExp) (int, error) {
	if e == nil {
		return 0, Errf(EvalConstExpFail, "missing constant expression")
	}
	return ctx.evalExp(e.Exp)
}

func (ctx *Ctx) evalExp(e *Exp) (int, error) {
	return ctx.evalOr(e.Or)
}

// evalOr folds `LAndExp { "||" LAndExp }`, short-circuiting like C: once a
// disjunct folds to a nonzero constant, later disjuncts need not even be
// constant-evaluable.
func (ctx *Ctx) evalOr(o *LOrExp) (int, error) {
	v, err := ctx.evalAnd(o.Head)
	if err != nil {
		return 0, err
	}
	result := v != 0
	for _, t := range o.Tail {
		if result {
			continue
		}
		r, err := ctx.evalAnd(t)
		if err != nil {
			return 0, err
		}
		result = result || r != 0
	}
	if result {
		return 1, nil
	}
	return 0, nil
}

// evalAnd folds `EqExp { "&&" EqExp }`, short-circuiting on the first
// conjunct that folds to zero.
func (ctx *Ctx) evalAnd(a *LAndExp) (int, error) {
	v, err := ctx.evalEq(a.Head)
	if err != nil {
		return 0, err
	}
	result := v != 0
	for _, t := range a.Tail {
		if !result {
			continue
		}
		r, err := ctx.evalEq(t)
		if err != nil {
			return 0, err
		}
		result = result && r != 0
	}
	if result {
		return 1, nil
	}
	return 0, nil
}

func (ctx *Ctx) evalEq(e *EqExp) (int, error) {
	v, err := ctx.evalRel(e.Head)
	if err != nil {
		return 0, err
	}
	for _, t := range e.Tail {
		r, err := ctx.evalRel(t.Exp)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case "==":
			v = boolToInt(v == r)
		case "!=":
			v = boolToInt(v != r)
		}
	}
	return v, nil
}

func (ctx *Ctx) evalRel(r *RelExp) (int, error) {
	v, err := ctx.evalAdd(r.Head)
	if err != nil {
		return 0, err
	}
	for _, t := range r.Tail {
		rhs, err := ctx.evalAdd(t.Exp)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case "<":
			v = boolToInt(v < rhs)
		case ">":
			v = boolToInt(v > rhs)
		case "<=":
			v = boolToInt(v <= rhs)
		case ">=":
			v = boolToInt(v >= rhs)
		}
	}
	return v, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (ctx *Ctx) evalAdd(a *AddExp) (int, error) {
	v, err := ctx.evalMul(a.Head)
	if err != nil {
		return 0, err
	}
	for _, t := range a.Tail {
		r, err := ctx.evalMul(t.Exp)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case "+":
			v += r
		case "-":
			v -= r
		}
	}
	return v, nil
}

func (ctx *Ctx) evalMul(m *MulExp) (int, error) {
	v, err := ctx.evalUnary(m.Head)
	if err != nil {
		return 0, err
	}
	for _, t := range m.Tail {
		r, err := ctx.evalUnary(t.Exp)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case "*":
			v *= r
		case "/":
			if r == 0 {
				return 0, Errf(EvalConstExpFail, "division by zero in constant expression")
			}
			v /= r
		case "%":
			if r == 0 {
				return 0, Errf(EvalConstExpFail, "modulo by zero in constant expression")
			}
			v %= r
		}
	}
	return v, nil
}

func (ctx *Ctx) evalUnary(u *UnaryExp) (int, error) {
	switch {
	case u.Unary != nil:
		v, err := ctx.evalUnary(u.Unary.Operand)
		if err != nil {
			return 0, err
		}
		switch u.Unary.Op {
		case "-":
			return -v, nil
		case "!":
			if v == 0 {
				return 1, nil
			}
			return 0, nil
		default:
			return v, nil
		}
	case u.Call != nil:
		return 0, Errf(EvalConstExpFail, "function call %s is not a constant expression", u.Call.Name)
	case u.Primary != nil:
		return ctx.evalPrimary(u.Primary)
	default:
		return 0, Errf(EvalConstExpFail, "malformed expression")
	}
}

func (ctx *Ctx) evalPrimary(p *PrimaryExp) (int, error) {
	switch {
	case p.Number != nil:
		return parseIntLiteral(*p.Number)
	case p.Paren != nil:
		return ctx.evalExp(p.Paren)
	case p.LVal != nil:
		return ctx.evalLVal(p.LVal)
	default:
		return 0, Errf(EvalConstExpFail, "malformed primary expression")
	}
}

func (ctx *Ctx) evalLVal(lv *LVal) (int, error) {
	sym := ctx.Lookup(lv.Name)
	if sym == nil {
		return 0, Errf(EvalConstExpFail, "undeclared identifier %s in constant expression", lv.Name)
	}
	if !sym.IsConst {
		return 0, Errf(EvalConstExpFail, "%s is not a constant", lv.Name)
	}
	if len(lv.Idx) == 0 {
		if sym.Dims != nil {
			return 0, Errf(EvalConstExpFail, "%s is an array, not a scalar constant", lv.Name)
		}
		return sym.Const, nil
	}
	idx := 0
	stride := 1
	// Flatten the subscript chain against row-major strides, spec §4.4.
	strides := make([]int, len(sym.Dims))
	for i := len(sym.Dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= sym.Dims[i]
	}
	if len(lv.Idx) != len(sym.Dims) {
		return 0, Errf(EvalConstExpFail, "%s requires %d indices in a constant expression, got %d",
			lv.Name, len(sym.Dims), len(lv.Idx))
	}
	for i, ix := range lv.Idx {
		v, err := ctx.evalExp(ix)
		if err != nil {
			return 0, err
		}
		if v < 0 || v >= sym.Dims[i] {
			return 0, Errf(EvalConstExpFail, "index %d out of bounds for dimension %d of %s", v, sym.Dims[i], lv.Name)
		}
		idx += v * strides[i]
	}
	if idx < 0 || idx >= len(sym.ConstData) {
		return 0, Errf(EvalConstExpFail, "index out of bounds for %s", lv.Name)
	}
	return sym.ConstData[idx], nil
}

func parseIntLiteral(s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, Errf(EvalConstExpFail, "invalid integer literal %q: %v", s, err)
	}
	return int(n), nil
}
