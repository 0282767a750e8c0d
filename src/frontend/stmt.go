package frontend

// generate lowers a single block item: a local declaration or a statement
// (spec §3.1's Block/BlockItem shape).
func (bi *BlockItem) generate(ctx *Ctx) error {
	if bi.Decl != nil {
		return bi.Decl.generate(ctx)
	}
	return bi.Stmt.generate(ctx)
}

// generate lowers a nested block: a fresh lexical scope around its items
// (spec §4.5's `Block` row).
func (b *Block) generate(ctx *Ctx) error {
	ctx.PushScope()
	defer ctx.PopScope()
	for _, item := range b.Items {
		if err := item.generate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// generate dispatches a Stmt to its control-flow lowering, per spec §4.5's
// table.
func (s *Stmt) generate(ctx *Ctx) error {
	switch {
	case s.Block != nil:
		return s.Block.generate(ctx)
	case s.If != nil:
		return s.If.generate(ctx)
	case s.While != nil:
		return s.While.generate(ctx)
	case s.Break:
		return ctx.generateBreak()
	case s.Continue:
		return ctx.generateContinue()
	case s.Return != nil:
		return s.Return.generate(ctx)
	case s.Assign != nil:
		return s.Assign.generate(ctx)
	default:
		return s.ExpStmt.generate(ctx)
	}
}

func (a *AssignStmt) generate(ctx *Ctx) error {
	lv, err := a.LVal.generate(ctx)
	if err != nil {
		return err
	}
	if lv.Cat != CatPtr {
		return Errf(InvalidValueType, "left-hand side of assignment is not addressable")
	}
	val, err := a.Exp.generate(ctx)
	if err != nil {
		return err
	}
	valIR, err := val.AsInt(ctx.Block)
	if err != nil {
		return err
	}
	dst, err := lv.AsPtr()
	if err != nil {
		return err
	}
	ctx.Block.CreateStore(valIR, dst)
	return nil
}

func (e *ExpStmt) generate(ctx *Ctx) error {
	if e.Exp == nil {
		return nil
	}
	_, err := e.Exp.generate(ctx)
	return err
}

// generate lowers `if (cond) then [else else]` (spec §4.5): blocks %then,
// [%else,] %endif, branching on cond and joining both arms at %endif.
func (i *IfStmt) generate(ctx *Ctx) error {
	cond, err := i.Cond.generate(ctx)
	if err != nil {
		return err
	}
	then := ctx.Func.CreateBlock("")
	endif := ctx.Func.CreateBlock("")

	if i.Else == nil {
		condIR, err := cond.AsInt(ctx.Block)
		if err != nil {
			return err
		}
		ctx.Block.CreateBranch(condIR, then, endif)
		ctx.Block = then
		if err := i.Then.generate(ctx); err != nil {
			return err
		}
		if !ctx.Block.Terminated() {
			ctx.Block.CreateJump(endif)
		}
		ctx.Block = endif
		return nil
	}

	els := ctx.Func.CreateBlock("")
	condIR, err := cond.AsInt(ctx.Block)
	if err != nil {
		return err
	}
	ctx.Block.CreateBranch(condIR, then, els)

	ctx.Block = then
	if err := i.Then.generate(ctx); err != nil {
		return err
	}
	if !ctx.Block.Terminated() {
		ctx.Block.CreateJump(endif)
	}

	ctx.Block = els
	if err := i.Else.generate(ctx); err != nil {
		return err
	}
	if !ctx.Block.Terminated() {
		ctx.Block.CreateJump(endif)
	}

	ctx.Block = endif
	return nil
}

// generate lowers `while (cond) body` (spec §4.5): %loop_entry re-evaluates
// cond every iteration and is pushed as the loop's continue target, with
// %loop_end as its break target; %loop_body holds the body.
func (w *WhileStmt) generate(ctx *Ctx) error {
	entry := ctx.Func.CreateBlock("")
	body := ctx.Func.CreateBlock("")
	end := ctx.Func.CreateBlock("")

	ctx.Block.CreateJump(entry)

	ctx.Block = entry
	cond, err := w.Cond.generate(ctx)
	if err != nil {
		return err
	}
	condIR, err := cond.AsInt(ctx.Block)
	if err != nil {
		return err
	}
	ctx.Block.CreateBranch(condIR, body, end)

	ctx.Block = body
	ctx.PushLoop(entry, end)
	err = w.Body.generate(ctx)
	ctx.PopLoop()
	if err != nil {
		return err
	}
	if !ctx.Block.Terminated() {
		ctx.Block.CreateJump(entry)
	}

	ctx.Block = end
	return nil
}

func (ctx *Ctx) generateBreak() error {
	_, brk := ctx.CurrentLoop()
	if brk == nil {
		return Errf(InvalidValueType, "break outside of a loop")
	}
	ctx.Block.CreateJump(brk)
	ctx.SkipBlock()
	return nil
}

func (ctx *Ctx) generateContinue() error {
	cont, _ := ctx.CurrentLoop()
	if cont == nil {
		return Errf(InvalidValueType, "continue outside of a loop")
	}
	ctx.Block.CreateJump(cont)
	ctx.SkipBlock()
	return nil
}

func (r *RetStmt) generate(ctx *Ctx) error {
	if r.Exp == nil {
		ctx.EmitReturn(nil)
		return nil
	}
	v, err := r.Exp.generate(ctx)
	if err != nil {
		return err
	}
	vIR, err := v.AsInt(ctx.Block)
	if err != nil {
		return err
	}
	ctx.EmitReturn(vIR)
	return nil
}
