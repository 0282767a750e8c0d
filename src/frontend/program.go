package frontend

import sir "sysyc/src/ir"

// GenerateIR lowers a parsed compilation unit into an IR module (spec §4,
// top-level driver). Runtime-library functions are pre-declared by NewCtx
// (spec §4.6); global items are then lowered in source order, exactly as
// vslc's ast.go walks its own CompUnit top to bottom.
func GenerateIR(cu *CompUnit, moduleName string) (*sir.Module, error) {
	ctx := NewCtx(moduleName)
	for _, item := range cu.Items {
		if err := item.generate(ctx); err != nil {
			return nil, err
		}
	}
	return ctx.Module, nil
}

func (g *GlobalItem) generate(ctx *Ctx) error {
	if g.Func != nil {
		return g.Func.generate(ctx)
	}
	return g.Decl.generate(ctx)
}
