package ir

import "fmt"

// Validate checks the IR invariants spec §8.1 names before the value is
// handed to the riscv backend. It is a real verifier run as a distinct pass
// after lowering, grounded on vslc's ir/validate.go "verify before codegen"
// stage.
func Validate(m *Module) error {
	for _, f := range m.Funcs {
		if f.Decl {
			continue
		}
		if err := validateFunction(f); err != nil {
			return fmt.Errorf("function %s: %w", f.Name, err)
		}
	}
	return nil
}

func validateFunction(f *Function) error {
	if len(f.Blocks) == 0 {
		return fmt.Errorf("has no basic blocks")
	}

	endBlocks := 0
	for _, b := range f.Blocks {
		if len(b.Insts) == 0 {
			return fmt.Errorf("block %s is empty", b.Name)
		}
		for i, inst := range b.Insts {
			isLast := i == len(b.Insts)-1
			if inst.IsTerminator() != isLast {
				if inst.IsTerminator() {
					return fmt.Errorf("block %s: terminator %s is not the last instruction", b.Name, inst.Name)
				}
				return fmt.Errorf("block %s: missing terminator", b.Name)
			}
		}
		if b.Insts[len(b.Insts)-1].Kind == KindReturn {
			endBlocks++
		}
	}
	if endBlocks != 1 {
		return fmt.Errorf("expected exactly one end block with a ret, found %d", endBlocks)
	}
	return nil
}
