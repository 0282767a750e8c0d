package ir

import (
	"sysyc/src/ir/types"
	"sysyc/src/util"
)

// Function is a named, typed sequence of basic blocks. Blocks[0] is always
// the entry block. Params holds one FuncArgRef value per parameter, in
// declaration order.
type Function struct {
	Name     string
	ParamTyp []*types.Type
	RetType  *types.Type
	Params   []*Value
	Blocks   []*BasicBlock
	Decl     bool // true for a declared-only runtime-library function (spec §4.6)

	module *Module
	seq    int
}

// CreateBlock appends a new, empty basic block to f and returns it.
func (f *Function) CreateBlock(name string) *BasicBlock {
	b := f.NewDetachedBlock(name)
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewDetachedBlock builds a block belonging to f without appending it to
// f.Blocks yet. Used by the frontend to pre-allocate a function's single
// designated end block (spec §8.1 invariant 2) so it can be referenced by
// early `return` statements while still landing last in Blocks once Append
// is called at the end of lowering.
func (f *Function) NewDetachedBlock(name string) *BasicBlock {
	if name == "" {
		name = f.freshBlockName()
	}
	return &BasicBlock{Name: name, Func: f}
}

// Append adds a previously detached block to f.Blocks.
func (f *Function) Append(b *BasicBlock) {
	f.Blocks = append(f.Blocks, b)
}

func (f *Function) freshBlockName() string {
	f.seq++
	return "%b" + util.ItoA(f.seq)
}

// Entry returns the function's entry block (nil if none created yet).
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}
