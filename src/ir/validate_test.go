package ir

import (
	"testing"

	"sysyc/src/ir/types"
)

// buildMinimalFunc builds a single-block `int main(){ return 0; }`-shaped
// function whose only block is also its one ret-terminated end block (the
// single-end-block invariant of spec §8.1 invariant 2, without the separate
// entry block frontend.Ctx.EnterFunc/LeaveFunc produce).
func buildMinimalFunc(m *Module) *Function {
	f := m.CreateFunction("main", nil, types.I32Type(), false)
	entry := f.CreateBlock("%entry")
	entry.CreateReturn(m.CreateInteger(0))
	return f
}

func TestValidateAcceptsWellFormedFunction(t *testing.T) {
	m := CreateModule("test")
	buildMinimalFunc(m)
	if err := Validate(m); err != nil {
		t.Fatalf("expected valid module, got %v", err)
	}
}

func TestValidateRejectsEmptyBlock(t *testing.T) {
	m := CreateModule("test")
	f := m.CreateFunction("main", nil, types.I32Type(), false)
	f.CreateBlock("%entry") // no instructions: violates §8.1 invariant 1
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for an empty block, got nil")
	}
}

func TestValidateRejectsMissingTerminator(t *testing.T) {
	m := CreateModule("test")
	f := m.CreateFunction("main", nil, types.I32Type(), false)
	entry := f.CreateBlock("%entry")
	entry.CreateAlloc(types.I32Type()) // not a terminator, and it's the last inst
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for a block with no terminator, got nil")
	}
}

func TestValidateRejectsInstructionAfterTerminator(t *testing.T) {
	m := CreateModule("test")
	f := m.CreateFunction("main", nil, types.I32Type(), false)
	entry := f.CreateBlock("%entry")
	entry.CreateReturn(m.CreateInteger(0))
	entry.append(entry.next(KindAlloc, types.PtrTo(types.I32Type()))) // dead inst past ret
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for an instruction past the terminator, got nil")
	}
}

func TestValidateRejectsZeroOrMultipleEndBlocks(t *testing.T) {
	m := CreateModule("test")
	f := m.CreateFunction("main", nil, types.I32Type(), false)
	b1 := f.CreateBlock("%b1")
	b1.CreateReturn(m.CreateInteger(0))
	b2 := f.CreateBlock("%b2")
	b2.CreateReturn(m.CreateInteger(1))
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for two ret-terminated blocks, got nil")
	}

	m0 := CreateModule("test")
	g := m0.CreateFunction("main", nil, types.I32Type(), false)
	loop := g.CreateBlock("%loop")
	loop.CreateJump(loop)
	if err := Validate(m0); err == nil {
		t.Fatal("expected an error for a function with no ret-terminated block, got nil")
	}
}

// TestValidateSkipsDeclarations checks that runtime-library declarations
// (spec §4.6), which carry no basic blocks, are not mistaken for malformed
// bodies.
func TestValidateSkipsDeclarations(t *testing.T) {
	m := CreateModule("test")
	m.CreateFunction("getint", nil, types.I32Type(), true)
	buildMinimalFunc(m)
	if err := Validate(m); err != nil {
		t.Fatalf("expected valid module with a declaration present, got %v", err)
	}
}
