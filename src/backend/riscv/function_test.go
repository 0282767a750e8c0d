package riscv

import (
	"testing"

	"sysyc/src/ir"
	"sysyc/src/ir/types"
)

// buildFunc constructs an int-returning function with an empty "%entry"
// block, to hang instructions off of in individual tests.
func buildFunc(m *ir.Module, name string) (*ir.Function, *ir.BasicBlock) {
	f := m.CreateFunction(name, nil, types.I32Type(), false)
	b := f.CreateBlock("%entry")
	return f, b
}

// TestPlanFrameNoCallsNoRA checks a leaf function with one local gets no
// saved-ra slot and a frame padded to 16 bytes (spec §8.1 invariant 5).
func TestPlanFrameNoCallsNoRA(t *testing.T) {
	m := ir.CreateModule("t")
	f, b := buildFunc(m, "leaf")
	b.CreateAlloc(types.I32Type())
	b.CreateReturn(m.CreateInteger(0))

	e := &Emit{fn: f}
	e.planFrame()

	if e.hasRA {
		t.Error("leaf function with no calls should not save ra")
	}
	if e.frame%16 != 0 {
		t.Errorf("frame size %d is not 16-byte aligned", e.frame)
	}
	if e.frame == 0 {
		t.Error("expected nonzero frame for a function with a local")
	}
}

// TestPlanFrameCallSetsRA checks that any Call instruction forces hasRA,
// even for a void callee with no result slot.
func TestPlanFrameCallSetsRA(t *testing.T) {
	m := ir.CreateModule("t")
	callee := m.CreateFunction("putint", []*types.Type{types.I32Type()}, types.UnitType(), true)
	f, b := buildFunc(m, "caller")
	b.CreateCall(callee, []*ir.Value{m.CreateInteger(1)})
	b.CreateReturn(nil)

	e := &Emit{fn: f}
	e.planFrame()

	if !e.hasRA {
		t.Error("a function containing a call must save ra")
	}
	if e.raOffset() != e.frame-4 {
		t.Errorf("raOffset() = %d, want %d", e.raOffset(), e.frame-4)
	}
}

// TestPlanFrameOutgoingArgsArea covers spec §8.3 scenario 6: a call with 10
// arguments needs an outgoing-args area for the 2 args beyond the 8 that fit
// in a0-a7, sized and placed below the locals area.
func TestPlanFrameOutgoingArgsArea(t *testing.T) {
	m := ir.CreateModule("t")
	params := make([]*types.Type, 10)
	args := make([]*ir.Value, 10)
	for i := range params {
		params[i] = types.I32Type()
		args[i] = m.CreateInteger(i)
	}
	callee := m.CreateFunction("f", params, types.I32Type(), true)
	f, b := buildFunc(m, "caller")
	call := b.CreateCall(callee, args)
	b.CreateReturn(call)

	e := &Emit{fn: f}
	e.planFrame()

	// 2 spilled args * 4 bytes = 8 bytes of outgoing-args area, plus a
	// 4-byte result slot for the call, plus a 4-byte saved ra, padded to 16.
	if e.frame < 16 {
		t.Errorf("expected a frame large enough for the outgoing-args area, got %d", e.frame)
	}
	resultSlot, ok := e.slots[call]
	if !ok {
		t.Fatal("expected a result slot for the non-void call")
	}
	// The result slot (a locals-area entry) must sit above the 8-byte
	// outgoing-args area reserved for args 9 and 10.
	if resultSlot.offset < 8 {
		t.Errorf("result slot offset %d should be placed above the outgoing-args area", resultSlot.offset)
	}
}

// TestLabelBlocksStripsPercent checks block-name rendering (spec §4.9): a
// "%name" block strips its leading sigil in the label, and the trailing
// sequence number counts the function's blocks in order.
func TestLabelBlocksStripsPercent(t *testing.T) {
	m := ir.CreateModule("t")
	f, entry := buildFunc(m, "sum")
	entry.CreateReturn(m.CreateInteger(0))
	loop := f.CreateBlock("%loop")
	loop.CreateReturn(m.CreateInteger(1))

	e := &Emit{fn: f}
	e.labelBlocks()

	if got, want := e.labels[entry], ".L_sum_entry_0"; got != want {
		t.Errorf("entry label: got %q, want %q", got, want)
	}
	if got, want := e.labels[loop], ".L_sum_loop_1"; got != want {
		t.Errorf("loop label: got %q, want %q", got, want)
	}
}
