package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sir "sysyc/src/ir"
)

// compile parses and lowers src, requiring success and a validate-clean IR
// module, exactly the pipeline main.go drives up to the riscv backend.
func compile(t *testing.T, src string) *sir.Module {
	t.Helper()
	cu, err := Parse("test.sy", src)
	require.NoError(t, err)
	m, err := GenerateIR(cu, "test")
	require.NoError(t, err)
	require.NoError(t, sir.Validate(m))
	return m
}

func mainFunc(t *testing.T, m *sir.Module) *sir.Function {
	t.Helper()
	f := m.GetFunction("main")
	require.NotNil(t, f, "expected a main function")
	return f
}

// countInsts walks every block of f and counts instructions of kind.
func countInsts(f *sir.Function, kind sir.Kind) int {
	n := 0
	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			if inst.Kind == kind {
				n++
			}
		}
	}
	return n
}

// TestFallthroughReturn covers spec §8.3 scenario 1: a bare `return 0;`
// routes through the function's single end block with one ret total.
func TestFallthroughReturn(t *testing.T) {
	m := compile(t, "int main(){ return 0; }")
	f := mainFunc(t, m)
	assert.Equal(t, 1, countInsts(f, sir.KindReturn))
	end := f.Blocks[len(f.Blocks)-1]
	last := end.Insts[len(end.Insts)-1]
	require.Equal(t, sir.KindReturn, last.Kind)
}

// TestShortCircuitOr covers spec §8.3 scenario 2: `a || (1/a)` must lower to
// a conditional branch structure, not an eager Binary(OpOr) evaluating both
// sides (which would divide by a possibly-zero a unconditionally).
func TestShortCircuitOr(t *testing.T) {
	m := compile(t, "int main(){ int a=0; if (a || (1/a)) return 1; return 0; }")
	f := mainFunc(t, m)
	assert.GreaterOrEqual(t, countInsts(f, sir.KindBranch), 2,
		"short-circuit || should lower to nested branches, not a single eager Binary op")
	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			if inst.Kind == sir.KindBinary && inst.Op == sir.OpDiv {
				// The division must itself sit behind a branch, i.e. in a
				// block distinct from the entry block that isn't
				// unconditionally reached.
				assert.NotEqual(t, f.Blocks[0], b,
					"division by a must not execute unconditionally in the entry block")
			}
		}
	}
}

// TestWhileBreak covers spec §8.3 scenario 3: a while loop with a
// conditional break lowers to a loop header block, body block(s), and an
// exit block, with Branch/Jump terminators wiring them together.
func TestWhileBreak(t *testing.T) {
	m := compile(t, "int main(){ int i=0; while(i<10){ if(i==3) break; i=i+1; } return i; }")
	f := mainFunc(t, m)
	assert.GreaterOrEqual(t, len(f.Blocks), 4)
	assert.GreaterOrEqual(t, countInsts(f, sir.KindBranch), 2)
	assert.GreaterOrEqual(t, countInsts(f, sir.KindJump), 1)
}

// TestArrayInitReshape covers spec §8.3 scenario 4: a nested initializer
// with a short trailing sub-list reshapes to [1,2,3,4,5,0], not a
// dimension-count-based misalignment.
func TestArrayInitReshape(t *testing.T) {
	m := compile(t, "const int a[2][3] = {1,2,3,{4,5}}; int main(){ return a[1][2]; }")
	require.Len(t, m.Globals, 1)
	g := m.Globals[0]
	require.Equal(t, sir.KindAggregate, g.Val.Kind)
	require.Len(t, g.Val.Elems, 2)

	row0 := g.Val.Elems[0]
	row1 := g.Val.Elems[1]
	require.Equal(t, sir.KindAggregate, row0.Kind)
	require.Equal(t, sir.KindAggregate, row1.Kind)
	require.Len(t, row0.Elems, 3)
	require.Len(t, row1.Elems, 3)

	want := [][]int{{1, 2, 3}, {4, 5, 0}}
	for i, row := range [][]*sir.Value{row0.Elems, row1.Elems} {
		for j, elem := range row {
			assert.Equal(t, want[i][j], elem.IntVal)
		}
	}
}

// TestArrayParamDecay covers spec §8.3 scenario 5: the first subscript on a
// decayed array parameter lowers via GetPtr (pointer indexing), not
// GetElemPtr (array-typed indexing).
func TestArrayParamDecay(t *testing.T) {
	m := compile(t, `int sum(int n, int a[]) {
		int s=0; int i=0;
		while(i<n){ s=s+a[i]; i=i+1; }
		return s;
	}`)
	f := m.GetFunction("sum")
	require.NotNil(t, f)
	assert.GreaterOrEqual(t, countInsts(f, sir.KindGetPtr), 1)
	assert.Equal(t, 0, countInsts(f, sir.KindGetElemPtr),
		"a fully-decayed 1-D array parameter should never need get_elem_ptr")
}

// TestArrayParamDecayMultiDim exercises the multi-dimensional form of
// scenario 5: a[i][j] on a `int a[][3]` parameter must consume exactly one
// GetPtr (the decayed first subscript) followed by one GetElemPtr (the
// declared second dimension), never panicking on dimsLeft bookkeeping.
func TestArrayParamDecayMultiDim(t *testing.T) {
	m := compile(t, `int at(int a[][3], int i, int j) {
		return a[i][j];
	}`)
	f := m.GetFunction("at")
	require.NotNil(t, f)
	assert.Equal(t, 1, countInsts(f, sir.KindGetPtr))
	assert.Equal(t, 1, countInsts(f, sir.KindGetElemPtr))
}

// TestManyArgs covers spec §8.3 scenario 6: a call with more than 8
// arguments lowers to a single Call instruction carrying all ten Args,
// leaving the >8 ABI spill mechanics to the riscv backend.
func TestManyArgs(t *testing.T) {
	m := compile(t, `int f(int a,int b,int c,int d,int e,int g,int h,int i,int j,int k){ return a; }
	int main(){ return f(1,2,3,4,5,6,7,8,9,10); }`)
	main := mainFunc(t, m)
	found := false
	for _, b := range main.Blocks {
		for _, inst := range b.Insts {
			if inst.Kind == sir.KindCall {
				found = true
				require.Len(t, inst.Args, 10)
			}
		}
	}
	assert.True(t, found, "expected a call instruction in main")
}

// TestUndeclaredIdentifier checks spec §7's UndeclaredID error kind.
func TestUndeclaredIdentifier(t *testing.T) {
	cu, err := Parse("test.sy", "int main(){ return x; }")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, UndeclaredID, ce.Kind)
}

// TestMultiDefFunction checks spec §7's MultiDef error kind for a function
// redeclared in the same translation unit.
func TestMultiDefFunction(t *testing.T) {
	cu, err := Parse("test.sy", "int f(){ return 0; } int f(){ return 1; }")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, MultiDef, ce.Kind)
}

// TestRuntimeLibShadowingIsMultiDef resolves spec §9's Open Question: a
// user redefinition of a pre-declared runtime-library name is a MultiDef,
// since declareRuntimeLib registers the names in the module's function
// table, which FuncDef.generate checks before defining a function.
func TestRuntimeLibShadowingIsMultiDef(t *testing.T) {
	cu, err := Parse("test.sy", "int getint(){ return 0; }")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, MultiDef, ce.Kind)
}

// TestGlobalVarFunctionNameCollision checks spec §3.3's rule that shadowing
// a function name with a variable at global scope is forbidden, in the
// var-after-function direction (the function-after-var direction is the
// Lookup check in FuncDef.generate, next to the function-redefinition check
// that TestMultiDefFunction covers).
func TestGlobalVarFunctionNameCollision(t *testing.T) {
	cu, err := Parse("test.sy", "int f(){ return 0; } int f;")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, MultiDef, ce.Kind)
}

// TestConstDivByZeroFails resolves spec §9's other Open Question: constant
// division by zero returns EvalConstExpFail rather than panicking.
func TestConstDivByZeroFails(t *testing.T) {
	cu, err := Parse("test.sy", "const int z = 0; const int a = 1/z; int main(){ return a; }")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, EvalConstExpFail, ce.Kind)
}

// TestAssignArrayToScalarRejected checks spec §3.4: assigning an array value
// (CatAPtr) to a scalar variable must surface as InvalidValueType, not crash
// the compiler via an unhandled panic in Val.AsInt/AsVal.
func TestAssignArrayToScalarRejected(t *testing.T) {
	cu, err := Parse("test.sy", "int main(){ int a[3]; int x; x = a; return 0; }")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, InvalidValueType, ce.Kind)
}

// TestInitializerMisalignedSubList checks spec §4.2 step 4: a nested brace
// that does not open at a real dimension boundary is InvalidInitializer,
// not silently truncated/padded.
func TestInitializerMisalignedSubList(t *testing.T) {
	cu, err := Parse("test.sy", "const int a[3] = {1, {2,3}}; int main(){ return a[0]; }")
	require.NoError(t, err)
	_, err = GenerateIR(cu, "test")
	require.Error(t, err)
	ce, ok := err.(*CompileError)
	require.True(t, ok)
	assert.Equal(t, InvalidInitializer, ce.Kind)
}
