package ir

import "sysyc/src/ir/types"

// Module is a whole compiled translation unit: its global variables and
// functions, per spec §3.2. Unlike vslc's lir.Module, id allocation and
// function/global registration are not synchronised, because spec §5 rules
// out concurrent codegen across functions.
type Module struct {
	Name    string
	Globals []*Value
	Funcs   []*Function

	seq     int
	funcIdx map[string]*Function
}

// CreateModule creates an empty module.
func CreateModule(name string) *Module {
	return &Module{
		Name:    name,
		funcIdx: make(map[string]*Function, 16),
	}
}

func (m *Module) nextID() int {
	id := m.seq
	m.seq++
	return id
}

// CreateFunction declares a new function with the given parameter and return
// types. If decl is true the function is a runtime-library declaration
// (spec §4.6) with no body.
func (m *Module) CreateFunction(name string, params []*types.Type, ret *types.Type, decl bool) *Function {
	f := &Function{
		Name:     name,
		ParamTyp: params,
		RetType:  ret,
		Decl:     decl,
		module:   m,
	}
	for i, pt := range params {
		f.Params = append(f.Params, &Value{
			ID: m.nextID(), Typ: pt, Kind: KindFuncArgRef, ArgIndex: i,
		})
	}
	m.Funcs = append(m.Funcs, f)
	m.funcIdx[name] = f
	return f
}

// GetFunction looks up a previously declared/defined function by name.
func (m *Module) GetFunction(name string) *Function {
	return m.funcIdx[name]
}

// CreateInteger returns a (possibly shared) integer constant value. Integers
// are not instructions: they carry no Block and are never appended to a
// basic block's instruction list.
func (m *Module) CreateInteger(v int) *Value {
	return &Value{ID: m.nextID(), Typ: types.I32Type(), Kind: KindInteger, IntVal: v}
}

// CreateZeroInit returns a zero-initializer value of type t, used as the
// initializer of a GlobalAlloc for arrays/scalars with no explicit value.
func (m *Module) CreateZeroInit(t *types.Type) *Value {
	return &Value{ID: m.nextID(), Typ: t, Kind: KindZeroInit}
}

// CreateAggregate builds a (possibly nested, for multi-dimensional arrays)
// constant-aggregate initializer value.
func (m *Module) CreateAggregate(t *types.Type, elems []*Value) *Value {
	return &Value{ID: m.nextID(), Typ: t, Kind: KindAggregate, Elems: elems}
}

// CreateGlobalAlloc declares a global variable named sym of type elem,
// initialized with init (an Integer/ZeroInit/Aggregate value). The returned
// value has pointer-to-elem type, matching a local Alloc's shape so the
// frontend's value-category logic (spec §3.2's Ptr/APtr) treats locals and
// globals uniformly.
func (m *Module) CreateGlobalAlloc(sym string, elem *types.Type, init *Value) *Value {
	v := &Value{
		ID: m.nextID(), Name: sym, Typ: types.PtrTo(elem), Kind: KindGlobalAlloc, Val: init,
	}
	m.Globals = append(m.Globals, v)
	return v
}
