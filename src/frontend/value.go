package frontend

import (
	sir "sysyc/src/ir"
	styp "sysyc/src/ir/types"
)

// Category tags the shape of a lowered expression result (spec §3.2's
// value-category note): plain arithmetic values, addressable scalar
// storage, addressable array storage, and the "no value" result of a void
// call used in a context that discards it.
type Category int

const (
	CatInt  Category = iota // a ready-to-use i32 SSA value
	CatPtr                  // a pointer to scalar storage (needs a load to use as a value)
	CatAPtr                 // a pointer to array storage (decays to a pointer-to-element on use, never loaded)
	CatNav                  // void: the result of a void function call, usable only as a statement
)

// Val is the tagged result of lowering a SysY expression. Every Exp/LVal
// lowering method returns one; callers coerce through AsVal/AsPtr rather
// than branching on Category themselves.
type Val struct {
	Cat Category
	IR  *sir.Value
}

// intVal wraps an already-computed i32 SSA value.
func intVal(v *sir.Value) Val { return Val{Cat: CatInt, IR: v} }

// ptrVal wraps a pointer to scalar storage.
func ptrVal(v *sir.Value) Val { return Val{Cat: CatPtr, IR: v} }

// aptrVal wraps a pointer to array storage.
func aptrVal(v *sir.Value) Val { return Val{Cat: CatAPtr, IR: v} }

// navVal represents no value (a void call result).
func navVal() Val { return Val{Cat: CatNav} }

// AsVal coerces v to a usable SSA value (spec §3.4's `as_val`): loads Ptr,
// passes Int/APtr through unchanged, and rejects only Nav (a void call
// result used where any value is required). Grounded on
// original_source/src/frontend/value.rs's `as_val`, used where a decayed
// array pointer is itself an acceptable value (function-call arguments).
func (v Val) AsVal(b *sir.BasicBlock) (*sir.Value, error) {
	switch v.Cat {
	case CatInt, CatAPtr:
		return v.IR, nil
	case CatPtr:
		return b.CreateLoad(v.IR), nil
	default:
		return nil, Errf(InvalidValueType, "void value used where a value is required")
	}
}

// AsInt coerces v to a scalar i32 SSA value (spec §3.4's `as_int`): same as
// AsVal but also rejects CatAPtr, since arithmetic, comparisons, conditions,
// indices, and scalar stores all require a plain int, not an array's base
// pointer. Grounded on original_source/src/frontend/value.rs's `as_int`.
func (v Val) AsInt(b *sir.BasicBlock) (*sir.Value, error) {
	if v.Cat == CatAPtr {
		return nil, Errf(InvalidValueType, "an array value cannot be used where a scalar int is required")
	}
	return v.AsVal(b)
}

// AsPtr coerces v to a pointer value, valid for CatPtr (address of scalar
// storage) and CatAPtr (an array, passed/indexed by its base pointer).
func (v Val) AsPtr() (*sir.Value, error) {
	switch v.Cat {
	case CatPtr, CatAPtr:
		return v.IR, nil
	default:
		return nil, Errf(InvalidValueType, "value is not addressable")
	}
}

// SymValue is a scope entry. A scalar constant (spec §4.1's evaluator
// result) is substituted at every use and has no IR storage at all. A
// const *array* still gets real IR storage (spec §4.4: `a[i]` with a
// runtime-only index must still be indexable), but keeps its flattened
// data in ConstData too so the constant evaluator (eval.go) can fold
// `a[1][2]`-style constant-index reads without touching the IR. A plain
// variable (const or not) is a reference to IR storage: a local Alloc, a
// global GlobalAlloc, or (for a parameter) the local slot FuncDef.generate
// allocates to hold the incoming FuncArgRef/pointer.
type SymValue struct {
	IsConst   bool
	Const     int        // valid when IsConst && Dims == nil (scalar constant, no storage)
	ConstData []int      // flattened constant-array elements, valid when IsConst && Dims != nil
	Value     *sir.Value // IR storage; nil only for a scalar constant
	Type      *styp.Type // declared element type, for array-dimension bookkeeping
	Dims      []int      // array dimensions (remaining, for a parameter array); nil for scalars

	// IsParamArray marks a parameter bound as an array: Value is a local
	// slot holding the *incoming pointer* (not the array itself), so
	// indexing must first load it to materialize the base pointer, and
	// its first subscript is a GetPtr rather than a GetElemPtr (spec §4.4).
	IsParamArray bool
}
