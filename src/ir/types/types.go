// Package types defines the value types of the IR: i32, unit, pointers,
// arrays and function signatures. A Type is immutable once built; pointer
// and array types are constructed through PtrTo/ArrayOf so that callers compare
// types structurally rather than by identity.
package types

import "strings"

// Kind discriminates the shape of a Type.
type Kind uint

const (
	I32 Kind = iota
	Unit
	Pointer
	Array
	Function
)

// Type is the type of an IR value. Array and Pointer carry Elem; Function
// carries Params and Elem as its return type.
type Type struct {
	Kind   Kind
	Elem   *Type
	Len    int // Array: number of elements.
	Params []*Type
}

var (
	i32Type  = &Type{Kind: I32}
	unitType = &Type{Kind: Unit}
)

// I32Type returns the shared 32-bit integer type.
func I32Type() *Type { return i32Type }

// UnitType returns the shared unit (void) type.
func UnitType() *Type { return unitType }

// PtrTo builds a pointer type to elem.
func PtrTo(elem *Type) *Type {
	return &Type{Kind: Pointer, Elem: elem}
}

// ArrayOf builds an array type of n elements of elem.
func ArrayOf(elem *Type, n int) *Type {
	return &Type{Kind: Array, Elem: elem, Len: n}
}

// FuncType builds a function type.
func FuncType(params []*Type, ret *Type) *Type {
	return &Type{Kind: Function, Params: params, Elem: ret}
}

// Size returns the size in bytes a value of this type occupies, following
// RV32 conventions: i32 and pointers are 4 bytes, arrays are Len*Elem.Size().
func (t *Type) Size() int {
	switch t.Kind {
	case I32, Pointer:
		return 4
	case Unit:
		return 0
	case Array:
		return t.Len * t.Elem.Size()
	default:
		panic("types: Size of function type is undefined")
	}
}

// IsInt reports whether t is the i32 type.
func (t *Type) IsInt() bool { return t != nil && t.Kind == I32 }

// IsPointer reports whether t is a pointer type.
func (t *Type) IsPointer() bool { return t != nil && t.Kind == Pointer }

// IsArray reports whether t is an array type.
func (t *Type) IsArray() bool { return t != nil && t.Kind == Array }

// IsUnit reports whether t is the void/unit type.
func (t *Type) IsUnit() bool { return t != nil && t.Kind == Unit }

// Equal reports structural equality between two types.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case I32, Unit:
		return true
	case Pointer:
		return t.Elem.Equal(o.Elem)
	case Array:
		return t.Len == o.Len && t.Elem.Equal(o.Elem)
	case Function:
		if len(t.Params) != len(o.Params) || !t.Elem.Equal(o.Elem) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a Koopa-ish textual form, used by ir's print.go and by
// diagnostics.
func (t *Type) String() string {
	switch t.Kind {
	case I32:
		return "i32"
	case Unit:
		return "unit"
	case Pointer:
		return "*" + t.Elem.String()
	case Array:
		return "[" + t.Elem.String() + ", " + itoa(t.Len) + "]"
	case Function:
		var b strings.Builder
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(")")
		if !t.Elem.Equal(unitType) {
			b.WriteString(": ")
			b.WriteString(t.Elem.String())
		}
		return b.String()
	}
	return "?"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
