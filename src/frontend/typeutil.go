package frontend

import styp "sysyc/src/ir/types"

// i32Type is a short alias used throughout lowering for the scalar int type.
func i32Type() *styp.Type { return styp.I32Type() }

// buildArrayType folds dims (outermost first) into a nested array type,
// e.g. dims=[2,3] -> [i32, 3]-array nested inside a [.., 2]-array, matching
// spec §3.2's T[d1][d2]...[dk] shape.
func buildArrayType(dims []int) *styp.Type {
	t := styp.I32Type()
	for i := len(dims) - 1; i >= 0; i-- {
		t = styp.ArrayOf(t, dims[i])
	}
	return t
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// evalDims evaluates a declaration's `{"[" ConstExp "]"}` dimension list to
// concrete ints; every array dimension must be a compile-time constant
// (spec §4.1).
func (ctx *Ctx) evalDims(dims []*ConstExp) ([]int, error) {
	out := make([]int, len(dims))
	for i, d := range dims {
		v, err := ctx.EvalConstExp(d)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, Errf(InvalidInitializer, "array dimension must be positive, got %d", v)
		}
		out[i] = v
	}
	return out, nil
}
