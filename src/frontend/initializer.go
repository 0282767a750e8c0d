package frontend

// Initializer flattening: spec §4.2 and §9 describe reshaping a possibly
// partially-nested brace initializer into the exact flat element list its
// declared dimensions require. Grounded on original_source/src/frontend/
// gen.rs's Initializer::{fill,reshape,fit} (SPEC_FULL §C.2), carried over
// under Go names, with the alignment rule corrected per spec §9: a nested
// brace aligns to the outermost sub-array boundary (the largest suffix
// product short of the whole array) whose *suffix product* (not the raw
// dimension at that index, the original's bug) divides the number of
// elements already placed in the enclosing list.

// initNode is a generic (leaf-or-list) initializer tree, used so
// ConstInitVal and InitVal can share one flattening algorithm despite being
// distinct AST types.
type initNode[L any] struct {
	Leaf *L
	List []*initNode[L]
}

// suffixProducts returns p where p[i] = dims[i] * dims[i+1] * ... * dims[n-1]
// and p[n] = 1, for dims of length n.
func suffixProducts(dims []int) []int {
	n := len(dims)
	p := make([]int, n+1)
	p[n] = 1
	for i := n - 1; i >= 0; i-- {
		p[i] = p[i+1] * dims[i]
	}
	return p
}

// flatten reshapes n's top-level list into exactly product(dims) leaves,
// padding missing trailing elements with nil (implicit zero, spec §4.2).
func flatten[L any](n *initNode[L], dims []int) ([]*L, error) {
	p := suffixProducts(dims)
	flat, err := fillList(n.List, dims, p)
	if err != nil {
		return nil, err
	}
	total := p[0]
	if len(flat) > total {
		return nil, Errf(InvalidInitializer, "initializer has more elements than the declared array holds")
	}
	for len(flat) < total {
		flat = append(flat, nil)
	}
	return flat, nil
}

// fillList flattens one brace-list's items against dims/p (p = suffixProducts(dims)).
// A nested sub-list must open at a real dimension boundary: some index j in
// 1..len(dims)-1 whose suffix product p[j] divides the number of elements
// already placed (spec §4.2 step 4). j == len(dims) only ever "matches"
// through the trailing sentinel p[len(dims)] == 1, which divides everything
// and is not a real boundary, so it is excluded from the search; a sub-list
// that aligns to no real boundary is InvalidInitializer. Grounded on
// original_source/src/frontend/value.rs's fill() `if align == 0` guard,
// adapted to this port's suffix-product alignment test (spec §9).
func fillList[L any](items []*initNode[L], dims []int, p []int) ([]*L, error) {
	var flat []*L
	for _, it := range items {
		if it.Leaf != nil {
			flat = append(flat, it.Leaf)
			continue
		}
		curlen := len(flat)
		align := 0
		for j := 1; j < len(dims); j++ {
			if curlen%p[j] == 0 {
				align = j
				break
			}
		}
		if align == 0 {
			return nil, Errf(InvalidInitializer, "nested initializer does not align to any array dimension")
		}
		sub, err := fillList(it.List, dims[align:], p[align:])
		if err != nil {
			return nil, err
		}
		if len(sub) > p[align] {
			return nil, Errf(InvalidInitializer, "nested initializer has more elements than its sub-array holds")
		}
		for len(sub) < p[align] {
			sub = append(sub, nil)
		}
		flat = append(flat, sub...)
	}
	return flat, nil
}

func constInitToNode(c *ConstInitVal) *initNode[ConstExp] {
	if c.Exp != nil {
		return &initNode[ConstExp]{Leaf: c.Exp}
	}
	list := make([]*initNode[ConstExp], len(c.List))
	for i, e := range c.List {
		list[i] = constInitToNode(e)
	}
	return &initNode[ConstExp]{List: list}
}

func varInitToNode(v *InitVal) *initNode[Exp] {
	if v.Exp != nil {
		return &initNode[Exp]{Leaf: v.Exp}
	}
	list := make([]*initNode[Exp], len(v.List))
	for i, e := range v.List {
		list[i] = varInitToNode(e)
	}
	return &initNode[Exp]{List: list}
}

// FlattenConstInit reshapes a const-declaration initializer into exactly
// product(dims) slots; a nil slot means "implicit zero".
func FlattenConstInit(c *ConstInitVal, dims []int) ([]*ConstExp, error) {
	if len(dims) == 0 {
		return []*ConstExp{c.Exp}, nil
	}
	return flatten(constInitToNode(c), dims)
}

// FlattenVarInit reshapes a variable-declaration initializer the same way.
func FlattenVarInit(v *InitVal, dims []int) ([]*Exp, error) {
	if len(dims) == 0 {
		return []*Exp{v.Exp}, nil
	}
	return flatten(varInitToNode(v), dims)
}
