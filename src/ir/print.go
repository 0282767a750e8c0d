package ir

import (
	"fmt"
	"strings"

	"sysyc/src/ir/types"
	"sysyc/src/util"
)

// String renders a Koopa-text-like dump of the module. Spec §6.3 calls the
// textual Koopa serializer an external, uninteresting collaborator; this is
// kept minimal and exists for -koopa/debug output, not as a faithful Koopa
// text emitter.
func (m *Module) String() string {
	var sb strings.Builder
	for _, g := range m.Globals {
		fmt.Fprintf(&sb, "global %s: %s = %s\n", g.Name, g.Typ.Elem, g.Val.name())
	}
	if len(m.Globals) > 0 {
		sb.WriteByte('\n')
	}
	for _, f := range m.Funcs {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Function) String() string {
	var sb strings.Builder
	if f.Decl {
		fmt.Fprintf(&sb, "decl @%s(%s): %s\n", f.Name, paramTypes(f), f.RetType)
		return sb.String()
	}
	fmt.Fprintf(&sb, "fun @%s(%s): %s {\n", f.Name, paramTypes(f), f.RetType)
	for _, b := range f.Blocks {
		fmt.Fprintf(&sb, "%s:\n", b.Name)
		for _, inst := range b.Insts {
			fmt.Fprintf(&sb, "  %s\n", inst.String())
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func paramTypes(f *Function) string {
	parts := make([]string, len(f.ParamTyp))
	for i, t := range f.ParamTyp {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func (v *Value) name() string {
	if v == nil {
		return "undef"
	}
	if v.Kind == KindInteger {
		return util.ItoA(v.IntVal)
	}
	if v.Kind == KindZeroInit {
		return "zeroinit"
	}
	if v.Kind == KindAggregate {
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.name()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	if v.Name != "" {
		return v.Name
	}
	return "%" + util.ItoA(v.ID)
}

// String renders a single instruction or value reference.
func (v *Value) String() string {
	switch v.Kind {
	case KindInteger:
		return util.ItoA(v.IntVal)
	case KindAlloc:
		return fmt.Sprintf("%s = alloc %s", v.name(), v.Typ.Elem)
	case KindLoad:
		return fmt.Sprintf("%s = load %s", v.name(), v.Src.name())
	case KindStore:
		return fmt.Sprintf("store %s, %s", v.Val.name(), v.Dst.name())
	case KindGetPtr:
		return fmt.Sprintf("%s = getptr %s, %s", v.name(), v.Base.name(), v.Index.name())
	case KindGetElemPtr:
		return fmt.Sprintf("%s = getelemptr %s, %s", v.name(), v.Base.name(), v.Index.name())
	case KindBinary:
		return fmt.Sprintf("%s = %s %s, %s", v.name(), v.Op, v.LHS.name(), v.RHS.name())
	case KindBranch:
		return fmt.Sprintf("br %s, %s, %s", v.Cond.name(), v.True.Name, v.False.Name)
	case KindJump:
		return fmt.Sprintf("jump %s", v.Jump.Name)
	case KindCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = a.name()
		}
		if v.Callee.RetType.Kind != types.Unit {
			return fmt.Sprintf("%s = call @%s(%s)", v.name(), v.Callee.Name, strings.Join(args, ", "))
		}
		return fmt.Sprintf("call @%s(%s)", v.Callee.Name, strings.Join(args, ", "))
	case KindReturn:
		if v.Val == nil {
			return "ret"
		}
		return fmt.Sprintf("ret %s", v.Val.name())
	case KindGlobalAlloc:
		return fmt.Sprintf("global %s = alloc %s, %s", v.name(), v.Typ.Elem, v.Val.name())
	case KindFuncArgRef:
		return fmt.Sprintf("@arg%d", v.ArgIndex)
	default:
		return "?"
	}
}
