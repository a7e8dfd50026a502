package importer

import (
	"fmt"

	"github.com/tracelift/tracelift/internal/annotate"
	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/ir"
)

// Registry canonicalizes class identities into IR symbol names and emits
// each class declaration exactly once. It also owns the pass-wide symbol
// table, so class and function symbols share one uniqueness domain.
type Registry struct {
	mod         *ir.Module
	annotations *annotate.Annotator

	names   map[*graph.Class]string
	decls   map[*graph.Class]*ir.ClassDecl
	taken   map[string]bool
	anonSeq int
}

func newRegistry(mod *ir.Module, annotations *annotate.Annotator) *Registry {
	return &Registry{
		mod:         mod,
		annotations: annotations,
		names:       make(map[*graph.Class]string),
		decls:       make(map[*graph.Class]*ir.ClassDecl),
		taken:       make(map[string]bool),
	}
}

// QualifiedName synthesizes the IR symbol for a class descriptor,
// memoized by identity. Anonymous classes get a deterministic
// per-registry counter suffix, so repeated imports of the same graph
// synthesize the same names. Two distinct descriptors producing the same
// name is a hard error: the registry fails fast rather than emit
// ambiguous symbols.
func (r *Registry) QualifiedName(c *graph.Class) (string, error) {
	if name, ok := r.names[c]; ok {
		return name, nil
	}
	var name string
	if c.Name == "" {
		name = ir.Symbol(c.Namespace, fmt.Sprintf("class_%d", r.anonSeq))
		r.anonSeq++
	} else {
		name = ir.Symbol(c.Namespace, c.Name)
	}
	if err := r.ClaimSymbol(name); err != nil {
		return "", err
	}
	r.names[c] = name
	return name, nil
}

// ClaimSymbol reserves a symbol in the pass-wide table, failing with
// DuplicateSymbolError when it is already taken.
func (r *Registry) ClaimSymbol(name string) error {
	if r.taken[name] {
		return NewDuplicateSymbolError(name)
	}
	r.taken[name] = true
	return nil
}

// Resolve returns the class declaration for a descriptor, emitting it
// into the module on first call. Repeated calls with the same descriptor
// return the same declaration and do not re-emit.
func (r *Registry) Resolve(c *graph.Class) (*ir.ClassDecl, error) {
	if decl, ok := r.decls[c]; ok {
		return decl, nil
	}
	name, err := r.QualifiedName(c)
	if err != nil {
		return nil, err
	}

	decl := &ir.ClassDecl{Name: name}
	for _, slot := range c.Slots {
		if !r.annotations.IsSlotExported(c, slot.Name) {
			continue
		}
		slotType, err := r.irType(slot.Type)
		if err != nil {
			return nil, err
		}
		decl.Slots = append(decl.Slots, ir.ClassSlot{Name: slot.Name, Type: slotType})
	}
	for _, m := range c.Methods {
		if !r.annotations.IsMethodExported(c, m.Name) {
			continue
		}
		decl.Methods = append(decl.Methods, ir.ClassMethod{
			Name: m.Name,
			Func: ir.Symbol(name, m.Name),
		})
	}

	r.decls[c] = decl
	r.mod.Classes = append(r.mod.Classes, decl)
	return decl, nil
}

// irType lowers a graph type reference to an IR type. Class references
// are lowered by name only; the referenced class's declaration is emitted
// when its first instance is imported.
func (r *Registry) irType(t graph.TypeRef) (ir.Type, error) {
	switch t.Kind {
	case graph.KindInt:
		return ir.I64Type, nil
	case graph.KindFloat:
		return ir.F64Type, nil
	case graph.KindBool:
		return ir.BoolType, nil
	case graph.KindString:
		return ir.StrType, nil
	case graph.KindNone:
		return ir.NoneType, nil
	case graph.KindTuple:
		return ir.TupleType, nil
	case graph.KindList:
		return ir.ListType, nil
	case graph.KindTensor:
		return ir.TensorType, nil
	case graph.KindClass:
		name, err := r.QualifiedName(t.Class)
		if err != nil {
			return ir.Type{}, err
		}
		return ir.ClassType(name), nil
	case graph.KindFunction:
		// Signature erased at the annotation level.
		return ir.Type{Kind: ir.FuncKind}, nil
	default:
		return ir.Type{}, NewUnsupportedValueKindError(t.Kind.String(), "type annotation")
	}
}
