package importer

import (
	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/ir"
)

// importMethod lowers one compiled method body into an IR function,
// memoized by method descriptor identity. The memo entry is registered
// before the body is imported, so recursive and mutually recursive calls
// resolve to the in-progress function instead of looping.
func (imp *Importer) importMethod(m *graph.Method) (*ir.Func, error) {
	if f, ok := imp.methods[m]; ok {
		return f, nil
	}

	name, err := imp.methodSymbol(m)
	if err != nil {
		return nil, err
	}

	f := &ir.Func{Name: name}
	resultType, err := imp.registry.irType(m.Result)
	if err != nil {
		return nil, err
	}
	f.Result = resultType

	// Parameters occupy the first value IDs of the body block, matching
	// the input graph's value indexing.
	vmap := make([]ir.ValueID, 0, len(m.Params)+len(m.Body))
	vtypes := make([]graph.TypeRef, 0, len(m.Params)+len(m.Body))
	for _, p := range m.Params {
		pt, err := imp.registry.irType(p.Type)
		if err != nil {
			return nil, err
		}
		f.Params = append(f.Params, ir.Param{Name: p.Name, Type: pt})
		vmap = append(vmap, f.Body.AllocValue())
		vtypes = append(vtypes, p.Type)
	}

	imp.methods[m] = f
	imp.mod.Funcs = append(imp.mod.Funcs, f)

	returned := false
	for _, in := range m.Body {
		switch in.Kind {
		case graph.InstrCall:
			id, t, err := imp.importCall(f, in, vmap)
			if err != nil {
				return nil, err
			}
			vmap = append(vmap, id)
			vtypes = append(vtypes, t)

		case graph.InstrCallMethod:
			id, t, err := imp.importCallMethod(f, in, vmap, vtypes)
			if err != nil {
				return nil, err
			}
			vmap = append(vmap, id)
			vtypes = append(vtypes, t)

		case graph.InstrConst:
			id, err := imp.importValue(&f.Body, in.Const, graph.TypeRef{})
			if err != nil {
				return nil, err
			}
			vmap = append(vmap, id)
			vtypes = append(vtypes, in.Const.TypeOf())

		case graph.InstrReturn:
			if err := imp.emitReturn(f, in, vmap, vtypes); err != nil {
				return nil, err
			}
			returned = true

		default:
			return nil, NewUnsupportedValueKindError("instruction", f.Name)
		}
	}

	// Methods that fall off the end return the none singleton.
	if !returned {
		if err := imp.emitReturn(f, graph.ReturnNone(), vmap, vtypes); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// operand resolves a body operand index against the values defined so
// far. An index outside the value space is an input-graph defect and
// fails the pass instead of panicking.
func operand(name string, vmap []ir.ValueID, idx int) (ir.ValueID, error) {
	if idx < 0 || idx >= len(vmap) {
		return ir.NoResult, NewBadOperandError(name, idx, len(vmap))
	}
	return vmap[idx], nil
}

// importCall lowers a call instruction. A statically known callee lowers
// to a direct call; a callee that reaches the site as a runtime function
// value lowers to a function-reference constant plus an indirect call
// through it.
func (imp *Importer) importCall(f *ir.Func, in graph.Instr, vmap []ir.ValueID) (ir.ValueID, graph.TypeRef, error) {
	callee, err := imp.importMethod(in.Callee)
	if err != nil {
		return ir.NoResult, graph.TypeRef{}, err
	}
	sig := funcValueType(callee)
	args := make([]ir.ValueID, len(in.Args))
	for i, a := range in.Args {
		if args[i], err = operand(f.Name, vmap, a); err != nil {
			return ir.NoResult, graph.TypeRef{}, err
		}
	}

	var id ir.ValueID
	if in.Indirect {
		fn := f.Body.Emit(ir.Instr{
			Op:         ir.OpFuncConst,
			Type:       sig,
			Callee:     callee.Name,
			CalleeType: sig,
		})
		id = f.Body.Emit(ir.Instr{
			Op:         ir.OpCallIndirect,
			Type:       callee.Result,
			CalleeType: sig,
			Args:       append([]ir.ValueID{fn}, args...),
		})
	} else {
		id = f.Body.Emit(ir.Instr{
			Op:         ir.OpCall,
			Type:       callee.Result,
			Callee:     callee.Name,
			CalleeType: sig,
			Args:       args,
		})
	}
	return id, in.Callee.Result, nil
}

// importCallMethod lowers a method invocation on a receiver expression to
// a bound-method-call dispatched through the receiver class's method
// table at the call site. The target body is not imported here: it is
// imported with its declaring class, since dispatch is dynamic relative
// to the receiver's concrete class.
func (imp *Importer) importCallMethod(f *ir.Func, in graph.Instr, vmap []ir.ValueID, vtypes []graph.TypeRef) (ir.ValueID, graph.TypeRef, error) {
	recv, err := operand(f.Name, vmap, in.Receiver)
	if err != nil {
		return ir.NoResult, graph.TypeRef{}, err
	}
	recvType := vtypes[in.Receiver]
	if recvType.Kind != graph.KindClass || recvType.Class == nil {
		return ir.NoResult, graph.TypeRef{}, NewUnknownMethodError(recvType.Kind.String(), in.Method)
	}
	class := recvType.Class
	className, err := imp.registry.QualifiedName(class)
	if err != nil {
		return ir.NoResult, graph.TypeRef{}, err
	}
	target := class.FindMethod(in.Method)
	if target == nil {
		return ir.NoResult, graph.TypeRef{}, NewUnknownMethodError(className, in.Method)
	}

	resultType, err := imp.registry.irType(target.Result)
	if err != nil {
		return ir.NoResult, graph.TypeRef{}, err
	}
	// The bound signature carries the receiver type first, then the
	// declared parameters.
	sigParams := make([]ir.Type, 0, len(target.Params)+1)
	sigParams = append(sigParams, ir.ClassType(className))
	for _, p := range target.Params {
		pt, err := imp.registry.irType(p.Type)
		if err != nil {
			return ir.NoResult, graph.TypeRef{}, err
		}
		sigParams = append(sigParams, pt)
	}

	args := make([]ir.ValueID, 0, len(in.Args)+1)
	args = append(args, recv)
	for _, a := range in.Args {
		id, err := operand(f.Name, vmap, a)
		if err != nil {
			return ir.NoResult, graph.TypeRef{}, err
		}
		args = append(args, id)
	}
	id := f.Body.Emit(ir.Instr{
		Op:         ir.OpCallMethod,
		Type:       resultType,
		Method:     in.Method,
		CalleeType: ir.FuncType(sigParams, resultType),
		Args:       args,
	})
	return id, target.Result, nil
}

// emitReturn emits the function's single return. Returns without a value
// return the none singleton.
func (imp *Importer) emitReturn(f *ir.Func, in graph.Instr, vmap []ir.ValueID, vtypes []graph.TypeRef) error {
	var id ir.ValueID
	t := ir.NoneType
	if in.Value == graph.NoValue {
		id = imp.noneSingleton(&f.Body)
	} else {
		v, err := operand(f.Name, vmap, in.Value)
		if err != nil {
			return err
		}
		id = v
		if rt, err := imp.registry.irType(vtypes[in.Value]); err == nil {
			t = rt
		}
	}
	f.Body.Append(ir.Instr{Op: ir.OpReturn, Result: ir.NoResult, Type: t, Args: []ir.ValueID{id}})
	return nil
}

// methodSymbol synthesizes the qualified function symbol for a method or
// free function and claims it in the pass-wide symbol table.
func (imp *Importer) methodSymbol(m *graph.Method) (string, error) {
	var name string
	if m.Class != nil {
		className, err := imp.registry.QualifiedName(m.Class)
		if err != nil {
			return "", err
		}
		name = ir.Symbol(className, m.Name)
	} else {
		name = ir.Symbol(m.Namespace, m.Name)
	}
	if err := imp.registry.ClaimSymbol(name); err != nil {
		return "", err
	}
	return name, nil
}
