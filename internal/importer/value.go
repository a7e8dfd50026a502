package importer

import (
	"github.com/tracelift/tracelift/internal/graph"
	"github.com/tracelift/tracelift/internal/ir"
)

// importValue lowers a runtime constant into constant-construction
// instructions appended to block, returning the value holding the result.
// expected is the static type annotation of the destination (slot or
// operand); it widens integer constants into float destinations but is
// otherwise advisory, since the input graph is assumed consistent.
func (imp *Importer) importValue(block *ir.Block, v *graph.Value, expected graph.TypeRef) (ir.ValueID, error) {
	switch v.Kind {
	case graph.ValueInt:
		if expected.Kind == graph.KindFloat {
			return block.Emit(ir.Instr{
				Op:        ir.OpConst,
				Type:      ir.F64Type,
				ConstKind: ir.ConstFloat,
				Float:     float64(v.Int),
			}), nil
		}
		return block.Emit(ir.Instr{
			Op:        ir.OpConst,
			Type:      ir.I64Type,
			ConstKind: ir.ConstInt,
			Int:       v.Int,
		}), nil

	case graph.ValueFloat:
		return block.Emit(ir.Instr{
			Op:        ir.OpConst,
			Type:      ir.F64Type,
			ConstKind: ir.ConstFloat,
			Float:     v.Float,
		}), nil

	case graph.ValueBool:
		return block.Emit(ir.Instr{
			Op:        ir.OpConst,
			Type:      ir.BoolType,
			ConstKind: ir.ConstBool,
			Bool:      v.Bool,
		}), nil

	case graph.ValueString:
		return block.Emit(ir.Instr{
			Op:        ir.OpConst,
			Type:      ir.StrType,
			ConstKind: ir.ConstStr,
			Str:       v.Str,
		}), nil

	case graph.ValueNone:
		return imp.noneSingleton(block), nil

	case graph.ValueTuple:
		return imp.importCompound(block, v, ir.OpTuple, ir.TupleType)

	case graph.ValueList:
		return imp.importCompound(block, v, ir.OpList, ir.ListType)

	case graph.ValueTensor:
		// Backing storage is borrowed, never copied; the payload keeps
		// the same slice the source graph owns.
		return block.Emit(ir.Instr{
			Op:        ir.OpConst,
			Type:      ir.TensorType,
			ConstKind: ir.ConstTensor,
			Tensor: &ir.TensorPayload{
				DType: v.Tensor.DType,
				Shape: v.Tensor.Shape,
				Data:  v.Tensor.Data,
			},
		}), nil

	case graph.ValueObject:
		if block != &imp.mod.Init {
			// Module literals live at module scope; a function body
			// cannot define one.
			return ir.NoResult, NewUnsupportedValueKindError(v.Kind.String(), "function body constant")
		}
		return imp.importInstance(v.Object)

	case graph.ValueFunction:
		f, err := imp.importMethod(v.Method)
		if err != nil {
			return ir.NoResult, err
		}
		return block.Emit(ir.Instr{
			Op:         ir.OpFuncConst,
			Type:       funcValueType(f),
			Callee:     f.Name,
			CalleeType: funcValueType(f),
		}), nil

	default:
		return ir.NoResult, NewUnsupportedValueKindError(v.Kind.String(), "constant construction")
	}
}

// importCompound imports tuple/list elements in original order, then the
// compound construction over them. Element static types were erased by
// the producing representation and are intentionally not reconstructed.
func (imp *Importer) importCompound(block *ir.Block, v *graph.Value, op ir.OpKind, t ir.Type) (ir.ValueID, error) {
	if imp.inFlight[v] {
		return ir.NoResult, NewCyclicResolutionError(v.Kind.String())
	}
	imp.inFlight[v] = true
	defer delete(imp.inFlight, v)

	elems := make([]ir.ValueID, len(v.Elems))
	for i, elem := range v.Elems {
		id, err := imp.importValue(block, elem, graph.TypeRef{})
		if err != nil {
			return ir.NoResult, err
		}
		elems[i] = id
	}
	return block.Emit(ir.Instr{Op: op, Type: t, Args: elems}), nil
}

// noneSingleton returns the block's none value, constructing it on first
// use.
func (imp *Importer) noneSingleton(block *ir.Block) ir.ValueID {
	if id, ok := imp.nones[block]; ok {
		return id
	}
	id := block.Emit(ir.Instr{Op: ir.OpConst, Type: ir.NoneType, ConstKind: ir.ConstNone})
	imp.nones[block] = id
	return id
}

// funcValueType builds the signature type of an imported function.
func funcValueType(f *ir.Func) ir.Type {
	params := make([]ir.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return ir.FuncType(params, f.Result)
}
