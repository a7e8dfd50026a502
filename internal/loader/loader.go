package loader

import (
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/tracelift/tracelift/internal/graph"
)

// Load reads and parses one graph document file.
func Load(path string) (*graph.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errf(ErrCodeNotFound, noPos(), "graph document not found: %s", path)
		}
		return nil, errf(ErrCodeNotFound, noPos(), "error reading graph document: %v", err)
	}
	return LoadBytes(data, path)
}

// LoadBytes parses graph document bytes. filename is used for positions.
func LoadBytes(data []byte, filename string) (*graph.Program, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, errf(ErrCodeParse, v.Pos(), "parsing CUE: %v", err)
	}
	return LoadValue(v)
}

// LoadValue builds the object graph from a compiled CUE value. The value
// must contain a top-level "graph" struct.
func LoadValue(v cue.Value) (*graph.Program, error) {
	gv := v.LookupPath(cue.ParsePath("graph"))
	if !gv.Exists() {
		return nil, errf(ErrCodeMissingField, v.Pos(), "document has no top-level \"graph\" struct")
	}

	b := &builder{
		classes:   make(map[string]*graph.Class),
		functions: make(map[string]*graph.Method),
		objects:   make(map[string]*graph.Object),
	}

	// Phase 1: allocate shells for every ID so references resolve
	// regardless of declaration order or cycles.
	if err := b.allocShells(gv); err != nil {
		return nil, err
	}

	// Phase 2: fill in slots, signatures, bodies, and slot values.
	if err := b.fillClasses(gv); err != nil {
		return nil, err
	}
	if err := b.fillFunctions(gv); err != nil {
		return nil, err
	}
	if err := b.fillObjects(gv); err != nil {
		return nil, err
	}

	rootVal := gv.LookupPath(cue.ParsePath("root"))
	if !rootVal.Exists() {
		return nil, errf(ErrCodeMissingField, gv.Pos(), "graph has no root object")
	}
	rootID, err := rootVal.String()
	if err != nil {
		return nil, errf(ErrCodeBadKind, rootVal.Pos(), "root must be an object ID string: %v", err)
	}
	root, ok := b.objects[rootID]
	if !ok {
		return nil, errf(ErrCodeBadReference, rootVal.Pos(), "root references unknown object %q", rootID)
	}

	prog := &graph.Program{Root: root}
	prog.Classes = append(prog.Classes, b.classOrder...)
	prog.Functions = append(prog.Functions, b.funcOrder...)
	prog.Objects = append(prog.Objects, b.objectOrder...)
	return prog, nil
}

type builder struct {
	classes   map[string]*graph.Class
	functions map[string]*graph.Method
	objects   map[string]*graph.Object

	classOrder  []*graph.Class
	funcOrder   []*graph.Method
	objectOrder []*graph.Object
}

func (b *builder) allocShells(gv cue.Value) error {
	if err := eachField(gv, "classes", func(id string, v cue.Value) error {
		b.classes[id] = &graph.Class{}
		b.classOrder = append(b.classOrder, b.classes[id])
		return nil
	}); err != nil {
		return err
	}
	if err := eachField(gv, "functions", func(id string, v cue.Value) error {
		b.functions[id] = &graph.Method{}
		b.funcOrder = append(b.funcOrder, b.functions[id])
		return nil
	}); err != nil {
		return err
	}
	return eachField(gv, "objects", func(id string, v cue.Value) error {
		b.objects[id] = &graph.Object{}
		b.objectOrder = append(b.objectOrder, b.objects[id])
		return nil
	})
}

func (b *builder) fillClasses(gv cue.Value) error {
	return eachField(gv, "classes", func(id string, v cue.Value) error {
		c := b.classes[id]

		if nsVal := v.LookupPath(cue.ParsePath("namespace")); nsVal.Exists() {
			ns, err := nsVal.String()
			if err != nil {
				return errf(ErrCodeBadKind, nsVal.Pos(), "class %q: namespace must be a string", id)
			}
			c.Namespace = ns
		}
		if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
			name, err := nameVal.String()
			if err != nil {
				return errf(ErrCodeBadKind, nameVal.Pos(), "class %q: name must be a string", id)
			}
			c.Name = name
		}

		if err := eachListItem(v, "slots", func(sv cue.Value) error {
			nameVal := sv.LookupPath(cue.ParsePath("name"))
			name, err := nameVal.String()
			if err != nil {
				return errf(ErrCodeMissingField, sv.Pos(), "class %q: slot needs a name", id)
			}
			t, err := b.parseType(sv.LookupPath(cue.ParsePath("type")))
			if err != nil {
				return err
			}
			c.Slots = append(c.Slots, graph.SlotDecl{Name: name, Type: t})
			return nil
		}); err != nil {
			return err
		}

		return eachListItem(v, "methods", func(mv cue.Value) error {
			fid, err := mv.String()
			if err != nil {
				return errf(ErrCodeBadKind, mv.Pos(), "class %q: method entries must be function IDs", id)
			}
			m, ok := b.functions[fid]
			if !ok {
				return errf(ErrCodeBadReference, mv.Pos(), "class %q references unknown function %q", id, fid)
			}
			m.Class = c
			c.Methods = append(c.Methods, m)
			return nil
		})
	})
}

func (b *builder) fillFunctions(gv cue.Value) error {
	return eachField(gv, "functions", func(id string, v cue.Value) error {
		m := b.functions[id]

		nameVal := v.LookupPath(cue.ParsePath("name"))
		name, err := nameVal.String()
		if err != nil {
			return errf(ErrCodeMissingField, v.Pos(), "function %q needs a name", id)
		}
		m.Name = name

		if nsVal := v.LookupPath(cue.ParsePath("namespace")); nsVal.Exists() {
			ns, err := nsVal.String()
			if err != nil {
				return errf(ErrCodeBadKind, nsVal.Pos(), "function %q: namespace must be a string", id)
			}
			m.Namespace = ns
		}

		if err := eachListItem(v, "params", func(pv cue.Value) error {
			pname, err := pv.LookupPath(cue.ParsePath("name")).String()
			if err != nil {
				return errf(ErrCodeMissingField, pv.Pos(), "function %q: param needs a name", id)
			}
			t, err := b.parseType(pv.LookupPath(cue.ParsePath("type")))
			if err != nil {
				return err
			}
			m.Params = append(m.Params, graph.Param{Name: pname, Type: t})
			return nil
		}); err != nil {
			return err
		}

		resultVal := v.LookupPath(cue.ParsePath("result"))
		if resultVal.Exists() {
			t, err := b.parseType(resultVal)
			if err != nil {
				return err
			}
			m.Result = t
		} else {
			m.Result = graph.NoneType()
		}

		if err := eachListItem(v, "body", func(iv cue.Value) error {
			in, err := b.parseInstr(id, iv)
			if err != nil {
				return err
			}
			m.Body = append(m.Body, in)
			return nil
		}); err != nil {
			return err
		}

		return validateBody(id, m)
	})
}

// validateBody checks that every instruction operand names a value the
// body has defined at that point: parameters occupy the first indices,
// and each call, call_method, and const appends one result after them.
func validateBody(id string, m *graph.Method) error {
	width := len(m.Params)
	check := func(idx int, what string) error {
		if idx < 0 || idx >= width {
			return errf(ErrCodeBadReference, noPos(),
				"function %q: %s references undefined value %d", id, what, idx)
		}
		return nil
	}
	for _, in := range m.Body {
		if in.Kind == graph.InstrCallMethod {
			if err := check(in.Receiver, "call_method receiver"); err != nil {
				return err
			}
		}
		for _, a := range in.Args {
			if err := check(a, "argument"); err != nil {
				return err
			}
		}
		if in.Kind == graph.InstrReturn {
			if in.Value != graph.NoValue {
				if err := check(in.Value, "return"); err != nil {
					return err
				}
			}
			continue
		}
		width++
	}
	return nil
}

func (b *builder) fillObjects(gv cue.Value) error {
	return eachField(gv, "objects", func(id string, v cue.Value) error {
		o := b.objects[id]

		classVal := v.LookupPath(cue.ParsePath("class"))
		cid, err := classVal.String()
		if err != nil {
			return errf(ErrCodeMissingField, v.Pos(), "object %q needs a class", id)
		}
		c, ok := b.classes[cid]
		if !ok {
			return errf(ErrCodeBadReference, classVal.Pos(), "object %q references unknown class %q", id, cid)
		}
		o.Class = c

		return eachListItem(v, "slots", func(sv cue.Value) error {
			val, err := b.parseValue(sv)
			if err != nil {
				return err
			}
			o.Slots = append(o.Slots, val)
			return nil
		})
	})
}

// parseType accepts either a shorthand string ("int", "tensor", ...) or a
// struct with a "class" field referencing a class ID.
func (b *builder) parseType(v cue.Value) (graph.TypeRef, error) {
	if !v.Exists() {
		return graph.TypeRef{}, errf(ErrCodeMissingField, noPos(), "missing type")
	}
	if s, err := v.String(); err == nil {
		kind, ok := typeKinds[s]
		if !ok {
			return graph.TypeRef{}, errf(ErrCodeBadKind, v.Pos(), "unknown type %q", s)
		}
		return graph.TypeRef{Kind: kind}, nil
	}
	classVal := v.LookupPath(cue.ParsePath("class"))
	if classVal.Exists() {
		cid, err := classVal.String()
		if err != nil {
			return graph.TypeRef{}, errf(ErrCodeBadKind, classVal.Pos(), "class type reference must be a string")
		}
		c, ok := b.classes[cid]
		if !ok {
			return graph.TypeRef{}, errf(ErrCodeBadReference, classVal.Pos(), "type references unknown class %q", cid)
		}
		return graph.ClassType(c), nil
	}
	return graph.TypeRef{}, errf(ErrCodeBadKind, v.Pos(), "type must be a kind string or {class: ...}")
}

var typeKinds = map[string]graph.TypeKind{
	"int":      graph.KindInt,
	"float":    graph.KindFloat,
	"bool":     graph.KindBool,
	"str":      graph.KindString,
	"none":     graph.KindNone,
	"tuple":    graph.KindTuple,
	"list":     graph.KindList,
	"tensor":   graph.KindTensor,
	"function": graph.KindFunction,
}

func (b *builder) parseInstr(fid string, v cue.Value) (graph.Instr, error) {
	opVal := v.LookupPath(cue.ParsePath("op"))
	op, err := opVal.String()
	if err != nil {
		return graph.Instr{}, errf(ErrCodeMissingField, v.Pos(), "function %q: instruction needs an op", fid)
	}

	switch op {
	case "call":
		calleeVal := v.LookupPath(cue.ParsePath("callee"))
		cid, err := calleeVal.String()
		if err != nil {
			return graph.Instr{}, errf(ErrCodeMissingField, v.Pos(), "function %q: call needs a callee", fid)
		}
		callee, ok := b.functions[cid]
		if !ok {
			return graph.Instr{}, errf(ErrCodeBadReference, calleeVal.Pos(), "function %q calls unknown function %q", fid, cid)
		}
		args, err := intList(v, "args")
		if err != nil {
			return graph.Instr{}, err
		}
		indirect := false
		if iv := v.LookupPath(cue.ParsePath("indirect")); iv.Exists() {
			indirect, err = iv.Bool()
			if err != nil {
				return graph.Instr{}, errf(ErrCodeBadKind, iv.Pos(), "function %q: indirect must be a bool", fid)
			}
		}
		in := graph.Call(callee, args...)
		in.Indirect = indirect
		return in, nil

	case "call_method":
		recvVal := v.LookupPath(cue.ParsePath("receiver"))
		recv, err := recvVal.Int64()
		if err != nil {
			return graph.Instr{}, errf(ErrCodeMissingField, v.Pos(), "function %q: call_method needs a receiver index", fid)
		}
		methodVal := v.LookupPath(cue.ParsePath("method"))
		method, err := methodVal.String()
		if err != nil {
			return graph.Instr{}, errf(ErrCodeMissingField, v.Pos(), "function %q: call_method needs a method name", fid)
		}
		args, err := intList(v, "args")
		if err != nil {
			return graph.Instr{}, err
		}
		return graph.CallMethod(int(recv), method, args...), nil

	case "const":
		val, err := b.parseValue(v.LookupPath(cue.ParsePath("value")))
		if err != nil {
			return graph.Instr{}, err
		}
		return graph.Const(val), nil

	case "return":
		if rv := v.LookupPath(cue.ParsePath("value")); rv.Exists() {
			idx, err := rv.Int64()
			if err != nil {
				return graph.Instr{}, errf(ErrCodeBadKind, rv.Pos(), "function %q: return value must be an index", fid)
			}
			return graph.Return(int(idx)), nil
		}
		return graph.ReturnNone(), nil

	default:
		return graph.Instr{}, errf(ErrCodeBadKind, opVal.Pos(), "function %q: unknown op %q", fid, op)
	}
}

func (b *builder) parseValue(v cue.Value) (*graph.Value, error) {
	if !v.Exists() {
		return nil, errf(ErrCodeMissingField, noPos(), "missing value")
	}
	kindVal := v.LookupPath(cue.ParsePath("kind"))
	kind, err := kindVal.String()
	if err != nil {
		return nil, errf(ErrCodeMissingField, v.Pos(), "value needs a kind")
	}

	switch kind {
	case "int":
		n, err := v.LookupPath(cue.ParsePath("value")).Int64()
		if err != nil {
			return nil, errf(ErrCodeBadKind, v.Pos(), "int value: %v", err)
		}
		return graph.IntValue(n), nil

	case "float":
		f, err := v.LookupPath(cue.ParsePath("value")).Float64()
		if err != nil {
			return nil, errf(ErrCodeBadKind, v.Pos(), "float value: %v", err)
		}
		return graph.FloatValue(f), nil

	case "bool":
		bv, err := v.LookupPath(cue.ParsePath("value")).Bool()
		if err != nil {
			return nil, errf(ErrCodeBadKind, v.Pos(), "bool value: %v", err)
		}
		return graph.BoolValue(bv), nil

	case "str":
		s, err := v.LookupPath(cue.ParsePath("value")).String()
		if err != nil {
			return nil, errf(ErrCodeBadKind, v.Pos(), "str value: %v", err)
		}
		return graph.StringValue(s), nil

	case "none":
		return graph.NoneValue(), nil

	case "tuple", "list":
		var elems []*graph.Value
		if err := eachListItem(v, "elems", func(ev cue.Value) error {
			elem, err := b.parseValue(ev)
			if err != nil {
				return err
			}
			elems = append(elems, elem)
			return nil
		}); err != nil {
			return nil, err
		}
		if kind == "tuple" {
			return graph.TupleValue(elems...), nil
		}
		return graph.ListValue(elems...), nil

	case "tensor":
		dtype, err := v.LookupPath(cue.ParsePath("dtype")).String()
		if err != nil {
			return nil, errf(ErrCodeMissingField, v.Pos(), "tensor value needs a dtype")
		}
		t := &graph.Tensor{DType: dtype}
		if err := eachListItem(v, "shape", func(dv cue.Value) error {
			d, err := dv.Int64()
			if err != nil {
				return errf(ErrCodeBadKind, dv.Pos(), "tensor shape dims must be integers")
			}
			t.Shape = append(t.Shape, d)
			return nil
		}); err != nil {
			return nil, err
		}
		if dataVal := v.LookupPath(cue.ParsePath("data")); dataVal.Exists() {
			data, err := dataVal.Bytes()
			if err != nil {
				return nil, errf(ErrCodeBadKind, dataVal.Pos(), "tensor data must be bytes")
			}
			t.Data = data
		}
		return graph.TensorValue(t), nil

	case "object":
		refVal := v.LookupPath(cue.ParsePath("ref"))
		oid, err := refVal.String()
		if err != nil {
			return nil, errf(ErrCodeMissingField, v.Pos(), "object value needs a ref")
		}
		o, ok := b.objects[oid]
		if !ok {
			return nil, errf(ErrCodeBadReference, refVal.Pos(), "value references unknown object %q", oid)
		}
		return graph.ObjectValue(o), nil

	case "function":
		refVal := v.LookupPath(cue.ParsePath("ref"))
		fid, err := refVal.String()
		if err != nil {
			return nil, errf(ErrCodeMissingField, v.Pos(), "function value needs a ref")
		}
		m, ok := b.functions[fid]
		if !ok {
			return nil, errf(ErrCodeBadReference, refVal.Pos(), "value references unknown function %q", fid)
		}
		return graph.FunctionValue(m), nil

	default:
		return nil, errf(ErrCodeBadKind, kindVal.Pos(), "unknown value kind %q", kind)
	}
}

// eachField iterates the fields of an optional struct member in
// declaration order.
func eachField(v cue.Value, field string, fn func(label string, v cue.Value) error) error {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil
	}
	iter, err := fv.Fields()
	if err != nil {
		return errf(ErrCodeBadKind, fv.Pos(), "iterating %s: %v", field, err)
	}
	for iter.Next() {
		if err := fn(iter.Label(), iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

// eachListItem iterates an optional list member in order.
func eachListItem(v cue.Value, field string, fn func(v cue.Value) error) error {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil
	}
	iter, err := fv.List()
	if err != nil {
		return errf(ErrCodeBadKind, fv.Pos(), "%s must be a list: %v", field, err)
	}
	for iter.Next() {
		if err := fn(iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

func intList(v cue.Value, field string) ([]int, error) {
	var out []int
	err := eachListItem(v, field, func(iv cue.Value) error {
		n, err := iv.Int64()
		if err != nil {
			return errf(ErrCodeBadKind, iv.Pos(), "%s entries must be integers: %v", field, err)
		}
		out = append(out, int(n))
		return nil
	})
	return out, err
}

func noPos() token.Pos {
	var p token.Pos
	return p
}
