package graph

// ValueKind tags a runtime constant value.
type ValueKind int

const (
	ValueInvalid ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueString
	ValueNone
	ValueTuple
	ValueList
	ValueTensor
	ValueObject
	ValueFunction
)

var valueKindNames = map[ValueKind]string{
	ValueInvalid:  "invalid",
	ValueInt:      "int",
	ValueFloat:    "float",
	ValueBool:     "bool",
	ValueString:   "string",
	ValueNone:     "none",
	ValueTuple:    "tuple",
	ValueList:     "list",
	ValueTensor:   "tensor",
	ValueObject:   "object",
	ValueFunction: "function",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Tensor is opaque n-dimensional data. Data is borrowed from the producing
// object graph for the duration of one import pass; neither the importer
// nor the IR module copies or retains it past the pass.
type Tensor struct {
	DType string
	Shape []int64
	Data  []byte
}

// NumElements returns the product of the shape dimensions.
func (t *Tensor) NumElements() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Value is an immutable runtime constant. Composite values (tuple, list)
// own their element values; values never reference their containing
// instance.
type Value struct {
	Kind   ValueKind
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Elems  []*Value
	Tensor *Tensor
	Object *Object
	Method *Method
}

func IntValue(v int64) *Value     { return &Value{Kind: ValueInt, Int: v} }
func FloatValue(v float64) *Value { return &Value{Kind: ValueFloat, Float: v} }
func BoolValue(v bool) *Value     { return &Value{Kind: ValueBool, Bool: v} }
func StringValue(s string) *Value { return &Value{Kind: ValueString, Str: s} }
func NoneValue() *Value           { return &Value{Kind: ValueNone} }

// TupleValue builds a tuple over elems in order.
func TupleValue(elems ...*Value) *Value {
	return &Value{Kind: ValueTuple, Elems: elems}
}

// ListValue builds a list over elems in order.
func ListValue(elems ...*Value) *Value {
	return &Value{Kind: ValueList, Elems: elems}
}

// TensorValue wraps borrowed tensor data.
func TensorValue(t *Tensor) *Value {
	return &Value{Kind: ValueTensor, Tensor: t}
}

// ObjectValue references an instance. The same *Object may be referenced
// from multiple slots; the importer emits it once.
func ObjectValue(o *Object) *Value {
	return &Value{Kind: ValueObject, Object: o}
}

// FunctionValue references a method or free function as a first-class
// value; the importer lowers it to a function-reference constant.
func FunctionValue(m *Method) *Value {
	return &Value{Kind: ValueFunction, Method: m}
}

// TypeOf returns the static type carried by a value's tag. For objects it
// resolves to the object's class type.
func (v *Value) TypeOf() TypeRef {
	switch v.Kind {
	case ValueInt:
		return IntType()
	case ValueFloat:
		return FloatType()
	case ValueBool:
		return BoolType()
	case ValueString:
		return StringType()
	case ValueNone:
		return NoneType()
	case ValueTuple:
		return TupleType()
	case ValueList:
		return ListType()
	case ValueTensor:
		return TensorType()
	case ValueObject:
		return ClassType(v.Object.Class)
	case ValueFunction:
		return TypeRef{Kind: KindFunction}
	default:
		return TypeRef{}
	}
}
