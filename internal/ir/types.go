package ir

import (
	"fmt"
	"strings"
)

// TypeKind tags an IR type.
type TypeKind int

const (
	InvalidType TypeKind = iota
	I64
	F64
	BoolKind
	StrKind
	NoneKind
	TupleKind
	ListKind
	TensorKind
	ClassKind
	FuncKind
)

// Type is an IR type. ClassName is set for ClassKind; Params/Result for
// FuncKind. Tuple and list types carry no element types: the producing
// representation erased them and the importer does not reconstruct them.
type Type struct {
	Kind      TypeKind
	ClassName string
	Params    []Type
	Result    *Type
}

var (
	I64Type    = Type{Kind: I64}
	F64Type    = Type{Kind: F64}
	BoolType   = Type{Kind: BoolKind}
	StrType    = Type{Kind: StrKind}
	NoneType   = Type{Kind: NoneKind}
	TupleType  = Type{Kind: TupleKind}
	ListType   = Type{Kind: ListKind}
	TensorType = Type{Kind: TensorKind}
)

// ClassType returns the type of instances of the named class.
func ClassType(name string) Type {
	return Type{Kind: ClassKind, ClassName: name}
}

// FuncType returns a first-class function type.
func FuncType(params []Type, result Type) Type {
	return Type{Kind: FuncKind, Params: params, Result: &result}
}

// String renders the type in printer syntax.
func (t Type) String() string {
	switch t.Kind {
	case I64:
		return "i64"
	case F64:
		return "f64"
	case BoolKind:
		return "bool"
	case StrKind:
		return "str"
	case NoneKind:
		return "none"
	case TupleKind:
		return "tuple"
	case ListKind:
		return "list"
	case TensorKind:
		return "tensor"
	case ClassKind:
		return fmt.Sprintf("class<%q>", t.ClassName)
	case FuncKind:
		if t.Params == nil && t.Result == nil {
			// Function-typed slot with erased signature.
			return "function"
		}
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		result := "none"
		if t.Result != nil {
			result = t.Result.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), result)
	default:
		return "invalid"
	}
}

// Equal reports structural type equality.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.ClassName != o.ClassName {
		return false
	}
	if len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	if (t.Result == nil) != (o.Result == nil) {
		return false
	}
	if t.Result != nil && !t.Result.Equal(*o.Result) {
		return false
	}
	return true
}
