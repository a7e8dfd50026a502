package graph

// TypeKind tags the static type of a slot, parameter, or result.
type TypeKind int

const (
	KindInvalid TypeKind = iota

	// KindInt is a 64-bit integer.
	KindInt

	// KindFloat is a 64-bit float.
	KindFloat

	// KindBool is a boolean.
	KindBool

	// KindString is a text string.
	KindString

	// KindNone is the unit/none type.
	KindNone

	// KindTuple is a fixed-arity compound. Element types are not carried:
	// the producing representation has already erased them.
	KindTuple

	// KindList is a variable-arity compound. Element types are erased,
	// same as KindTuple.
	KindList

	// KindTensor is opaque n-dimensional data with dtype/shape metadata.
	KindTensor

	// KindClass is a module instance type. TypeRef.Class identifies the
	// class descriptor.
	KindClass

	// KindFunction is a first-class function value.
	KindFunction
)

var typeKindNames = map[TypeKind]string{
	KindInvalid:  "invalid",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindString:   "string",
	KindNone:     "none",
	KindTuple:    "tuple",
	KindList:     "list",
	KindTensor:   "tensor",
	KindClass:    "class",
	KindFunction: "function",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TypeRef is a reference to a static type. Class is set only when
// Kind == KindClass.
type TypeRef struct {
	Kind  TypeKind
	Class *Class
}

// IntType and friends are convenience constructors for leaf type refs.
func IntType() TypeRef    { return TypeRef{Kind: KindInt} }
func FloatType() TypeRef  { return TypeRef{Kind: KindFloat} }
func BoolType() TypeRef   { return TypeRef{Kind: KindBool} }
func StringType() TypeRef { return TypeRef{Kind: KindString} }
func NoneType() TypeRef   { return TypeRef{Kind: KindNone} }
func TupleType() TypeRef  { return TypeRef{Kind: KindTuple} }
func ListType() TypeRef   { return TypeRef{Kind: KindList} }
func TensorType() TypeRef { return TypeRef{Kind: KindTensor} }

// FunctionType returns a function-valued type ref. The signature is
// erased at the annotation level.
func FunctionType() TypeRef { return TypeRef{Kind: KindFunction} }

// ClassType returns a type ref for instances of c.
func ClassType(c *Class) TypeRef {
	return TypeRef{Kind: KindClass, Class: c}
}
