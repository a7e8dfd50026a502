package graph

// InstrKind tags a compiled method-body instruction. The set is closed:
// a call, a method invocation, a constant construction, or a return.
type InstrKind int

const (
	InstrInvalid InstrKind = iota

	// InstrCall invokes a statically known function. When Indirect is
	// set the callee reaches the call site as a runtime function value
	// rather than a symbol, and the importer lowers it to a
	// function-reference constant plus an indirect call.
	InstrCall

	// InstrCallMethod invokes a method on a receiver value, dispatched
	// through the receiver class's method table.
	InstrCallMethod

	// InstrConst constructs a constant value.
	InstrConst

	// InstrReturn returns the method's single result.
	InstrReturn
)

// NoValue marks an absent value operand (a return with no result).
const NoValue = -1

// Instr is one instruction in a method body. Operands are indices into
// the method's value space: parameters occupy indices 0..len(Params)-1,
// and each InstrCall, InstrCallMethod, and InstrConst appends exactly one
// result value after them, in body order.
type Instr struct {
	Kind InstrKind

	// Callee is the static call target (InstrCall).
	Callee *Method

	// Indirect marks an InstrCall whose callee arrives as a runtime
	// function value.
	Indirect bool

	// Receiver is the receiver value index (InstrCallMethod).
	Receiver int

	// Method is the invoked method name (InstrCallMethod).
	Method string

	// Args are argument value indices (InstrCall, InstrCallMethod).
	Args []int

	// Const is the constructed constant (InstrConst).
	Const *Value

	// Value is the returned value index, or NoValue (InstrReturn).
	Value int
}

// Call builds a direct call instruction.
func Call(callee *Method, args ...int) Instr {
	return Instr{Kind: InstrCall, Callee: callee, Args: args}
}

// IndirectCall builds a call whose callee is a runtime function value
// targeting callee.
func IndirectCall(callee *Method, args ...int) Instr {
	return Instr{Kind: InstrCall, Callee: callee, Indirect: true, Args: args}
}

// CallMethod builds a dynamically dispatched method invocation.
func CallMethod(receiver int, method string, args ...int) Instr {
	return Instr{Kind: InstrCallMethod, Receiver: receiver, Method: method, Args: args}
}

// Const builds a constant-construction instruction.
func Const(v *Value) Instr {
	return Instr{Kind: InstrConst, Const: v}
}

// Return builds a return of the given value index.
func Return(value int) Instr {
	return Instr{Kind: InstrReturn, Value: value}
}

// ReturnNone builds a return of the none singleton.
func ReturnNone() Instr {
	return Instr{Kind: InstrReturn, Value: NoValue}
}
