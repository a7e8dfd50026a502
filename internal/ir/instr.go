package ir

// ValueID identifies a value within one block's value space. IDs are
// allocated sequentially; a pre-allocated ID may be defined after values
// that reference it (the cycle-breaking placeholder in module literals).
type ValueID int

// NoResult marks an instruction that defines no value.
const NoResult ValueID = -1

// OpKind tags an IR instruction.
type OpKind int

const (
	OpInvalid OpKind = iota

	// OpConst constructs a leaf constant (numeric, bool, string, none,
	// tensor).
	OpConst

	// OpTuple and OpList construct compound constants over previously
	// constructed element values, in original order.
	OpTuple
	OpList

	// OpFuncConst constructs a function-reference constant for a symbol.
	OpFuncConst

	// OpCall is a direct call to a statically named function symbol.
	OpCall

	// OpCallIndirect calls through a function value (Args[0]).
	OpCallIndirect

	// OpCallMethod dispatches through the receiver's class method table.
	// Args[0] is the receiver.
	OpCallMethod

	// OpNewModule constructs a module literal binding slot values.
	OpNewModule

	// OpReturn returns the single operand.
	OpReturn
)

// ConstKind tags the payload of an OpConst.
type ConstKind int

const (
	ConstInvalid ConstKind = iota
	ConstInt
	ConstFloat
	ConstBool
	ConstStr
	ConstNone
	ConstTensor
)

// TensorPayload carries opaque tensor metadata plus a reference to the
// source graph's backing storage. Data is BORROWED: it is valid only for
// the import pass that produced this module and must not be retained once
// the pass's output has been printed or stored.
type TensorPayload struct {
	DType string
	Shape []int64
	Data  []byte
}

// SlotBinding binds a slot name to a previously defined value inside a
// module literal.
type SlotBinding struct {
	Name  string
	Value ValueID
}

// Instr is one IR instruction. Which fields are meaningful depends on Op;
// consumers dispatch over Op with a closed switch.
type Instr struct {
	Op     OpKind
	Result ValueID
	Type   Type // result type; operand type for OpReturn

	// OpConst payload.
	ConstKind ConstKind
	Int       int64
	Float     float64
	Bool      bool
	Str       string
	Tensor    *TensorPayload

	// OpCall / OpFuncConst callee symbol.
	Callee string

	// Callee signature, for OpCall, OpCallIndirect, OpFuncConst, and
	// OpCallMethod (where Params[0] is the receiver type).
	CalleeType Type

	// OpCallMethod method name.
	Method string

	// Operands. OpCallIndirect: Args[0] is the callee value.
	// OpCallMethod: Args[0] is the receiver.
	Args []ValueID

	// OpNewModule payload.
	ClassName string
	Slots     []SlotBinding
}

// Block is an ordered instruction sequence with its own value space.
// Function bodies and the module's top-level value region are blocks.
type Block struct {
	Instrs []Instr
	nvals  int
}

// AllocValue reserves the next value ID without defining it. Used both
// for ordinary results and for module-literal placeholders allocated
// before slot recursion.
func (b *Block) AllocValue() ValueID {
	id := ValueID(b.nvals)
	b.nvals++
	return id
}

// NumValues returns how many value IDs have been allocated.
func (b *Block) NumValues() int {
	return b.nvals
}

// Append adds an instruction to the block.
func (b *Block) Append(in Instr) {
	b.Instrs = append(b.Instrs, in)
}

// Emit allocates a result ID for in, appends it, and returns the ID.
func (b *Block) Emit(in Instr) ValueID {
	in.Result = b.AllocValue()
	b.Append(in)
	return in.Result
}
