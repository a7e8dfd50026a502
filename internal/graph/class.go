package graph

// SlotDecl declares a named, typed attribute of a class.
type SlotDecl struct {
	Name string
	Type TypeRef
}

// Class is the descriptor for a module class: its slot layout and the
// methods it defines. Two instances sharing the same *Class are instances
// of the same class and must map to exactly one emitted class declaration.
type Class struct {
	// Namespace is the qualifying scope the class was defined in
	// (e.g. "main"). May be empty.
	Namespace string

	// Name is the local class name. Empty for anonymous classes; the
	// importer synthesizes a deterministic name for those.
	Name string

	// Slots in declared order.
	Slots []SlotDecl

	// Methods in declared order.
	Methods []*Method
}

// FindMethod returns the method named name, or nil if the class does not
// define it.
func (c *Class) FindMethod(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FindSlot returns the index of the slot named name, or -1.
func (c *Class) FindSlot(name string) int {
	for i, s := range c.Slots {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Param is a named, typed method parameter. For methods the receiver is
// an explicit first parameter of the declaring class's type.
type Param struct {
	Name string
	Type TypeRef
}

// Method is a compiled method body: a sequence of typed instructions.
// A method belongs to exactly one class (Class non-nil) or is a free
// function qualified by Namespace.
type Method struct {
	Class     *Class
	Namespace string
	Name      string
	Params    []Param
	Result    TypeRef
	Body      []Instr
}

// Object is a concrete module instance: its class plus ordered slot
// values parallel to Class.Slots. Slot values may reference other objects,
// including objects already on the path from the root (cycles).
type Object struct {
	Class *Class
	Slots []*Value
}

// Program is a fully loaded object graph: every class, free function, and
// object reachable from Root. The importer only needs Root; the rest is
// kept for validation and tooling.
type Program struct {
	Classes   []*Class
	Functions []*Method
	Objects   []*Object
	Root      *Object
}
