package ir

// ClassSlot is a slot name/type pair in a class declaration.
type ClassSlot struct {
	Name string
	Type Type
}

// ClassMethod names a method a class defines and the function symbol its
// body was imported as.
type ClassMethod struct {
	Name string
	Func string
}

// ClassDecl is the emitted type description for a class of module
// instances. Exactly one declaration exists per distinct source class.
type ClassDecl struct {
	Name    string
	Slots   []ClassSlot
	Methods []ClassMethod
}

// Param is a named function parameter.
type Param struct {
	Name string
	Type Type
}

// Func is one imported function or method body.
type Func struct {
	Name   string
	Params []Param
	Result Type
	Body   Block
}

// Module is a fully built IR module. Classes, Funcs, and Init instructions
// are in emission order; the printer preserves that order, which makes two
// imports of structurally identical graphs print identically.
type Module struct {
	// Classes in registry emission order (class declared before the
	// first instance of that class).
	Classes []*ClassDecl

	// Funcs in import order.
	Funcs []*Func

	// Init is the module-scope value region: constants and module
	// literals, ending (not necessarily last textually, in cyclic
	// graphs) with the root literal.
	Init Block

	// Root is the root module literal's value in Init.
	Root ValueID
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{Root: NoResult}
}

// FindClass returns the declaration named name, or nil.
func (m *Module) FindClass(name string) *ClassDecl {
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindFunc returns the function named name, or nil.
func (m *Module) FindFunc(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
