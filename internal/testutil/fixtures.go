// Package testutil provides shared object-graph fixtures for importer,
// printer, and harness tests. Each builder returns a fresh graph so tests
// can mutate their copy without leaking state.
package testutil

import "github.com/tracelift/tracelift/internal/graph"

// ScalarModule builds a single instance holding one slot per leaf kind:
//
//	class TestModule { i: int, f: float, b: bool, s: str, n: none }
func ScalarModule() *graph.Object {
	c := &graph.Class{
		Namespace: "test",
		Name:      "TestModule",
		Slots: []graph.SlotDecl{
			{Name: "i", Type: graph.IntType()},
			{Name: "f", Type: graph.FloatType()},
			{Name: "b", Type: graph.BoolType()},
			{Name: "s", Type: graph.StringType()},
			{Name: "n", Type: graph.NoneType()},
		},
	}
	return &graph.Object{
		Class: c,
		Slots: []*graph.Value{
			graph.IntValue(3),
			graph.FloatValue(2.5),
			graph.BoolValue(true),
			graph.StringValue("hello"),
			graph.NoneValue(),
		},
	}
}

// PairTupleModule builds an instance with one tuple and one list slot:
//
//	class TestModule { t: tuple, l: list }
//	t = (1, 2)   l = [3, 4]
func PairTupleModule() *graph.Object {
	c := &graph.Class{
		Namespace: "test",
		Name:      "TestModule",
		Slots: []graph.SlotDecl{
			{Name: "t", Type: graph.TupleType()},
			{Name: "l", Type: graph.ListType()},
		},
	}
	return &graph.Object{
		Class: c,
		Slots: []*graph.Value{
			graph.TupleValue(graph.IntValue(1), graph.IntValue(2)),
			graph.ListValue(graph.IntValue(3), graph.IntValue(4)),
		},
	}
}

// TensorModule builds an instance with one tensor slot backed by the
// returned byte slice.
func TensorModule(data []byte) *graph.Object {
	c := &graph.Class{
		Namespace: "test",
		Name:      "TensorModule",
		Slots: []graph.SlotDecl{
			{Name: "w", Type: graph.TensorType()},
		},
	}
	return &graph.Object{
		Class: c,
		Slots: []*graph.Value{
			graph.TensorValue(&graph.Tensor{DType: "f32", Shape: []int64{2, 3}, Data: data}),
		},
	}
}

// SharedSubmoduleProgram builds a root whose two slots reference the SAME
// child instance:
//
//	class Child { x: int }
//	class Root { s1: Child, s2: Child }
//
// Importing it must construct the child literal once.
func SharedSubmoduleProgram() *graph.Object {
	child := &graph.Class{
		Namespace: "test",
		Name:      "Child",
		Slots: []graph.SlotDecl{
			{Name: "x", Type: graph.IntType()},
		},
	}
	root := &graph.Class{
		Namespace: "test",
		Name:      "Root",
		Slots: []graph.SlotDecl{
			{Name: "s1", Type: graph.ClassType(child)},
			{Name: "s2", Type: graph.ClassType(child)},
		},
	}
	shared := &graph.Object{Class: child, Slots: []*graph.Value{graph.IntValue(7)}}
	return &graph.Object{
		Class: root,
		Slots: []*graph.Value{
			graph.ObjectValue(shared),
			graph.ObjectValue(shared),
		},
	}
}

// SelfReferentialModule builds an instance whose single slot refers back
// to the instance itself:
//
//	class Selfish { me: Selfish }
//
// The literal's placeholder must break the cycle.
func SelfReferentialModule() *graph.Object {
	c := &graph.Class{
		Namespace: "test",
		Name:      "Selfish",
	}
	c.Slots = []graph.SlotDecl{
		{Name: "me", Type: graph.ClassType(c)},
	}
	obj := &graph.Object{Class: c}
	obj.Slots = []*graph.Value{graph.ObjectValue(obj)}
	return obj
}

// CallsMethodProgram builds a class whose forward method dispatches a
// helper method through its own method table:
//
//	class Caller {
//	  forward(self)      { return self.helper(v) }  // v = const 10
//	  helper(self, x:int) -> int { return x }
//	}
func CallsMethodProgram() *graph.Object {
	c := &graph.Class{
		Namespace: "test",
		Name:      "Caller",
	}
	helper := &graph.Method{
		Class: c,
		Name:  "helper",
		Params: []graph.Param{
			{Name: "self", Type: graph.ClassType(c)},
			{Name: "x", Type: graph.IntType()},
		},
		Result: graph.IntType(),
		Body: []graph.Instr{
			graph.Return(1),
		},
	}
	forward := &graph.Method{
		Class: c,
		Name:  "forward",
		Params: []graph.Param{
			{Name: "self", Type: graph.ClassType(c)},
		},
		Result: graph.IntType(),
		Body: []graph.Instr{
			graph.Const(graph.IntValue(10)),  // value 1
			graph.CallMethod(0, "helper", 1), // value 2
			graph.Return(2),
		},
	}
	c.Methods = []*graph.Method{forward, helper}
	return &graph.Object{Class: c}
}

// CallsFreeFunctionModule builds a class whose forward method calls a
// free function directly and then indirectly through a function value:
//
//	func util.double(x: int) -> int { return x }
//	class Caller { forward(self, x:int) -> int { direct; indirect } }
func CallsFreeFunctionModule() *graph.Object {
	double := &graph.Method{
		Namespace: "util",
		Name:      "double",
		Params: []graph.Param{
			{Name: "x", Type: graph.IntType()},
		},
		Result: graph.IntType(),
		Body: []graph.Instr{
			graph.Return(0),
		},
	}
	c := &graph.Class{
		Namespace: "test",
		Name:      "Caller",
	}
	forward := &graph.Method{
		Class: c,
		Name:  "forward",
		Params: []graph.Param{
			{Name: "self", Type: graph.ClassType(c)},
			{Name: "x", Type: graph.IntType()},
		},
		Result: graph.IntType(),
		Body: []graph.Instr{
			graph.Call(double, 1),         // value 2
			graph.IndirectCall(double, 2), // value 3
			graph.Return(3),
		},
	}
	c.Methods = []*graph.Method{forward}
	return &graph.Object{Class: c}
}

// ForwardsThroughFunctionProgram builds the forwarding shape where a free
// function's body is solely a method invocation on its module argument,
// and a method reaches that function as a runtime function value:
//
//	func util.f(instance: Mod, x: int) { return instance.method(x) }
//	class Mod {
//	  forward(self)        { f(self, v) }  // f arrives as a value; v = const 3
//	  method(self, x: int) {}
//	}
func ForwardsThroughFunctionProgram() *graph.Object {
	c := &graph.Class{
		Namespace: "test",
		Name:      "Mod",
	}
	f := &graph.Method{
		Namespace: "util",
		Name:      "f",
		Params: []graph.Param{
			{Name: "instance", Type: graph.ClassType(c)},
			{Name: "x", Type: graph.IntType()},
		},
		Result: graph.NoneType(),
		Body: []graph.Instr{
			graph.CallMethod(0, "method", 1), // value 2
			graph.Return(2),
		},
	}
	method := &graph.Method{
		Class: c,
		Name:  "method",
		Params: []graph.Param{
			{Name: "self", Type: graph.ClassType(c)},
			{Name: "x", Type: graph.IntType()},
		},
		Result: graph.NoneType(),
		Body: []graph.Instr{
			graph.ReturnNone(),
		},
	}
	forward := &graph.Method{
		Class: c,
		Name:  "forward",
		Params: []graph.Param{
			{Name: "self", Type: graph.ClassType(c)},
		},
		Result: graph.NoneType(),
		Body: []graph.Instr{
			graph.Const(graph.IntValue(3)), // value 1
			graph.IndirectCall(f, 0, 1),    // value 2
			graph.Return(2),
		},
	}
	c.Methods = []*graph.Method{forward, method}
	return &graph.Object{Class: c}
}

// SubmoduleChainProgram builds root -> middle -> leaf, each level with a
// forward method, for annotation path tests:
//
//	class Leaf   { v: int;       forward(self) -> int }
//	class Middle { leaf: Leaf;   forward(self) -> none }
//	class Root   { mid: Middle;  forward(self) -> none }
func SubmoduleChainProgram() *graph.Object {
	leaf := &graph.Class{
		Namespace: "test",
		Name:      "Leaf",
		Slots: []graph.SlotDecl{
			{Name: "v", Type: graph.IntType()},
		},
	}
	leafForward := &graph.Method{
		Class:  leaf,
		Name:   "forward",
		Params: []graph.Param{{Name: "self", Type: graph.ClassType(leaf)}},
		Result: graph.IntType(),
		Body: []graph.Instr{
			graph.Const(graph.IntValue(1)),
			graph.Return(1),
		},
	}
	leaf.Methods = []*graph.Method{leafForward}

	middle := &graph.Class{
		Namespace: "test",
		Name:      "Middle",
		Slots: []graph.SlotDecl{
			{Name: "leaf", Type: graph.ClassType(leaf)},
		},
	}
	middleForward := &graph.Method{
		Class:  middle,
		Name:   "forward",
		Params: []graph.Param{{Name: "self", Type: graph.ClassType(middle)}},
		Result: graph.NoneType(),
		Body: []graph.Instr{
			graph.ReturnNone(),
		},
	}
	middle.Methods = []*graph.Method{middleForward}

	root := &graph.Class{
		Namespace: "test",
		Name:      "Root",
		Slots: []graph.SlotDecl{
			{Name: "mid", Type: graph.ClassType(middle)},
		},
	}
	rootForward := &graph.Method{
		Class:  root,
		Name:   "forward",
		Params: []graph.Param{{Name: "self", Type: graph.ClassType(root)}},
		Result: graph.NoneType(),
		Body: []graph.Instr{
			graph.ReturnNone(),
		},
	}
	root.Methods = []*graph.Method{rootForward}

	leafObj := &graph.Object{Class: leaf, Slots: []*graph.Value{graph.IntValue(5)}}
	midObj := &graph.Object{Class: middle, Slots: []*graph.Value{graph.ObjectValue(leafObj)}}
	return &graph.Object{Class: root, Slots: []*graph.Value{graph.ObjectValue(midObj)}}
}
